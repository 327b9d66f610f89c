package grid

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"

	"github.com/planstruct/planstruct/model"
)

// Detection errors. Both mean "no grid"; callers that depend on a grid
// must treat them as fatal, while wall and foundation detection proceed
// independently.
var (
	// ErrInsufficientData indicates too few filtered lines to attempt
	// grid detection.
	ErrInsufficientData = errors.New("insufficient lines for grid detection")

	// ErrNoPattern indicates candidate lines were found but no coherent
	// axis pattern emerged.
	ErrNoPattern = errors.New("no regular grid pattern detected")
)

// Config holds grid detection tolerances.
type Config struct {
	// Minimum line length to consider, in drawing units.
	MinLineLength float64

	// Tolerance for horizontal/vertical classification, in radians.
	AngleTolerance float64

	// Fractional tolerance for regular spacing detection.
	SpacingTolerance float64

	// Minimum number of grid lines required in each direction.
	MinGridLines int
}

// DefaultConfig returns default grid detection settings.
func DefaultConfig() Config {
	return Config{
		MinLineLength:    1000.0,
		AngleTolerance:   0.087, // ~5 degrees
		SpacingTolerance: 0.15,
		MinGridLines:     2,
	}
}

// Detector detects a building grid from unstructured 2D lines.
//
// Algorithm:
//  1. Filter lines by length (ignore short lines)
//  2. Cluster lines by orientation (horizontal vs vertical)
//  3. Detect the dominant spacing per axis using median statistics
//  4. Label grid lines (A, B, C... and 1, 2, 3...)
//  5. Materialize all pairwise intersections
//  6. Score regularity and overall confidence
type Detector struct {
	config Config
	logger *log.Logger
}

// NewDetector creates a grid detector. A nil logger falls back to the
// package default.
func NewDetector(config Config, logger *log.Logger) *Detector {
	if logger == nil {
		logger = log.Default()
	}
	return &Detector{config: config, logger: logger}
}

// Detect finds the building grid in a set of lines. It returns
// ErrInsufficientData or ErrNoPattern when no grid can be established;
// both unwrap to "no grid" and carry detail about the failing stage.
func (d *Detector) Detect(lines []model.Line) (*model.BuildingGrid, error) {
	d.logger.Info("detecting grid", "lines", len(lines))

	filtered := make([]model.Line, 0, len(lines))
	for _, l := range lines {
		if l.Length() >= d.config.MinLineLength {
			filtered = append(filtered, l)
		}
	}
	d.logger.Debug("filtered by length", "kept", len(filtered), "min_length", d.config.MinLineLength)

	if len(filtered) < d.config.MinGridLines*2 {
		return nil, fmt.Errorf("%w: found %d lines, need >= %d",
			ErrInsufficientData, len(filtered), d.config.MinGridLines*2)
	}

	horizontal, vertical := ClusterByOrientation(filtered, d.config.AngleTolerance)
	d.logger.Debug("clustered by orientation", "horizontal", len(horizontal), "vertical", len(vertical))

	if len(horizontal) < d.config.MinGridLines || len(vertical) < d.config.MinGridLines {
		return nil, fmt.Errorf("%w: h=%d, v=%d, need >= %d per axis",
			ErrInsufficientData, len(horizontal), len(vertical), d.config.MinGridLines)
	}

	hLines := d.analyzeAxis(horizontal, false)
	vLines := d.analyzeAxis(vertical, true)

	if len(hLines) == 0 || len(vLines) == 0 {
		return nil, fmt.Errorf("%w: h=%d, v=%d candidate axes", ErrNoPattern, len(hLines), len(vLines))
	}

	labelAxis(hLines, false)
	labelAxis(vLines, true)

	intersections := buildIntersections(hLines, vLines)
	d.logger.Debug("materialized intersections", "count", len(intersections))

	isRegular, avgH, avgV := d.checkRegularity(hLines, vLines)
	confidence := d.scoreConfidence(hLines, vLines, isRegular)

	grid := &model.BuildingGrid{
		Provisional:     model.NewProvisional(confidence, ""),
		HorizontalLines: hLines,
		VerticalLines:   vLines,
		Intersections:   intersections,
		BBox:            gridBBox(hLines, vLines),
		IsRegular:       isRegular,
		AvgHSpacing:     avgH,
		AvgVSpacing:     avgV,
	}

	d.logger.Info("grid detected",
		"horizontal", len(hLines),
		"vertical", len(vLines),
		"regular", isRegular,
		"confidence", fmt.Sprintf("%.2f", confidence))

	return grid, nil
}

// ClusterByOrientation buckets lines into horizontal and vertical groups
// using the given angle tolerance in radians. Diagonal lines are dropped.
// Classification is invariant to which endpoint is the start.
func ClusterByOrientation(lines []model.Line, tolerance float64) (horizontal, vertical []model.Line) {
	for _, l := range lines {
		switch {
		case l.IsHorizontal(tolerance):
			horizontal = append(horizontal, l)
		case l.IsVertical(tolerance):
			vertical = append(vertical, l)
		}
	}
	return horizontal, vertical
}

// DominantSpacing returns the dominant gap between consecutive axis
// positions: the median gap, the single gap when only one exists, or 0
// for an empty list. Callers must treat 0 as insufficient data.
func DominantSpacing(gaps []float64) float64 {
	switch len(gaps) {
	case 0:
		return 0
	case 1:
		return gaps[0]
	}
	m, err := stats.Median(gaps)
	if err != nil {
		return 0
	}
	return m
}

// analyzeAxis projects a single-orientation line set to scalar positions,
// sorts, and assigns per-line confidence from deviation against the
// dominant spacing. Returns unlabeled grid lines; empty when the axis has
// fewer than two lines.
func (d *Detector) analyzeAxis(lines []model.Line, isVertical bool) []model.GridLine {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]model.Line, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		return axisPosition(sorted[i], isVertical) < axisPosition(sorted[j], isVertical)
	})

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		gaps = append(gaps, axisPosition(sorted[i+1], isVertical)-axisPosition(sorted[i], isVertical))
	}
	if len(gaps) == 0 {
		return nil
	}

	dominant := DominantSpacing(gaps)

	gridLines := make([]model.GridLine, 0, len(sorted))
	for i, line := range sorted {
		var confidence float64
		switch {
		case i == 0:
			confidence = spacingConfidence(gaps[0], dominant)
		case i == len(sorted)-1:
			confidence = spacingConfidence(gaps[i-1], dominant)
		default:
			prev := deviationFrom(gaps[i-1], dominant)
			next := deviationFrom(gaps[i], dominant)
			confidence = floorConfidence(1.0 - (prev+next)/2)
		}

		gl := model.GridLine{
			Provisional: model.NewProvisional(confidence, line.Layer),
			Line:        line,
			IsVertical:  isVertical,
		}
		if i < len(gaps) {
			spacing := gaps[i]
			gl.SpacingToNext = &spacing
		}
		gridLines = append(gridLines, gl)
	}

	return gridLines
}

// axisPosition projects a line to its scalar grid position: midpoint X
// for vertical lines, midpoint Y for horizontal lines.
func axisPosition(l model.Line, isVertical bool) float64 {
	if isVertical {
		return l.Midpoint().X
	}
	return l.Midpoint().Y
}

func deviationFrom(gap, dominant float64) float64 {
	if dominant <= 0 {
		return 0.5
	}
	d := gap - dominant
	if d < 0 {
		d = -d
	}
	return d / dominant
}

func spacingConfidence(gap, dominant float64) float64 {
	return floorConfidence(1.0 - deviationFrom(gap, dominant))
}

// floorConfidence floors a spacing-derived confidence at 0.5: a line
// badly off the dominant spacing is still a classified candidate, just a
// weak one.
func floorConfidence(c float64) float64 {
	if c < 0.5 {
		return 0.5
	}
	return c
}
