package foundations

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/planstruct/planstruct/model"
)

// Config holds foundation grouping tolerances. Point foundations (pile
// caps) are drawn as closed rectangles of four short lines with a
// uniform footprint size.
type Config struct {
	// Length window for candidate lines, in drawing units.
	MinLineLength float64
	MaxLineLength float64

	// Expected footprint edge length of one foundation rectangle.
	FootprintSize float64

	// Tolerance for matching rectangle edges.
	MatchTolerance float64

	// Maximum gap when clustering positions for diagnostics.
	MaxGap float64

	// Vertical depth into the ground assigned to each foundation.
	FoundationDepth float64

	// Confidence assigned to a complete four-line rectangle.
	RectConfidence float64
}

// DefaultConfig returns default foundation grouping settings.
func DefaultConfig() Config {
	return Config{
		MinLineLength:   200.0,
		MaxLineLength:   500.0,
		FootprintSize:   300.0,
		MatchTolerance:  10.0,
		MaxGap:          100.0,
		FoundationDepth: 30150.0,
		RectConfidence:  0.90,
	}
}

// Grouper clusters short parallel line pairs into closed rectangles
// representing point foundations. Partial or ambiguous detections are
// dropped rather than reported: precision over recall.
type Grouper struct {
	config Config
	logger *log.Logger
}

// NewGrouper creates a foundation grouper. A nil logger falls back to
// the package default.
func NewGrouper(config Config, logger *log.Logger) *Grouper {
	if logger == nil {
		logger = log.Default()
	}
	return &Grouper{config: config, logger: logger}
}

// Detect groups candidate lines into foundations. Lines outside the
// configured length window are ignored; each complete rectangle consumes
// its four lines so no line contributes to two foundations.
func (g *Grouper) Detect(lines []model.Line) []model.Foundation {
	filtered := make([]model.Line, 0, len(lines))
	for _, l := range lines {
		length := l.Length()
		if length >= g.config.MinLineLength && length <= g.config.MaxLineLength {
			filtered = append(filtered, l)
		}
	}
	g.logger.Debug("filtered foundation lines",
		"kept", len(filtered),
		"window", [2]float64{g.config.MinLineLength, g.config.MaxLineLength})

	if len(filtered) == 0 {
		return nil
	}

	horizontal, vertical := splitByDominance(filtered)
	g.logger.Debug("separated by orientation", "horizontal", len(horizontal), "vertical", len(vertical))

	found := g.matchRectangles(horizontal, vertical)
	g.logger.Info("detected foundations", "count", len(found), "lines", len(filtered))

	return found
}

// splitByDominance buckets lines by axis dominance: |dx| > |dy| is
// horizontal, everything else vertical. Foundation rectangles are drawn
// axis-aligned, so no angle tolerance is needed here.
func splitByDominance(lines []model.Line) (horizontal, vertical []model.Line) {
	for _, l := range lines {
		dx := math.Abs(l.End.X - l.Start.X)
		dy := math.Abs(l.End.Y - l.Start.Y)
		if dx > dy {
			horizontal = append(horizontal, l)
		} else {
			vertical = append(vertical, l)
		}
	}
	return horizontal, vertical
}

// matchRectangles scans unconsumed horizontal lines for a parallel
// partner at footprint separation with matching X extents, then for two
// vertical lines spanning exactly between them at either X extent. A
// complete four-line match yields one foundation at the rectangle
// centroid and consumes all four lines.
func (g *Grouper) matchRectangles(horizontal, vertical []model.Line) []model.Foundation {
	tol := g.config.MatchTolerance
	size := g.config.FootprintSize

	usedH := make([]bool, len(horizontal))
	usedV := make([]bool, len(vertical))

	var found []model.Foundation

	for i, h1 := range horizontal {
		if usedH[i] {
			continue
		}

		xMin1 := math.Min(h1.Start.X, h1.End.X)
		xMax1 := math.Max(h1.Start.X, h1.End.X)
		y1 := h1.Midpoint().Y

		// Opposite edge: matching X extent, one footprint away in Y.
		pair := -1
		var y2 float64
		for j, h2 := range horizontal {
			if j == i || usedH[j] {
				continue
			}
			xMin2 := math.Min(h2.Start.X, h2.End.X)
			xMax2 := math.Max(h2.Start.X, h2.End.X)
			yCand := h2.Midpoint().Y

			if math.Abs(xMin1-xMin2) < tol &&
				math.Abs(xMax1-xMax2) < tol &&
				math.Abs(math.Abs(yCand-y1)-size) < tol {
				pair = j
				y2 = yCand
				break
			}
		}
		if pair < 0 {
			continue
		}

		yMinRect := math.Min(y1, y2)
		yMaxRect := math.Max(y1, y2)

		// Side edges: vertical lines spanning the Y extent at either X end.
		var sides []int
		for k, v := range vertical {
			if usedV[k] {
				continue
			}
			x := v.Midpoint().X
			yMin := math.Min(v.Start.Y, v.End.Y)
			yMax := math.Max(v.Start.Y, v.End.Y)

			if math.Abs(yMin-yMinRect) < tol &&
				math.Abs(yMax-yMaxRect) < tol &&
				(math.Abs(x-xMin1) < tol || math.Abs(x-xMax1) < tol) {
				sides = append(sides, k)
				if len(sides) == 2 {
					break
				}
			}
		}
		if len(sides) < 2 {
			continue
		}

		found = append(found, model.Foundation{
			Provisional: model.NewProvisional(g.config.RectConfidence, h1.Layer),
			Center: model.Point{
				X: (xMin1 + xMax1) / 2,
				Y: (y1 + y2) / 2,
			},
			Width:           size,
			Depth:           size,
			FoundationDepth: g.config.FoundationDepth,
		})

		usedH[i] = true
		usedH[pair] = true
		usedV[sides[0]] = true
		usedV[sides[1]] = true
	}

	return found
}

// ClusterPositions clusters scalar coordinates by proximity and returns
// the cluster centers in ascending order. Used for grid-position
// diagnostics when reviewing foundation layouts.
func ClusterPositions(coords []float64, maxGap float64) []float64 {
	if len(coords) == 0 {
		return nil
	}

	sorted := make([]float64, len(coords))
	copy(sorted, coords)
	sort.Float64s(sorted)

	var centers []float64
	cluster := []float64{sorted[0]}

	flush := func() {
		sum := 0.0
		for _, v := range cluster {
			sum += v
		}
		centers = append(centers, sum/float64(len(cluster)))
	}

	for _, c := range sorted[1:] {
		if c-cluster[len(cluster)-1] <= maxGap {
			cluster = append(cluster, c)
		} else {
			flush()
			cluster = []float64{c}
		}
	}
	flush()

	return centers
}
