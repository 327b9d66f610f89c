package walls

import (
	"github.com/charmbracelet/log"

	"github.com/planstruct/planstruct/model"
)

// BuildConfig controls how raw candidate lines become wall segments.
type BuildConfig struct {
	// Minimum centerline length, in drawing units.
	MinLength float64

	// Defaults applied to every detected wall.
	DefaultThickness float64
	DefaultHeight    float64

	// Base confidence for a wall-layer line; longer lines earn a bonus.
	BaseConfidence float64
}

// DefaultBuildConfig returns default wall construction settings.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MinLength:        200.0,
		DefaultThickness: 150.0,
		DefaultHeight:    3000.0,
		BaseConfidence:   0.7,
	}
}

// FromLines converts candidate centerlines into wall segments. Lines
// shorter than the minimum are dropped; lines longer than 1000 units
// earn a confidence bonus since long runs are rarely annotation strokes.
func FromLines(lines []model.Line, cfg BuildConfig) []model.Wall {
	walls := make([]model.Wall, 0, len(lines))

	for _, line := range lines {
		if line.Length() < cfg.MinLength {
			continue
		}

		confidence := cfg.BaseConfidence
		if line.Length() > 1000 {
			confidence = model.ClampConfidence(confidence + 0.1)
		}

		walls = append(walls, model.Wall{
			Provisional: model.NewProvisional(confidence, line.Layer),
			Centerline:  line,
			Thickness:   cfg.DefaultThickness,
			Height:      cfg.DefaultHeight,
		})
	}

	return walls
}

// Config bundles the settings for the full wall pipeline.
type Config struct {
	Build     BuildConfig
	Merge     MergeConfig
	Intersect IntersectConfig

	// MergeSegments and FixIntersections toggle the respective stages.
	MergeSegments    bool
	FixIntersections bool
}

// DefaultConfig returns the default wall pipeline settings with both
// post-processing stages enabled.
func DefaultConfig() Config {
	return Config{
		Build:            DefaultBuildConfig(),
		Merge:            DefaultMergeConfig(),
		Intersect:        DefaultIntersectConfig(),
		MergeSegments:    true,
		FixIntersections: true,
	}
}

// Detector runs the wall pipeline: line conversion, collinear segment
// merging, then intersection detection and corner adjustment.
type Detector struct {
	config Config
	logger *log.Logger
}

// NewDetector creates a wall detector. A nil logger falls back to the
// package default.
func NewDetector(config Config, logger *log.Logger) *Detector {
	if logger == nil {
		logger = log.Default()
	}
	return &Detector{config: config, logger: logger}
}

// Detect converts candidate lines to walls and cleans their topology.
// The returned set is a pure function of the input lines and the
// configured tolerances.
func (d *Detector) Detect(lines []model.Line) []model.Wall {
	walls := FromLines(lines, d.config.Build)
	d.logger.Info("detected wall segments", "segments", len(walls), "lines", len(lines))

	if d.config.MergeSegments && len(walls) > 1 {
		merged := Merge(walls, d.config.Merge)
		d.logger.Info("merged wall segments", "before", len(walls), "after", len(merged))
		walls = merged
	}

	if d.config.FixIntersections && len(walls) > 1 {
		intersections := DetectIntersections(walls, d.config.Intersect)
		if len(intersections) > 0 {
			d.logger.Debug("detected wall intersections", "count", len(intersections))
			walls = AdjustAtIntersections(walls, intersections, d.config.Intersect)
		}
	}

	return walls
}

// Intersections exposes the detected junction set for the given walls
// using the detector's tolerances, for diagnostics and review.
func (d *Detector) Intersections(walls []model.Wall) []model.WallIntersection {
	return DetectIntersections(walls, d.config.Intersect)
}
