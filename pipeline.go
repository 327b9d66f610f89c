package planstruct

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planstruct/planstruct/foundations"
	"github.com/planstruct/planstruct/grid"
	"github.com/planstruct/planstruct/layers"
	"github.com/planstruct/planstruct/model"
	"github.com/planstruct/planstruct/walls"
)

// Pipeline runs the three detection pipelines over one line set. It is
// stateless across runs: each Run is a pure function of its input lines
// and the configured tolerances, so a single Pipeline may be shared by
// multiple goroutines.
type Pipeline struct {
	mapping     *layers.Mapping
	gridDet     *grid.Detector
	wallDet     *walls.Detector
	foundations *foundations.Grouper
	columns     ColumnConfig
	placeCols   bool
	logger      *log.Logger
}

// Result holds the output of one detection pass.
type Result struct {
	// Grid is nil when no coherent grid was found; GridErr then carries
	// the reason. Grid absence is not an error for the pass as a whole.
	Grid    *model.BuildingGrid
	GridErr error

	Walls       []model.Wall
	Foundations []model.Foundation

	// Columns is populated only when column placement is enabled and a
	// grid was detected.
	Columns []model.Column

	Stats Stats
}

// Stats records per-stage timings and input counts for one pass.
type Stats struct {
	InputLines      int
	GridLines       int
	WallLines       int
	FoundationLines int

	GridTime       time.Duration
	WallTime       time.Duration
	FoundationTime time.Duration
}

// Elements flattens the result into the closed element set, for bulk
// indexing or export. The grid element itself precedes its lines and
// intersections.
func (r *Result) Elements() []model.Element {
	var els []model.Element
	if r.Grid != nil {
		els = append(els, *r.Grid)
		for _, gl := range r.Grid.HorizontalLines {
			els = append(els, gl)
		}
		for _, gl := range r.Grid.VerticalLines {
			els = append(els, gl)
		}
		for _, gi := range r.Grid.Intersections {
			els = append(els, gi)
		}
	}
	for _, w := range r.Walls {
		els = append(els, w)
	}
	for _, f := range r.Foundations {
		els = append(els, f)
	}
	for _, c := range r.Columns {
		els = append(els, c)
	}
	return els
}

// Run executes grid, wall, and foundation detection over the input
// lines. Lines route to each pipeline by layer category; grid detection
// failure is recorded and logged but does not abort the pass.
func (p *Pipeline) Run(lines []model.Line) (*Result, error) {
	result := &Result{}
	result.Stats.InputLines = len(lines)

	gridLines := p.mapping.LinesFor(lines, "grid")
	wallLines := p.mapping.LinesFor(lines, "walls")
	foundationLines := p.mapping.LinesFor(lines, "foundations")

	// A drawing without layer structure routes everything to grid
	// detection, matching the fallback behavior for unnamed layers.
	if len(gridLines) == 0 {
		p.logger.Warn("no grid layers matched, searching all lines")
		gridLines = lines
	}

	result.Stats.GridLines = len(gridLines)
	result.Stats.WallLines = len(wallLines)
	result.Stats.FoundationLines = len(foundationLines)

	start := time.Now()
	g, err := p.gridDet.Detect(gridLines)
	result.Stats.GridTime = time.Since(start)
	switch {
	case err == nil:
		result.Grid = g
	case errors.Is(err, grid.ErrInsufficientData), errors.Is(err, grid.ErrNoPattern):
		p.logger.Warn("no grid detected", "err", err)
		result.GridErr = err
	default:
		return nil, err
	}

	start = time.Now()
	result.Walls = p.wallDet.Detect(wallLines)
	result.Stats.WallTime = time.Since(start)

	start = time.Now()
	result.Foundations = p.foundations.Detect(foundationLines)
	result.Stats.FoundationTime = time.Since(start)

	if p.placeCols && result.Grid != nil {
		result.Columns = PlaceColumns(result.Grid, p.columns)
		p.logger.Info("placed columns at grid intersections", "count", len(result.Columns))
	}

	return result, nil
}
