// Package planstruct infers building structure from unstructured 2D
// line geometry extracted from CAD drawings.
//
// The library recovers discrete structural semantics — grid axes, walls,
// point foundations — from noisy, tolerance-bound floating-point
// geometry, producing elements with explicit confidence scores intended
// for human review and downstream 3D model generation.
//
// Basic usage:
//
//	p := planstruct.New(planstruct.DefaultOptions())
//	result, err := p.Run(lines)
//	if err != nil {
//	    // handle error
//	}
//	if result.Grid == nil {
//	    // no grid detected; walls and foundations are still populated
//	}
//
// Three independent pipelines run per detection pass:
//
//   - grid: orientation clustering, spacing analysis, labeling, scoring
//   - walls: segment merging, intersection resolution, corner adjustment
//   - foundations: rectangle grouping of short line pairs
//
// None depends on another at runtime; a missing grid is fatal only for
// callers that need grid-referenced output (such as column placement).
//
// Lower-level access is available through the grid, walls, foundations,
// layers, and spatial packages.
package planstruct

import (
	"github.com/charmbracelet/log"

	"github.com/planstruct/planstruct/foundations"
	"github.com/planstruct/planstruct/grid"
	"github.com/planstruct/planstruct/layers"
	"github.com/planstruct/planstruct/walls"
)

// Options configures a detection pipeline. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// Mapping assigns lines to detection categories by layer name.
	// Nil selects the embedded AIA-style default.
	Mapping *layers.Mapping

	// Per-pipeline tolerance configuration.
	Grid        grid.Config
	Walls       walls.Config
	Foundations foundations.Config
	Columns     ColumnConfig

	// PlaceColumns derives provisional columns at high-confidence grid
	// intersections when a grid is detected.
	PlaceColumns bool

	// Logger receives progress and diagnostics. Nil selects the
	// package default logger.
	Logger *log.Logger
}

// DefaultOptions returns the default pipeline configuration.
func DefaultOptions() Options {
	return Options{
		Grid:         grid.DefaultConfig(),
		Walls:        walls.DefaultConfig(),
		Foundations:  foundations.DefaultConfig(),
		Columns:      DefaultColumnConfig(),
		PlaceColumns: true,
	}
}

// New creates a detection pipeline from options, filling in defaults
// for the mapping and logger.
func New(opts Options) *Pipeline {
	if opts.Mapping == nil {
		opts.Mapping = layers.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Pipeline{
		mapping:     opts.Mapping,
		gridDet:     grid.NewDetector(opts.Grid, opts.Logger),
		wallDet:     walls.NewDetector(opts.Walls, opts.Logger),
		foundations: foundations.NewGrouper(opts.Foundations, opts.Logger),
		columns:     opts.Columns,
		placeCols:   opts.PlaceColumns,
		logger:      opts.Logger,
	}
}
