package planstruct

import (
	"github.com/planstruct/planstruct/model"
)

// ColumnConfig controls provisional column placement at grid
// intersections.
type ColumnConfig struct {
	Width  float64
	Depth  float64
	Height float64

	// MinConfidence skips intersections whose confidence is too weak to
	// justify a column hypothesis.
	MinConfidence float64

	// ExcludePerimeter skips intersections on the outermost axes, for
	// buildings whose perimeter columns live inside walls.
	ExcludePerimeter bool
}

// DefaultColumnConfig returns default column placement settings.
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		Width:         300.0,
		Depth:         300.0,
		Height:        3000.0,
		MinConfidence: 0.7,
	}
}

// PlaceColumns derives one provisional column per sufficiently confident
// grid intersection. Column confidence equals the intersection
// confidence, and the grid reference label is recorded for downstream
// naming.
func PlaceColumns(g *model.BuildingGrid, cfg ColumnConfig) []model.Column {
	var perimeter map[string]bool
	if cfg.ExcludePerimeter {
		perimeter = perimeterLabels(g)
	}

	columns := make([]model.Column, 0, len(g.Intersections))
	for _, gi := range g.Intersections {
		if gi.Score < cfg.MinConfidence {
			continue
		}
		if perimeter != nil && perimeter[gi.Label()] {
			continue
		}

		columns = append(columns, model.Column{
			Provisional:   model.NewProvisional(gi.Score, gi.Layer),
			Location:      gi.Point,
			Width:         cfg.Width,
			Depth:         cfg.Depth,
			Height:        cfg.Height,
			GridReference: gi.Label(),
		})
	}

	return columns
}

// perimeterLabels collects the labels of intersections that lie on the
// first or last axis of either orientation.
func perimeterLabels(g *model.BuildingGrid) map[string]bool {
	edge := make(map[string]bool, 4)
	if n := len(g.HorizontalLines); n > 0 {
		edge[g.HorizontalLines[0].Label] = true
		edge[g.HorizontalLines[n-1].Label] = true
	}
	if n := len(g.VerticalLines); n > 0 {
		edge[g.VerticalLines[0].Label] = true
		edge[g.VerticalLines[n-1].Label] = true
	}

	labels := make(map[string]bool)
	for _, gi := range g.Intersections {
		if edge[gi.GridH] || edge[gi.GridV] {
			labels[gi.Label()] = true
		}
	}
	return labels
}
