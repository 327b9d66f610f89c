package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Provisional carries the identity and review metadata shared by every
// detected element. Elements are immutable snapshots: confidence is
// assigned once at creation and never recomputed downstream.
type Provisional struct {
	ID       string
	Score    float64
	Layer    string
	Metadata map[string]any
}

// NewProvisional creates the shared element record with a fresh GUID.
// Confidence is clamped to [0, 1].
func NewProvisional(confidence float64, layer string) Provisional {
	return Provisional{
		ID:    uuid.NewString(),
		Score: ClampConfidence(confidence),
		Layer: layer,
	}
}

// ClampConfidence limits a score to the valid [0, 1] range.
func ClampConfidence(c float64) float64 {
	return math.Max(0, math.Min(1, c))
}

func (p Provisional) GUID() string           { return p.ID }
func (p Provisional) Meta() map[string]any   { return p.Metadata }
func (p Provisional) Confidence() float64    { return p.Score }
func (p Provisional) SourceLayer() string    { return p.Layer }
func (p Provisional) Level() ConfidenceLevel { return LevelFor(p.Score) }

// WithMeta returns a copy of the record with the given metadata key set.
// The original map is never mutated.
func (p Provisional) WithMeta(key string, value any) Provisional {
	meta := make(map[string]any, len(p.Metadata)+1)
	for k, v := range p.Metadata {
		meta[k] = v
	}
	meta[key] = value
	p.Metadata = meta
	return p
}

// GridLine is one structural reference axis, classified by orientation
// and labeled after positional ordering.
type GridLine struct {
	Provisional

	Line       Line
	Label      string
	IsVertical bool

	// SpacingToNext is the distance to the next parallel grid line in
	// sorted order; nil for the last line of an axis.
	SpacingToNext *float64
}

func (g GridLine) Type() ElementType { return ElementTypeGridLine }
func (g GridLine) BoundingBox() BBox { return g.Line.BBox() }

func (g GridLine) String() string {
	return fmt.Sprintf("GridLine(%s, confidence=%.2f)", g.Label, g.Score)
}

// GridIntersection is the crossing point of a horizontal and a vertical
// grid line. Its confidence is the minimum of the two contributing axes:
// an intersection is only as trustworthy as its weakest axis.
type GridIntersection struct {
	Provisional

	Point Point
	GridH string
	GridV string
}

func (gi GridIntersection) Type() ElementType { return ElementTypeGridIntersection }
func (gi GridIntersection) BoundingBox() BBox { return NewBBoxFromPoints(gi.Point, gi.Point) }

// Label returns the combined axis label, e.g. "A1".
func (gi GridIntersection) Label() string {
	return gi.GridH + gi.GridV
}

func (gi GridIntersection) String() string {
	return fmt.Sprintf("GridIntersection(%s, confidence=%.2f)", gi.Label(), gi.Score)
}

// BuildingGrid is the complete detected grid system. Intersections are
// fully materialized: len(Intersections) is always
// len(HorizontalLines) * len(VerticalLines).
type BuildingGrid struct {
	Provisional

	HorizontalLines []GridLine // labeled A, B, C...
	VerticalLines   []GridLine // labeled 1, 2, 3...
	Intersections   []GridIntersection
	BBox            BBox

	IsRegular bool

	// Average axis spacings; zero when an axis has fewer than two lines.
	AvgHSpacing float64
	AvgVSpacing float64
}

func (bg BuildingGrid) Type() ElementType { return ElementTypeGrid }
func (bg BuildingGrid) BoundingBox() BBox { return bg.BBox }

// IntersectionAt returns the intersection with the given axis labels, or
// nil if no such intersection exists.
func (bg BuildingGrid) IntersectionAt(hLabel, vLabel string) *GridIntersection {
	for i := range bg.Intersections {
		if bg.Intersections[i].GridH == hLabel && bg.Intersections[i].GridV == vLabel {
			return &bg.Intersections[i]
		}
	}
	return nil
}

func (bg BuildingGrid) String() string {
	return fmt.Sprintf("BuildingGrid(%dx%d, regular=%t, confidence=%.2f)",
		len(bg.HorizontalLines), len(bg.VerticalLines), bg.IsRegular, bg.Score)
}

// Wall is a detected wall described by its centerline. Merging and
// intersection adjustment produce new Wall records rather than mutating
// in place, preserving the pre-adjustment set for diagnostics.
type Wall struct {
	Provisional

	Centerline   Line
	Thickness    float64
	Height       float64
	IsExterior   bool
	IsStructural bool
}

func (w Wall) Type() ElementType { return ElementTypeWall }
func (w Wall) BoundingBox() BBox { return w.Centerline.BBox() }

// IntersectionType classifies a wall meeting point by the number of
// distinct walls sharing it.
type IntersectionType string

const (
	IntersectionEndpoint  IntersectionType = "endpoint"
	IntersectionLCorner   IntersectionType = "L-corner"
	IntersectionTJunction IntersectionType = "T-junction"
	IntersectionXCrossing IntersectionType = "X-crossing"
)

// WallIntersection is an averaged meeting point plus the indices of the
// walls meeting there.
type WallIntersection struct {
	Point       Point
	WallIndices []int
}

// Kind returns the junction classification, a pure function of the
// number of distinct walls: 2 "L-corner", 3 "T-junction", 4 or more
// "X-crossing", otherwise "endpoint".
func (wi WallIntersection) Kind() IntersectionType {
	switch n := len(wi.WallIndices); {
	case n == 2:
		return IntersectionLCorner
	case n == 3:
		return IntersectionTJunction
	case n >= 4:
		return IntersectionXCrossing
	default:
		return IntersectionEndpoint
	}
}

// Column is a vertical structural element, optionally pinned to a grid
// intersection.
type Column struct {
	Provisional

	Location      Point
	Width         float64
	Depth         float64
	Height        float64
	Rotation      float64 // radians
	GridReference string  // e.g. "A1" when placed at a grid intersection
}

func (c Column) Type() ElementType { return ElementTypeColumn }

func (c Column) BoundingBox() BBox {
	return BBox{
		MinX: c.Location.X - c.Width/2,
		MinY: c.Location.Y - c.Depth/2,
		MaxX: c.Location.X + c.Width/2,
		MaxY: c.Location.Y + c.Depth/2,
	}
}

// Slab is a floor or roof plate bounded by a closed polygon.
type Slab struct {
	Provisional

	Boundary  []Point
	Thickness float64
	Elevation float64
	IsRoof    bool
}

func (s Slab) Type() ElementType { return ElementTypeSlab }

func (s Slab) BoundingBox() BBox {
	if len(s.Boundary) == 0 {
		return BBox{}
	}
	box := NewBBoxFromPoints(s.Boundary[0], s.Boundary[0])
	for _, p := range s.Boundary[1:] {
		box = box.Union(NewBBoxFromPoints(p, p))
	}
	return box
}

// Foundation is a point foundation (pile cap) detected from a closed
// rectangle of short lines.
type Foundation struct {
	Provisional

	Center Point
	Width  float64 // horizontal footprint
	Depth  float64 // horizontal footprint

	// FoundationDepth is the vertical depth into the ground.
	FoundationDepth float64
}

func (f Foundation) Type() ElementType { return ElementTypeFoundation }

func (f Foundation) BoundingBox() BBox {
	return BBox{
		MinX: f.Center.X - f.Width/2,
		MinY: f.Center.Y - f.Depth/2,
		MaxX: f.Center.X + f.Width/2,
		MaxY: f.Center.Y + f.Depth/2,
	}
}
