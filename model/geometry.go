package model

import "math"

// Epsilon is the tolerance used for point equality. Merged and derived
// points accumulate floating error, so exact comparison is never safe.
const Epsilon = 1e-6

// Point represents a 2D point in drawing units.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Equal reports whether two points coincide within Epsilon.
func (p Point) Equal(other Point) bool {
	return math.Abs(p.X-other.X) < Epsilon && math.Abs(p.Y-other.Y) < Epsilon
}

// Close reports whether two points are within the given distance.
func (p Point) Close(other Point, tolerance float64) bool {
	return p.Distance(other) < tolerance
}

// Line represents a directed 2D line segment with its source layer.
type Line struct {
	Start Point
	End   Point
	Layer string
}

// NewLine creates a line between two coordinate pairs on the given layer.
func NewLine(x1, y1, x2, y2 float64, layer string) Line {
	return Line{Start: Point{X: x1, Y: y1}, End: Point{X: x2, Y: y2}, Layer: layer}
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return l.Start.Distance(l.End)
}

// Angle returns the line direction in radians in [0, 2π).
func (l Line) Angle() float64 {
	a := math.Atan2(l.End.Y-l.Start.Y, l.End.X-l.Start.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Midpoint returns the segment midpoint.
func (l Line) Midpoint() Point {
	return Point{
		X: (l.Start.X + l.End.X) / 2,
		Y: (l.Start.Y + l.End.Y) / 2,
	}
}

// IsHorizontal reports whether the line is horizontal within the given
// angle tolerance in radians. The test is symmetric under direction
// reversal: a line drawn right-to-left classifies the same as one drawn
// left-to-right.
func (l Line) IsHorizontal(tolerance float64) bool {
	a := math.Abs(math.Atan2(l.End.Y-l.Start.Y, l.End.X-l.Start.X))
	return a < tolerance || math.Abs(a-math.Pi) < tolerance
}

// IsVertical reports whether the line is vertical within the given angle
// tolerance in radians, symmetric under direction reversal.
func (l Line) IsVertical(tolerance float64) bool {
	a := math.Abs(math.Atan2(l.End.Y-l.Start.Y, l.End.X-l.Start.X))
	return math.Abs(a-math.Pi/2) < tolerance
}

// Reversed returns the line with start and end swapped.
func (l Line) Reversed() Line {
	return Line{Start: l.End, End: l.Start, Layer: l.Layer}
}

// BBox returns the axis-aligned bounding box of the segment.
func (l Line) BBox() BBox {
	return NewBBoxFromPoints(l.Start, l.End)
}

// AnglesCollinear reports whether two line directions lie on the same
// infinite orientation within tolerance. Angles are folded into [0, π)
// since segments are bidirectional, and the comparison wraps so that
// 179° and 1° count as close.
func AnglesCollinear(a1, a2, tolerance float64) bool {
	f1 := math.Mod(math.Abs(a1), math.Pi)
	f2 := math.Mod(math.Abs(a2), math.Pi)

	diff := math.Abs(f1 - f2)
	if diff > math.Pi/2 {
		diff = math.Pi - diff
	}
	return diff < tolerance
}

// PointsCollinear reports whether p2 lies on the infinite line through p1
// and p3 within the given perpendicular-distance tolerance. Degenerate
// input (p1 ≈ p3) is treated as collinear.
func PointsCollinear(p1, p2, p3 Point, tolerance float64) bool {
	dx := p3.X - p1.X
	dy := p3.Y - p1.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length < Epsilon {
		return true
	}

	dist := math.Abs(dy*p2.X-dx*p2.Y+p3.X*p1.Y-p3.Y*p1.X) / length
	return dist < tolerance
}

// BBox represents an axis-aligned bounding box in drawing units.
type BBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBBoxFromPoints creates the bounding box spanning two points.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	return BBox{
		MinX: math.Min(p1.X, p2.X),
		MinY: math.Min(p1.Y, p2.Y),
		MaxX: math.Max(p1.X, p2.X),
		MaxY: math.Max(p1.Y, p2.Y),
	}
}

// Width returns the horizontal extent.
func (b BBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent.
func (b BBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Area returns the 2D area.
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Center returns the center point.
func (b BBox) Center() Point {
	return Point{
		X: (b.MinX + b.MaxX) / 2,
		Y: (b.MinY + b.MaxY) / 2,
	}
}

// Contains checks whether the point lies inside the box, edges included.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY
}

// Intersects checks whether two boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return !(b.MaxX < other.MinX || b.MinX > other.MaxX ||
		b.MaxY < other.MinY || b.MinY > other.MaxY)
}

// Union returns the smallest box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// Expand grows the box by a margin on all sides.
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// IsValid reports whether the box has non-negative dimensions.
func (b BBox) IsValid() bool {
	return b.MaxX >= b.MinX && b.MaxY >= b.MinY
}
