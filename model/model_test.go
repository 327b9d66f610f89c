package model

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	p1 := Point{X: 0, Y: 0}
	p2 := Point{X: 3, Y: 4}

	if d := p1.Distance(p2); d != 5.0 {
		t.Errorf("Expected distance 5.0, got %f", d)
	}
	if d := p1.Distance(p1); d != 0.0 {
		t.Errorf("Expected distance 0.0, got %f", d)
	}
}

func TestPointEqual(t *testing.T) {
	p1 := Point{X: 100, Y: 200}
	p2 := Point{X: 100 + 1e-9, Y: 200 - 1e-9}
	p3 := Point{X: 100.001, Y: 200}

	if !p1.Equal(p2) {
		t.Error("Points within epsilon should be equal")
	}
	if p1.Equal(p3) {
		t.Error("Points beyond epsilon should not be equal")
	}
}

func TestLineLength(t *testing.T) {
	l := NewLine(0, 0, 3000, 4000, "S-WALL")
	if got := l.Length(); got != 5000 {
		t.Errorf("Expected length 5000, got %f", got)
	}
}

func TestLineAngleRange(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want float64
	}{
		{"east", NewLine(0, 0, 100, 0, "0"), 0},
		{"north", NewLine(0, 0, 0, 100, "0"), math.Pi / 2},
		{"west", NewLine(0, 0, -100, 0, "0"), math.Pi},
		{"south", NewLine(0, 0, 0, -100, "0"), 3 * math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.line.Angle()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Angle() = %f, want %f", got, tt.want)
			}
			if got < 0 || got >= 2*math.Pi {
				t.Errorf("Angle() = %f outside [0, 2π)", got)
			}
		})
	}
}

func TestLineOrientationSymmetric(t *testing.T) {
	// Classification must not depend on which endpoint is the start.
	h := NewLine(1000, 500, 0, 510, "0")
	if !h.IsHorizontal(0.087) {
		t.Error("Right-to-left line should still be horizontal")
	}
	if !h.Reversed().IsHorizontal(0.087) {
		t.Error("Reversed line should classify identically")
	}

	v := NewLine(500, 1000, 510, 0, "0")
	if !v.IsVertical(0.087) {
		t.Error("Top-to-bottom line should still be vertical")
	}
	if !v.Reversed().IsVertical(0.087) {
		t.Error("Reversed line should classify identically")
	}

	diag := NewLine(0, 0, 1000, 1000, "0")
	if diag.IsHorizontal(0.087) || diag.IsVertical(0.087) {
		t.Error("Diagonal line should be neither horizontal nor vertical")
	}
}

func TestAnglesCollinear(t *testing.T) {
	// 179 degrees and 1 degree describe nearly the same orientation.
	a1 := 179.0 * math.Pi / 180
	a2 := 1.0 * math.Pi / 180

	if !AnglesCollinear(a1, a2, 0.05) {
		t.Error("179° and 1° should be collinear orientations")
	}
	if AnglesCollinear(0, math.Pi/2, 0.05) {
		t.Error("Perpendicular orientations should not be collinear")
	}
}

func TestPointsCollinear(t *testing.T) {
	p1 := Point{X: 0, Y: 0}
	p2 := Point{X: 500, Y: 10}
	p3 := Point{X: 1000, Y: 0}

	if !PointsCollinear(p1, p2, p3, 50) {
		t.Error("Point 10 units off a 1000-unit baseline should pass at tolerance 50")
	}
	if PointsCollinear(p1, Point{X: 500, Y: 100}, p3, 50) {
		t.Error("Point 100 units off should fail at tolerance 50")
	}

	// Degenerate baseline counts as collinear.
	if !PointsCollinear(p1, p2, p1, 50) {
		t.Error("Coincident baseline endpoints should be vacuously collinear")
	}
}

func TestBBoxOperations(t *testing.T) {
	b := NewBBoxFromPoints(Point{X: 0, Y: 0}, Point{X: 100, Y: 50})

	if b.Width() != 100 || b.Height() != 50 {
		t.Errorf("Expected 100x50, got %fx%f", b.Width(), b.Height())
	}
	if b.Area() != 5000 {
		t.Errorf("Expected area 5000, got %f", b.Area())
	}
	if c := b.Center(); c.X != 50 || c.Y != 25 {
		t.Errorf("Expected center (50, 25), got (%f, %f)", c.X, c.Y)
	}
	if !b.Contains(Point{X: 50, Y: 25}) {
		t.Error("Center should be contained")
	}
	if b.Contains(Point{X: 200, Y: 25}) {
		t.Error("Outside point should not be contained")
	}

	other := NewBBoxFromPoints(Point{X: 50, Y: 25}, Point{X: 200, Y: 100})
	if !b.Intersects(other) {
		t.Error("Overlapping boxes should intersect")
	}

	union := b.Union(other)
	if union.MinX != 0 || union.MaxX != 200 || union.MinY != 0 || union.MaxY != 100 {
		t.Errorf("Unexpected union: %+v", union)
	}

	expanded := b.Expand(10)
	if expanded.MinX != -10 || expanded.MaxY != 60 {
		t.Errorf("Unexpected expansion: %+v", expanded)
	}
}

func TestIntersectionKind(t *testing.T) {
	tests := []struct {
		walls int
		want  IntersectionType
	}{
		{0, IntersectionEndpoint},
		{1, IntersectionEndpoint},
		{2, IntersectionLCorner},
		{3, IntersectionTJunction},
		{4, IntersectionXCrossing},
		{5, IntersectionXCrossing},
	}

	for _, tt := range tests {
		wi := WallIntersection{WallIndices: make([]int, tt.walls)}
		if got := wi.Kind(); got != tt.want {
			t.Errorf("Kind() with %d walls = %s, want %s", tt.walls, got, tt.want)
		}
	}
}

func TestConfidenceLevels(t *testing.T) {
	tests := []struct {
		score float64
		want  ConfidenceLevel
	}{
		{1.0, ConfidenceHigh},
		{0.8, ConfidenceHigh},
		{0.79, ConfidenceMedium},
		{0.5, ConfidenceMedium},
		{0.49, ConfidenceLow},
		{0.0, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestProvisionalClampAndGUID(t *testing.T) {
	p := NewProvisional(1.5, "S-WALL")
	if p.Score != 1.0 {
		t.Errorf("Expected confidence clamped to 1.0, got %f", p.Score)
	}
	if p.GUID() == "" {
		t.Error("Expected non-empty GUID")
	}

	q := NewProvisional(-0.5, "")
	if q.Score != 0.0 {
		t.Errorf("Expected confidence clamped to 0.0, got %f", q.Score)
	}
	if p.GUID() == q.GUID() {
		t.Error("GUIDs should be unique")
	}
}

func TestWithMetaDoesNotMutate(t *testing.T) {
	p := NewProvisional(0.8, "0")
	p.Metadata = map[string]any{"a": 1}

	q := p.WithMeta("b", 2)

	if _, ok := p.Metadata["b"]; ok {
		t.Error("WithMeta must not mutate the original metadata")
	}
	if q.Metadata["a"] != 1 || q.Metadata["b"] != 2 {
		t.Errorf("Unexpected derived metadata: %+v", q.Metadata)
	}
}

// Compile-time checks that the closed element set implements Element.
var (
	_ Element = GridLine{}
	_ Element = GridIntersection{}
	_ Element = BuildingGrid{}
	_ Element = Wall{}
	_ Element = Column{}
	_ Element = Slab{}
	_ Element = Foundation{}
)

func TestElementBoundingBoxes(t *testing.T) {
	col := Column{
		Provisional: NewProvisional(0.9, "S-COLS"),
		Location:    Point{X: 1000, Y: 2000},
		Width:       400,
		Depth:       600,
	}
	box := col.BoundingBox()
	if box.MinX != 800 || box.MaxX != 1200 || box.MinY != 1700 || box.MaxY != 2300 {
		t.Errorf("Unexpected column bbox: %+v", box)
	}

	f := Foundation{
		Provisional: NewProvisional(0.9, "S-FNDN"),
		Center:      Point{X: 5000, Y: 5000},
		Width:       300,
		Depth:       300,
	}
	box = f.BoundingBox()
	if box.Center() != (Point{X: 5000, Y: 5000}) {
		t.Errorf("Foundation bbox should center on the foundation, got %+v", box.Center())
	}

	s := Slab{
		Boundary: []Point{{0, 0}, {1000, 0}, {1000, 2000}, {0, 2000}},
	}
	box = s.BoundingBox()
	if box.MaxX != 1000 || box.MaxY != 2000 {
		t.Errorf("Unexpected slab bbox: %+v", box)
	}

	if (Slab{}).BoundingBox() != (BBox{}) {
		t.Error("Empty slab should have zero bbox")
	}
}

func TestGridIntersectionLabel(t *testing.T) {
	gi := GridIntersection{GridH: "B", GridV: "3"}
	if gi.Label() != "B3" {
		t.Errorf("Expected label B3, got %s", gi.Label())
	}
}

func TestBuildingGridIntersectionAt(t *testing.T) {
	bg := BuildingGrid{
		Intersections: []GridIntersection{
			{GridH: "A", GridV: "1", Point: Point{X: 0, Y: 0}},
			{GridH: "A", GridV: "2", Point: Point{X: 4000, Y: 0}},
		},
	}

	gi := bg.IntersectionAt("A", "2")
	if gi == nil {
		t.Fatal("Expected intersection A2")
	}
	if gi.Point.X != 4000 {
		t.Errorf("Expected X 4000, got %f", gi.Point.X)
	}

	if bg.IntersectionAt("B", "1") != nil {
		t.Error("Expected nil for unknown labels")
	}
}
