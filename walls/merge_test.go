package walls

import (
	"math"
	"testing"

	"github.com/planstruct/planstruct/model"
)

// makeWall creates a test wall with default thickness and height.
func makeWall(x1, y1, x2, y2 float64) model.Wall {
	return model.Wall{
		Provisional: model.NewProvisional(0.7, "S-WALL"),
		Centerline:  model.NewLine(x1, y1, x2, y2, "S-WALL"),
		Thickness:   150,
		Height:      3000,
	}
}

func TestCanMergeConnectionCases(t *testing.T) {
	cfg := DefaultMergeConfig()

	tests := []struct {
		name     string
		w1, w2   model.Wall
		wantConn Connection
		// Expected merged centerline endpoints.
		wantStart, wantEnd model.Point
	}{
		{
			name:      "end to start",
			w1:        makeWall(0, 0, 1000, 0),
			w2:        makeWall(1000, 0, 2000, 0),
			wantConn:  ConnectionEndToStart,
			wantStart: model.Point{X: 0, Y: 0},
			wantEnd:   model.Point{X: 2000, Y: 0},
		},
		{
			name:      "start to end",
			w1:        makeWall(1000, 0, 2000, 0),
			w2:        makeWall(0, 0, 1000, 0),
			wantConn:  ConnectionStartToEnd,
			wantStart: model.Point{X: 0, Y: 0},
			wantEnd:   model.Point{X: 2000, Y: 0},
		},
		{
			name:      "end to end",
			w1:        makeWall(0, 0, 1000, 0),
			w2:        makeWall(2000, 0, 1000, 0),
			wantConn:  ConnectionEndToEnd,
			wantStart: model.Point{X: 0, Y: 0},
			wantEnd:   model.Point{X: 2000, Y: 0},
		},
		{
			name:      "start to start",
			w1:        makeWall(1000, 0, 0, 0),
			w2:        makeWall(1000, 0, 2000, 0),
			wantConn:  ConnectionStartToStart,
			wantStart: model.Point{X: 0, Y: 0},
			wantEnd:   model.Point{X: 2000, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, conn := CanMerge(tt.w1, tt.w2, cfg)
			if !ok {
				t.Fatal("Expected walls to merge")
			}
			if conn != tt.wantConn {
				t.Fatalf("Expected connection %s, got %s", tt.wantConn, conn)
			}

			merged := mergeTwo(tt.w1, tt.w2, conn)
			if !merged.Centerline.Start.Equal(tt.wantStart) {
				t.Errorf("Expected start %+v, got %+v", tt.wantStart, merged.Centerline.Start)
			}
			if !merged.Centerline.End.Equal(tt.wantEnd) {
				t.Errorf("Expected end %+v, got %+v", tt.wantEnd, merged.Centerline.End)
			}

			// Merged length must equal the outer endpoint distance.
			want := tt.wantStart.Distance(tt.wantEnd)
			if math.Abs(merged.Centerline.Length()-want) > 1e-9 {
				t.Errorf("Expected merged length %f, got %f", want, merged.Centerline.Length())
			}
		})
	}
}

func TestCanMergeRejections(t *testing.T) {
	cfg := DefaultMergeConfig()

	t.Run("thickness mismatch", func(t *testing.T) {
		w1 := makeWall(0, 0, 1000, 0)
		w2 := makeWall(1000, 0, 2000, 0)
		w2.Thickness = 200

		if ok, _ := CanMerge(w1, w2, cfg); ok {
			t.Error("Walls of different thickness must not merge")
		}
	})

	t.Run("endpoint gap", func(t *testing.T) {
		w1 := makeWall(0, 0, 1000, 0)
		w2 := makeWall(1100, 0, 2000, 0)

		if ok, _ := CanMerge(w1, w2, cfg); ok {
			t.Error("Walls with a 100-unit gap must not merge at tolerance 10")
		}
	})

	t.Run("perpendicular", func(t *testing.T) {
		w1 := makeWall(0, 0, 1000, 0)
		w2 := makeWall(1000, 0, 1000, 1000)

		if ok, _ := CanMerge(w1, w2, cfg); ok {
			t.Error("Perpendicular walls must not merge")
		}
	})

	t.Run("parallel offset", func(t *testing.T) {
		// Endpoints within the relaxed proximity tolerance but the far
		// endpoint sits 100 units off the first wall's line.
		relaxed := cfg
		relaxed.PointTolerance = 200

		w1 := makeWall(0, 0, 1000, 0)
		w2 := makeWall(1050, 100, 2050, 100)

		if ok, _ := CanMerge(w1, w2, relaxed); ok {
			t.Error("Offset parallel walls must fail the collinearity test")
		}
	})
}

func TestMergeThreeCollinearSegments(t *testing.T) {
	// Three segments of one wall, drawn as separate lines with endpoints
	// coinciding within a few units.
	walls := []model.Wall{
		makeWall(0, 0, 1000, 0),
		makeWall(1003, 0, 2000, 0),
		makeWall(2000, 2, 3000, 0),
	}

	merged := Merge(walls, DefaultMergeConfig())
	if len(merged) != 1 {
		t.Fatalf("Expected 1 merged wall, got %d", len(merged))
	}

	w := merged[0]
	if math.Abs(w.Centerline.Length()-3000) > 5 {
		t.Errorf("Expected merged length ~3000, got %f", w.Centerline.Length())
	}
	if n, _ := w.Metadata["segment_count"].(int); n != 3 {
		t.Errorf("Expected segment_count 3, got %v", w.Metadata["segment_count"])
	}
	if _, ok := w.Metadata["merged_from"]; !ok {
		t.Error("Expected merged_from provenance in metadata")
	}
}

func TestMergeIdempotent(t *testing.T) {
	walls := []model.Wall{
		makeWall(0, 0, 1000, 0),
		makeWall(1000, 0, 2000, 0),
		makeWall(0, 500, 0, 2000), // unrelated vertical wall
	}

	first := Merge(walls, DefaultMergeConfig())
	second := Merge(first, DefaultMergeConfig())

	if len(first) != 2 {
		t.Fatalf("Expected 2 walls after first merge, got %d", len(first))
	}
	if len(second) != len(first) {
		t.Fatalf("Merge is not idempotent: %d then %d walls", len(first), len(second))
	}
	for i := range first {
		if !second[i].Centerline.Start.Equal(first[i].Centerline.Start) ||
			!second[i].Centerline.End.Equal(first[i].Centerline.End) {
			t.Errorf("Wall %d geometry changed on re-merge", i)
		}
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil, DefaultMergeConfig()); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}
}

func TestMergeAveragesConfidence(t *testing.T) {
	w1 := makeWall(0, 0, 1000, 0)
	w1.Score = 0.6
	w2 := makeWall(1000, 0, 2000, 0)
	w2.Score = 0.8

	merged := Merge([]model.Wall{w1, w2}, DefaultMergeConfig())
	if len(merged) != 1 {
		t.Fatalf("Expected 1 wall, got %d", len(merged))
	}
	if math.Abs(merged[0].Score-0.7) > 1e-9 {
		t.Errorf("Expected averaged confidence 0.7, got %f", merged[0].Score)
	}
}

func TestFromLines(t *testing.T) {
	lines := []model.Line{
		model.NewLine(0, 0, 3000, 0, "S-WALL"), // long, earns bonus
		model.NewLine(0, 0, 500, 0, "S-WALL"),  // short, base confidence
		model.NewLine(0, 0, 100, 0, "S-WALL"),  // below minimum, dropped
	}

	walls := FromLines(lines, DefaultBuildConfig())
	if len(walls) != 2 {
		t.Fatalf("Expected 2 walls, got %d", len(walls))
	}
	if walls[0].Score != 0.8 {
		t.Errorf("Expected 0.8 for long line, got %f", walls[0].Score)
	}
	if walls[1].Score != 0.7 {
		t.Errorf("Expected 0.7 for short line, got %f", walls[1].Score)
	}
	if walls[0].Thickness != 150 || walls[0].Height != 3000 {
		t.Errorf("Expected default thickness/height, got %f/%f", walls[0].Thickness, walls[0].Height)
	}
}
