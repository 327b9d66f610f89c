package walls

import (
	"github.com/planstruct/planstruct/model"
)

// MergeConfig holds tolerances for collinear segment merging.
type MergeConfig struct {
	// Angular tolerance for collinearity, in radians.
	AngleTolerance float64

	// Endpoint proximity tolerance, in drawing units.
	PointTolerance float64

	// Perpendicular-distance tolerance for the third-point collinearity
	// test, in drawing units. Rejects connected-but-bent segments.
	CollinearTolerance float64

	// Maximum thickness/height difference for merge candidates.
	ThicknessTolerance float64

	// Maximum merge passes. The cap is a safety valve, not a
	// correctness requirement: hitting it returns the partial result.
	MaxIterations int
}

// DefaultMergeConfig returns default merge settings.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		AngleTolerance:     0.017, // ~1 degree
		PointTolerance:     10.0,
		CollinearTolerance: 50.0,
		ThicknessTolerance: 1.0,
		MaxIterations:      10,
	}
}

// Connection describes how two wall segments join end-to-end.
type Connection string

const (
	ConnectionNone         Connection = ""
	ConnectionEndToStart   Connection = "end_to_start"
	ConnectionStartToEnd   Connection = "start_to_end"
	ConnectionEndToEnd     Connection = "end_to_end"     // second wall reversed
	ConnectionStartToStart Connection = "start_to_start" // first wall reversed
)

// CanMerge reports whether two walls can fuse into one continuous wall,
// and how their endpoints connect. The four connection cases are checked
// in fixed order and the first satisfying case wins; on ambiguous inputs
// this makes the result depend on candidate ordering.
func CanMerge(w1, w2 model.Wall, cfg MergeConfig) (bool, Connection) {
	if abs(w1.Thickness-w2.Thickness) > cfg.ThicknessTolerance ||
		abs(w1.Height-w2.Height) > cfg.ThicknessTolerance {
		return false, ConnectionNone
	}

	if !model.AnglesCollinear(w1.Centerline.Angle(), w2.Centerline.Angle(), cfg.AngleTolerance) {
		return false, ConnectionNone
	}

	s1, e1 := w1.Centerline.Start, w1.Centerline.End
	s2, e2 := w2.Centerline.Start, w2.Centerline.End

	if e1.Close(s2, cfg.PointTolerance) &&
		model.PointsCollinear(s1, e1, e2, cfg.CollinearTolerance) {
		return true, ConnectionEndToStart
	}
	if s1.Close(e2, cfg.PointTolerance) &&
		model.PointsCollinear(e1, s1, s2, cfg.CollinearTolerance) {
		return true, ConnectionStartToEnd
	}
	if e1.Close(e2, cfg.PointTolerance) &&
		model.PointsCollinear(s1, e1, s2, cfg.CollinearTolerance) {
		return true, ConnectionEndToEnd
	}
	if s1.Close(s2, cfg.PointTolerance) &&
		model.PointsCollinear(e1, s1, e2, cfg.CollinearTolerance) {
		return true, ConnectionStartToStart
	}

	return false, ConnectionNone
}

// mergeTwo fuses two walls into a new wall spanning the two outer
// endpoints. Confidence is the average of the parents; merge provenance
// is recorded in metadata.
func mergeTwo(w1, w2 model.Wall, conn Connection) model.Wall {
	var start, end model.Point
	switch conn {
	case ConnectionEndToStart:
		start, end = w1.Centerline.Start, w2.Centerline.End
	case ConnectionStartToEnd:
		start, end = w2.Centerline.Start, w1.Centerline.End
	case ConnectionEndToEnd:
		start, end = w1.Centerline.Start, w2.Centerline.Start
	case ConnectionStartToStart:
		start, end = w1.Centerline.End, w2.Centerline.End
	}

	prov := model.NewProvisional((w1.Score+w2.Score)/2, w1.Layer)
	prov.Metadata = mergedMetadata(w1, w2)

	return model.Wall{
		Provisional: prov,
		Centerline: model.Line{
			Start: start,
			End:   end,
			Layer: w1.Centerline.Layer,
		},
		Thickness:    w1.Thickness,
		Height:       w1.Height,
		IsExterior:   w1.IsExterior,
		IsStructural: w1.IsStructural,
	}
}

func mergedMetadata(w1, w2 model.Wall) map[string]any {
	meta := make(map[string]any, len(w1.Metadata)+2)
	for k, v := range w1.Metadata {
		meta[k] = v
	}
	meta["merged_from"] = w1.ID + "," + w2.ID
	meta["segment_count"] = segmentCount(w1) + segmentCount(w2)
	return meta
}

func segmentCount(w model.Wall) int {
	if n, ok := w.Metadata["segment_count"].(int); ok {
		return n
	}
	return 1
}

// Merge iteratively fuses collinear, endpoint-adjacent wall segments of
// matching thickness and height into continuous walls. Within one pass a
// consumed wall is never matched again; passes repeat until a pass
// produces zero merges or the iteration cap is reached. Merging is
// idempotent: re-running on a fixed-point result changes nothing.
func Merge(walls []model.Wall, cfg MergeConfig) []model.Wall {
	if len(walls) == 0 {
		return nil
	}

	current := make([]model.Wall, len(walls))
	copy(current, walls)

	for iteration := 0; iteration < cfg.MaxIterations; iteration++ {
		next := make([]model.Wall, 0, len(current))
		consumed := make([]bool, len(current))
		merges := 0

		for i := range current {
			if consumed[i] {
				continue
			}

			matched := false
			for j := i + 1; j < len(current); j++ {
				if consumed[j] {
					continue
				}
				if ok, conn := CanMerge(current[i], current[j], cfg); ok {
					next = append(next, mergeTwo(current[i], current[j], conn))
					consumed[i] = true
					consumed[j] = true
					merges++
					matched = true
					break
				}
			}

			if !matched {
				next = append(next, current[i])
				consumed[i] = true
			}
		}

		current = next
		if merges == 0 {
			break
		}
	}

	return current
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
