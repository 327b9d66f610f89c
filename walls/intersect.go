package walls

import (
	"math"
	"sort"

	"github.com/planstruct/planstruct/model"
)

// IntersectConfig holds tolerances for wall intersection detection and
// corner adjustment.
type IntersectConfig struct {
	// Distance tolerance for grouping candidate points, in drawing units.
	EndpointTolerance float64

	// Distance tolerance for detecting segment crossings; extends the
	// intersection parameter range past segment ends proportionally to
	// tolerance/segment-length, capturing near-miss corners.
	IntersectionTolerance float64

	// Distance within which wall endpoints snap to an intersection.
	SnapTolerance float64

	// Whether to extend snapped endpoints at L-corners by half the other
	// wall's thickness so corner miters close without a gap.
	ExtendForThickness bool
}

// DefaultIntersectConfig returns default intersection settings.
func DefaultIntersectConfig() IntersectConfig {
	return IntersectConfig{
		EndpointTolerance:     50.0,
		IntersectionTolerance: 50.0,
		SnapTolerance:         50.0,
		ExtendForThickness:    true,
	}
}

// candidate is one (point, wall) vote toward an intersection group.
type candidate struct {
	point model.Point
	wall  int
}

// SegmentIntersection finds the crossing point of two segments using the
// 2x2 determinant method. The parameter range is extended past segment
// ends by tolerance/segment-length so near-miss corners are captured.
// Parallel or degenerate pairs return false.
func SegmentIntersection(a, b model.Line, tolerance float64) (model.Point, bool) {
	x1, y1 := a.Start.X, a.Start.Y
	x2, y2 := a.End.X, a.End.Y
	x3, y3 := b.Start.X, b.Start.Y
	x4, y4 := b.End.X, b.End.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-10 {
		return model.Point{}, false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / denom

	maxLen := math.Max(a.Length(), b.Length())
	if maxLen < model.Epsilon {
		return model.Point{}, false
	}
	slack := tolerance / maxLen

	if t < -slack || t > 1+slack || u < -slack || u > 1+slack {
		return model.Point{}, false
	}

	return model.Point{
		X: x1 + t*(x2-x1),
		Y: y1 + t*(y2-y1),
	}, true
}

// DetectIntersections finds points where wall centerlines meet or cross:
// endpoint-to-endpoint meetings, T-junctions, and X-crossings. Candidate
// points are every wall endpoint plus every pairwise segment crossing;
// a crossing contributes a vote only for walls without an endpoint
// already at that point. Candidates then group by proximity, and a
// group becomes an intersection only when it references more than one
// wall.
func DetectIntersections(walls []model.Wall, cfg IntersectConfig) []model.WallIntersection {
	if len(walls) < 2 {
		return nil
	}

	candidates := make([]candidate, 0, len(walls)*2)
	for i, w := range walls {
		candidates = append(candidates,
			candidate{point: w.Centerline.Start, wall: i},
			candidate{point: w.Centerline.End, wall: i},
		)
	}

	for i := 0; i < len(walls); i++ {
		for j := i + 1; j < len(walls); j++ {
			point, ok := SegmentIntersection(walls[i].Centerline, walls[j].Centerline, cfg.IntersectionTolerance)
			if !ok {
				continue
			}

			// A crossing adds a vote for each wall not already
			// represented near this point; a wall whose own endpoint
			// sits here must not be counted twice.
			for _, w := range [2]int{i, j} {
				if !hasVoteNear(candidates, point, w, cfg.EndpointTolerance) {
					candidates = append(candidates, candidate{point: point, wall: w})
				}
			}
		}
	}

	return groupCandidates(candidates, cfg.EndpointTolerance)
}

// hasVoteNear reports whether a candidate for the given wall already
// exists within tolerance of the point.
func hasVoteNear(candidates []candidate, point model.Point, wall int, tolerance float64) bool {
	for _, c := range candidates {
		if c.wall == wall && c.point.Close(point, tolerance) {
			return true
		}
	}
	return false
}

// groupCandidates clusters candidate points by proximity. The canonical
// intersection point is the arithmetic mean of the group.
func groupCandidates(candidates []candidate, tolerance float64) []model.WallIntersection {
	var intersections []model.WallIntersection
	processed := make([]bool, len(candidates))

	for idx, seed := range candidates {
		if processed[idx] {
			continue
		}

		group := []int{idx}
		wallSet := map[int]bool{seed.wall: true}

		for other := range candidates {
			if other == idx || processed[other] {
				continue
			}
			if seed.point.Close(candidates[other].point, tolerance) {
				group = append(group, other)
				wallSet[candidates[other].wall] = true
			}
		}

		for _, g := range group {
			processed[g] = true
		}

		if len(wallSet) < 2 {
			continue
		}

		var sumX, sumY float64
		for _, g := range group {
			sumX += candidates[g].point.X
			sumY += candidates[g].point.Y
		}
		n := float64(len(group))

		indices := make([]int, 0, len(wallSet))
		for w := range wallSet {
			indices = append(indices, w)
		}
		sort.Ints(indices)

		intersections = append(intersections, model.WallIntersection{
			Point:       model.Point{X: sumX / n, Y: sumY / n},
			WallIndices: indices,
		})
	}

	return intersections
}

// AdjustAtIntersections snaps wall endpoints to the intersections they
// participate in and, for L-corners only, extends the snapped endpoint
// outward by half the other wall's thickness. With three or more walls
// the extension direction is ambiguous, so T-junctions and X-crossings
// are snapped but never extended. Adjusted walls are emitted as new
// records; untouched walls pass through unchanged.
func AdjustAtIntersections(walls []model.Wall, intersections []model.WallIntersection, cfg IntersectConfig) []model.Wall {
	if len(intersections) == 0 {
		return walls
	}

	adjusted := make([]model.Wall, 0, len(walls))

	for i, wall := range walls {
		newStart := wall.Centerline.Start
		newEnd := wall.Centerline.End
		touched := false

		for _, x := range intersections {
			pos := indexOf(x.WallIndices, i)
			if pos < 0 {
				continue
			}

			startHit := wall.Centerline.Start.Close(x.Point, cfg.SnapTolerance)
			endHit := wall.Centerline.End.Close(x.Point, cfg.SnapTolerance)

			if startHit {
				newStart = x.Point
				touched = true
			}
			if endHit {
				newEnd = x.Point
				touched = true
			}

			if cfg.ExtendForThickness && len(x.WallIndices) == 2 {
				other := walls[x.WallIndices[1-pos]]
				extension := other.Thickness / 2

				if startHit {
					newStart = extendAway(newStart, wall.Centerline.End, extension)
				}
				if endHit {
					newEnd = extendAway(newEnd, wall.Centerline.Start, extension)
				}
			}
		}

		if !touched {
			adjusted = append(adjusted, wall)
			continue
		}

		prov := model.NewProvisional(wall.Score, wall.Layer)
		prov.Metadata = withAdjustedFlag(wall.Metadata)

		adjusted = append(adjusted, model.Wall{
			Provisional: prov,
			Centerline: model.Line{
				Start: newStart,
				End:   newEnd,
				Layer: wall.Centerline.Layer,
			},
			Thickness:    wall.Thickness,
			Height:       wall.Height,
			IsExterior:   wall.IsExterior,
			IsStructural: wall.IsStructural,
		})
	}

	return adjusted
}

// extendAway moves point further from anchor by the given distance along
// the anchor→point direction. Degenerate (coincident) pairs are left
// unmoved.
func extendAway(point, anchor model.Point, distance float64) model.Point {
	dx := point.X - anchor.X
	dy := point.Y - anchor.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length <= 0 {
		return point
	}
	return model.Point{
		X: point.X + dx/length*distance,
		Y: point.Y + dy/length*distance,
	}
}

func withAdjustedFlag(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta)+1)
	for k, v := range meta {
		out[k] = v
	}
	out["adjusted_at_intersection"] = true
	return out
}

func indexOf(values []int, v int) int {
	for i, val := range values {
		if val == v {
			return i
		}
	}
	return -1
}
