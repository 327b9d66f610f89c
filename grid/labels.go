package grid

import (
	"strconv"

	"github.com/planstruct/planstruct/model"
)

// AlphaLabel returns the alphabetic label for a zero-based axis index:
// A..Z for the first 26, then AA, AB, AC and so on.
func AlphaLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	first := rune('A' + i/26 - 1)
	second := rune('A' + i%26)
	return string(first) + string(second)
}

// labelAxis assigns sequential labels in sort order: letters for
// horizontal lines, numbers starting at 1 for vertical lines. Labels are
// purely positional and never reassigned.
func labelAxis(lines []model.GridLine, isVertical bool) {
	for i := range lines {
		if isVertical {
			lines[i].Label = strconv.Itoa(i + 1)
		} else {
			lines[i].Label = AlphaLabel(i)
		}
	}
}

// buildIntersections materializes the full cross-product of horizontal
// and vertical axes. Each point is (vertical line's X, horizontal line's
// Y) rather than a computed line-line intersection: axes are already
// orientation-separated and assumed orthogonal at this stage.
func buildIntersections(hLines, vLines []model.GridLine) []model.GridIntersection {
	intersections := make([]model.GridIntersection, 0, len(hLines)*len(vLines))

	for _, h := range hLines {
		hy := h.Line.Midpoint().Y
		for _, v := range vLines {
			vx := v.Line.Midpoint().X

			confidence := h.Score
			if v.Score < confidence {
				confidence = v.Score
			}

			intersections = append(intersections, model.GridIntersection{
				Provisional: model.NewProvisional(confidence, ""),
				Point:       model.Point{X: vx, Y: hy},
				GridH:       h.Label,
				GridV:       v.Label,
			})
		}
	}

	return intersections
}
