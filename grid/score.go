package grid

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/planstruct/planstruct/model"
)

// checkRegularity computes the per-axis average spacing and reports
// whether the grid as a whole is regular. An axis with zero gaps is
// vacuously regular; the grid is regular only when both axes are.
func (d *Detector) checkRegularity(hLines, vLines []model.GridLine) (isRegular bool, avgH, avgV float64) {
	hSpacings := axisSpacings(hLines)
	vSpacings := axisSpacings(vLines)

	avgH = meanOrZero(hSpacings)
	avgV = meanOrZero(vSpacings)

	hRegular := d.spacingRegular(hSpacings, avgH)
	vRegular := d.spacingRegular(vSpacings, avgV)

	return hRegular && vRegular, avgH, avgV
}

// spacingRegular reports whether every gap deviates from the mean by
// less than the spacing tolerance fraction. Zero gaps is vacuously
// regular.
func (d *Detector) spacingRegular(spacings []float64, avg float64) bool {
	if len(spacings) == 0 {
		return true
	}
	if avg <= 0 {
		return false
	}
	for _, s := range spacings {
		if math.Abs(s-avg)/avg > d.config.SpacingTolerance {
			return false
		}
	}
	return true
}

// scoreConfidence aggregates line-level confidence, regularity, and
// line-count plausibility into one grid score, clamped to 1.0.
func (d *Detector) scoreConfidence(hLines, vLines []model.GridLine, isRegular bool) float64 {
	base := (meanConfidence(hLines) + meanConfidence(vLines)) / 2

	regularityBonus := 0.0
	if isRegular {
		regularityBonus = 0.1
	}

	// Sparse grids earn nothing extra; very dense grids may be noise
	// and earn only half the bonus.
	countBonus := 0.0
	lineCount := len(hLines) + len(vLines)
	switch {
	case lineCount >= 4 && lineCount <= 20:
		countBonus = 0.1
	case lineCount > 20:
		countBonus = 0.05
	}

	return math.Min(1.0, base+regularityBonus+countBonus)
}

// gridBBox computes the bounding box spanned by the axis positions.
func gridBBox(hLines, vLines []model.GridLine) model.BBox {
	box := model.BBox{
		MinX: math.MaxFloat64, MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64, MaxY: -math.MaxFloat64,
	}
	for _, h := range hLines {
		y := h.Line.Midpoint().Y
		box.MinY = math.Min(box.MinY, y)
		box.MaxY = math.Max(box.MaxY, y)
	}
	for _, v := range vLines {
		x := v.Line.Midpoint().X
		box.MinX = math.Min(box.MinX, x)
		box.MaxX = math.Max(box.MaxX, x)
	}
	return box
}

func axisSpacings(lines []model.GridLine) []float64 {
	spacings := make([]float64, 0, len(lines))
	for _, gl := range lines {
		if gl.SpacingToNext != nil {
			spacings = append(spacings, *gl.SpacingToNext)
		}
	}
	return spacings
}

func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

func meanConfidence(lines []model.GridLine) float64 {
	if len(lines) == 0 {
		return 0
	}
	sum := 0.0
	for _, gl := range lines {
		sum += gl.Score
	}
	return sum / float64(len(lines))
}
