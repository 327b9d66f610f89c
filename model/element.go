package model

// ElementType identifies the kind of a detected building element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeGrid
	ElementTypeGridLine
	ElementTypeGridIntersection
	ElementTypeWall
	ElementTypeColumn
	ElementTypeSlab
	ElementTypeFoundation
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeGrid:
		return "Grid"
	case ElementTypeGridLine:
		return "GridLine"
	case ElementTypeGridIntersection:
		return "GridIntersection"
	case ElementTypeWall:
		return "Wall"
	case ElementTypeColumn:
		return "Column"
	case ElementTypeSlab:
		return "Slab"
	case ElementTypeFoundation:
		return "Foundation"
	default:
		return "Unknown"
	}
}

// Element is the interface implemented by every detected building element.
// The set of implementations is closed: GridLine, GridIntersection,
// BuildingGrid, Wall, Column, Slab, and Foundation.
type Element interface {
	Type() ElementType
	BoundingBox() BBox
	Confidence() float64
	GUID() string
	SourceLayer() string
}

// ConfidenceLevel buckets a confidence score into coarse categories for
// human review.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"   // 0.8-1.0
	ConfidenceMedium ConfidenceLevel = "medium" // 0.5-0.79
	ConfidenceLow    ConfidenceLevel = "low"    // 0.0-0.49
)

// LevelFor returns the confidence level for a score.
func LevelFor(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 0.8:
		return ConfidenceHigh
	case confidence >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
