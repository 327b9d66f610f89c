// Package model provides the data model for detected building elements.
//
// This package defines the value types that every detection pipeline
// produces, making them the primary API for consuming detection results.
//
// # Elements
//
// All detected building elements implement the [Element] interface. The
// set of implementations is closed:
//
//   - [GridLine] - one structural reference axis
//   - [GridIntersection] - a grid axis crossing point
//   - [BuildingGrid] - the complete grid system
//   - [Wall] - a wall described by its centerline
//   - [Column] - a vertical structural element
//   - [Slab] - a floor or roof plate
//   - [Foundation] - a point foundation (pile cap)
//
// Elements are immutable snapshots created by one detection pass.
// Confidence is a [0, 1] heuristic score, not a statistical probability;
// [LevelFor] buckets it into coarse categories for human review.
//
// # Geometry
//
// Geometric primitives support the detection heuristics:
//
//   - [Point] - 2D point with distance and tolerance-based equality
//   - [Line] - directed segment with length, angle, and orientation tests
//   - [BBox] - axis-aligned bounding box
//
// Orientation tests are symmetric under direction reversal: a segment and
// its reverse always classify identically.
package model
