// Package walls merges wall segments and resolves wall intersections.
//
// CAD drawings represent a single wall as many short collinear segments.
// This package fuses them back into continuous walls and cleans up the
// topology where walls meet.
//
// # Merging
//
// [Merge] runs repeated passes over the wall set. In each pass a wall
// fuses with the first remaining wall that matches its thickness and
// height, is angularly collinear, shares an endpoint within tolerance,
// and passes a third-point collinearity test that rejects
// connected-but-bent pairs. Passes repeat until a fixed point or the
// iteration cap. Confidence of a merged wall is the average of its
// parents, and provenance is recorded in metadata.
//
// # Intersections
//
// [DetectIntersections] collects wall endpoints and pairwise centerline
// crossings, groups them by proximity, and classifies each junction by
// the number of distinct walls meeting there: L-corner (2), T-junction
// (3), X-crossing (4+). [AdjustAtIntersections] snaps endpoints to the
// junction point and extends L-corner endpoints by half the other wall's
// thickness so corner miters close cleanly.
//
// Both operations emit new Wall records and leave their inputs intact.
package walls
