// Package grid detects building grids from unstructured 2D line geometry.
//
// A building grid is the pair of orthogonal structural axis sets found on
// CAD drawings: horizontal axes labeled A, B, C... and vertical axes
// labeled 1, 2, 3... The detector recovers them from noisy line sets
// using orientation clustering and robust spacing statistics.
//
// # Detection
//
// The [Detector] runs a multi-step algorithm:
//
//  1. Length filtering - short annotation strokes are discarded
//  2. Orientation clustering - lines bucket into horizontal/vertical
//     within an angle tolerance; diagonals are ignored
//  3. Spacing analysis - each axis projects to scalar positions; the
//     dominant spacing is the median gap, and each line is scored by its
//     deviation from it
//  4. Labeling and intersection building - sequential positional labels,
//     then the full horizontal x vertical intersection cross-product
//  5. Scoring - regularity and line-count plausibility fold into one
//     grid confidence
//
// Detection failure is reported through [ErrInsufficientData] and
// [ErrNoPattern]; both mean "no grid" and are recoverable for callers
// that do not depend on grid output.
//
// # Configuration
//
// Behavior is controlled by [Config]:
//
//	cfg := grid.DefaultConfig()
//	cfg.MinGridLines = 3
//	detector := grid.NewDetector(cfg, nil)
//	g, err := detector.Detect(lines)
package grid
