// Package layers maps CAD layer names to element categories.
//
// Drawings encode element semantics in layer names ("S-FNDN-HDLN",
// "A-WALL-INTR"). A [Mapping] holds glob patterns per category, loaded
// from TOML; [Default] returns an embedded mapping following AIA
// conventions. Mappings are immutable values constructed explicitly and
// passed into detection calls.
package layers
