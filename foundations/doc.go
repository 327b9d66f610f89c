// Package foundations detects point foundations from short line
// rectangles.
//
// Pile caps appear on structural drawings as small closed rectangles of
// four uniform-length lines. The [Grouper] filters candidate lines to a
// length window, splits them by orientation, and matches pairs of
// parallel edges into complete rectangles. Only complete four-line
// matches are reported; partial rectangles are silently dropped, a
// deliberate precision-over-recall choice.
package foundations
