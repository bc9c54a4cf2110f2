// Package geom provides the integer lattice vocabulary used by roadnet:
// points, cardinal directions, point sets, oriented rectangles and boundary
// extraction over stacks of rectangles.
//
// # Coordinates
//
// Directions follow the grid convention used by tile maps: North decreases Y,
// South increases Y. A [Box] carries its own vertical orientation flag that
// only decides which Y extreme is called "top"; containment and overlap
// predicates are orientation independent.
//
// # Boundaries
//
// A stack of boxes is ordered topmost first. Two boundary views exist:
//
//   - [OuterEdgePoints] keeps a boundary point only when no other box in the
//     stack covers it, regardless of order. It is the silhouette of the union.
//   - [EdgePointsTopToBottom] never trims a higher box's boundary; a lower
//     box contributes only the part of its boundary not covered by any box
//     above it.
//
// Road extraction walks the top-to-bottom view. The outer view of the topmost
// box is used only to choose the corner the walk starts from.
package geom
