// Package footprint builds compound footprints: ordered stacks of
// overlapping boxes whose exposed boundary becomes the road network.
//
// A [Footprint] is immutable. Index 0 is the topmost box; boxes placed later
// go underneath, so they only add boundary where nothing above covers it.
package footprint

import (
	"github.com/matzehuels/roadnet/pkg/geom"
)

// Footprint is an ordered, immutable stack of boxes, topmost first.
type Footprint struct {
	boxes []geom.Box
}

// New builds a footprint from boxes ordered topmost first. The slice is copied.
func New(boxes ...geom.Box) Footprint {
	return Footprint{boxes: append([]geom.Box(nil), boxes...)}
}

// Boxes returns a copy of the stack.
func (f Footprint) Boxes() []geom.Box {
	return append([]geom.Box(nil), f.boxes...)
}

// Len returns the number of boxes.
func (f Footprint) Len() int { return len(f.boxes) }

// At returns the i-th box from the top.
func (f Footprint) At(i int) geom.Box { return f.boxes[i] }

// Top returns the topmost box. ok is false for an empty footprint.
func (f Footprint) Top() (b geom.Box, ok bool) {
	if len(f.boxes) == 0 {
		return geom.Box{}, false
	}
	return f.boxes[0], true
}

// With returns a new footprint with b added beneath every existing box.
func (f Footprint) With(b geom.Box) Footprint {
	boxes := make([]geom.Box, len(f.boxes), len(f.boxes)+1)
	copy(boxes, f.boxes)
	return Footprint{boxes: append(boxes, b)}
}

// Boundary is the layered boundary fed to route extraction.
func (f Footprint) Boundary() geom.PointSet {
	return geom.EdgePointsTopToBottom(f.boxes)
}

// Outline is the silhouette of the whole stack.
func (f Footprint) Outline() geom.PointSet {
	return geom.OuterEdgePoints(f.boxes)
}

// Bounds returns the smallest box enclosing the stack, in the orientation of
// the topmost box.
func (f Footprint) Bounds() geom.Box {
	if len(f.boxes) == 0 {
		return geom.Box{}
	}
	first := f.boxes[0]
	lo := geom.Pt(first.Left, first.MinY())
	hi := geom.Pt(first.Right, first.MaxY())
	for _, b := range f.boxes[1:] {
		lo.X, lo.Y = min(lo.X, b.Left), min(lo.Y, b.MinY())
		hi.X, hi.Y = max(hi.X, b.Right), max(hi.Y, b.MaxY())
	}
	return geom.NewBox(lo, hi, first.YUp)
}
