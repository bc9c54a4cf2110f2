package geom

import "fmt"

// Box is an axis-aligned rectangle on the integer lattice.
//
// Bounds are inclusive. Left <= Right always holds. YUp selects which Y
// extreme is called Top: with YUp false (screen convention) Top <= Bottom,
// with YUp true (cartesian convention) Top >= Bottom. Boxes are values and
// never change after construction.
type Box struct {
	Left, Right int
	Top, Bottom int
	YUp         bool
}

// NewBox builds a box from two arbitrary opposite corners.
func NewBox(a, b Point, yUp bool) Box {
	lo, hi := min(a.Y, b.Y), max(a.Y, b.Y)
	box := Box{Left: min(a.X, b.X), Right: max(a.X, b.X), YUp: yUp}
	if yUp {
		box.Top, box.Bottom = hi, lo
	} else {
		box.Top, box.Bottom = lo, hi
	}
	return box
}

// BoxFromTopLeft builds a w×h box whose top-left corner is topLeft.
// "Down" is +Y for screen boxes and -Y for cartesian ones.
func BoxFromTopLeft(topLeft Point, w, h int, yUp bool) Box {
	other := Point{X: topLeft.X + w, Y: topLeft.Y + h}
	if yUp {
		other.Y = topLeft.Y - h
	}
	return NewBox(topLeft, other, yUp)
}

// BoxFromCenter builds a w×h box centered on c. For odd sizes the extra unit
// goes to the right and to the larger Y.
func BoxFromCenter(c Point, w, h int, yUp bool) Box {
	left, minY := c.X-w/2, c.Y-h/2
	return NewBox(Point{X: left, Y: minY}, Point{X: left + w, Y: minY + h}, yUp)
}

// Width is Right - Left.
func (b Box) Width() int { return b.Right - b.Left }

// Height is the distance between the Y extremes.
func (b Box) Height() int { return b.MaxY() - b.MinY() }

// MinY is the smaller Y bound, whichever edge it is called.
func (b Box) MinY() int { return min(b.Top, b.Bottom) }

// MaxY is the larger Y bound.
func (b Box) MaxY() int { return max(b.Top, b.Bottom) }

// TopLeft returns the corner at (Left, Top).
func (b Box) TopLeft() Point { return Point{X: b.Left, Y: b.Top} }

// TopRight returns the corner at (Right, Top).
func (b Box) TopRight() Point { return Point{X: b.Right, Y: b.Top} }

// BottomRight returns the corner at (Right, Bottom).
func (b Box) BottomRight() Point { return Point{X: b.Right, Y: b.Bottom} }

// BottomLeft returns the corner at (Left, Bottom).
func (b Box) BottomLeft() Point { return Point{X: b.Left, Y: b.Bottom} }

// Corners returns the four corners clockwise from top-left.
func (b Box) Corners() [4]Point {
	return [4]Point{b.TopLeft(), b.TopRight(), b.BottomRight(), b.BottomLeft()}
}

// Center returns the lattice point nearest the middle of the box.
func (b Box) Center() Point {
	return Point{X: b.Left + b.Width()/2, Y: b.MinY() + b.Height()/2}
}

// Contains reports whether (x, y) lies in the closed rectangle.
func (b Box) Contains(x, y int) bool {
	return x >= b.Left && x <= b.Right && y >= b.MinY() && y <= b.MaxY()
}

// ContainsPoint is Contains for a Point.
func (b Box) ContainsPoint(p Point) bool { return b.Contains(p.X, p.Y) }

// IsOnLeftEdge reports whether (x, y) lies on the left side, corners included.
func (b Box) IsOnLeftEdge(x, y int) bool {
	return x == b.Left && y >= b.MinY() && y <= b.MaxY()
}

// IsOnRightEdge reports whether (x, y) lies on the right side, corners included.
func (b Box) IsOnRightEdge(x, y int) bool {
	return x == b.Right && y >= b.MinY() && y <= b.MaxY()
}

// IsOnTopEdge reports whether (x, y) lies on the side at Y == Top.
func (b Box) IsOnTopEdge(x, y int) bool {
	return y == b.Top && x >= b.Left && x <= b.Right
}

// IsOnBottomEdge reports whether (x, y) lies on the side at Y == Bottom.
func (b Box) IsOnBottomEdge(x, y int) bool {
	return y == b.Bottom && x >= b.Left && x <= b.Right
}

// IsOnEdge reports whether (x, y) lies anywhere on the perimeter.
func (b Box) IsOnEdge(x, y int) bool {
	return b.IsOnLeftEdge(x, y) || b.IsOnRightEdge(x, y) ||
		b.IsOnTopEdge(x, y) || b.IsOnBottomEdge(x, y)
}

// AllEdgePoints returns every perimeter lattice point exactly once, walking
// clockwise from the top-left corner in screen orientation. A W×H box yields
// 2W+2H points; degenerate boxes (zero width or height) yield their segment.
func (b Box) AllEdgePoints() []Point {
	minY, maxY := b.MinY(), b.MaxY()
	if b.Width() == 0 || b.Height() == 0 {
		pts := make([]Point, 0, b.Width()+b.Height()+1)
		for y := minY; y <= maxY; y++ {
			for x := b.Left; x <= b.Right; x++ {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
		return pts
	}

	pts := make([]Point, 0, 2*b.Width()+2*b.Height())
	for x := b.Left; x < b.Right; x++ {
		pts = append(pts, Point{X: x, Y: minY})
	}
	for y := minY; y < maxY; y++ {
		pts = append(pts, Point{X: b.Right, Y: y})
	}
	for x := b.Right; x > b.Left; x-- {
		pts = append(pts, Point{X: x, Y: maxY})
	}
	for y := maxY; y > minY; y-- {
		pts = append(pts, Point{X: b.Left, Y: y})
	}
	return pts
}

// XRangesOverlap reports whether the closed X intervals intersect.
// Touching at a single coordinate counts.
func (b Box) XRangesOverlap(o Box) bool {
	return b.Left <= o.Right && o.Left <= b.Right
}

// YRangesOverlap reports whether the closed Y intervals intersect.
func (b Box) YRangesOverlap(o Box) bool {
	return b.MinY() <= o.MaxY() && o.MinY() <= b.MaxY()
}

// InteriorOverlaps reports whether the open rectangles intersect, i.e. the
// boxes share area and not just boundary.
func (b Box) InteriorOverlaps(o Box) bool {
	return b.Left < o.Right && o.Left < b.Right &&
		b.MinY() < o.MaxY() && o.MinY() < b.MaxY()
}

// SharesEdge reports whether the boxes sit side by side on a common boundary
// segment: exactly one pair of opposite sides coincides, the transverse
// ranges overlap, and the interiors are disjoint. Corner-to-corner contact
// matches two pairs and is not a shared edge.
func (b Box) SharesEdge(o Box) bool {
	if b.InteriorOverlaps(o) {
		return false
	}
	vertical := 0
	if b.Right == o.Left {
		vertical++
	}
	if b.Left == o.Right {
		vertical++
	}
	horizontal := 0
	if b.MaxY() == o.MinY() {
		horizontal++
	}
	if b.MinY() == o.MaxY() {
		horizontal++
	}
	switch {
	case vertical+horizontal != 1:
		return false
	case vertical == 1:
		return b.YRangesOverlap(o)
	default:
		return b.XRangesOverlap(o)
	}
}

// IsEdgeTouching reports whether opposite sides of the boxes are exactly one
// unit apart with overlapping transverse ranges. Such pairs would produce two
// parallel roads on adjacent lattice lines.
func (b Box) IsEdgeTouching(o Box) bool {
	if (o.Left-b.Right == 1 || b.Left-o.Right == 1) && b.YRangesOverlap(o) {
		return true
	}
	return (o.MinY()-b.MaxY() == 1 || b.MinY()-o.MaxY() == 1) && b.XRangesOverlap(o)
}

// String formats the box as "[left,top → right,bottom]".
func (b Box) String() string {
	return fmt.Sprintf("[%d,%d → %d,%d]", b.Left, b.Top, b.Right, b.Bottom)
}
