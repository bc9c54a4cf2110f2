// Package route decomposes a boundary point set into roads: maximal straight
// runs of adjacent lattice points.
//
// Roads are immutable values. Anything that "changes" a road, such as
// splitting it at a junction, builds new roads and replaces the old one in
// the caller's collection.
package route

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/roadnet/pkg/geom"
)

// Road is an ordered sequence of distinct points in which consecutive points
// are one orthogonal step apart. The zero Road has no points and is never
// produced by this package.
type Road struct {
	points []geom.Point
}

// NewRoad copies pts into a road. It does not validate adjacency; use
// [Road.Valid] for that.
func NewRoad(pts ...geom.Point) Road {
	return Road{points: slices.Clone(pts)}
}

// Len returns the number of points.
func (r Road) Len() int { return len(r.points) }

// Start returns the first point.
func (r Road) Start() geom.Point { return r.points[0] }

// End returns the last point.
func (r Road) End() geom.Point { return r.points[len(r.points)-1] }

// At returns the i-th point.
func (r Road) At(i int) geom.Point { return r.points[i] }

// Points returns a copy of the point sequence.
func (r Road) Points() []geom.Point { return slices.Clone(r.points) }

// Index returns the position of p in the road, or -1.
func (r Road) Index(p geom.Point) int { return slices.Index(r.points, p) }

// Contains reports whether p is one of the road's points.
func (r Road) Contains(p geom.Point) bool { return r.Index(p) >= 0 }

// IsEndpoint reports whether p is the Start or End of the road.
func (r Road) IsEndpoint(p geom.Point) bool {
	return len(r.points) > 0 && (r.Start() == p || r.End() == p)
}

// Equal compares full point sequences.
func (r Road) Equal(o Road) bool { return slices.Equal(r.points, o.points) }

// Reversed returns the road walked from End to Start.
func (r Road) Reversed() Road {
	pts := slices.Clone(r.points)
	slices.Reverse(pts)
	return Road{points: pts}
}

// Slice returns a new road holding points [i, j).
func (r Road) Slice(i, j int) Road {
	return Road{points: slices.Clone(r.points[i:j])}
}

// Direction returns the heading from Start to End. ok is false for
// single-point roads.
func (r Road) Direction() (d geom.Direction, ok bool) {
	if len(r.points) < 2 {
		return 0, false
	}
	return geom.DirectionTo(r.points[0], r.points[1])
}

// Valid reports whether the road is non-empty, has distinct points, and
// every consecutive pair is one orthogonal step apart.
func (r Road) Valid() bool {
	if len(r.points) == 0 {
		return false
	}
	seen := make(geom.PointSet, len(r.points))
	for i, p := range r.points {
		if seen.Has(p) {
			return false
		}
		seen.Add(p)
		if i > 0 {
			if _, ok := geom.DirectionTo(r.points[i-1], p); !ok {
				return false
			}
		}
	}
	return true
}

// Straight reports whether every step of the road has the same heading.
func (r Road) Straight() bool {
	d, ok := r.Direction()
	if !ok {
		return len(r.points) == 1
	}
	for i := 1; i < len(r.points); i++ {
		if step, ok := geom.DirectionTo(r.points[i-1], r.points[i]); !ok || step != d {
			return false
		}
	}
	return true
}

// String formats the road as "start→end (n)".
func (r Road) String() string {
	if len(r.points) == 0 {
		return "<empty road>"
	}
	return fmt.Sprintf("%v→%v (%d)", r.Start(), r.End(), len(r.points))
}

// Remove returns roads without the first road equal to target, preserving
// order. The input slice is not modified.
func Remove(roads []Road, target Road) []Road {
	out := make([]Road, 0, len(roads))
	removed := false
	for _, r := range roads {
		if !removed && r.Equal(target) {
			removed = true
			continue
		}
		out = append(out, r)
	}
	return out
}

// TotalPoints sums the lengths of roads.
func TotalPoints(roads []Road) int {
	n := 0
	for _, r := range roads {
		n += r.Len()
	}
	return n
}

// Describe renders one road per line, for debug logging.
func Describe(roads []Road) string {
	var b strings.Builder
	for i, r := range roads {
		fmt.Fprintf(&b, "%3d  %v\n", i, r)
	}
	return b.String()
}
