package geom

import (
	"maps"
	"slices"
)

// PointSet is an unordered set of lattice points.
type PointSet map[Point]struct{}

// NewPointSet builds a set from pts.
func NewPointSet(pts ...Point) PointSet {
	s := make(PointSet, len(pts))
	for _, p := range pts {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts p.
func (s PointSet) Add(p Point) { s[p] = struct{}{} }

// Has reports membership of p.
func (s PointSet) Has(p Point) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of points.
func (s PointSet) Len() int { return len(s) }

// Union adds every point of other to s.
func (s PointSet) Union(other PointSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Equal reports whether both sets hold the same points.
func (s PointSet) Equal(other PointSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

// Sorted returns the points in row-major order. Map iteration is random in
// Go, so anything drawing from a set with a seeded source must go through here.
func (s PointSet) Sorted() []Point {
	pts := slices.Collect(maps.Keys(s))
	slices.SortFunc(pts, Point.Compare)
	return pts
}

// Neighbors returns the directions, in iteration order, whose one-step
// neighbor of p is in s.
func (s PointSet) Neighbors(p Point) []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if s.Has(p.Step(d)) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
