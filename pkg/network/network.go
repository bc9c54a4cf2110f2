package network

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/route"
)

// Network is a set of roads joined at cities.
type Network struct {
	Cities []*City
	Roads  []route.Road
}

// New returns a network over roads with no cities. roads is copied.
func New(roads []route.Road) *Network {
	return &Network{Roads: slices.Clone(roads)}
}

// CityAt returns the city at p, or nil.
func (n *Network) CityAt(p geom.Point) *City {
	for _, c := range n.Cities {
		if c.Point == p {
			return c
		}
	}
	return nil
}

// RoadAt returns the index of the road containing p, or -1.
func (n *Network) RoadAt(p geom.Point) int {
	for i, r := range n.Roads {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}

// AddCity inserts a city at p. Besides splitting the roads through p, it
// points ports of earlier cities at the roads that replaced theirs, and
// occupies every free port of every city that faces a road end.
//
// p must lie on a road and must not already hold a city.
func (n *Network) AddCity(p geom.Point, logger *log.Logger) (*City, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if n.CityAt(p) != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "city already exists at %v", p)
	}
	if n.RoadAt(p) < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%v is not on any road", p)
	}

	city := NewCity(p)
	roads, err := InsertCity(city, n.Roads, logger)
	if err != nil {
		return nil, err
	}

	n.Roads = roads
	n.relink(logger)
	n.Cities = append(n.Cities, city)
	// The split may leave new road ends next to free ports of any city.
	for _, c := range n.Cities {
		n.attachAdjacent(c, n.Roads, logger)
	}
	return city, nil
}

// attachAdjacent occupies free ports of city with roads that end one step
// away from it.
func (n *Network) attachAdjacent(city *City, roads []route.Road, logger *log.Logger) {
	for _, d := range geom.Directions {
		if _, taken := city.Port(d); taken {
			continue
		}
		q := city.Point.Step(d)
		for _, r := range roads {
			if r.IsEndpoint(q) {
				_ = city.Occupy(d, r)
				logger.Debug("attached adjacent road", "city", city.Point, "port", d, "road", r)
				break
			}
		}
	}
}

// relink repairs ports of existing cities whose road was replaced. The
// successor is the live road with an endpoint next to the city on that port;
// without one the port is released.
func (n *Network) relink(logger *log.Logger) {
	for _, c := range n.Cities {
		for _, d := range c.OccupiedPorts() {
			cur, _ := c.Port(d)
			if slices.ContainsFunc(n.Roads, cur.Equal) {
				continue
			}
			q := c.Point.Step(d)
			idx := slices.IndexFunc(n.Roads, func(r route.Road) bool { return r.IsEndpoint(q) })
			if idx < 0 {
				logger.Debug("released stale port", "city", c.Point, "port", d)
				c.Release(d)
				continue
			}
			succ := n.Roads[idx]
			c.replacePort(d, &succ)
			logger.Debug("relinked port", "city", c.Point, "port", d, "road", succ)
		}
	}
}

// Validate checks the network invariants: every road is a non-empty lattice
// path, no point belongs to two roads, no road passes through a city, and
// every occupied port holds a live road ending next to the city in the
// port's direction. Conversely, every road end next to a city must be held
// by the port facing it. Violations are ErrCodeInternal errors.
func (n *Network) Validate() error {
	owner := make(map[geom.Point]int)
	for i, r := range n.Roads {
		if r.Len() == 0 {
			return errors.New(errors.ErrCodeInternal, "road %d is empty", i)
		}
		if !r.Valid() {
			return errors.New(errors.ErrCodeInternal, "road %d (%v) is not a lattice path", i, r)
		}
		for _, p := range r.Points() {
			if j, dup := owner[p]; dup {
				return errors.New(errors.ErrCodeInternal, "point %v owned by roads %d and %d", p, j, i)
			}
			owner[p] = i
		}
	}

	seen := geom.NewPointSet()
	for _, c := range n.Cities {
		if seen.Has(c.Point) {
			return errors.New(errors.ErrCodeInternal, "two cities at %v", c.Point)
		}
		seen.Add(c.Point)
		if i, ok := owner[c.Point]; ok {
			return errors.New(errors.ErrCodeInternal, "road %d passes through city %v", i, c.Point)
		}
		for _, d := range geom.Directions {
			q := c.Point.Step(d)
			r, taken := c.Port(d)
			if i, ok := owner[q]; ok && n.Roads[i].IsEndpoint(q) && !(taken && r.Equal(n.Roads[i])) {
				return errors.New(errors.ErrCodeInternal, "city %v: road %v ends at its %s port unregistered", c.Point, n.Roads[i], d)
			}
			if !taken {
				continue
			}
			if !slices.ContainsFunc(n.Roads, r.Equal) {
				return errors.New(errors.ErrCodeInternal, "city %v: %s port holds dead road %v", c.Point, d, r)
			}
			if !r.IsEndpoint(c.Point.Step(d)) {
				return errors.New(errors.ErrCodeInternal, "city %v: %s port road %v does not end next to it", c.Point, d, r)
			}
		}
	}
	return nil
}

// Stats summarizes a network.
type Stats struct {
	Cities      int `json:"cities" bson:"cities"`
	Roads       int `json:"roads" bson:"roads"`
	Points      int `json:"points" bson:"points"`
	Ports       int `json:"ports" bson:"ports"`
	LongestRoad int `json:"longest_road" bson:"longest_road"`
}

// Stats computes summary counts.
func (n *Network) Stats() Stats {
	s := Stats{Cities: len(n.Cities), Roads: len(n.Roads), Points: route.TotalPoints(n.Roads)}
	for _, r := range n.Roads {
		s.LongestRoad = max(s.LongestRoad, r.Len())
	}
	for _, c := range n.Cities {
		s.Ports += c.Degree()
	}
	return s
}
