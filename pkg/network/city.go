// Package network splices cities (junctions) into a set of roads and keeps
// the resulting road network consistent.
//
// A [City] has four ports, one per cardinal direction. Each port holds at
// most one road, and that road has an endpoint one step from the city in the
// port's direction. [InsertCity] is the low-level splice; [Network.AddCity]
// also attaches adjacent road ends and relinks ports of earlier cities whose
// roads were split.
package network

import (
	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/route"
)

// City is a junction node at a lattice point.
type City struct {
	Point geom.Point
	ports [4]*route.Road
}

// NewCity returns a city at p with no occupied ports.
func NewCity(p geom.Point) *City {
	return &City{Point: p}
}

// Port returns the road on port d.
func (c *City) Port(d geom.Direction) (route.Road, bool) {
	if !d.Valid() || c.ports[d] == nil {
		return route.Road{}, false
	}
	return *c.ports[d], true
}

// Occupy puts r on port d. Re-occupying a port with an equal road is a
// no-op; a different road fails with ErrCodePortConflict.
func (c *City) Occupy(d geom.Direction, r route.Road) error {
	if !d.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid direction %d", d)
	}
	if cur := c.ports[d]; cur != nil {
		if cur.Equal(r) {
			return nil
		}
		return errors.New(errors.ErrCodePortConflict,
			"city %v: %s port holds %v, refusing %v", c.Point, d, *cur, r)
	}
	c.ports[d] = &r
	return nil
}

// Release empties port d.
func (c *City) Release(d geom.Direction) {
	if d.Valid() {
		c.ports[d] = nil
	}
}

// OccupiedPorts returns the occupied directions in iteration order.
func (c *City) OccupiedPorts() []geom.Direction {
	var dirs []geom.Direction
	for _, d := range geom.Directions {
		if c.ports[d] != nil {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Degree is the number of occupied ports.
func (c *City) Degree() int { return len(c.OccupiedPorts()) }

func (c *City) replacePort(d geom.Direction, r *route.Road) { c.ports[d] = r }
