package network

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/route"
)

// boxNetwork returns the roads of the (0,0)-(10,6) box boundary:
// top (0,0)→(10,0), left (0,1)→(0,6), right (10,1)→(10,6), bottom (1,6)→(9,6).
func boxNetwork(t *testing.T) *Network {
	t.Helper()
	box := geom.NewBox(geom.Pt(0, 0), geom.Pt(10, 6), false)
	roads, err := route.Extract(geom.NewPointSet(box.AllEdgePoints()...), geom.Pt(0, 0), nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return New(roads)
}

func TestAddCityAttachesAdjacent(t *testing.T) {
	n := boxNetwork(t)

	c, err := n.AddCity(geom.Pt(0, 0), nil)
	if err != nil {
		t.Fatalf("AddCity: %v", err)
	}
	east, okE := c.Port(geom.East)
	south, okS := c.Port(geom.South)
	if !okE || !okS || c.Degree() != 2 {
		t.Fatalf("ports = %v, want east and south", c.OccupiedPorts())
	}
	if east.Start() != geom.Pt(1, 0) {
		t.Errorf("east road = %v", east)
	}
	if south.Start() != geom.Pt(0, 1) {
		t.Errorf("south road = %v", south)
	}
	if err := n.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestAddCityRelinksEarlierPorts(t *testing.T) {
	n := boxNetwork(t)

	first, err := n.AddCity(geom.Pt(5, 0), nil)
	if err != nil {
		t.Fatalf("AddCity(5,0): %v", err)
	}
	if _, err := n.AddCity(geom.Pt(2, 0), nil); err != nil {
		t.Fatalf("AddCity(2,0): %v", err)
	}

	west, ok := first.Port(geom.West)
	if !ok {
		t.Fatal("first city lost its west port")
	}
	if !west.IsEndpoint(geom.Pt(4, 0)) || west.Len() != 2 {
		t.Errorf("west port = %v, want the (3,0)-(4,0) stub", west)
	}
	if err := n.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestAddCityReleasesPortToNeighborCity(t *testing.T) {
	n := boxNetwork(t)

	first, err := n.AddCity(geom.Pt(5, 0), nil)
	if err != nil {
		t.Fatalf("AddCity: %v", err)
	}
	if _, err := n.AddCity(geom.Pt(4, 0), nil); err != nil {
		t.Fatalf("AddCity: %v", err)
	}
	if _, ok := first.Port(geom.West); ok {
		t.Error("west port should be released when the neighbor became a city")
	}
	if err := n.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestAddCityRegistersLaterRoadEnds(t *testing.T) {
	n := New([]route.Road{hline(0, 4, 1), vline(5, 0, 3)})

	first, err := n.AddCity(geom.Pt(4, 1), nil)
	if err != nil {
		t.Fatalf("AddCity(4,1): %v", err)
	}
	if _, ok := first.Port(geom.East); ok {
		t.Fatal("east port taken before any road ends next to it")
	}

	// Cutting the top off the vertical road leaves (5,1) as a road end
	// east of the first city.
	if _, err := n.AddCity(geom.Pt(5, 0), nil); err != nil {
		t.Fatalf("AddCity(5,0): %v", err)
	}
	east, ok := first.Port(geom.East)
	if !ok {
		t.Fatal("east port not registered for the new road end")
	}
	if !east.Equal(vline(5, 1, 3)) {
		t.Errorf("east port = %v, want (5,1)→(5,3)", east)
	}
	if err := n.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestAddCityErrors(t *testing.T) {
	n := boxNetwork(t)
	if _, err := n.AddCity(geom.Pt(5, 0), nil); err != nil {
		t.Fatalf("AddCity: %v", err)
	}

	tests := []struct {
		name string
		p    geom.Point
	}{
		{"duplicate", geom.Pt(5, 0)},
		{"off road", geom.Pt(5, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := n.AddCity(tt.p, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		net  func() *Network
		ok   bool
	}{
		{
			name: "clean",
			net:  func() *Network { return New([]route.Road{hline(0, 3, 0), vline(5, 0, 3)}) },
			ok:   true,
		},
		{
			name: "empty road",
			net:  func() *Network { return New([]route.Road{route.NewRoad()}) },
		},
		{
			name: "shared point",
			net:  func() *Network { return New([]route.Road{hline(0, 3, 0), vline(2, 0, 3)}) },
		},
		{
			name: "road through city",
			net: func() *Network {
				n := New([]route.Road{hline(0, 3, 0)})
				n.Cities = append(n.Cities, NewCity(geom.Pt(1, 0)))
				return n
			},
		},
		{
			name: "dead port",
			net: func() *Network {
				n := New([]route.Road{hline(1, 3, 0)})
				c := NewCity(geom.Pt(0, 0))
				_ = c.Occupy(geom.East, hline(1, 4, 0))
				n.Cities = append(n.Cities, c)
				return n
			},
		},
		{
			name: "unregistered road end",
			net: func() *Network {
				n := New([]route.Road{hline(0, 3, 1), vline(5, 1, 3)})
				c := NewCity(geom.Pt(4, 1))
				_ = c.Occupy(geom.West, hline(0, 3, 1))
				n.Cities = append(n.Cities, c)
				return n
			},
		},
		{
			name: "port road not adjacent",
			net: func() *Network {
				n := New([]route.Road{hline(2, 3, 0)})
				c := NewCity(geom.Pt(0, 0))
				_ = c.Occupy(geom.East, hline(2, 3, 0))
				n.Cities = append(n.Cities, c)
				return n
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.net().Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInternal) {
				t.Errorf("err = %v, want INTERNAL", err)
			}
		})
	}
}

func TestStats(t *testing.T) {
	n := boxNetwork(t)
	if _, err := n.AddCity(geom.Pt(5, 0), nil); err != nil {
		t.Fatalf("AddCity: %v", err)
	}

	s := n.Stats()
	want := Stats{Cities: 1, Roads: 5, Points: 31, Ports: 2, LongestRoad: 9}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
}

func TestDocumentJSON(t *testing.T) {
	n := boxNetwork(t)
	for _, p := range []geom.Point{geom.Pt(0, 0), geom.Pt(5, 6)} {
		if _, err := n.AddCity(p, nil); err != nil {
			t.Fatalf("AddCity(%v): %v", p, err)
		}
	}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Network
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Stats() != n.Stats() {
		t.Errorf("Stats() = %+v, want %+v", got.Stats(), n.Stats())
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate after round trip: %v", err)
	}
	for i, c := range n.Cities {
		gc := got.Cities[i]
		for _, d := range geom.Directions {
			want, okW := c.Port(d)
			have, okH := gc.Port(d)
			if okW != okH || !want.Equal(have) {
				t.Errorf("city %v port %s = %v, want %v", c.Point, d, have, want)
			}
		}
	}
}

func TestFromDocumentErrors(t *testing.T) {
	roads := [][][2]int{{{0, 0}, {1, 0}}}
	tests := []struct {
		name string
		doc  Document
	}{
		{"empty road", Document{Roads: [][][2]int{{}}}},
		{"bad direction", Document{Roads: roads, Cities: []CityDocument{{X: 2, Y: 0, Ports: map[string]int{"up": 0}}}}},
		{"bad index", Document{Roads: roads, Cities: []CityDocument{{X: 2, Y: 0, Ports: map[string]int{"west": 3}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromDocument(tt.doc); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}
