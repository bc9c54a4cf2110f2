package network

import (
	"testing"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/route"
)

func hline(x0, x1, y int) route.Road {
	var pts []geom.Point
	if x0 <= x1 {
		for x := x0; x <= x1; x++ {
			pts = append(pts, geom.Pt(x, y))
		}
	} else {
		for x := x0; x >= x1; x-- {
			pts = append(pts, geom.Pt(x, y))
		}
	}
	return route.NewRoad(pts...)
}

func vline(x, y0, y1 int) route.Road {
	var pts []geom.Point
	for y := y0; y <= y1; y++ {
		pts = append(pts, geom.Pt(x, y))
	}
	return route.NewRoad(pts...)
}

func TestInsertCityEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		city     geom.Point
		wantRoad route.Road
		wantPort geom.Direction
	}{
		{"start", geom.Pt(0, 0), hline(1, 4, 0), geom.East},
		{"end", geom.Pt(4, 0), hline(0, 3, 0), geom.West},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := hline(0, 4, 0)
			city := NewCity(tt.city)

			out, err := InsertCity(city, []route.Road{orig}, nil)
			if err != nil {
				t.Fatalf("InsertCity: %v", err)
			}
			if len(out) != 1 || !out[0].Equal(tt.wantRoad) {
				t.Fatalf("roads = %v, want [%v]", out, tt.wantRoad)
			}
			if out[0].Len() != orig.Len()-1 {
				t.Errorf("replacement length %d, want %d", out[0].Len(), orig.Len()-1)
			}
			if city.Degree() != 1 {
				t.Errorf("Degree() = %d, want 1", city.Degree())
			}
			if r, ok := city.Port(tt.wantPort); !ok || !r.Equal(tt.wantRoad) {
				t.Errorf("port %s = %v, %v", tt.wantPort, r, ok)
			}
		})
	}
}

func TestInsertCityInterior(t *testing.T) {
	orig := vline(3, 0, 6)
	city := NewCity(geom.Pt(3, 2))

	out, err := InsertCity(city, []route.Road{orig}, nil)
	if err != nil {
		t.Fatalf("InsertCity: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d roads, want 2", len(out))
	}
	if got := route.TotalPoints(out); got != orig.Len()-1 {
		t.Errorf("combined length %d, want %d", got, orig.Len()-1)
	}

	north, okN := city.Port(geom.North)
	south, okS := city.Port(geom.South)
	if !okN || !okS || city.Degree() != 2 {
		t.Fatalf("ports = %v, want north and south", city.OccupiedPorts())
	}
	if north.Start() != geom.Pt(3, 1) || north.End() != geom.Pt(3, 0) {
		t.Errorf("north road = %v, want (3,1)→(3,0)", north)
	}
	if south.Start() != geom.Pt(3, 3) || south.End() != geom.Pt(3, 6) {
		t.Errorf("south road = %v, want (3,3)→(3,6)", south)
	}
	for _, r := range out {
		if r.Contains(city.Point) {
			t.Errorf("road %v still contains the city", r)
		}
	}
}

func TestInsertCityShortestInterior(t *testing.T) {
	// Three points is the shortest road with an interior point.
	city := NewCity(geom.Pt(1, 0))
	out, err := InsertCity(city, []route.Road{hline(0, 2, 0)}, nil)
	if err != nil {
		t.Fatalf("InsertCity: %v", err)
	}
	if len(out) != 2 || out[0].Len() != 1 || out[1].Len() != 1 {
		t.Fatalf("roads = %v, want two single-point roads", out)
	}
	west, okW := city.Port(geom.West)
	east, okE := city.Port(geom.East)
	if !okW || !okE || west.Start() != geom.Pt(0, 0) || east.Start() != geom.Pt(2, 0) {
		t.Errorf("ports = %v, want west (0,0) and east (2,0)", city.OccupiedPorts())
	}
}

func TestInsertCityUntouchedAndShort(t *testing.T) {
	far := hline(0, 5, 9)
	single := route.NewRoad(geom.Pt(2, 2))
	city := NewCity(geom.Pt(2, 2))

	out, err := InsertCity(city, []route.Road{far, single}, nil)
	if err != nil {
		t.Fatalf("InsertCity: %v", err)
	}
	if len(out) != 1 || !out[0].Equal(far) {
		t.Errorf("roads = %v, want only the untouched road", out)
	}
	if city.Degree() != 0 {
		t.Errorf("Degree() = %d, want 0", city.Degree())
	}
}

func TestInsertCityPortConflict(t *testing.T) {
	tests := []struct {
		name  string
		roads []route.Road
		setup func(*City)
	}{
		{
			name:  "two roads same side",
			roads: []route.Road{hline(0, 2, 0), hline(0, 1, 0)},
		},
		{
			name:  "port already taken",
			roads: []route.Road{hline(0, 3, 0)},
			setup: func(c *City) { _ = c.Occupy(geom.East, hline(1, 9, 9)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city := NewCity(geom.Pt(0, 0))
			if tt.setup != nil {
				tt.setup(city)
			}
			before := city.Degree()
			input := append([]route.Road(nil), tt.roads...)

			out, err := InsertCity(city, input, nil)
			if !errors.Is(err, errors.ErrCodePortConflict) {
				t.Fatalf("err = %v, want PORT_CONFLICT", err)
			}
			if out != nil {
				t.Errorf("got roads %v on conflict", out)
			}
			if city.Degree() != before {
				t.Errorf("Degree() = %d after conflict, want %d", city.Degree(), before)
			}
			for i := range input {
				if !input[i].Equal(tt.roads[i]) {
					t.Errorf("input road %d modified", i)
				}
			}
		})
	}
}

func TestInsertCityDoesNotMutateInput(t *testing.T) {
	roads := []route.Road{hline(0, 6, 0), vline(8, 0, 4)}
	snapshot := append([]route.Road(nil), roads...)

	if _, err := InsertCity(NewCity(geom.Pt(3, 0)), roads, nil); err != nil {
		t.Fatalf("InsertCity: %v", err)
	}
	for i := range roads {
		if !roads[i].Equal(snapshot[i]) {
			t.Errorf("road %d changed to %v", i, roads[i])
		}
	}
}

func TestCityOccupy(t *testing.T) {
	c := NewCity(geom.Pt(0, 0))
	r := hline(1, 3, 0)

	if err := c.Occupy(geom.East, r); err != nil {
		t.Fatalf("Occupy: %v", err)
	}
	if err := c.Occupy(geom.East, hline(1, 3, 0)); err != nil {
		t.Errorf("re-occupying with an equal road: %v", err)
	}
	if err := c.Occupy(geom.East, hline(1, 2, 0)); !errors.Is(err, errors.ErrCodePortConflict) {
		t.Errorf("err = %v, want PORT_CONFLICT", err)
	}
	c.Release(geom.East)
	if c.Degree() != 0 {
		t.Errorf("Degree() = %d after release", c.Degree())
	}
}
