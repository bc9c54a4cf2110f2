package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/network"
	"github.com/matzehuels/roadnet/pkg/route"
)

func smallBox(t *testing.T) *network.Network {
	t.Helper()
	box := geom.NewBox(geom.Pt(0, 0), geom.Pt(4, 2), false)
	roads, err := route.Extract(geom.NewPointSet(box.AllEdgePoints()...), geom.Pt(0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	return network.New(roads)
}

func TestRoadMap(t *testing.T) {
	net := smallBox(t)
	want := []string{
		"─────",
		"│   │",
		"│───│",
	}

	if got := roadMap(net, false); got != strings.Join(want, "\n") {
		t.Errorf("roadMap() =\n%s\nwant\n%s", got, strings.Join(want, "\n"))
	}

	slices := strings.Split(roadMap(net, true), "\n")
	if slices[0] != want[2] || slices[2] != want[0] {
		t.Errorf("roadMap(yUp) did not flip rows: %q", slices)
	}
}

func TestRoadMapCity(t *testing.T) {
	net := smallBox(t)
	if _, err := net.AddCity(geom.Pt(2, 0), nil); err != nil {
		t.Fatal(err)
	}
	first := strings.Split(roadMap(net, false), "\n")[0]
	if first != "──●──" {
		t.Errorf("first row = %q, want city in the middle", first)
	}
}

func TestRoadMapEmpty(t *testing.T) {
	if got := roadMap(network.New(nil), false); got != "" {
		t.Errorf("roadMap(empty) = %q", got)
	}
}

func TestRoadTable(t *testing.T) {
	net := smallBox(t)
	if _, err := net.AddCity(geom.Pt(2, 0), nil); err != nil {
		t.Fatal(err)
	}
	out := roadTable(net)
	for _, want := range []string{"Start", "Cities", "c0 east", "c0 west"} {
		if !strings.Contains(out, want) {
			t.Errorf("roadTable() missing %q:\n%s", want, out)
		}
	}
}
