package export

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/network"
	"github.com/matzehuels/roadnet/pkg/route"
)

func line(x0, x1, y int) route.Road {
	var pts []geom.Point
	for x := x0; x <= x1; x++ {
		pts = append(pts, geom.Pt(x, y))
	}
	return route.NewRoad(pts...)
}

// twoCities is a 0..10 row with cities at 0 and 10 joined by one road,
// plus a dangling road beyond the second city.
func twoCities(t *testing.T) *network.Network {
	t.Helper()
	n := network.New([]route.Road{line(0, 15, 0)})
	for _, p := range []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)} {
		if _, err := n.AddCity(p, nil); err != nil {
			t.Fatalf("AddCity(%v): %v", p, err)
		}
	}
	return n
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(twoCities(t), Options{})

	for _, want := range []string{
		"graph G {",
		`"c0" [label="(0,0)"]`,
		`"c1" [label="(10,0)"]`,
		`"c1" -- "c0";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Count(dot, " -- ") != 2 {
		t.Errorf("want one edge per road (2):\n%s", dot)
	}
	if strings.Count(dot, "shape=point") != 1 {
		t.Errorf("want one free-end node for the dangling road:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(twoCities(t), Options{Detailed: true})
	if !strings.Contains(dot, `label="9"`) {
		t.Errorf("detailed output missing road length:\n%s", dot)
	}
	if !strings.Contains(dot, "tooltip=") {
		t.Errorf("detailed output missing tooltip:\n%s", dot)
	}
}

func TestToDOTNoCities(t *testing.T) {
	dot := ToDOT(network.New([]route.Road{line(0, 3, 0), line(0, 3, 2)}), Options{})
	if strings.Count(dot, "shape=point") != 4 {
		t.Errorf("want two free ends per road:\n%s", dot)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestRenderDOT(t *testing.T) {
	data, err := Render(context.Background(), twoCities(t), FormatDOT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("Render(dot) = %q", data)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should pass through")
	}
}
