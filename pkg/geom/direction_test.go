package geom

import "testing"

func TestDirectionTables(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: Opposite is not an involution", d)
		}
		p := Pt(3, 3)
		if p.Step(d).Step(d.Opposite()) != p {
			t.Errorf("%v: stepping there and back does not return", d)
		}
		for _, o := range d.Orthogonal() {
			if o == d || o == d.Opposite() {
				t.Errorf("%v: %v is not orthogonal", d, o)
			}
			if o.Horizontal() == d.Horizontal() {
				t.Errorf("%v: %v has the same axis", d, o)
			}
		}
	}
}

func TestDirectionTo(t *testing.T) {
	tests := []struct {
		a, b   Point
		want   Direction
		wantOK bool
	}{
		{Pt(0, 0), Pt(0, -1), North, true},
		{Pt(0, 0), Pt(1, 0), East, true},
		{Pt(0, 0), Pt(0, 1), South, true},
		{Pt(0, 0), Pt(-1, 0), West, true},
		{Pt(0, 0), Pt(1, 1), 0, false},
		{Pt(0, 0), Pt(0, 2), 0, false},
		{Pt(0, 0), Pt(0, 0), 0, false},
	}

	for _, tt := range tests {
		got, ok := DirectionTo(tt.a, tt.b)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("DirectionTo(%v, %v) = %v, %v; want %v, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTowards(t *testing.T) {
	tests := []struct {
		a, b   Point
		want   Direction
		wantOK bool
	}{
		{Pt(5, 5), Pt(5, 0), North, true},
		{Pt(5, 5), Pt(9, 5), East, true},
		{Pt(5, 5), Pt(5, 12), South, true},
		{Pt(5, 5), Pt(-3, 5), West, true},
		{Pt(5, 5), Pt(6, 6), 0, false},
		{Pt(5, 5), Pt(5, 5), 0, false},
	}

	for _, tt := range tests {
		got, ok := Towards(tt.a, tt.b)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("Towards(%v, %v) = %v, %v; want %v, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("up"); ok {
		t.Error("ParseDirection(\"up\") should fail")
	}
}

func TestPointSetSortedAndNeighbors(t *testing.T) {
	s := NewPointSet(Pt(2, 1), Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1))

	sorted := s.Sorted()
	want := []Point{Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(1, 1), Pt(2, 1)}
	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("Sorted() = %v, want %v", sorted, want)
		}
	}

	dirs := s.Neighbors(Pt(1, 1))
	wantDirs := []Direction{North, East, West}
	if len(dirs) != len(wantDirs) {
		t.Fatalf("Neighbors = %v, want %v", dirs, wantDirs)
	}
	for i := range dirs {
		if dirs[i] != wantDirs[i] {
			t.Errorf("Neighbors = %v, want %v", dirs, wantDirs)
		}
	}
}
