package geom

import "testing"

func TestEdgePointsTopToBottomSingleBox(t *testing.T) {
	b := NewBox(Pt(3, 1), Pt(9, 6), false)
	got := EdgePointsTopToBottom([]Box{b})
	want := NewPointSet(b.AllEdgePoints()...)
	if !got.Equal(want) {
		t.Errorf("EdgePointsTopToBottom = %d points, want %d", got.Len(), want.Len())
	}
}

func TestOuterEdgePointsNested(t *testing.T) {
	a := NewBox(Pt(0, 0), Pt(20, 20), false)
	b := NewBox(Pt(5, 5), Pt(15, 15), false)

	got := OuterEdgePoints([]Box{a, b})
	want := NewPointSet(a.AllEdgePoints()...)
	if !got.Equal(want) {
		t.Errorf("OuterEdgePoints = %d points, want exactly A's %d", got.Len(), want.Len())
	}

	// Order independent.
	if !OuterEdgePoints([]Box{b, a}).Equal(got) {
		t.Error("OuterEdgePoints depends on box order")
	}
}

func TestBoundaryViewsDiffer(t *testing.T) {
	top := NewBox(Pt(0, 0), Pt(10, 10), false)
	under := NewBox(Pt(5, 5), Pt(15, 15), false)
	stack := []Box{top, under}

	layered := EdgePointsTopToBottom(stack)
	outer := OuterEdgePoints(stack)

	if layered.Len() != 69 {
		t.Errorf("EdgePointsTopToBottom = %d points, want 69", layered.Len())
	}
	if outer.Len() != 58 {
		t.Errorf("OuterEdgePoints = %d points, want 58", outer.Len())
	}

	// The top box keeps its full boundary in the layered view even where the
	// lower box covers it.
	if !layered.Has(Pt(10, 7)) {
		t.Error("layered view lost (10,7) from the top box")
	}
	if outer.Has(Pt(10, 7)) {
		t.Error("outer view kept (10,7), which lies inside the lower box")
	}
	// Lower box boundary under the top box is dropped by both views.
	if layered.Has(Pt(7, 5)) || outer.Has(Pt(7, 5)) {
		t.Error("(7,5) is covered by the top box and must not be boundary")
	}
}

func TestEdgePointsExcludesCovered(t *testing.T) {
	under := NewBox(Pt(0, 0), Pt(4, 4), false)
	cover := NewBox(Pt(-1, -1), Pt(2, 5), false)

	got := EdgePoints([]Box{cover}, under)
	for p := range got {
		if cover.ContainsPoint(p) {
			t.Errorf("point %v is covered but kept", p)
		}
	}
	// x in {3,4} on top and bottom plus the right side interior.
	if got.Len() != 7 {
		t.Errorf("EdgePoints = %d points, want 7", got.Len())
	}
}

func TestEdgePointsNoCover(t *testing.T) {
	b := NewBox(Pt(0, 0), Pt(3, 2), true)
	if got := EdgePoints(nil, b); got.Len() != 10 {
		t.Errorf("EdgePoints(nil) = %d points, want 10", got.Len())
	}
}
