package main

import "testing"

func countRef(refs []EntityRef, want EntityRef) int {
	n := 0
	for _, r := range refs {
		if r == want {
			n++
		}
	}
	return n
}

func TestSpatialGridInsertQuery(t *testing.T) {
	g := NewSpatialGrid(800, 600)
	a := EntityRef{Kind: 'e', Idx: 0}
	b := EntityRef{Kind: 'e', Idx: 1}
	g.Insert(Rect{X: 10, Y: 10, W: 20, H: 20}, a)
	g.Insert(Rect{X: 700, Y: 500, W: 20, H: 20}, b)

	got := g.Query(Rect{X: 15, Y: 15, W: 1, H: 1})
	if countRef(got, a) != 1 {
		t.Errorf("expected a in query near origin, got %v", got)
	}
	if countRef(got, b) != 0 {
		t.Error("b should not be returned for a distant query")
	}
}

func TestSpatialGridSpanningEntity(t *testing.T) {
	g := NewSpatialGrid(800, 600)
	ref := EntityRef{Kind: 'e', Idx: 3}
	// straddles the corner shared by four cells
	g.Insert(Rect{X: 60, Y: 60, W: 10, H: 10}, ref)

	if n := countRef(g.Query(Rect{X: 0, Y: 0, W: 200, H: 200}), ref); n != 4 {
		t.Errorf("expected the ref once per overlapped cell (4), got %d", n)
	}
	if n := countRef(g.Query(Rect{X: 100, Y: 100, W: 1, H: 1}), ref); n != 1 {
		t.Errorf("expected 1 from the lower-right cell, got %d", n)
	}
}

func TestSpatialGridClampsOutside(t *testing.T) {
	g := NewSpatialGrid(800, 600)
	ref := EntityRef{Kind: 'h', Idx: 0}
	g.Insert(Rect{X: -100, Y: -100, W: 10, H: 10}, ref)
	if countRef(g.Query(Rect{X: 0, Y: 0, W: 1, H: 1}), ref) != 1 {
		t.Error("entity above the play area should land in the border cell")
	}

	far := EntityRef{Kind: 'h', Idx: 1}
	g.Insert(Rect{X: 5000, Y: 5000, W: 10, H: 10}, far)
	if countRef(g.Query(Rect{X: 790, Y: 590, W: 5, H: 5}), far) != 1 {
		t.Error("entity past the play area should land in the far corner cell")
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(800, 600)
	g.Insert(Rect{X: 10, Y: 10, W: 20, H: 20}, EntityRef{Kind: 'e'})
	g.Clear()
	if got := g.Query(Rect{X: 0, Y: 0, W: 800, H: 600}); len(got) != 0 {
		t.Errorf("expected empty grid after Clear, got %d refs", len(got))
	}
}
