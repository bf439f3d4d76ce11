package main

import "testing"

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	// Overlapping
	if !a.Intersects(Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Error("rects should intersect (overlapping)")
	}

	// Touching edges
	if a.Intersects(Rect{X: 10, Y: 0, W: 10, H: 10}) {
		t.Error("rects sharing an edge should not intersect")
	}

	// Disjoint
	if a.Intersects(Rect{X: 25, Y: 25, W: 5, H: 5}) {
		t.Error("rects should not intersect")
	}

	// Contained
	if !a.Intersects(Rect{X: 2, Y: 2, W: 1, H: 1}) {
		t.Error("contained rect should intersect")
	}
}

func TestRectFromCenter(t *testing.T) {
	r := RectFromCenter(100, 50, 20, 10)
	if r.X != 90 || r.Y != 45 || r.W != 20 || r.H != 10 {
		t.Errorf("unexpected rect %+v", r)
	}
	cx, cy := r.Center()
	if cx != 100 || cy != 50 {
		t.Errorf("expected center (100,50), got (%f,%f)", cx, cy)
	}
}

func TestRectClamp(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, W: 800, H: 600}

	r := Rect{X: -5, Y: 590, W: 28, H: 28}.Clamp(bounds)
	if r.X != 0 {
		t.Errorf("expected X clamped to 0, got %f", r.X)
	}
	if r.Bottom() != 600 {
		t.Errorf("expected bottom clamped to 600, got %f", r.Bottom())
	}

	inside := Rect{X: 100, Y: 100, W: 28, H: 28}
	if inside.Clamp(bounds) != inside {
		t.Error("rect inside bounds should be unchanged")
	}
}
