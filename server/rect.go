package main

// Rect is an axis-aligned bounding rectangle; X, Y is the top-left corner
type Rect struct {
	X, Y, W, H float64
}

// RectFromCenter builds a rectangle of size w x h centred on (cx, cy)
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Left edge
func (r Rect) Left() float64 { return r.X }

// Right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Top edge
func (r Rect) Top() float64 { return r.Y }

// Bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the centre point
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects reports whether two rectangles overlap. Rectangles that only
// share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Clamp moves r inside bounds, keeping its size
func (r Rect) Clamp(bounds Rect) Rect {
	if r.W >= bounds.W {
		r.X = bounds.X + (bounds.W-r.W)/2
	} else if r.X < bounds.X {
		r.X = bounds.X
	} else if r.Right() > bounds.Right() {
		r.X = bounds.Right() - r.W
	}
	if r.H >= bounds.H {
		r.Y = bounds.Y + (bounds.H-r.H)/2
	} else if r.Y < bounds.Y {
		r.Y = bounds.Y
	} else if r.Bottom() > bounds.Bottom() {
		r.Y = bounds.Bottom() - r.H
	}
	return r
}
