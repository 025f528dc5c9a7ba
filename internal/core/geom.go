// Package core provides the platform types shared by games and front ends:
// the colored screen buffer, input frames and runtime configuration.
// It has no external dependencies so games stay testable without a terminal.
package core

// Rect is an axis-aligned screen area.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CenterIn returns r moved so it is centered inside outer. Rectangles larger than
// outer are pinned to its top-left corner.
func (r Rect) CenterIn(outer Rect) Rect {
	r.X = outer.X + Max(0, (outer.W-r.W)/2)
	r.Y = outer.Y + Max(0, (outer.H-r.H)/2)
	return r
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
