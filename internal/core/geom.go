// Package core provides fundamental types and utilities for the puzzle engine.
// It contains no external dependencies (especially no Bubble Tea) to keep
// puzzle logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box on the terminal grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsVec reports whether the terminal cell holding v lies inside r.
func (r Rect) ContainsVec(v Vec) bool {
	return r.Contains(int(math.Floor(v.X)), int(math.Floor(v.Y)))
}

// RectF is a rectangle in continuous puzzle-local units.
type RectF struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Inflate grows the rectangle by dx on the left and right and dy on the top
// and bottom.
func (r RectF) Inflate(dx, dy float64) RectF {
	return RectF{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// ContainsVec returns true if v is inside r. The right and bottom edges
// are exclusive.
func (r RectF) ContainsVec(v Vec) bool {
	return v.X >= r.X && v.X < r.Right() && v.Y >= r.Y && v.Y < r.Bottom()
}

// ContainsRect returns true if inner lies completely inside r.
// Touching edges count as inside.
func (r RectF) ContainsRect(inner RectF) bool {
	return inner.X >= r.X && inner.Y >= r.Y &&
		inner.Right() <= r.Right() && inner.Bottom() <= r.Bottom()
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
