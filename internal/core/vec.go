package core

import (
	"fmt"
	"math"
)

// Vec is a point or displacement in continuous puzzle-local space.
// X increases to the right, Y increases downward (screen coordinates).
type Vec struct {
	X, Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// String returns a string representation of the vector.
func (a Vec) String() string {
	return fmt.Sprintf("(%g,%g)", a.X, a.Y)
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns a multiplied by k.
func (a Vec) Scale(k float64) Vec {
	return Vec{X: a.X * k, Y: a.Y * k}
}

// Cross returns the z component of the 3D cross product of a and b.
func (a Vec) Cross(b Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Len returns the Euclidean length of a.
func (a Vec) Len() float64 {
	return math.Hypot(a.X, a.Y)
}

// Add returns the sum of two vectors.
func Add(a, b Vec) Vec {
	return a.Add(b)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// SegmentIntersection reports the unique crossing point of segments p1-p2
// and p3-p4.
//
// Collinear and parallel segments never cross, even when they overlap.
// A crossing that lands exactly on one of the four endpoints is ignored so
// edges sharing a node are not counted against each other.
func SegmentIntersection(p1, p2, p3, p4 Vec) (Vec, bool) {
	// Segments sharing an endpoint can only meet there or overlap, and
	// neither counts.
	if p1 == p3 || p1 == p4 || p2 == p3 || p2 == p4 {
		return Vec{}, false
	}

	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)

	denom := d1.Cross(d2)
	if denom == 0 {
		return Vec{}, false
	}

	w := p3.Sub(p1)
	lambda := w.Cross(d2) / denom
	mu := w.Cross(d1) / denom
	if lambda < 0 || lambda > 1 || mu < 0 || mu > 1 {
		return Vec{}, false
	}

	// A parameter of exactly 0 or 1 is an endpoint; checking it here avoids
	// rounding in p1 + d1*lambda hiding a shared node.
	if lambda == 0 || lambda == 1 || mu == 0 || mu == 1 {
		return Vec{}, false
	}

	pt := p1.Add(d1.Scale(lambda))
	if pt == p1 || pt == p2 || pt == p3 || pt == p4 {
		return Vec{}, false
	}
	return pt, true
}
