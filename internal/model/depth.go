package model

import "math"

// Point is a known (x, z) location used to anchor depth functions.
type Point struct {
	X, Z float64
}

// LinearDepth evaluates the depth of a dipping line at x. The line dips
// with the given slope in degrees (positive slope deepens towards larger
// x) and passes through the anchor point:
//
//	z(x) = -tan(slope) * (x - p.X) + p.Z
func LinearDepth(x, slope float64, p Point) float64 {
	a := -math.Tan(slope * math.Pi / 180)
	b := p.Z - a*p.X
	return a*x + b
}

// QuadraticDepth evaluates the parabola z(x) = a*x^2 + b passing through
// two known points.
func QuadraticDepth(x float64, p1, p2 Point) float64 {
	a := (p2.Z - p1.Z) / (p2.X*p2.X - p1.X*p1.X)
	b := p1.Z - a*p1.X*p1.X
	return a*x*x + b
}
