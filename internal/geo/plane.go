// Package geo holds the small amount of plane / line math the road graph
// needs on top of golang/geo's r2 & r3 vectors.
package geo

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Epsilon below which two lines are treated as parallel.
const Epsilon = 1e-9

// AxisPlane names the pair of axes that make up the ground plane. The
// remaining axis is height.
type AxisPlane int

const (
	PlaneXY AxisPlane = iota // z up
	PlaneXZ                  // y up
	PlaneYZ                  // x up
)

// To2D projects v onto the plane.
func (p AxisPlane) To2D(v r3.Vector) r2.Point {
	switch p {
	case PlaneXZ:
		return r2.Point{X: v.X, Y: v.Z}
	case PlaneYZ:
		return r2.Point{X: v.Y, Y: v.Z}
	default:
		return r2.Point{X: v.X, Y: v.Y}
	}
}

// Height returns the component of v that is not part of the plane.
func (p AxisPlane) Height(v r3.Vector) float64 {
	switch p {
	case PlaneXZ:
		return v.Y
	case PlaneYZ:
		return v.X
	default:
		return v.Z
	}
}

// To3D lifts a plane point back to 3D with the given height.
func (p AxisPlane) To3D(v r2.Point, h float64) r3.Vector {
	switch p {
	case PlaneXZ:
		return r3.Vector{X: v.X, Y: h, Z: v.Y}
	case PlaneYZ:
		return r3.Vector{X: h, Y: v.X, Z: v.Y}
	default:
		return r3.Vector{X: v.X, Y: v.Y, Z: h}
	}
}

// WithHeight returns v with its height component replaced.
func (p AxisPlane) WithHeight(v r3.Vector, h float64) r3.Vector {
	return p.To3D(p.To2D(v), h)
}

// Lerp linearly interpolates a -> b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVector linearly interpolates a -> b.
func LerpVector(a, b r3.Vector, t float64) r3.Vector {
	return a.Add(b.Sub(a).Mul(t))
}

// LerpPoint linearly interpolates a -> b.
func LerpPoint(a, b r2.Point, t float64) r2.Point {
	return a.Add(b.Sub(a).Mul(t))
}
