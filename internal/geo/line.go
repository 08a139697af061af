package geo

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// LineIntersection intersects the infinite lines a-b & c-d.
// t1 is the parameter along a-b, t2 along c-d. ok is false for parallel lines.
func LineIntersection(a, b, c, d r2.Point) (p r2.Point, t1, t2 float64, ok bool) {
	ab := b.Sub(a)
	cd := d.Sub(c)
	deno := ab.Cross(cd)
	if math.Abs(deno) < Epsilon {
		return r2.Point{}, 0, 0, false
	}
	t1 = c.Sub(a).Cross(cd) / deno
	t2 = ab.Cross(a.Sub(c)) / deno
	return LerpPoint(a, b, t1), t1, t2, true
}

// SegmentIntersection is LineIntersection limited to both segments.
func SegmentIntersection(s1a, s1b, s2a, s2b r2.Point) (p r2.Point, t1, t2 float64, ok bool) {
	p, t1, t2, ok = LineIntersection(s1a, s1b, s2a, s2b)
	if !ok {
		return p, t1, t2, false
	}
	return p, t1, t2, t1 >= 0 && t1 <= 1 && t2 >= 0 && t2 <= 1
}

// Segment2 is a line segment on the plane.
type Segment2 struct {
	Start, End r2.Point
}

// Length of the segment.
func (s Segment2) Length() float64 {
	return s.End.Sub(s.Start).Norm()
}

// Lerp returns the point at t (0 start, 1 end).
func (s Segment2) Lerp(t float64) r2.Point {
	return LerpPoint(s.Start, s.End, t)
}

// NearestPoint returns the point on the segment closest to p & its parameter.
func (s Segment2) NearestPoint(p r2.Point) (r2.Point, float64) {
	d := s.End.Sub(s.Start)
	l2 := d.Dot(d)
	if l2 < Epsilon {
		return s.Start, 0
	}
	t := math.Max(0, math.Min(1, p.Sub(s.Start).Dot(d)/l2))
	return s.Lerp(t), t
}

// Distance from p to the segment.
func (s Segment2) Distance(p r2.Point) float64 {
	n, _ := s.NearestPoint(p)
	return n.Sub(p).Norm()
}

// Segment3 is a line segment in 3D.
type Segment3 struct {
	Start, End r3.Vector
}

// Length of the segment.
func (s Segment3) Length() float64 {
	return s.Start.Distance(s.End)
}

// Lerp returns the point at t (0 start, 1 end).
func (s Segment3) Lerp(t float64) r3.Vector {
	return LerpVector(s.Start, s.End, t)
}

// NearestPoint returns the point on the segment closest to p.
func (s Segment3) NearestPoint(p r3.Vector) r3.Vector {
	d := s.End.Sub(s.Start)
	l2 := d.Norm2()
	if l2 < Epsilon {
		return s.Start
	}
	t := math.Max(0, math.Min(1, p.Sub(s.Start).Dot(d)/l2))
	return s.Lerp(t)
}

// Distance from p to the segment.
func (s Segment3) Distance(p r3.Vector) float64 {
	return s.NearestPoint(p).Distance(p)
}

// Ray2 is a half line. Direction is expected to be normalised.
type Ray2 struct {
	Origin    r2.Point
	Direction r2.Point
}

// NearestPoint projects p onto the (infinite) ray line & returns the
// projection with its signed distance along Direction.
func (r Ray2) NearestPoint(p r2.Point) (r2.Point, float64) {
	t := r.Direction.Dot(p.Sub(r.Origin))
	return r.Origin.Add(r.Direction.Mul(t)), t
}

// AngleBetween returns the unsigned angle in degrees between a & b.
func AngleBetween(a, b r2.Point) float64 {
	na, nb := a.Norm(), b.Norm()
	if na < Epsilon || nb < Epsilon {
		return 0
	}
	c := math.Max(-1, math.Min(1, a.Dot(b)/(na*nb)))
	return math.Acos(c) * 180 / math.Pi
}
