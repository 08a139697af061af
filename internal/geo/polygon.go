package geo

import (
	"github.com/golang/geo/r2"
)

// A Polygon is a single closed ring on the plane. Points are considered to
// be in order such that the last point forms an edge with the first point.
type Polygon struct {
	Points []r2.Point
}

// NewPolygon returns a new Polygon composed of the given points.
func NewPolygon(points []r2.Point) *Polygon {
	return &Polygon{Points: points}
}

// Bounds returns the lowest & highest x & y values of the polygon.
func (p *Polygon) Bounds() r2.Rect {
	return r2.RectFromPoints(p.Points...)
}

// IsClosed returns whether the polygon has enough points to enclose an area.
func (p *Polygon) IsClosed() bool {
	return len(p.Points) >= 3
}

// Area returns the signed area, positive for counter clockwise rings.
func (p *Polygon) Area() float64 {
	a := 0.0
	for i := range p.Points {
		j := (i + 1) % len(p.Points)
		a += p.Points[i].Cross(p.Points[j])
	}
	return a / 2
}

// Centroid returns the area centroid, falling back to the vertex mean for
// degenerate rings.
func (p *Polygon) Centroid() r2.Point {
	if len(p.Points) == 0 {
		return r2.Point{}
	}
	area := p.Area()
	if area > -Epsilon && area < Epsilon {
		sum := r2.Point{}
		for _, pt := range p.Points {
			sum = sum.Add(pt)
		}
		return sum.Mul(1 / float64(len(p.Points)))
	}
	c := r2.Point{}
	for i := range p.Points {
		j := (i + 1) % len(p.Points)
		f := p.Points[i].Cross(p.Points[j])
		c = c.Add(p.Points[i].Add(p.Points[j]).Mul(f))
	}
	return c.Mul(1 / (6 * area))
}

// Contains returns whether or not the polygon contains the point using the
// ray casting (even-odd) rule.
func (p *Polygon) Contains(point r2.Point) bool {
	if !p.IsClosed() {
		return false
	}

	contains := false
	for i, j := 0, len(p.Points)-1; i < len(p.Points); j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if (a.Y > point.Y) == (b.Y > point.Y) {
			continue
		}
		x := a.X + (point.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if point.X < x {
			contains = !contains
		}
	}
	return contains
}
