package geo

import (
	"github.com/golang/geo/r3"
)

// PolylineLength sums the segment lengths of points.
func PolylineLength(points []r3.Vector) float64 {
	l := 0.0
	for i := 0; i+1 < len(points); i++ {
		l += points[i].Distance(points[i+1])
	}
	return l
}

// ReversePolyline returns a reversed copy of points.
func ReversePolyline(points []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// CutPolyline splits points at dist along its length. Both halves contain the
// cut point. A dist <= 0 gives a head of only the first point, a dist >= length
// a tail of only the last point.
func CutPolyline(points []r3.Vector, dist float64) (head, tail []r3.Vector) {
	if len(points) == 0 {
		return nil, nil
	}
	if dist <= 0 {
		return []r3.Vector{points[0]}, append([]r3.Vector{}, points...)
	}

	walked := 0.0
	for i := 0; i+1 < len(points); i++ {
		seg := points[i].Distance(points[i+1])
		if walked+seg >= dist {
			t := 0.0
			if seg > Epsilon {
				t = (dist - walked) / seg
			}
			cut := LerpVector(points[i], points[i+1], t)

			head = append(append([]r3.Vector{}, points[:i+1]...), cut)
			tail = append([]r3.Vector{cut}, points[i+1:]...)
			return dedupeEnds(head), dedupeEnds(tail)
		}
		walked += seg
	}
	return append([]r3.Vector{}, points...), []r3.Vector{points[len(points)-1]}
}

// JoinPolylines concatenates polylines, dropping the repeated point where one
// ends & the next starts.
func JoinPolylines(lines ...[]r3.Vector) []r3.Vector {
	out := []r3.Vector{}
	for _, l := range lines {
		for i, p := range l {
			if i == 0 && len(out) > 0 && out[len(out)-1].ApproxEqual(p) {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// dedupeEnds removes a doubled point at either end of a polyline.
func dedupeEnds(points []r3.Vector) []r3.Vector {
	if len(points) >= 2 && points[0].ApproxEqual(points[1]) {
		points = points[1:]
	}
	if n := len(points); n >= 2 && points[n-1].ApproxEqual(points[n-2]) {
		points = points[:n-1]
	}
	return points
}
