package geo

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

func TestLineIntersection(t *testing.T) {
	p, t1, t2, ok := LineIntersection(r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0}, r2.Point{X: 1, Y: -1}, r2.Point{X: 1, Y: 3})
	if !ok {
		t.Fatalf("expected an intersection")
	}
	if !approxPoint(p, r2.Point{X: 1, Y: 0}) {
		t.Errorf("got %v, want (1, 0)", p)
	}
	if math.Abs(t1-0.25) > 1e-9 || math.Abs(t2-0.25) > 1e-9 {
		t.Errorf("got t1=%f t2=%f, want 0.25 & 0.25", t1, t2)
	}

	if _, _, _, ok := LineIntersection(r2.Point{}, r2.Point{X: 1}, r2.Point{Y: 1}, r2.Point{X: 1, Y: 1}); ok {
		t.Errorf("parallel lines should not intersect")
	}
}

func TestSegmentIntersection(t *testing.T) {
	// lines cross at (3, 0), past the end of the first segment
	_, _, _, ok := SegmentIntersection(r2.Point{}, r2.Point{X: 2}, r2.Point{X: 3, Y: -1}, r2.Point{X: 3, Y: 1})
	if ok {
		t.Errorf("expected no intersection within the segments")
	}
	p, _, _, ok := SegmentIntersection(r2.Point{}, r2.Point{X: 4}, r2.Point{X: 3, Y: -1}, r2.Point{X: 3, Y: 1})
	if !ok || !approxPoint(p, r2.Point{X: 3}) {
		t.Errorf("got %v %v, want (3, 0)", p, ok)
	}
}

func TestSegmentNearestPoint(t *testing.T) {
	s := Segment2{Start: r2.Point{}, End: r2.Point{X: 10}}
	cases := []struct {
		in    r2.Point
		want  r2.Point
		wantT float64
	}{
		{r2.Point{X: 5, Y: 3}, r2.Point{X: 5}, 0.5},
		{r2.Point{X: -5, Y: 3}, r2.Point{}, 0},
		{r2.Point{X: 15, Y: -1}, r2.Point{X: 10}, 1},
	}
	for _, c := range cases {
		got, gotT := s.NearestPoint(c.in)
		if !approxPoint(got, c.want) || math.Abs(gotT-c.wantT) > 1e-9 {
			t.Errorf("%v: got %v (%f), want %v (%f)", c.in, got, gotT, c.want, c.wantT)
		}
	}
	if d := s.Distance(r2.Point{X: 5, Y: 3}); math.Abs(d-3) > 1e-9 {
		t.Errorf("got distance %f, want 3", d)
	}

	s3 := Segment3{Start: r3.Vector{}, End: r3.Vector{X: 2}}
	if got := s3.NearestPoint(r3.Vector{X: 1, Y: 0.5}); !got.ApproxEqual(r3.Vector{X: 1}) {
		t.Errorf("got %v, want (1, 0, 0)", got)
	}
}

func TestRayNearestPoint(t *testing.T) {
	r := Ray2{Origin: r2.Point{X: 1, Y: 1}, Direction: r2.Point{X: 1}}
	p, d := r.NearestPoint(r2.Point{X: -2, Y: 5})
	if !approxPoint(p, r2.Point{X: -2, Y: 1}) || math.Abs(d+3) > 1e-9 {
		t.Errorf("got %v %f, want (-2, 1) -3", p, d)
	}
}

func TestAngleBetween(t *testing.T) {
	if a := AngleBetween(r2.Point{X: 1}, r2.Point{Y: 2}); math.Abs(a-90) > 1e-9 {
		t.Errorf("got %f, want 90", a)
	}
	if a := AngleBetween(r2.Point{X: 1}, r2.Point{X: -1}); math.Abs(a-180) > 1e-9 {
		t.Errorf("got %f, want 180", a)
	}
}

func TestAxisPlane(t *testing.T) {
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	for _, p := range []AxisPlane{PlaneXY, PlaneXZ, PlaneYZ} {
		if got := p.To3D(p.To2D(v), p.Height(v)); got != v {
			t.Errorf("plane %d: got %v, want %v", p, got, v)
		}
	}
	if got := PlaneXZ.WithHeight(v, 9); got != (r3.Vector{X: 1, Y: 9, Z: 3}) {
		t.Errorf("got %v", got)
	}
}

// approxPoint compares 2D points within the package epsilon
func approxPoint(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) <= Epsilon && math.Abs(a.Y-b.Y) <= Epsilon
}
