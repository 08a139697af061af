package geo

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

func TestPolygon(t *testing.T) {
	p := NewPolygon([]r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}})

	if a := p.Area(); math.Abs(a-8) > 1e-9 {
		t.Errorf("got area %f, want 8", a)
	}
	if c := p.Centroid(); !approxPoint(c, r2.Point{X: 2, Y: 1}) {
		t.Errorf("got centroid %v, want (2, 1)", c)
	}
	if !p.Contains(r2.Point{X: 1, Y: 1}) {
		t.Errorf("expected (1, 1) inside")
	}
	if p.Contains(r2.Point{X: 5, Y: 1}) {
		t.Errorf("expected (5, 1) outside")
	}
	b := p.Bounds()
	if b.Lo() != (r2.Point{}) || b.Hi() != (r2.Point{X: 4, Y: 2}) {
		t.Errorf("got bounds %v", b)
	}

	rev := NewPolygon([]r2.Point{{X: 0, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 0}, {X: 0, Y: 0}})
	if a := rev.Area(); math.Abs(a+8) > 1e-9 {
		t.Errorf("got area %f, want -8 for a clockwise ring", a)
	}
}

func TestConvexHull(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, // 0
		{X: 1, Y: 1}, // 1 inside
		{X: 2, Y: 0}, // 2
		{X: 2, Y: 2}, // 3
		{X: 1, Y: 0}, // 4 collinear
		{X: 0, Y: 2}, // 5
	}

	got := ConvexHull(pts, 1e-6)

	want := []int{0, 2, 3, 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
