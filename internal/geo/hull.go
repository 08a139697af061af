package geo

import (
	"sort"

	"github.com/golang/geo/r2"
)

// ConvexHull returns the indices of points forming their convex hull in
// counter clockwise order (Andrew's monotone chain). Points closer than
// tolerance to the hull line are treated as collinear & dropped.
func ConvexHull(points []r2.Point, tolerance float64) []int {
	if len(points) < 3 {
		out := make([]int, len(points))
		for i := range points {
			out[i] = i
		}
		return out
	}

	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := points[idx[a]], points[idx[b]]
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})

	// is o->a->b a left turn (outside tolerance)
	turnsLeft := func(o, a, b int) bool {
		oa := points[a].Sub(points[o])
		ob := points[b].Sub(points[o])
		n := ob.Norm()
		if n < Epsilon {
			return false
		}
		return oa.Cross(ob)/n > tolerance
	}

	hull := make([]int, 0, 2*len(points))
	for _, i := range idx { // lower
		for len(hull) >= 2 && !turnsLeft(hull[len(hull)-2], hull[len(hull)-1], i) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	lower := len(hull) + 1
	for k := len(idx) - 2; k >= 0; k-- { // upper
		i := idx[k]
		for len(hull) >= lower && !turnsLeft(hull[len(hull)-2], hull[len(hull)-1], i) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	return hull[:len(hull)-1]
}
