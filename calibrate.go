package roadnet

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/voidshard/roadnet/internal/geo"
)

// CalibrateIntersectionBorder pushes the borders between intersections &
// roads into the roads, growing the intersections. A border moves at most
// opt.MaxOffsetMeter & never leaves a road shorter than
// opt.NeedRoadLengthMeter. Borders with another road border right next to
// them (see Intersection.IsContinuous) are only moved if separateContinuous
// is set.
func (m *Model) CalibrateIntersectionBorder(opt CalibrateIntersectionBorderOption, separateContinuous bool) {
	for _, road := range m.roads {
		prev := calibrationEdge(road, road.Prev, road.PrevBorder, separateContinuous)
		next := calibrationEdge(road, road.Next, road.NextBorder, separateContinuous)

		ends := 0
		if prev >= 0 {
			ends++
		}
		if next >= 0 {
			ends++
		}
		if ends == 0 {
			continue
		}

		offset := math.Min(opt.MaxOffsetMeter, math.Max(0, road.Length()-opt.NeedRoadLengthMeter)/float64(ends))
		if offset <= 0 {
			continue
		}

		if prev >= 0 {
			x := road.Prev.(*Intersection)
			headA, tailA := geo.CutPolyline(road.RightWay, offset)
			headB, tailB := geo.CutPolyline(road.LeftWay, offset)
			road.RightWay, road.LeftWay = tailA, tailB
			road.PrevBorder = []r3.Vector{tailB[0], tailA[0]}
			x.replaceBorder(prev, headA, headB)
		}

		if next >= 0 {
			// re-find the edge, the prev end may have shifted indexes
			next = calibrationEdge(road, road.Next, road.NextBorder, separateContinuous)
			if next < 0 {
				continue
			}
			x := road.Next.(*Intersection)
			headA, tailA := geo.CutPolyline(geo.ReversePolyline(road.LeftWay), offset)
			headB, tailB := geo.CutPolyline(geo.ReversePolyline(road.RightWay), offset)
			road.LeftWay, road.RightWay = geo.ReversePolyline(tailA), geo.ReversePolyline(tailB)
			road.NextBorder = []r3.Vector{tailB[0], tailA[0]}
			x.replaceBorder(next, headA, headB)
		}
	}
}

// calibrationEdge returns the index of the edge of `to` bordering road along
// border, -1 if there isn't one or it should be left alone
func calibrationEdge(road *Road, to RoadBase, border []r3.Vector, separateContinuous bool) int {
	x, ok := to.(*Intersection)
	if !ok || len(border) < 2 {
		return -1
	}
	// the intersection walks the border the other way round
	start := border[len(border)-1]
	for i, e := range x.Edges {
		if e.Road != RoadBase(road) || len(e.Border) == 0 || !e.Border[0].ApproxEqual(start) {
			continue
		}
		if !separateContinuous {
			n := len(x.Edges)
			if x.IsContinuous(i) || x.IsContinuous((i-1+n)%n) {
				return -1
			}
		}
		return i
	}
	return -1
}

// replaceBorder swaps edge i for the cut off road pieces & the new border.
// headA runs from the old border start into the road, headB from the old
// border end. Pieces join neighbouring free edges where there are some.
func (x *Intersection) replaceBorder(i int, headA, headB []r3.Vector) {
	old := x.Edges[i]
	if len(headA) == 0 || len(headB) == 0 {
		return
	}
	a, b := headA[len(headA)-1], headB[len(headB)-1]
	border := &IntersectionEdge{Border: []r3.Vector{a, b}, Road: old.Road}
	tailB := geo.ReversePolyline(headB)

	n := len(x.Edges)
	prev, next := x.Edges[(i-1+n)%n], x.Edges[(i+1)%n]

	replace := []*IntersectionEdge{}
	if prev.Road == nil && prev != old {
		prev.Border = geo.JoinPolylines(prev.Border, headA)
	} else {
		replace = append(replace, &IntersectionEdge{Border: headA})
	}
	replace = append(replace, border)
	if next.Road == nil && next != old && next != prev {
		next.Border = geo.JoinPolylines(tailB, next.Border)
	} else {
		replace = append(replace, &IntersectionEdge{Border: tailB})
	}

	edges := make([]*IntersectionEdge, 0, n+2)
	edges = append(edges, x.Edges[:i]...)
	edges = append(edges, replace...)
	edges = append(edges, x.Edges[i+1:]...)
	x.Edges = edges

	if x.TrafficSignal != nil {
		for _, l := range x.TrafficSignal.Lights {
			if l.Road == old.Road && l.Position.ApproxEqual(midPoint(old.Border)) {
				l.Position = midPoint(border.Border)
			}
		}
	}
}
