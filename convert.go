package roadnet

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/voidshard/roadnet/internal/geo"
	"github.com/voidshard/roadnet/internal/rgraph"
)

// groupInfo is a face group on its way to becoming a road base
type groupInfo struct {
	fg       *rgraph.FaceGroup
	sidewalk bool

	// ring is the outline, counter clockwise
	ring []rgraph.VertexID

	// labels[i] is the road group sharing ring edge i (ring[i] to
	// ring[i+1]), -1 if none
	labels []int
	runs   []outlineRun

	element RoadBase
}

// outlineRun is a stretch of consecutive ring edges with the same label
type outlineRun struct {
	label  int
	start  int
	length int
}

// converter turns a cleaned graph into road bases
type converter struct {
	g      *rgraph.Graph
	cfg    *FactoryConfig
	model  *Model
	groups []*groupInfo
}

// convertGraph builds a Model from g
func convertGraph(g *rgraph.Graph, cfg *FactoryConfig) *Model {
	c := &converter{g: g, cfg: cfg, model: NewModel()}
	c.group()
	c.outline()
	c.roads()
	c.link()
	c.sideWalks()
	if cfg.AddTrafficSignalLights {
		c.trafficSignals()
	}
	return c.model
}

func (c *converter) isSideWalkFace(f rgraph.FaceID) bool {
	t := c.g.FaceRoadTypes(f)
	return t.Has(RoadTypeSideWalk) && !t.IsRoad()
}

// group splits faces by city object & whether they are sidewalk
func (c *converter) group() {
	match := func(a, b rgraph.FaceID) bool {
		return c.g.FaceCityObject(a) == c.g.FaceCityObject(b) && c.isSideWalkFace(a) == c.isSideWalkFace(b)
	}
	for _, fg := range rgraph.GroupBy(c.g, match) {
		c.groups = append(c.groups, &groupInfo{fg: fg, sidewalk: c.isSideWalkFace(fg.Faces[0])})
	}
}

// outline computes the ring, labels & runs of every group
func (c *converter) outline() {
	faceGroup := map[rgraph.FaceID]int{}
	for i, gi := range c.groups {
		for _, f := range gi.fg.Faces {
			faceGroup[f] = i
		}
	}

	for i, gi := range c.groups {
		ring := rgraph.ComputeFaceGroupOutlineVertices(c.g, gi.fg, nil)
		pts := make([]r2.Point, len(ring))
		for k, v := range ring {
			pts[k] = groundPlane.To2D(c.g.Position(v))
		}
		if geo.NewPolygon(pts).Area() < 0 {
			for a, b := 0, len(ring)-1; a < b; a, b = a+1, b-1 {
				ring[a], ring[b] = ring[b], ring[a]
			}
		}
		gi.ring = ring

		gi.labels = make([]int, len(ring))
		for k := range ring {
			gi.labels[k] = -1
			e := c.g.FindEdge(ring[k], ring[(k+1)%len(ring)])
			if e == rgraph.NilEdge {
				continue
			}
			for _, f := range c.g.EdgeFaces(e) {
				j, ok := faceGroup[f]
				if !ok || j == i || c.groups[j].sidewalk {
					continue
				}
				gi.labels[k] = j
				break
			}
		}
		gi.runs = cyclicRuns(gi.labels)
	}
}

// cyclicRuns splits labels into runs of equal values. Runs start on a
// change of label so none wraps past the end unless every label is equal.
func cyclicRuns(labels []int) []outlineRun {
	n := len(labels)
	if n == 0 {
		return nil
	}
	s := -1
	for i := range labels {
		if labels[i] != labels[(i-1+n)%n] {
			s = i
			break
		}
	}
	if s < 0 {
		return []outlineRun{{label: labels[0], start: 0, length: n}}
	}

	runs := []outlineRun{}
	current := outlineRun{label: labels[s], start: s}
	for k := 0; k < n; k++ {
		i := (s + k) % n
		if labels[i] != current.label {
			runs = append(runs, current)
			current = outlineRun{label: labels[i], start: i}
		}
		current.length++
	}
	return append(runs, current)
}

// borders returns the runs shared with another road group
func (gi *groupInfo) borders() []outlineRun {
	out := []outlineRun{}
	for _, r := range gi.runs {
		if r.label >= 0 && r.length < len(gi.ring) {
			out = append(out, r)
		}
	}
	return out
}

func (gi *groupInfo) runEnd(r outlineRun) int {
	return (r.start + r.length) % len(gi.ring)
}

// path returns ring positions from index `from` forward to `to` inclusive
func (c *converter) path(gi *groupInfo, from, to int) []r3.Vector {
	n := len(gi.ring)
	out := []r3.Vector{c.g.Position(gi.ring[from])}
	for i := from; i != to; {
		i = (i + 1) % n
		out = append(out, c.g.Position(gi.ring[i]))
	}
	return out
}

// fullRing returns every ring position in order
func (c *converter) fullRing(gi *groupInfo) []r3.Vector {
	out := make([]r3.Vector, len(gi.ring))
	for i, v := range gi.ring {
		out[i] = c.g.Position(v)
	}
	return out
}

// roads creates a road or intersection for each road group
func (c *converter) roads() {
	for _, gi := range c.groups {
		if gi.sidewalk || len(gi.ring) < 3 {
			continue
		}
		if len(gi.borders()) >= 3 {
			x := newIntersection(gi.fg.CityObject)
			for _, r := range gi.runs {
				x.Edges = append(x.Edges, &IntersectionEdge{Border: c.path(gi, r.start, gi.runEnd(r))})
			}
			gi.element = x
			c.model.AddIntersection(x)
			continue
		}

		road := c.newRoad(gi)
		gi.element = road
		c.model.AddRoad(road)
	}
}

// newRoad fills the geometry of a road from its outline & borders
func (c *converter) newRoad(gi *groupInfo) *Road {
	road := newRoad(gi.fg.CityObject)
	road.Lod = gi.fg.MaxLod(c.g)
	road.HasMedian = c.cfg.CheckMedian && gi.fg.RoadTypes(c.g).Has(RoadTypeMedian)

	borders := gi.borders()
	switch len(borders) {
	case 2:
		prev, next := borders[0], borders[1]
		road.PrevBorder = c.path(gi, prev.start, gi.runEnd(prev))
		road.RightWay = c.path(gi, gi.runEnd(prev), next.start)
		road.NextBorder = c.path(gi, next.start, gi.runEnd(next))
		road.LeftWay = geo.ReversePolyline(c.path(gi, gi.runEnd(next), prev.start))
	case 1:
		prev := borders[0]
		road.PrevBorder = c.path(gi, prev.start, gi.runEnd(prev))
		free := c.path(gi, gi.runEnd(prev), prev.start)
		a, b := c.terminate(free, road.PrevBorder)
		road.RightWay = append([]r3.Vector{}, free[:a+1]...)
		road.NextBorder = append([]r3.Vector{}, free[a:b+1]...)
		road.LeftWay = geo.ReversePolyline(free[b:])
	default:
		lo, hi := c.extremes(gi)
		n := len(gi.ring)
		road.PrevBorder = c.path(gi, lo, (lo+1)%n)
		road.RightWay = c.path(gi, (lo+1)%n, hi)
		road.NextBorder = c.path(gi, hi, (hi+1)%n)
		road.LeftWay = geo.ReversePolyline(c.path(gi, (hi+1)%n, lo))
	}

	road.Lanes = makeLanes(wayDistance(road.LeftWay, road.RightWay), c.cfg.RoadSize)
	return road
}

// terminate picks the end of a dead end road from the free outline path,
// returning the first & last index of the end in path.
func (c *converter) terminate(path, border []r3.Vector) (int, int) {
	m := len(path) - 1
	if m < 1 {
		return 0, 0
	}

	// join near straight runs of edges into pieces
	type piece struct{ a, b int }
	pieces := []piece{{0, 1}}
	for k := 1; k < m; k++ {
		last := &pieces[len(pieces)-1]
		d0 := direction(path[last.b-1], path[last.b])
		d1 := direction(path[k], path[k+1])
		if geo.AngleBetween(d0, d1) < c.cfg.TerminateSkipAngle {
			last.b = k + 1
			continue
		}
		pieces = append(pieces, piece{k, k + 1})
	}
	if len(pieces) >= 3 {
		pieces = pieces[1 : len(pieces)-1]
	}

	bdir := direction(border[0], border[len(border)-1])
	bmid := groundPlane.To2D(border[0]).Add(groundPlane.To2D(border[len(border)-1])).Mul(0.5)

	best, bestDist := -1, -1.0
	for i, p := range pieces {
		if bdir.Norm() > geo.Epsilon {
			angle := geo.AngleBetween(bdir, direction(path[p.a], path[p.b]))
			if math.Min(angle, 180-angle) > c.cfg.TerminateAllowEdgeAngle {
				continue
			}
		}
		mid := groundPlane.To2D(path[p.a]).Add(groundPlane.To2D(path[p.b])).Mul(0.5)
		if d := mid.Sub(bmid).Norm(); d > bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return pieces[best].a, pieces[best].b
	}

	// nothing looks like an end, use the farthest point
	far, farDist := 0, -1.0
	for k := 0; k <= m; k++ {
		if m >= 2 && (k == 0 || k == m) {
			continue
		}
		if d := groundPlane.To2D(path[k]).Sub(bmid).Norm(); d > farDist {
			far, farDist = k, d
		}
	}
	return far, far
}

// extremes returns the ring edges (by index of their first vertex) that
// sit furthest back & forward along the longest outline edge
func (c *converter) extremes(gi *groupInfo) (int, int) {
	n := len(gi.ring)
	var main r2.Point
	longest := -1.0
	for i := range gi.ring {
		d := direction(c.g.Position(gi.ring[i]), c.g.Position(gi.ring[(i+1)%n]))
		if l := d.Norm(); l > longest {
			main, longest = d, l
		}
	}
	if longest <= geo.Epsilon {
		return 0, n / 2
	}
	main = main.Normalize()

	lo, hi := 0, 0
	loV, hiV := math.Inf(1), math.Inf(-1)
	for i := range gi.ring {
		a := groundPlane.To2D(c.g.Position(gi.ring[i]))
		b := groundPlane.To2D(c.g.Position(gi.ring[(i+1)%n]))
		t := a.Add(b).Mul(0.5).Dot(main)
		if t < loV {
			lo, loV = i, t
		}
		if t > hiV {
			hi, hiV = i, t
		}
	}
	if lo == hi {
		hi = (lo + n/2) % n
	}
	return lo, hi
}

// link connects roads & intersections to their neighbours
func (c *converter) link() {
	for _, gi := range c.groups {
		switch e := gi.element.(type) {
		case *Road:
			borders := gi.borders()
			if len(borders) > 0 {
				e.Prev = c.groups[borders[0].label].element
			}
			if len(borders) > 1 {
				e.Next = c.groups[borders[1].label].element
			}
		case *Intersection:
			for i, r := range gi.runs {
				if r.label >= 0 {
					e.Edges[i].Road = c.groups[r.label].element
				}
			}
		}
	}
}

// sideWalks creates a sidewalk for each sidewalk group. The parent is the
// road base of the same city object, else the road group sharing the most
// outline with it.
func (c *converter) sideWalks() {
	byObject := map[string]int{}
	for i, gi := range c.groups {
		if gi.element == nil {
			continue
		}
		if _, ok := byObject[gi.fg.CityObject]; !ok {
			byObject[gi.fg.CityObject] = i
		}
	}

	for _, gi := range c.groups {
		if !gi.sidewalk || len(gi.ring) < 3 {
			continue
		}

		parent, ok := byObject[gi.fg.CityObject]
		if !ok {
			parent = -1
			shared := map[int]int{}
			for _, l := range gi.labels {
				if l >= 0 && c.groups[l].element != nil {
					shared[l]++
				}
			}
			most := 0
			for l, count := range shared {
				if count > most || (count == most && l < parent) {
					parent, most = l, count
				}
			}
		}

		s := newSideWalk(c.fullRing(gi), gi.fg.CityObject)
		if parent >= 0 {
			s.Parent = c.groups[parent].element
		}

		inside := -1
		for i, r := range gi.runs {
			if r.label == parent && parent >= 0 && (inside < 0 || r.length > gi.runs[inside].length) {
				inside = i
			}
		}
		switch {
		case inside < 0:
			s.OutsideWay = c.fullRing(gi)
		case gi.runs[inside].length >= len(gi.ring):
			s.InsideWay = c.fullRing(gi)
		default:
			r := gi.runs[inside]
			s.InsideWay = c.path(gi, r.start, gi.runEnd(r))
			s.OutsideWay = c.path(gi, gi.runEnd(r), r.start)
		}

		c.model.AddSideWalk(s)
	}
}

// generateSideWalks carves sidewalks out of low LOD roads that have none,
// if the road is wide enough. Road borders shrink to the carved ways, so
// this runs after intersection borders are final. Returns the number of
// roads given sidewalks.
func (m *Model) generateSideWalks(cfg *FactoryConfig) int {
	size := cfg.Lod1SideWalkSize
	if size <= 0 {
		return 0
	}
	count := 0
	for _, road := range m.Roads() {
		if road.Lod > 1 || len(m.NeighborSideWalks(road)) > 0 {
			continue
		}
		width := wayDistance(road.LeftWay, road.RightWay)
		if width-2*size < cfg.Lod1SideWalkThresholdRoadWidth {
			continue
		}
		if len(road.LeftWay) < 2 || len(road.RightWay) < 2 {
			continue
		}

		oldLeft, oldRight := road.LeftWay, road.RightWay
		newLeft := offsetPolyline(oldLeft, -size)
		newRight := offsetPolyline(oldRight, size)

		// keep the ways meeting the (trimmed) borders
		if pb := trimPolyline(road.PrevBorder, size); len(pb) >= 2 {
			road.PrevBorder = pb
			newLeft[0], newRight[0] = pb[0], pb[len(pb)-1]
		}
		if nb := trimPolyline(road.NextBorder, size); len(nb) >= 2 {
			road.NextBorder = nb
			newRight[len(newRight)-1], newLeft[len(newLeft)-1] = nb[0], nb[len(nb)-1]
		}
		road.LeftWay, road.RightWay = newLeft, newRight
		road.Lanes = makeLanes(width-2*size, cfg.RoadSize)

		right := newSideWalk(closeRing(geo.JoinPolylines(oldRight, geo.ReversePolyline(newRight))), road.Origins()...)
		right.Parent = road
		right.InsideWay, right.OutsideWay = newRight, oldRight

		left := newSideWalk(closeRing(geo.JoinPolylines(newLeft, geo.ReversePolyline(oldLeft))), road.Origins()...)
		left.Parent = road
		left.InsideWay, left.OutsideWay = newLeft, oldLeft

		m.AddSideWalk(right)
		m.AddSideWalk(left)
		count++
	}
	return count
}

// trafficSignals adds a controller to intersections joining 3+ roads
func (c *converter) trafficSignals() {
	for _, x := range c.model.intersections {
		roads := 0
		for _, n := range x.Neighbors() {
			if n.Kind() == KindRoad {
				roads++
			}
		}
		if roads < 3 {
			continue
		}
		ctrl := &TrafficSignalController{}
		for _, e := range x.Edges {
			if e.Road == nil {
				continue
			}
			ctrl.Lights = append(ctrl.Lights, &TrafficLight{Road: e.Road, Position: midPoint(e.Border)})
		}
		x.TrafficSignal = ctrl
	}
}

// makeLanes splits width into lanes of about laneWidth, half of them
// reversed. Lanes run from the left way to the right way.
func makeLanes(width, laneWidth float64) []*Lane {
	n := 1
	if laneWidth > 0 {
		n = int(math.Max(1, math.Round(width/laneWidth)))
	}
	reverse := n / 2
	lanes := make([]*Lane, n)
	for i := range lanes {
		lanes[i] = &Lane{Width: width / float64(n), Reverse: i < reverse}
	}
	return lanes
}

// direction returns b - a in the ground plane
func direction(a, b r3.Vector) r2.Point {
	return groundPlane.To2D(b).Sub(groundPlane.To2D(a))
}

// midPoint returns the point half way along a polyline
func midPoint(line []r3.Vector) r3.Vector {
	if len(line) == 0 {
		return r3.Vector{}
	}
	head, _ := geo.CutPolyline(line, geo.PolylineLength(line)/2)
	return head[len(head)-1]
}

// polylineDistance is the 2D distance from p to the nearest point of line
func polylineDistance(p r3.Vector, line []r3.Vector) float64 {
	pt := groundPlane.To2D(p)
	if len(line) == 1 {
		return pt.Sub(groundPlane.To2D(line[0])).Norm()
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(line); i++ {
		s := geo.Segment2{Start: groundPlane.To2D(line[i]), End: groundPlane.To2D(line[i+1])}
		best = math.Min(best, s.Distance(pt))
	}
	return best
}

// wayDistance is the mean distance between the points of two polylines &
// the other polyline
func wayDistance(a, b []r3.Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range a {
		sum += polylineDistance(p, b)
	}
	for _, p := range b {
		sum += polylineDistance(p, a)
	}
	return sum / float64(len(a)+len(b))
}

// offsetPolyline moves each point dist to the left of the line direction
// (negative is right), keeping heights
func offsetPolyline(line []r3.Vector, dist float64) []r3.Vector {
	out := make([]r3.Vector, len(line))
	for i, p := range line {
		normal := r2.Point{}
		if i > 0 {
			normal = normal.Add(direction(line[i-1], p).Normalize().Ortho())
		}
		if i+1 < len(line) {
			normal = normal.Add(direction(p, line[i+1]).Normalize().Ortho())
		}
		if normal.Norm() > geo.Epsilon {
			normal = normal.Normalize()
		}
		moved := groundPlane.To2D(p).Add(normal.Mul(dist))
		out[i] = groundPlane.To3D(moved, groundPlane.Height(p))
	}
	return out
}

// trimPolyline cuts dist off both ends of line, nil if nothing is left
func trimPolyline(line []r3.Vector, dist float64) []r3.Vector {
	l := geo.PolylineLength(line)
	if l <= 2*dist {
		return nil
	}
	_, tail := geo.CutPolyline(line, dist)
	head, _ := geo.CutPolyline(tail, l-2*dist)
	return head
}
