package roadnet

import (
	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"github.com/voidshard/roadnet/internal/geo"
)

// RoadBaseKind tells roads, intersections & sidewalks apart
type RoadBaseKind int

const (
	KindRoad RoadBaseKind = iota
	KindIntersection
	KindSideWalk
)

// String returns a human readable name for the kind
func (k RoadBaseKind) String() string {
	switch k {
	case KindRoad:
		return "road"
	case KindIntersection:
		return "intersection"
	case KindSideWalk:
		return "sidewalk"
	}
	return "unknown"
}

// RoadBase is any element of a road network.
type RoadBase interface {
	// ID is a unique id for this element
	ID() uuid.UUID

	// Kind of element
	Kind() RoadBaseKind

	// Origins are the city object groups this element was built from
	Origins() []string

	// Outline is the closed boundary of the element, counter clockwise
	// when viewed from above. The last point does not repeat the first.
	Outline() []r3.Vector

	// Neighbors are the elements this one links to directly
	Neighbors() []RoadBase

	// replaceNeighbor swaps every link to `from` for `to` (which may be nil)
	replaceNeighbor(from, to RoadBase)
}

// Lane is one lane of a road.
type Lane struct {
	Width float64

	// Reverse lanes run from the Next end to the Prev end
	Reverse bool
}

// Road is a stretch of road between (at most) two other elements.
//
// LeftWay & RightWay both run from the Prev end to the Next end; RightWay is
// on the right hand side travelling that way. PrevBorder runs from
// LeftWay[0] to RightWay[0], NextBorder from the last point of RightWay to
// the last point of LeftWay, so walking RightWay, NextBorder, reversed
// LeftWay then PrevBorder goes round the road counter clockwise.
type Road struct {
	id      uuid.UUID
	origins []string

	// Prev & Next are what the road connects to, nil for a dead end
	Prev RoadBase
	Next RoadBase

	PrevBorder []r3.Vector
	NextBorder []r3.Vector
	LeftWay    []r3.Vector
	RightWay   []r3.Vector

	Lanes []*Lane

	// HasMedian is set if median geometry was found in the road
	HasMedian bool

	// Lod of the source geometry
	Lod int
}

func newRoad(origins ...string) *Road {
	return &Road{id: uuid.New(), origins: origins}
}

// ID of the road
func (r *Road) ID() uuid.UUID { return r.id }

// Kind returns KindRoad
func (r *Road) Kind() RoadBaseKind { return KindRoad }

// Origins of the road
func (r *Road) Origins() []string { return r.origins }

// Outline of the road
func (r *Road) Outline() []r3.Vector {
	return closeRing(geo.JoinPolylines(r.RightWay, r.NextBorder, geo.ReversePolyline(r.LeftWay), r.PrevBorder))
}

// Neighbors returns Prev & Next (where set)
func (r *Road) Neighbors() []RoadBase {
	out := []RoadBase{}
	if r.Prev != nil {
		out = append(out, r.Prev)
	}
	if r.Next != nil && r.Next != r.Prev {
		out = append(out, r.Next)
	}
	return out
}

func (r *Road) replaceNeighbor(from, to RoadBase) {
	if r.Prev == from {
		r.Prev = to
	}
	if r.Next == from {
		r.Next = to
	}
}

// Length is the mean length of the two ways
func (r *Road) Length() float64 {
	return (geo.PolylineLength(r.LeftWay) + geo.PolylineLength(r.RightWay)) / 2
}

// Width is the sum of the lane widths
func (r *Road) Width() float64 {
	w := 0.0
	for _, l := range r.Lanes {
		w += l.Width
	}
	return w
}

// reverse flips the direction of the road in place
func (r *Road) reverse() {
	r.Prev, r.Next = r.Next, r.Prev
	r.PrevBorder, r.NextBorder = r.NextBorder, r.PrevBorder
	r.LeftWay, r.RightWay = geo.ReversePolyline(r.RightWay), geo.ReversePolyline(r.LeftWay)

	lanes := make([]*Lane, len(r.Lanes))
	for i, l := range r.Lanes {
		lanes[len(r.Lanes)-1-i] = &Lane{Width: l.Width, Reverse: !l.Reverse}
	}
	r.Lanes = lanes
}

// IntersectionEdge is one side of an intersection. Sides joining a road
// carry the road, free sides (kerbs etc) have a nil Road.
type IntersectionEdge struct {
	Border []r3.Vector
	Road   RoadBase
}

// TrafficLight faces traffic arriving from one road
type TrafficLight struct {
	Road     RoadBase
	Position r3.Vector
}

// TrafficSignalController holds the lights of one intersection
type TrafficSignalController struct {
	Lights []*TrafficLight
}

// Intersection is where three or more roads (or dead ends) meet.
type Intersection struct {
	id      uuid.UUID
	origins []string

	// Edges in outline order, each border continuing from the last
	Edges []*IntersectionEdge

	// TrafficSignal is nil when the intersection has no signals
	TrafficSignal *TrafficSignalController
}

func newIntersection(origins ...string) *Intersection {
	return &Intersection{id: uuid.New(), origins: origins}
}

// ID of the intersection
func (x *Intersection) ID() uuid.UUID { return x.id }

// Kind returns KindIntersection
func (x *Intersection) Kind() RoadBaseKind { return KindIntersection }

// Origins of the intersection
func (x *Intersection) Origins() []string { return x.origins }

// Outline of the intersection
func (x *Intersection) Outline() []r3.Vector {
	lines := make([][]r3.Vector, len(x.Edges))
	for i, e := range x.Edges {
		lines[i] = e.Border
	}
	return closeRing(geo.JoinPolylines(lines...))
}

// Neighbors returns each distinct road joined to the intersection
func (x *Intersection) Neighbors() []RoadBase {
	out := []RoadBase{}
	for _, e := range x.Edges {
		if e.Road == nil || containsRoadBase(out, e.Road) {
			continue
		}
		out = append(out, e.Road)
	}
	return out
}

func (x *Intersection) replaceNeighbor(from, to RoadBase) {
	for _, e := range x.Edges {
		if e.Road == from {
			e.Road = to
		}
	}
	if x.TrafficSignal == nil {
		return
	}
	lights := x.TrafficSignal.Lights[:0]
	for _, l := range x.TrafficSignal.Lights {
		if l.Road == from {
			if to == nil {
				continue
			}
			l.Road = to
		}
		lights = append(lights, l)
	}
	x.TrafficSignal.Lights = lights
}

// IsContinuous returns if edge i & the edge after it both join roads, ie.
// there is no free side between the two borders.
func (x *Intersection) IsContinuous(i int) bool {
	n := len(x.Edges)
	if n < 2 || i < 0 || i >= n {
		return false
	}
	return x.Edges[i].Road != nil && x.Edges[(i+1)%n].Road != nil
}

// roadEdges returns the indexes of edges joined to a road
func (x *Intersection) roadEdges() []int {
	out := []int{}
	for i, e := range x.Edges {
		if e.Road != nil {
			out = append(out, i)
		}
	}
	return out
}

// SideWalk runs alongside a road or intersection (its Parent).
type SideWalk struct {
	id      uuid.UUID
	origins []string
	outline []r3.Vector

	Parent RoadBase

	// InsideWay is the side touching the parent, OutsideWay the rest
	InsideWay  []r3.Vector
	OutsideWay []r3.Vector
}

func newSideWalk(outline []r3.Vector, origins ...string) *SideWalk {
	return &SideWalk{id: uuid.New(), origins: origins, outline: outline}
}

// ID of the sidewalk
func (s *SideWalk) ID() uuid.UUID { return s.id }

// Kind returns KindSideWalk
func (s *SideWalk) Kind() RoadBaseKind { return KindSideWalk }

// Origins of the sidewalk
func (s *SideWalk) Origins() []string { return s.origins }

// Outline of the sidewalk
func (s *SideWalk) Outline() []r3.Vector { return s.outline }

// Neighbors returns the parent, if any
func (s *SideWalk) Neighbors() []RoadBase {
	if s.Parent == nil {
		return []RoadBase{}
	}
	return []RoadBase{s.Parent}
}

func (s *SideWalk) replaceNeighbor(from, to RoadBase) {
	if s.Parent == from {
		s.Parent = to
	}
}

// closeRing drops a last point repeating the first
func closeRing(pts []r3.Vector) []r3.Vector {
	if n := len(pts); n >= 2 && pts[0].ApproxEqual(pts[n-1]) {
		return pts[:n-1]
	}
	return pts
}

func containsRoadBase(list []RoadBase, rb RoadBase) bool {
	for _, o := range list {
		if o == rb {
			return true
		}
	}
	return false
}
