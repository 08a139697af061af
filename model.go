package roadnet

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/voidshard/roadnet/internal/geo"
)

// FactoryVersion is stamped on every Model a Factory builds
const FactoryVersion = "1.0.0"

// Model is a road network; the roads, intersections & sidewalks of one
// region & the links between them.
//
// A Model is not safe for concurrent mutation. Don't touch a Model while a
// Conversion writing to it is running.
type Model struct {
	// FactoryVersion of the factory that built the model
	FactoryVersion string

	roads         []*Road
	intersections []*Intersection
	sideWalks     []*SideWalk
}

// NewModel returns an empty model
func NewModel() *Model {
	return &Model{FactoryVersion: FactoryVersion}
}

// AddRoad adds r to the model
func (m *Model) AddRoad(r *Road) {
	if r != nil {
		m.roads = append(m.roads, r)
	}
}

// AddIntersection adds x to the model
func (m *Model) AddIntersection(x *Intersection) {
	if x != nil {
		m.intersections = append(m.intersections, x)
	}
}

// AddSideWalk adds s to the model
func (m *Model) AddSideWalk(s *SideWalk) {
	if s != nil {
		m.sideWalks = append(m.sideWalks, s)
	}
}

// RemoveRoad removes r & every link to it
func (m *Model) RemoveRoad(r *Road) {
	for i, o := range m.roads {
		if o == r {
			m.roads = append(m.roads[:i], m.roads[i+1:]...)
			m.unlink(r)
			return
		}
	}
}

// RemoveIntersection removes x & every link to it
func (m *Model) RemoveIntersection(x *Intersection) {
	for i, o := range m.intersections {
		if o == x {
			m.intersections = append(m.intersections[:i], m.intersections[i+1:]...)
			m.unlink(x)
			return
		}
	}
}

// RemoveSideWalk removes s
func (m *Model) RemoveSideWalk(s *SideWalk) {
	for i, o := range m.sideWalks {
		if o == s {
			m.sideWalks = append(m.sideWalks[:i], m.sideWalks[i+1:]...)
			m.unlink(s)
			return
		}
	}
}

// unlink drops every reference to rb held by the rest of the model
func (m *Model) unlink(rb RoadBase) {
	m.replaceNeighbor(rb, nil)
}

// replaceNeighbor repoints every reference to `from` at `to`
func (m *Model) replaceNeighbor(from, to RoadBase) {
	for _, r := range m.roads {
		r.replaceNeighbor(from, to)
	}
	for _, x := range m.intersections {
		x.replaceNeighbor(from, to)
	}
	for _, s := range m.sideWalks {
		s.replaceNeighbor(from, to)
	}
}

// dropRoad removes r without touching links, for when the caller has
// already repointed them
func (m *Model) dropRoad(r *Road) {
	for i, o := range m.roads {
		if o == r {
			m.roads = append(m.roads[:i], m.roads[i+1:]...)
			return
		}
	}
}

// Roads returns all roads
func (m *Model) Roads() []*Road {
	return append([]*Road{}, m.roads...)
}

// Intersections returns all intersections
func (m *Model) Intersections() []*Intersection {
	return append([]*Intersection{}, m.intersections...)
}

// SideWalks returns all sidewalks
func (m *Model) SideWalks() []*SideWalk {
	return append([]*SideWalk{}, m.sideWalks...)
}

// RoadBases returns every element; roads, intersections then sidewalks
func (m *Model) RoadBases() []RoadBase {
	out := make([]RoadBase, 0, len(m.roads)+len(m.intersections)+len(m.sideWalks))
	for _, r := range m.roads {
		out = append(out, r)
	}
	for _, x := range m.intersections {
		out = append(out, x)
	}
	for _, s := range m.sideWalks {
		out = append(out, s)
	}
	return out
}

// RoadBy returns the first road built from origin, nil if none
func (m *Model) RoadBy(origin string) *Road {
	for _, r := range m.roads {
		if hasOrigin(r, origin) {
			return r
		}
	}
	return nil
}

// IntersectionBy returns the first intersection built from origin
func (m *Model) IntersectionBy(origin string) *Intersection {
	for _, x := range m.intersections {
		if hasOrigin(x, origin) {
			return x
		}
	}
	return nil
}

// SideWalkBy returns the first sidewalk built from origin
func (m *Model) SideWalkBy(origin string) *SideWalk {
	for _, s := range m.sideWalks {
		if hasOrigin(s, origin) {
			return s
		}
	}
	return nil
}

// RoadBaseBy returns the first element of any kind built from origin.
// Roads are searched first, then intersections, then sidewalks.
func (m *Model) RoadBaseBy(origin string) RoadBase {
	if r := m.RoadBy(origin); r != nil {
		return r
	}
	if x := m.IntersectionBy(origin); x != nil {
		return x
	}
	if s := m.SideWalkBy(origin); s != nil {
		return s
	}
	return nil
}

func hasOrigin(rb RoadBase, origin string) bool {
	for _, o := range rb.Origins() {
		if o == origin {
			return true
		}
	}
	return false
}

// NeighborRoadBases returns the elements rb links to directly
func (m *Model) NeighborRoadBases(rb RoadBase) []RoadBase {
	if rb == nil {
		return nil
	}
	return rb.Neighbors()
}

// NeighborRoads returns the roads rb links to directly
func (m *Model) NeighborRoads(rb RoadBase) []*Road {
	return filterRoads(m.NeighborRoadBases(rb))
}

// NeighborIntersections returns the intersections rb links to directly
func (m *Model) NeighborIntersections(rb RoadBase) []*Intersection {
	return filterIntersections(m.NeighborRoadBases(rb))
}

// NeighborSideWalks returns the sidewalks whose parent is rb
func (m *Model) NeighborSideWalks(rb RoadBase) []*SideWalk {
	out := []*SideWalk{}
	if rb == nil {
		return out
	}
	for _, s := range m.sideWalks {
		if s.Parent == rb {
			out = append(out, s)
		}
	}
	return out
}

// ConnectedRoadBases returns the direct neighbors of rb plus the sidewalks
// hanging off it.
func (m *Model) ConnectedRoadBases(rb RoadBase) []RoadBase {
	out := append([]RoadBase{}, m.NeighborRoadBases(rb)...)
	for _, s := range m.NeighborSideWalks(rb) {
		if !containsRoadBase(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// ConnectedRoads returns the roads of ConnectedRoadBases
func (m *Model) ConnectedRoads(rb RoadBase) []*Road {
	return filterRoads(m.ConnectedRoadBases(rb))
}

// ConnectedIntersections returns the intersections of ConnectedRoadBases
func (m *Model) ConnectedIntersections(rb RoadBase) []*Intersection {
	return filterIntersections(m.ConnectedRoadBases(rb))
}

// ConnectedSideWalks returns the sidewalks of ConnectedRoadBases
func (m *Model) ConnectedSideWalks(rb RoadBase) []*SideWalk {
	return filterSideWalks(m.ConnectedRoadBases(rb))
}

// ConnectedRoadBasesRecursive returns everything reachable from rb (not
// including rb) in breadth first order.
func (m *Model) ConnectedRoadBasesRecursive(rb RoadBase) []RoadBase {
	if rb == nil {
		return nil
	}
	visited := map[RoadBase]bool{rb: true}
	queue := []RoadBase{rb}
	out := []RoadBase{}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, n := range m.ConnectedRoadBases(next) {
			if visited[n] {
				continue
			}
			visited[n] = true
			out = append(out, n)
			queue = append(queue, n)
		}
	}
	return out
}

// RoadBaseAt returns the element whose outline contains p (in the ground
// plane), nil if there isn't one.
func (m *Model) RoadBaseAt(p r2.Point) RoadBase {
	for _, rb := range m.RoadBases() {
		if outlinePolygon(rb.Outline()).Contains(p) {
			return rb
		}
	}
	return nil
}

// Stats returns counts describing the model
func (m *Model) Stats() *ModelStats {
	s := &ModelStats{
		Roads:         len(m.roads),
		Intersections: len(m.intersections),
		SideWalks:     len(m.sideWalks),
	}
	for _, r := range m.roads {
		s.Lanes += len(r.Lanes)
		s.TotalRoadLength += r.Length()
	}
	return s
}

func outlinePolygon(pts []r3.Vector) *geo.Polygon {
	ring := make([]r2.Point, len(pts))
	for i, p := range pts {
		ring[i] = groundPlane.To2D(p)
	}
	return geo.NewPolygon(ring)
}

func filterRoads(in []RoadBase) []*Road {
	out := []*Road{}
	for _, rb := range in {
		if r, ok := rb.(*Road); ok {
			out = append(out, r)
		}
	}
	return out
}

func filterIntersections(in []RoadBase) []*Intersection {
	out := []*Intersection{}
	for _, rb := range in {
		if x, ok := rb.(*Intersection); ok {
			out = append(out, x)
		}
	}
	return out
}

func filterSideWalks(in []RoadBase) []*SideWalk {
	out := []*SideWalk{}
	for _, rb := range in {
		if s, ok := rb.(*SideWalk); ok {
			out = append(out, s)
		}
	}
	return out
}
