package rgraph

import (
	"github.com/golang/geo/r3"
	"github.com/unixpickle/essentials"

	"github.com/voidshard/roadnet/internal/encoding"
	"github.com/voidshard/roadnet/internal/geo"
)

type vertex struct {
	gen   uint32
	alive bool

	pos   r3.Vector
	edges []EdgeID
}

type edge struct {
	gen   uint32
	alive bool

	v     [2]VertexID
	faces []FaceID
}

type face struct {
	gen   uint32
	alive bool

	edges      []EdgeID
	cityObject string
	roadTypes  RoadType
	lod        int
}

// Graph owns every vertex, edge & face of one region. All references between
// them are handles resolved through the Graph, so removal is only ever a
// matter of bookkeeping.
//
// A Graph is not safe for concurrent mutation.
type Graph struct {
	// Plane is the ground plane, the remaining axis is height
	Plane geo.AxisPlane

	vertices []vertex
	edges    []edge
	faces    []face

	freeVertices []int
	freeEdges    []int
	freeFaces    []int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

func (g *Graph) vertex(id VertexID) *vertex {
	i, gen, ok := id.slot()
	if !ok || i >= len(g.vertices) {
		return nil
	}
	v := &g.vertices[i]
	if !v.alive || v.gen != gen {
		return nil
	}
	return v
}

func (g *Graph) edge(id EdgeID) *edge {
	i, gen, ok := id.slot()
	if !ok || i >= len(g.edges) {
		return nil
	}
	e := &g.edges[i]
	if !e.alive || e.gen != gen {
		return nil
	}
	return e
}

func (g *Graph) face(id FaceID) *face {
	i, gen, ok := id.slot()
	if !ok || i >= len(g.faces) {
		return nil
	}
	f := &g.faces[i]
	if !f.alive || f.gen != gen {
		return nil
	}
	return f
}

// NewVertex adds a vertex at pos.
func (g *Graph) NewVertex(pos r3.Vector) VertexID {
	var i int
	if n := len(g.freeVertices); n > 0 {
		i = g.freeVertices[n-1]
		g.freeVertices = g.freeVertices[:n-1]
	} else {
		g.vertices = append(g.vertices, vertex{})
		i = len(g.vertices) - 1
	}
	v := &g.vertices[i]
	v.gen++
	v.alive = true
	v.pos = pos
	v.edges = nil
	return VertexID(encoding.Handle(i, v.gen))
}

// NewEdge adds an edge between v0 & v1. Returns NilEdge if either vertex is
// not alive or both are the same vertex.
func (g *Graph) NewEdge(v0, v1 VertexID) EdgeID {
	a, b := g.vertex(v0), g.vertex(v1)
	if a == nil || b == nil || v0 == v1 {
		return NilEdge
	}

	var i int
	if n := len(g.freeEdges); n > 0 {
		i = g.freeEdges[n-1]
		g.freeEdges = g.freeEdges[:n-1]
	} else {
		g.edges = append(g.edges, edge{})
		i = len(g.edges) - 1
	}
	e := &g.edges[i]
	e.gen++
	e.alive = true
	e.v = [2]VertexID{v0, v1}
	e.faces = nil

	id := EdgeID(encoding.Handle(i, e.gen))
	a.edges = append(a.edges, id)
	b.edges = append(b.edges, id)
	return id
}

// NewFace adds an empty face originating from the given city object.
func (g *Graph) NewFace(cityObject string, roadTypes RoadType, lod int) FaceID {
	var i int
	if n := len(g.freeFaces); n > 0 {
		i = g.freeFaces[n-1]
		g.freeFaces = g.freeFaces[:n-1]
	} else {
		g.faces = append(g.faces, face{})
		i = len(g.faces) - 1
	}
	f := &g.faces[i]
	f.gen++
	f.alive = true
	f.edges = nil
	f.cityObject = cityObject
	f.roadTypes = roadTypes
	f.lod = lod
	return FaceID(encoding.Handle(i, f.gen))
}

func (g *Graph) freeVertex(id VertexID) {
	i, _, ok := id.slot()
	if !ok {
		return
	}
	g.vertices[i].alive = false
	g.vertices[i].edges = nil
	g.freeVertices = append(g.freeVertices, i)
}

func (g *Graph) freeEdge(id EdgeID) {
	i, _, ok := id.slot()
	if !ok {
		return
	}
	g.edges[i].alive = false
	g.edges[i].faces = nil
	g.edges[i].v = [2]VertexID{}
	g.freeEdges = append(g.freeEdges, i)
}

func (g *Graph) freeFace(id FaceID) {
	i, _, ok := id.slot()
	if !ok {
		return
	}
	g.faces[i].alive = false
	g.faces[i].edges = nil
	g.freeFaces = append(g.freeFaces, i)
}

// Vertices returns every live vertex in slot order.
func (g *Graph) Vertices() []VertexID {
	out := []VertexID{}
	for i := range g.vertices {
		if g.vertices[i].alive {
			out = append(out, VertexID(encoding.Handle(i, g.vertices[i].gen)))
		}
	}
	return out
}

// Edges returns every live edge in slot order.
func (g *Graph) Edges() []EdgeID {
	out := []EdgeID{}
	for i := range g.edges {
		if g.edges[i].alive {
			out = append(out, EdgeID(encoding.Handle(i, g.edges[i].gen)))
		}
	}
	return out
}

// Faces returns every live face in slot order.
func (g *Graph) Faces() []FaceID {
	out := []FaceID{}
	for i := range g.faces {
		if g.faces[i].alive {
			out = append(out, FaceID(encoding.Handle(i, g.faces[i].gen)))
		}
	}
	return out
}

// VertexCount, EdgeCount & FaceCount return the number of live elements.
func (g *Graph) VertexCount() int { return len(g.vertices) - len(g.freeVertices) }

func (g *Graph) EdgeCount() int { return len(g.edges) - len(g.freeEdges) }

func (g *Graph) FaceCount() int { return len(g.faces) - len(g.freeFaces) }

// vertexSlots, edgeSlots & faceSlots are the arena sizes, for bitmaps
// indexed by slot.
func (g *Graph) vertexSlots() int { return len(g.vertices) }

func (g *Graph) faceSlots() int { return len(g.faces) }

func (g *Graph) edgeSlots() int { return len(g.edges) }

// removeEdgeID deletes the first occurrence of id from list.
func removeEdgeID(list *[]EdgeID, id EdgeID) bool {
	for i, e := range *list {
		if e == id {
			essentials.UnorderedDelete(list, i)
			return true
		}
	}
	return false
}

// removeFaceID deletes the first occurrence of id from list.
func removeFaceID(list *[]FaceID, id FaceID) bool {
	for i, f := range *list {
		if f == id {
			essentials.UnorderedDelete(list, i)
			return true
		}
	}
	return false
}

func containsFace(list []FaceID, id FaceID) bool {
	for _, f := range list {
		if f == id {
			return true
		}
	}
	return false
}

func containsEdge(list []EdgeID, id EdgeID) bool {
	for _, e := range list {
		if e == id {
			return true
		}
	}
	return false
}
