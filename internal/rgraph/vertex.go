package rgraph

import (
	"github.com/golang/geo/r3"
)

// IsVertex returns if v refers to a live vertex.
func (g *Graph) IsVertex(v VertexID) bool {
	return g.vertex(v) != nil
}

// Position of v, zero if v is not alive.
func (g *Graph) Position(v VertexID) r3.Vector {
	vt := g.vertex(v)
	if vt == nil {
		return r3.Vector{}
	}
	return vt.pos
}

// SetPosition moves v.
func (g *Graph) SetPosition(v VertexID, pos r3.Vector) {
	if vt := g.vertex(v); vt != nil {
		vt.pos = pos
	}
}

// VertexEdges returns a copy of the edges incident to v.
func (g *Graph) VertexEdges(v VertexID) []EdgeID {
	vt := g.vertex(v)
	if vt == nil {
		return nil
	}
	return append([]EdgeID{}, vt.edges...)
}

// NeighborVertices returns the distinct vertices connected to v by an edge,
// in incidence order.
func (g *Graph) NeighborVertices(v VertexID) []VertexID {
	vt := g.vertex(v)
	if vt == nil {
		return nil
	}
	out := []VertexID{}
	seen := map[VertexID]bool{}
	for _, e := range vt.edges {
		o := g.Opposite(e, v)
		if o == NilVertex || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}

// VertexFaces returns the distinct faces of every edge incident to v.
func (g *Graph) VertexFaces(v VertexID) []FaceID {
	vt := g.vertex(v)
	if vt == nil {
		return nil
	}
	out := []FaceID{}
	seen := map[FaceID]bool{}
	for _, e := range vt.edges {
		for _, f := range g.EdgeFaces(e) {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// MaxLodLevel is the highest LOD of any face touching v.
func (g *Graph) MaxLodLevel(v VertexID) int {
	lod := 0
	for _, f := range g.VertexFaces(v) {
		if l := g.FaceLod(f); l > lod {
			lod = l
		}
	}
	return lod
}

// IsNeighbor returns if an edge joins a & b.
func (g *Graph) IsNeighbor(a, b VertexID) bool {
	return g.FindEdge(a, b) != NilEdge
}

// FindEdge returns the first edge joining a & b.
func (g *Graph) FindEdge(a, b VertexID) EdgeID {
	vt := g.vertex(a)
	if vt == nil || a == b {
		return NilEdge
	}
	for _, e := range vt.edges {
		if g.Opposite(e, a) == b {
			return e
		}
	}
	return NilEdge
}

// MergeVertex moves every edge of src onto dst & frees src. Edges that
// collapse to a single point are removed, edges that end up parallel to an
// existing edge are merged into it (keeping the union of their faces).
// Merging a vertex into itself does nothing.
func (g *Graph) MergeVertex(src, dst VertexID) {
	if src == dst {
		return
	}
	s, d := g.vertex(src), g.vertex(dst)
	if s == nil || d == nil {
		return
	}

	for _, e := range append([]EdgeID{}, s.edges...) {
		o := g.Opposite(e, src)
		switch {
		case o == dst:
			g.RemoveEdge(e)
		case o != NilVertex && g.IsNeighbor(dst, o):
			g.MergeEdge(e, g.FindEdge(dst, o))
		default:
			ed := g.edge(e)
			if ed.v[0] == src {
				ed.v[0] = dst
			} else {
				ed.v[1] = dst
			}
			d = g.vertex(dst)
			d.edges = append(d.edges, e)
		}
	}

	g.freeVertex(src)
}

// DisconnectVertex unlinks v from all of its edges & frees it. With
// removeEdges every incident edge is removed entirely, otherwise the edges
// stay with a NilVertex endpoint.
func (g *Graph) DisconnectVertex(v VertexID, removeEdges bool) {
	vt := g.vertex(v)
	if vt == nil {
		return
	}
	for _, e := range append([]EdgeID{}, vt.edges...) {
		if removeEdges {
			g.RemoveEdge(e)
			continue
		}
		ed := g.edge(e)
		for i := range ed.v {
			if ed.v[i] == v {
				ed.v[i] = NilVertex
			}
		}
	}
	g.freeVertex(v)
}

// CreateVertexSet returns the distinct vertices of every edge in f.
func (g *Graph) CreateVertexSet(f FaceID) []VertexID {
	out := []VertexID{}
	seen := map[VertexID]bool{}
	for _, e := range g.FaceEdges(f) {
		for _, v := range g.EdgeVertices(e) {
			if v == NilVertex || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
