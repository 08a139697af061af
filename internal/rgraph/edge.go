package rgraph

import (
	"github.com/voidshard/roadnet/internal/geo"
)

// IsEdge returns if e refers to a live edge.
func (g *Graph) IsEdge(e EdgeID) bool {
	return g.edge(e) != nil
}

// EdgeVertices returns both endpoints of e. Either may be NilVertex after a
// non removing DisconnectVertex.
func (g *Graph) EdgeVertices(e EdgeID) [2]VertexID {
	ed := g.edge(e)
	if ed == nil {
		return [2]VertexID{}
	}
	return ed.v
}

// Opposite returns the endpoint of e that is not v, NilVertex if v is not an
// endpoint of e.
func (g *Graph) Opposite(e EdgeID, v VertexID) VertexID {
	ed := g.edge(e)
	if ed == nil || v == NilVertex {
		return NilVertex
	}
	switch v {
	case ed.v[0]:
		return ed.v[1]
	case ed.v[1]:
		return ed.v[0]
	}
	return NilVertex
}

// EdgeFaces returns a copy of the faces e belongs to.
func (g *Graph) EdgeFaces(e EdgeID) []FaceID {
	ed := g.edge(e)
	if ed == nil {
		return nil
	}
	return append([]FaceID{}, ed.faces...)
}

// EdgeSegment returns e as a 3D segment.
func (g *Graph) EdgeSegment(e EdgeID) geo.Segment3 {
	v := g.EdgeVertices(e)
	return geo.Segment3{Start: g.Position(v[0]), End: g.Position(v[1])}
}

// NeighborEdges returns the distinct edges sharing a vertex with e.
func (g *Graph) NeighborEdges(e EdgeID) []EdgeID {
	out := []EdgeID{}
	seen := map[EdgeID]bool{e: true}
	for _, v := range g.EdgeVertices(e) {
		vt := g.vertex(v)
		if vt == nil {
			continue
		}
		for _, o := range vt.edges {
			if !seen[o] {
				seen[o] = true
				out = append(out, o)
			}
		}
	}
	return out
}

// IsSameVertex returns if a & b join the same pair of vertices.
func (g *Graph) IsSameVertex(a, b EdgeID) bool {
	va, vb := g.EdgeVertices(a), g.EdgeVertices(b)
	return (va[0] == vb[0] && va[1] == vb[1]) || (va[0] == vb[1] && va[1] == vb[0])
}

// IsShareAnyVertex returns if a & b have a live endpoint in common.
func (g *Graph) IsShareAnyVertex(a, b EdgeID) bool {
	va, vb := g.EdgeVertices(a), g.EdgeVertices(b)
	for _, x := range va {
		if x == NilVertex {
			continue
		}
		if x == vb[0] || x == vb[1] {
			return true
		}
	}
	return false
}

// RemoveEdge detaches e from its faces & vertices and frees it.
func (g *Graph) RemoveEdge(e EdgeID) {
	ed := g.edge(e)
	if ed == nil {
		return
	}
	for _, f := range append([]FaceID{}, ed.faces...) {
		g.RemoveFaceEdge(f, e)
	}
	g.DisconnectEdge(e)
	g.freeEdge(e)
}

// DisconnectEdge drops e from the incidence lists of its vertices, leaving
// the edge itself (and its faces) in place with NilVertex endpoints.
func (g *Graph) DisconnectEdge(e EdgeID) {
	ed := g.edge(e)
	if ed == nil {
		return
	}
	for i, v := range ed.v {
		if vt := g.vertex(v); vt != nil {
			removeEdgeID(&vt.edges, e)
		}
		ed.v[i] = NilVertex
	}
}

// MergeEdge moves the faces of src onto dst & removes src.
func (g *Graph) MergeEdge(src, dst EdgeID) {
	if src == dst {
		return
	}
	s, d := g.edge(src), g.edge(dst)
	if s == nil || d == nil {
		return
	}
	for _, f := range append([]FaceID{}, s.faces...) {
		g.AddFaceEdge(f, dst)
	}
	g.RemoveEdge(src)
}

// SplitEdge turns e (v0, v1) into (v0, p) & (p, v1). The new (p, v1) edge
// joins every face of e & is returned. Returns NilEdge when p is an endpoint
// of e or e has lost an endpoint.
func (g *Graph) SplitEdge(e EdgeID, p VertexID) EdgeID {
	ed := g.edge(e)
	if ed == nil || g.vertex(p) == nil || ed.v[0] == p || ed.v[1] == p {
		return NilEdge
	}
	if ed.v[0] == NilVertex || ed.v[1] == NilVertex {
		return NilEdge
	}
	v1 := ed.v[1]
	faces := append([]FaceID{}, ed.faces...)

	if vt := g.vertex(v1); vt != nil {
		removeEdgeID(&vt.edges, e)
	}
	ed.v[1] = p
	pv := g.vertex(p)
	pv.edges = append(pv.edges, e)

	n := g.NewEdge(p, v1)
	for _, f := range faces {
		g.AddFaceEdge(f, n)
	}
	return n
}
