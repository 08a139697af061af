package rgraph

// RemoveInnerVertex disconnects (removing their edges) vertices of f that
// touch no other face & are not on the outline of f.
func RemoveInnerVertex(g *Graph, f FaceID) {
	if !g.IsFace(f) {
		return
	}
	outline := map[VertexID]bool{}
	for _, v := range ComputeOutlineVertices(g, f) {
		outline[v] = true
	}
	for _, v := range g.CreateVertexSet(f) {
		if outline[v] {
			continue
		}
		// no faces left means earlier removals here stranded it
		if fs := g.VertexFaces(v); len(fs) == 0 || (len(fs) == 1 && fs[0] == f) {
			g.DisconnectVertex(v, true)
		}
	}
}

// RemoveInnerVertices runs RemoveInnerVertex on every face.
func RemoveInnerVertices(g *Graph) {
	for _, f := range g.Faces() {
		RemoveInnerVertex(g, f)
	}
}

// EdgeReduction merges edges joining the same pair of vertices.
func EdgeReduction(g *Graph) {
	for _, e := range g.Edges() {
		if !g.IsEdge(e) {
			continue
		}
		for _, o := range g.NeighborEdges(e) {
			if g.IsSameVertex(e, o) {
				g.MergeEdge(e, o)
				break
			}
		}
	}
}

// MergeIsolatedVertices runs MergeIsolatedVertex on every face.
func MergeIsolatedVertices(g *Graph) {
	for _, f := range g.Faces() {
		MergeIsolatedVertex(g, f)
	}
}

// MergeIsolatedVertex replaces every degree 2 vertex of f, whose neighbours
// are not already joined, with a direct edge between the neighbours. The new
// edge joins every face of the two old edges.
func MergeIsolatedVertex(g *Graph, f FaceID) {
	for _, v := range g.CreateVertexSet(f) {
		edges := g.VertexEdges(v)
		if len(edges) != 2 {
			continue
		}
		v0, v1 := g.Opposite(edges[0], v), g.Opposite(edges[1], v)
		if v0 == NilVertex || v1 == NilVertex || v0 == v1 || g.IsNeighbor(v0, v1) {
			continue
		}
		n := g.NewEdge(v0, v1)
		for _, e := range edges {
			for _, ef := range g.EdgeFaces(e) {
				g.AddFaceEdge(ef, n)
			}
		}
		g.DisconnectVertex(v, true)
	}
}

// SeparateFaces gives every face its own copy of edges shared with other
// faces, so no edge belongs to more than one face.
func SeparateFaces(g *Graph) {
	for _, e := range g.Edges() {
		faces := g.EdgeFaces(e)
		if len(faces) <= 1 {
			continue
		}
		v := g.EdgeVertices(e)
		if v[0] == NilVertex || v[1] == NilVertex {
			continue
		}
		for _, f := range faces[1:] {
			g.ChangeFaceEdge(f, e, g.NewEdge(v[0], v[1]))
		}
	}
}

// InsertVertices splits e at each of vs in turn, each split applied to the
// tail left by the previous one. vs should be ordered from e's first vertex.
// Returns the resulting chain of edges, starting with e.
func InsertVertices(g *Graph, e EdgeID, vs []VertexID) []EdgeID {
	if !g.IsEdge(e) || len(vs) == 0 {
		return nil
	}
	out := []EdgeID{e}
	for _, v := range vs {
		if n := g.SplitEdge(out[len(out)-1], v); n != NilEdge {
			out = append(out, n)
		}
	}
	return out
}
