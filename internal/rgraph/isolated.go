package rgraph

// isIsolatedEdge returns if either end of e reaches f only through e.
func isIsolatedEdge(g *Graph, f FaceID, e EdgeID) bool {
	for _, v := range g.EdgeVertices(e) {
		if v == NilVertex {
			return true
		}
		connected := false
		for _, o := range g.VertexEdges(v) {
			if o != e && containsFace(g.EdgeFaces(o), f) {
				connected = true
				break
			}
		}
		if !connected {
			return true
		}
	}
	return false
}

// RemoveIsolatedEdge strips f of edges that stick out of it: edges with an
// end not joined to any other edge of f. Removing one may expose the next,
//
//	o-o
//	| |
//	o-o-a-b-c
//
// so removal continues until no such edge is left. Edges left without any
// face are removed from the graph & returned.
func RemoveIsolatedEdge(g *Graph, f FaceID) []EdgeID {
	if !g.IsFace(f) {
		return nil
	}

	queue := []EdgeID{}
	for _, e := range g.FaceEdges(f) {
		if isIsolatedEdge(g, f, e) {
			queue = append(queue, e)
		}
	}

	done := map[EdgeID]bool{}
	removed := []EdgeID{}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if done[e] {
			continue
		}
		done[e] = true

		g.RemoveFaceEdge(f, e)

		for _, n := range g.NeighborEdges(e) {
			if done[n] || !containsFace(g.EdgeFaces(n), f) {
				continue
			}
			if isIsolatedEdge(g, f, n) {
				queue = append(queue, n)
			}
		}

		if len(g.EdgeFaces(e)) == 0 {
			g.RemoveEdge(e)
			removed = append(removed, e)
		}
	}
	return removed
}

// RemoveIsolatedEdgeFromFace runs RemoveIsolatedEdge on every face, then
// removes faces left without edges.
func RemoveIsolatedEdgeFromFace(g *Graph) {
	for _, f := range g.Faces() {
		RemoveIsolatedEdge(g, f)
	}
	for _, f := range g.Faces() {
		if len(g.FaceEdges(f)) == 0 {
			g.RemoveFace(f)
		}
	}
}
