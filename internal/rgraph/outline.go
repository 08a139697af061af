package rgraph

import (
	"github.com/golang/geo/r2"

	"github.com/voidshard/roadnet/internal/geo"
)

// ComputeOutlineVertices walks the edges of f that belong to no other face.
func ComputeOutlineVertices(g *Graph, f FaceID) []VertexID {
	edges := []EdgeID{}
	for _, e := range g.FaceEdges(f) {
		if len(g.EdgeFaces(e)) == 1 {
			edges = append(edges, e)
		}
	}
	return walkOutline(g, edges)
}

// ComputeFaceGroupOutlineVertices walks the outline of the faces of fg that
// satisfy pred (nil accepts all). An edge is on the outline if no other
// accepted face of fg shares it; faces outside fg do not count.
func ComputeFaceGroupOutlineVertices(g *Graph, fg *FaceGroup, pred func(FaceID) bool) []VertexID {
	vs, _ := ComputeFaceGroupOutline(g, fg, pred)
	return vs
}

// ComputeFaceGroupOutline is ComputeFaceGroupOutlineVertices also returning
// the walked edges, where edge i joins vertex i & i+1.
func ComputeFaceGroupOutline(g *Graph, fg *FaceGroup, pred func(FaceID) bool) ([]VertexID, []EdgeID) {
	if fg == nil {
		return nil, nil
	}
	member := make(map[FaceID]bool, len(fg.Faces))
	for _, f := range fg.Faces {
		member[f] = true
	}
	accept := func(f FaceID) bool { return member[f] && (pred == nil || pred(f)) }

	edges := []EdgeID{}
	seen := map[EdgeID]bool{}
	for _, f := range fg.Faces {
		if !accept(f) {
			continue
		}
		for _, e := range g.FaceEdges(f) {
			if seen[e] {
				continue
			}
			outline := true
			for _, o := range g.EdgeFaces(e) {
				if o != f && accept(o) {
					outline = false
					break
				}
			}
			if outline {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return walkOutlineEdges(g, edges)
}

// ComputeOutlineVerticesByCityObject groups g by city object & walks the
// outline of obj's group, limited to faces having one of roadTypes & none of
// removeRoadTypes.
func ComputeOutlineVerticesByCityObject(g *Graph, obj string, roadTypes, removeRoadTypes RoadType) []VertexID {
	for _, fg := range GroupBy(g, SameCityObject(g)) {
		if fg.CityObject != obj {
			continue
		}
		return ComputeFaceGroupOutlineVertices(g, fg, func(f FaceID) bool {
			t := g.FaceRoadTypes(f)
			return t.Has(roadTypes) && !t.Has(removeRoadTypes)
		})
	}
	return nil
}

// ComputeConvexHullVertices returns the vertices of f on its convex hull in
// the given plane, counter clockwise.
func ComputeConvexHullVertices(g *Graph, f FaceID, plane geo.AxisPlane) []VertexID {
	vs := g.CreateVertexSet(f)
	pts := make([]r2.Point, len(vs))
	for i, v := range vs {
		pts[i] = plane.To2D(g.Position(v))
	}
	out := []VertexID{}
	for _, i := range geo.ConvexHull(pts, 1e-3) {
		out = append(out, vs[i])
	}
	return out
}

func walkOutline(g *Graph, edges []EdgeID) []VertexID {
	vs, _ := walkOutlineEdges(g, edges)
	return vs
}

// walkOutlineEdges starts at the first edge (or a dangling end) & repeatedly takes the first
// unused edge touching the current vertex, until it is back at the start or
// stuck. No edge is used twice, so an open boundary yields a partial walk
// rather than bouncing back along itself.
func walkOutlineEdges(g *Graph, edges []EdgeID) ([]VertexID, []EdgeID) {
	usable := edges[:0:0]
	for _, e := range edges {
		v := g.EdgeVertices(e)
		if v[0] != NilVertex && v[1] != NilVertex {
			usable = append(usable, e)
		}
	}
	if len(usable) == 0 {
		return nil, nil
	}

	// open boundaries are walked from a dangling end when there is one
	degree := map[VertexID]int{}
	for _, e := range usable {
		ev := g.EdgeVertices(e)
		degree[ev[0]]++
		degree[ev[1]]++
	}
	first := 0
	start := g.EdgeVertices(usable[0])[0]
	for i, e := range usable {
		ev := g.EdgeVertices(e)
		if degree[ev[0]] == 1 {
			first, start = i, ev[0]
			break
		}
		if degree[ev[1]] == 1 {
			first, start = i, ev[1]
			break
		}
	}

	used := make([]bool, len(usable))
	used[first] = true
	current := usable[first]
	v := start

	vertices := []VertexID{}
	walked := []EdgeID{}
	for {
		vertices = append(vertices, v)
		walked = append(walked, current)
		v = g.Opposite(current, v)
		if v == start {
			break
		}

		next := -1
		for i, e := range usable {
			if used[i] {
				continue
			}
			ev := g.EdgeVertices(e)
			if ev[0] == v || ev[1] == v {
				next = i
				break
			}
		}
		if next < 0 {
			vertices = append(vertices, v)
			break
		}
		used[next] = true
		current = usable[next]
	}
	return vertices, walked
}
