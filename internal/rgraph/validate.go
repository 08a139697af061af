package rgraph

import (
	"github.com/pkg/errors"
)

// Validate checks the incidence invariants of g: every edge is listed by its
// endpoints & every face membership is recorded on both sides. Returns the
// first violation found.
func (g *Graph) Validate() error {
	for _, e := range g.Edges() {
		for _, v := range g.EdgeVertices(e) {
			if v == NilVertex {
				continue
			}
			if !g.IsVertex(v) {
				return errors.Errorf("edge %d references dead vertex %d", e, v)
			}
			if !containsEdge(g.vertex(v).edges, e) {
				return errors.Errorf("vertex %d does not list edge %d", v, e)
			}
		}
		for _, f := range g.EdgeFaces(e) {
			if !g.IsFace(f) {
				return errors.Errorf("edge %d references dead face %d", e, f)
			}
			if !containsEdge(g.face(f).edges, e) {
				return errors.Errorf("face %d does not list edge %d", f, e)
			}
		}
	}

	for _, v := range g.Vertices() {
		for _, e := range g.VertexEdges(v) {
			ev := g.EdgeVertices(e)
			if !g.IsEdge(e) || (ev[0] != v && ev[1] != v) {
				return errors.Errorf("vertex %d lists foreign edge %d", v, e)
			}
		}
	}

	for _, f := range g.Faces() {
		for _, e := range g.FaceEdges(f) {
			if !g.IsEdge(e) {
				return errors.Errorf("face %d references dead edge %d", f, e)
			}
			if !containsFace(g.edge(e).faces, f) {
				return errors.Errorf("edge %d does not list face %d", e, f)
			}
		}
	}
	return nil
}
