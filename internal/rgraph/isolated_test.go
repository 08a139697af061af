package rgraph

import (
	"testing"

	"github.com/golang/geo/r3"
)

// squareWithTail builds
//
//	o-o
//	| |
//	o-o-a-b-c
//
// as a single face.
func squareWithTail() (*testBuilder, FaceID) {
	b := newTestBuilder()
	f := b.polygon("obj", RoadTypeRoad, 1, square(0, 0, 1)...)
	prev := b.vertex(1, 0, 0)
	for x := 2; x <= 4; x++ {
		v := b.vertex(float64(x), 0, 0)
		b.g.AddFaceEdge(f, b.edge(prev, v))
		prev = v
	}
	return b, f
}

func TestRemoveIsolatedEdgePropagates(t *testing.T) {
	b, f := squareWithTail()
	g := b.g

	removed := RemoveIsolatedEdge(g, f)
	mustValidate(t, g)

	if len(removed) != 3 {
		t.Errorf("got %d removed edges, want 3", len(removed))
	}
	if got := len(g.FaceEdges(f)); got != 4 {
		t.Errorf("got %d face edges, want 4", got)
	}
	for _, e := range g.FaceEdges(f) {
		if isIsolatedEdge(g, f, e) {
			t.Errorf("isolated edge %d left in face", e)
		}
	}
}

func TestRemoveIsolatedEdgeIdempotent(t *testing.T) {
	b, f := squareWithTail()
	g := b.g

	RemoveIsolatedEdge(g, f)
	edges := len(g.FaceEdges(f))
	total := g.EdgeCount()

	if removed := RemoveIsolatedEdge(g, f); len(removed) != 0 {
		t.Errorf("second run removed %d edges", len(removed))
	}
	if len(g.FaceEdges(f)) != edges || g.EdgeCount() != total {
		t.Errorf("second run changed the graph")
	}
}

func TestRemoveIsolatedEdgeKeepsSharedEdges(t *testing.T) {
	b, f := squareWithTail()
	g := b.g
	// another face owns the last tail edge, it leaves f but stays in g
	other := g.NewFace("other", RoadTypeRoad, 1)
	tail := g.FindEdge(b.vertex(3, 0, 0), b.vertex(4, 0, 0))
	g.AddFaceEdge(other, tail)

	removed := RemoveIsolatedEdge(g, f)
	mustValidate(t, g)

	if len(removed) != 2 {
		t.Errorf("got %d removed edges, want 2", len(removed))
	}
	if !g.IsEdge(tail) || containsFace(g.EdgeFaces(tail), f) {
		t.Errorf("shared tail edge should leave f but stay in the graph")
	}
}

func TestRemoveIsolatedEdgeFromFace(t *testing.T) {
	b, _ := squareWithTail()
	g := b.g
	line := g.NewFace("line", RoadTypeRoad, 1)
	v0 := g.NewVertex(r3.Vector{X: 10})
	v1 := g.NewVertex(r3.Vector{X: 11})
	g.AddFaceEdge(line, g.NewEdge(v0, v1))

	RemoveIsolatedEdgeFromFace(g)
	mustValidate(t, g)

	if g.IsFace(line) {
		t.Errorf("face without edges kept")
	}
	if got := g.FaceCount(); got != 1 {
		t.Errorf("got %d faces, want 1", got)
	}
}
