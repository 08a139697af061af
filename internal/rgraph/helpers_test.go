package rgraph

import (
	"testing"

	"github.com/golang/geo/r3"
)

// testBuilder adds polygons to a graph, sharing vertices & edges by
// position.
type testBuilder struct {
	g        *Graph
	vertices map[r3.Vector]VertexID
}

func newTestBuilder() *testBuilder {
	return &testBuilder{g: New(), vertices: map[r3.Vector]VertexID{}}
}

func (b *testBuilder) vertex(x, y, z float64) VertexID {
	p := r3.Vector{X: x, Y: y, Z: z}
	if v, ok := b.vertices[p]; ok {
		return v
	}
	v := b.g.NewVertex(p)
	b.vertices[p] = v
	return v
}

func (b *testBuilder) edge(v0, v1 VertexID) EdgeID {
	if e := b.g.FindEdge(v0, v1); e != NilEdge {
		return e
	}
	return b.g.NewEdge(v0, v1)
}

func (b *testBuilder) polygon(obj string, t RoadType, lod int, pts ...r3.Vector) FaceID {
	f := b.g.NewFace(obj, t, lod)
	for i := range pts {
		j := (i + 1) % len(pts)
		v0 := b.vertex(pts[i].X, pts[i].Y, pts[i].Z)
		v1 := b.vertex(pts[j].X, pts[j].Y, pts[j].Z)
		b.g.AddFaceEdge(f, b.edge(v0, v1))
	}
	return f
}

func square(x, y, size float64) []r3.Vector {
	return []r3.Vector{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	}
}

func mustValidate(t *testing.T, g *Graph) {
	t.Helper()
	if err := g.Validate(); err != nil {
		t.Fatalf("graph invalid: %v", err)
	}
}
