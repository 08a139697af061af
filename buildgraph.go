package roadnet

import (
	"github.com/golang/geo/r3"

	"github.com/voidshard/roadnet/internal/rgraph"
)

// graphBuilder shares vertices by exact position & edges by vertex pair
type graphBuilder struct {
	g        *rgraph.Graph
	vertices map[r3.Vector]rgraph.VertexID
}

func (b *graphBuilder) vertex(p r3.Vector) rgraph.VertexID {
	if v, ok := b.vertices[p]; ok {
		return v
	}
	v := b.g.NewVertex(p)
	b.vertices[p] = v
	return v
}

func (b *graphBuilder) edge(p0, p1 r3.Vector) rgraph.EdgeID {
	v0, v1 := b.vertex(p0), b.vertex(p1)
	if e := b.g.FindEdge(v0, v1); e != rgraph.NilEdge {
		return e
	}
	return b.g.NewEdge(v0, v1)
}

// ringEdges returns the edges of a closed ring, skipping zero length ones
func (b *graphBuilder) ringEdges(ring []r3.Vector) []rgraph.EdgeID {
	out := []rgraph.EdgeID{}
	for i := range ring {
		e := b.edge(ring[i], ring[(i+1)%len(ring)])
		if e != rgraph.NilEdge {
			out = append(out, e)
		}
	}
	return out
}

// buildGraph creates a graph from objects. Each polygon becomes a face, or
// with contour each object becomes one face made of the edges used by
// exactly one of its polygons.
func buildGraph(objects []*SubDividedCityObject, contour bool) *rgraph.Graph {
	b := &graphBuilder{g: rgraph.New(), vertices: map[r3.Vector]rgraph.VertexID{}}
	b.g.Plane = groundPlane

	for _, o := range objects {
		if !contour {
			for _, ring := range o.Polygons {
				f := b.g.NewFace(o.Group, o.RoadTypes, o.Lod)
				for _, e := range b.ringEdges(ring) {
					b.g.AddFaceEdge(f, e)
				}
			}
			continue
		}

		uses := map[rgraph.EdgeID]int{}
		order := []rgraph.EdgeID{}
		for _, ring := range o.Polygons {
			for _, e := range b.ringEdges(ring) {
				if uses[e] == 0 {
					order = append(order, e)
				}
				uses[e]++
			}
		}

		f := b.g.NewFace(o.Group, o.RoadTypes, o.Lod)
		for _, e := range order {
			if uses[e] == 1 {
				b.g.AddFaceEdge(f, e)
			} else if len(b.g.EdgeFaces(e)) == 0 {
				// interior of this object & nothing else
				b.g.RemoveEdge(e)
			}
		}
	}

	// drop vertices left with nothing after interior edges went
	for _, v := range b.g.Vertices() {
		if len(b.g.VertexEdges(v)) == 0 {
			b.g.DisconnectVertex(v, true)
		}
	}

	return b.g
}
