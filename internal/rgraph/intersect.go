package rgraph

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/peterstace/simplefeatures/rtree"

	"github.com/voidshard/roadnet/internal/geo"
)

// endpointEpsilon is how close (in segment parameter) an intersection must
// be to an end of an edge to reuse that end rather than add a vertex.
const endpointEpsilon = 1e-6

type split struct {
	t float64
	v VertexID
}

// edgeIndex builds an rtree over the 2D bounds of edges, expanded by pad.
func edgeIndex(g *Graph, edges []EdgeID, pad float64) *rtree.RTree {
	items := make([]rtree.BulkItem, 0, len(edges))
	for i, e := range edges {
		items = append(items, rtree.BulkItem{Box: edgeBox(g, e, pad), RecordID: i})
	}
	return rtree.BulkLoad(items)
}

func edgeBox(g *Graph, e EdgeID, pad float64) rtree.Box {
	v := g.EdgeVertices(e)
	a, b := g.Plane.To2D(g.Position(v[0])), g.Plane.To2D(g.Position(v[1]))
	return rtree.Box{
		MinX: math.Min(a.X, b.X) - pad,
		MinY: math.Min(a.Y, b.Y) - pad,
		MaxX: math.Max(a.X, b.X) + pad,
		MaxY: math.Max(a.Y, b.Y) + pad,
	}
}

func pointBox(p r2.Point, pad float64) rtree.Box {
	return rtree.Box{MinX: p.X - pad, MinY: p.Y - pad, MaxX: p.X + pad, MaxY: p.Y + pad}
}

// applySplits inserts the collected vertices into their edges, nearest to the
// edge's first vertex first.
func applySplits(g *Graph, edges []EdgeID, splits map[int][]split) {
	keys := make([]int, 0, len(splits))
	for k := range splits {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		s := splits[k]
		sort.SliceStable(s, func(i, j int) bool { return s[i].t < s[j].t })
		vs := make([]VertexID, 0, len(s))
		for i, sp := range s {
			if i > 0 && s[i-1].v == sp.v {
				continue
			}
			vs = append(vs, sp.v)
		}
		InsertVertices(g, edges[k], vs)
	}
}

// InsertVerticesInEdgeIntersection finds edges crossing on the ground plane
// that share no vertex. Where the heights of both edges at the crossing are
// within heightTolerance, both edges are split at a shared vertex placed at
// the mean height. An existing end vertex is reused when the crossing is on
// it.
func InsertVerticesInEdgeIntersection(g *Graph, heightTolerance float64) {
	edges := g.Edges()
	index := edgeIndex(g, edges, 0)
	splits := map[int][]split{}

	for i, e1 := range edges {
		v1 := g.EdgeVertices(e1)
		if v1[0] == NilVertex || v1[1] == NilVertex {
			continue
		}
		index.RangeSearch(edgeBox(g, e1, 0), func(j int) error {
			if j <= i {
				return nil
			}
			e2 := edges[j]
			v2 := g.EdgeVertices(e2)
			if v2[0] == NilVertex || v2[1] == NilVertex || g.IsShareAnyVertex(e1, e2) {
				return nil
			}

			a0, a1 := g.Position(v1[0]), g.Position(v1[1])
			b0, b1 := g.Position(v2[0]), g.Position(v2[1])
			p, t1, t2, ok := geo.SegmentIntersection(
				g.Plane.To2D(a0), g.Plane.To2D(a1), g.Plane.To2D(b0), g.Plane.To2D(b1),
			)
			if !ok {
				return nil
			}

			h1 := geo.Lerp(g.Plane.Height(a0), g.Plane.Height(a1), t1)
			h2 := geo.Lerp(g.Plane.Height(b0), g.Plane.Height(b1), t2)
			if math.Abs(h1-h2) > heightTolerance {
				return nil
			}

			end1, end2 := endAt(v1, t1), endAt(v2, t2)
			var v VertexID
			switch {
			case end1 != NilVertex && end2 != NilVertex:
				return nil
			case end1 != NilVertex:
				v = end1
			case end2 != NilVertex:
				v = end2
			default:
				v = g.NewVertex(g.Plane.To3D(p, (h1+h2)/2))
			}
			if end1 == NilVertex {
				splits[i] = append(splits[i], split{t1, v})
			}
			if end2 == NilVertex {
				splits[j] = append(splits[j], split{t2, v})
			}
			return nil
		})
	}

	applySplits(g, edges, splits)
}

// endAt returns the end of an edge at parameter t, if t is at an end.
func endAt(v [2]VertexID, t float64) VertexID {
	if t < endpointEpsilon {
		return v[0]
	}
	if t > 1-endpointEpsilon {
		return v[1]
	}
	return NilVertex
}

// InsertVertexInNearEdge splits edges at every foreign vertex lying within
// tolerance of them on the ground plane. The vertices are not moved.
func InsertVertexInNearEdge(g *Graph, tolerance float64) {
	edges := g.Edges()
	index := edgeIndex(g, edges, tolerance)
	splits := map[int][]split{}

	for _, v := range g.Vertices() {
		p := g.Plane.To2D(g.Position(v))
		index.RangeSearch(pointBox(p, 0), func(i int) error {
			ev := g.EdgeVertices(edges[i])
			if ev[0] == NilVertex || ev[1] == NilVertex || ev[0] == v || ev[1] == v {
				return nil
			}
			seg := geo.Segment2{Start: g.Plane.To2D(g.Position(ev[0])), End: g.Plane.To2D(g.Position(ev[1]))}
			near, t := seg.NearestPoint(p)
			if t <= endpointEpsilon || t >= 1-endpointEpsilon || near.Sub(p).Norm() > tolerance {
				return nil
			}
			splits[i] = append(splits[i], split{t, v})
			return nil
		})
	}

	applySplits(g, edges, splits)
}
