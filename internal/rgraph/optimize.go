package rgraph

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/voidshard/roadnet/internal/geo"
)

// OptimizeOptions are the tolerances of the default cleanup pipeline.
type OptimizeOptions struct {
	// MergeCellSize is the grid cell size used to find vertices to merge
	MergeCellSize float64

	// MergeCellLength is how many cells (Chebyshev distance, exclusive) a
	// merge may reach
	MergeCellLength int

	// MidPointTolerance is the max distance a vertex may be off the line
	// between its two neighbours & still be removed
	MidPointTolerance float64

	// Lod1HeightTolerance is the max height difference snapped to the cell
	// mean by AdjustSmallLodHeight
	Lod1HeightTolerance float64
}

// Optimize runs AdjustSmallLodHeight then VertexReduction.
func Optimize(g *Graph, opt OptimizeOptions) {
	AdjustSmallLodHeight(g, opt.MergeCellSize, opt.Lod1HeightTolerance)
	VertexReduction(g, opt.MergeCellSize, opt.MergeCellLength, opt.MidPointTolerance)
}

type cell2 struct {
	X, Y int
}

// AdjustSmallLodHeight buckets vertices into a 2D grid of cellSize, then
// within a cell groups them by max LOD. Every vertex of a group within
// heightTolerance of the group's mean height is snapped to it. Returns the
// snapped vertices.
func AdjustSmallLodHeight(g *Graph, cellSize, heightTolerance float64) []VertexID {
	result := []VertexID{}
	if cellSize <= 0 {
		return result
	}

	grid := map[cell2][]VertexID{}
	keys := []cell2{}
	for _, v := range g.Vertices() {
		p := g.Plane.To2D(g.Position(v))
		k := cell2{int(math.Floor(p.X / cellSize)), int(math.Floor(p.Y / cellSize))}
		if _, ok := grid[k]; !ok {
			keys = append(keys, k)
		}
		grid[k] = append(grid[k], v)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Y < keys[j].Y
	})

	for _, k := range keys {
		vs := grid[k]
		if len(vs) <= 1 {
			continue
		}

		lods := map[int][]VertexID{}
		levels := []int{}
		for _, v := range vs {
			l := g.MaxLodLevel(v)
			if _, ok := lods[l]; !ok {
				levels = append(levels, l)
			}
			lods[l] = append(lods[l], v)
		}
		sort.Ints(levels)

		for _, l := range levels {
			group := lods[l]
			if len(group) <= 1 {
				continue
			}
			mean := 0.0
			for _, v := range group {
				mean += g.Plane.Height(g.Position(v))
			}
			mean /= float64(len(group))

			for _, v := range group {
				pos := g.Position(v)
				if math.Abs(g.Plane.Height(pos)-mean) <= heightTolerance {
					g.SetPosition(v, g.Plane.WithHeight(pos, mean))
					result = append(result, v)
				}
			}
		}
	}

	return result
}

// VertexReduction merges nearby vertices (geo.MergeVertices) until nothing
// more merges, then repeatedly removes degree 2 vertices lying within
// midPointTolerance of the segment between their two neighbours.
func VertexReduction(g *Graph, cellSize float64, cellLength int, midPointTolerance float64) {
	for mergeNearVertices(g, cellSize, cellLength) {
	}

	sqrTolerance := midPointTolerance * midPointTolerance
	for {
		count := 0
		for _, v := range g.Vertices() {
			if !g.IsVertex(v) || len(g.VertexEdges(v)) != 2 {
				continue
			}
			n := g.NeighborVertices(v)
			if len(n) != 2 {
				continue
			}
			seg := geo.Segment3{Start: g.Position(n[0]), End: g.Position(n[1])}
			pos := g.Position(v)
			if seg.NearestPoint(pos).Sub(pos).Norm2() < sqrTolerance {
				g.MergeVertex(v, n[0])
				count++
			}
		}
		if count == 0 {
			break
		}
	}
}

// mergeNearVertices runs one round of grid merging, including vertices at
// identical positions. Returns if anything merged.
func mergeNearVertices(g *Graph, cellSize float64, cellLength int) bool {
	vs := g.Vertices()
	positions := make([]r3.Vector, len(vs))
	for i, v := range vs {
		positions[i] = g.Position(v)
	}
	merge := geo.MergeVertices(positions, cellSize, cellLength)

	targets := map[r3.Vector][]VertexID{}
	order := []r3.Vector{}
	for i, v := range vs {
		t, ok := merge[positions[i]]
		if !ok {
			t = positions[i]
		}
		if _, ok := targets[t]; !ok {
			order = append(order, t)
		}
		targets[t] = append(targets[t], v)
	}

	merged := false
	for _, t := range order {
		members := targets[t]
		dst := members[0]
		g.SetPosition(dst, t)
		for _, v := range members[1:] {
			g.MergeVertex(v, dst)
			merged = true
		}
	}
	return merged
}
