package geo

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// cellKey identifies a cell in a uniform 3D grid.
type cellKey struct {
	X, Y, Z int
}

// less orders cell keys so that cell iteration is deterministic.
func (c cellKey) less(o cellKey) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.Z < o.Z
}

// cellDistance is the Chebyshev distance in cells.
func (c cellKey) cellDistance(o cellKey) int {
	d := absInt(c.X - o.X)
	if dy := absInt(c.Y - o.Y); dy > d {
		d = dy
	}
	if dz := absInt(c.Z - o.Z); dz > d {
		d = dz
	}
	return d
}

// MergeVertices buckets positions into a grid of cellSize & merges nearby
// cells. Each unclaimed cell (in sorted order) claims every unclaimed cell
// less than cellLength cells away; claims do not chain. Every position of a
// claim holding two or more distinct positions maps to the claim mean.
// Positions absent from the result are left as they are.
func MergeVertices(positions []r3.Vector, cellSize float64, cellLength int) map[r3.Vector]r3.Vector {
	result := map[r3.Vector]r3.Vector{}
	if cellSize <= 0 || len(positions) == 0 {
		return result
	}
	if cellLength < 1 {
		cellLength = 1
	}

	cells := map[cellKey][]r3.Vector{}
	seen := map[r3.Vector]bool{}
	for _, p := range positions {
		if seen[p] {
			continue
		}
		seen[p] = true
		k := cellKey{
			X: int(math.Floor(p.X / cellSize)),
			Y: int(math.Floor(p.Y / cellSize)),
			Z: int(math.Floor(p.Z / cellSize)),
		}
		cells[k] = append(cells[k], p)
	}

	keys := make([]cellKey, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].less(keys[b]) })

	claimed := map[cellKey]bool{}
	reach := cellLength - 1
	for _, root := range keys {
		if claimed[root] {
			continue
		}
		claimed[root] = true
		members := append([]r3.Vector{}, cells[root]...)

		for dx := -reach; dx <= reach; dx++ {
			for dy := -reach; dy <= reach; dy++ {
				for dz := -reach; dz <= reach; dz++ {
					k := cellKey{root.X + dx, root.Y + dy, root.Z + dz}
					if claimed[k] || root.cellDistance(k) > reach {
						continue
					}
					pts, ok := cells[k]
					if !ok {
						continue
					}
					claimed[k] = true
					members = append(members, pts...)
				}
			}
		}

		if len(members) < 2 {
			continue
		}
		mean := r3.Vector{}
		for _, p := range members {
			mean = mean.Add(p)
		}
		mean = mean.Mul(1 / float64(len(members)))
		for _, p := range members {
			result[p] = mean
		}
	}

	return result
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
