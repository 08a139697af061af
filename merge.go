package roadnet

import (
	"github.com/voidshard/roadnet/internal/geo"
)

// compatibleRoads returns if a & b could be one road
func compatibleRoads(a, b *Road) bool {
	return len(a.Lanes) == len(b.Lanes) && a.HasMedian == b.HasMedian
}

// MergeRoadGroup replaces each chain of roads joined end to end (with the
// same lane count & median) with a single road. Links to the ends of a
// chain (& sidewalks of any road in it) move to the merged road. Chains
// that loop back on themselves are left alone.
//
// Returns the number of roads merged away.
func (m *Model) MergeRoadGroup() int {
	done := map[*Road]bool{}
	merged := 0

	for _, r := range m.Roads() {
		if done[r] {
			continue
		}
		chain, ok := m.roadChain(r)
		for _, c := range chain {
			done[c] = true
		}
		if !ok || len(chain) < 2 {
			continue
		}
		merged += m.mergeChain(chain)
	}

	return merged
}

// roadChain returns the chain through r ordered from one end to the other,
// false if it is a loop
func (m *Model) roadChain(r *Road) ([]*Road, bool) {
	in := map[*Road]bool{r: true}

	// extend walks away from `from` through the side `via`
	extend := func(from *Road, via RoadBase) ([]*Road, bool) {
		out := []*Road{}
		for {
			next, ok := via.(*Road)
			if !ok || next == nil || !compatibleRoads(r, next) {
				return out, true
			}
			if in[next] {
				return out, false
			}
			switch from {
			case next.Prev:
				via = next.Next
			case next.Next:
				via = next.Prev
			default:
				return out, true
			}
			in[next] = true
			out = append(out, next)
			from = next
		}
	}

	before, ok1 := extend(r, r.Prev)
	after, ok2 := extend(r, r.Next)

	chain := make([]*Road, 0, len(before)+len(after)+1)
	for i := len(before) - 1; i >= 0; i-- {
		chain = append(chain, before[i])
	}
	chain = append(chain, r)
	chain = append(chain, after...)

	return chain, ok1 && ok2
}

// mergeChain folds chain into its first road
func (m *Model) mergeChain(chain []*Road) int {
	// orient every road to run from chain[0] to the last road
	if chain[0].Next != RoadBase(chain[1]) {
		chain[0].reverse()
	}
	for i := 1; i < len(chain); i++ {
		if chain[i].Prev != RoadBase(chain[i-1]) {
			chain[i].reverse()
		}
	}

	first, last := chain[0], chain[len(chain)-1]
	outerNext := last.Next

	right, left := first.RightWay, first.LeftWay
	for _, r := range chain[1:] {
		right = geo.JoinPolylines(right, r.RightWay)
		left = geo.JoinPolylines(left, r.LeftWay)
		for _, o := range r.origins {
			if !containsString(first.origins, o) {
				first.origins = append(first.origins, o)
			}
		}
		if r.Lod > first.Lod {
			first.Lod = r.Lod
		}
	}
	first.RightWay, first.LeftWay = right, left
	first.NextBorder = last.NextBorder

	for _, r := range chain[1:] {
		m.replaceNeighbor(r, first)
		m.dropRoad(r)
	}
	first.Next = outerNext

	return len(chain) - 1
}

func containsString(list []string, s string) bool {
	for _, o := range list {
		if o == s {
			return true
		}
	}
	return false
}
