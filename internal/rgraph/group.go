package rgraph

import (
	"github.com/boljen/go-bitmap"
)

// FaceGroup is a connected set of faces that matched a grouping predicate.
type FaceGroup struct {
	// CityObject of the first face of the group
	CityObject string
	Faces      []FaceID
}

// RoadTypes returns the union of the road type masks of the group's faces.
func (fg *FaceGroup) RoadTypes(g *Graph) RoadType {
	t := RoadTypeNone
	for _, f := range fg.Faces {
		t |= g.FaceRoadTypes(f)
	}
	return t
}

// MaxLod returns the highest LOD of the group's faces.
func (fg *FaceGroup) MaxLod(g *Graph) int {
	lod := 0
	for _, f := range fg.Faces {
		if l := g.FaceLod(f); l > lod {
			lod = l
		}
	}
	return lod
}

// SameCityObject is the usual GroupBy predicate.
func SameCityObject(g *Graph) func(a, b FaceID) bool {
	return func(a, b FaceID) bool {
		return g.FaceCityObject(a) == g.FaceCityObject(b)
	}
}

// GroupBy partitions every face of g into connected groups, where faces are
// connected if they share an edge & match(a, b) holds. Every face ends up in
// exactly one group.
func GroupBy(g *Graph, match func(a, b FaceID) bool) []*FaceGroup {
	result := []*FaceGroup{}
	visited := bitmap.New(g.faceSlots())

	for _, first := range g.Faces() {
		i, _, _ := first.slot()
		if visited.Get(i) {
			continue
		}
		visited.Set(i, true)

		faces := []FaceID{first}
		for k := 0; k < len(faces); k++ {
			f := faces[k]
			for _, e := range g.FaceEdges(f) {
				for _, n := range g.EdgeFaces(e) {
					j, _, _ := n.slot()
					if visited.Get(j) || !match(f, n) {
						continue
					}
					visited.Set(j, true)
					faces = append(faces, n)
				}
			}
		}

		result = append(result, &FaceGroup{CityObject: g.FaceCityObject(first), Faces: faces})
	}

	return result
}
