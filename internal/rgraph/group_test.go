package rgraph

import (
	"testing"
)

func TestGroupByPartitions(t *testing.T) {
	b := newTestBuilder()
	// a 3x3 grid of squares, column decides the city object
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			obj := []string{"a", "b", "a"}[x]
			b.polygon(obj, RoadTypeRoad, 1, square(float64(x), float64(y), 1)...)
		}
	}
	g := b.g

	groups := GroupBy(g, SameCityObject(g))

	// column 0 & 2 are both "a" but not adjacent
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}

	seen := map[FaceID]int{}
	for _, fg := range groups {
		if len(fg.Faces) != 3 {
			t.Errorf("group %s has %d faces, want 3", fg.CityObject, len(fg.Faces))
		}
		for _, f := range fg.Faces {
			seen[f]++
			if g.FaceCityObject(f) != fg.CityObject {
				t.Errorf("face of %s in group %s", g.FaceCityObject(f), fg.CityObject)
			}
		}
	}
	for _, f := range g.Faces() {
		if seen[f] != 1 {
			t.Errorf("face %d appears in %d groups, want 1", f, seen[f])
		}
	}
	if len(seen) != g.FaceCount() {
		t.Errorf("got %d grouped faces, want %d", len(seen), g.FaceCount())
	}
}

func TestGroupByIsolatedFaces(t *testing.T) {
	b := newTestBuilder()
	b.polygon("a", RoadTypeRoad, 1, square(0, 0, 1)...)
	b.polygon("a", RoadTypeRoad, 1, square(5, 5, 1)...)

	groups := GroupBy(b.g, func(FaceID, FaceID) bool { return true })
	if len(groups) != 2 {
		t.Errorf("got %d groups, want 2", len(groups))
	}
}

func TestFaceGroupRoadTypes(t *testing.T) {
	b := newTestBuilder()
	b.polygon("a", RoadTypeRoad, 1, square(0, 0, 1)...)
	b.polygon("a", RoadTypeMedian, 2, square(1, 0, 1)...)
	g := b.g

	groups := GroupBy(g, SameCityObject(g))
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if got, want := groups[0].RoadTypes(g), RoadTypeRoad|RoadTypeMedian; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got := groups[0].MaxLod(g); got != 2 {
		t.Errorf("got lod %d, want 2", got)
	}
}

func TestRoadTypeString(t *testing.T) {
	cases := map[RoadType]string{
		RoadTypeNone:                     "none",
		RoadTypeRoad:                     "road",
		RoadTypeRoad | RoadTypeSideWalk:  "road|sidewalk",
		RoadTypeHighway | RoadTypeMedian: "median|highway",
	}
	for in, want := range cases {
		if got := in.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
