package roadnet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRoadType(t *testing.T) {
	cases := map[string]RoadType{
		"車道部":      RoadTypeRoad,
		" Road ":   RoadTypeRoad,
		"歩道部":      RoadTypeSideWalk,
		"島":        RoadTypeMedian,
		"MOTORWAY": RoadTypeHighway,
		"自動車専用道路":  RoadTypeHighway,
		"bicycle":  RoadTypeUndefined,
		"":         RoadTypeUndefined,
	}
	for in, want := range cases {
		if got := ParseRoadType(in); got != want {
			t.Errorf("%q: got %v, want %v", in, got, want)
		}
	}
}

func TestValuesByKey(t *testing.T) {
	attrs := Attributes{
		"tran:function": {Type: "string", Value: "車道部"},
		"tran:usage":    {Type: "string", Value: "国道"},
		"uro:extra": {Type: "set", Set: Attributes{
			"tran:function": {Type: "string", Value: "歩道部"},
			"nested": {Type: "set", Set: Attributes{
				"tran:function": {Type: "string", Value: "島"},
			}},
		}},
	}

	got := attrs.ValuesByKey("tran:function")
	want := []string{"車道部", "島", "歩道部"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}

	if got := attrs.ValuesByKey("missing"); len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}
