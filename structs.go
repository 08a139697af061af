package roadnet

import (
	"sort"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/voidshard/roadnet/internal/rgraph"
)

// RoadType is a bitmask classifying a piece of road geometry
type RoadType = rgraph.RoadType

const (
	RoadTypeNone      = rgraph.RoadTypeNone
	RoadTypeRoad      = rgraph.RoadTypeRoad
	RoadTypeSideWalk  = rgraph.RoadTypeSideWalk
	RoadTypeMedian    = rgraph.RoadTypeMedian
	RoadTypeHighway   = rgraph.RoadTypeHighway
	RoadTypeUndefined = rgraph.RoadTypeUndefined
)

// Feature is one mesh piece of a city object.
type Feature struct {
	// ID of the feature, unique over the whole dataset
	ID string

	// Group is the city object this feature belongs to
	Group string

	// Lod level of this geometry
	Lod int

	// Polygons are closed rings of 3D positions (the last point need not
	// repeat the first)
	Polygons [][]r3.Vector

	// Children are IDs of features nested under this one. Classification
	// passes its result down to them.
	Children []string `json:",omitempty"`
}

// AttributeValue is one attribute of a feature. Set is filled for nested
// attribute sets, Value otherwise.
type AttributeValue struct {
	Type  string
	Value string
	Set   Attributes `json:",omitempty"`
}

// Attributes of a feature by key
type Attributes map[string]AttributeValue

// ValuesByKey returns every (non set) value stored under key, searching
// nested sets too. Keys are visited in sorted order.
func (a Attributes) ValuesByKey(key string) []string {
	found := []string{}

	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := a[k]
		if k == key && v.Set == nil {
			found = append(found, v.Value)
		}
		if v.Set != nil {
			found = append(found, v.Set.ValuesByKey(key)...)
		}
	}

	return found
}

// SubDividedCityObject is the smallest unit of geometry the factory works
// with; one feature of one group at one LOD, classified.
type SubDividedCityObject struct {
	ID        string
	Group     string
	Lod       int
	Polygons  [][]r3.Vector
	RoadTypes RoadType
}

// roadTypeNames maps attribute values to road types. Values are compared
// lower case.
var roadTypeNames = map[string]RoadType{
	"road":      RoadTypeRoad,
	"roadway":   RoadTypeRoad,
	"車道部":       RoadTypeRoad,
	"車道交差部":     RoadTypeRoad,
	"sidewalk":  RoadTypeSideWalk,
	"footway":   RoadTypeSideWalk,
	"歩道部":       RoadTypeSideWalk,
	"歩道":        RoadTypeSideWalk,
	"median":    RoadTypeMedian,
	"island":    RoadTypeMedian,
	"島":         RoadTypeMedian,
	"中央帯":       RoadTypeMedian,
	"highway":   RoadTypeHighway,
	"motorway":  RoadTypeHighway,
	"自動車専用道路":   RoadTypeHighway,
	"高速道路":      RoadTypeHighway,
	"undefined": RoadTypeUndefined,
	"不明":        RoadTypeUndefined,
}

// ParseRoadType classifies an attribute value. Unknown values are
// RoadTypeUndefined.
func ParseRoadType(value string) RoadType {
	t, ok := roadTypeNames[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return RoadTypeUndefined
	}
	return t
}

// ModelStats holds counts describing a Model
type ModelStats struct {
	Roads         int
	Intersections int
	SideWalks     int
	Lanes         int

	// TotalRoadLength is the sum of Road.Length()
	TotalRoadLength float64
}
