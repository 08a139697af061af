// Package rgraph is the planar road graph: vertices, edges & faces built from
// city object polygons, plus the cleanup passes run over it before the graph
// is turned into a road network.
package rgraph

import (
	"strings"

	"github.com/voidshard/roadnet/internal/encoding"
)

// RoadType is a bit mask of what a face represents.
type RoadType uint8

const (
	RoadTypeRoad RoadType = 1 << iota
	RoadTypeSideWalk
	RoadTypeMedian
	RoadTypeHighway
	RoadTypeUndefined

	RoadTypeNone RoadType = 0
	RoadTypeAll  RoadType = RoadTypeRoad | RoadTypeSideWalk | RoadTypeMedian | RoadTypeHighway | RoadTypeUndefined
)

var roadTypeNames = []struct {
	t    RoadType
	name string
}{
	{RoadTypeRoad, "road"},
	{RoadTypeSideWalk, "sidewalk"},
	{RoadTypeMedian, "median"},
	{RoadTypeHighway, "highway"},
	{RoadTypeUndefined, "undefined"},
}

// Has returns if any of the bits of o are set.
func (r RoadType) Has(o RoadType) bool {
	return r&o != 0
}

// IsRoad returns if the mask marks a drivable surface.
func (r RoadType) IsRoad() bool {
	return r.Has(RoadTypeRoad | RoadTypeHighway)
}

// String returns names of set bits joined by "|".
func (r RoadType) String() string {
	if r == RoadTypeNone {
		return "none"
	}
	names := []string{}
	for _, n := range roadTypeNames {
		if r.Has(n.t) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// VertexID is a handle to a vertex in a Graph.
type VertexID uint64

// EdgeID is a handle to an edge in a Graph.
type EdgeID uint64

// FaceID is a handle to a face in a Graph.
type FaceID uint64

const (
	NilVertex VertexID = 0
	NilEdge   EdgeID   = 0
	NilFace   FaceID   = 0
)

func (v VertexID) slot() (int, uint32, bool) { return encoding.Unhandle(uint64(v)) }
func (e EdgeID) slot() (int, uint32, bool)   { return encoding.Unhandle(uint64(e)) }
func (f FaceID) slot() (int, uint32, bool)   { return encoding.Unhandle(uint64(f)) }
