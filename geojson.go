package roadnet

import (
	"os"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection returns the model as GeoJSON features; a polygon per
// road base plus line strings for road ways & borders. Coordinates are the
// ground plane positions as given, no projection is applied.
func (m *Model) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, rb := range m.RoadBases() {
		ring := ringOf(rb.Outline())
		if len(ring) < 4 {
			continue
		}
		f := geojson.NewFeature(orb.Polygon{ring})
		f.ID = rb.ID().String()
		f.Properties = geojson.Properties{
			"kind":    rb.Kind().String(),
			"origins": rb.Origins(),
		}

		switch e := rb.(type) {
		case *Road:
			f.Properties["lanes"] = len(e.Lanes)
			f.Properties["width"] = e.Width()
			f.Properties["length"] = e.Length()
			f.Properties["median"] = e.HasMedian
			f.Properties["prev"] = idOf(e.Prev)
			f.Properties["next"] = idOf(e.Next)
		case *Intersection:
			neighbors := []string{}
			for _, n := range e.Neighbors() {
				neighbors = append(neighbors, n.ID().String())
			}
			f.Properties["roads"] = neighbors
			f.Properties["signal"] = e.TrafficSignal != nil
		case *SideWalk:
			f.Properties["parent"] = idOf(e.Parent)
		}
		fc.Append(f)
	}

	for _, r := range m.roads {
		for name, way := range map[string][]r3.Vector{
			"left":        r.LeftWay,
			"right":       r.RightWay,
			"prev_border": r.PrevBorder,
			"next_border": r.NextBorder,
		} {
			if len(way) < 2 {
				continue
			}
			f := geojson.NewFeature(lineOf(way))
			f.Properties = geojson.Properties{"kind": "way", "road": r.ID().String(), "side": name}
			fc.Append(f)
		}
	}

	return fc
}

// MarshalGeoJSON returns the model as a GeoJSON feature collection
func (m *Model) MarshalGeoJSON() ([]byte, error) {
	return m.FeatureCollection().MarshalJSON()
}

// SaveGeoJSON writes the model as GeoJSON to the given path.
func (m *Model) SaveGeoJSON(fpath string) error {
	data, err := m.MarshalGeoJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, data, 0644)
}

func idOf(rb RoadBase) string {
	if rb == nil {
		return ""
	}
	return rb.ID().String()
}

func lineOf(pts []r3.Vector) orb.LineString {
	out := make(orb.LineString, len(pts))
	for i, p := range pts {
		pt := groundPlane.To2D(p)
		out[i] = orb.Point{pt.X, pt.Y}
	}
	return out
}

// ringOf returns a closed ring
func ringOf(pts []r3.Vector) orb.Ring {
	if len(pts) == 0 {
		return nil
	}
	ring := orb.Ring(lineOf(pts))
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}
