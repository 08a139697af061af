package roadnet

import (
	"context"
	"log"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"

	"github.com/voidshard/roadnet/internal/geo"
)

// Classification is the result of ClassifyByAttribute
type Classification struct {
	// FeatureMaterials maps feature ID to the material it was given
	FeatureMaterials map[string]int

	// Meshes holds the triangulated geometry of each material
	Meshes map[int]*model3d.Mesh
}

// ClassifyByAttribute gives each feature of the groups the material of the
// first of its `key` attribute values found in materials. Children of a
// matched feature inherit its material unless matched themselves. Features
// without attributes are logged & skipped.
func ClassifyByAttribute(ctx context.Context, source CityModel, groups []string, key string, materials map[string]int, logger *log.Logger) (*Classification, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if logger == nil {
		logger = log.Default()
	}

	features := []*Feature{}
	byID := map[string]*Feature{}
	for _, g := range groups {
		fs, err := source.Mesh(ctx, g)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read mesh of %s", g)
		}
		for _, f := range fs {
			if f == nil {
				continue
			}
			features = append(features, f)
			byID[f.ID] = f
		}
	}

	result := &Classification{FeatureMaterials: map[string]int{}, Meshes: map[int]*model3d.Mesh{}}

	direct := map[string]bool{}
	for _, f := range features {
		attrs, ok := source.Attributes(f.ID)
		if !ok {
			logger.Printf("roadnet: no attributes for feature %s, skipping\n", f.ID)
			continue
		}
		for _, v := range attrs.ValuesByKey(key) {
			if idx, ok := materials[v]; ok {
				result.FeatureMaterials[f.ID] = idx
				direct[f.ID] = true
				break
			}
		}
	}

	// pass materials down to children that didn't match for themselves
	for _, f := range features {
		idx, ok := result.FeatureMaterials[f.ID]
		if !ok || !direct[f.ID] {
			continue
		}
		queue := append([]string{}, f.Children...)
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			if _, done := result.FeatureMaterials[id]; done {
				continue
			}
			result.FeatureMaterials[id] = idx
			if child, ok := byID[id]; ok {
				queue = append(queue, child.Children...)
			}
		}
	}

	for _, f := range features {
		idx, ok := result.FeatureMaterials[f.ID]
		if !ok {
			continue
		}
		mesh, ok := result.Meshes[idx]
		if !ok {
			mesh = model3d.NewMesh()
			result.Meshes[idx] = mesh
		}
		for _, ring := range f.Polygons {
			for _, t := range triangulate(ring) {
				mesh.Add(t)
			}
		}
	}

	return result, nil
}

// triangulate splits a ring into triangles in the ground plane, giving each
// corner back the height of the ring point it came from (or the ring's mean
// height for new points).
func triangulate(ring []r3.Vector) []*model3d.Triangle {
	if len(ring) >= 2 && ring[0].ApproxEqual(ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil
	}

	pts := make([]r2.Point, len(ring))
	heights := map[model2d.Coord]float64{}
	mean := 0.0
	for i, p := range ring {
		pts[i] = groundPlane.To2D(p)
		heights[model2d.Coord{X: pts[i].X, Y: pts[i].Y}] = groundPlane.Height(p)
		mean += groundPlane.Height(p)
	}
	mean /= float64(len(ring))

	if geo.NewPolygon(pts).Area() < 0 {
		for a, b := 0, len(pts)-1; a < b; a, b = a+1, b-1 {
			pts[a], pts[b] = pts[b], pts[a]
		}
	}

	segments := make([]*model2d.Segment, 0, len(pts))
	for i := range pts {
		j := (i + 1) % len(pts)
		segments = append(segments, &model2d.Segment{
			model2d.Coord{X: pts[i].X, Y: pts[i].Y},
			model2d.Coord{X: pts[j].X, Y: pts[j].Y},
		})
	}

	out := []*model3d.Triangle{}
	for _, t := range model2d.TriangulateMesh(model2d.NewMeshSegments(segments)) {
		t3d := &model3d.Triangle{}
		for i, c := range t {
			h, ok := heights[c]
			if !ok {
				h = mean
			}
			v := groundPlane.To3D(r2.Point{X: c.X, Y: c.Y}, h)
			t3d[i] = model3d.XYZ(v.X, v.Y, v.Z)
		}
		out = append(out, t3d)
	}
	return out
}
