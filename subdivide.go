package roadnet

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// subdivide fetches every group & breaks it into SubDividedCityObjects.
// Groups are fetched concurrently, up to cfg.Workers at a time.
func (r *conversionRun) subdivide(ctx context.Context) error {
	eg, ectx := errgroup.WithContext(ctx)
	if r.cfg.Workers > 0 {
		eg.SetLimit(r.cfg.Workers)
	}

	results := make([][]*SubDividedCityObject, len(r.groups))
	for i, group := range r.groups {
		i, group := i, group
		eg.Go(func() error {
			features, err := r.source.Mesh(ectx, group)
			if err != nil {
				return errors.Wrapf(err, "failed to read mesh of %s", group)
			}
			results[i] = r.subdivideGroup(group, features)
			return nil
		})
	}

	err := eg.Wait()
	if err != nil {
		return err
	}

	objects := []*SubDividedCityObject{}
	for _, objs := range results {
		if r.cfg.OnlyMaxLod {
			objs = onlyMaxLod(objs)
		}
		for _, o := range objs {
			if r.cfg.IgnoreHighway && o.RoadTypes.Has(RoadTypeHighway) {
				continue
			}
			objects = append(objects, o)
		}
	}
	if len(objects) == 0 {
		return ErrNoCityObjects
	}

	r.objects = objects
	return nil
}

// subdivideGroup classifies each feature of a group
func (r *conversionRun) subdivideGroup(group string, features []*Feature) []*SubDividedCityObject {
	out := []*SubDividedCityObject{}
	for _, f := range features {
		if f == nil || len(f.Polygons) == 0 {
			continue
		}
		g := f.Group
		if g == "" {
			g = group
		}
		out = append(out, &SubDividedCityObject{
			ID:        f.ID,
			Group:     g,
			Lod:       f.Lod,
			Polygons:  f.Polygons,
			RoadTypes: r.roadTypes(f.ID),
		})
	}
	return out
}

// roadTypes looks up the road type attribute of a feature. Misses are
// logged & treated as plain road.
func (r *conversionRun) roadTypes(featureID string) RoadType {
	attrs, ok := r.source.Attributes(featureID)
	if !ok {
		r.log.Printf("roadnet: no attributes for feature %s, assuming road\n", featureID)
		return RoadTypeRoad
	}

	values := attrs.ValuesByKey(r.cfg.RoadTypeAttributeKey)
	if len(values) == 0 {
		r.log.Printf("roadnet: feature %s has no %s, assuming road\n", featureID, r.cfg.RoadTypeAttributeKey)
		return RoadTypeRoad
	}

	t := RoadTypeNone
	for _, v := range values {
		t |= ParseRoadType(v)
	}
	return t
}

// onlyMaxLod drops objects when their group also has a higher LOD
func onlyMaxLod(in []*SubDividedCityObject) []*SubDividedCityObject {
	max := map[string]int{}
	for _, o := range in {
		if l, ok := max[o.Group]; !ok || o.Lod > l {
			max[o.Group] = o.Lod
		}
	}
	out := []*SubDividedCityObject{}
	for _, o := range in {
		if o.Lod == max[o.Group] {
			out = append(out, o)
		}
	}
	return out
}
