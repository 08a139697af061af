package roadnet

import (
	"context"
)

// CityModel is what roadnet reads city geometry & attributes from.
// We ask only two things of it;
// - give me the meshes of a city object group (a road, a sidewalk ..)
// - what attributes does a feature carry
// Fetching, parsing & caching of the underlying dataset is left to the
// implementation.
type CityModel interface {
	// Mesh returns every feature of the given group. Calls for different
	// groups may be made concurrently.
	Mesh(ctx context.Context, group string) ([]*Feature, error)

	// Attributes returns the attributes of a feature, false if the
	// feature is unknown
	Attributes(featureID string) (Attributes, bool)
}

// SceneHost owns whatever visual / scene state the host application has.
// Instantiate is only ever called from the Foreground the factory is given.
type SceneHost interface {
	// Instantiate is handed the finished model
	Instantiate(m *Model) error
}
