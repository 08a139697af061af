package roadnet

import (
	"io"
	"log"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/voidshard/roadnet/internal/rgraph"
)

// FactoryConfig outlines how a Factory turns city objects into a road
// network. Defaults (see DefaultFactoryConfig) are tuned for PLATEAU style
// datasets in metres.
type FactoryConfig struct {
	// RoadSize is the width of a single lane. The lane count of a road is
	// its width divided by this (rounded, at least 1).
	RoadSize float64 `yaml:"roadSize"`

	// TerminateAllowEdgeAngle is the max angle (degrees) an outline piece may
	// be off parallel to the opposite border & still be picked as the end of
	// a dead end road.
	TerminateAllowEdgeAngle float64 `yaml:"terminateAllowEdgeAngle"`

	// TerminateSkipAngle is the max angle (degrees) between consecutive
	// outline edges that are treated as one straight piece when looking for
	// the end of a dead end road.
	TerminateSkipAngle float64 `yaml:"terminateSkipAngle"`

	// Lod1SideWalkSize is the width of generated sidewalks on LOD1 roads
	Lod1SideWalkSize float64 `yaml:"lod1SideWalkSize"`

	// Lod1SideWalkThresholdRoadWidth is the min width a LOD1 road must have
	// left over after carving out sidewalks for them to be generated
	Lod1SideWalkThresholdRoadWidth float64 `yaml:"lod1SideWalkThresholdRoadWidth"`

	// AddSideWalk generates sidewalks for LOD1 roads (which carry no sidewalk
	// polygons of their own)
	AddSideWalk bool `yaml:"addSideWalk"`

	// CheckMedian marks roads holding median faces
	CheckMedian bool `yaml:"checkMedian"`

	// IgnoreHighway drops city objects classified as highways
	IgnoreHighway bool `yaml:"ignoreHighway"`

	// AddTrafficSignalLights places a signal controller on every
	// intersection joining 3 or more roads
	AddTrafficSignalLights bool `yaml:"addTrafficSignalLights"`

	// UseContourMesh builds a single face per city object from its outer
	// contour, rather than one face per polygon
	UseContourMesh bool `yaml:"useContourMesh"`

	// MergeRoadGroup merges chains of compatible roads into one road
	MergeRoadGroup bool `yaml:"mergeRoadGroup"`

	// CalibrateIntersection moves intersection borders into their roads
	// (see CalibrateIntersectionOption)
	CalibrateIntersection bool `yaml:"calibrateIntersection"`

	// SeparateContinuousBorder also calibrates borders that directly touch
	// the border of another road. When false these are left in place.
	SeparateContinuousBorder bool `yaml:"separateContinuousBorder"`

	// RoadTypeAttributeKey is the attribute used to classify a feature as
	// road, sidewalk, median or highway
	RoadTypeAttributeKey string `yaml:"roadTypeAttributeKey"`

	// OnlyMaxLod keeps only the highest LOD features of each city object
	OnlyMaxLod bool `yaml:"onlyMaxLod"`

	// Workers limits how many city objects are fetched & decomposed at
	// once. 0 or less implies no limit.
	Workers int `yaml:"workers"`

	// GraphFactory configures the road graph & its cleanup
	GraphFactory GraphFactoryConfig `yaml:"graphFactory"`

	// CalibrateIntersectionOption configures intersection calibration
	CalibrateIntersectionOption CalibrateIntersectionBorderOption `yaml:"calibrateIntersectionOption"`

	// Logger for progress & skipped items, log.Default() if not given
	Logger *log.Logger `yaml:"-"`
}

// GraphFactoryConfig configures how the road graph is built & cleaned.
type GraphFactoryConfig struct {
	// ReductionOnCreate runs the default cleanup pipeline (height smoothing,
	// vertex merging & mid point removal) after the graph is built
	ReductionOnCreate bool `yaml:"reductionOnCreate"`

	// MergeCellSize is the grid cell size used to find vertices to merge
	MergeCellSize float64 `yaml:"mergeCellSize"`

	// MergeCellLength is the reach (in cells, exclusive) of a vertex merge
	MergeCellLength int `yaml:"mergeCellLength"`

	// RemoveMidPointTolerance is how far off the line between its
	// neighbours a vertex may be & still be removed
	RemoveMidPointTolerance float64 `yaml:"removeMidPointTolerance"`

	// Lod1HeightTolerance is the height difference smoothed away between
	// vertices of the same LOD in a merge cell. Also used as the height
	// tolerance of edge intersection insertion.
	Lod1HeightTolerance float64 `yaml:"lod1HeightTolerance"`

	// EdgeReduction merges edges joining the same two vertices
	EdgeReduction bool `yaml:"edgeReduction"`

	// MergeIsolatedVertex replaces degree 2 vertices with a direct edge
	MergeIsolatedVertex bool `yaml:"mergeIsolatedVertex"`

	// RemoveIsolatedEdge strips faces of edges sticking out of them
	RemoveIsolatedEdge bool `yaml:"removeIsolatedEdge"`

	// InsertEdgeIntersection splits crossing edges at a shared vertex.
	// Pairwise, so off by default.
	InsertEdgeIntersection bool `yaml:"insertEdgeIntersection"`

	// NearEdgeTolerance splits edges at foreign vertices closer than this,
	// 0 or less disables it
	NearEdgeTolerance float64 `yaml:"nearEdgeTolerance"`
}

// CalibrateIntersectionBorderOption configures how far intersection borders
// are pushed into their roads.
type CalibrateIntersectionBorderOption struct {
	// MaxOffsetMeter is the most a border moves into its road
	MaxOffsetMeter float64 `yaml:"maxOffsetMeter"`

	// NeedRoadLengthMeter is the road length calibration will not cut below
	NeedRoadLengthMeter float64 `yaml:"needRoadLengthMeter"`
}

// DefaultCalibrateIntersectionBorderOption returns the default calibration.
func DefaultCalibrateIntersectionBorderOption() CalibrateIntersectionBorderOption {
	return CalibrateIntersectionBorderOption{
		MaxOffsetMeter:      5,
		NeedRoadLengthMeter: 23,
	}
}

// DefaultGraphFactoryConfig returns the default graph settings.
func DefaultGraphFactoryConfig() GraphFactoryConfig {
	return GraphFactoryConfig{
		ReductionOnCreate:       true,
		MergeCellSize:           0.5,
		MergeCellLength:         2,
		RemoveMidPointTolerance: 0.3,
		Lod1HeightTolerance:     1.5,
		RemoveIsolatedEdge:      true,
	}
}

// DefaultFactoryConfig returns a reasonable default FactoryConfig.
func DefaultFactoryConfig() *FactoryConfig {
	return &FactoryConfig{
		RoadSize:                       3,
		TerminateAllowEdgeAngle:        20,
		TerminateSkipAngle:             5,
		Lod1SideWalkSize:               3,
		Lod1SideWalkThresholdRoadWidth: 2,
		AddSideWalk:                    true,
		CheckMedian:                    true,
		IgnoreHighway:                  true,
		AddTrafficSignalLights:         true,
		UseContourMesh:                 true,
		MergeRoadGroup:                 true,
		CalibrateIntersection:          true,
		SeparateContinuousBorder:       true,
		RoadTypeAttributeKey:           "tran:function",
		OnlyMaxLod:                     true,
		Workers:                        4,
		GraphFactory:                   DefaultGraphFactoryConfig(),
		CalibrateIntersectionOption:    DefaultCalibrateIntersectionBorderOption(),
	}
}

// LoadFactoryConfig decodes YAML from r over the defaults, so a file only
// needs the settings it changes.
func LoadFactoryConfig(r io.Reader) (*FactoryConfig, error) {
	cfg := DefaultFactoryConfig()
	err := yaml.NewDecoder(r).Decode(cfg)
	if err == io.EOF {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode factory config")
	}
	return cfg, nil
}

// logger returns the configured logger or the std default.
func (c *FactoryConfig) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// optimizeOptions returns the default cleanup tolerances.
func (c *GraphFactoryConfig) optimizeOptions() rgraph.OptimizeOptions {
	return rgraph.OptimizeOptions{
		MergeCellSize:       c.MergeCellSize,
		MergeCellLength:     c.MergeCellLength,
		MidPointTolerance:   c.RemoveMidPointTolerance,
		Lod1HeightTolerance: c.Lod1HeightTolerance,
	}
}
