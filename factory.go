package roadnet

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/voidshard/roadnet/internal/geo"
	"github.com/voidshard/roadnet/internal/rgraph"
)

var (
	// ErrNilSource is returned when a Factory is created without a CityModel
	ErrNilSource = fmt.Errorf("no city model given")

	// ErrNoCityObjects implies none of the requested groups held usable road
	// geometry
	ErrNoCityObjects = fmt.Errorf("no road city objects found")
)

// groundPlane is the plane roads lie in, Z is up
var groundPlane = geo.PlaneXY

// Factory turns city object groups into a road network Model.
type Factory struct {
	cfg    *FactoryConfig
	source CityModel

	host       SceneHost
	foreground *Foreground

	lock   sync.Mutex
	active *Conversion
}

// NewFactory creates a new Factory reading from source. A nil cfg implies
// DefaultFactoryConfig().
func NewFactory(cfg *FactoryConfig, source CityModel) (*Factory, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if cfg == nil {
		cfg = DefaultFactoryConfig()
	}
	return &Factory{cfg: cfg, source: source}, nil
}

// SetScene sets a host to hand finished models to. The host is only ever
// called via fg, with the conversion blocked until it returns.
func (f *Factory) SetScene(host SceneHost, fg *Foreground) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.host = host
	f.foreground = fg
}

// Active returns the conversion currently running, nil if there isn't one
func (f *Factory) Active() *Conversion {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.active != nil && f.active.Running() {
		return f.active
	}
	return nil
}

// Start runs CreateRoadNetwork in the background. Nothing stops a second
// conversion being started while one runs; use TryStart for that.
func (f *Factory) Start(ctx context.Context, groups []string) *Conversion {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.start(ctx, groups)
}

// TryStart is Start, but refuses with ErrConversionRunning if a conversion
// is already in flight. The check and the start happen under one lock, so of
// any number of concurrent callers at most one succeeds.
func (f *Factory) TryStart(ctx context.Context, groups []string) (*Conversion, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.active != nil && f.active.Running() {
		return nil, ErrConversionRunning
	}
	return f.start(ctx, groups), nil
}

// start launches a conversion, f.lock must be held
func (f *Factory) start(ctx context.Context, groups []string) *Conversion {
	c := newConversion()
	c.setState(ConversionRunning)
	f.active = c

	go func() {
		m, err := f.CreateRoadNetwork(ctx, groups)
		c.finish(m, err)
	}()

	return c
}

// CreateRoadNetwork builds a road network from the given city object groups.
func (f *Factory) CreateRoadNetwork(ctx context.Context, groups []string) (*Model, error) {
	f.lock.Lock()
	host, fg := f.host, f.foreground
	f.lock.Unlock()

	r := &conversionRun{
		cfg:    f.cfg,
		log:    f.cfg.logger(),
		source: f.source,
		groups: groups,
	}

	m, err := r.run(ctx)
	if err != nil {
		return nil, err
	}

	if host != nil && fg != nil {
		err = fg.Do(ctx, func() error { return host.Instantiate(m) })
		if err != nil {
			return m, errors.Wrap(err, "failed to instantiate model")
		}
	}

	return m, nil
}

// conversionRun holds the state of a single conversion.
type conversionRun struct {
	cfg    *FactoryConfig
	log    *log.Logger
	source CityModel
	groups []string

	objects []*SubDividedCityObject
	graph   *rgraph.Graph
	model   *Model
}

// run performs each stage in order. Later stages rely on the output of
// earlier ones.
func (r *conversionRun) run(ctx context.Context) (*Model, error) {
	err := r.subdivide(ctx)
	if err != nil {
		return nil, err
	}
	r.log.Printf("roadnet: %d city objects from %d groups\n", len(r.objects), len(r.groups))

	r.graph = buildGraph(r.objects, r.cfg.UseContourMesh)
	r.log.Printf("roadnet: graph built, %d vertices %d edges %d faces\n", r.graph.VertexCount(), r.graph.EdgeCount(), r.graph.FaceCount())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleanupGraph(r.graph, &r.cfg.GraphFactory)
	r.log.Printf("roadnet: graph cleaned, %d vertices %d edges %d faces\n", r.graph.VertexCount(), r.graph.EdgeCount(), r.graph.FaceCount())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.model = convertGraph(r.graph, r.cfg)

	if r.cfg.MergeRoadGroup {
		merged := r.model.MergeRoadGroup()
		r.log.Printf("roadnet: merged away %d roads\n", merged)
	}
	if r.cfg.CalibrateIntersection {
		r.model.CalibrateIntersectionBorder(r.cfg.CalibrateIntersectionOption, r.cfg.SeparateContinuousBorder)
	}
	if r.cfg.AddSideWalk {
		n := r.model.generateSideWalks(r.cfg)
		r.log.Printf("roadnet: generated sidewalks for %d roads\n", n)
	}

	stats := r.model.Stats()
	r.log.Printf("roadnet: %d roads %d intersections %d sidewalks\n", stats.Roads, stats.Intersections, stats.SideWalks)

	return r.model, nil
}

// cleanupGraph runs the configured cleanup over g
func cleanupGraph(g *rgraph.Graph, cfg *GraphFactoryConfig) {
	if cfg.ReductionOnCreate {
		rgraph.Optimize(g, cfg.optimizeOptions())
	}
	if cfg.EdgeReduction {
		rgraph.EdgeReduction(g)
	}
	if cfg.MergeIsolatedVertex {
		rgraph.MergeIsolatedVertices(g)
	}
	if cfg.NearEdgeTolerance > 0 {
		rgraph.InsertVertexInNearEdge(g, cfg.NearEdgeTolerance)
	}
	if cfg.InsertEdgeIntersection {
		rgraph.InsertVerticesInEdgeIntersection(g, cfg.Lod1HeightTolerance)
	}
	if cfg.RemoveIsolatedEdge {
		rgraph.RemoveIsolatedEdgeFromFace(g)
	}
}
