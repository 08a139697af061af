package roadnet

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/golang/geo/r3"
)

// memoryCity is an in memory CityModel
type memoryCity struct {
	lock     sync.Mutex
	features map[string][]*Feature
	attrs    map[string]Attributes
	calls    int
}

func newMemoryCity() *memoryCity {
	return &memoryCity{features: map[string][]*Feature{}, attrs: map[string]Attributes{}}
}

func (m *memoryCity) Mesh(ctx context.Context, group string) ([]*Feature, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.calls++
	fs, ok := m.features[group]
	if !ok {
		return nil, fmt.Errorf("unknown group %s", group)
	}
	return fs, nil
}

func (m *memoryCity) Attributes(id string) (Attributes, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	a, ok := m.attrs[id]
	return a, ok
}

// add a single polygon feature with a tran:function attribute (none if
// function is empty)
func (m *memoryCity) add(group string, lod int, function string, ring ...r3.Vector) string {
	id := fmt.Sprintf("%s-%d", group, len(m.features[group]))
	m.features[group] = append(m.features[group], &Feature{ID: id, Group: group, Lod: lod, Polygons: [][]r3.Vector{ring}})
	if function != "" {
		m.attrs[id] = Attributes{"tran:function": {Type: "string", Value: function}}
	}
	return id
}

func (m *memoryCity) groups() []string {
	out := []string{}
	for _, g := range []string{"x", "e", "w", "n", "s", "e-walk"} {
		if _, ok := m.features[g]; ok {
			out = append(out, g)
		}
	}
	return out
}

func rect(x0, y0, x1, y1 float64) []r3.Vector {
	return []r3.Vector{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// crossroads is a 10x10 intersection at the origin with a 40m long, 10m
// wide road leaving each side.
func crossroads(lod int) *memoryCity {
	c := newMemoryCity()
	c.add("x", lod, "車道交差部", rect(-5, -5, 5, 5)...)
	c.add("e", lod, "車道部", rect(5, -5, 45, 5)...)
	c.add("w", lod, "車道部", rect(-45, -5, -5, 5)...)
	c.add("n", lod, "車道部", rect(-5, 5, 5, 45)...)
	c.add("s", lod, "車道部", rect(-5, -45, 5, -5)...)
	return c
}

func quietConfig() *FactoryConfig {
	cfg := DefaultFactoryConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	return cfg
}

// recordingHost keeps every model it is given
type recordingHost struct {
	lock   sync.Mutex
	models []*Model
	err    error
}

func (h *recordingHost) Instantiate(m *Model) error {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.models = append(h.models, m)
	return h.err
}
