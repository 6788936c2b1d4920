package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/soillab/internal/labtest"
	"github.com/san-kum/soillab/internal/metrics"
	"github.com/san-kum/soillab/internal/sim"
)

var ErrUnknownScene = errors.New("unknown scene")

// Scene is a registered demonstration.
type Scene struct {
	Name        string
	Description string
	Build       labtest.Builder
	// Tracked is the mobject whose centre travel is measured.
	Tracked string
}

type Registry struct {
	scenes map[string]Scene
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]Scene)}
	r.Register(Scene{Name: "bts", Description: "Brazilian tensile strength test", Build: labtest.BTS, Tracked: "top_arrow"})
	r.Register(Scene{Name: "clay", Description: "clay triaxial test with consolidation", Build: labtest.Clay, Tracked: "piston"})
	r.Register(Scene{Name: "cemented", Description: "cemented clay triaxial test with brittle fracture", Build: labtest.Cemented, Tracked: "piston"})
	return r
}

func (r *Registry) Register(s Scene) { r.scenes[s.Name] = s }

func (r *Registry) Get(name string) (Scene, error) {
	s, ok := r.scenes[name]
	if !ok {
		return Scene{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownScene, name, r.Names())
	}
	return s, nil
}

// Build constructs the named demonstration.
func (r *Registry) Build(name string, opts labtest.Options) (*labtest.Demo, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return s.Build(opts)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the scenes sorted by name.
func (r *Registry) List() []Scene {
	out := make([]Scene, 0, len(r.scenes))
	for _, name := range r.Names() {
		out = append(out, r.scenes[name])
	}
	return out
}

func (r *Registry) DefaultMetrics(name string) []sim.Metric {
	ms := []sim.Metric{metrics.NewPeak(), metrics.NewExtent(), metrics.NewVisible()}
	if s, ok := r.scenes[name]; ok && s.Tracked != "" {
		ms = append(ms, metrics.NewTravel(s.Tracked))
	}
	return ms
}
