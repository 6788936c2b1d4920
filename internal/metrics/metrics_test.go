package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
	"github.com/san-kum/soillab/internal/sim"
)

func TestPeak(t *testing.T) {
	m := NewPeak()
	if m.Value() != 0 {
		t.Errorf("expected 0 before observations, got %v", m.Value())
	}

	for _, y := range []float64{10, 140, 153.4, 60} {
		m.Observe(sim.Frame{Tip: sim.Tip{Y: y, Valid: true}})
	}
	m.Observe(sim.Frame{Tip: sim.Tip{Y: 1e6}})

	if math.Abs(m.Value()-153.4) > 1e-12 {
		t.Errorf("expected peak 153.4, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("reset failed: %v", m.Value())
	}
}

func TestExtent(t *testing.T) {
	m := NewExtent()
	for _, x := range []float64{0.2, 0.6, 0.4} {
		m.Observe(sim.Frame{Tip: sim.Tip{X: x, Valid: true}})
	}
	if m.Value() != 0.6 {
		t.Errorf("expected 0.6, got %v", m.Value())
	}
}

func TestVisible(t *testing.T) {
	sc := scene.New()
	sc.Add(scene.NewCircle("a", 1, scene.Stroked(scene.White, 2)))
	hidden := scene.NewCircle("b", 1, scene.Stroked(scene.White, 2))
	hidden.Opacity = 0
	sc.Add(hidden)

	m := NewVisible()
	m.Observe(sim.Frame{Scene: sc})
	m.Observe(sim.Frame{Scene: scene.New()})
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", m.Value())
	}
}

func TestTravel(t *testing.T) {
	m := NewTravel("piston")
	if m.Name() != "piston_travel" {
		t.Errorf("unexpected name %q", m.Name())
	}

	p := scene.NewRect("piston", 2, 0.5, scene.Stroked(scene.Gray, 1.5))
	for i := 0; i < 4; i++ {
		sc := scene.New()
		sc.Add(p.Clone().Shift(geom.V(0, -0.1*float64(i))))
		m.Observe(sim.Frame{Scene: sc})
	}
	m.Observe(sim.Frame{Scene: scene.New()})

	if math.Abs(m.Value()-0.3) > 1e-12 {
		t.Errorf("expected travel 0.3, got %v", m.Value())
	}
}
