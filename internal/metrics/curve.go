package metrics

import (
	"math"

	"github.com/san-kum/soillab/internal/sim"
)

// Peak tracks the highest curve tip seen while the curve is drawn.
type Peak struct {
	name    string
	peak    float64
	samples int
}

func NewPeak() *Peak {
	return &Peak{name: "curve_peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(f sim.Frame) {
	if !f.Tip.Valid {
		return
	}
	if p.samples == 0 {
		p.peak = f.Tip.Y
	}
	p.peak = math.Max(p.peak, f.Tip.Y)
	p.samples++
}

func (p *Peak) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.peak
}

func (p *Peak) Reset() {
	p.peak = 0
	p.samples = 0
}

// Extent is the furthest x the curve tip reached.
type Extent struct {
	name string
	max  float64
}

func NewExtent() *Extent {
	return &Extent{name: "curve_extent"}
}

func (e *Extent) Name() string { return e.name }

func (e *Extent) Observe(f sim.Frame) {
	if f.Tip.Valid {
		e.max = math.Max(e.max, f.Tip.X)
	}
}

func (e *Extent) Value() float64 { return e.max }

func (e *Extent) Reset() { e.max = 0 }
