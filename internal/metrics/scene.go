package metrics

import (
	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/sim"
)

// Visible averages the number of visible mobjects per frame.
type Visible struct {
	name    string
	sum     int
	samples int
}

func NewVisible() *Visible {
	return &Visible{name: "mean_visible"}
}

func (v *Visible) Name() string { return v.name }

func (v *Visible) Observe(f sim.Frame) {
	v.sum += f.Scene.Visible()
	v.samples++
}

func (v *Visible) Value() float64 {
	if v.samples == 0 {
		return 0
	}
	return float64(v.sum) / float64(v.samples)
}

func (v *Visible) Reset() {
	v.sum = 0
	v.samples = 0
}

// Travel is the path length covered by the centre of one mobject, e.g. the
// loading piston.
type Travel struct {
	name  string
	id    string
	last  geom.Vec2
	seen  bool
	total float64
}

func NewTravel(id string) *Travel {
	return &Travel{name: id + "_travel", id: id}
}

func (t *Travel) Name() string { return t.name }

func (t *Travel) Observe(f sim.Frame) {
	m, ok := f.Scene.Get(t.id)
	if !ok {
		return
	}
	c := m.Center()
	if t.seen {
		t.total += c.Sub(t.last).Length()
	}
	t.last, t.seen = c, true
}

func (t *Travel) Value() float64 { return t.total }

func (t *Travel) Reset() {
	t.total = 0
	t.seen = false
}
