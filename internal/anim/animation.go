package anim

import (
	"fmt"
	"math"

	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

// Animation changes one mobject over a play segment.
//
// Begin runs once on the live scene when the segment is built: it validates
// the target and introduces new mobjects. Apply then sets the target to its
// state at progress alpha; it is always called on a fresh copy of the
// segment-start scene, so it may read the start state from sc. Finish leaves
// the live scene in the end state.
type Animation interface {
	fmt.Stringer
	Target() string
	Rate() RateFunc
	Begin(sc *scene.Scene) error
	Apply(sc *scene.Scene, alpha float64)
	Finish(sc *scene.Scene)
}

type base struct {
	name string
	id   string
	rate RateFunc
}

func (b base) Target() string { return b.id }
func (b base) String() string { return b.name + "(" + b.id + ")" }

func (b base) Rate() RateFunc {
	if b.rate == nil {
		return Smooth
	}
	return b.rate
}

func (b base) lookup(sc *scene.Scene) (*scene.Mobject, error) {
	m, ok := sc.Get(b.id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMobject, b.id)
	}
	return m, nil
}

// fade

type fadeIn struct {
	base
	m       *scene.Mobject
	opacity float64
}

// FadeIn adds m and raises its opacity from zero.
func FadeIn(m *scene.Mobject) Animation {
	return &fadeIn{base: base{name: "FadeIn", id: m.ID}, m: m}
}

func (a *fadeIn) Begin(sc *scene.Scene) error {
	a.opacity = a.m.Opacity
	if !sc.Has(a.id) {
		sc.Add(a.m.Clone())
	}
	return nil
}

func (a *fadeIn) Apply(sc *scene.Scene, alpha float64) {
	if m, ok := sc.Get(a.id); ok {
		m.Opacity = a.opacity * alpha
	}
}

func (a *fadeIn) Finish(sc *scene.Scene) { a.Apply(sc, 1) }

type fadeOut struct {
	base
	opacity float64
}

// FadeOut lowers the opacity of id to zero and removes it.
func FadeOut(id string) Animation {
	return &fadeOut{base: base{name: "FadeOut", id: id}}
}

func (a *fadeOut) Begin(sc *scene.Scene) error {
	m, err := a.lookup(sc)
	if err != nil {
		return err
	}
	a.opacity = m.Opacity
	return nil
}

func (a *fadeOut) Apply(sc *scene.Scene, alpha float64) {
	if m, ok := sc.Get(a.id); ok {
		m.Opacity = a.opacity * (1 - alpha)
	}
}

func (a *fadeOut) Finish(sc *scene.Scene) { sc.Remove(a.id) }

// reveal

type reveal struct {
	base
	m *scene.Mobject
}

// Create draws m progressively along its paths.
func Create(m *scene.Mobject) Animation {
	return &reveal{base: base{name: "Create", id: m.ID}, m: m}
}

// Write reveals text or paths at a constant rate.
func Write(m *scene.Mobject) Animation {
	return &reveal{base: base{name: "Write", id: m.ID, rate: Linear}, m: m}
}

func (a *reveal) Begin(sc *scene.Scene) error {
	if !sc.Has(a.id) {
		sc.Add(a.m.Clone())
	}
	return nil
}

func (a *reveal) Apply(sc *scene.Scene, alpha float64) {
	if m, ok := sc.Get(a.id); ok {
		m.Reveal = alpha
	}
}

func (a *reveal) Finish(sc *scene.Scene) { a.Apply(sc, 1) }

// grow

type growArrow struct {
	base
	m *scene.Mobject
}

// GrowArrow scales an arrow up from its start point.
func GrowArrow(m *scene.Mobject) Animation {
	return &growArrow{base: base{name: "GrowArrow", id: m.ID}, m: m}
}

func (a *growArrow) Begin(sc *scene.Scene) error {
	if !sc.Has(a.id) {
		sc.Add(a.m.Clone())
	}
	return nil
}

func (a *growArrow) Apply(sc *scene.Scene, alpha float64) {
	cur, ok := sc.Get(a.id)
	if !ok {
		return
	}
	g := a.m.Clone()
	from := a.m.Start()
	for i := range g.Paths {
		g.Paths[i].Points = geom.ScaleAbout(g.Paths[i].Points, alpha, from)
	}
	g.Opacity = cur.Opacity
	sc.Replace(g)
}

func (a *growArrow) Finish(sc *scene.Scene) { a.Apply(sc, 1) }

// transform

type transform struct {
	base
	target *scene.Mobject
}

// Transform morphs the mobject id into the shape, style and plot range of
// target. The mobject keeps its ID.
func Transform(id string, target *scene.Mobject) Animation {
	return &transform{base: base{name: "Transform", id: id}, target: target}
}

func (a *transform) Begin(sc *scene.Scene) error {
	_, err := a.lookup(sc)
	return err
}

func (a *transform) Apply(sc *scene.Scene, alpha float64) {
	m, ok := sc.Get(a.id)
	if !ok {
		return
	}
	t := a.target
	if alpha >= 1 {
		end := t.Clone()
		end.ID = a.id
		sc.Replace(end)
		return
	}
	m.Paths = morphPaths(m.Paths, t.Paths, alpha)
	m.Style = m.Style.Lerp(t.Style, alpha)
	m.Opacity += (t.Opacity - m.Opacity) * alpha
	m.Reveal += (t.Reveal - m.Reveal) * alpha
	m.Anchor = m.Anchor.Lerp(t.Anchor, alpha)
	if m.Plot != nil && t.Plot != nil {
		m.Plot.XMin += (t.Plot.XMin - m.Plot.XMin) * alpha
		m.Plot.XMax += (t.Plot.XMax - m.Plot.XMax) * alpha
		m.Plot.Curve = t.Plot.Curve
	}
}

func (a *transform) Finish(sc *scene.Scene) { a.Apply(sc, 1) }

// morphPaths pairs paths by index. A side with fewer paths borrows degenerate
// paths collapsed onto the centre of the other side.
func morphPaths(from, to []scene.Path, alpha float64) []scene.Path {
	n := len(from)
	if len(to) > n {
		n = len(to)
	}
	out := make([]scene.Path, n)
	for i := 0; i < n; i++ {
		a, b := pathAt(from, to, i), pathAt(to, from, i)
		k := int(math.Max(float64(len(a.Points)), float64(len(b.Points))))
		if k < 2 {
			k = 2
		}
		pa := geom.Resample(a.Points, a.Closed, k)
		pb := geom.Resample(b.Points, b.Closed, k)
		if a.Closed && b.Closed {
			pb = alignRing(pa, pb)
		}
		out[i] = scene.Path{
			Points: geom.LerpPoints(pa, pb, alpha),
			Closed: b.Closed,
			Solid:  b.Solid,
		}
	}
	return out
}

// alignRing rotates the closed ring b so it starts at the vertex nearest the
// start of a, which keeps morphs between outlines from twisting.
func alignRing(a, b []geom.Vec2) []geom.Vec2 {
	if len(a) == 0 || len(b) == 0 {
		return b
	}
	best, bestD := 0, math.Inf(1)
	for j, p := range b {
		if d := p.Sub(a[0]).Length(); d < bestD {
			best, bestD = j, d
		}
	}
	return append(append([]geom.Vec2(nil), b[best:]...), b[:best]...)
}

func pathAt(ps, other []scene.Path, i int) scene.Path {
	if i < len(ps) {
		return ps[i]
	}
	var c geom.Vec2
	if i < len(other) && len(other[i].Points) > 0 {
		c = geom.Bounds(other[i].Points).Center()
	}
	return scene.Path{Points: []geom.Vec2{c}, Closed: other[i].Closed, Solid: other[i].Solid}
}

// movement

type shift struct {
	base
	delta geom.Vec2
}

// Shift translates id by delta.
func Shift(id string, delta geom.Vec2) Animation {
	return &shift{base: base{name: "Shift", id: id}, delta: delta}
}

func (a *shift) Begin(sc *scene.Scene) error {
	_, err := a.lookup(sc)
	return err
}

func (a *shift) Apply(sc *scene.Scene, alpha float64) {
	if m, ok := sc.Get(a.id); ok {
		m.Shift(a.delta.Scale(alpha))
	}
}

func (a *shift) Finish(sc *scene.Scene) { a.Apply(sc, 1) }

// MoveTo moves the centre of id to p. The offset is fixed when the segment is
// built.
func MoveTo(id string, p geom.Vec2) Animation {
	return &moveTo{shift: shift{base: base{name: "MoveTo", id: id}}, to: p}
}

type moveTo struct {
	shift
	to geom.Vec2
}

func (a *moveTo) Begin(sc *scene.Scene) error {
	m, err := a.lookup(sc)
	if err != nil {
		return err
	}
	a.delta = a.to.Sub(m.Center())
	return nil
}
