package scene

import (
	"image/color"
	"math"

	"github.com/san-kum/soillab/internal/curves"
	"github.com/san-kum/soillab/internal/geom"
)

const (
	tickLen = 0.1
	// samples drawn across the full x-range of an axes
	plotSamples = 120
)

// Axes maps data coordinates onto a box of XLength×YLength scene units
// centred on Origin.
type Axes struct {
	Origin            geom.Vec2
	XMin, XMax, XStep float64
	YMin, YMax, YStep float64
	XLength, YLength  float64
}

// C2P converts data coordinates to a scene point.
func (a Axes) C2P(x, y float64) geom.Vec2 {
	fx := (x-a.XMin)/(a.XMax-a.XMin) - 0.5
	fy := (y-a.YMin)/(a.YMax-a.YMin) - 0.5
	return geom.V(a.Origin.X+fx*a.XLength, a.Origin.Y+fy*a.YLength)
}

// P2C is the inverse of C2P.
func (a Axes) P2C(p geom.Vec2) (x, y float64) {
	fx := (p.X-a.Origin.X)/a.XLength + 0.5
	fy := (p.Y-a.Origin.Y)/a.YLength + 0.5
	return a.XMin + fx*(a.XMax-a.XMin), a.YMin + fy*(a.YMax-a.YMin)
}

// crossing is the data point where the two axis lines meet: zero clamped
// into each range.
func (a Axes) crossing() (x, y float64) {
	return clamp(0, a.XMin, a.XMax), clamp(0, a.YMin, a.YMax)
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

func ticks(lo, hi, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var out []float64
	for v := lo; v <= hi+step*1e-9; v += step {
		out = append(out, v)
	}
	return out
}

// NewAxes builds the two axis lines with tick marks.
func NewAxes(id string, a Axes, c color.RGBA) *Mobject {
	m := newMobject(id, KindAxes, Stroked(c, 2))
	cx, cy := a.crossing()
	m.Paths = append(m.Paths,
		Path{Points: []geom.Vec2{a.C2P(a.XMin, cy), a.C2P(a.XMax, cy)}},
		Path{Points: []geom.Vec2{a.C2P(cx, a.YMin), a.C2P(cx, a.YMax)}},
	)
	for _, x := range ticks(a.XMin, a.XMax, a.XStep) {
		p := a.C2P(x, cy)
		m.Paths = append(m.Paths, Path{Points: []geom.Vec2{p.Add(geom.V(0, -tickLen/2)), p.Add(geom.V(0, tickLen/2))}})
	}
	for _, y := range ticks(a.YMin, a.YMax, a.YStep) {
		p := a.C2P(cx, y)
		m.Paths = append(m.Paths, Path{Points: []geom.Vec2{p.Add(geom.V(-tickLen/2, 0)), p.Add(geom.V(tickLen/2, 0))}})
	}
	ax := a
	m.Axes = &ax
	m.Anchor = a.Origin
	return m
}

// NewPlot draws c over [xmin, xmax] on a. The sample count scales with the
// drawn share of the axes so partial plots keep the density of the full one.
func NewPlot(id string, a Axes, c curves.Curve, xmin, xmax float64, style Style) *Mobject {
	m := newMobject(id, KindPlot, style, Path{Points: plotPoints(a, c, xmin, xmax)})
	m.Plot = &PlotInfo{Axes: a, Curve: c, XMin: xmin, XMax: xmax}
	m.Anchor = a.Origin
	return m
}

func plotPoints(a Axes, c curves.Curve, xmin, xmax float64) []geom.Vec2 {
	if xmax <= xmin {
		p := a.C2P(xmin, c.Eval(xmin))
		return []geom.Vec2{p, p}
	}
	n := int(math.Ceil(plotSamples*(xmax-xmin)/(a.XMax-a.XMin))) + 1
	if n < 2 {
		n = 2
	}
	xs, ys := curves.Sample(c, xmin, xmax, n)
	pts := make([]geom.Vec2, len(xs))
	for i := range xs {
		pts[i] = a.C2P(xs[i], ys[i])
	}
	return pts
}
