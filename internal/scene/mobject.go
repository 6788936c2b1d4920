package scene

import (
	"image/color"
	"math"

	"github.com/san-kum/soillab/internal/curves"
	"github.com/san-kum/soillab/internal/geom"
)

// Frame geometry in scene units: 8 tall, 16:9, origin at the centre.
const (
	FrameHeight = 8.0
	FrameWidth  = FrameHeight * 16 / 9

	// stroke widths are given in hundredths of a scene unit
	StrokeUnit = 0.01

	DefaultStroke = 4.0
	circleSegs    = 96
	cornerSegs    = 8
)

type Kind int

const (
	KindRect Kind = iota
	KindRoundedRect
	KindCircle
	KindLine
	KindArrow
	KindDoubleArrow
	KindPolygon
	KindDot
	KindText
	KindMath
	KindAxes
	KindPlot
	KindGroup
)

var kindNames = [...]string{
	"rect", "rounded_rect", "circle", "line", "arrow", "double_arrow",
	"polygon", "dot", "text", "math", "axes", "plot", "group",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Path is one polyline of a mobject. Solid paths (arrow tips, dots) are filled
// with the stroke colour.
type Path struct {
	Points []geom.Vec2
	Closed bool
	Solid  bool
}

func (p Path) clone() Path {
	p.Points = append([]geom.Vec2(nil), p.Points...)
	return p
}

type Style struct {
	Stroke      color.RGBA
	StrokeWidth float64
	Fill        color.RGBA
	FillOpacity float64
}

// Stroked returns a style with only an outline.
func Stroked(c color.RGBA, width float64) Style {
	return Style{Stroke: c, StrokeWidth: width, Fill: c}
}

// Filled returns a style filled with fill at the given opacity and outlined
// with stroke.
func Filled(stroke, fill color.RGBA, opacity, width float64) Style {
	return Style{Stroke: stroke, StrokeWidth: width, Fill: fill, FillOpacity: opacity}
}

// Lerp interpolates two styles.
func (s Style) Lerp(o Style, t float64) Style {
	return Style{
		Stroke:      LerpColor(s.Stroke, o.Stroke, t),
		StrokeWidth: s.StrokeWidth + (o.StrokeWidth-s.StrokeWidth)*t,
		Fill:        LerpColor(s.Fill, o.Fill, t),
		FillOpacity: s.FillOpacity + (o.FillOpacity-s.FillOpacity)*t,
	}
}

// PlotInfo ties a plot mobject to its curve and the x-range drawn so far.
type PlotInfo struct {
	Axes  Axes
	Curve curves.Curve
	XMin  float64
	XMax  float64
}

// Tip returns the data-space point at the drawn end of the plot.
func (p *PlotInfo) Tip() (x, y float64) {
	return p.XMax, p.Curve.Eval(p.XMax)
}

// Mobject is a renderable element of the scene.
type Mobject struct {
	ID       string
	Kind     Kind
	Paths    []Path
	Style    Style
	Opacity  float64
	Reveal   float64
	Text     string
	FontSize float64
	Anchor   geom.Vec2
	Angle    float64
	Axes     *Axes
	Plot     *PlotInfo
}

func newMobject(id string, kind Kind, style Style, paths ...Path) *Mobject {
	return &Mobject{ID: id, Kind: kind, Paths: paths, Style: style, Opacity: 1, Reveal: 1}
}

func NewRect(id string, w, h float64, style Style) *Mobject {
	return newMobject(id, KindRect, style, Path{Points: geom.RectPoints(geom.Origin, w, h), Closed: true})
}

func NewRoundedRect(id string, w, h, r float64, style Style) *Mobject {
	return newMobject(id, KindRoundedRect, style, Path{Points: geom.RoundedRectPoints(geom.Origin, w, h, r, cornerSegs), Closed: true})
}

func NewCircle(id string, r float64, style Style) *Mobject {
	return newMobject(id, KindCircle, style, Path{Points: geom.CirclePoints(geom.Origin, r, circleSegs), Closed: true})
}

func NewPolygon(id string, pts []geom.Vec2, style Style) *Mobject {
	return newMobject(id, KindPolygon, style, Path{Points: append([]geom.Vec2(nil), pts...), Closed: true})
}

func NewLine(id string, a, b geom.Vec2, style Style) *Mobject {
	return newMobject(id, KindLine, style, Path{Points: []geom.Vec2{a, b}})
}

// NewGroup bundles open segments into one mobject, e.g. the two halves of a
// crack.
func NewGroup(id string, style Style, segs ...[2]geom.Vec2) *Mobject {
	m := newMobject(id, KindGroup, style)
	for _, s := range segs {
		m.Paths = append(m.Paths, Path{Points: []geom.Vec2{s[0], s[1]}})
	}
	return m
}

const defaultTip = 0.35

// NewArrow draws a shaft from start to end with a solid tip at end. The tip is
// capped at maxTipRatio of the arrow length.
func NewArrow(id string, start, end geom.Vec2, style Style, maxTipRatio float64) *Mobject {
	tip := geom.ArrowTip(start, end, defaultTip, maxTipRatio)
	shaftEnd := end
	if len(tip) == 3 {
		shaftEnd = tip[1].Lerp(tip[2], 0.5)
	}
	return newMobject(id, KindArrow, style,
		Path{Points: []geom.Vec2{start, shaftEnd}},
		Path{Points: tip, Closed: true, Solid: true},
	)
}

// NewDoubleArrow has tips at both ends, pulled in by buff.
func NewDoubleArrow(id string, start, end geom.Vec2, buff float64, style Style) *Mobject {
	u := end.Sub(start).Normalize()
	start, end = start.Add(u.Scale(buff)), end.Sub(u.Scale(buff))
	a := geom.ArrowTip(start, end, defaultTip, 0.25)
	b := geom.ArrowTip(end, start, defaultTip, 0.25)
	return newMobject(id, KindDoubleArrow, style,
		Path{Points: []geom.Vec2{start, end}},
		Path{Points: a, Closed: true, Solid: true},
		Path{Points: b, Closed: true, Solid: true},
	)
}

func NewDot(id string, at geom.Vec2, r float64, c color.RGBA) *Mobject {
	return newMobject(id, KindDot, Filled(c, c, 1, 0), Path{Points: geom.CirclePoints(at, r, 24), Closed: true, Solid: true})
}

// NewText places a label centred on the origin.
func NewText(id, text string, size float64, c color.RGBA) *Mobject {
	m := newMobject(id, KindText, Filled(c, c, 1, 0))
	m.Text, m.FontSize = text, size
	return m
}

// NewMath is a formula label; it is laid out like plain text.
func NewMath(id, text string, size float64, c color.RGBA) *Mobject {
	m := NewText(id, text, size, c)
	m.Kind = KindMath
	return m
}

// textHeight maps a font size to scene units; size 48 is 0.5 units tall.
func textHeight(size float64) float64 { return size / 96 }

// Bounds returns the box covering every path, or the text extent.
func (m *Mobject) Bounds() geom.Box {
	if m.Kind == KindText || m.Kind == KindMath {
		h := textHeight(m.FontSize)
		w := 0.55 * h * float64(len([]rune(m.Text)))
		if m.Angle != 0 && math.Abs(math.Sin(m.Angle)) > 0.7 {
			w, h = h, w
		}
		half := geom.V(w/2, h/2)
		return geom.Box{Min: m.Anchor.Sub(half), Max: m.Anchor.Add(half)}
	}
	var b geom.Box
	first := true
	for _, p := range m.Paths {
		if len(p.Points) == 0 {
			continue
		}
		pb := geom.Bounds(p.Points)
		if first {
			b, first = pb, false
			continue
		}
		b = b.Union(pb)
	}
	if first {
		return geom.Box{Min: m.Anchor, Max: m.Anchor}
	}
	return b
}

func (m *Mobject) Center() geom.Vec2 { return m.Bounds().Center() }
func (m *Mobject) Width() float64    { return m.Bounds().Width() }
func (m *Mobject) Height() float64   { return m.Bounds().Height() }

// Top, Bottom, Left and Right are the edge midpoints of the bounding box.
func (m *Mobject) Top() geom.Vec2    { return m.Bounds().Corner(geom.Up) }
func (m *Mobject) Bottom() geom.Vec2 { return m.Bounds().Corner(geom.Down) }
func (m *Mobject) Left() geom.Vec2   { return m.Bounds().Corner(geom.Left) }
func (m *Mobject) Right() geom.Vec2  { return m.Bounds().Corner(geom.Right) }

// Corner returns a bounding box corner, e.g. geom.Up.Add(geom.Left).
func (m *Mobject) Corner(dir geom.Vec2) geom.Vec2 { return m.Bounds().Corner(dir) }

// Start and End are the endpoints of the first path (lines and arrows).
func (m *Mobject) Start() geom.Vec2 {
	if len(m.Paths) == 0 || len(m.Paths[0].Points) == 0 {
		return m.Anchor
	}
	return m.Paths[0].Points[0]
}

func (m *Mobject) End() geom.Vec2 {
	if len(m.Paths) == 0 || len(m.Paths[0].Points) == 0 {
		return m.Anchor
	}
	pts := m.Paths[0].Points
	if m.Kind == KindArrow && len(m.Paths) > 1 && len(m.Paths[1].Points) > 0 {
		return m.Paths[1].Points[0]
	}
	return pts[len(pts)-1]
}

// Shift translates the mobject, its axes and plot metadata.
func (m *Mobject) Shift(d geom.Vec2) *Mobject {
	for i := range m.Paths {
		m.Paths[i].Points = geom.Shift(m.Paths[i].Points, d)
	}
	m.Anchor = m.Anchor.Add(d)
	if m.Axes != nil {
		m.Axes.Origin = m.Axes.Origin.Add(d)
	}
	if m.Plot != nil {
		m.Plot.Axes.Origin = m.Plot.Axes.Origin.Add(d)
	}
	return m
}

// MoveTo centres the mobject on p.
func (m *Mobject) MoveTo(p geom.Vec2) *Mobject {
	return m.Shift(p.Sub(m.Center()))
}

// Rotate turns the mobject about its centre. Text keeps its anchor and only
// records the angle.
func (m *Mobject) Rotate(angle float64) *Mobject {
	c := m.Center()
	for i := range m.Paths {
		m.Paths[i].Points = geom.RotateAbout(m.Paths[i].Points, angle, c)
	}
	m.Angle += angle
	return m
}

// NextTo places m beside target in direction dir, buff units away, centred
// on the other axis.
func (m *Mobject) NextTo(target geom.Box, dir geom.Vec2, buff float64) *Mobject {
	want := target.Corner(dir).Add(dir.Scale(buff))
	have := m.Bounds().Corner(dir.Scale(-1))
	return m.Shift(want.Sub(have))
}

// ToCorner moves m into a frame corner, buff units in from both edges.
func (m *Mobject) ToCorner(dir geom.Vec2, buff float64) *Mobject {
	return m.alignOnBorder(dir, buff)
}

// ToEdge moves m against a frame edge, keeping the other coordinate.
func (m *Mobject) ToEdge(dir geom.Vec2, buff float64) *Mobject {
	return m.alignOnBorder(dir, buff)
}

func (m *Mobject) alignOnBorder(dir geom.Vec2, buff float64) *Mobject {
	target := geom.V(sgn(dir.X)*FrameWidth/2, sgn(dir.Y)*FrameHeight/2)
	point := m.Bounds().Corner(dir)
	shift := target.Sub(point).Sub(dir.Scale(buff))
	if dir.X == 0 {
		shift.X = 0
	}
	if dir.Y == 0 {
		shift.Y = 0
	}
	return m.Shift(shift)
}

// Clone returns a deep copy.
func (m *Mobject) Clone() *Mobject {
	c := *m
	c.Paths = make([]Path, len(m.Paths))
	for i, p := range m.Paths {
		c.Paths[i] = p.clone()
	}
	if m.Axes != nil {
		a := *m.Axes
		c.Axes = &a
	}
	if m.Plot != nil {
		p := *m.Plot
		c.Plot = &p
	}
	return &c
}

// As returns a copy of m carrying a different ID, for use as a transform
// target.
func (m *Mobject) As(id string) *Mobject {
	c := m.Clone()
	c.ID = id
	return c
}

func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
