package render

import (
	"image/color"

	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

// DrawScene clears the canvas and paints the mobjects bottom to top.
func (c *Canvas) DrawScene(sc *scene.Scene, bg color.RGBA) {
	c.Clear(bg)
	for _, m := range sc.Mobjects() {
		c.DrawMobject(m)
	}
}

// DrawMobject paints fills first, then solid parts and outlines. A partial
// reveal trims outlines by arc length and fades fills in.
func (c *Canvas) DrawMobject(m *scene.Mobject) {
	if m.Opacity <= 0 || m.Reveal <= 0 {
		return
	}
	st := m.Style
	if m.Kind == scene.KindText || m.Kind == scene.KindMath {
		c.text(revealed(m.Text, m.Reveal), m.Anchor, m.FontSize, m.Angle, st.Fill, m.Opacity)
		return
	}

	if st.FillOpacity > 0 {
		var rings [][]geom.Vec2
		for _, p := range m.Paths {
			if p.Closed && !p.Solid && len(p.Points) >= 3 {
				rings = append(rings, c.toPixels(p.Points))
			}
		}
		c.fill(rings, st.Fill, st.FillOpacity*m.Opacity*m.Reveal, evenOdd)
	}

	width := st.StrokeWidth * scene.StrokeUnit * c.scale
	for _, p := range m.Paths {
		if p.Solid {
			c.fill([][]geom.Vec2{c.toPixels(p.Points)}, st.Stroke, m.Opacity*m.Reveal, evenOdd)
			continue
		}
		if st.StrokeWidth <= 0 {
			continue
		}
		pts, closed := p.Points, p.Closed
		if m.Reveal < 1 {
			pts, closed = geom.Partial(pts, closed, m.Reveal), false
		}
		c.stroke(c.toPixels(pts), closed, width, st.Stroke, m.Opacity)
	}
}
