package render

import (
	"image"
	"image/color"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/soillab/internal/geom"
)

// basicfont only carries ASCII.
var glyphs = strings.NewReplacer(
	"π", "pi",
	"σ", "s",
	"ε", "e",
	"₁", "1",
	"₃", "3",
)

// Transliterate maps the Greek letters and subscripts used in labels onto
// ASCII.
func Transliterate(s string) string { return glyphs.Replace(s) }

// revealed returns the leading share of s shown by a Write animation.
func revealed(s string, reveal float64) string {
	if reveal >= 1 {
		return s
	}
	r := []rune(s)
	return string(r[:int(math.Round(float64(len(r))*reveal))])
}

// text draws s centred on anchor. size is in points; 96 points is one scene
// unit of height. Quarter turns are honoured, other angles are drawn flat.
func (c *Canvas) text(s string, anchor geom.Vec2, size, angle float64, col color.RGBA, alpha float64) {
	s = Transliterate(s)
	if s == "" || alpha <= 0 {
		return
	}
	face := basicfont.Face7x13
	adv := font.MeasureString(face, s).Ceil()
	if adv <= 0 {
		return
	}
	mask := image.NewAlpha(image.Rect(0, 0, adv, face.Height))
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.P(0, face.Ascent)}
	d.DrawString(s)

	k := size / 96 * c.scale / float64(face.Height)
	tw := int(math.Ceil(float64(adv) * k))
	th := int(math.Ceil(float64(face.Height) * k))
	if tw < 1 || th < 1 {
		return
	}
	var src image.Image = mask
	if sin := math.Sin(angle); math.Abs(sin) > 0.7 {
		src = quarterTurn(mask, sin > 0)
		tw, th = th, tw
	}
	scaled := image.NewAlpha(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Rect, src, src.Bounds(), xdraw.Src, nil)

	p := c.ToPixel(anchor)
	x0 := int(math.Round(p.X - float64(tw)/2))
	y0 := int(math.Round(p.Y - float64(th)/2))
	w, h := c.Img.Rect.Dx(), c.Img.Rect.Dy()
	for y := 0; y < th; y++ {
		py := y0 + y
		if py < 0 || py >= h {
			continue
		}
		for x := 0; x < tw; x++ {
			px := x0 + x
			if px < 0 || px >= w {
				continue
			}
			if a := scaled.AlphaAt(x, y).A; a > 0 {
				c.blend(px, py, col, alpha*float64(a)/0xff)
			}
		}
	}
}

// quarterTurn rotates m by 90 degrees, counter-clockwise on screen when ccw.
func quarterTurn(m *image.Alpha, ccw bool) *image.Alpha {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	out := image.NewAlpha(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := m.AlphaAt(x, y)
			if ccw {
				out.SetAlpha(y, w-1-x, v)
			} else {
				out.SetAlpha(h-1-y, x, v)
			}
		}
	}
	return out
}
