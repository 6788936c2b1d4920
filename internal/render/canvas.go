package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

// vertical samples per pixel row
const subSamples = 4

type fillRule int

const (
	evenOdd fillRule = iota
	nonZero
)

// Canvas rasterises scene geometry onto an RGBA image whose origin is at
// (0, 0). Scene units are scaled uniformly and the frame is centred.
type Canvas struct {
	Img   *image.RGBA
	scale float64
	offX  float64
	offY  float64
	cov   []float32
	xs    []crossing
}

type crossing struct {
	x   float64
	dir int
}

type edge struct {
	x0, y0, x1, y1 float64
	dir            int
}

func NewCanvas(img *image.RGBA) *Canvas {
	w, h := float64(img.Rect.Dx()), float64(img.Rect.Dy())
	s := math.Min(w/scene.FrameWidth, h/scene.FrameHeight)
	return &Canvas{
		Img:   img,
		scale: s,
		offX:  (w - s*scene.FrameWidth) / 2,
		offY:  (h - s*scene.FrameHeight) / 2,
		cov:   make([]float32, img.Rect.Dx()+1),
	}
}

// Scale is the number of pixels per scene unit.
func (c *Canvas) Scale() float64 { return c.scale }

func (c *Canvas) Clear(bg color.RGBA) {
	draw.Draw(c.Img, c.Img.Rect, &image.Uniform{C: bg}, image.Point{}, draw.Src)
}

// ToPixel maps a scene point to pixel coordinates with y pointing down.
func (c *Canvas) ToPixel(p geom.Vec2) geom.Vec2 {
	return geom.V(
		c.offX+(p.X+scene.FrameWidth/2)*c.scale,
		c.offY+(scene.FrameHeight/2-p.Y)*c.scale,
	)
}

func (c *Canvas) toPixels(pts []geom.Vec2) []geom.Vec2 {
	out := make([]geom.Vec2, len(pts))
	for i, p := range pts {
		out[i] = c.ToPixel(p)
	}
	return out
}

// fill paints rings given in pixel coordinates with col at alpha.
func (c *Canvas) fill(rings [][]geom.Vec2, col color.RGBA, alpha float64, rule fillRule) {
	if alpha <= 0 {
		return
	}
	var edges []edge
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, r := range rings {
		n := len(r)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			a, b := r[i], r[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			e := edge{a.X, a.Y, b.X, b.Y, 1}
			if a.Y > b.Y {
				e = edge{b.X, b.Y, a.X, a.Y, -1}
			}
			edges = append(edges, e)
			minY = math.Min(minY, e.y0)
			maxY = math.Max(maxY, e.y1)
		}
	}
	if len(edges) == 0 {
		return
	}

	w, h := c.Img.Rect.Dx(), c.Img.Rect.Dy()
	y0 := max(int(math.Floor(minY)), 0)
	y1 := min(int(math.Ceil(maxY)), h)
	for py := y0; py < y1; py++ {
		cov := c.cov[:w+1]
		for i := range cov {
			cov[i] = 0
		}
		lo, hi := w, -1
		for s := 0; s < subSamples; s++ {
			sy := float64(py) + (float64(s)+0.5)/subSamples
			c.xs = c.xs[:0]
			for _, e := range edges {
				if sy < e.y0 || sy >= e.y1 {
					continue
				}
				t := (sy - e.y0) / (e.y1 - e.y0)
				c.xs = append(c.xs, crossing{e.x0 + t*(e.x1-e.x0), e.dir})
			}
			if len(c.xs) < 2 {
				continue
			}
			sort.Slice(c.xs, func(i, j int) bool { return c.xs[i].x < c.xs[j].x })
			wind := 0
			for i := 0; i < len(c.xs)-1; i++ {
				if rule == evenOdd {
					wind ^= 1
				} else {
					wind += c.xs[i].dir
				}
				if wind != 0 {
					a, b := span(cov, c.xs[i].x, c.xs[i+1].x, w)
					lo, hi = min(lo, a), max(hi, b)
				}
			}
		}
		for x := lo; x <= hi; x++ {
			if cov[x] > 0 {
				c.blend(x, py, col, alpha*math.Min(float64(cov[x]), 1))
			}
		}
	}
}

// span adds one sub-row of coverage over [x0, x1) and returns the touched
// pixel range.
func span(cov []float32, x0, x1 float64, w int) (int, int) {
	x0 = math.Max(0, math.Min(float64(w), x0))
	x1 = math.Max(0, math.Min(float64(w), x1))
	if x1 <= x0 {
		return w, -1
	}
	const unit = 1.0 / subSamples
	i0, i1 := int(x0), int(x1)
	if i0 == i1 {
		cov[i0] += float32((x1 - x0) * unit)
		return i0, min(i0, w-1)
	}
	cov[i0] += float32((float64(i0+1) - x0) * unit)
	for i := i0 + 1; i < i1; i++ {
		cov[i] += unit
	}
	if i1 < w {
		cov[i1] += float32((x1 - float64(i1)) * unit)
	}
	return i0, min(i1, w-1)
}

// blend composites col over the pixel at (x, y) with straight alpha a.
func (c *Canvas) blend(x, y int, col color.RGBA, a float64) {
	if a <= 0 {
		return
	}
	i := c.Img.PixOffset(x, y)
	p := c.Img.Pix[i : i+4 : i+4]
	p[0] = mix(p[0], col.R, a)
	p[1] = mix(p[1], col.G, a)
	p[2] = mix(p[2], col.B, a)
	p[3] = mix(p[3], 0xff, a)
}

func mix(dst, src uint8, a float64) uint8 {
	return uint8(float64(dst) + (float64(src)-float64(dst))*a + 0.5)
}

// stroke draws a polyline of the given pixel width as a union of quads with
// round-ish joins.
func (c *Canvas) stroke(pts []geom.Vec2, closed bool, width float64, col color.RGBA, alpha float64) {
	if len(pts) < 2 || alpha <= 0 {
		return
	}
	width = math.Max(width, 1)
	hw := width / 2
	var rings [][]geom.Vec2
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		d := b.Sub(a)
		if d.Length() == 0 {
			continue
		}
		nrm := geom.V(-d.Y, d.X).Normalize().Scale(hw)
		rings = append(rings, positive([]geom.Vec2{a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm)}))
	}
	if width > 2 {
		joints := pts[1 : n-1]
		if closed {
			joints = pts
		}
		for _, p := range joints {
			rings = append(rings, positive(geom.CirclePoints(p, hw, 8)))
		}
	}
	c.fill(rings, col, alpha, nonZero)
}

// positive orients a ring counter-clockwise so overlapping pieces add up
// under the nonzero rule.
func positive(r []geom.Vec2) []geom.Vec2 {
	if geom.SignedArea(r) < 0 {
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
	}
	return r
}
