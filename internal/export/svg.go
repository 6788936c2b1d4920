package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// viewport maps scene units onto a w x h pixel page, centred and
// aspect-preserving.
type viewport struct {
	scale      float64
	offX, offY float64
}

func newViewport(w, h int) viewport {
	s := math.Min(float64(w)/scene.FrameWidth, float64(h)/scene.FrameHeight)
	return viewport{
		scale: s,
		offX:  (float64(w) - s*scene.FrameWidth) / 2,
		offY:  (float64(h) - s*scene.FrameHeight) / 2,
	}
}

func (v viewport) point(p geom.Vec2) (int, int) {
	x := v.offX + (p.X+scene.FrameWidth/2)*v.scale
	y := v.offY + (scene.FrameHeight/2-p.Y)*v.scale
	return int(math.Round(x)), int(math.Round(y))
}

func (v viewport) points(pts []geom.Vec2) ([]int, []int) {
	xs, ys := make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = v.point(p)
	}
	return xs, ys
}

// WriteSVG writes sc as a standalone w x h SVG document.
func WriteSVG(w io.Writer, sc *scene.Scene, width, height int, bg color.RGBA) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	vp := newViewport(width, height)

	canvas.Start(width, height)
	canvas.Title("soillab frame")
	canvas.Rect(0, 0, width, height, "fill:"+scene.HexString(bg))
	for _, m := range sc.Mobjects() {
		writeMobject(canvas, vp, m)
	}
	canvas.End()
	return ew.err
}

func writeMobject(canvas *svg.SVG, vp viewport, m *scene.Mobject) {
	if m.Opacity <= 0 || m.Reveal <= 0 {
		return
	}
	st := m.Style
	if m.Kind == scene.KindText || m.Kind == scene.KindMath {
		writeText(canvas, vp, m)
		return
	}

	canvas.Gid(m.ID)
	width := st.StrokeWidth * scene.StrokeUnit * vp.scale
	for _, p := range m.Paths {
		switch {
		case p.Solid:
			xs, ys := vp.points(p.Points)
			canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:%.3f;stroke:none",
				scene.HexString(st.Stroke), m.Opacity*m.Reveal))
		case p.Closed && m.Reveal >= 1:
			xs, ys := vp.points(p.Points)
			canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:%.3f;fill-rule:evenodd;%s",
				scene.HexString(st.Fill), st.FillOpacity*m.Opacity, strokeStyle(st, width, m.Opacity)))
		default:
			pts := p.Points
			if m.Reveal < 1 || p.Closed {
				pts = geom.Partial(pts, p.Closed, m.Reveal)
			}
			if len(pts) < 2 {
				continue
			}
			xs, ys := vp.points(pts)
			canvas.Polyline(xs, ys, "fill:none;"+strokeStyle(st, width, m.Opacity))
		}
	}
	canvas.Gend()
}

func strokeStyle(st scene.Style, width, opacity float64) string {
	if st.StrokeWidth <= 0 {
		return "stroke:none"
	}
	return fmt.Sprintf("stroke:%s;stroke-width:%.2f;stroke-opacity:%.3f;stroke-linejoin:round",
		scene.HexString(st.Stroke), math.Max(width, 1), opacity)
}

func writeText(canvas *svg.SVG, vp viewport, m *scene.Mobject) {
	text := m.Text
	if m.Reveal < 1 {
		r := []rune(text)
		text = string(r[:int(math.Round(float64(len(r))*m.Reveal))])
	}
	if text == "" {
		return
	}
	x, y := vp.point(m.Anchor)
	size := m.FontSize / 96 * vp.scale
	style := fmt.Sprintf("font-family:sans-serif;font-size:%.1fpx;text-anchor:middle;dominant-baseline:central;fill:%s;fill-opacity:%.3f",
		size, scene.HexString(m.Style.Fill), m.Opacity)
	canvas.TranslateRotate(x, y, -m.Angle*180/math.Pi)
	canvas.Text(0, 0, text, style)
	canvas.Gend()
}

// TraceSVG draws the polyline (xs[i], ys[i]) fitted to a width x height page
// with a 10% margin.
func TraceSVG(w io.Writer, xs, ys []float64, width, height int, stroke string) error {
	if len(xs) < 2 || len(xs) != len(ys) {
		return fmt.Errorf("trace needs at least two points, got %d x and %d y", len(xs), len(ys))
	}
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	px, py := make([]int, len(xs)), make([]int, len(ys))
	for i := range xs {
		px[i] = int(math.Round((xs[i] - minX) / rangeX * float64(width)))
		py[i] = int(math.Round(float64(height) - (ys[i]-minY)/rangeY*float64(height)))
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#0a0a0a")
	canvas.Polyline(px, py, "fill:none;stroke-width:1.5;stroke:"+stroke)
	canvas.End()
	return ew.err
}
