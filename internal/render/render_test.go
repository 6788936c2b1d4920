package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

func boxTimeline(t *testing.T) *anim.Timeline {
	t.Helper()
	tl := anim.NewTimeline()
	box := scene.NewRect("box", 2, 2, scene.Filled(scene.White, scene.White, 1, 2))
	tl.Play(1, anim.FadeIn(box))
	tl.Play(0.5, anim.Shift("box", geom.Right.Scale(1)))
	if err := tl.Err(); err != nil {
		t.Fatal(err)
	}
	return tl
}

func newRenderer(t *testing.T, fps float64) *Renderer {
	t.Helper()
	r, err := New(Options{Width: 320, Height: 180, FPS: fps, Workers: 2, Background: scene.Black})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestLookupQuality(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		fps     float64
		wantErr bool
	}{
		{"low", 854, 15, false},
		{"m", 1280, 30, false},
		{"HIGH", 1920, 60, false},
		{"4k", 3840, 60, false},
		{"ultra", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := LookupQuality(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownQuality) {
					t.Fatalf("err = %v, want ErrUnknownQuality", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if q.Width != tt.width || q.FPS != tt.fps {
				t.Errorf("got %dpx @ %v, want %dpx @ %v", q.Width, q.FPS, tt.width, tt.fps)
			}
		})
	}
	if qs := Qualities(); len(qs) != 4 || qs[0].Name != "low" || qs[3].Name != "4k" {
		t.Errorf("Qualities() = %v", qs)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"gif", "PNG", " svg "} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("mp4"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("mp4: err = %v", err)
	}
}

func TestCanvasMapping(t *testing.T) {
	c := NewCanvas(image.NewRGBA(image.Rect(0, 0, 320, 180)))
	if math.Abs(c.Scale()-22.5) > 1e-9 {
		t.Errorf("scale = %v, want 22.5", c.Scale())
	}
	p := c.ToPixel(geom.Origin)
	if !p.ApproxEqual(geom.V(160, 90), 1e-9) {
		t.Errorf("origin -> %v", p)
	}
	// letterboxed when the image is taller than 16:9
	tall := NewCanvas(image.NewRGBA(image.Rect(0, 0, 320, 320)))
	if p := tall.ToPixel(geom.V(0, scene.FrameHeight/2)); p.Y <= 0 {
		t.Errorf("top edge at y=%v, want a margin", p.Y)
	}
}

func TestFrameFillsShapes(t *testing.T) {
	r := newRenderer(t, 10)
	img := r.Frame(boxTimeline(t), 1)

	centre := img.RGBAAt(160, 90)
	if centre.R != 0xff || centre.G != 0xff || centre.B != 0xff {
		t.Errorf("centre = %v, want white", centre)
	}
	corner := img.RGBAAt(2, 2)
	if corner.R != 0 || corner.G != 0 || corner.B != 0 || corner.A != 0xff {
		t.Errorf("corner = %v, want opaque black", corner)
	}

	// before the fade starts nothing is drawn
	blank := r.Frame(boxTimeline(t), 0)
	if c := blank.RGBAAt(160, 90); c.R != 0 {
		t.Errorf("centre at t=0 = %v, want background", c)
	}
}

func TestStrokeOnlyOutline(t *testing.T) {
	sc := scene.New()
	sc.Add(scene.NewRect("ring", 4, 4, scene.Stroked(scene.White, 10)))
	c := NewCanvas(image.NewRGBA(image.Rect(0, 0, 320, 180)))
	c.DrawScene(sc, scene.Black)

	if px := c.Img.RGBAAt(160, 90); px.R != 0 {
		t.Errorf("inside of an unfilled rect = %v", px)
	}
	edge := c.ToPixel(geom.V(-2, 0))
	if px := c.Img.RGBAAt(int(edge.X), int(edge.Y)); px.R < 0x80 {
		t.Errorf("outline pixel = %v, want bright", px)
	}
}

func TestText(t *testing.T) {
	if got := Transliterate("BTS = 2P / (πDT)"); got != "BTS = 2P / (piDT)" {
		t.Errorf("Transliterate = %q", got)
	}
	if got := revealed("abcd", 0.5); got != "ab" {
		t.Errorf("revealed = %q", got)
	}

	sc := scene.New()
	sc.Add(scene.NewText("t", "Load", 48, scene.White))
	c := NewCanvas(image.NewRGBA(image.Rect(0, 0, 640, 360)))
	c.DrawScene(sc, scene.Black)
	lit := 0
	for y := 150; y < 210; y++ {
		for x := 260; x < 380; x++ {
			if c.Img.RGBAAt(x, y).R > 0x80 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no text pixels drawn")
	}
}

func TestWriteGIF(t *testing.T) {
	r := newRenderer(t, 4)
	var calls int
	r.OnProgress(func(done, total int) {
		calls++
		if total != 7 {
			t.Errorf("total = %d, want 7", total)
		}
	})
	var buf bytes.Buffer
	if err := r.WriteGIF(context.Background(), &buf, boxTimeline(t)); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 7 {
		t.Errorf("frames = %d, want 7", len(g.Image))
	}
	if g.Delay[0] != 25 {
		t.Errorf("delay = %d, want 25", g.Delay[0])
	}
	if calls != 7 {
		t.Errorf("progress calls = %d", calls)
	}
}

func TestRenderFormats(t *testing.T) {
	dir := t.TempDir()
	r := newRenderer(t, 2)
	tl := boxTimeline(t)
	ctx := context.Background()

	n, err := r.Render(ctx, tl, FormatPNG, filepath.Join(dir, "frames"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("png frames = %d, want 4", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "frames", "frame_00003.png")); err != nil {
		t.Error(err)
	}

	svgPath := filepath.Join(dir, "out", "frame.svg")
	if n, err := r.Render(ctx, tl, FormatSVG, svgPath); err != nil || n != 1 {
		t.Fatalf("svg: n=%d err=%v", n, err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("not an svg document")
	}

	if _, err := r.Render(ctx, tl, Format("avi"), filepath.Join(dir, "x.avi")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := newRenderer(t, 10).WriteGIF(ctx, &buf, boxTimeline(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := New(Options{Width: 0, Height: 10, FPS: 10}); err == nil {
		t.Error("expected size error")
	}
	if _, err := New(Options{Width: 10, Height: 10}); err == nil {
		t.Error("expected fps error")
	}
}

func TestFramePool(t *testing.T) {
	p := NewFramePool(4, 4)
	img := p.Get()
	if img.Rect.Dx() != 4 {
		t.Fatalf("width = %d", img.Rect.Dx())
	}
	p.Put(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if got := p.Get(); got.Rect.Dx() != 4 {
		t.Errorf("pool returned a foreign buffer")
	}
}
