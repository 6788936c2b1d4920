package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/soillab/internal/export"
	"github.com/san-kum/soillab/internal/sim"
)

// Options controls a render.
type Options struct {
	Width      int
	Height     int
	FPS        float64
	Workers    int
	Background color.RGBA
	// At is the time of the frame written by the SVG encoder.
	At float64
}

// Progress is called after each frame is encoded.
type Progress func(done, total int)

// Renderer rasterises a timeline and encodes the frames.
type Renderer struct {
	opts     Options
	pool     *FramePool
	progress Progress
}

func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 || math.IsNaN(opts.FPS) || math.IsInf(opts.FPS, 0) {
		return nil, fmt.Errorf("render: fps must be positive, got %v", opts.FPS)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Renderer{opts: opts, pool: NewFramePool(opts.Width, opts.Height)}, nil
}

func (r *Renderer) OnProgress(p Progress) { r.progress = p }

// Frame rasterises src at time t into a new image.
func (r *Renderer) Frame(src sim.Source, t float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	NewCanvas(img).DrawScene(src.Frame(t), r.opts.Background)
	return img
}

// frames rasterises every frame of src in batches. Within a batch frames are
// drawn concurrently and converted by post; emit then sees them in order.
func (r *Renderer) frames(ctx context.Context, src sim.Source, post func(*image.RGBA) image.Image, emit func(i int, img image.Image) error) error {
	total := sim.FrameCount(src.Duration(), r.opts.FPS)
	batch := r.opts.Workers * 4
	out := make([]image.Image, batch)

	for start := 0; start < total; start += batch {
		n := min(batch, total-start)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.opts.Workers)
		for k := 0; k < n; k++ {
			k := k
			i := start + k
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img := r.pool.Get()
				NewCanvas(img).DrawScene(src.Frame(float64(i)/r.opts.FPS), r.opts.Background)
				out[k] = post(img)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for k := 0; k < n; k++ {
			if err := emit(start+k, out[k]); err != nil {
				return err
			}
			if rgba, ok := out[k].(*image.RGBA); ok {
				r.pool.Put(rgba)
			}
			out[k] = nil
			if r.progress != nil {
				r.progress(start+k+1, total)
			}
		}
	}
	return nil
}

// WriteGIF encodes every frame of src as an infinitely looping GIF.
func (r *Renderer) WriteGIF(ctx context.Context, w io.Writer, src sim.Source) error {
	delay := max(int(math.Round(100/r.opts.FPS)), 1)
	anim := gif.GIF{LoopCount: 0}
	post := func(img *image.RGBA) image.Image {
		p := image.NewPaletted(img.Rect, palette.Plan9)
		draw.FloydSteinberg.Draw(p, img.Rect, img, image.Point{})
		r.pool.Put(img)
		return p
	}
	err := r.frames(ctx, src, post, func(_ int, img image.Image) error {
		anim.Image = append(anim.Image, img.(*image.Paletted))
		anim.Delay = append(anim.Delay, delay)
		return nil
	})
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// WritePNGs writes frame_00000.png, frame_00001.png, ... into dir and returns
// the number of frames written.
func (r *Renderer) WritePNGs(ctx context.Context, dir string, src sim.Source) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	written := 0
	identity := func(img *image.RGBA) image.Image { return img }
	err := r.frames(ctx, src, identity, func(i int, img image.Image) error {
		path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))
		if err := writePNG(path, img); err != nil {
			return err
		}
		written++
		return nil
	})
	return written, err
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// WriteSVG writes the frame at Options.At as SVG.
func (r *Renderer) WriteSVG(w io.Writer, src sim.Source) error {
	return export.WriteSVG(w, src.Frame(r.opts.At), r.opts.Width, r.opts.Height, r.opts.Background)
}

// Render writes src to out in the given format. GIF and SVG go to a single
// file; PNG frames go to the directory out. It returns the number of frames
// written.
func (r *Renderer) Render(ctx context.Context, src sim.Source, format Format, out string) (int, error) {
	switch format {
	case FormatPNG:
		return r.WritePNGs(ctx, out, src)
	case FormatGIF, FormatSVG:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if format == FormatSVG {
		if err := r.WriteSVG(f, src); err != nil {
			return 0, err
		}
		return 1, f.Close()
	}
	if err := r.WriteGIF(ctx, f, src); err != nil {
		return 0, err
	}
	return sim.FrameCount(src.Duration(), r.opts.FPS), f.Close()
}
