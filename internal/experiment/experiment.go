package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/labtest"
	"github.com/san-kum/soillab/internal/render"
	"github.com/san-kum/soillab/internal/sim"
)

type Config struct {
	Scene   string
	Options labtest.Options
	// FPS is the playback rate used for sampling and rendering.
	FPS float64
}

// Experiment builds one demonstration, plays it through the frame player and
// optionally renders it.
type Experiment struct {
	cfg       Config
	reg       *Registry
	log       *log.Logger
	demo      *labtest.Demo
	simulator *sim.Simulator
}

func New(cfg Config, reg *Registry, logger *log.Logger) *Experiment {
	if logger == nil {
		logger = log.Default()
	}
	return &Experiment{cfg: cfg, reg: reg, log: logger.With("scene", cfg.Scene)}
}

// Setup builds the scene and attaches the default metrics.
func (e *Experiment) Setup() error {
	start := time.Now()
	demo, err := e.reg.Build(e.cfg.Scene, e.cfg.Options)
	if err != nil {
		return err
	}
	e.demo = demo
	e.simulator = sim.New(demo.Timeline)
	for _, m := range e.reg.DefaultMetrics(e.cfg.Scene) {
		e.simulator.AddMetric(m)
	}

	segs := demo.Timeline.Segments()
	e.log.Debug("built timeline", "segments", len(segs), "duration", demo.Timeline.Duration(), "took", time.Since(start))
	for _, s := range segs {
		e.log.Debug("segment", "index", s.Index, "start", fmt.Sprintf("%.2f", s.Start), "duration", s.Duration, "anims", s.Names())
	}
	return nil
}

func (e *Experiment) Demo() *labtest.Demo { return e.demo }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator { return e.simulator }

// SegmentLogger logs at debug level whenever playback enters another of segs.
func SegmentLogger(logger *log.Logger, segs []anim.Segment) sim.Observer {
	last := -1
	return sim.ObserverFunc(func(f sim.Frame) {
		if f.Segment < 0 || f.Segment >= len(segs) || f.Segment == last {
			return
		}
		last = f.Segment
		logger.Debug("segment", "index", f.Segment, "at", fmt.Sprintf("%.2f", f.Time), "anims", segs[f.Segment].Names())
	})
}

// Run plays the timeline at the configured frame rate.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	start := time.Now()
	result, err := e.simulator.Run(ctx, sim.Config{FPS: e.cfg.FPS, PlotID: e.demo.PlotID})
	if err != nil {
		return result, fmt.Errorf("play %s: %w", e.cfg.Scene, err)
	}
	e.log.Info("played", "frames", result.Frames(), "took", time.Since(start).Round(time.Millisecond))
	return result, nil
}

// Render writes the timeline with opts and logs progress every tenth of the
// frames. It returns the number of frames written.
func (e *Experiment) Render(ctx context.Context, opts render.Options, format render.Format, out string) (int, error) {
	if e.demo == nil {
		return 0, fmt.Errorf("experiment not setup")
	}
	opts.FPS = e.cfg.FPS
	r, err := render.New(opts)
	if err != nil {
		return 0, err
	}
	step := 0
	r.OnProgress(func(done, total int) {
		if pct := done * 10 / total; pct > step || done == total {
			step = pct
			e.log.Info("rendering", "frame", done, "of", total)
		}
	})

	start := time.Now()
	e.log.Info("render", "format", format, "size", fmt.Sprintf("%dx%d", opts.Width, opts.Height), "fps", opts.FPS, "workers", opts.Workers)
	n, err := r.Render(ctx, e.demo.Timeline, format, out)
	if err != nil {
		return n, fmt.Errorf("render %s: %w", e.cfg.Scene, err)
	}
	e.log.Info("wrote", "path", out, "frames", n, "took", time.Since(start).Round(time.Millisecond))
	return n, nil
}
