package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/soillab/internal/scene"
)

// Simulator plays a Source at a fixed frame rate, feeding every frame to its
// metrics and observers.
type Simulator struct {
	src       Source
	metrics   []Metric
	observers []Observer
}

func New(src Source) *Simulator {
	return &Simulator{
		src:       src,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// FrameCount is the number of frames Run will produce at fps.
func FrameCount(duration, fps float64) int {
	return int(math.Floor(duration*fps+1e-9)) + 1
}

// Run samples frames at t = i/fps from 0 to the end of the source, both ends
// included. A cancelled context stops the run and returns the partial result.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	n := FrameCount(s.src.Duration(), cfg.FPS)
	result := &Result{
		FPS:     cfg.FPS,
		Samples: make([]Sample, 0, n),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		f := s.frame(i, float64(i)/cfg.FPS, cfg.PlotID)
		if !f.IsValid() {
			s.collect(result)
			return result, SimError{Time: f.Time, Frame: i, Message: "curve tip is not finite"}
		}

		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, obs := range s.observers {
			obs.OnFrame(f)
		}

		result.Samples = append(result.Samples, Sample{
			Time:    f.Time,
			Segment: f.Segment,
			Tip:     f.Tip,
			Visible: f.Scene.Visible(),
		})
	}

	s.collect(result)
	return result, nil
}

// FrameAt evaluates a single frame without touching metrics or observers.
func (s *Simulator) FrameAt(t float64, plotID string) Frame {
	return s.frame(-1, t, plotID)
}

func (s *Simulator) frame(i int, t float64, plotID string) Frame {
	sc := s.src.Frame(t)
	return Frame{
		Index:   i,
		Time:    t,
		Segment: s.src.SegmentAt(t),
		Scene:   sc,
		Tip:     TipOf(sc, plotID),
	}
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// TipOf reads the drawn end of plot id in sc, or of the topmost visible plot
// when id is empty.
func TipOf(sc *scene.Scene, id string) Tip {
	var m *scene.Mobject
	var ok bool
	if id == "" {
		m, ok = sc.FirstPlot()
	} else {
		m, ok = sc.Get(id)
	}
	if !ok || m.Plot == nil {
		return Tip{}
	}
	x, y := m.Plot.Tip()
	return Tip{X: x, Y: y, Valid: true}
}

func validateConfig(cfg Config) error {
	if cfg.FPS <= 0 || math.IsNaN(cfg.FPS) {
		return fmt.Errorf("fps must be positive, got %v", cfg.FPS)
	}
	return nil
}

// SimError reports a frame that could not be played.
type SimError struct {
	Time    float64
	Frame   int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d at t=%.4f: %s", e.Frame, e.Time, e.Message)
}
