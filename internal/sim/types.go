package sim

import (
	"math"

	"github.com/san-kum/soillab/internal/scene"
)

// Source is a timeline that can be sampled at arbitrary times.
type Source interface {
	Duration() float64
	Frame(t float64) *scene.Scene
	SegmentAt(t float64) int
}

// Tip is the drawn end of the tracked plot.
type Tip struct {
	X, Y  float64
	Valid bool
}

// Frame is one sampled scene.
type Frame struct {
	Index   int
	Time    float64
	Segment int
	Scene   *scene.Scene
	Tip     Tip
}

// IsValid reports whether the tip, when present, is finite.
func (f Frame) IsValid() bool {
	if !f.Tip.Valid {
		return true
	}
	return !math.IsNaN(f.Tip.X) && !math.IsNaN(f.Tip.Y) && !math.IsInf(f.Tip.X, 0) && !math.IsInf(f.Tip.Y, 0)
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Config struct {
	FPS float64
	// PlotID selects the plot whose tip is recorded; empty picks the topmost
	// visible plot.
	PlotID string
}

// Sample is the per-frame record kept in a Result.
type Sample struct {
	Time    float64
	Segment int
	Tip     Tip
	Visible int
}

type Result struct {
	FPS     float64
	Samples []Sample
	Metrics map[string]float64
}

// Frames is the number of frames played.
func (r *Result) Frames() int { return len(r.Samples) }
