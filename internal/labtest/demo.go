package labtest

import (
	"fmt"

	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

const DefaultWatermark = "Balaji Bandaru (CE21D009)"

type Options struct {
	Watermark string
	// Rate, when set, replaces the rate of every animation.
	Rate      anim.RateFunc
}

func DefaultOptions() Options {
	return Options{Watermark: DefaultWatermark}
}

// Demo is a built demonstration ready to be played.
type Demo struct {
	Name        string
	Description string
	// PlotID names the plot whose tip is tracked while playing.
	PlotID   string
	Timeline *anim.Timeline
}

// Builder constructs a demonstration.
type Builder func(opts Options) (*Demo, error)

func finish(name, desc, plot string, tl *anim.Timeline) (*Demo, error) {
	if err := tl.Err(); err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return &Demo{Name: name, Description: desc, PlotID: plot, Timeline: tl}, nil
}

// watermark is the faint credit kept in the bottom-left corner.
func watermark(opts Options, size, opacity float64) *scene.Mobject {
	w := scene.NewText("watermark", opts.Watermark, size, scene.White)
	w.Opacity = opacity
	return w.ToCorner(geom.Down.Add(geom.Left), 0.2)
}

func idx(prefix string, i int) string { return fmt.Sprintf("%s_%d", prefix, i) }
