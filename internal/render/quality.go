package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownQuality = errors.New("unknown quality")
	ErrUnknownFormat  = errors.New("unknown format")
)

// Quality is a render resolution and frame rate.
type Quality struct {
	Name   string
	Width  int
	Height int
	FPS    float64
}

var qualities = map[string]Quality{
	"low":    {Name: "low", Width: 854, Height: 480, FPS: 15},
	"medium": {Name: "medium", Width: 1280, Height: 720, FPS: 30},
	"high":   {Name: "high", Width: 1920, Height: 1080, FPS: 60},
	"4k":     {Name: "4k", Width: 3840, Height: 2160, FPS: 60},
}

// LookupQuality returns the named preset. Names are case-insensitive and the
// single-letter flags l, m, h and k are accepted.
func LookupQuality(name string) (Quality, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "l":
		name = "low"
	case "m":
		name = "medium"
	case "h":
		name = "high"
	case "k":
		name = "4k"
	}
	q, ok := qualities[name]
	if !ok {
		return Quality{}, fmt.Errorf("%w: %q", ErrUnknownQuality, name)
	}
	return q, nil
}

// Qualities lists the presets from lowest to highest resolution.
func Qualities() []Quality {
	out := make([]Quality, 0, len(qualities))
	for _, q := range qualities {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Width < out[j].Width })
	return out
}

type Format string

const (
	FormatGIF Format = "gif"
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatGIF, FormatPNG, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}
