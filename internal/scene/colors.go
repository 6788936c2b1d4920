package scene

import (
	"fmt"
	"image/color"
	"strconv"
)

// Palette used by the demonstrations.
var (
	White    = Hex("#FFFFFF")
	Black    = Hex("#000000")
	Gray     = Hex("#888888")
	GrayB    = Hex("#BBBBBB")
	DarkGray = Hex("#444444")
	Red      = Hex("#FC6255")
	RedE     = Hex("#CF5044")
	Blue     = Hex("#58C4DD")
	BlueB    = Hex("#9CDCEB")
	BlueE    = Hex("#1C758A")
	Gold     = Hex("#F0AC5F")
	GoldE    = Hex("#C78D46")
	Orange   = Hex("#FF862F")
	Yellow   = Hex("#FFFF00")
	Green    = Hex("#83C167")
)

// Hex parses #RRGGBB. Malformed input yields opaque white.
func Hex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return c
}

// ParseHex parses #RRGGBB into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

// HexString formats c as #rrggbb.
func HexString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// LerpColor interpolates two opaque colours channel by channel.
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{l(a.R, b.R), l(a.G, b.G), l(a.B, b.B), l(a.A, b.A)}
}
