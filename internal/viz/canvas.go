package viz

import (
	"math"
	"strings"

	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// Canvas is a grid of braille characters, each holding 2x4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// project maps a scene point to dots, keeping the 16:9 frame centred.
func (c *Canvas) project(p geom.Vec2) (int, int) {
	cw, ch := float64(c.Width*2), float64(c.Height*4)
	s := math.Min(cw/scene.FrameWidth, ch/scene.FrameHeight)
	x := (cw-s*scene.FrameWidth)/2 + (p.X+scene.FrameWidth/2)*s
	y := (ch-s*scene.FrameHeight)/2 + (scene.FrameHeight/2-p.Y)*s
	return int(math.Round(x)), int(math.Round(y))
}

// DrawScene outlines every visible path of sc. Text is not drawn.
func (c *Canvas) DrawScene(sc *scene.Scene) {
	for _, m := range sc.Mobjects() {
		if m.Opacity <= 0.05 || m.Reveal <= 0 || m.Kind == scene.KindText || m.Kind == scene.KindMath {
			continue
		}
		for _, p := range m.Paths {
			pts := geom.Partial(p.Points, p.Closed, m.Reveal)
			c.drawPolyline(pts)
		}
	}
}

func (c *Canvas) drawPolyline(pts []geom.Vec2) {
	if len(pts) == 1 {
		c.Set(c.project(pts[0]))
		return
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := c.project(pts[i-1])
		x1, y1 := c.project(pts[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
