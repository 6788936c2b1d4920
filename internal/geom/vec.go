package geom

import "math"

// Vec2 is a point or direction in scene units, y up.
type Vec2 struct {
	X, Y float64
}

// Common directions.
var (
	Origin = Vec2{}
	Up     = Vec2{0, 1}
	Down   = Vec2{0, -1}
	Left   = Vec2{-1, 0}
	Right  = Vec2{1, 0}
)

func V(x, y float64) Vec2 { return Vec2{x, y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) Length() float64      { return math.Hypot(v.X, v.Y) }
func (v Vec2) Normalize() Vec2 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec2{}
}

// Lerp interpolates between v (a=0) and o (a=1).
func (v Vec2) Lerp(o Vec2, a float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*a, v.Y + (o.Y-v.Y)*a}
}

// Rotate turns v by angle radians counter-clockwise about c.
func (v Vec2) Rotate(angle float64, c Vec2) Vec2 {
	s, co := math.Sin(angle), math.Cos(angle)
	d := v.Sub(c)
	return Vec2{c.X + d.X*co - d.Y*s, c.Y + d.X*s + d.Y*co}
}

// ApproxEqual reports whether v and o are within tol in both coordinates.
func (v Vec2) ApproxEqual(o Vec2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec2
}

func (b Box) Width() float64  { return b.Max.X - b.Min.X }
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }
func (b Box) Center() Vec2    { return b.Min.Lerp(b.Max, 0.5) }

// Corner returns the box corner in direction dir, e.g. Up+Left.
func (b Box) Corner(dir Vec2) Vec2 {
	c := b.Center()
	return Vec2{c.X + sign(dir.X)*b.Width()/2, c.Y + sign(dir.Y)*b.Height()/2}
}

// Union grows b to contain o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Vec2{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec2{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
