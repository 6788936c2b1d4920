package geom

import "math"

// Bounds returns the bounding box of pts. An empty slice yields a zero box.
func Bounds(pts []Vec2) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Shift returns a translated copy of pts.
func Shift(pts []Vec2, d Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = p.Add(d)
	}
	return out
}

// RotateAbout returns a copy of pts rotated by angle about c.
func RotateAbout(pts []Vec2, angle float64, c Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = p.Rotate(angle, c)
	}
	return out
}

// ScaleAbout returns a copy of pts scaled by s about c.
func ScaleAbout(pts []Vec2, s float64, c Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = c.Add(p.Sub(c).Scale(s))
	}
	return out
}

// SignedArea is the shoelace area of a closed polygon, positive when the
// vertices run counter-clockwise.
func SignedArea(poly []Vec2) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += poly[i].Cross(poly[(i+1)%n])
	}
	return sum / 2
}

// Area is the unsigned polygon area.
func Area(poly []Vec2) float64 { return math.Abs(SignedArea(poly)) }

// Centroid is the area centroid of a closed polygon, falling back to the
// vertex mean for degenerate polygons.
func Centroid(poly []Vec2) Vec2 {
	a := SignedArea(poly)
	if math.Abs(a) < 1e-12 {
		var c Vec2
		for _, p := range poly {
			c = c.Add(p)
		}
		if len(poly) > 0 {
			c = c.Scale(1 / float64(len(poly)))
		}
		return c
	}
	var cx, cy float64
	n := len(poly)
	for i := 0; i < n; i++ {
		p, q := poly[i], poly[(i+1)%n]
		cr := p.Cross(q)
		cx += (p.X + q.X) * cr
		cy += (p.Y + q.Y) * cr
	}
	return Vec2{cx / (6 * a), cy / (6 * a)}
}

// PathLength is the arc length of pts, including the closing edge if closed.
func PathLength(pts []Vec2, closed bool) float64 {
	if len(pts) < 2 {
		return 0
	}
	l := 0.0
	for i := 1; i < len(pts); i++ {
		l += pts[i].Sub(pts[i-1]).Length()
	}
	if closed {
		l += pts[0].Sub(pts[len(pts)-1]).Length()
	}
	return l
}

// Resample returns n points spaced evenly by arc length along pts. Closed
// paths are walked around their closing edge and the first point is kept.
func Resample(pts []Vec2, closed bool, n int) []Vec2 {
	if n <= 0 || len(pts) == 0 {
		return nil
	}
	out := make([]Vec2, n)
	if len(pts) == 1 || n == 1 {
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	ring := pts
	if closed {
		ring = append(append(make([]Vec2, 0, len(pts)+1), pts...), pts[0])
	}
	total := PathLength(ring, false)
	if total == 0 {
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	// closed paths are sampled on [0, total) so the start is not duplicated
	div := float64(n - 1)
	if closed {
		div = float64(n)
	}

	seg, segStart := 1, 0.0
	segLen := ring[1].Sub(ring[0]).Length()
	for i := 0; i < n; i++ {
		d := total * float64(i) / div
		for seg < len(ring)-1 && d > segStart+segLen {
			segStart += segLen
			seg++
			segLen = ring[seg].Sub(ring[seg-1]).Length()
		}
		a := 0.0
		if segLen > 0 {
			a = (d - segStart) / segLen
		}
		out[i] = ring[seg-1].Lerp(ring[seg], math.Min(math.Max(a, 0), 1))
	}
	return out
}

// Partial returns the leading fraction of pts by arc length. For closed
// paths the closing edge is part of the walk and the result is open.
func Partial(pts []Vec2, closed bool, frac float64) []Vec2 {
	if frac >= 1 {
		out := append([]Vec2(nil), pts...)
		if closed && len(pts) > 1 {
			out = append(out, pts[0])
		}
		return out
	}
	if frac <= 0 || len(pts) == 0 {
		return nil
	}
	ring := pts
	if closed {
		ring = append(append(make([]Vec2, 0, len(pts)+1), pts...), pts[0])
	}
	target := PathLength(ring, false) * frac
	out := []Vec2{ring[0]}
	walked := 0.0
	for i := 1; i < len(ring); i++ {
		l := ring[i].Sub(ring[i-1]).Length()
		if walked+l >= target {
			a := 0.0
			if l > 0 {
				a = (target - walked) / l
			}
			return append(out, ring[i-1].Lerp(ring[i], a))
		}
		walked += l
		out = append(out, ring[i])
	}
	return out
}

// LerpPoints interpolates two point lists of equal length.
func LerpPoints(a, b []Vec2, alpha float64) []Vec2 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]Vec2, n)
	for i := 0; i < n; i++ {
		out[i] = a[i].Lerp(b[i], alpha)
	}
	return out
}

// SplitByLine cuts a convex polygon with the infinite line through a and b.
// left holds the part on the left of a→b (counter-clockwise side), right the
// rest. Either piece may be empty when the line misses the polygon.
func SplitByLine(poly []Vec2, a, b Vec2) (left, right []Vec2) {
	dir := b.Sub(a)
	side := func(p Vec2) float64 { return dir.Cross(p.Sub(a)) }

	n := len(poly)
	for i := 0; i < n; i++ {
		p, q := poly[i], poly[(i+1)%n]
		sp, sq := side(p), side(q)

		if sp >= 0 {
			left = append(left, p)
		}
		if sp <= 0 {
			right = append(right, p)
		}
		if (sp > 0 && sq < 0) || (sp < 0 && sq > 0) {
			x := p.Lerp(q, sp/(sp-sq))
			left = append(left, x)
			right = append(right, x)
		}
	}
	if len(left) < 3 {
		left = nil
	}
	if len(right) < 3 {
		right = nil
	}
	return left, right
}
