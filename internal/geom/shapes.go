package geom

import "math"

// RectPoints returns the corners of a w×h rectangle centred on c, starting at
// the upper-right corner and running counter-clockwise.
func RectPoints(c Vec2, w, h float64) []Vec2 {
	hw, hh := w/2, h/2
	return []Vec2{
		{c.X + hw, c.Y + hh},
		{c.X - hw, c.Y + hh},
		{c.X - hw, c.Y - hh},
		{c.X + hw, c.Y - hh},
	}
}

// CirclePoints tessellates a circle into n points, counter-clockwise from the
// rightmost point.
func CirclePoints(c Vec2, r float64, n int) []Vec2 {
	pts := make([]Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Vec2{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
	}
	return pts
}

// RoundedRectPoints tessellates a rectangle with rounded corners, using segs
// points per corner arc.
func RoundedRectPoints(c Vec2, w, h, r float64, segs int) []Vec2 {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 || segs < 2 {
		return RectPoints(c, w, h)
	}
	hw, hh := w/2-r, h/2-r
	centres := []Vec2{
		{c.X + hw, c.Y + hh},
		{c.X - hw, c.Y + hh},
		{c.X - hw, c.Y - hh},
		{c.X + hw, c.Y - hh},
	}
	pts := make([]Vec2, 0, 4*segs)
	for k, cc := range centres {
		start := float64(k) * math.Pi / 2
		for i := 0; i < segs; i++ {
			a := start + (math.Pi/2)*float64(i)/float64(segs-1)
			pts = append(pts, Vec2{cc.X + r*math.Cos(a), cc.Y + r*math.Sin(a)})
		}
	}
	return pts
}

// ArrowTip returns the triangle at the end of the segment start→end. The tip
// length is tipLen capped at maxRatio of the segment length.
func ArrowTip(start, end Vec2, tipLen, maxRatio float64) []Vec2 {
	d := end.Sub(start)
	l := d.Length()
	if l == 0 {
		return nil
	}
	tip := math.Min(tipLen, maxRatio*l)
	u := d.Scale(1 / l)
	n := Vec2{-u.Y, u.X}
	base := end.Sub(u.Scale(tip))
	return []Vec2{end, base.Add(n.Scale(tip / 2)), base.Sub(n.Scale(tip / 2))}
}

// BulgeProfile is the outline of a sample bulging under axial load. The sample
// stands on baseY with end width w and height h; at mid-height its width is
// w·midRatio, following a half sine along the height. Each side carries n
// points. Vertices run up the left side and back down the right side.
func BulgeProfile(baseY, w, h, midRatio float64, n int) []Vec2 {
	if n < 2 {
		n = 2
	}
	maxHalf := (w*midRatio - w) / 2
	left := make([]Vec2, n)
	right := make([]Vec2, n)
	for i := 0; i < n; i++ {
		r := float64(i) / float64(n-1)
		y := baseY + h*r
		added := maxHalf * math.Sin(math.Pi*r)
		left[i] = Vec2{-w/2 - added, y}
		right[i] = Vec2{w/2 + added, y}
	}
	pts := make([]Vec2, 0, 2*n)
	pts = append(pts, left...)
	for i := n - 1; i >= 0; i-- {
		pts = append(pts, right[i])
	}
	return pts
}
