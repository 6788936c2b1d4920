package scene

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/san-kum/soillab/internal/curves"
	"github.com/san-kum/soillab/internal/geom"
)

func TestLayout(tst *testing.T) {
	box := NewRect("box", 2, 2, Stroked(White, DefaultStroke))

	lbl := NewRect("lbl", 1, 0.5, Stroked(White, DefaultStroke))
	lbl.NextTo(box.Bounds(), geom.Up, 0.2)
	chk.Float64(tst, "next_to up: bottom", 1e-14, lbl.Bottom().Y, 1.2)
	chk.Float64(tst, "next_to up: centred", 1e-14, lbl.Center().X, 0)

	lbl.NextTo(box.Bounds(), geom.Left, 0.4)
	chk.Float64(tst, "next_to left: right edge", 1e-14, lbl.Right().X, -1.4)
	chk.Float64(tst, "next_to left: centred", 1e-14, lbl.Center().Y, 0)

	c := NewRect("c", 1, 1, Stroked(White, DefaultStroke))
	c.ToCorner(geom.Down.Add(geom.Left), 0.2)
	b := c.Bounds()
	chk.Float64(tst, "corner x", 1e-14, b.Min.X, -FrameWidth/2+0.2)
	chk.Float64(tst, "corner y", 1e-14, b.Min.Y, -FrameHeight/2+0.2)

	e := NewRect("e", 1, 1, Stroked(White, DefaultStroke)).Shift(geom.V(1, 0))
	e.ToEdge(geom.Down, 0.7)
	chk.Float64(tst, "edge keeps x", 1e-14, e.Center().X, 1)
	chk.Float64(tst, "edge y", 1e-14, e.Bottom().Y, -FrameHeight/2+0.7)
}

func TestMoveToAndClone(tst *testing.T) {
	r := NewRoundedRect("cell", 4.5, 6, 0.2, Stroked(BlueE, 2))
	r.MoveTo(geom.V(0, -0.5))
	chk.Float64(tst, "cy", 1e-14, r.Center().Y, -0.5)
	chk.Float64(tst, "h", 1e-14, r.Height(), 6)

	c := r.Clone()
	c.Shift(geom.V(1, 1))
	if r.Center().ApproxEqual(c.Center(), 1e-9) {
		tst.Errorf("clone shares points with the original")
	}
}

func TestArrow(tst *testing.T) {
	a := NewArrow("a", geom.V(0, 2.3), geom.V(0, 2), Stroked(Red, 4), 0.18)
	if !a.End().ApproxEqual(geom.V(0, 2), 1e-15) {
		tst.Errorf("end: %v", a.End())
	}
	if !a.Start().ApproxEqual(geom.V(0, 2.3), 1e-15) {
		tst.Errorf("start: %v", a.Start())
	}
	if len(a.Paths) != 2 || !a.Paths[1].Solid {
		tst.Errorf("arrow should have a shaft and a solid tip: %+v", a.Paths)
	}

	d := NewDoubleArrow("d", geom.V(-2, 0), geom.V(2, 0), 0.05, Stroked(Yellow, 4))
	chk.Float64(tst, "double width", 1e-14, d.Width(), 3.9)
}

func TestAxesAndPlot(tst *testing.T) {
	a := Axes{XMin: 0, XMax: 10, XStep: 2, YMin: 0, YMax: 100, YStep: 20, XLength: 3, YLength: 2.5}
	ax := NewAxes("axes", a, White)
	ax.Shift(geom.Right.Scale(4))

	lo := ax.Axes.C2P(0, 0)
	hi := ax.Axes.C2P(10, 100)
	chk.Float64(tst, "lo x", 1e-14, lo.X, 2.5)
	chk.Float64(tst, "lo y", 1e-14, lo.Y, -1.25)
	chk.Float64(tst, "hi x", 1e-14, hi.X, 5.5)
	chk.Float64(tst, "hi y", 1e-14, hi.Y, 1.25)

	x, y := ax.Axes.P2C(geom.V(4, 0))
	chk.Float64(tst, "p2c x", 1e-14, x, 5)
	chk.Float64(tst, "p2c y", 1e-12, y, 50)

	// two axis lines, 6 x ticks, 6 y ticks
	if len(ax.Paths) != 14 {
		tst.Errorf("axes paths: got %d", len(ax.Paths))
	}

	clay, _ := curves.Lookup("clay")
	full := NewPlot("q", *ax.Axes, clay, 0, 10, Stroked(RedE, 4))
	if n := len(full.Paths[0].Points); n != plotSamples+1 {
		tst.Errorf("full plot samples: got %d", n)
	}
	half := NewPlot("q", *ax.Axes, clay, 0, 5, Stroked(RedE, 4))
	if n := len(half.Paths[0].Points); n != plotSamples/2+1 {
		tst.Errorf("half plot samples: got %d", n)
	}
	tx, ty := half.Plot.Tip()
	chk.Float64(tst, "tip x", 1e-15, tx, 5)
	chk.Float64(tst, "tip y", 1e-12, ty, 88*5/5.3)

	empty := NewPlot("q", *ax.Axes, clay, 0, 0, Stroked(RedE, 4))
	if len(empty.Paths[0].Points) != 2 {
		tst.Errorf("empty plot should be a degenerate segment")
	}

	// shifting a plot keeps its axes in step
	half.Shift(geom.V(0, 1))
	end := half.Paths[0].Points[len(half.Paths[0].Points)-1]
	if !end.ApproxEqual(half.Plot.Axes.C2P(tx, ty), 1e-12) {
		tst.Errorf("plot tip drifted from its axes: %v", end)
	}
}

func TestSceneOrder(tst *testing.T) {
	sc := New()
	a := NewCircle("a", 1, Stroked(White, 2))
	b := NewCircle("b", 1, Stroked(White, 2))
	sc.Add(a, b)
	sc.Add(NewCircle("a", 2, Stroked(White, 2)))

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"re-add moves to top", sc.IDs(), []string{"b", "a"}},
	}
	for _, tt := range tests {
		if len(tt.got) != len(tt.want) {
			tst.Fatalf("%s: got %v want %v", tt.name, tt.got, tt.want)
		}
		for i := range tt.got {
			if tt.got[i] != tt.want[i] {
				tst.Errorf("%s: got %v want %v", tt.name, tt.got, tt.want)
			}
		}
	}

	m, ok := sc.Get("a")
	if !ok || m.Width() < 3.9 {
		tst.Errorf("replacement not stored")
	}

	c := sc.Clone()
	c.Remove("b")
	m2, _ := c.Get("a")
	m2.Opacity = 0
	if sc.Len() != 2 || m.Opacity != 1 {
		tst.Errorf("clone is not independent")
	}
	if c.Visible() != 0 {
		tst.Errorf("visible: got %d", c.Visible())
	}

	if sc.Remove("missing") {
		tst.Errorf("removing a missing id should report false")
	}
}

func TestColors(tst *testing.T) {
	if HexString(Red) != "#fc6255" {
		tst.Errorf("red: %s", HexString(Red))
	}
	if _, err := ParseHex("fc6255"); err == nil {
		tst.Errorf("missing # should fail")
	}
	mid := LerpColor(Black, White, 0.5)
	if mid.R != 128 || mid.A != 255 {
		tst.Errorf("lerp: %v", mid)
	}
}
