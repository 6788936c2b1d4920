package labtest

import (
	"math"

	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/curves"
	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

const (
	pistonTravel = 0.3
	peakStrain   = 3.5
)

// Cemented builds the cemented-clay triaxial demonstration: a stiff sample
// sheared to a peak, then a brittle fracture and sliding along the crack.
func Cemented(opts Options) (*Demo, error) {
	cemented, err := curves.Lookup("cemented")
	if err != nil {
		return nil, err
	}
	tl := anim.NewTimeline()
	if opts.Watermark != "" {
		tl.Add(watermark(opts, 14, 0.18))
	}

	cell := triaxialCell()
	ax := scene.NewAxes("axes", scene.Axes{
		XMin: 0, XMax: 15, XStep: 3,
		YMin: 0, YMax: 150, YStep: 30,
		XLength: 3.5, YLength: 3,
	}, scene.White)
	ax.Shift(geom.Right.Scale(4.5))
	xLabel := scene.NewMath("x_label", "ε", 24, scene.White).NextTo(ax.Bounds(), geom.Down, 0.2)
	yLabel := scene.NewMath("y_label", "q", 24, scene.White).NextTo(ax.Bounds(), geom.Left, 0.2).Rotate(math.Pi / 2)

	dark := scene.Filled(scene.DarkGray, scene.DarkGray, 1, 1.5)
	base := scene.NewRect("base", sampleW+0.5, 0.5, dark)
	base.MoveTo(geom.V(cell.Center().X, cell.Bottom().Y+0.25+0.1))

	pieceStyle := scene.Filled(scene.Orange, scene.Orange, 0.9, 0)
	sample := scene.NewRect("sample", sampleW, sampleH, scene.Filled(scene.Gold, scene.Orange, 0.9, 2))
	sample.MoveTo(geom.V(base.Center().X, base.Top().Y+sampleH/2))

	piston := scene.NewRect("piston", sampleW, pistonH, scene.Filled(scene.Gray, scene.Gray, 1, 1.5))
	piston.MoveTo(geom.V(sample.Center().X, sample.Top().Y+pistonH/2))
	ram := scene.NewRect("ram", ramW, ramH, dark)
	ram.MoveTo(geom.V(piston.Center().X, piston.Top().Y+ramH/2))

	cb := cell.Bounds()
	water := scene.NewRect("water", cb.Width()-0.2, cb.Height()-0.2, scene.Filled(scene.Blue, scene.Blue, 0.3, 0))
	water.MoveTo(cell.Center())
	inset := water.Width()/2 - 0.1
	surface := scene.NewLine("water_surface",
		water.Top().Add(geom.Left.Scale(inset)), water.Top().Add(geom.Right.Scale(inset)),
		scene.Stroked(scene.BlueB, 3))

	tl.PlayWith(2, opts.Rate,
		anim.FadeIn(cell), anim.FadeIn(water), anim.FadeIn(surface), anim.FadeIn(sample),
		anim.FadeIn(piston), anim.FadeIn(ram), anim.FadeIn(base),
		anim.Create(ax), anim.Write(xLabel), anim.Write(yLabel),
	)

	// ten confining arrows: three per side, four from below
	confStyle := scene.Stroked(scene.Blue, 2)
	c := sample.Center()
	var conf []anim.Animation
	for i := 0; i < 3; i++ {
		y := c.Y + float64(i-1)*sampleH*0.3
		conf = append(conf, anim.GrowArrow(scene.NewArrow(idx("conf_l", i),
			geom.V(c.X-sampleW/2-0.6, y), geom.V(c.X-sampleW/2+0.1, y), confStyle, 0.15)))
	}
	for i := 0; i < 3; i++ {
		y := c.Y + float64(i-1)*sampleH*0.3
		conf = append(conf, anim.GrowArrow(scene.NewArrow(idx("conf_r", i),
			geom.V(c.X+sampleW/2+0.6, y), geom.V(c.X+sampleW/2-0.1, y), confStyle, 0.15)))
	}
	baseTop := base.Top().Y
	for i := 0; i < 4; i++ {
		x := c.X + (float64(i)-1.5)*sampleW*0.3
		conf = append(conf, anim.GrowArrow(scene.NewArrow(idx("conf_b", i),
			geom.V(x, baseTop-0.4), geom.V(x, baseTop+0.1), confStyle, 0.15)))
	}
	tl.PlayWith(1.5, opts.Rate, conf...)
	tl.Wait(1)
	tl.Wait(0.5)

	ramTop := ram.Top()
	axial := scene.NewArrow("axial_arrow", ramTop.Add(geom.Up.Scale(0.5)), ramTop.Add(geom.Up.Scale(0.1)), scene.Stroked(scene.Red, 4), 0.15)
	tl.PlayWith(1, opts.Rate, anim.GrowArrow(axial))
	tl.Wait(0.5)

	// shearing with brittle failure
	qStyle := scene.Stroked(scene.RedE, 3)
	qPlot := func(xmax float64) *scene.Mobject {
		return scene.NewPlot("q_curve", *ax.Axes, cemented, 0, xmax, qStyle)
	}
	frac := Break(sample.Bounds())
	upper := scene.NewPolygon("upper_piece", frac.Upper, pieceStyle)
	lower := scene.NewPolygon("lower_piece", frac.Lower, pieceStyle)
	crack := scene.NewLine("crack", frac.Start, frac.End, scene.Stroked(scene.Yellow, 4))
	pistonStep := pistonTravel / (FractureStages * slideAfter)
	broken := false

	for i := 1; i < FractureStages; i++ {
		progress := float64(i) / float64(FractureStages-1)
		var step []anim.Animation
		if i == 1 {
			step = append(step, anim.Create(qPlot(15*progress)))
		} else {
			step = append(step, anim.Transform("q_curve", qPlot(15*progress)))
		}

		if !broken && i <= SlideStage() {
			step = append(step,
				anim.Shift("piston", geom.Down.Scale(pistonStep)),
				anim.Shift("ram", geom.Down.Scale(pistonStep)),
			)
		}

		switch {
		case i == FractureStage() && !broken:
			broken = true
			step = append(step,
				anim.FadeOut("sample"),
				anim.Create(crack),
				anim.FadeIn(lower),
				anim.FadeIn(upper),
			)
		case i > SlideStage() && broken:
			target := upper.Clone().Shift(frac.Direction().Scale(SlideOffset(i)))
			py := target.Top().Y + pistonH/2
			step = append(step,
				anim.Transform("upper_piece", target),
				anim.MoveTo("piston", geom.V(piston.Center().X, py)),
				anim.MoveTo("ram", geom.V(ram.Center().X, py+pistonH/2+ramH/2)),
			)
		}

		tl.PlayWith(ShearRunTime(i), opts.Rate, step...)
		tl.Wait(0.05)
	}
	tl.Wait(3)

	peak := scene.NewDot("peak", ax.Axes.C2P(peakStrain, cemented.Eval(peakStrain)), 0.1, scene.Yellow)
	tl.PlayWith(1.5, opts.Rate, anim.Transform("q_curve", qPlot(15)), anim.Create(peak))
	tl.Wait(3)

	return finish("cemented", "cemented clay triaxial test with brittle fracture", "q_curve", tl)
}
