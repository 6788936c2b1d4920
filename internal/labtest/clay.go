package labtest

import (
	"github.com/cpmech/gosl/utl"
	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/curves"
	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

// Triaxial cell and clay sample.
const (
	sampleH       = 4.0
	sampleW       = 2.0
	pistonH       = 0.5
	ramH          = 1.2
	ramW          = 0.6
	consolRatio   = 0.95
	sideArrows    = 8
	shearDuration = 15.0
	volumeSplit   = 0.7
)

func triaxialCell() *scene.Mobject {
	cell := scene.NewRoundedRect("cell", 4.5, 6, 0.2, scene.Filled(scene.BlueE, scene.BlueE, 0.05, 2))
	return cell.Shift(geom.Down.Scale(0.5))
}

// Clay builds the clay triaxial demonstration: consolidation under confining
// pressure, then shearing with a bulging sample and a hyperbolic q curve.
func Clay(opts Options) (*Demo, error) {
	clay, err := curves.Lookup("clay")
	if err != nil {
		return nil, err
	}
	volume, err := curves.Lookup("consolidation")
	if err != nil {
		return nil, err
	}
	tl := anim.NewTimeline()

	cell := triaxialCell()
	ax := scene.NewAxes("axes", scene.Axes{
		XMin: 0, XMax: 10, XStep: 2,
		YMin: 0, YMax: 100, YStep: 20,
		XLength: 3, YLength: 2.5,
	}, scene.White)
	ax.Shift(geom.Right.Scale(4))
	xLabel := scene.NewText("x_label", "Axial Strain (%)", 16, scene.White).NextTo(ax.Bounds(), geom.Down, 0.2)
	yLabel := scene.NewMath("y_label", "q", 32, scene.White).NextTo(ax.Bounds(), geom.Left, 0.4)

	steel := scene.Filled(scene.Gray, scene.Gray, 1, 1.5)
	piston := scene.NewRect("piston", 2.2, pistonH, steel).NextTo(cell.Bounds(), geom.Up, 0)
	ram := scene.NewRect("ram", ramW, ramH, scene.Filled(scene.DarkGray, scene.DarkGray, 1, 1.5)).NextTo(piston.Bounds(), geom.Up, 0)
	base := scene.NewRect("base", 2.2, 0.5, steel).NextTo(cell.Bounds(), geom.Down, 0)

	sampleStyle := scene.Filled(scene.Gold, scene.GoldE, 0.9, 1.5)
	baseTop := base.Top().Y
	sample := scene.NewRect("sample", sampleW, sampleH, sampleStyle).MoveTo(geom.V(0, baseTop+sampleH/2))

	tl.PlayWith(1.5, opts.Rate,
		anim.FadeIn(cell), anim.FadeIn(sample), anim.FadeIn(piston), anim.FadeIn(ram), anim.FadeIn(base),
		anim.Create(ax), anim.Write(xLabel), anim.Write(yLabel),
	)
	if opts.Watermark != "" {
		tl.Add(watermark(opts, 12, 1))
	}

	// confining pressure
	confStyle := scene.Stroked(scene.Blue, 1.8)
	left, right := sample.Left().X, sample.Right().X
	labelRef := scene.NewArrow("", geom.V(right+0.4, sample.Center().Y), geom.V(right-0.1, sample.Center().Y), confStyle, 0.15)
	sigma3 := scene.NewMath("sigma3", "σ₃", 32, scene.Blue).NextTo(labelRef.Bounds(), geom.Right, 0.2)
	var grow []anim.Animation
	var rights []anim.Animation
	for i := 0; i < sideArrows; i++ {
		y := baseTop + (float64(i)+0.5)/sideArrows*sampleH
		l := scene.NewArrow(idx("conf_l", i), geom.V(left-0.4, y), geom.V(left+0.1, y), confStyle, 0.15)
		r := scene.NewArrow(idx("conf_r", i), geom.V(right+0.4, y), geom.V(right-0.1, y), confStyle, 0.15)
		grow = append(grow, anim.GrowArrow(l))
		rights = append(rights, anim.GrowArrow(r))
	}
	grow = append(append(grow, rights...), anim.Write(sigma3))
	tl.PlayWith(1.5, opts.Rate, grow...)
	tl.Wait(0.5)

	// consolidation
	consolH, consolW := sampleH*consolRatio, sampleW*consolRatio
	consolidated := scene.NewRect("sample", consolW, consolH, sampleStyle).MoveTo(geom.V(0, baseTop+consolH/2))
	tl.PlayWith(1.5, opts.Rate, anim.Transform("sample", consolidated))

	vax := scene.NewAxes("volume_axes", scene.Axes{
		XMin: 0, XMax: 1.2, XStep: 0.2,
		YMin: 0.9, YMax: 1.01, YStep: 0.02,
		XLength: 2.5, YLength: 1.2,
	}, scene.White)
	vax.ToCorner(geom.Up.Add(geom.Right), 0.7)
	tLabel := scene.NewText("t_label", "Time", 16, scene.White).NextTo(vax.Bounds(), geom.Down, 0.15)
	vLabel := scene.NewText("v_label", "Volume", 16, scene.White).NextTo(vax.Bounds(), geom.Left, 0.15)
	tl.PlayWith(0.7, opts.Rate, anim.FadeIn(vax), anim.Write(tLabel), anim.Write(vLabel))

	volStyle := scene.Stroked(scene.BlueE, scene.DefaultStroke)
	volPlot := func(xmax float64) *scene.Mobject {
		return scene.NewPlot("volume_curve", *vax.Axes, volume, 0, xmax, volStyle)
	}
	tl.Add(volPlot(0.0001))
	for _, f := range utl.LinSpace(0, volumeSplit, 20) {
		tl.PlayWith(quickStep, opts.Rate, anim.Transform("volume_curve", volPlot(f)))
	}
	for _, f := range utl.LinSpace(volumeSplit, 1, 10) {
		tl.PlayWith(quickStep, opts.Rate, anim.Transform("volume_curve", volPlot(f)))
	}
	tl.PlayWith(0.5, opts.Rate, anim.Transform("volume_curve", volPlot(1)))
	tl.Wait(0.5)
	tl.PlayWith(0.7, opts.Rate, anim.FadeOut("volume_axes"), anim.FadeOut("t_label"), anim.FadeOut("v_label"), anim.FadeOut("volume_curve"))

	// lower the piston onto the consolidated sample
	pistonY := baseTop + consolH + pistonH/2
	ramY := pistonY + pistonH/2 + ramH/2
	tl.PlayWith(1.5, opts.Rate,
		anim.MoveTo("piston", geom.V(piston.Center().X, pistonY)),
		anim.MoveTo("ram", geom.V(ram.Center().X, ramY)),
	)

	ramTop := geom.V(0, ramY+ramH/2)
	axial := scene.NewArrow("axial_arrow", ramTop.Add(geom.Up.Scale(0.5)), ramTop.Add(geom.Up.Scale(0.1)), scene.Stroked(scene.Red, 3), 0.15)
	sigma1 := scene.NewMath("sigma1", "σ₁", 32, scene.Red).NextTo(axial.Bounds(), geom.Up, 0.2)
	tl.PlayWith(1.5, opts.Rate, anim.GrowArrow(axial), anim.Write(sigma1))
	tl.Wait(0.1)

	// shearing
	qStyle := scene.Stroked(scene.RedE, scene.DefaultStroke)
	qPlot := func(xmax float64) *scene.Mobject {
		return scene.NewPlot("q_curve", *ax.Axes, clay, 0, xmax, qStyle)
	}
	tl.Add(qPlot(0.0001))
	stageTime := shearDuration / ShearStages
	for i := 1; i < ShearStages; i++ {
		st := ClayBulge(i, ShearStages, baseTop, consolW, consolH)
		deformed := scene.NewPolygon("sample", st.Outline, sampleStyle)
		py := baseTop + st.Height + pistonH/2
		progress := float64(i) / float64(ShearStages-1)
		tl.PlayWith(stageTime, opts.Rate,
			anim.Transform("sample", deformed),
			anim.MoveTo("piston", geom.V(0, py)),
			anim.MoveTo("ram", geom.V(0, py+pistonH/2+ramH/2)),
			anim.Transform("q_curve", qPlot(10*progress)),
		)
	}
	tl.Wait(0.15)
	tl.Wait(3)

	return finish("clay", "clay triaxial test with consolidation", "q_curve", tl)
}
