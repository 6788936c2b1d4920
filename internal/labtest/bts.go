package labtest

import (
	"github.com/cpmech/gosl/utl"
	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/curves"
	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
)

// BTS disk compression.
const (
	diskRadius    = 2.0
	platenW       = 2.5
	platenH       = 0.3
	compressSteps = 30
	compressDist  = 0.5
	curveFrames   = 30
	crackFrames   = 30
	crackStart    = 0.6
	crackLength   = diskRadius * 0.98
	quickStep     = 0.04
)

// BTS builds the Brazilian tensile strength demonstration: a disk squeezed
// between platens until a vertical crack opens and the load drops.
func BTS(opts Options) (*Demo, error) {
	load, err := curves.Lookup("bts")
	if err != nil {
		return nil, err
	}
	tl := anim.NewTimeline()

	disk := scene.NewCircle("disk", diskRadius, scene.Filled(scene.White, scene.GrayB, 1, 2))
	platenStyle := scene.Filled(scene.DarkGray, scene.DarkGray, 1, scene.DefaultStroke)
	top := scene.NewRect("top_platen", platenW, platenH, platenStyle).NextTo(disk.Bounds(), geom.Up, 0)
	bottom := scene.NewRect("bottom_platen", platenW, platenH, platenStyle).NextTo(disk.Bounds(), geom.Down, 0)

	loadStyle := scene.Stroked(scene.Red, 4)
	topArrow := scene.NewArrow("top_arrow", top.Top().Add(geom.Up.Scale(0.3)), top.Top(), loadStyle, 0.18)
	bottomArrow := scene.NewArrow("bottom_arrow", bottom.Bottom().Add(geom.Down.Scale(0.3)), bottom.Bottom(), loadStyle, 0.18)
	loadLabel := scene.NewText("load_label", "Load", 28, scene.Red).NextTo(topArrow.Bounds(), geom.Up, 0.2)

	if opts.Watermark != "" {
		tl.Add(watermark(opts, 14, 0.18))
	}

	tl.PlayWith(1, opts.Rate, anim.FadeIn(disk), anim.FadeIn(top), anim.FadeIn(bottom))
	tl.PlayWith(1, opts.Rate, anim.GrowArrow(topArrow), anim.GrowArrow(bottomArrow), anim.Write(loadLabel))

	step := compressDist / compressSteps
	for i := 0; i < compressSteps; i++ {
		tl.PlayWith(quickStep, opts.Rate,
			anim.Shift("top_arrow", geom.Down.Scale(step)),
			anim.Shift("bottom_arrow", geom.Up.Scale(step)),
			anim.Shift("load_label", geom.Down.Scale(step)),
		)
	}

	ax := scene.NewAxes("axes", scene.Axes{
		XMin: 0, XMax: 1.2, XStep: 0.2,
		YMin: 0, YMax: 1.2, YStep: 0.2,
		XLength: 2.5, YLength: 2,
	}, scene.White)
	ax.ToCorner(geom.Up.Add(geom.Right), 0.8)
	xLabel := scene.NewText("x_label", "Displacement", 18, scene.White).NextTo(ax.Bounds(), geom.Down, 0.2)
	yLabel := scene.NewText("y_label", "Load", 18, scene.White).NextTo(ax.Bounds(), geom.Left, 0.2)
	tl.PlayWith(0.7, opts.Rate, anim.FadeIn(ax), anim.Write(xLabel), anim.Write(yLabel))

	curveStyle := scene.Stroked(scene.RedE, scene.DefaultStroke)
	plot := func(xmax float64) *scene.Mobject {
		return scene.NewPlot("load_curve", *ax.Axes, load, 0, xmax, curveStyle)
	}
	tl.Add(plot(0))

	fracs := utl.LinSpace(0, 1, curveFrames)
	crackAt := CrackIndex(fracs, crackStart)
	for i, frac := range fracs {
		if i == crackAt {
			openCrack(tl, opts.Rate, plot)
			break
		}
		tl.PlayWith(quickStep, opts.Rate, anim.Transform("load_curve", plot(frac)))
	}

	tl.PlayWith(0.5, opts.Rate, anim.Transform("load_curve", plot(1)))

	eq := scene.NewMath("equation", "BTS = 2P / (πDT)", 44, scene.White).ToEdge(geom.Down, 0.7)
	tl.PlayWith(1.2, opts.Rate, anim.Write(eq))

	dArrow := scene.NewDoubleArrow("d_arrow", geom.V(-diskRadius, 0), geom.V(diskRadius, 0), 0.05, scene.Stroked(scene.Yellow, scene.DefaultStroke))
	dLabel := scene.NewText("d_label", "D (Diameter)", 28, scene.Yellow).NextTo(dArrow.Bounds(), geom.Down, 0.1)
	tArrow := scene.NewDoubleArrow("t_arrow", geom.V(diskRadius*0.7, -0.25), geom.V(diskRadius*0.7, 0.25), 0.05, scene.Stroked(scene.Green, scene.DefaultStroke))
	tLabel := scene.NewText("t_label", "T (Thickness)", 28, scene.Green).NextTo(tArrow.Bounds(), geom.Right, 0.1)
	tl.PlayWith(1.2, opts.Rate, anim.GrowArrow(dArrow), anim.Write(dLabel), anim.GrowArrow(tArrow), anim.Write(tLabel))

	pLabel := scene.NewText("p_label", "P = max load", 28, scene.RedE).NextTo(eq.Bounds(), geom.Down, 0.3)
	tl.PlayWith(0.7, opts.Rate, anim.Write(pLabel))
	tl.Wait(2)

	return finish("bts", "Brazilian tensile strength test", "load_curve", tl)
}

// openCrack grows the crack from the disk centre while the load curve runs
// through the drop. The first crack frame is added without animation.
func openCrack(tl *anim.Timeline, rate anim.RateFunc, plot func(float64) *scene.Mobject) {
	style := scene.Stroked(scene.Black, 8)
	crack := func(f float64) *scene.Mobject {
		l := crackLength * f
		return scene.NewGroup("crack", style,
			[2]geom.Vec2{geom.Origin, geom.V(0, l)},
			[2]geom.Vec2{geom.Origin, geom.V(0, -l)},
		)
	}
	for j, f := range utl.LinSpace(0, 1, crackFrames) {
		if j == 0 {
			tl.Add(crack(0))
			continue
		}
		drop := crackStart + (1-crackStart)*float64(j)/float64(crackFrames-1)
		tl.PlayWith(quickStep, rate,
			anim.Transform("crack", crack(f)),
			anim.Transform("load_curve", plot(drop)),
		)
	}
}
