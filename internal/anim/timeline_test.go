package anim_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/curves"
	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/scene"
	"github.com/san-kum/soillab/internal/sim"
)

var _ = Describe("rate functions", func() {
	It("pins smooth to its ends and centre", func() {
		Expect(anim.Smooth(0)).To(BeNumerically("~", 0, 1e-12))
		Expect(anim.Smooth(1)).To(BeNumerically("~", 1, 1e-12))
		Expect(anim.Smooth(0.5)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(anim.Smooth(0.25)).To(BeNumerically("<", 0.25))
	})

	It("clamps linear", func() {
		Expect(anim.Linear(-1)).To(Equal(0.0))
		Expect(anim.Linear(0.3)).To(Equal(0.3))
		Expect(anim.Linear(2)).To(Equal(1.0))
	})

	It("lets an under-damped spring overshoot and still end at one", func() {
		rate := anim.Spring(12, 0.3)
		peak := 0.0
		for i := 0; i <= 100; i++ {
			peak = math.Max(peak, rate(float64(i)/100))
		}
		Expect(peak).To(BeNumerically(">", 1))
		Expect(rate(0)).To(Equal(0.0))
		Expect(rate(1)).To(Equal(1.0))
	})

	It("reaches one without a jump for slow springs", func() {
		for _, c := range [][2]float64{{2, 1}, {6, 1}, {1, 2}, {9, 0.35}} {
			rate := anim.Spring(c[0], c[1])
			Expect(rate(0.999)).To(BeNumerically("~", 1, 0.01), "spring %v", c)
			Expect(rate(1)).To(Equal(1.0))
		}
	})

	It("keeps a critically damped spring monotone", func() {
		rate := anim.Spring(2, 1)
		prev := 0.0
		for i := 1; i <= 1000; i++ {
			v := rate(float64(i) / 1000)
			Expect(v).To(BeNumerically(">=", prev))
			prev = v
		}
	})

	It("falls back to linear for a spring that never moves", func() {
		rate := anim.Spring(0, 1)
		Expect(rate(0.25)).To(Equal(0.25))
	})

	DescribeTable("looks up rates by name",
		func(name string, at, want float64) {
			rate, err := anim.LookupRate(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(rate(at)).To(BeNumerically("~", want, 1e-12))
		},
		Entry("linear", "linear", 0.3, 0.3),
		Entry("smooth", "smooth", 0.5, 0.5),
		Entry("spring end", "spring", 1.0, 1.0),
		Entry("bounce end", "bounce", 1.0, 1.0),
	)

	It("keeps per-animation rates for the empty name and rejects unknown ones", func() {
		rate, err := anim.LookupRate("")
		Expect(err).NotTo(HaveOccurred())
		Expect(rate).To(BeNil())

		_, err = anim.LookupRate("wobble")
		Expect(errors.Is(err, anim.ErrUnknownRate)).To(BeTrue())
	})
})

var _ = Describe("Timeline", func() {
	var (
		tl  *anim.Timeline
		box *scene.Mobject
	)

	BeforeEach(func() {
		tl = anim.NewTimeline()
		box = scene.NewRect("box", 2, 2, scene.Stroked(scene.White, 2))
	})

	It("sums run times and counts frames", func() {
		tl.Play(1, anim.FadeIn(box))
		tl.Wait(0.5)
		tl.Play(0.5, anim.Shift("box", geom.Right))
		Expect(tl.Err()).NotTo(HaveOccurred())
		Expect(tl.Duration()).To(BeNumerically("~", 2, 1e-12))
		Expect(sim.FrameCount(tl.Duration(), 30)).To(Equal(61))
		Expect(tl.Segments()).To(HaveLen(3))
		Expect(tl.Segments()[1].Names()).To(Equal([]string{"wait"}))
		Expect(tl.Segments()[2].Names()).To(Equal([]string{"Shift(box)"}))
	})

	It("fades in with the smooth rate by default", func() {
		tl.Play(1, anim.FadeIn(box))
		m, ok := tl.Frame(0.5).Get("box")
		Expect(ok).To(BeTrue())
		Expect(m.Opacity).To(BeNumerically("~", 0.5, 1e-12))

		m, _ = tl.Frame(0.25).Get("box")
		Expect(m.Opacity).To(BeNumerically("~", anim.Smooth(0.25), 1e-12))
	})

	It("uses a linear rate for Write and honours PlayWith", func() {
		label := scene.NewText("label", "Load", 28, scene.Red)
		tl.Play(1, anim.Write(label))
		tl.PlayWith(1, anim.Linear, anim.FadeIn(box))

		m, _ := tl.Frame(0.25).Get("label")
		Expect(m.Reveal).To(BeNumerically("~", 0.25, 1e-12))
		m, _ = tl.Frame(1.25).Get("box")
		Expect(m.Opacity).To(BeNumerically("~", 0.25, 1e-12))
	})

	It("returns the final scene past the end", func() {
		tl.Add(box)
		tl.Play(1, anim.Shift("box", geom.V(2, 0)))
		tl.Add(scene.NewCircle("late", 1, scene.Stroked(scene.Blue, 2)))

		final := tl.Frame(10)
		m, _ := final.Get("box")
		Expect(m.Center().X).To(BeNumerically("~", 2, 1e-12))
		Expect(final.Has("late")).To(BeTrue())
	})

	It("does not mutate segment snapshots when evaluating frames", func() {
		tl.Add(box)
		tl.PlayWith(1, anim.Linear, anim.MoveTo("box", geom.V(0, 3)))

		a := tl.Frame(0.5)
		m, _ := a.Get("box")
		m.Shift(geom.V(100, 100))

		b := tl.Frame(0.5)
		m2, _ := b.Get("box")
		Expect(m2.Center().X).To(BeNumerically("~", 0, 1e-12))
		Expect(m2.Center().Y).To(BeNumerically("~", 1.5, 1e-12))
	})

	It("morphs plots and carries the drawn range", func() {
		clay, err := curves.Lookup("clay")
		Expect(err).NotTo(HaveOccurred())
		ax := scene.Axes{XMin: 0, XMax: 10, XStep: 2, YMin: 0, YMax: 100, YStep: 20, XLength: 3, YLength: 2.5}
		style := scene.Stroked(scene.RedE, 4)

		tl.Add(scene.NewPlot("q", ax, clay, 0, 0, style))
		tl.PlayWith(1, anim.Linear, anim.Transform("q", scene.NewPlot("q", ax, clay, 0, 4, style)))

		m, _ := tl.Frame(0.5).Get("q")
		Expect(m.Plot.XMax).To(BeNumerically("~", 2, 1e-12))

		end, _ := tl.Frame(1).Get("q")
		x, y := end.Plot.Tip()
		Expect(x).To(Equal(4.0))
		Expect(y).To(BeNumerically("~", clay.Eval(4), 1e-12))
		last := end.Paths[0].Points[len(end.Paths[0].Points)-1]
		Expect(last.ApproxEqual(ax.C2P(x, y), 1e-9)).To(BeTrue())
	})

	It("grows arrows from their start", func() {
		arrow := scene.NewArrow("arrow", geom.V(0, 2), geom.V(0, 0), scene.Stroked(scene.Red, 4), 0.18)
		tl.PlayWith(1, anim.Linear, anim.GrowArrow(arrow))

		half, _ := tl.Frame(0.5).Get("arrow")
		Expect(half.End().ApproxEqual(geom.V(0, 1), 1e-12)).To(BeTrue())
		full, _ := tl.Frame(1).Get("arrow")
		Expect(full.End().ApproxEqual(geom.V(0, 0), 1e-12)).To(BeTrue())
	})

	It("removes faded-out mobjects at the end of the segment", func() {
		tl.Add(box)
		tl.Play(0.7, anim.FadeOut("box"))
		Expect(tl.Frame(0.35).Has("box")).To(BeTrue())
		Expect(tl.Frame(0.7).Has("box")).To(BeFalse())
	})

	DescribeTable("rejects invalid run times",
		func(d float64) {
			tl.Play(d, anim.FadeIn(box))
			Expect(errors.Is(tl.Err(), anim.ErrInvalidRunTime)).To(BeTrue())
		},
		Entry("zero", 0.0),
		Entry("negative", -1.0),
		Entry("NaN", math.NaN()),
	)

	It("reports the failing segment for unknown mobjects and stops building", func() {
		tl.Play(1, anim.FadeIn(box))
		tl.Play(1, anim.Transform("ghost", box))
		tl.Wait(1)

		var se *anim.StepError
		Expect(errors.As(tl.Err(), &se)).To(BeTrue())
		Expect(se.Index).To(Equal(1))
		Expect(errors.Is(tl.Err(), anim.ErrUnknownMobject)).To(BeTrue())
		Expect(tl.Segments()).To(HaveLen(1))
	})

	It("fails to remove a missing mobject", func() {
		tl.Remove("nothing")
		Expect(errors.Is(tl.Err(), anim.ErrUnknownMobject)).To(BeTrue())
	})
})
