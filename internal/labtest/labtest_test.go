package labtest_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cpmech/gosl/utl"
	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/geom"
	"github.com/san-kum/soillab/internal/labtest"
	"github.com/san-kum/soillab/internal/scene"
)

func countSegments(tl *anim.Timeline, name string) int {
	n := 0
	for _, s := range tl.Segments() {
		for _, a := range s.Names() {
			if a == name {
				n++
				break
			}
		}
	}
	return n
}

func final(d *labtest.Demo, id string) *scene.Mobject {
	m, ok := d.Timeline.Frame(d.Timeline.Duration() + 1).Get(id)
	Expect(ok).To(BeTrue(), "missing %s in final frame", id)
	return m
}

var _ = Describe("deformation keyframes", func() {
	It("starts the BTS crack at the first displacement past 0.6", func() {
		fracs := utl.LinSpace(0, 1, 30)
		Expect(labtest.CrackIndex(fracs, 0.6)).To(Equal(18))
		Expect(labtest.CrackIndex(fracs, 2)).To(Equal(-1))
	})

	It("bulges the clay sample while it shortens", func() {
		first := labtest.ClayBulge(0, labtest.ShearStages, -3.5, 1.9, 3.8)
		Expect(first.Height).To(BeNumerically("~", 3.8, 1e-12))
		Expect(geom.Bounds(first.Outline).Width()).To(BeNumerically("~", 1.9, 1e-12))

		last := labtest.ClayBulge(labtest.ShearStages-1, labtest.ShearStages, -3.5, 1.9, 3.8)
		Expect(last.Height).To(BeNumerically("~", 3.8*0.75, 1e-12))
		Expect(last.MidRatio).To(BeNumerically("~", 1.2, 1e-12))
		b := geom.Bounds(last.Outline)
		Expect(b.Width()).To(BeNumerically("~", 1.9*1.2, 1e-12))
		Expect(b.Min.Y).To(BeNumerically("~", -3.5, 1e-12))
		Expect(last.Outline).To(HaveLen(22))
	})

	It("splits the sample into two pieces that partition it", func() {
		box := geom.Bounds(geom.RectPoints(geom.V(0, -0.9), 2, 4))
		f := labtest.Break(box)
		Expect(f.Start.ApproxEqual(geom.V(-0.9, 0.1), 1e-12)).To(BeTrue())
		Expect(f.End.ApproxEqual(geom.V(0.9, -1.9), 1e-12)).To(BeTrue())
		Expect(geom.Area(f.Upper) + geom.Area(f.Lower)).To(BeNumerically("~", 8, 1e-12))
		Expect(geom.Bounds(f.Upper).Max.Y).To(BeNumerically("~", 1.1, 1e-12))
		Expect(geom.Bounds(f.Lower).Min.Y).To(BeNumerically("~", -2.9, 1e-12))
		Expect(f.Direction().Y).To(BeNumerically("<", 0))
	})

	It("times the brittle failure", func() {
		Expect(labtest.FractureStage()).To(Equal(20))
		Expect(labtest.SlideStage()).To(Equal(30))
		Expect(labtest.SlideOffset(30)).To(Equal(0.0))
		Expect(labtest.SlideOffset(40)).To(BeNumerically("~", 0.05, 1e-12))
		Expect(labtest.ShearRunTime(16)).To(Equal(0.4))
		Expect(labtest.ShearRunTime(17)).To(Equal(0.35))
		Expect(labtest.ShearRunTime(30)).To(Equal(0.3))
	})
})

var _ = Describe("BTS", func() {
	var d *labtest.Demo

	BeforeEach(func() {
		var err error
		d, err = labtest.BTS(labtest.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
	})

	It("keeps the scripted pacing", func() {
		Expect(d.Timeline.Duration()).To(BeNumerically("~", 11.38, 1e-9))
		Expect(d.Timeline.Segments()).To(HaveLen(85))
		Expect(countSegments(d.Timeline, "Transform(crack)")).To(Equal(29))
		Expect(countSegments(d.Timeline, "Transform(load_curve)")).To(Equal(18 + 29 + 1))
	})

	It("ends with the full curve and an open crack", func() {
		x, y := final(d, "load_curve").Plot.Tip()
		Expect(x).To(Equal(1.0))
		Expect(y).To(BeNumerically("~", 0.488, 1e-12))
		Expect(final(d, "crack").Height()).To(BeNumerically("~", 2*1.96, 1e-12))
	})

	It("moves the load arrows half a unit towards the disk", func() {
		top := final(d, "top_arrow")
		Expect(top.End().Y).To(BeNumerically("~", 2.3-0.5, 1e-9))
	})

	It("keeps the watermark in the bottom-left corner throughout", func() {
		for _, t := range []float64{0, 3, 11} {
			w, ok := d.Timeline.Frame(t).Get("watermark")
			Expect(ok).To(BeTrue())
			Expect(w.Center().X).To(BeNumerically("<", 0))
			Expect(w.Center().Y).To(BeNumerically("<", -3.5))
		}
	})

	It("omits the watermark when it is blank", func() {
		bare, err := labtest.BTS(labtest.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(bare.Timeline.Frame(0).Has("watermark")).To(BeFalse())
	})

	It("keeps per-animation rates unless a rate is given", func() {
		for _, s := range d.Timeline.Segments() {
			Expect(s.Rate).To(BeNil())
		}

		spring, err := anim.LookupRate(anim.RateSpring)
		Expect(err).NotTo(HaveOccurred())
		sprung, err := labtest.BTS(labtest.Options{Rate: spring})
		Expect(err).NotTo(HaveOccurred())
		Expect(sprung.Timeline.Duration()).To(BeNumerically("~", d.Timeline.Duration(), 1e-9))
		Expect(sprung.Timeline.Segments()).To(HaveLen(85))
		for _, s := range sprung.Timeline.Segments() {
			if !s.IsWait() {
				Expect(s.Rate).NotTo(BeNil(), "segment %d", s.Index)
			}
		}
		x, _ := final(sprung, "load_curve").Plot.Tip()
		Expect(x).To(Equal(1.0))
	})
})

var _ = Describe("clay triaxial", func() {
	var d *labtest.Demo

	BeforeEach(func() {
		var err error
		d, err = labtest.Clay(labtest.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
	})

	It("keeps the scripted pacing", func() {
		Expect(d.Timeline.Duration()).To(BeNumerically("~", 29.7, 1e-9))
		Expect(d.Timeline.Segments()).To(HaveLen(142))
	})

	It("clears the consolidation plot before shearing", func() {
		end := d.Timeline.Frame(d.Timeline.Duration() + 1)
		Expect(end.Has("volume_curve")).To(BeFalse())
		Expect(end.Has("volume_axes")).To(BeFalse())
	})

	It("keeps the piston on top of the deformed sample", func() {
		sample := final(d, "sample")
		piston := final(d, "piston")
		Expect(sample.Height()).To(BeNumerically("~", 3.8*0.75, 1e-9))
		Expect(sample.Width()).To(BeNumerically("~", 1.9*1.2, 1e-9))
		Expect(piston.Bottom().Y).To(BeNumerically("~", sample.Top().Y, 1e-9))
		Expect(final(d, "ram").Bottom().Y).To(BeNumerically("~", piston.Top().Y, 1e-9))
	})

	It("draws the stress-strain curve to the end of its axes", func() {
		x, y := final(d, "q_curve").Plot.Tip()
		Expect(x).To(BeNumerically("~", 10, 1e-12))
		Expect(y).To(BeNumerically("<", 88))
	})
})

var _ = Describe("cemented clay triaxial", func() {
	var d *labtest.Demo

	BeforeEach(func() {
		var err error
		d, err = labtest.Cemented(labtest.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
	})

	It("keeps the scripted pacing", func() {
		Expect(d.Timeline.Duration()).To(BeNumerically("~", 33.4, 1e-9))
		Expect(d.Timeline.Segments()).To(HaveLen(107))
	})

	It("replaces the intact sample at the fracture stage", func() {
		sc := d.Timeline.Frame(d.Timeline.Duration() + 1)
		Expect(sc.Has("sample")).To(BeFalse())
		Expect(sc.Has("crack")).To(BeTrue())
		Expect(sc.Has("lower_piece")).To(BeTrue())
	})

	It("slides the upper piece down the crack and keeps the piston on it", func() {
		upper := final(d, "upper_piece")
		lower := final(d, "lower_piece")
		Expect(geom.Area(upper.Paths[0].Points) + geom.Area(lower.Paths[0].Points)).To(BeNumerically("~", 8, 1e-9))

		slid := 0.1 * 19 / 20
		dir := geom.V(1.8, -2).Normalize()
		Expect(upper.Top().Y).To(BeNumerically("~", 1.1+dir.Y*slid, 1e-9))
		Expect(final(d, "piston").Bottom().Y).To(BeNumerically("~", upper.Top().Y, 1e-9))
	})

	It("marks the peak on the completed curve", func() {
		x, _ := final(d, "q_curve").Plot.Tip()
		Expect(x).To(BeNumerically("~", 15, 1e-12))
		peak := final(d, "peak")
		want := 140 + 20*3*math.Exp(-1.5)
		Expect(peak.Center().Y).To(BeNumerically(">", 0))
		_, y := final(d, "axes").Axes.P2C(peak.Center())
		Expect(y).To(BeNumerically("~", want, 1e-6))
	})
})
