package labtest

import (
	"math"

	"github.com/cpmech/gosl/utl"
	"github.com/san-kum/soillab/internal/geom"
)

// Clay shear stage shape.
const (
	ShearStages      = 100
	finalHeightRatio = 0.75
	finalMidBulge    = 1.2
	heightExp        = 1.5
	bulgeExp         = 1.2
	bulgePoints      = 11
)

// BulgeStage describes the sample at one shearing stage.
type BulgeStage struct {
	Height   float64
	MidRatio float64
	Outline  []geom.Vec2
}

// ClayBulge returns the shape of a sample of width w and height h standing on
// baseY at stage i of stages. Progress follows linspace(0, 1, stages).
func ClayBulge(i, stages int, baseY, w, h float64) BulgeStage {
	t := 0.0
	if stages > 1 {
		t = utl.LinSpace(0, 1, stages)[i]
	}
	hr := 1 - (1-finalHeightRatio)*math.Pow(t, heightExp)
	mr := 1 + (finalMidBulge-1)*math.Pow(t, bulgeExp)
	return BulgeStage{
		Height:   h * hr,
		MidRatio: mr,
		Outline:  geom.BulgeProfile(baseY, w, h*hr, mr, bulgePoints),
	}
}

// Brittle fracture timing, in shear stages.
const (
	FractureStages = 50
	fractureAt     = 0.4
	slideAfter     = 0.6
	maxSlide       = 0.1
	crackSpanX     = 0.45
	crackSpanY     = 0.25
)

// FractureStage is the stage at which the sample breaks.
func FractureStage() int { return int(FractureStages * fractureAt) }

// SlideStage is the last stage before the upper piece starts to slide.
func SlideStage() int { return int(FractureStages * slideAfter) }

// Fracture is the crack through an intact rectangular sample and the two
// pieces it leaves.
type Fracture struct {
	Start, End   geom.Vec2
	Upper, Lower []geom.Vec2
}

// Direction is the unit vector along the crack.
func (f Fracture) Direction() geom.Vec2 { return f.End.Sub(f.Start).Normalize() }

// Break cuts the sample box along the line from (-0.45w, +0.25h) to
// (+0.45w, -0.25h) about its centre. The pieces are the two half-planes of
// that line clipped to the box, so they partition the sample.
func Break(sample geom.Box) Fracture {
	c := sample.Center()
	w, h := sample.Width(), sample.Height()
	p1 := c.Add(geom.V(-crackSpanX*w, crackSpanY*h))
	p2 := c.Add(geom.V(crackSpanX*w, -crackSpanY*h))
	rect := geom.RectPoints(c, w, h)
	upper, lower := geom.SplitByLine(rect, p1, p2)
	return Fracture{Start: p1, End: p2, Upper: upper, Lower: lower}
}

// SlideOffset is how far the upper piece has slid along the crack at stage i.
func SlideOffset(i int) float64 {
	s := SlideStage()
	if i <= s {
		return 0
	}
	return float64(i-s) / float64(FractureStages-s) * maxSlide
}

// ShearRunTime is the play duration of cemented-clay stage i.
func ShearRunTime(i int) float64 {
	switch {
	case float64(i) < FractureStages/3.0:
		return 0.4
	case float64(i) < FractureStages*0.6:
		return 0.35
	}
	return 0.3
}

// CrackIndex returns the first sample index whose fraction exceeds threshold,
// or -1.
func CrackIndex(fracs []float64, threshold float64) int {
	for i, f := range fracs {
		if f > threshold {
			return i
		}
	}
	return -1
}
