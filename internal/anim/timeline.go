package anim

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/soillab/internal/scene"
)

// Segment is one play or wait step of a timeline.
type Segment struct {
	Index    int
	Start    float64
	Duration float64
	Anims    []Animation
	// Rate overrides the rate of every animation in the segment when set.
	Rate     RateFunc
	snapshot *scene.Scene
}

func (s Segment) End() float64 { return s.Start + s.Duration }
func (s Segment) IsWait() bool { return len(s.Anims) == 0 }

// Names lists the animations of the segment, or "wait".
func (s Segment) Names() []string {
	if s.IsWait() {
		return []string{"wait"}
	}
	names := make([]string, len(s.Anims))
	for i, a := range s.Anims {
		names[i] = a.String()
	}
	return names
}

// Timeline records a strictly ordered sequence of segments against a live
// scene. Building stops at the first error, which Err reports; later calls
// are no-ops.
type Timeline struct {
	live     *scene.Scene
	segments []Segment
	duration float64
	err      error
}

func NewTimeline() *Timeline {
	return &Timeline{live: scene.New()}
}

// Err returns the first build error, a *StepError.
func (tl *Timeline) Err() error { return tl.err }

func (tl *Timeline) fail(op string, err error) {
	tl.err = &StepError{Index: len(tl.segments), Op: op, Err: err}
}

// Add puts copies of ms into the scene instantly.
func (tl *Timeline) Add(ms ...*scene.Mobject) {
	if tl.err != nil {
		return
	}
	for _, m := range ms {
		tl.live.Add(m.Clone())
	}
}

// Remove drops id from the scene instantly.
func (tl *Timeline) Remove(id string) {
	if tl.err != nil {
		return
	}
	if !tl.live.Remove(id) {
		tl.fail("remove", fmt.Errorf("%w: %s", ErrUnknownMobject, id))
	}
}

// Scene returns the live scene as it stands after the last segment. Builders
// use it to read positions; it must not be modified directly.
func (tl *Timeline) Scene() *scene.Scene { return tl.live }

// Get returns the live state of id.
func (tl *Timeline) Get(id string) (*scene.Mobject, bool) { return tl.live.Get(id) }

// Play runs anims in parallel over runTime seconds, each with its own rate.
func (tl *Timeline) Play(runTime float64, anims ...Animation) {
	tl.PlayWith(runTime, nil, anims...)
}

// PlayWith is Play with one rate function for every animation.
func (tl *Timeline) PlayWith(runTime float64, rate RateFunc, anims ...Animation) {
	if tl.err != nil {
		return
	}
	if !validRunTime(runTime) {
		tl.fail("play", fmt.Errorf("%w: %v", ErrInvalidRunTime, runTime))
		return
	}
	if len(anims) == 0 {
		tl.Wait(runTime)
		return
	}
	for _, a := range anims {
		if err := a.Begin(tl.live); err != nil {
			tl.fail(a.String(), err)
			return
		}
	}
	tl.push(Segment{Duration: runTime, Anims: anims, Rate: rate})
	for _, a := range anims {
		a.Finish(tl.live)
	}
}

// Wait holds the current scene for d seconds.
func (tl *Timeline) Wait(d float64) {
	if tl.err != nil {
		return
	}
	if !validRunTime(d) {
		tl.fail("wait", fmt.Errorf("%w: %v", ErrInvalidRunTime, d))
		return
	}
	tl.push(Segment{Duration: d})
}

func (tl *Timeline) push(s Segment) {
	s.Index = len(tl.segments)
	s.Start = tl.duration
	s.snapshot = tl.live.Clone()
	tl.segments = append(tl.segments, s)
	tl.duration += s.Duration
}

func validRunTime(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

func (tl *Timeline) Duration() float64 { return tl.duration }

// Segments returns the recorded segments.
func (tl *Timeline) Segments() []Segment {
	return append([]Segment(nil), tl.segments...)
}

// SegmentAt returns the index of the segment playing at t, or -1 past the
// end.
func (tl *Timeline) SegmentAt(t float64) int {
	if t >= tl.duration || len(tl.segments) == 0 {
		return -1
	}
	if t < 0 {
		return 0
	}
	i := sort.Search(len(tl.segments), func(i int) bool { return tl.segments[i].End() > t })
	if i == len(tl.segments) {
		return -1
	}
	return i
}

// Frame evaluates the scene at time t. Times past the end give the final
// scene. The returned scene is a fresh copy owned by the caller, so Frame is
// safe for concurrent use once building is done.
func (tl *Timeline) Frame(t float64) *scene.Scene {
	i := tl.SegmentAt(t)
	if i < 0 {
		return tl.live.Clone()
	}
	seg := tl.segments[i]
	sc := seg.snapshot.Clone()
	if seg.IsWait() {
		return sc
	}
	frac := (t - seg.Start) / seg.Duration
	for _, a := range seg.Anims {
		rate := seg.Rate
		if rate == nil {
			rate = a.Rate()
		}
		a.Apply(sc, rate(clamp01(frac)))
	}
	return sc
}
