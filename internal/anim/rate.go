package anim

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

// RateFunc maps linear progress in [0,1] to animation progress.
type RateFunc func(t float64) float64

func Linear(t float64) float64 { return clamp01(t) }

const smoothInflection = 10.0

// Smooth is a sigmoid ease-in-out normalised to hit 0 and 1 exactly.
func Smooth(t float64) float64 {
	sig := func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
	e := sig(-smoothInflection / 2)
	return clamp01((sig(smoothInflection*(t-0.5)) - e) / (1 - 2*e))
}

const springSteps = 240

// Spring eases with a damped spring pulled from 0 towards 1 over one second
// of spring time. The table is scaled by the spring's position at one second,
// so slow springs still reach 1 without a jump at t=1. Under-damped springs
// overshoot before settling. A spring that never moves falls back to Linear.
func Spring(freq, damping float64) RateFunc {
	s := harmonica.NewSpring(harmonica.FPS(springSteps), freq, damping)
	table := make([]float64, springSteps+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSteps; i++ {
		pos, vel = s.Update(pos, vel, 1)
		table[i] = pos
	}
	end := table[springSteps]
	if end <= 0 || math.IsNaN(end) {
		return Linear
	}
	for i := range table {
		table[i] /= end
	}
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		f := t * springSteps
		i := int(f)
		return table[i] + (table[i+1]-table[i])*(f-float64(i))
	}
}

// Named rates accepted by LookupRate.
const (
	RateSmooth = "smooth"
	RateLinear = "linear"
	RateSpring = "spring"
	RateBounce = "bounce"
)

// LookupRate resolves a rate name. The empty name returns nil, which keeps
// each animation's own rate.
func LookupRate(name string) (RateFunc, error) {
	switch name {
	case "":
		return nil, nil
	case RateSmooth:
		return Smooth, nil
	case RateLinear:
		return Linear, nil
	case RateSpring:
		return Spring(6, 1), nil
	case RateBounce:
		return Spring(9, 0.35), nil
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownRate, name, RateNames())
}

func RateNames() []string {
	return []string{RateSmooth, RateLinear, RateSpring, RateBounce}
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
