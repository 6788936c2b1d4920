package curves

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cpmech/gosl/utl"
)

var (
	// ErrUnknownCurve is returned by Lookup for names not in the registry.
	ErrUnknownCurve = errors.New("curves: unknown curve")

	// ErrInvalidGeometry indicates a non-positive specimen dimension.
	ErrInvalidGeometry = errors.New("curves: specimen dimensions must be positive")
)

// Curve is a scalar model sampled over a fixed domain.
type Curve interface {
	Name() string
	Eval(x float64) float64
	Domain() (lo, hi float64)
}

// Func adapts a plain function to Curve.
type Func struct {
	name  string
	label string
	lo    float64
	hi    float64
	fn    func(float64) float64
}

func NewFunc(name, label string, lo, hi float64, fn func(float64) float64) *Func {
	return &Func{name: name, label: label, lo: lo, hi: hi, fn: fn}
}

func (f *Func) Name() string               { return f.name }
func (f *Func) Label() string              { return f.label }
func (f *Func) Eval(x float64) float64     { return f.fn(x) }
func (f *Func) Domain() (float64, float64) { return f.lo, f.hi }

var registry = map[string]*Func{
	"bts":           NewFunc("bts", "load vs displacement", 0, 1, BTSLoadDisplacement),
	"clay":          NewFunc("clay", "q vs axial strain (%)", 0, 10, ClayStressStrain),
	"consolidation": NewFunc("consolidation", "volume vs time", 0, 1, ConsolidationVolume),
	"cemented":      NewFunc("cemented", "q vs axial strain (%)", 0, 15, CementedClayStressStrain),
}

// Lookup returns the registered curve with the given name.
func Lookup(name string) (*Func, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownCurve, name, Names())
	}
	return c, nil
}

// Names lists the registered curves in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample evaluates c at n evenly spaced points of [lo, hi], endpoints included.
func Sample(c Curve, lo, hi float64, n int) (xs, ys []float64) {
	if n < 2 {
		return []float64{lo}, []float64{c.Eval(lo)}
	}
	xs = utl.LinSpace(lo, hi, n)
	ys = make([]float64, n)
	for i, x := range xs {
		ys[i] = c.Eval(x)
	}
	return xs, ys
}

// SampleDomain samples c over its whole domain.
func SampleDomain(c Curve, n int) (xs, ys []float64) {
	lo, hi := c.Domain()
	return Sample(c, lo, hi, n)
}

// Peak returns the location and value of the largest of n domain samples.
func Peak(c Curve, n int) (x, y float64) {
	xs, ys := SampleDomain(c, n)
	x, y = xs[0], ys[0]
	for i := 1; i < len(xs); i++ {
		if ys[i] > y {
			x, y = xs[i], ys[i]
		}
	}
	return x, y
}

// InitialSlope is the forward difference of c at the start of its domain.
func InitialSlope(c Curve, h float64) float64 {
	lo, _ := c.Domain()
	return (c.Eval(lo+h) - c.Eval(lo)) / h
}

// Residual is the value of c at the end of its domain.
func Residual(c Curve) float64 {
	_, hi := c.Domain()
	return c.Eval(hi)
}

// BTSStrength is the indirect tensile strength 2P/(πDT) of a disk of
// diameter d and thickness t failing at load p.
func BTSStrength(p, d, t float64) (float64, error) {
	if d <= 0 || t <= 0 || math.IsNaN(d) || math.IsNaN(t) {
		return 0, fmt.Errorf("%w: D=%g T=%g", ErrInvalidGeometry, d, t)
	}
	return 2 * p / (math.Pi * d * t), nil
}
