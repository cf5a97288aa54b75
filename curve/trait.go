package curve

import (
	"fmt"
	"math"
	"strings"

	"github.com/ordli77/interestrate/interp"
)

// Trait selects the quantity stored at curve pivots: discount factors,
// continuously-compounded zero yields, or instantaneous forwards.
type Trait int

const (
	Discount Trait = iota
	ZeroYield
	ForwardRate
)

func (tr Trait) String() string {
	switch tr {
	case Discount:
		return "discount"
	case ZeroYield:
		return "zero-yield"
	case ForwardRate:
		return "forward-rate"
	}
	return fmt.Sprintf("Trait(%d)", int(tr))
}

// ParseTrait maps a config spelling to its Trait.
func ParseTrait(s string) (Trait, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "discount":
		return Discount, nil
	case "zero-yield", "zero":
		return ZeroYield, nil
	case "forward-rate", "forward":
		return ForwardRate, nil
	}
	return 0, fmt.Errorf("unknown curve trait %q", s)
}

// initialValue is the pivot value at the reference date before the
// first pillar is solved.
func (tr Trait) initialValue() float64 {
	if tr == Discount {
		return 1
	}
	return 0.02
}

// guess converts a helper quote into a starting pivot value.
func (tr Trait) guess(q, t float64) float64 {
	if tr == Discount {
		return math.Exp(-q * t)
	}
	return q
}

// setTrial writes a root-finder trial into the pivot slice. While the
// first pillar is being solved, rate traits mirror the trial onto the
// reference-date pivot so the first section is flat.
func (tr Trait) setTrial(values []float64, i int, v float64) {
	values[i] = v
	if i == 1 && tr != Discount {
		values[0] = v
	}
}

// bracket bounds the root search for pillar value i given the previous
// pivot and the year fraction between them. maxRate caps the implied
// continuous rate magnitude.
func (tr Trait) bracket(prev, dt, maxRate float64) (lo, hi float64) {
	if tr == Discount {
		return prev * math.Exp(-maxRate*dt), prev * math.Exp(maxRate*dt)
	}
	return -maxRate, maxRate
}

// discount evaluates the discount factor at time t from the fitted
// pivot function.
func (tr Trait) discount(in interp.Interpolation, t float64) float64 {
	if t == 0 {
		return 1
	}
	switch tr {
	case Discount:
		return in.Value(t)
	case ZeroYield:
		return math.Exp(-in.Value(t) * t)
	default: // ForwardRate
		return math.Exp(-in.Primitive(t))
	}
}

// instantaneousForward evaluates the instantaneous forward rate at t
// via the interpolator's analytic derivative.
func (tr Trait) instantaneousForward(in interp.Interpolation, t float64) float64 {
	switch tr {
	case Discount:
		return -in.Derivative(t) / in.Value(t)
	case ZeroYield:
		return in.Value(t) + t*in.Derivative(t)
	default: // ForwardRate
		return in.Value(t)
	}
}

// needsPrimitive reports whether discounting under the trait
// integrates the interpolated function.
func (tr Trait) needsPrimitive() bool {
	return tr == ForwardRate
}
