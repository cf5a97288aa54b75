// Package interp implements the one-dimensional interpolation schemes
// used by piecewise yield curves: flat and linear families, cubic
// splines in value and log space, and the Hagan-West convex-monotone
// scheme for forward curves.
//
// An Interpolation is fitted over caller-owned slices. Local schemes
// read the slices live; schemes with derived coefficients refit on
// Update. The bootstrapper mutates the last ordinate in place between
// root-finder iterations and calls Update each time.
package interp

import (
	"fmt"
	"sort"
)

// Method selects an interpolation scheme.
type Method int

const (
	BackwardFlat Method = iota
	Linear
	LogLinear
	Cubic
	Kruger
	SplineCubic
	KrugerLog
	MonotonicLogCubic
	ConvexMonotone
)

var methodNames = [...]string{
	BackwardFlat:      "backward-flat",
	Linear:            "linear",
	LogLinear:         "log-linear",
	Cubic:             "cubic",
	Kruger:            "kruger",
	SplineCubic:       "spline-cubic",
	KrugerLog:         "kruger-log",
	MonotonicLogCubic: "monotonic-log-cubic",
	ConvexMonotone:    "convex-monotone",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod maps a config spelling like "log-linear" to its Method.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if s == name {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation method %q", s)
}

// Local reports whether the scheme only reads the nodes adjacent to the
// query point, so extending the node set leaves earlier sections
// unchanged and a single bootstrap sweep suffices.
func Local(m Method) bool {
	switch m {
	case BackwardFlat, Linear, LogLinear:
		return true
	}
	return false
}

// SupportsPrimitive reports whether the scheme has a closed-form
// integral. Log-space schemes do not; combining one with a trait that
// integrates the interpolated function is a configuration error at the
// curve layer.
func SupportsPrimitive(m Method) bool {
	switch m {
	case LogLinear, KrugerLog, MonotonicLogCubic:
		return false
	}
	return true
}

// Interpolation evaluates a fitted scheme over the node slices passed
// to New.
type Interpolation interface {
	// Value returns the interpolated value at x. Beyond the fitted
	// range the boundary section is extended (flat for backward-flat,
	// end slope or end polynomial otherwise).
	Value(x float64) float64
	// Derivative returns dValue/dx at x.
	Derivative(x float64) float64
	// Primitive returns the integral of Value from the first node to
	// x. Schemes without a closed-form primitive panic; callers gate
	// on SupportsPrimitive.
	Primitive(x float64) float64
	// Update refits after the ordinate slice was mutated in place.
	Update() error
	// MaxX returns the last fitted abscissa.
	MaxX() float64
}

// New fits method over xs and ys. The slices are retained, not copied;
// both must have equal length of at least two, and xs must be strictly
// increasing.
func New(method Method, xs, ys []float64) (Interpolation, error) {
	if err := checkNodes(xs, ys); err != nil {
		return nil, err
	}
	var in Interpolation
	switch method {
	case BackwardFlat:
		in = &backwardFlat{xs: xs, ys: ys}
	case Linear:
		in = &linear{xs: xs, ys: ys}
	case LogLinear:
		in = &logLinear{xs: xs, ys: ys}
	case Cubic, Kruger:
		in = &cubic{xs: xs, ys: ys, scheme: schemeKruger}
	case SplineCubic:
		in = &cubic{xs: xs, ys: ys, scheme: schemeSpline}
	case KrugerLog:
		in = &cubic{xs: xs, ys: ys, scheme: schemeKruger, logSpace: true}
	case MonotonicLogCubic:
		in = &cubic{xs: xs, ys: ys, scheme: schemeSpline, monotonic: true, logSpace: true}
	case ConvexMonotone:
		in = &convexMonotone{xs: xs, ys: ys}
	default:
		return nil, fmt.Errorf("unknown interpolation method %v", method)
	}
	if err := in.Update(); err != nil {
		return nil, err
	}
	return in, nil
}

func checkNodes(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("interp: %d abscissae vs %d ordinates", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return fmt.Errorf("interp: need at least 2 nodes, got %d", len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("interp: abscissae not strictly increasing at index %d (%g after %g)", i, xs[i], xs[i-1])
		}
	}
	return nil
}

func checkPositive(ys []float64) error {
	for i, y := range ys {
		if y <= 0 {
			return fmt.Errorf("interp: log-space scheme requires positive values, got %g at index %d", y, i)
		}
	}
	return nil
}

// section returns i such that [xs[i], xs[i+1]] is the evaluation
// interval for x, clamping to the boundary sections outside the range.
func section(xs []float64, x float64) int {
	i := sort.SearchFloat64s(xs, x) - 1
	if i < 0 {
		return 0
	}
	if i > len(xs)-2 {
		return len(xs) - 2
	}
	return i
}
