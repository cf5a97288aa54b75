package interp

import (
	"math"
	"sort"
)

// backwardFlat is piecewise constant: the value on (xs[i-1], xs[i]] is
// ys[i]. It extrapolates flat on both sides.
type backwardFlat struct {
	xs, ys []float64
}

func (b *backwardFlat) Update() error {
	return checkNodes(b.xs, b.ys)
}

func (b *backwardFlat) MaxX() float64 { return b.xs[len(b.xs)-1] }

func (b *backwardFlat) Value(x float64) float64 {
	i := sort.SearchFloat64s(b.xs, x)
	if i >= len(b.ys) {
		return b.ys[len(b.ys)-1]
	}
	return b.ys[i]
}

func (b *backwardFlat) Derivative(x float64) float64 { return 0 }

func (b *backwardFlat) Primitive(x float64) float64 {
	var acc float64
	for i := 1; i < len(b.xs); i++ {
		if x <= b.xs[i] {
			return acc + b.ys[i]*(x-b.xs[i-1])
		}
		acc += b.ys[i] * (b.xs[i] - b.xs[i-1])
	}
	return acc + b.ys[len(b.ys)-1]*(x-b.MaxX())
}

// linear is piecewise linear with end-slope extrapolation.
type linear struct {
	xs, ys []float64
}

func (l *linear) Update() error {
	return checkNodes(l.xs, l.ys)
}

func (l *linear) MaxX() float64 { return l.xs[len(l.xs)-1] }

func (l *linear) slope(i int) float64 {
	return (l.ys[i+1] - l.ys[i]) / (l.xs[i+1] - l.xs[i])
}

func (l *linear) Value(x float64) float64 {
	i := section(l.xs, x)
	return l.ys[i] + l.slope(i)*(x-l.xs[i])
}

func (l *linear) Derivative(x float64) float64 {
	return l.slope(section(l.xs, x))
}

func (l *linear) Primitive(x float64) float64 {
	var acc float64
	for i := 0; i < len(l.xs)-1; i++ {
		if x <= l.xs[i+1] || i == len(l.xs)-2 {
			dx := x - l.xs[i]
			return acc + dx*(l.ys[i]+0.5*l.slope(i)*dx)
		}
		h := l.xs[i+1] - l.xs[i]
		acc += 0.5 * h * (l.ys[i] + l.ys[i+1])
	}
	return acc
}

// logLinear interpolates linearly in the log of the ordinates, the
// classic scheme for discount factors. It has no closed-form
// primitive.
type logLinear struct {
	xs, ys []float64
}

func (l *logLinear) Update() error {
	if err := checkNodes(l.xs, l.ys); err != nil {
		return err
	}
	return checkPositive(l.ys)
}

func (l *logLinear) MaxX() float64 { return l.xs[len(l.xs)-1] }

func (l *logLinear) logSlope(i int) float64 {
	return (math.Log(l.ys[i+1]) - math.Log(l.ys[i])) / (l.xs[i+1] - l.xs[i])
}

func (l *logLinear) Value(x float64) float64 {
	i := section(l.xs, x)
	return l.ys[i] * math.Exp(l.logSlope(i)*(x-l.xs[i]))
}

func (l *logLinear) Derivative(x float64) float64 {
	i := section(l.xs, x)
	return l.Value(x) * l.logSlope(i)
}

func (l *logLinear) Primitive(x float64) float64 {
	panic("interp: log-linear has no closed-form primitive")
}
