package interp

import "math"

type cubicScheme int

const (
	schemeSpline cubicScheme = iota
	schemeKruger
)

// cubic is a piecewise cubic in Hermite form. The node derivatives come
// either from the natural C2 spline system or from Kruger's local
// harmonic-mean construction; an optional Hyman filter clamps them for
// monotonicity, and log-space variants fit the log of the ordinates.
type cubic struct {
	xs, ys    []float64
	scheme    cubicScheme
	monotonic bool
	logSpace  bool

	// per-interval coefficients of a + b*s + c*s^2 + d*s^3 with
	// s = x - xs[i], fitted over the (possibly log) working values
	a, b, c, d []float64
	prim       []float64 // cumulative integral at nodes, value space only
}

func (cb *cubic) Update() error {
	if err := checkNodes(cb.xs, cb.ys); err != nil {
		return err
	}
	if cb.logSpace {
		if err := checkPositive(cb.ys); err != nil {
			return err
		}
	}

	n := len(cb.xs)
	w := make([]float64, n)
	for i, y := range cb.ys {
		if cb.logSpace {
			w[i] = math.Log(y)
		} else {
			w[i] = y
		}
	}

	h := make([]float64, n-1)
	delta := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = cb.xs[i+1] - cb.xs[i]
		delta[i] = (w[i+1] - w[i]) / h[i]
	}

	var m []float64
	if n == 2 {
		m = []float64{delta[0], delta[0]}
	} else if cb.scheme == schemeKruger {
		m = krugerSlopes(h, delta)
	} else {
		m = naturalSplineSlopes(h, delta)
	}
	if cb.monotonic {
		hymanFilter(m, delta)
	}

	cb.a = resize(cb.a, n-1)
	cb.b = resize(cb.b, n-1)
	cb.c = resize(cb.c, n-1)
	cb.d = resize(cb.d, n-1)
	for i := 0; i < n-1; i++ {
		cb.a[i] = w[i]
		cb.b[i] = m[i]
		cb.c[i] = (3*delta[i] - 2*m[i] - m[i+1]) / h[i]
		cb.d[i] = (m[i] + m[i+1] - 2*delta[i]) / (h[i] * h[i])
	}

	if !cb.logSpace {
		cb.prim = resize(cb.prim, n)
		cb.prim[0] = 0
		for i := 0; i < n-1; i++ {
			cb.prim[i+1] = cb.prim[i] + cb.segmentIntegral(i, h[i])
		}
	}
	return nil
}

func resize(s []float64, n int) []float64 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]float64, n)
}

// krugerSlopes computes node derivatives per Kruger's constrained
// cubic construction: harmonic mean of adjacent secant slopes, zero at
// local extrema, one-sided conditions at the ends.
func krugerSlopes(h, delta []float64) []float64 {
	n := len(h) + 1
	m := make([]float64, n)
	for i := 1; i < n-1; i++ {
		if delta[i-1]*delta[i] <= 0 {
			m[i] = 0
			continue
		}
		m[i] = 2 / (1/delta[i-1] + 1/delta[i])
	}
	m[0] = 1.5*delta[0] - 0.5*m[1]
	m[n-1] = 1.5*delta[n-2] - 0.5*m[n-2]
	return m
}

// naturalSplineSlopes solves the tridiagonal system for the natural C2
// spline's second derivatives and converts them to node slopes.
func naturalSplineSlopes(h, delta []float64) []float64 {
	n := len(h) + 1
	// second derivatives, natural boundary: sec[0] = sec[n-1] = 0
	sec := make([]float64, n)
	diag := make([]float64, n)
	rhs := make([]float64, n)
	for i := 1; i < n-1; i++ {
		diag[i] = 2 * (h[i-1] + h[i])
		rhs[i] = 6 * (delta[i] - delta[i-1])
	}
	// Thomas forward sweep over the interior rows
	for i := 2; i < n-1; i++ {
		f := h[i-1] / diag[i-1]
		diag[i] -= f * h[i-1]
		rhs[i] -= f * rhs[i-1]
	}
	for i := n - 2; i >= 1; i-- {
		sec[i] = (rhs[i] - h[i]*sec[i+1]) / diag[i]
	}

	m := make([]float64, n)
	for i := 0; i < n-1; i++ {
		m[i] = delta[i] - h[i]*(2*sec[i]+sec[i+1])/6
	}
	m[n-1] = delta[n-2] + h[n-2]*(2*sec[n-1]+sec[n-2])/6
	return m
}

// hymanFilter clamps node slopes so each section preserves the
// monotonicity of its secants.
func hymanFilter(m, delta []float64) {
	n := len(m)
	for i := 0; i < n; i++ {
		var lo, hi float64
		switch {
		case i == 0:
			lo, hi = slopeBounds(delta[0])
		case i == n-1:
			lo, hi = slopeBounds(delta[n-2])
		default:
			if delta[i-1]*delta[i] <= 0 {
				m[i] = 0
				continue
			}
			lo, hi = slopeBounds(delta[i-1])
			lo2, hi2 := slopeBounds(delta[i])
			lo = math.Max(lo, lo2)
			hi = math.Min(hi, hi2)
		}
		m[i] = math.Min(math.Max(m[i], lo), hi)
	}
}

func slopeBounds(d float64) (lo, hi float64) {
	if d >= 0 {
		return 0, 3 * d
	}
	return 3 * d, 0
}

func (cb *cubic) MaxX() float64 { return cb.xs[len(cb.xs)-1] }

func (cb *cubic) Value(x float64) float64 {
	i := section(cb.xs, x)
	s := x - cb.xs[i]
	v := cb.a[i] + s*(cb.b[i]+s*(cb.c[i]+s*cb.d[i]))
	if cb.logSpace {
		return math.Exp(v)
	}
	return v
}

func (cb *cubic) Derivative(x float64) float64 {
	i := section(cb.xs, x)
	s := x - cb.xs[i]
	dv := cb.b[i] + s*(2*cb.c[i]+3*s*cb.d[i])
	if cb.logSpace {
		return cb.Value(x) * dv
	}
	return dv
}

func (cb *cubic) segmentIntegral(i int, s float64) float64 {
	return s * (cb.a[i] + s*(cb.b[i]/2+s*(cb.c[i]/3+s*cb.d[i]/4)))
}

func (cb *cubic) Primitive(x float64) float64 {
	if cb.logSpace {
		panic("interp: log-space cubic has no closed-form primitive")
	}
	i := section(cb.xs, x)
	return cb.prim[i] + cb.segmentIntegral(i, x-cb.xs[i])
}
