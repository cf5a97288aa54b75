// Package solver provides the bracketed scalar root finder used by the
// curve bootstrapper.
package solver

import (
	"fmt"
	"math"
)

// Objective is the scalar function whose root is sought. Evaluation
// may fail, e.g. when a curve dependency is unresolved; the error
// aborts the solve.
type Objective func(x float64) (float64, error)

// NoBracketError reports that the objective has the same sign at both
// interval ends.
type NoBracketError struct {
	Lo, Hi   float64
	FLo, FHi float64
}

func (e *NoBracketError) Error() string {
	return fmt.Sprintf("solver: root not bracketed in [%g, %g]: f(lo)=%g, f(hi)=%g", e.Lo, e.Hi, e.FLo, e.FHi)
}

// IterationError reports that the iteration budget was exhausted
// before the residual tolerance was met.
type IterationError struct {
	Iterations int
	Best       float64
	Residual   float64
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("solver: no convergence after %d iterations: best x=%g, residual=%g", e.Iterations, e.Best, e.Residual)
}

// Brent finds a root of f in [lo, hi] using Brent's method (inverse
// quadratic interpolation with bisection fallback). It requires f(lo)
// and f(hi) to bracket the root and converges when |f(x)| <= accuracy.
func Brent(f Objective, lo, hi, accuracy float64, maxIter int) (float64, error) {
	if accuracy <= 0 {
		return 0, fmt.Errorf("solver: accuracy must be positive, got %g", accuracy)
	}
	if maxIter <= 0 {
		return 0, fmt.Errorf("solver: maxIter must be positive, got %d", maxIter)
	}

	a, b := lo, hi
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	if math.Abs(fa) <= accuracy {
		return a, nil
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if math.Abs(fb) <= accuracy {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, &NoBracketError{Lo: lo, Hi: hi, FLo: fa, FHi: fb}
	}

	c, fc := a, fa
	d := b - a
	e := d
	for iter := 0; iter < maxIter; iter++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := 2*math.SmallestNonzeroFloat64 + 4*machineEps*math.Abs(b)
		m := 0.5 * (c - b)
		if math.Abs(fb) <= accuracy {
			return b, nil
		}
		if math.Abs(m) <= tol {
			// interval collapsed to machine precision
			if math.Abs(fb) <= accuracy {
				return b, nil
			}
			return 0, &IterationError{Iterations: iter, Best: b, Residual: fb}
		}

		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == c {
				// secant step
				p = 2 * m * s
				q = 1 - s
			} else {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2*m*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if 2*p < math.Min(3*m*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = m
				e = m
			}
		} else {
			d = m
			e = m
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else if m > 0 {
			b += tol
		} else {
			b -= tol
		}
		fb, err = f(b)
		if err != nil {
			return 0, err
		}
	}
	return 0, &IterationError{Iterations: maxIter, Best: b, Residual: fb}
}

const machineEps = 2.220446049250313e-16
