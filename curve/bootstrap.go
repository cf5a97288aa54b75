package curve

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ordli77/interestrate/interp"
	"github.com/ordli77/interestrate/solver"
)

// calibrate bootstraps the curve pillar by pillar. The first sweep
// fits the interpolation over a growing prefix so each solve sees only
// the pivots fixed so far; non-local methods then re-sweep the full
// pillar set until the pivots stop moving.
func (c *PiecewiseCurve) calibrate() error {
	c.calibrating = true
	defer func() { c.calibrating = false }()

	started := time.Now()

	c.values[0] = c.trait.initialValue()
	for i, h := range c.helpers {
		c.values[i+1] = c.trait.guess(h.Quote().Value(), c.times[i+1])
	}

	if _, err := c.sweep(true); err != nil {
		return err
	}

	if !interp.Local(c.method) {
		converged := false
		for s := 0; s < c.maxSweeps && !converged; s++ {
			shift, err := c.sweep(false)
			if err != nil {
				return err
			}
			converged = shift <= c.accuracy
		}
		if !converged {
			return &CalibrationError{
				Curve:  c.name,
				Helper: "bootstrap",
				Pillar: c.MaxDate(),
				Err:    fmt.Errorf("pivots still moving after %d sweeps", c.maxSweeps),
			}
		}
	}

	c.dirty = false
	c.log.Debug().
		Str("curve", c.name).
		Str("trait", c.trait.String()).
		Str("method", c.method.String()).
		Int("pillars", len(c.helpers)).
		Dur("elapsed", time.Since(started)).
		Msg("curve calibrated")
	return nil
}

// sweep solves every pillar once, left to right, and reports the
// largest pivot move. On the first sweep the interpolation is refitted
// over each prefix before its pillar is solved.
func (c *PiecewiseCurve) sweep(first bool) (float64, error) {
	var maxShift float64
	for i := 1; i < len(c.times); i++ {
		if first {
			in, err := interp.New(c.method, c.times[:i+1], c.values[:i+1])
			if err != nil {
				return 0, &CalibrationError{
					Curve:  c.name,
					Helper: c.helpers[i-1].Name(),
					Pillar: c.dates[i],
					Err:    err,
				}
			}
			c.in = in
		}
		prev := c.values[i]
		if err := c.solvePillar(i); err != nil {
			return 0, err
		}
		if shift := math.Abs(c.values[i] - prev); shift > maxShift {
			maxShift = shift
		}
	}
	return maxShift, nil
}

// solvePillar root-finds pivot i so its helper reprices to the market
// quote.
func (c *PiecewiseCurve) solvePillar(i int) error {
	h := c.helpers[i-1]
	target := h.Quote().Value()
	lo, hi := c.trait.bracket(c.values[i-1], c.times[i]-c.times[i-1], c.maxRate)

	obj := func(v float64) (float64, error) {
		c.trait.setTrial(c.values, i, v)
		if err := c.in.Update(); err != nil {
			return 0, err
		}
		implied, err := h.ImpliedQuote()
		if err != nil {
			return 0, err
		}
		return implied - target, nil
	}

	root, err := solver.Brent(obj, lo, hi, c.accuracy, c.maxIterations)
	if err != nil {
		var dep *DependencyError
		if errors.As(err, &dep) {
			return dep
		}
		ce := &CalibrationError{Curve: c.name, Helper: h.Name(), Pillar: c.dates[i], Err: err}
		var ie *solver.IterationError
		var nb *solver.NoBracketError
		switch {
		case errors.As(err, &ie):
			ce.Residual = ie.Residual
		case errors.As(err, &nb):
			if math.Abs(nb.FLo) < math.Abs(nb.FHi) {
				ce.Residual = nb.FLo
			} else {
				ce.Residual = nb.FHi
			}
		}
		return ce
	}

	c.trait.setTrial(c.values, i, root)
	if err := c.in.Update(); err != nil {
		return &CalibrationError{Curve: c.name, Helper: h.Name(), Pillar: c.dates[i], Err: err}
	}
	c.log.Debug().
		Str("curve", c.name).
		Str("helper", h.Name()).
		Time("pillar", c.dates[i]).
		Float64("value", root).
		Msg("pillar solved")
	return nil
}
