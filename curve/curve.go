// Package curve implements piecewise yield curves bootstrapped from
// market instrument quotes. A curve stores pillar values under a
// chosen trait (discount factor, zero yield, or instantaneous
// forward), fits an interpolation over them, and recalibrates lazily
// when an observed quote or a linked dependency changes.
package curve

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ordli77/interestrate/interp"
	"github.com/ordli77/interestrate/market"
	"github.com/ordli77/interestrate/quote"
)

// Bootstrap defaults.
const (
	DefaultAccuracy      = 1e-12
	DefaultMaxIterations = 100
	DefaultMaxSweeps     = 50
	DefaultMaxRate       = 3.0
)

// TermStructure is the query surface shared by calibrated curves and
// consumed through handles.
type TermStructure interface {
	ReferenceDate() time.Time
	MaxDate() time.Time
	DiscountFactor(d time.Time, extrapolate bool) (float64, error)
	ZeroRate(d time.Time, comp Compounding, freq market.Frequency, extrapolate bool) (float64, error)
	ForwardRate(d1, d2 time.Time, comp Compounding, freq market.Frequency, extrapolate bool) (float64, error)
	Attach(quote.Observer)
	Detach(quote.Observer)
}

// Config describes a piecewise curve build.
type Config struct {
	Name          string
	ReferenceDate time.Time
	DayCount      market.DayCount // time axis convention, default ACT/365F
	Trait         Trait
	Method        interp.Method
	Helpers       []RateHelper

	Accuracy      float64 // residual tolerance in quote units, default 1e-12
	MaxIterations int     // root finder budget per pillar, default 100
	MaxSweeps     int     // bootstrap passes for non-local methods, default 50
	MaxRate       float64 // bracket half-width on continuous rates, default 3.0

	Logger *zerolog.Logger // nil silences bootstrap diagnostics
}

// Node is one calibrated curve pivot.
type Node struct {
	Date  time.Time
	Time  float64
	Value float64
}

// PiecewiseCurve is a yield curve bootstrapped helper by helper. It
// observes its helpers' quotes and dependency handles; any change
// marks it dirty and the next query recalibrates.
type PiecewiseCurve struct {
	quote.Observable

	name          string
	referenceDate time.Time
	dayCount      market.DayCount
	trait         Trait
	method        interp.Method
	helpers       []RateHelper
	accuracy      float64
	maxIterations int
	maxSweeps     int
	maxRate       float64
	log           zerolog.Logger

	dates  []time.Time
	times  []float64
	values []float64
	in     interp.Interpolation

	dirty       bool
	calibrating bool
}

// NewPiecewiseCurve validates the configuration, wires observability,
// and returns a curve that calibrates on first use. Helpers are sorted
// by pillar date; the instrument set must produce strictly increasing
// pillars after the reference date.
func NewPiecewiseCurve(cfg Config) (*PiecewiseCurve, error) {
	if cfg.ReferenceDate.IsZero() {
		return nil, configErrorf("reference date not set")
	}
	if len(cfg.Helpers) == 0 {
		return nil, configErrorf("no rate helpers")
	}
	if cfg.Trait.needsPrimitive() && !interp.SupportsPrimitive(cfg.Method) {
		return nil, configErrorf("trait %s requires an integrable interpolation, %s has no closed-form primitive",
			cfg.Trait, cfg.Method)
	}
	dc := cfg.DayCount
	if dc == "" {
		dc = market.Act365F
	}

	helpers := make([]RateHelper, len(cfg.Helpers))
	copy(helpers, cfg.Helpers)
	sort.SliceStable(helpers, func(i, j int) bool {
		return helpers[i].PillarDate().Before(helpers[j].PillarDate())
	})
	for _, h := range helpers {
		if d := h.EarliestDate(); d.Before(cfg.ReferenceDate) {
			return nil, configErrorf("%s starts %s, before the reference date %s",
				h.Name(), d.Format("2006-01-02"), cfg.ReferenceDate.Format("2006-01-02"))
		}
	}

	c := &PiecewiseCurve{
		name:          cfg.Name,
		referenceDate: cfg.ReferenceDate,
		dayCount:      dc,
		trait:         cfg.Trait,
		method:        cfg.Method,
		helpers:       helpers,
		accuracy:      cfg.Accuracy,
		maxIterations: cfg.MaxIterations,
		maxSweeps:     cfg.MaxSweeps,
		maxRate:       cfg.MaxRate,
		log:           zerolog.Nop(),
		dirty:         true,
	}
	if c.accuracy <= 0 {
		c.accuracy = DefaultAccuracy
	}
	if c.maxIterations <= 0 {
		c.maxIterations = DefaultMaxIterations
	}
	if c.maxSweeps <= 0 {
		c.maxSweeps = DefaultMaxSweeps
	}
	if c.maxRate <= 0 {
		c.maxRate = DefaultMaxRate
	}
	if cfg.Logger != nil {
		c.log = *cfg.Logger
	}

	c.dates = make([]time.Time, len(helpers)+1)
	c.times = make([]float64, len(helpers)+1)
	c.values = make([]float64, len(helpers)+1)
	c.dates[0] = c.referenceDate
	for i, h := range helpers {
		d := h.PillarDate()
		c.dates[i+1] = d
		c.times[i+1] = dc.YearFraction(c.referenceDate, d)
		if !d.After(c.dates[i]) {
			return nil, configErrorf("pillar dates not strictly increasing: %s repeats %s",
				h.Name(), d.Format("2006-01-02"))
		}
		if c.times[i+1] <= c.times[i] {
			return nil, configErrorf("pillar times not strictly increasing under %s at %s",
				dc, d.Format("2006-01-02"))
		}
	}

	for _, h := range helpers {
		h.SetCurve(c)
		h.Quote().Attach(c)
		for _, hd := range h.Handles() {
			hd.Attach(c)
		}
	}
	return c, nil
}

// Name returns the configured curve name.
func (c *PiecewiseCurve) Name() string { return c.name }

// ReferenceDate returns the curve anchor date.
func (c *PiecewiseCurve) ReferenceDate() time.Time { return c.referenceDate }

// MaxDate returns the last pillar date.
func (c *PiecewiseCurve) MaxDate() time.Time { return c.dates[len(c.dates)-1] }

// DayCount returns the curve's time axis convention.
func (c *PiecewiseCurve) DayCount() market.DayCount { return c.dayCount }

// Update marks the curve dirty and propagates to observers. It is the
// observer callback for quote bumps and handle relinks; an
// already-dirty curve stops the propagation, which also cuts
// notification cycles.
func (c *PiecewiseCurve) Update() {
	if c.dirty {
		return
	}
	c.dirty = true
	c.Notify()
}

// Nodes returns the calibrated pillars, calibrating first if needed.
func (c *PiecewiseCurve) Nodes() ([]Node, error) {
	if err := c.ensureCalibrated(); err != nil {
		return nil, err
	}
	nodes := make([]Node, len(c.dates))
	for i := range c.dates {
		nodes[i] = Node{Date: c.dates[i], Time: c.times[i], Value: c.values[i]}
	}
	return nodes, nil
}

// DiscountFactor returns the discount factor at d. Dates beyond the
// last pillar need extrapolate; dates before the reference date always
// fail.
func (c *PiecewiseCurve) DiscountFactor(d time.Time, extrapolate bool) (float64, error) {
	if err := c.ensureCalibrated(); err != nil {
		return 0, err
	}
	t, err := c.timeOf(d, extrapolate)
	if err != nil {
		return 0, err
	}
	return c.trait.discount(c.in, t), nil
}

// ZeroRate returns the zero-coupon rate from the reference date to d
// under the requested compounding.
func (c *PiecewiseCurve) ZeroRate(d time.Time, comp Compounding, freq market.Frequency, extrapolate bool) (float64, error) {
	df, err := c.DiscountFactor(d, extrapolate)
	if err != nil {
		return 0, err
	}
	t := c.dayCount.YearFraction(c.referenceDate, d)
	if t < minRateTime {
		// limit at the reference date, taken over a short stub
		t = minRateTime
		df = c.trait.discount(c.in, t)
	}
	return impliedRate(1/df, t, comp, freq)
}

// ForwardRate returns the rate between d1 and d2 under the requested
// compounding. With d1 == d2 it returns the instantaneous forward from
// the interpolator's analytic derivative, which is the common limit of
// every compounding convention.
func (c *PiecewiseCurve) ForwardRate(d1, d2 time.Time, comp Compounding, freq market.Frequency, extrapolate bool) (float64, error) {
	if d2.Before(d1) {
		return 0, configErrorf("forward rate dates out of order: %s after %s",
			d1.Format("2006-01-02"), d2.Format("2006-01-02"))
	}
	if err := c.ensureCalibrated(); err != nil {
		return 0, err
	}
	t1, err := c.timeOf(d1, extrapolate)
	if err != nil {
		return 0, err
	}
	t2, err := c.timeOf(d2, extrapolate)
	if err != nil {
		return 0, err
	}
	if t2-t1 < minRateTime {
		return c.trait.instantaneousForward(c.in, t1), nil
	}
	df1 := c.trait.discount(c.in, t1)
	df2 := c.trait.discount(c.in, t2)
	return impliedRate(df1/df2, t2-t1, comp, freq)
}

// minRateTime is the shortest year fraction a rate is quoted over;
// shorter spans collapse to the instantaneous limit.
const minRateTime = 1e-4

// Calibrate forces a bootstrap now instead of waiting for the next
// query.
func (c *PiecewiseCurve) Calibrate() error {
	return c.calibrate()
}

func (c *PiecewiseCurve) ensureCalibrated() error {
	if c.calibrating {
		return nil
	}
	if !c.dirty && c.in != nil {
		return nil
	}
	return c.calibrate()
}

// timeOf converts a query date to curve time, enforcing the range
// rules. During calibration extrapolation is always allowed so helpers
// can read the trial state.
func (c *PiecewiseCurve) timeOf(d time.Time, extrapolate bool) (float64, error) {
	if d.Before(c.referenceDate) {
		return 0, &OutOfRangeError{Date: d, Min: c.referenceDate, Max: c.MaxDate()}
	}
	t := c.dayCount.YearFraction(c.referenceDate, d)
	if !extrapolate && !c.calibrating && t > c.times[len(c.times)-1] {
		return 0, &OutOfRangeError{Date: d, Min: c.referenceDate, Max: c.MaxDate()}
	}
	return t, nil
}

// discountByDate is the helpers' view of the curve being built: during
// calibration it evaluates the trial state, afterwards the calibrated
// curve.
func (c *PiecewiseCurve) discountByDate(d time.Time) (float64, error) {
	if c == nil {
		return 0, &DependencyError{}
	}
	if !c.calibrating {
		if err := c.ensureCalibrated(); err != nil {
			return 0, err
		}
	}
	if d.Before(c.referenceDate) {
		return 0, &OutOfRangeError{Date: d, Min: c.referenceDate, Max: c.MaxDate()}
	}
	return c.trait.discount(c.in, c.dayCount.YearFraction(c.referenceDate, d)), nil
}
