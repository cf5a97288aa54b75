package curve

import (
	"fmt"
	"time"

	"github.com/ordli77/interestrate/calendar"
	"github.com/ordli77/interestrate/market"
	"github.com/ordli77/interestrate/quote"
	"github.com/ordli77/interestrate/utils"
)

// RateHelper turns one market quote into a calibration constraint. The
// bootstrapper solves each helper's pillar value so that ImpliedQuote
// reproduces the observed quote.
type RateHelper interface {
	// Quote returns the observed market quote.
	Quote() *quote.Quote
	// EarliestDate is the first date the instrument's cash flows
	// touch; it must not precede the curve reference date.
	EarliestDate() time.Time
	// PillarDate is the last date the instrument constrains, the
	// pivot solved for this helper.
	PillarDate() time.Time
	// Handles lists the dependency handles the helper evaluates, for
	// dirty propagation.
	Handles() []*Handle
	// SetCurve binds the curve under construction.
	SetCurve(*PiecewiseCurve)
	// ImpliedQuote prices the instrument off the current curve state.
	ImpliedQuote() (float64, error)
	// Name identifies the helper in errors and logs.
	Name() string
}

type baseHelper struct {
	q        *quote.Quote
	earliest time.Time
	pillar   time.Time
	c        *PiecewiseCurve
	name     string
}

func (b *baseHelper) Quote() *quote.Quote        { return b.q }
func (b *baseHelper) EarliestDate() time.Time    { return b.earliest }
func (b *baseHelper) PillarDate() time.Time      { return b.pillar }
func (b *baseHelper) Handles() []*Handle         { return nil }
func (b *baseHelper) SetCurve(c *PiecewiseCurve) { b.c = c }
func (b *baseHelper) Name() string               { return b.name }

// discount reads the handle when given, else the curve under
// construction. Handle targets are read with extrapolation on:
// intermediate dates near the frontier are the bootstrap's normal
// state.
func (b *baseHelper) discount(h *Handle, d time.Time) (float64, error) {
	if h == nil {
		return b.c.discountByDate(d)
	}
	ts, err := h.Term()
	if err != nil {
		return 0, &DependencyError{Helper: b.name}
	}
	return ts.DiscountFactor(d, true)
}

// forward computes the simple forward rate of one floating period off
// the projection source (handle, or the curve under construction when
// h is nil).
func (b *baseHelper) forward(h *Handle, p market.SchedulePeriod, dc market.DayCount) (float64, error) {
	dfs, err := b.discount(h, p.Start)
	if err != nil {
		return 0, err
	}
	dfe, err := b.discount(h, p.End)
	if err != nil {
		return 0, err
	}
	alpha := dc.YearFraction(p.Start, p.End)
	if alpha <= 0 {
		return 0, fmt.Errorf("%s: empty accrual %s to %s", b.name,
			p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
	}
	return (dfs/dfe - 1) / alpha, nil
}

// DepositRateHelper calibrates against a money-market deposit quote:
// a single accrual period from the spot date.
type DepositRateHelper struct {
	baseHelper
	dayCount market.DayCount
}

// NewDepositRateHelper builds a deposit helper. The maturity is spot
// plus tenor, adjusted modified following on the index calendar.
func NewDepositRateHelper(q *quote.Quote, spot time.Time, tenor market.Period, idx market.Index) (*DepositRateHelper, error) {
	if q == nil {
		return nil, configErrorf("deposit %s: nil quote", tenor)
	}
	if spot.IsZero() {
		return nil, configErrorf("deposit %s: spot date not set", tenor)
	}
	if tenor.IsZero() {
		return nil, configErrorf("deposit: empty tenor")
	}
	maturity := calendar.Adjust(idx.Calendar, tenor.AddTo(spot))
	return &DepositRateHelper{
		baseHelper: baseHelper{
			q:        q,
			earliest: spot,
			pillar:   maturity,
			name:     fmt.Sprintf("deposit %s", tenor),
		},
		dayCount: idx.DayCount,
	}, nil
}

// ImpliedQuote returns the simple rate over the deposit period implied
// by the curve under construction.
func (h *DepositRateHelper) ImpliedQuote() (float64, error) {
	dfs, err := h.c.discountByDate(h.earliest)
	if err != nil {
		return 0, err
	}
	dfe, err := h.c.discountByDate(h.pillar)
	if err != nil {
		return 0, err
	}
	alpha := h.dayCount.YearFraction(h.earliest, h.pillar)
	return (dfs/dfe - 1) / alpha, nil
}

// FRARateHelper calibrates against a forward rate agreement: a single
// forward period starting monthsToStart months after spot, spanning
// the index tenor.
type FRARateHelper struct {
	baseHelper
	start    time.Time
	dayCount market.DayCount
}

// NewFRARateHelper builds a FRA helper, e.g. monthsToStart 9 with a 6M
// index for a 9x15 FRA.
func NewFRARateHelper(q *quote.Quote, spot time.Time, monthsToStart int, idx market.Index) (*FRARateHelper, error) {
	if q == nil {
		return nil, configErrorf("fra: nil quote")
	}
	if spot.IsZero() {
		return nil, configErrorf("fra: spot date not set")
	}
	if monthsToStart < 0 {
		return nil, configErrorf("fra: negative start offset %d", monthsToStart)
	}
	if idx.Tenor.IsZero() {
		return nil, configErrorf("fra: index %s has no tenor", idx.Name)
	}
	tenorMonths := idx.Tenor.N
	if idx.Tenor.Unit == market.UnitYear {
		tenorMonths *= 12
	}
	start := calendar.Adjust(idx.Calendar, utils.AddMonth(spot, monthsToStart))
	end := calendar.Adjust(idx.Calendar, idx.Tenor.AddTo(start))
	return &FRARateHelper{
		baseHelper: baseHelper{
			q:        q,
			earliest: start,
			pillar:   end,
			name:     fmt.Sprintf("fra %dx%d", monthsToStart, monthsToStart+tenorMonths),
		},
		start:    start,
		dayCount: idx.DayCount,
	}, nil
}

// ImpliedQuote returns the simple forward rate over the FRA period
// implied by the curve under construction.
func (h *FRARateHelper) ImpliedQuote() (float64, error) {
	dfs, err := h.c.discountByDate(h.start)
	if err != nil {
		return 0, err
	}
	dfe, err := h.c.discountByDate(h.pillar)
	if err != nil {
		return 0, err
	}
	alpha := h.dayCount.YearFraction(h.start, h.pillar)
	return (dfs/dfe - 1) / alpha, nil
}
