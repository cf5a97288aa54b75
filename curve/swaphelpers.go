package curve

import (
	"fmt"
	"time"

	"github.com/ordli77/interestrate/calendar"
	"github.com/ordli77/interestrate/market"
	"github.com/ordli77/interestrate/quote"
)

// SwapHelperConfig describes a par fixed-vs-IBOR swap helper.
type SwapHelperConfig struct {
	Quote         *quote.Quote
	Spot          time.Time
	Tenor         market.Period
	FixedFreq     market.Frequency
	FixedDayCount market.DayCount
	Calendar      calendar.ID
	Index         market.Index
	PayDelay      int
	// Discount is the external discounting curve; nil means the curve
	// under construction discounts its own cash flows.
	Discount *Handle
	// Projection is the external forwarding curve for the floating leg;
	// nil projects off the curve under construction.
	Projection *Handle
}

// SwapRateHelper calibrates against a par swap rate: the fixed rate
// making the fixed and floating legs equal in value. The floating leg
// projects off the curve under construction unless an external
// projection handle is given, which turns the helper into a discount
// curve constraint.
type SwapRateHelper struct {
	baseHelper
	fixed         []market.SchedulePeriod
	floating      []market.SchedulePeriod
	fixedDayCount market.DayCount
	index         market.Index
	disc          *Handle
	projection    *Handle
}

// NewSwapRateHelper builds the helper and both coupon schedules. Dates
// are fixed here; only curve values move during calibration.
func NewSwapRateHelper(cfg SwapHelperConfig) (*SwapRateHelper, error) {
	if cfg.Quote == nil {
		return nil, configErrorf("swap %s: nil quote", cfg.Tenor)
	}
	if cfg.Spot.IsZero() {
		return nil, configErrorf("swap %s: spot date not set", cfg.Tenor)
	}
	if cfg.Tenor.IsZero() {
		return nil, configErrorf("swap: empty tenor")
	}
	if cfg.Index.Tenor.IsZero() {
		return nil, configErrorf("swap %s: index %s has no tenor", cfg.Tenor, cfg.Index.Name)
	}
	if cfg.FixedFreq <= 0 {
		cfg.FixedFreq = market.FreqAnnual
	}
	if cfg.FixedDayCount == "" {
		cfg.FixedDayCount = market.ThirtyE360
	}
	cal := cfg.Calendar
	if cal == "" {
		cal = cfg.Index.Calendar
	}

	maturity := calendar.Adjust(cal, cfg.Tenor.AddTo(cfg.Spot))
	fixed, err := market.BuildSchedule(cfg.Spot, maturity, market.ScheduleSpec{
		Frequency: cfg.FixedFreq,
		Calendar:  cal,
		PayDelay:  cfg.PayDelay,
		Backward:  true,
	})
	if err != nil {
		return nil, configErrorf("swap %s fixed leg: %v", cfg.Tenor, err)
	}
	floating, err := market.BuildSchedule(cfg.Spot, maturity, market.ScheduleSpec{
		Frequency: market.Frequency(indexMonths(cfg.Index)),
		Calendar:  cfg.Index.Calendar,
		PayDelay:  cfg.PayDelay,
		FixingLag: cfg.Index.FixingLag,
		Backward:  true,
	})
	if err != nil {
		return nil, configErrorf("swap %s floating leg: %v", cfg.Tenor, err)
	}

	return &SwapRateHelper{
		baseHelper: baseHelper{
			q:        cfg.Quote,
			earliest: cfg.Spot,
			pillar:   lastRelevantDate(fixed, floating),
			name:     fmt.Sprintf("swap %s", cfg.Tenor),
		},
		fixed:         fixed,
		floating:      floating,
		fixedDayCount: cfg.FixedDayCount,
		index:         cfg.Index,
		disc:          cfg.Discount,
		projection:    cfg.Projection,
	}, nil
}

func (h *SwapRateHelper) Handles() []*Handle {
	var hs []*Handle
	if h.disc != nil {
		hs = append(hs, h.disc)
	}
	if h.projection != nil {
		hs = append(hs, h.projection)
	}
	return hs
}

// ImpliedQuote returns the par fixed rate implied by the current curve
// state: floating leg value over the fixed leg annuity.
func (h *SwapRateHelper) ImpliedQuote() (float64, error) {
	var annuity float64
	for _, p := range h.fixed {
		df, err := h.discount(h.disc, p.Pay)
		if err != nil {
			return 0, err
		}
		annuity += h.fixedDayCount.YearFraction(p.Start, p.End) * df
	}
	var floatPV float64
	for _, p := range h.floating {
		fwd, err := h.forward(h.projection, p, h.index.DayCount)
		if err != nil {
			return 0, err
		}
		df, err := h.discount(h.disc, p.Pay)
		if err != nil {
			return 0, err
		}
		floatPV += fwd * h.index.DayCount.YearFraction(p.Start, p.End) * df
	}
	if annuity == 0 {
		return 0, fmt.Errorf("%s: zero fixed annuity", h.name)
	}
	return floatPV / annuity, nil
}

// OISHelperConfig describes a fixed-vs-overnight swap helper.
type OISHelperConfig struct {
	Quote         *quote.Quote
	Spot          time.Time
	Tenor         market.Period
	FixedFreq     market.Frequency // default annual
	FixedDayCount market.DayCount  // default: index day count
	Index         market.Index     // overnight index
	PayDelay      int
	// Discount is the external discounting curve; nil self-discounts,
	// the usual case for the overnight curve itself.
	Discount *Handle
}

// OISRateHelper calibrates against an OIS par rate. Both legs share
// one schedule; the floating leg compounds the overnight rate over
// each period, which the curve expresses as a discount factor ratio.
type OISRateHelper struct {
	baseHelper
	periods       []market.SchedulePeriod
	fixedDayCount market.DayCount
	index         market.Index
	disc          *Handle
}

// NewOISRateHelper builds the helper. Tenors shorter than the fixed
// frequency produce a single period, the textbook single-coupon OIS.
func NewOISRateHelper(cfg OISHelperConfig) (*OISRateHelper, error) {
	if cfg.Quote == nil {
		return nil, configErrorf("ois %s: nil quote", cfg.Tenor)
	}
	if cfg.Spot.IsZero() {
		return nil, configErrorf("ois %s: spot date not set", cfg.Tenor)
	}
	if cfg.Tenor.IsZero() {
		return nil, configErrorf("ois: empty tenor")
	}
	if !cfg.Index.Overnight {
		return nil, configErrorf("ois %s: index %s is not overnight", cfg.Tenor, cfg.Index.Name)
	}
	if cfg.FixedFreq <= 0 {
		cfg.FixedFreq = market.FreqAnnual
	}
	if cfg.FixedDayCount == "" {
		cfg.FixedDayCount = cfg.Index.DayCount
	}

	maturity := calendar.Adjust(cfg.Index.Calendar, cfg.Tenor.AddTo(cfg.Spot))
	periods, err := market.BuildSchedule(cfg.Spot, maturity, market.ScheduleSpec{
		Frequency: cfg.FixedFreq,
		Calendar:  cfg.Index.Calendar,
		PayDelay:  cfg.PayDelay,
		Chained:   true,
		Backward:  true,
	})
	if err != nil {
		return nil, configErrorf("ois %s: %v", cfg.Tenor, err)
	}

	return &OISRateHelper{
		baseHelper: baseHelper{
			q:        cfg.Quote,
			earliest: cfg.Spot,
			pillar:   lastRelevantDate(periods, nil),
			name:     fmt.Sprintf("ois %s", cfg.Tenor),
		},
		periods:       periods,
		fixedDayCount: cfg.FixedDayCount,
		index:         cfg.Index,
		disc:          cfg.Discount,
	}, nil
}

func (h *OISRateHelper) Handles() []*Handle {
	if h.disc == nil {
		return nil
	}
	return []*Handle{h.disc}
}

// ImpliedQuote returns the par OIS rate implied by the current curve
// state.
func (h *OISRateHelper) ImpliedQuote() (float64, error) {
	var annuity, floatPV float64
	for _, p := range h.periods {
		df, err := h.discount(h.disc, p.Pay)
		if err != nil {
			return 0, err
		}
		fwd, err := h.forward(nil, p, h.index.DayCount)
		if err != nil {
			return 0, err
		}
		annuity += h.fixedDayCount.YearFraction(p.Start, p.End) * df
		floatPV += fwd * h.index.DayCount.YearFraction(p.Start, p.End) * df
	}
	if annuity == 0 {
		return 0, fmt.Errorf("%s: zero fixed annuity", h.name)
	}
	return floatPV / annuity, nil
}

// BasisHelperConfig describes a float-float basis swap helper quoted
// as a spread on the base leg.
type BasisHelperConfig struct {
	Quote      *quote.Quote
	Spot       time.Time
	Tenor      market.Period
	BaseIndex  market.Index // leg carrying the quoted spread
	OtherIndex market.Index // flat leg
	// Discount is required: both legs discount on it. Projection is
	// the external projection curve for whichever leg the curve under
	// construction does not project.
	Discount   *Handle
	Projection *Handle
	// BootstrapBase selects which leg the curve under construction
	// projects: the base (spread) leg when true, the other leg when
	// false.
	BootstrapBase bool
	PayDelay      int
}

// BasisSwapRateHelper calibrates against a basis swap spread: the
// spread on the base leg equating both floating legs under common
// discounting.
type BasisSwapRateHelper struct {
	baseHelper
	base          []market.SchedulePeriod
	other         []market.SchedulePeriod
	baseIndex     market.Index
	otherIndex    market.Index
	disc          *Handle
	projection    *Handle
	bootstrapBase bool
}

// NewBasisSwapRateHelper builds the helper. The discounting handle
// must exist; it may still be unlinked, but evaluating before it is
// linked fails with a DependencyError.
func NewBasisSwapRateHelper(cfg BasisHelperConfig) (*BasisSwapRateHelper, error) {
	if cfg.Quote == nil {
		return nil, configErrorf("basis %s: nil quote", cfg.Tenor)
	}
	if cfg.Spot.IsZero() {
		return nil, configErrorf("basis %s: spot date not set", cfg.Tenor)
	}
	if cfg.Tenor.IsZero() {
		return nil, configErrorf("basis: empty tenor")
	}
	if cfg.Discount == nil {
		return nil, configErrorf("basis %s: discount handle required", cfg.Tenor)
	}
	// Projecting both legs off the curve under construction would
	// couple pillars beyond the sequential bootstrap; an external
	// projection for the non-bootstrapped leg is required.
	if cfg.Projection == nil {
		return nil, configErrorf("basis %s: projection handle required", cfg.Tenor)
	}

	maturity := calendar.Adjust(cfg.BaseIndex.Calendar, cfg.Tenor.AddTo(cfg.Spot))
	base, err := basisLegSchedule(cfg.Spot, maturity, cfg.BaseIndex, cfg.PayDelay)
	if err != nil {
		return nil, configErrorf("basis %s base leg: %v", cfg.Tenor, err)
	}
	other, err := basisLegSchedule(cfg.Spot, maturity, cfg.OtherIndex, cfg.PayDelay)
	if err != nil {
		return nil, configErrorf("basis %s other leg: %v", cfg.Tenor, err)
	}

	return &BasisSwapRateHelper{
		baseHelper: baseHelper{
			q:        cfg.Quote,
			earliest: cfg.Spot,
			pillar:   lastRelevantDate(base, other),
			name:     fmt.Sprintf("basis %s %s/%s", cfg.Tenor, cfg.BaseIndex.Name, cfg.OtherIndex.Name),
		},
		base:          base,
		other:         other,
		baseIndex:     cfg.BaseIndex,
		otherIndex:    cfg.OtherIndex,
		disc:          cfg.Discount,
		projection:    cfg.Projection,
		bootstrapBase: cfg.BootstrapBase,
	}, nil
}

func basisLegSchedule(spot, maturity time.Time, idx market.Index, payDelay int) ([]market.SchedulePeriod, error) {
	spec := market.ScheduleSpec{
		Calendar:  idx.Calendar,
		PayDelay:  payDelay,
		FixingLag: idx.FixingLag,
		Backward:  true,
	}
	if idx.Overnight {
		spec.Frequency = market.FreqAnnual
		spec.Chained = true
	} else {
		spec.Frequency = market.Frequency(indexMonths(idx))
	}
	return market.BuildSchedule(spot, maturity, spec)
}

func (h *BasisSwapRateHelper) Handles() []*Handle {
	return []*Handle{h.disc, h.projection}
}

// ImpliedQuote returns the basis spread implied by the current curve
// state: the difference of leg values over the base leg annuity.
func (h *BasisSwapRateHelper) ImpliedQuote() (float64, error) {
	baseProj, otherProj := h.projection, h.projection
	if h.bootstrapBase {
		baseProj = nil // own curve projects the base leg
	} else {
		otherProj = nil
	}

	var basePV, baseAnnuity float64
	for _, p := range h.base {
		fwd, err := h.forward(baseProj, p, h.baseIndex.DayCount)
		if err != nil {
			return 0, err
		}
		df, err := h.discount(h.disc, p.Pay)
		if err != nil {
			return 0, err
		}
		alpha := h.baseIndex.DayCount.YearFraction(p.Start, p.End)
		basePV += fwd * alpha * df
		baseAnnuity += alpha * df
	}

	var otherPV float64
	for _, p := range h.other {
		fwd, err := h.forward(otherProj, p, h.otherIndex.DayCount)
		if err != nil {
			return 0, err
		}
		df, err := h.discount(h.disc, p.Pay)
		if err != nil {
			return 0, err
		}
		otherPV += fwd * h.otherIndex.DayCount.YearFraction(p.Start, p.End) * df
	}

	if baseAnnuity == 0 {
		return 0, fmt.Errorf("%s: zero base annuity", h.name)
	}
	return (otherPV - basePV) / baseAnnuity, nil
}

// indexMonths converts an IBOR index tenor into coupon months.
func indexMonths(idx market.Index) int {
	if idx.Tenor.Unit == market.UnitYear {
		return idx.Tenor.N * 12
	}
	return idx.Tenor.N
}

// lastRelevantDate returns the latest date either schedule touches,
// the pillar an instrument constrains.
func lastRelevantDate(a, b []market.SchedulePeriod) time.Time {
	var last time.Time
	for _, s := range [][]market.SchedulePeriod{a, b} {
		for _, p := range s {
			if p.End.After(last) {
				last = p.End
			}
			if p.Pay.After(last) {
				last = p.Pay
			}
		}
	}
	return last
}
