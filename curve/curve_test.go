package curve_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ordli77/interestrate/calendar"
	"github.com/ordli77/interestrate/curve"
	"github.com/ordli77/interestrate/interp"
	"github.com/ordli77/interestrate/market"
	"github.com/ordli77/interestrate/quote"
	"github.com/ordli77/interestrate/utils"
)

const roundTripTol = 1e-10

var refDate = utils.MustParseDate("2025-11-21") // Friday

// test indices pinned to the weekend calendar so fixtures do not
// depend on holiday files
var (
	testIbor6M = market.NewIborIndex("TEST6M", market.Period{N: 6, Unit: market.UnitMonth}, calendar.Weekends, market.Act360, 0)
	testIbor3M = market.NewIborIndex("TEST3M", market.Period{N: 3, Unit: market.UnitMonth}, calendar.Weekends, market.Act360, 0)
	testON     = market.NewOvernightIndex("TESTON", calendar.Weekends, market.Act360)
)

func depositHelper(t *testing.T, tenor string, rate float64) *curve.DepositRateHelper {
	t.Helper()
	h, err := curve.NewDepositRateHelper(quote.New(rate), refDate, market.MustParsePeriod(tenor), testIbor6M)
	if err != nil {
		t.Fatalf("deposit %s: %v", tenor, err)
	}
	return h
}

func fraHelper(t *testing.T, startMonths int, rate float64) *curve.FRARateHelper {
	t.Helper()
	h, err := curve.NewFRARateHelper(quote.New(rate), refDate, startMonths, testIbor6M)
	if err != nil {
		t.Fatalf("fra %dx%d: %v", startMonths, startMonths+6, err)
	}
	return h
}

func swapHelper(t *testing.T, tenor string, rate float64, disc *curve.Handle) *curve.SwapRateHelper {
	t.Helper()
	h, err := curve.NewSwapRateHelper(curve.SwapHelperConfig{
		Quote:         quote.New(rate),
		Spot:          refDate,
		Tenor:         market.MustParsePeriod(tenor),
		FixedFreq:     market.FreqAnnual,
		FixedDayCount: market.Act360,
		Index:         testIbor6M,
		Discount:      disc,
	})
	if err != nil {
		t.Fatalf("swap %s: %v", tenor, err)
	}
	return h
}

func oisHelper(t *testing.T, tenor string, rate float64, disc *curve.Handle) *curve.OISRateHelper {
	t.Helper()
	h, err := curve.NewOISRateHelper(curve.OISHelperConfig{
		Quote:    quote.New(rate),
		Spot:     refDate,
		Tenor:    market.MustParsePeriod(tenor),
		Index:    testON,
		Discount: disc,
	})
	if err != nil {
		t.Fatalf("ois %s: %v", tenor, err)
	}
	return h
}

func checkRoundTrip(t *testing.T, helpers []curve.RateHelper) {
	t.Helper()
	for _, h := range helpers {
		implied, err := h.ImpliedQuote()
		if err != nil {
			t.Fatalf("%s: ImpliedQuote: %v", h.Name(), err)
		}
		if diff := math.Abs(implied - h.Quote().Value()); diff > roundTripTol {
			t.Errorf("%s: implied %.12f vs quote %.12f, diff %g", h.Name(), implied, h.Quote().Value(), diff)
		}
	}
}

// Deposits pin their pillar discount factor analytically: a single
// accrual at rate q gives df = 1/(1+q*alpha) whatever the trait and
// interpolation.
func TestDepositPillarsAnalytic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		trait  curve.Trait
		method interp.Method
	}{
		{curve.Discount, interp.LogLinear},
		{curve.ZeroYield, interp.Linear},
		{curve.ForwardRate, interp.BackwardFlat},
	}
	quotes := map[string]float64{"3M": 0.0210, "6M": 0.0225, "1Y": 0.0240}

	for _, tc := range cases {
		helpers := []curve.RateHelper{
			depositHelper(t, "3M", quotes["3M"]),
			depositHelper(t, "6M", quotes["6M"]),
			depositHelper(t, "1Y", quotes["1Y"]),
		}
		c, err := curve.NewPiecewiseCurve(curve.Config{
			Name:          "deposits",
			ReferenceDate: refDate,
			Trait:         tc.trait,
			Method:        tc.method,
			Helpers:       helpers,
		})
		if err != nil {
			t.Fatalf("%s/%s: %v", tc.trait, tc.method, err)
		}
		for _, h := range helpers {
			df, err := c.DiscountFactor(h.PillarDate(), false)
			if err != nil {
				t.Fatalf("%s/%s: %v", tc.trait, tc.method, err)
			}
			alpha := market.Act360.YearFraction(refDate, h.PillarDate())
			want := 1 / (1 + h.Quote().Value()*alpha)
			if diff := math.Abs(df - want); diff > roundTripTol {
				t.Errorf("%s/%s %s: df %.12f, want %.12f", tc.trait, tc.method, h.Name(), df, want)
			}
		}
		checkRoundTrip(t, helpers)
	}
}

// A deposit plus FRAs whose start dates land on the previous pillar
// pin every discount factor in closed form: each accrual divides the
// running product by 1+q*alpha, whatever the interpolation.
func TestFRAChainAnalytic(t *testing.T) {
	t.Parallel()

	helpers := []curve.RateHelper{
		depositHelper(t, "6M", 0.0221),
		fraHelper(t, 6, 0.0234),
		fraHelper(t, 12, 0.0247),
	}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		Name:          "fras",
		ReferenceDate: refDate,
		Trait:         curve.ZeroYield,
		Method:        interp.Linear,
		Helpers:       helpers,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}

	want := 1.0
	prev := refDate
	for _, h := range helpers {
		end := h.PillarDate()
		want /= 1 + h.Quote().Value()*market.Act360.YearFraction(prev, end)
		df, err := c.DiscountFactor(end, false)
		if err != nil {
			t.Fatalf("%s: %v", h.Name(), err)
		}
		if diff := math.Abs(df - want); diff > 1e-9 {
			t.Errorf("%s: df %.12f, want %.12f", h.Name(), df, want)
		}
		prev = end
	}
	checkRoundTrip(t, helpers)
}

// Self-discounted par swaps satisfy R * annuity = 1 - df(maturity)
// because the floating leg telescopes. The identity is checked off the
// calibrated curve directly, independent of the helper pricing path.
func TestSwapCurveTelescoping(t *testing.T) {
	t.Parallel()

	quotes := []struct {
		tenor string
		rate  float64
	}{
		{"1Y", 0.0210}, {"2Y", 0.0219}, {"3Y", 0.0230},
		{"5Y", 0.0245}, {"7Y", 0.0258}, {"10Y", 0.0278},
	}
	var helpers []curve.RateHelper
	for _, q := range quotes {
		helpers = append(helpers, swapHelper(t, q.tenor, q.rate, nil))
	}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		Name:          "swaps",
		ReferenceDate: refDate,
		Trait:         curve.ForwardRate,
		Method:        interp.BackwardFlat,
		Helpers:       helpers,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}
	checkRoundTrip(t, helpers)

	for _, q := range quotes {
		maturity := calendar.Adjust(calendar.Weekends, market.MustParsePeriod(q.tenor).AddTo(refDate))
		fixed, err := market.BuildSchedule(refDate, maturity, market.ScheduleSpec{
			Frequency: market.FreqAnnual,
			Calendar:  calendar.Weekends,
			Backward:  true,
		})
		if err != nil {
			t.Fatalf("schedule %s: %v", q.tenor, err)
		}
		var annuity float64
		for _, p := range fixed {
			df, err := c.DiscountFactor(p.Pay, false)
			if err != nil {
				t.Fatalf("df: %v", err)
			}
			annuity += market.Act360.YearFraction(p.Start, p.End) * df
		}
		dfMat, err := c.DiscountFactor(fixed[len(fixed)-1].End, false)
		if err != nil {
			t.Fatalf("df maturity: %v", err)
		}
		if diff := math.Abs(q.rate*annuity - (1 - dfMat)); diff > 1e-9 {
			t.Errorf("%s: R*annuity = %.12f, 1-df = %.12f", q.tenor, q.rate*annuity, 1-dfMat)
		}
	}
}

// The forward-rate trait with backward-flat interpolation is constant
// between pillars, and the instantaneous forward is that constant.
func TestInstantaneousForwardFlatSegments(t *testing.T) {
	t.Parallel()

	helpers := []curve.RateHelper{
		swapHelper(t, "2Y", 0.0210, nil),
		swapHelper(t, "5Y", 0.0245, nil),
		swapHelper(t, "10Y", 0.0278, nil),
	}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.ForwardRate,
		Method:        interp.BackwardFlat,
		Helpers:       helpers,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}

	// two dates in the (2Y, 5Y] segment
	d1 := refDate.AddDate(3, 0, 0)
	d2 := refDate.AddDate(4, 0, 0)
	f1, err := c.ForwardRate(d1, d1, curve.Continuous, 0, false)
	if err != nil {
		t.Fatalf("ForwardRate: %v", err)
	}
	f2, err := c.ForwardRate(d2, d2, curve.Continuous, 0, false)
	if err != nil {
		t.Fatalf("ForwardRate: %v", err)
	}
	if math.Abs(f1-f2) > 1e-12 {
		t.Errorf("instantaneous forward not flat: %.12f vs %.12f", f1, f2)
	}

	// segments differ across pillars
	d3 := refDate.AddDate(7, 0, 0)
	f3, err := c.ForwardRate(d3, d3, curve.Continuous, 0, false)
	if err != nil {
		t.Fatalf("ForwardRate: %v", err)
	}
	if math.Abs(f3-f1) < 1e-6 {
		t.Errorf("forward segments unexpectedly equal: %.12f vs %.12f", f3, f1)
	}
}

// Non-local interpolations go through repeated bootstrap sweeps and
// must still reproduce every quote.
func TestNonLocalMethodsRoundTrip(t *testing.T) {
	t.Parallel()

	quotes := []struct {
		tenor string
		rate  float64
	}{
		{"1Y", 0.0210}, {"2Y", 0.0219}, {"3Y", 0.0230},
		{"5Y", 0.0245}, {"10Y", 0.0278},
	}
	cases := []struct {
		trait  curve.Trait
		method interp.Method
	}{
		{curve.ForwardRate, interp.ConvexMonotone},
		{curve.ZeroYield, interp.SplineCubic},
		{curve.ZeroYield, interp.Kruger},
		{curve.Discount, interp.MonotonicLogCubic},
	}
	for _, tc := range cases {
		var helpers []curve.RateHelper
		for _, q := range quotes {
			helpers = append(helpers, swapHelper(t, q.tenor, q.rate, nil))
		}
		c, err := curve.NewPiecewiseCurve(curve.Config{
			Name:          "sweeps",
			ReferenceDate: refDate,
			Trait:         tc.trait,
			Method:        tc.method,
			Helpers:       helpers,
		})
		if err != nil {
			t.Fatalf("%s/%s: %v", tc.trait, tc.method, err)
		}
		if err := c.Calibrate(); err != nil {
			t.Fatalf("%s/%s: Calibrate: %v", tc.trait, tc.method, err)
		}
		checkRoundTrip(t, helpers)
	}
}

func TestOISSinglePeriodAnalytic(t *testing.T) {
	t.Parallel()

	const q = 0.02
	h := oisHelper(t, "6M", q, nil)
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       []curve.RateHelper{h},
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}
	df, err := c.DiscountFactor(h.PillarDate(), false)
	if err != nil {
		t.Fatalf("DiscountFactor: %v", err)
	}
	alpha := market.Act360.YearFraction(refDate, h.PillarDate())
	if want := 1 / (1 + q*alpha); math.Abs(df-want) > roundTripTol {
		t.Errorf("df = %.12f, want %.12f", df, want)
	}
}

func TestZeroRateCompoundings(t *testing.T) {
	t.Parallel()

	helpers := []curve.RateHelper{
		depositHelper(t, "6M", 0.0225),
		depositHelper(t, "1Y", 0.0240),
		depositHelper(t, "2Y", 0.0252),
	}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       helpers,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}

	d := refDate.AddDate(1, 6, 0)
	df, err := c.DiscountFactor(d, false)
	if err != nil {
		t.Fatalf("DiscountFactor: %v", err)
	}
	tm := market.Act365F.YearFraction(refDate, d)

	zc, err := c.ZeroRate(d, curve.Continuous, 0, false)
	if err != nil {
		t.Fatalf("ZeroRate continuous: %v", err)
	}
	if want := -math.Log(df) / tm; math.Abs(zc-want) > 1e-12 {
		t.Errorf("continuous zero = %.12f, want %.12f", zc, want)
	}

	za, err := c.ZeroRate(d, curve.Compounded, market.FreqAnnual, false)
	if err != nil {
		t.Fatalf("ZeroRate annual: %v", err)
	}
	if want := math.Pow(1/df, 1/tm) - 1; math.Abs(za-want) > 1e-12 {
		t.Errorf("annual zero = %.12f, want %.12f", za, want)
	}

	zs, err := c.ZeroRate(d, curve.Simple, 0, false)
	if err != nil {
		t.Fatalf("ZeroRate simple: %v", err)
	}
	if want := (1/df - 1) / tm; math.Abs(zs-want) > 1e-12 {
		t.Errorf("simple zero = %.12f, want %.12f", zs, want)
	}
}

func TestForwardRateFromDiscountRatio(t *testing.T) {
	t.Parallel()

	helpers := []curve.RateHelper{
		depositHelper(t, "6M", 0.0225),
		depositHelper(t, "1Y", 0.0240),
		depositHelper(t, "2Y", 0.0252),
	}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       helpers,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}

	d1 := refDate.AddDate(0, 9, 0)
	d2 := refDate.AddDate(1, 9, 0)
	df1, _ := c.DiscountFactor(d1, false)
	df2, _ := c.DiscountFactor(d2, false)
	tm := market.Act365F.YearFraction(d1, d2)

	fc, err := c.ForwardRate(d1, d2, curve.Continuous, 0, false)
	if err != nil {
		t.Fatalf("ForwardRate: %v", err)
	}
	if want := math.Log(df1/df2) / tm; math.Abs(fc-want) > 1e-12 {
		t.Errorf("continuous forward = %.12f, want %.12f", fc, want)
	}

	fs, err := c.ForwardRate(d1, d2, curve.Simple, 0, false)
	if err != nil {
		t.Fatalf("ForwardRate simple: %v", err)
	}
	if want := (df1/df2 - 1) / tm; math.Abs(fs-want) > 1e-12 {
		t.Errorf("simple forward = %.12f, want %.12f", fs, want)
	}
}

func TestOutOfRangeQueries(t *testing.T) {
	t.Parallel()

	helpers := []curve.RateHelper{depositHelper(t, "1Y", 0.024)}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       helpers,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}

	beyond := c.MaxDate().AddDate(1, 0, 0)
	if _, err := c.DiscountFactor(beyond, false); err == nil {
		t.Fatal("query beyond last pillar succeeded without extrapolation")
	} else {
		var oor *curve.OutOfRangeError
		if !errors.As(err, &oor) {
			t.Fatalf("err = %v, want OutOfRangeError", err)
		}
	}

	df, err := c.DiscountFactor(beyond, true)
	if err != nil {
		t.Fatalf("extrapolated query failed: %v", err)
	}
	if df <= 0 || df >= 1 {
		t.Errorf("extrapolated df = %g", df)
	}

	// before the reference date even extrapolation fails
	if _, err := c.DiscountFactor(refDate.AddDate(0, 0, -7), true); err == nil {
		t.Fatal("query before reference date succeeded")
	}

	// the reference date itself discounts to one
	if df, err := c.DiscountFactor(refDate, false); err != nil || df != 1 {
		t.Fatalf("df(ref) = %v, %v", df, err)
	}
}

func TestConfigurationErrors(t *testing.T) {
	t.Parallel()

	var cfgErr *curve.ConfigurationError

	_, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
	})
	if !errors.As(err, &cfgErr) {
		t.Fatalf("empty helper list: err = %v", err)
	}

	// duplicate pillar dates
	_, err = curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers: []curve.RateHelper{
			depositHelper(t, "6M", 0.0225),
			depositHelper(t, "6M", 0.0226),
		},
	})
	if !errors.As(err, &cfgErr) {
		t.Fatalf("duplicate pillars: err = %v", err)
	}

	// forward trait needs an integrable interpolation
	_, err = curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.ForwardRate,
		Method:        interp.LogLinear,
		Helpers:       []curve.RateHelper{depositHelper(t, "6M", 0.0225)},
	})
	if !errors.As(err, &cfgErr) {
		t.Fatalf("forward trait with log-linear: err = %v", err)
	}

	// helper starting before the reference date
	_, err = curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate.AddDate(0, 0, 7),
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       []curve.RateHelper{depositHelper(t, "6M", 0.0225)},
	})
	if !errors.As(err, &cfgErr) {
		t.Fatalf("helper before reference: err = %v", err)
	}
}

func TestQuoteBumpRecalibrates(t *testing.T) {
	t.Parallel()

	q := quote.New(0.0240)
	h, err := curve.NewDepositRateHelper(q, refDate, market.MustParsePeriod("1Y"), testIbor6M)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       []curve.RateHelper{h},
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}

	before, err := c.DiscountFactor(h.PillarDate(), false)
	if err != nil {
		t.Fatalf("DiscountFactor: %v", err)
	}

	q.SetValue(0.0300)
	after, err := c.DiscountFactor(h.PillarDate(), false)
	if err != nil {
		t.Fatalf("DiscountFactor after bump: %v", err)
	}
	if after >= before {
		t.Errorf("df did not fall after a rate bump: %.12f -> %.12f", before, after)
	}

	alpha := market.Act360.YearFraction(refDate, h.PillarDate())
	if want := 1 / (1 + 0.03*alpha); math.Abs(after-want) > roundTripTol {
		t.Errorf("df after bump = %.12f, want %.12f", after, want)
	}
}

func TestCalibrateIdempotent(t *testing.T) {
	t.Parallel()

	helpers := []curve.RateHelper{
		depositHelper(t, "6M", 0.0225),
		depositHelper(t, "2Y", 0.0252),
	}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.ZeroYield,
		Method:        interp.Linear,
		Helpers:       helpers,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}

	if err := c.Calibrate(); err != nil {
		t.Fatalf("first Calibrate: %v", err)
	}
	first, err := c.Nodes()
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if err := c.Calibrate(); err != nil {
		t.Fatalf("second Calibrate: %v", err)
	}
	second, err := c.Nodes()
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	for i := range first {
		if math.Abs(first[i].Value-second[i].Value) > 1e-15 {
			t.Errorf("node %d moved between calibrations: %.15f vs %.15f", i, first[i].Value, second[i].Value)
		}
	}
}

type countingObserver struct{ updates int }

func (o *countingObserver) Update() { o.updates++ }

func TestCurveNotifiesOnlyOnRealChange(t *testing.T) {
	t.Parallel()

	q := quote.New(0.0240)
	h, err := curve.NewDepositRateHelper(q, refDate, market.MustParsePeriod("1Y"), testIbor6M)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       []curve.RateHelper{h},
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}
	if err := c.Calibrate(); err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	obs := &countingObserver{}
	c.Attach(obs)

	q.SetValue(0.0240) // unchanged value, no notification
	if obs.updates != 0 {
		t.Fatalf("updates = %d after no-op set", obs.updates)
	}
	q.SetValue(0.0250)
	if obs.updates != 1 {
		t.Fatalf("updates = %d after bump", obs.updates)
	}
	// curve already dirty: a second bump stops at the curve
	q.SetValue(0.0260)
	if obs.updates != 1 {
		t.Fatalf("updates = %d after second bump, want still 1", obs.updates)
	}
}

func TestNodesOrderedAndAnchored(t *testing.T) {
	t.Parallel()

	// helpers deliberately out of order; the curve sorts by pillar
	helpers := []curve.RateHelper{
		depositHelper(t, "2Y", 0.0252),
		depositHelper(t, "6M", 0.0225),
		depositHelper(t, "1Y", 0.0240),
	}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       helpers,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}
	nodes, err := c.Nodes()
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if len(nodes) != 4 {
		t.Fatalf("len(nodes) = %d, want 4", len(nodes))
	}
	if !nodes[0].Date.Equal(refDate) || nodes[0].Time != 0 || nodes[0].Value != 1 {
		t.Errorf("anchor node = %+v", nodes[0])
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Time <= nodes[i-1].Time {
			t.Errorf("node times not increasing at %d", i)
		}
		if nodes[i].Value >= nodes[i-1].Value {
			t.Errorf("discount factors not decreasing at %d", i)
		}
	}
	if got := c.MaxDate(); !got.Equal(nodes[len(nodes)-1].Date) {
		t.Errorf("MaxDate = %s, want %s", got.Format("2006-01-02"), nodes[len(nodes)-1].Date.Format("2006-01-02"))
	}
}

func TestCalibrationErrorOnInconsistentQuotes(t *testing.T) {
	t.Parallel()

	// a 150% deposit rate cannot be expressed inside the bracket
	helpers := []curve.RateHelper{depositHelper(t, "1Y", 15.0)}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.ZeroYield,
		Method:        interp.Linear,
		Helpers:       helpers,
		MaxRate:       0.10,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}
	err = c.Calibrate()
	var ce *curve.CalibrationError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want CalibrationError", err)
	}
	if ce.Helper != "deposit 1Y" {
		t.Errorf("offending helper = %q", ce.Helper)
	}
	if ce.Pillar.IsZero() {
		t.Error("pillar date not set on CalibrationError")
	}
}

func TestForwardRateDateOrder(t *testing.T) {
	t.Parallel()

	helpers := []curve.RateHelper{depositHelper(t, "1Y", 0.024)}
	c, err := curve.NewPiecewiseCurve(curve.Config{
		ReferenceDate: refDate,
		Trait:         curve.Discount,
		Method:        interp.LogLinear,
		Helpers:       helpers,
	})
	if err != nil {
		t.Fatalf("NewPiecewiseCurve: %v", err)
	}
	d1 := refDate.AddDate(0, 6, 0)
	if _, err := c.ForwardRate(d1, refDate, curve.Simple, 0, false); err == nil {
		t.Fatal("accepted reversed dates")
	}
}
