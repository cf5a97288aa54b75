package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/ordli77/interestrate/utils"
)

// Frequency enumerates payment/reset frequencies in months.
type Frequency int

const (
	FreqAnnual    Frequency = 12
	FreqSemi      Frequency = 6
	FreqQuarterly Frequency = 3
	FreqMonthly   Frequency = 1
)

// ParseFrequency maps config spellings to a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annual", "12m", "1y":
		return FreqAnnual, nil
	case "semiannual", "semi", "6m":
		return FreqSemi, nil
	case "quarterly", "3m":
		return FreqQuarterly, nil
	case "monthly", "1m":
		return FreqMonthly, nil
	}
	return 0, fmt.Errorf("unknown frequency %q", s)
}

// Months returns the coupon period length in months.
func (f Frequency) Months() int { return int(f) }

// PerYear returns the number of coupon periods per year.
func (f Frequency) PerYear() float64 {
	if f <= 0 {
		return 0
	}
	return 12 / float64(f)
}

func (f Frequency) String() string {
	switch f {
	case FreqAnnual:
		return "annual"
	case FreqSemi:
		return "semiannual"
	case FreqQuarterly:
		return "quarterly"
	case FreqMonthly:
		return "monthly"
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// DayCount enumerates the supported day-count conventions.
type DayCount string

const (
	Act360     DayCount = "ACT/360"
	Act365F    DayCount = "ACT/365F"
	Thirty360  DayCount = "30/360"
	ThirtyE360 DayCount = "30E/360"
)

// ParseDayCount validates a config day-count spelling.
func ParseDayCount(s string) (DayCount, error) {
	switch DayCount(strings.ToUpper(strings.TrimSpace(s))) {
	case Act360:
		return Act360, nil
	case Act365F:
		return Act365F, nil
	case Thirty360:
		return Thirty360, nil
	case ThirtyE360:
		return ThirtyE360, nil
	}
	return "", fmt.Errorf("unknown day count %q", s)
}

// YearFraction computes the accrual fraction between two dates.
func (dc DayCount) YearFraction(start, end time.Time) float64 {
	switch dc {
	case Act360:
		return utils.Days(start, end) / 360
	case Thirty360, ThirtyE360:
		// 30E/360 Eurobond basis: day numbers capped at 30
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360
	default:
		return utils.Days(start, end) / 365
	}
}
