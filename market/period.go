// Package market holds instrument conventions: tenor periods, payment
// frequencies, day counts, rate indices, and coupon schedule
// generation.
package market

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ordli77/interestrate/utils"
)

// Unit is a tenor period unit.
type Unit byte

const (
	UnitDay Unit = iota
	UnitWeek
	UnitMonth
	UnitYear
)

func (u Unit) String() string {
	switch u {
	case UnitDay:
		return "D"
	case UnitWeek:
		return "W"
	case UnitMonth:
		return "M"
	case UnitYear:
		return "Y"
	}
	return "?"
}

// Period is a tenor like 3M or 10Y.
type Period struct {
	N    int
	Unit Unit
}

// ParsePeriod parses tenor strings like "1D", "2W", "6M", "10Y".
func ParsePeriod(s string) (Period, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if len(trimmed) < 2 {
		return Period{}, fmt.Errorf("malformed tenor %q", s)
	}
	n, err := strconv.Atoi(trimmed[:len(trimmed)-1])
	if err != nil || n <= 0 {
		return Period{}, fmt.Errorf("malformed tenor %q", s)
	}
	var u Unit
	switch trimmed[len(trimmed)-1] {
	case 'D':
		u = UnitDay
	case 'W':
		u = UnitWeek
	case 'M':
		u = UnitMonth
	case 'Y':
		u = UnitYear
	default:
		return Period{}, fmt.Errorf("malformed tenor %q", s)
	}
	return Period{N: n, Unit: u}, nil
}

// MustParsePeriod is ParsePeriod for static conventions; it panics on
// malformed input.
func MustParsePeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Period) String() string {
	return fmt.Sprintf("%d%s", p.N, p.Unit)
}

// IsZero reports an unset period.
func (p Period) IsZero() bool { return p.N == 0 }

// AddTo advances t by the period using month-end-safe month
// arithmetic. The result is unadjusted; apply a calendar roll
// separately.
func (p Period) AddTo(t time.Time) time.Time {
	switch p.Unit {
	case UnitDay:
		return t.AddDate(0, 0, p.N)
	case UnitWeek:
		return t.AddDate(0, 0, 7*p.N)
	case UnitMonth:
		return utils.AddMonth(t, p.N)
	default:
		return utils.AddMonth(t, 12*p.N)
	}
}

// Years approximates the period length in years, for ordering tenors.
func (p Period) Years() float64 {
	switch p.Unit {
	case UnitDay:
		return float64(p.N) / 365
	case UnitWeek:
		return float64(p.N) * 7 / 365
	case UnitMonth:
		return float64(p.N) / 12
	default:
		return float64(p.N)
	}
}
