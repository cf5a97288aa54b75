package market

import (
	"fmt"
	"strings"

	"github.com/ordli77/interestrate/calendar"
)

// Index identifies a floating-rate benchmark and its fixing
// conventions. Overnight indices have a zero tenor.
type Index struct {
	Name      string
	Tenor     Period
	Calendar  calendar.ID
	DayCount  DayCount
	FixingLag int // business days from accrual start back to fixing
	Overnight bool
}

// NewIborIndex builds a term-fixing index convention.
func NewIborIndex(name string, tenor Period, cal calendar.ID, dc DayCount, fixingLag int) Index {
	return Index{Name: name, Tenor: tenor, Calendar: cal, DayCount: dc, FixingLag: fixingLag}
}

// NewOvernightIndex builds an overnight index convention.
func NewOvernightIndex(name string, cal calendar.ID, dc DayCount) Index {
	return Index{Name: name, Calendar: cal, DayCount: dc, Overnight: true}
}

// Preset index conventions for the markets exercised by the demos and
// tests.
var (
	ESTR = Index{
		Name:      "ESTR",
		Calendar:  calendar.TARGET,
		DayCount:  Act360,
		Overnight: true,
	}

	SOFR = Index{
		Name:      "SOFR",
		Calendar:  calendar.USD,
		DayCount:  Act360,
		Overnight: true,
	}

	TONAR = Index{
		Name:      "TONAR",
		Calendar:  calendar.JPN,
		DayCount:  Act365F,
		Overnight: true,
	}

	Euribor3M = Index{
		Name:      "EURIBOR3M",
		Tenor:     Period{N: 3, Unit: UnitMonth},
		Calendar:  calendar.TARGET,
		DayCount:  Act360,
		FixingLag: 2,
	}

	Euribor6M = Index{
		Name:      "EURIBOR6M",
		Tenor:     Period{N: 6, Unit: UnitMonth},
		Calendar:  calendar.TARGET,
		DayCount:  Act360,
		FixingLag: 2,
	}

	// CD91 is the Korean 91-day CD rate underlying KRW IRS.
	CD91 = Index{
		Name:      "CD91",
		Tenor:     Period{N: 3, Unit: UnitMonth},
		Calendar:  calendar.KRW,
		DayCount:  Act365F,
		FixingLag: 1,
	}
)

var indexByName = map[string]Index{
	"ESTR":      ESTR,
	"SOFR":      SOFR,
	"TONAR":     TONAR,
	"EURIBOR3M": Euribor3M,
	"EURIBOR6M": Euribor6M,
	"CD91":      CD91,
}

// IndexByName resolves a config index name to its preset conventions.
func IndexByName(name string) (Index, error) {
	idx, ok := indexByName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Index{}, fmt.Errorf("unknown index %q", name)
	}
	return idx, nil
}
