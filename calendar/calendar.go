// Package calendar provides business-day calendars and date-roll
// conventions for curve construction and coupon schedules.
package calendar

import (
	"sync"
	"time"
)

// ID identifies a holiday calendar.
type ID string

const (
	// Weekends treats every weekday as good. Useful for tests and for
	// markets whose holiday file has not been loaded.
	Weekends ID = "WEEKENDS"

	TARGET ID = "TARGET"
	USD    ID = "USD"
	JPN    ID = "JPN"
	KRW    ID = "KRW"
)

var (
	holidayMu  sync.RWMutex
	holidaySet = map[ID]map[string]struct{}{}
)

// RegisterHolidays adds holiday dates (midnight UTC) to the named
// calendar. Feeds typically call this once at startup; registering the
// same date twice is harmless.
func RegisterHolidays(cal ID, dates ...time.Time) {
	holidayMu.Lock()
	defer holidayMu.Unlock()
	set, ok := holidaySet[cal]
	if !ok {
		set = make(map[string]struct{}, len(dates))
		holidaySet[cal] = set
	}
	for _, d := range dates {
		set[d.Format("2006-01-02")] = struct{}{}
	}
}

func isHoliday(cal ID, t time.Time) bool {
	holidayMu.RLock()
	defer holidayMu.RUnlock()
	set, ok := holidaySet[cal]
	if !ok {
		return false
	}
	_, hit := set[t.Format("2006-01-02")]
	return hit
}

// IsBusinessDay checks weekends and the calendar's registered holidays.
func IsBusinessDay(cal ID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	if cal == Weekends {
		return true
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following: roll forward to the next business
// day unless that crosses a month end, in which case roll backward.
func Adjust(cal ID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a plain Following convention (no month
// preservation).
func AdjustFollowing(cal ID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal ID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// LastBusinessDayOfMonth returns the last business day of the month
// containing t.
func LastBusinessDayOfMonth(cal ID, t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, nextMonth, -1)
}

// IsEndOfMonth reports whether t is the last business day of its month.
func IsEndOfMonth(cal ID, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}
