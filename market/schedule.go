package market

import (
	"fmt"
	"time"

	"github.com/ordli77/interestrate/calendar"
	"github.com/ordli77/interestrate/utils"
)

// SchedulePeriod is one coupon period with adjusted accrual dates, the
// payment date, and the fixing date of a floating coupon.
type SchedulePeriod struct {
	Start  time.Time
	End    time.Time
	Pay    time.Time
	Fixing time.Time
}

// ScheduleSpec controls coupon schedule generation.
type ScheduleSpec struct {
	Frequency Frequency
	Calendar  calendar.ID
	PayDelay  int  // business days from accrual end to payment
	FixingLag int  // business days from accrual start back to fixing
	Chained   bool // overnight legs chain accrual from the prior adjusted end
	Backward  bool // roll from maturity so dates align with it, front stub
}

// BuildSchedule generates the coupon periods between effective and
// maturity. Dates roll month-end-safe and are adjusted modified
// following on the spec's calendar. Backward generation suppresses a
// leading stub of up to a week, folding it into the first regular
// period.
func BuildSchedule(effective, maturity time.Time, spec ScheduleSpec) ([]SchedulePeriod, error) {
	if !maturity.After(effective) {
		return nil, fmt.Errorf("schedule: maturity %s not after effective %s",
			maturity.Format("2006-01-02"), effective.Format("2006-01-02"))
	}
	if spec.Frequency <= 0 {
		return nil, fmt.Errorf("schedule: unsupported frequency %d", int(spec.Frequency))
	}
	if spec.Backward {
		return buildBackward(effective, maturity, spec)
	}
	return buildForward(effective, maturity, spec)
}

func buildForward(effective, maturity time.Time, spec ScheduleSpec) ([]SchedulePeriod, error) {
	months := spec.Frequency.Months()
	periods := make([]SchedulePeriod, 0, 16)
	start := effective
	var prevEnd time.Time

	for {
		next := utils.AddMonth(start, months)
		if next.After(maturity.AddDate(0, 0, 1)) {
			break
		}

		accrualStart := calendar.Adjust(spec.Calendar, start)
		if spec.Chained && !prevEnd.IsZero() {
			accrualStart = prevEnd
		}
		accrualEnd := calendar.Adjust(spec.Calendar, next)
		pay := calendar.AddBusinessDays(spec.Calendar, accrualEnd, spec.PayDelay)

		periods = append(periods, SchedulePeriod{
			Start:  accrualStart,
			End:    accrualEnd,
			Pay:    pay,
			Fixing: calendar.AddBusinessDays(spec.Calendar, accrualStart, -spec.FixingLag),
		})

		prevEnd = accrualEnd
		start = next
	}

	if len(periods) == 0 {
		return nil, fmt.Errorf("schedule: no periods between %s and %s at frequency %s",
			effective.Format("2006-01-02"), maturity.Format("2006-01-02"), spec.Frequency)
	}
	return periods, nil
}

func buildBackward(effective, maturity time.Time, spec ScheduleSpec) ([]SchedulePeriod, error) {
	months := spec.Frequency.Months()

	var unadjusted []time.Time
	for current := maturity; current.After(effective); current = utils.AddMonth(current, -months) {
		unadjusted = append([]time.Time{current}, unadjusted...)
	}

	// Fold a stub of up to a week into the first regular period.
	if len(unadjusted) > 1 {
		if d := utils.Days(effective, unadjusted[0]); d > 0 && d <= 7 {
			unadjusted = unadjusted[1:]
		}
	}
	unadjusted = append([]time.Time{effective}, unadjusted...)

	periods := make([]SchedulePeriod, 0, len(unadjusted)-1)
	var prevEnd time.Time
	for i := 0; i < len(unadjusted)-1; i++ {
		accrualStart := calendar.Adjust(spec.Calendar, unadjusted[i])
		if spec.Chained && !prevEnd.IsZero() {
			accrualStart = prevEnd
		}
		accrualEnd := calendar.Adjust(spec.Calendar, unadjusted[i+1])
		pay := calendar.AddBusinessDays(spec.Calendar, accrualEnd, spec.PayDelay)

		periods = append(periods, SchedulePeriod{
			Start:  accrualStart,
			End:    accrualEnd,
			Pay:    pay,
			Fixing: calendar.AddBusinessDays(spec.Calendar, accrualStart, -spec.FixingLag),
		})
		prevEnd = accrualEnd
	}
	return periods, nil
}
