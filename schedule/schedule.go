// Package schedule builds CDS coupon schedules: contiguous accrual periods
// running backward from maturity by the contract's payment frequency, with
// a front stub absorbing any leftover days between accrual_start and the
// first regular roll date.
package schedule

import (
	"time"

	"github.com/meenmo/cdscore/calendar"
)

// Frequency is the CDS coupon period length.
type Frequency int

const (
	Annual Frequency = iota
	SemiAnnual
	Quarterly
	Monthly
)

func (f Frequency) months() int {
	switch f {
	case Annual:
		return 12
	case SemiAnnual:
		return 6
	case Quarterly:
		return 3
	case Monthly:
		return 1
	default:
		return 3
	}
}

// Period is a single accrual period of a CDS schedule.
type Period struct {
	AccrualStart time.Time
	AccrualEnd   time.Time // unadjusted
	PaymentDate  time.Time // accrual_end adjusted by the bad-day convention
	YearFraction float64
}

// CDSSchedule is the ordered, contiguous sequence of accrual periods for a
// CDS contract. periods[i].AccrualEnd == periods[i+1].AccrualStart
// (unadjusted) for every i.
type CDSSchedule struct {
	Periods []Period
}

// Generate builds a CDSSchedule running backward from maturity by freq,
// stopping once a generated date is at or before accrualStart; the
// leftover interval becomes a front stub. The final period's accrual_end
// is exactly maturity+1 day (ISDA's protection-includes-maturity
// convention) and its payment date is that same unadjusted date run
// through the bad-day convention.
func Generate(accrualStart, maturity time.Time, freq Frequency, dayCount calendar.DayCountConvention, badDay calendar.BadDayConvention, cal *calendar.Calendar) CDSSchedule {
	months := freq.months()

	var unadjusted []time.Time
	current := maturity
	for current.After(accrualStart) {
		unadjusted = append([]time.Time{current}, unadjusted...)
		current = calendar.AddMonths(current, -months)
	}
	if len(unadjusted) == 0 || !unadjusted[0].Equal(accrualStart) {
		unadjusted = append([]time.Time{accrualStart}, unadjusted...)
	}

	// ISDA protection-includes-maturity: the final period's accrual_end is
	// maturity+1 day, not maturity itself.
	unadjusted[len(unadjusted)-1] = maturity.AddDate(0, 0, 1)

	periods := make([]Period, 0, len(unadjusted)-1)
	for i := 0; i < len(unadjusted)-1; i++ {
		start := unadjusted[i]
		end := unadjusted[i+1]
		yf := calendar.YearFraction(start, end, dayCount)
		pay := cal.Adjust(end, badDay)
		periods = append(periods, Period{
			AccrualStart: start,
			AccrualEnd:   end,
			PaymentDate:  pay,
			YearFraction: yf,
		})
	}

	return CDSSchedule{Periods: periods}
}
