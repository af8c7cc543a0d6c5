package calendar

import (
	"sort"
	"time"
)

// Days returns the signed number of calendar days between start and end.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// SortDates sorts a slice of time.Time in ascending order.
func SortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}

// AddMonths adds months to t, preserving day-of-month and clamping to the
// target month's length when the original day doesn't exist there (e.g.
// Jan 31 + 1M = Feb 28/29). Behaves like Excel's EDATE rather than Go's
// AddDate, which silently overflows into the following month.
func AddMonths(t time.Time, months int) time.Time {
	naive := t.AddDate(0, months, 0)

	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if naive.Month() == firstOfTarget.Month() && naive.Year() == firstOfTarget.Year() {
		return naive
	}

	// Go's AddDate overflowed past the target month's length; clamp to the
	// last day of the target month.
	d := naive
	for d.Month() == naive.Month() && d.Year() == naive.Year() {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// AddYears adds whole years to t with no end-of-month clamping beyond what
// AddMonths already provides for Feb 29 anchors (AddYears(Feb 29, 1) lands
// on Feb 28 through AddMonths' clamp, never on Mar 1 as Go's own AddDate
// would).
func AddYears(t time.Time, years int) time.Time {
	return AddMonths(t, years*12)
}

// Bracket returns the two adjacent dates from a sorted, ascending slice
// (with at least two elements) that bracket target. Dates outside the
// range return the nearest boundary pair (flat extrapolation upstream).
func Bracket(dates []time.Time, target time.Time) (time.Time, time.Time) {
	if len(dates) < 2 {
		panic("calendar.Bracket: need at least 2 dates")
	}
	i := sort.Search(len(dates), func(i int) bool {
		return !dates[i].Before(target)
	})
	if i <= 0 {
		return dates[0], dates[1]
	}
	if i >= len(dates) {
		return dates[len(dates)-2], dates[len(dates)-1]
	}
	if dates[i].Equal(target) && i > 0 {
		return dates[i-1], dates[i]
	}
	return dates[i-1], dates[i]
}
