// Package calendar provides date arithmetic, holiday calendars, business-day
// adjustment, day-count conventions, tenor parsing, and IMM-date semantics
// for the CDS pricing core.
package calendar

import "time"

// Calendar is an immutable holiday set plus the standard Sat/Sun weekend
// rule. Construct once via NewCalendar or WeekendsOnly and reuse; there is
// no mutation after construction.
type Calendar struct {
	holidays map[string]struct{}
}

// NewCalendar builds a Calendar from an explicit holiday list.
func NewCalendar(holidays []time.Time) *Calendar {
	m := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		m[h.Format("2006-01-02")] = struct{}{}
	}
	return &Calendar{holidays: m}
}

// WeekendsOnly returns a Calendar with no holidays, i.e. only Sat/Sun are
// non-business days. Used as the default when no explicit holiday
// calendar is supplied.
func WeekendsOnly() *Calendar {
	return &Calendar{holidays: map[string]struct{}{}}
}

// IsHoliday reports whether t is in the explicit holiday set (weekends are
// not considered holidays by this method; use IsBusinessDay for the
// combined check).
func (c *Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.holidays[t.Format("2006-01-02")]
	return ok
}

// IsBusinessDay reports whether t is neither a weekend nor a holiday.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !c.IsHoliday(t)
}

// AddBusinessDays advances n business days from t. n may be negative.
func (c *Calendar) AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if c.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}
