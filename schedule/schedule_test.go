package schedule_test

import (
	"testing"
	"time"

	"github.com/meenmo/cdscore/calendar"
	"github.com/meenmo/cdscore/schedule"
)

func TestGenerate_QuarterlyNoStub(t *testing.T) {
	t.Parallel()
	accrualStart := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	maturity := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	cal := calendar.WeekendsOnly()

	sched := schedule.Generate(accrualStart, maturity, schedule.Quarterly, calendar.Act360, calendar.ModifiedFollowing, cal)

	if len(sched.Periods) != 4 {
		t.Fatalf("expected 4 quarterly periods, got %d", len(sched.Periods))
	}
	if !sched.Periods[0].AccrualStart.Equal(accrualStart) {
		t.Fatalf("first period should start at accrualStart, got %s", sched.Periods[0].AccrualStart.Format("2006-01-02"))
	}
	last := sched.Periods[len(sched.Periods)-1]
	wantFinalEnd := maturity.AddDate(0, 0, 1)
	if !last.AccrualEnd.Equal(wantFinalEnd) {
		t.Fatalf("final accrual_end = %s, want maturity+1 = %s", last.AccrualEnd.Format("2006-01-02"), wantFinalEnd.Format("2006-01-02"))
	}
}

func TestGenerate_FrontStub(t *testing.T) {
	t.Parallel()
	accrualStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	maturity := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	cal := calendar.WeekendsOnly()

	sched := schedule.Generate(accrualStart, maturity, schedule.Quarterly, calendar.Act360, calendar.ModifiedFollowing, cal)

	if len(sched.Periods) == 0 {
		t.Fatalf("expected at least one period")
	}
	first := sched.Periods[0]
	if !first.AccrualStart.Equal(accrualStart) {
		t.Fatalf("front stub should start at accrualStart, got %s", first.AccrualStart.Format("2006-01-02"))
	}
	// Regular period length is 3 months; the front stub must be shorter.
	if first.AccrualEnd.Sub(first.AccrualStart).Hours()/24 >= 95 {
		t.Fatalf("front stub period looks like a regular period: %v days", first.AccrualEnd.Sub(first.AccrualStart).Hours()/24)
	}
}

func TestGenerate_ContiguousPeriods(t *testing.T) {
	t.Parallel()
	accrualStart := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	maturity := time.Date(2030, 12, 20, 0, 0, 0, 0, time.UTC)
	cal := calendar.WeekendsOnly()

	sched := schedule.Generate(accrualStart, maturity, schedule.Quarterly, calendar.Act360, calendar.ModifiedFollowing, cal)

	for i := 0; i < len(sched.Periods)-1; i++ {
		if !sched.Periods[i].AccrualEnd.Equal(sched.Periods[i+1].AccrualStart) {
			t.Fatalf("period %d accrual_end != period %d accrual_start", i, i+1)
		}
	}
}
