package cds_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/cdscore/calendar"
	"github.com/meenmo/cdscore/cds"
	"github.com/meenmo/cdscore/schedule"
)

func TestRegularCouponPV_SkipsPeriodsBeforeValueDate(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	maturity := start.AddDate(5, 0, 0)
	cal := calendar.WeekendsOnly()

	sched := schedule.Generate(start, maturity, schedule.Quarterly, calendar.Act360, calendar.ModifiedFollowing, cal)
	// Curves are anchored at the contract's own start so discounting stays
	// fixed while only the value_date filter argument changes below.
	zc := flatZeroCurve(t, start, maturity, 0.03)
	cc := flatCreditCurve(t, start, maturity, 0.02)

	fromInception := cds.FeePV(start, sched, 0.01, zc, cc, 10_000_000, false, 1e-4)

	twoYearsIn := start.AddDate(2, 0, 0)
	fromTwoYears := cds.FeePV(twoYearsIn, sched, 0.01, zc, cc, 10_000_000, false, 1e-4)

	if fromTwoYears >= fromInception {
		t.Fatalf("skipping elapsed periods should reduce fee PV: fromInception=%v fromTwoYears=%v", fromInception, fromTwoYears)
	}
}

func TestRPV01_MatchesFeePVAtUnitCoupon(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	maturity := base.AddDate(5, 0, 0)
	cal := calendar.WeekendsOnly()

	sched := schedule.Generate(base, maturity, schedule.Quarterly, calendar.Act360, calendar.ModifiedFollowing, cal)
	zc := flatZeroCurve(t, base, maturity, 0.03)
	cc := flatCreditCurve(t, base, maturity, 0.02)

	rpv01 := cds.RPV01(base, sched, zc, cc, true, 1e-4)
	feeAtUnitCoupon := cds.FeePV(base, sched, 1.0, zc, cc, 1.0, true, 1e-4)
	if math.Abs(rpv01-feeAtUnitCoupon) > 1e-12 {
		t.Fatalf("RPV01 = %v, want %v (fee PV at c=1, N=1)", rpv01, feeAtUnitCoupon)
	}
}

func TestFeePV_AccrualOnDefaultAddsToRegularPV(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	maturity := base.AddDate(5, 0, 0)
	cal := calendar.WeekendsOnly()

	sched := schedule.Generate(base, maturity, schedule.Quarterly, calendar.Act360, calendar.ModifiedFollowing, cal)
	zc := flatZeroCurve(t, base, maturity, 0.03)
	cc := flatCreditCurve(t, base, maturity, 0.02)

	withAOD := cds.FeePV(base, sched, 0.01, zc, cc, 10_000_000, true, 1e-4)
	withoutAOD := cds.FeePV(base, sched, 0.01, zc, cc, 10_000_000, false, 1e-4)

	if withAOD <= withoutAOD {
		t.Fatalf("accrual-on-default should strictly increase fee leg PV: with=%v without=%v", withAOD, withoutAOD)
	}
}

