package cds

import (
	"math"
	"time"

	"github.com/meenmo/cdscore/curve"
	"github.com/meenmo/cdscore/schedule"
)

// FeePV prices the fee leg: regular coupon payments plus, when requested,
// the expected accrued coupon paid on default.
func FeePV(valueDate time.Time, sched schedule.CDSSchedule, couponRate float64, zc *curve.ZeroCurve, cc *curve.CreditCurve, notional float64, payAccruedOnDefault bool, taylorThreshold float64) float64 {
	regular := regularCouponPV(valueDate, sched, couponRate, zc, cc, notional)
	if !payAccruedOnDefault {
		return regular
	}
	return regular + accrualOnDefaultPV(valueDate, sched, couponRate, zc, cc, notional, taylorThreshold)
}

// RPV01 is the fee leg PV at a coupon of 1 (100%) per unit notional —
// equivalently fee leg PV per unit coupon per unit notional.
func RPV01(valueDate time.Time, sched schedule.CDSSchedule, zc *curve.ZeroCurve, cc *curve.CreditCurve, payAccruedOnDefault bool, taylorThreshold float64) float64 {
	return FeePV(valueDate, sched, 1.0, zc, cc, 1.0, payAccruedOnDefault, taylorThreshold)
}

func regularCouponPV(valueDate time.Time, sched schedule.CDSSchedule, couponRate float64, zc *curve.ZeroCurve, cc *curve.CreditCurve, notional float64) float64 {
	base := zc.BaseDate
	pv := 0.0
	for i, p := range sched.Periods {
		if !p.AccrualEnd.After(valueDate) {
			continue // period entirely before value_date
		}
		isFinal := i == len(sched.Periods)-1
		obsDate := p.AccrualEnd.AddDate(0, 0, -1)
		if isFinal {
			obsDate = p.AccrualEnd
		}
		q := cc.Survival(yearsFrom(base, obsDate))
		df := zc.DiscountFactor(yearsFrom(base, p.PaymentDate))
		pv += couponRate * notional * p.YearFraction * q * df
	}
	return pv
}

// accrualOnDefaultPV integrates the expected accrued coupon paid at
// default across every schedule period, truncating each period to begin
// no earlier than valueDate and subdividing at every curve knot inside the
// truncated interval.
func accrualOnDefaultPV(valueDate time.Time, sched schedule.CDSSchedule, couponRate float64, zc *curve.ZeroCurve, cc *curve.CreditCurve, notional, taylorThreshold float64) float64 {
	base := zc.BaseDate
	accrualRate := couponRate * notional

	total := 0.0
	for _, p := range sched.Periods {
		periodStart := p.AccrualStart
		if valueDate.After(periodStart) {
			periodStart = valueDate
		}
		if !periodStart.Before(p.AccrualEnd) {
			continue
		}

		a := yearsFrom(base, periodStart)
		b := yearsFrom(base, p.AccrualEnd)

		breaks := mergeBreakpoints(a, b, zc.Times(), cc.Times())
		for i := 0; i < len(breaks)-1; i++ {
			t0, t1 := breaks[i], breaks[i+1]
			qt0, qt1 := cc.Survival(t0), cc.Survival(t1)
			dft0, dft1 := zc.DiscountFactor(t0), zc.DiscountFactor(t1)

			lambdaPrime := math.Log(qt0) - math.Log(qt1)
			forwardPrime := math.Log(dft0) - math.Log(dft1)
			x := lambdaPrime + forwardPrime
			dt := t1 - t0

			g := oneMinusExpOverX(x, taylorThreshold)
			h := accrualWeightedDecay(x, taylorThreshold)

			total += lambdaPrime * accrualRate * qt0 * dft0 * ((t0-a)*g + dt*h)
		}
	}
	return total
}
