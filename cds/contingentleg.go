package cds

import (
	"math"
	"time"

	"github.com/meenmo/cdscore/curve"
)

// ContingentPV prices the protection (contingent) leg: the expected
// discounted payment of (1-R)*N at the moment of default, integrated over
// sub-intervals between protectionStart (or valueDate if later) and
// maturity, subdivided at every curve knot so forward rate and hazard rate
// are piecewise constant within each sub-interval.
func ContingentPV(valueDate, protectionStart, maturity time.Time, zc *curve.ZeroCurve, cc *curve.CreditCurve, recovery, notional, taylorThreshold float64) float64 {
	start := protectionStart
	if valueDate.After(start) {
		start = valueDate
	}
	if !start.Before(maturity) {
		return 0
	}

	base := zc.BaseDate
	t0 := yearsFrom(base, start)
	tEnd := yearsFrom(base, maturity)

	breaks := mergeBreakpoints(t0, tEnd, zc.Times(), cc.Times())

	sum := 0.0
	for i := 0; i < len(breaks)-1; i++ {
		a, b := breaks[i], breaks[i+1]
		qa, qb := cc.Survival(a), cc.Survival(b)
		dfa, dfb := zc.DiscountFactor(a), zc.DiscountFactor(b)

		lambdaPrime := math.Log(qa) - math.Log(qb)
		forwardPrime := math.Log(dfa) - math.Log(dfb)
		x := lambdaPrime + forwardPrime

		sum += lambdaPrime * oneMinusExpOverX(x, taylorThreshold) * qa * dfa
	}

	pv := (1 - recovery) * notional * sum
	dfValueDate := zc.DiscountFactorAt(valueDate)
	if dfValueDate != 1.0 {
		pv /= dfValueDate
	}
	return pv
}

func yearsFrom(base, d time.Time) float64 {
	return d.Sub(base).Hours() / 24.0 / 365.0
}

// mergeBreakpoints returns a sorted, deduplicated slice containing lo, hi,
// and every pillar time from both knot sets that lies strictly between
// them, so each resulting sub-interval sees piecewise-constant forward and
// hazard rates.
func mergeBreakpoints(lo, hi float64, knotSets ...[]float64) []float64 {
	points := []float64{lo, hi}
	for _, knots := range knotSets {
		for _, k := range knots {
			if k > lo && k < hi {
				points = append(points, k)
			}
		}
	}
	sortFloats(points)
	return dedupeFloats(points)
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func dedupeFloats(xs []float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x > out[len(out)-1]+1e-12 {
			out = append(out, x)
		}
	}
	return out
}
