package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/cdscore/calendar"
	"github.com/meenmo/cdscore/cdserrors"
)

// MoneyMarketInstrument is a single-payment deposit/rate instrument used at
// the short end of the zero curve (tenor typically <= 1Y).
type MoneyMarketInstrument struct {
	MaturityDate time.Time
	Rate         float64 // simple ACT/360 rate
}

// SwapInstrument is a fixed-for-floating par swap instrument: a periodic
// fixed leg whose schedule dates (excluding the base date) are supplied
// pre-built by the caller. Frequency/day-count are baked into YearFractions.
type SwapInstrument struct {
	MaturityDate  time.Time
	FixedRate     float64
	PaymentDates  []time.Time // chronological, last entry == MaturityDate
	YearFractions []float64   // year fraction of each fixed period, same length as PaymentDates
}

// ZeroCurve is an immutable continuously-compounded discount curve,
// expressed as (t, R=r*t) pillars in ACT/365F years from BaseDate.
type ZeroCurve struct {
	BaseDate time.Time
	knots    []ratePillar
}

// ZeroRate returns the continuously compounded zero rate at time t (years
// from BaseDate), flat-forward interpolated/extrapolated.
func (c *ZeroCurve) ZeroRate(t float64) float64 {
	return interpolateFlatForward(c.knots, t)
}

// DiscountFactor returns exp(-r(t)*t) at time t (years from BaseDate).
func (c *ZeroCurve) DiscountFactor(t float64) float64 {
	return math.Exp(-cumulativeRate(c.knots, t))
}

// DiscountFactorAt is a convenience wrapper that converts a calendar date
// to years from BaseDate before looking up the discount factor.
func (c *ZeroCurve) DiscountFactorAt(d time.Time) float64 {
	return c.DiscountFactor(yearsFromBase(c.BaseDate, d))
}

// Times returns the curve's pillar times, for sub-interval subdivision by
// the leg valuation routines.
func (c *ZeroCurve) Times() []float64 {
	out := make([]float64, len(c.knots))
	for i, k := range c.knots {
		out[i] = k.T
	}
	return out
}

// BumpParallel returns a new ZeroCurve with every zero rate shifted by
// deltaBp basis points (1bp = 1e-4), used by DV01 bump-and-reprice.
// The receiver is left untouched.
func (c *ZeroCurve) BumpParallel(deltaBp float64) *ZeroCurve {
	delta := deltaBp * 1e-4
	bumped := make([]ratePillar, len(c.knots))
	for i, k := range c.knots {
		r := k.R/k.T + delta
		bumped[i] = ratePillar{T: k.T, R: r * k.T}
	}
	return &ZeroCurve{BaseDate: c.BaseDate, knots: bumped}
}

func yearsFromBase(base, d time.Time) float64 {
	return act365YearFraction(base, d)
}

// BootstrapZeroCurve builds a ZeroCurve from an ordered sequence of
// money-market instruments followed by an ordered sequence of par swap
// instruments. Instruments must be supplied in strictly increasing
// maturity order; mixing is not performed here, the caller concatenates
// MM then swap instruments in tenor order.
func BootstrapZeroCurve(baseDate time.Time, mm []MoneyMarketInstrument, swaps []SwapInstrument, cfg SolverConfig) (*ZeroCurve, error) {
	if len(mm)+len(swaps) == 0 {
		return nil, cdserrors.NewInvalidInput("zero curve bootstrap requires at least one instrument")
	}

	knots := make([]ratePillar, 0, len(mm)+len(swaps))

	for i, inst := range mm {
		tau360 := act360YearFraction(baseDate, inst.MaturityDate)
		t365 := act365YearFraction(baseDate, inst.MaturityDate)
		if t365 <= 0 {
			return nil, cdserrors.NewInvalidInput("money-market instrument %d matures on or before base date", i)
		}
		df := 1.0 / (1.0 + inst.Rate*tau360)
		if df <= 0 {
			return nil, cdserrors.NewNumericalInstability("money-market instrument %d produced non-positive discount factor", i)
		}
		rZero := -math.Log(df) / t365
		knots = append(knots, ratePillar{T: t365, R: rZero * t365})
		if err := checkKnotOrder(knots); err != nil {
			return nil, cdserrors.NewCurveBootstrapFailed(i, "%v", err)
		}
	}

	mmCount := len(mm)
	for i, sw := range swaps {
		knotIdx := mmCount + i
		tN := act365YearFraction(baseDate, sw.MaturityDate)
		if tN <= 0 {
			return nil, cdserrors.NewInvalidInput("swap instrument %d matures on or before base date", i)
		}

		periodTimes := make([]float64, len(sw.PaymentDates))
		for j, d := range sw.PaymentDates {
			periodTimes[j] = act365YearFraction(baseDate, d)
		}

		residual := func(rN float64) float64 {
			trial := append(append([]ratePillar{}, knots...), ratePillar{T: tN, R: rN * tN})
			sum := 0.0
			for j := range sw.PaymentDates {
				df := math.Exp(-cumulativeRate(trial, periodTimes[j]))
				sum += sw.FixedRate * sw.YearFractions[j] * df
			}
			dfN := math.Exp(-cumulativeRate(trial, tN))
			return sum + dfN - 1.0
		}

		rN, err := solveBrent(residual, -0.5, 1.0, cfg.SwapResidualTolerance, cfg.MaxIterations)
		if err != nil {
			return nil, cdserrors.NewCurveBootstrapFailed(knotIdx, "zero curve swap bootstrap failed: %v", err)
		}
		knots = append(knots, ratePillar{T: tN, R: rN * tN})
		if err := checkKnotOrder(knots); err != nil {
			return nil, cdserrors.NewCurveBootstrapFailed(knotIdx, "%v", err)
		}
	}

	return &ZeroCurve{BaseDate: baseDate, knots: knots}, nil
}

func checkKnotOrder(knots []ratePillar) error {
	for i := 1; i < len(knots); i++ {
		if knots[i].T <= knots[i-1].T {
			return fmt.Errorf("curve knots not strictly increasing at index %d (t=%g <= %g)", i, knots[i].T, knots[i-1].T)
		}
	}
	return nil
}

func act360YearFraction(d1, d2 time.Time) float64 {
	return calendar.YearFraction(d1, d2, calendar.Act360)
}

func act365YearFraction(d1, d2 time.Time) float64 {
	return calendar.YearFraction(d1, d2, calendar.Act365F)
}
