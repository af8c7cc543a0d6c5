package curve

import (
	"math"
	"time"

	"github.com/meenmo/cdscore/cdserrors"
)

// CreditCurve is an immutable hazard curve shaped identically to ZeroCurve:
// pillars store (t, H=h*t) where survival probability Q(t) = exp(-h(t)*t).
type CreditCurve struct {
	BaseDate time.Time
	knots    []ratePillar
}

// HazardRate returns the flat-forward interpolated hazard-integrated rate
// h(t) at time t (years from BaseDate).
func (c *CreditCurve) HazardRate(t float64) float64 {
	return interpolateFlatForward(c.knots, t)
}

// Survival returns Q(t) = exp(-h(t)*t).
func (c *CreditCurve) Survival(t float64) float64 {
	return math.Exp(-cumulativeRate(c.knots, t))
}

// SurvivalAt converts a calendar date to years from BaseDate before looking
// up survival probability.
func (c *CreditCurve) SurvivalAt(d time.Time) float64 {
	return c.Survival(act365YearFraction(c.BaseDate, d))
}

// Times returns the curve's pillar times, for sub-interval subdivision by
// the leg valuation routines.
func (c *CreditCurve) Times() []float64 {
	out := make([]float64, len(c.knots))
	for i, k := range c.knots {
		out[i] = k.T
	}
	return out
}

// BumpParallel returns a new CreditCurve with every hazard rate shifted by
// deltaBp basis points, leaving the receiver untouched.
func (c *CreditCurve) BumpParallel(deltaBp float64) *CreditCurve {
	delta := deltaBp * 1e-4
	bumped := make([]ratePillar, len(c.knots))
	for i, k := range c.knots {
		h := k.R/k.T + delta
		bumped[i] = ratePillar{T: k.T, R: h * k.T}
	}
	return &CreditCurve{BaseDate: c.BaseDate, knots: bumped}
}

// ParCDSInstrument is a single par-spread quote used to bootstrap one knot
// of the credit curve.
type ParCDSInstrument struct {
	MaturityDate time.Time
	ParSpread    float64
}

// LegPricer prices the fee and contingent legs of a par CDS against a
// trial CreditCurve, used internally by the bootstrap's residual function.
// The cds package supplies the concrete implementation; curve stays
// independent of schedule/leg mechanics to avoid an import cycle.
type LegPricer interface {
	FeePV(valueDate time.Time, maturity time.Time, couponRate float64, zc *ZeroCurve, cc *CreditCurve) float64
	ContingentPV(valueDate time.Time, protectionStart, maturity time.Time, zc *ZeroCurve, cc *CreditCurve, recovery float64) float64
}

// BootstrapCreditCurve builds a CreditCurve from an ordered sequence of par
// CDS spreads. For each knot in order, only the segment (t_{k-1}, t_k] is
// free; earlier segments are held fixed at their already solved
// hazard-integrated rates.
func BootstrapCreditCurve(baseDate, protectionStart time.Time, instruments []ParCDSInstrument, zc *ZeroCurve, recovery float64, pricer LegPricer, cfg SolverConfig) (*CreditCurve, error) {
	knots := make([]ratePillar, 0, len(instruments))

	for k, inst := range instruments {
		tK := act365YearFraction(baseDate, inst.MaturityDate)
		if tK <= 0 {
			return nil, cdserrors.NewInvalidInput("CDS instrument %d matures on or before base date", k)
		}

		residual := func(hK float64) float64 {
			trial := append(append([]ratePillar{}, knots...), ratePillar{T: tK, R: hK * tK})
			trialCurve := &CreditCurve{BaseDate: baseDate, knots: trial}
			feePV := pricer.FeePV(baseDate, inst.MaturityDate, inst.ParSpread, zc, trialCurve)
			contingentPV := pricer.ContingentPV(baseDate, protectionStart, inst.MaturityDate, zc, trialCurve, recovery)
			return contingentPV - feePV
		}

		hK, err := solveBrent(residual, cfg.HazardBracketLow, cfg.HazardBracketHigh, cfg.HazardResidualTolerance, cfg.MaxIterations)
		if err != nil {
			return nil, cdserrors.NewCurveBootstrapFailed(k, "credit curve bootstrap failed: %v", err)
		}
		knots = append(knots, ratePillar{T: tK, R: hK * tK})
		if err := checkKnotOrder(knots); err != nil {
			return nil, cdserrors.NewCurveBootstrapFailed(k, "%v", err)
		}
	}

	return &CreditCurve{BaseDate: baseDate, knots: knots}, nil
}

// BootstrapFlatCreditCurve builds a single-knot CreditCurve whose hazard
// rate makes a CDS with the given maturity and par spread price at zero
// upfront.
func BootstrapFlatCreditCurve(baseDate, protectionStart, maturity time.Time, parSpread float64, zc *ZeroCurve, recovery float64, pricer LegPricer, cfg SolverConfig) (*CreditCurve, error) {
	return BootstrapCreditCurve(baseDate, protectionStart, []ParCDSInstrument{{MaturityDate: maturity, ParSpread: parSpread}}, zc, recovery, pricer, cfg)
}
