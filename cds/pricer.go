package cds

import (
	"time"

	"github.com/meenmo/cdscore/calendar"
	"github.com/meenmo/cdscore/cdserrors"
	"github.com/meenmo/cdscore/curve"
	"github.com/meenmo/cdscore/schedule"
)

// parLegPricer adapts the fee/contingent leg valuation routines to the
// curve.LegPricer interface the credit curve bootstrap calls against a
// trial curve. Pricing is done per unit notional since the par equation
// (ContingentPV == FeePV) is notional-invariant.
type parLegPricer struct {
	contract        Contract
	cal             *calendar.Calendar
	taylorThreshold float64
}

func (p parLegPricer) FeePV(valueDate, maturity time.Time, couponRate float64, zc *curve.ZeroCurve, cc *curve.CreditCurve) float64 {
	sched := buildSchedule(p.contract, maturity, p.cal)
	return FeePV(valueDate, sched, couponRate, zc, cc, 1.0, p.contract.PayAccruedOnDefault, p.taylorThreshold)
}

func (p parLegPricer) ContingentPV(valueDate, protectionStart, maturity time.Time, zc *curve.ZeroCurve, cc *curve.CreditCurve, recovery float64) float64 {
	return ContingentPV(valueDate, protectionStart, maturity, zc, cc, recovery, 1.0, p.taylorThreshold)
}

func buildSchedule(c Contract, maturity time.Time, cal *calendar.Calendar) schedule.CDSSchedule {
	return schedule.Generate(c.AccrualStart, maturity, c.Frequency, c.AccrualDayCount, c.BadDayConv, cal)
}

// resolveTradeDates derives the two trade-date-dependent conventions the
// pricer assembly requires (spec.md §4.9 steps 1 and 4): the step-in date
// (trade_date + 1 business day) and the schedule anchor (previous_imm of
// trade_date). PriceCDS/BuildCreditCurve/ComputeUpfront call this on their
// own copy of the contract rather than trusting a caller-populated
// StepInDate/AccrualStart field.
func resolveTradeDates(tradeDate time.Time, cal *calendar.Calendar) (stepIn, accrualStart time.Time) {
	stepIn = cal.AddBusinessDays(tradeDate, 1)
	accrualStart = calendar.PreviousIMM(tradeDate)
	return stepIn, accrualStart
}

// NewContract builds a Contract from a trade date, maturity, and the
// essential economic terms, deriving StepInDate and AccrualStart per the
// ISDA standard conventions (spec.md §6 Defaults) rather than requiring the
// caller to compute them.
func NewContract(tradeDate, maturity time.Time, cal *calendar.Calendar, couponRateBP int, notional, recoveryRate float64, isBuyProtection bool) Contract {
	stepIn, accrualStart := resolveTradeDates(tradeDate, cal)
	return Contract{
		TradeDate:               tradeDate,
		StepInDate:              stepIn,
		AccrualStart:            accrualStart,
		Maturity:                maturity,
		CouponRateBP:            couponRateBP,
		Notional:                notional,
		RecoveryRate:            recoveryRate,
		PayAccruedOnDefault:     true,
		ProtectionFromStartDate: true,
		IsBuyProtection:         isBuyProtection,
		Frequency:               schedule.Quarterly,
		AccrualDayCount:         calendar.Act360,
		BadDayConv:              calendar.ModifiedFollowing,
	}
}

// BuildCreditCurve bootstraps a CreditCurve from one or more par CDS
// spreads, per the "multiple spreads -> bootstrap, single spread -> flat
// curve" rule of the pricer assembly.
func BuildCreditCurve(baseDate time.Time, contract Contract, cal *calendar.Calendar, instruments []curve.ParCDSInstrument, zc *curve.ZeroCurve, cfg curve.SolverConfig) (*curve.CreditCurve, error) {
	if err := contract.Validate(); err != nil {
		return nil, err
	}
	contract.StepInDate, contract.AccrualStart = resolveTradeDates(contract.TradeDate, cal)

	pricer := parLegPricer{contract: contract, cal: cal, taylorThreshold: cfg.TaylorThreshold}
	protectionStart := contract.AccrualStart
	if contract.ProtectionFromStartDate {
		protectionStart = contract.TradeDate
	}

	if len(instruments) == 0 {
		return nil, cdserrors.NewInvalidInput("at least one par CDS spread is required")
	}
	if len(instruments) == 1 {
		return curve.BootstrapFlatCreditCurve(baseDate, protectionStart, instruments[0].MaturityDate, instruments[0].ParSpread, zc, contract.RecoveryRate, pricer, cfg)
	}
	return curve.BootstrapCreditCurve(baseDate, protectionStart, instruments, zc, contract.RecoveryRate, pricer, cfg)
}

// PriceCDS assembles the full pricing result for contract against already
// bootstrapped zc/cc, per the fee/contingent/RPV01/accrued/CS01/DV01
// assembly steps of the pricer.
func PriceCDS(contract Contract, cal *calendar.Calendar, zc *curve.ZeroCurve, cc *curve.CreditCurve, cfg curve.SolverConfig) (PricingResult, error) {
	if err := contract.Validate(); err != nil {
		return PricingResult{}, err
	}
	contract.StepInDate, contract.AccrualStart = resolveTradeDates(contract.TradeDate, cal)

	protectionStart := contract.AccrualStart
	if contract.ProtectionFromStartDate {
		protectionStart = contract.TradeDate
	}

	sched := buildSchedule(contract, contract.Maturity, cal)

	base, err := priceAt(contract, sched, protectionStart, zc, cc, cfg)
	if err != nil {
		return PricingResult{}, err
	}

	ccBumped := cc.BumpParallel(1.0)
	bumpedCS01, err := priceAt(contract, sched, protectionStart, zc, ccBumped, cfg)
	if err != nil {
		return PricingResult{}, err
	}

	zcBumped := zc.BumpParallel(1.0)
	bumpedDV01, err := priceAt(contract, sched, protectionStart, zcBumped, cc, cfg)
	if err != nil {
		return PricingResult{}, err
	}

	result := base
	result.CS01 = bumpedCS01.PVDirty - base.PVDirty
	result.DV01 = bumpedDV01.PVDirty - base.PVDirty
	return result, nil
}

// priceAt computes the dirty/clean PV, par spread, and RPV01 for the given
// curves without risk sensitivities, used both for the base case and each
// bumped reprice.
func priceAt(contract Contract, sched schedule.CDSSchedule, protectionStart time.Time, zc *curve.ZeroCurve, cc *curve.CreditCurve, cfg curve.SolverConfig) (PricingResult, error) {
	valueDate := zc.BaseDate
	couponRate := contract.CouponRate()

	feePV := FeePV(valueDate, sched, couponRate, zc, cc, contract.Notional, contract.PayAccruedOnDefault, cfg.TaylorThreshold)
	contingentPV := ContingentPV(valueDate, protectionStart, contract.Maturity, zc, cc, contract.RecoveryRate, contract.Notional, cfg.TaylorThreshold)
	rpv01 := RPV01(valueDate, sched, zc, cc, contract.PayAccruedOnDefault, cfg.TaylorThreshold)

	pvDirtyBuy := contingentPV - feePV

	currentPeriodStart := currentPeriodStartFor(sched, contract.StepInDate)
	accrued := contract.Notional * couponRate * calendar.YearFraction(currentPeriodStart, contract.StepInDate, calendar.Act360)

	pvCleanBuy := pvDirtyBuy + accrued

	var parSpread float64
	if rpv01 != 0 {
		parSpread = contingentPV / (rpv01 * contract.Notional)
	}

	sign := 1.0
	if !contract.IsBuyProtection {
		sign = -1.0
	}

	return PricingResult{
		PVDirty:         sign * pvDirtyBuy,
		PVClean:         sign * pvCleanBuy,
		AccruedInterest: accrued,
		ParSpread:       parSpread,
		RPV01:           rpv01,
		FeeLegPV:        sign * feePV,
		ContingentLegPV: sign * contingentPV,
	}, nil
}

// currentPeriodStartFor returns the accrual_start of the period containing
// stepIn, or the schedule's first accrual_start if stepIn precedes every
// period (contract priced before its own effective date).
func currentPeriodStartFor(sched schedule.CDSSchedule, stepIn time.Time) time.Time {
	for _, p := range sched.Periods {
		if !stepIn.Before(p.AccrualStart) && stepIn.Before(p.AccrualEnd) {
			return p.AccrualStart
		}
	}
	if len(sched.Periods) > 0 {
		return sched.Periods[0].AccrualStart
	}
	return stepIn
}

// ComputeUpfront builds a fresh flat credit curve from parSpread and prices
// the contract's coupon against it, returning dirty/clean/accrued.
func ComputeUpfront(contract Contract, cal *calendar.Calendar, parSpread float64, zc *curve.ZeroCurve, cfg curve.SolverConfig) (UpfrontResult, error) {
	if err := contract.Validate(); err != nil {
		return UpfrontResult{}, err
	}
	contract.StepInDate, contract.AccrualStart = resolveTradeDates(contract.TradeDate, cal)

	protectionStart := contract.AccrualStart
	if contract.ProtectionFromStartDate {
		protectionStart = contract.TradeDate
	}
	cc, err := curve.BootstrapFlatCreditCurve(zc.BaseDate, protectionStart, contract.Maturity, parSpread, zc, contract.RecoveryRate, parLegPricer{contract: contract, cal: cal, taylorThreshold: cfg.TaylorThreshold}, cfg)
	if err != nil {
		return UpfrontResult{}, err
	}
	result, err := PriceCDS(contract, cal, zc, cc, cfg)
	if err != nil {
		return UpfrontResult{}, err
	}
	return UpfrontResult{Dirty: result.PVDirty, Clean: result.PVClean, Accrued: result.AccruedInterest}, nil
}

// SpreadFromUpfront solves for the par_spread whose upfront dirty PV
// matches targetUpfront, by bracketed root finding on [1e-6, 10.0].
func SpreadFromUpfront(contract Contract, cal *calendar.Calendar, targetUpfront float64, zc *curve.ZeroCurve, cfg curve.SolverConfig) (float64, error) {
	residual := func(spread float64) float64 {
		up, err := ComputeUpfront(contract, cal, spread, zc, cfg)
		if err != nil {
			return 1e300 // force the bracket away from a failing region
		}
		return up.Dirty - targetUpfront
	}
	spread, err := curve.SolveBrent(residual, 1e-6, 10.0, 1e-10, cfg.MaxIterations)
	if err != nil {
		return 0, cdserrors.NewNumericalInstability("spread-from-upfront solver failed: %v", err)
	}
	return spread, nil
}
