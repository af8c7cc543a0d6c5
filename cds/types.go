// Package cds prices a single-name Credit Default Swap against a
// bootstrapped discount curve and hazard curve, following the ISDA CDS
// Standard Model's fee-leg / contingent-leg decomposition.
package cds

import (
	"time"

	"github.com/meenmo/cdscore/calendar"
	"github.com/meenmo/cdscore/cdserrors"
	"github.com/meenmo/cdscore/schedule"
)

// Contract describes a single CDS trade and the conventions used to price
// it.
type Contract struct {
	TradeDate               time.Time
	StepInDate              time.Time
	AccrualStart            time.Time
	Maturity                time.Time
	CouponRateBP            int // basis points, e.g. 100 = 1%
	Notional                float64
	RecoveryRate            float64
	PayAccruedOnDefault     bool
	ProtectionFromStartDate bool
	IsBuyProtection         bool
	Frequency               schedule.Frequency
	AccrualDayCount         calendar.DayCountConvention
	BadDayConv              calendar.BadDayConvention
}

// CouponRate returns the contract's coupon as a decimal rate (e.g. 100bp
// -> 0.01).
func (c Contract) CouponRate() float64 {
	return float64(c.CouponRateBP) / 10000.0
}

// Validate checks the INVALID_INPUT conditions the core itself must catch
// (negative notional, recovery outside [0,1)) rather than let them flow
// silently into a wrong-sign or out-of-range pricing result.
func (c Contract) Validate() error {
	if c.Notional < 0 {
		return cdserrors.NewInvalidInput("notional must be non-negative, got %g", c.Notional)
	}
	if c.RecoveryRate < 0 || c.RecoveryRate >= 1 {
		return cdserrors.NewInvalidInput("recovery rate must be in [0,1), got %g", c.RecoveryRate)
	}
	return nil
}

// PricingResult packages every output of a single pricing run.
type PricingResult struct {
	PVDirty         float64
	PVClean         float64
	AccruedInterest float64
	ParSpread       float64
	RPV01           float64
	FeeLegPV        float64
	ContingentLegPV float64
	CS01            float64
	DV01            float64
}

// UpfrontResult packages the output of compute_upfront.
type UpfrontResult struct {
	Dirty   float64
	Clean   float64
	Accrued float64
}
