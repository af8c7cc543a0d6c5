package curve_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/cdscore/curve"
)

func TestBootstrapZeroCurve_MoneyMarketKnot(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	mm := []curve.MoneyMarketInstrument{
		{MaturityDate: base.AddDate(0, 3, 0), Rate: 0.02},
	}

	zc, err := curve.BootstrapZeroCurve(base, mm, nil, curve.DefaultSolverConfig)
	if err != nil {
		t.Fatalf("BootstrapZeroCurve error: %v", err)
	}

	t365 := float64(zc.Times()[0])
	df := zc.DiscountFactor(t365)
	if df <= 0 || df >= 1 {
		t.Fatalf("discount factor out of range: %v", df)
	}
}

func TestBootstrapZeroCurve_SwapKnotResidualZero(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	mm := []curve.MoneyMarketInstrument{
		{MaturityDate: base.AddDate(0, 6, 0), Rate: 0.021},
	}
	swapMaturity := base.AddDate(2, 0, 0)
	swaps := []curve.SwapInstrument{
		{
			MaturityDate: swapMaturity,
			FixedRate:    0.025,
			PaymentDates: []time.Time{base.AddDate(1, 0, 0), swapMaturity},
			YearFractions: []float64{1.0, 1.0},
		},
	}

	zc, err := curve.BootstrapZeroCurve(base, mm, swaps, curve.DefaultSolverConfig)
	if err != nil {
		t.Fatalf("BootstrapZeroCurve error: %v", err)
	}

	sum := 0.0
	for i, pd := range swaps[0].PaymentDates {
		t := pd.Sub(base).Hours() / 24.0 / 365.0
		sum += swaps[0].FixedRate * swaps[0].YearFractions[i] * zc.DiscountFactor(t)
	}
	tN := swapMaturity.Sub(base).Hours() / 24.0 / 365.0
	residual := sum + zc.DiscountFactor(tN) - 1.0
	if math.Abs(residual) > 1e-9 {
		t.Fatalf("par swap residual too large: %v", residual)
	}
}

func TestZeroCurve_BumpParallelLeavesOriginalUnchanged(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	mm := []curve.MoneyMarketInstrument{{MaturityDate: base.AddDate(1, 0, 0), Rate: 0.02}}
	zc, err := curve.BootstrapZeroCurve(base, mm, nil, curve.DefaultSolverConfig)
	if err != nil {
		t.Fatalf("BootstrapZeroCurve error: %v", err)
	}

	before := zc.ZeroRate(1.0)
	bumped := zc.BumpParallel(100) // 100bp
	after := zc.ZeroRate(1.0)
	if before != after {
		t.Fatalf("BumpParallel mutated the receiver: before=%v after=%v", before, after)
	}

	diff := bumped.ZeroRate(1.0) - before
	if math.Abs(diff-0.01) > 1e-9 {
		t.Fatalf("100bp bump should shift the zero rate by 0.01, got %v", diff)
	}
}

func TestBootstrapZeroCurve_RejectsEmptyInstrumentSet(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	if _, err := curve.BootstrapZeroCurve(base, nil, nil, curve.DefaultSolverConfig); err == nil {
		t.Fatalf("expected an error when no money-market or swap instruments are supplied")
	}
}
