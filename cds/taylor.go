package cds

import "math"

// oneMinusExpOverX computes (1 - e^-x) / x. Near x = 0 this expression is a
// 0/0 removable singularity; below the threshold it is replaced by its
// Taylor series to preserve precision.
func oneMinusExpOverX(x, threshold float64) float64 {
	if math.Abs(x) > threshold {
		return (1 - math.Exp(-x)) / x
	}
	// (1 - e^-x)/x = 1 - x/2 + x^2/6 - x^3/24 + x^4/120 - ...
	return 1 - x/2 + x*x/6 - x*x*x/24 + x*x*x*x/120
}

// accrualWeightedDecay computes [(1-e^-x)/x - e^-x] / x, the other
// removable-singularity term that falls out of integrating a linearly
// growing accrued amount against an exponentially decaying survival*discount
// density over a sub-interval. Also 0/0 at x = 0.
func accrualWeightedDecay(x, threshold float64) float64 {
	if math.Abs(x) > threshold {
		return (oneMinusExpOverX(x, threshold) - math.Exp(-x)) / x
	}
	// [(1-e^-x)/x - e^-x]/x = 1/2 - x/3 + x^2/8 - x^3/30 + ...
	return 0.5 - x/3 + x*x/8 - x*x*x/30
}
