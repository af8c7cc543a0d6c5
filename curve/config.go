package curve

// SolverConfig holds tolerances and iteration caps for bootstrap root
// finding, pulling the magic numbers scattered through the bootstrap
// routines into a single struct.
type SolverConfig struct {
	// SwapResidualTolerance bounds the par-swap equation residual during
	// zero curve bootstrap.
	SwapResidualTolerance float64

	// HazardResidualTolerance bounds the upfront residual during credit
	// curve bootstrap.
	HazardResidualTolerance float64

	// HazardBracketLow/High bound the search interval for a single knot's
	// hazard-integrated rate.
	HazardBracketLow  float64
	HazardBracketHigh float64

	// MaxIterations caps root-finder iterations before a bootstrap knot is
	// declared failed.
	MaxIterations int

	// TaylorThreshold is the |x| cutoff below which leg valuation switches
	// from the closed form to the Taylor expansion.
	TaylorThreshold float64
}

// DefaultSolverConfig provides sane production tolerances out of the box.
var DefaultSolverConfig = SolverConfig{
	SwapResidualTolerance:   1e-10,
	HazardResidualTolerance: 1e-14,
	HazardBracketLow:        1e-8,
	HazardBracketHigh:       10.0,
	MaxIterations:           200,
	TaylorThreshold:         1e-4,
}
