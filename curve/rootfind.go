package curve

import (
	"fmt"
	"math"
)

// SolveBrent exposes the package's bracketed root finder for callers
// outside curve (e.g. solving for par spread from a target upfront).
func SolveBrent(f func(float64) float64, lo, hi, tol float64, maxIter int) (float64, error) {
	return solveBrent(f, lo, hi, tol, maxIter)
}

// solveBrent finds a root of f within [lo, hi] using Brent's method (the
// bisection/secant/inverse-quadratic-interpolation hybrid). f(lo) and
// f(hi) must have opposite signs. Stops once |f| <= tol or the iteration
// cap is hit; never converges silently.
func solveBrent(f func(float64) float64, lo, hi, tol float64, maxIter int) (float64, error) {
	a, b := lo, hi
	fa, fb := f(a), f(b)

	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, fmt.Errorf("solveBrent: root not bracketed in [%g, %g] (f(lo)=%g, f(hi)=%g)", lo, hi, fa, fb)
	}

	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}

	c, fc := a, fa
	mflag := true
	var d float64

	for iter := 0; iter < maxIter; iter++ {
		if math.Abs(fb) <= tol {
			return b, nil
		}
		if a == c || b == c || fb == fc {
			// bracket collapsed to two distinct points: use secant
		}

		var s float64
		if fa != fc && fb != fc {
			// inverse quadratic interpolation
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// secant
			s = b - fb*(b-a)/(fb-fa)
		}

		lowBound, highBound := (3*a+b)/4, b
		if lowBound > highBound {
			lowBound, highBound = highBound, lowBound
		}

		useBisection := s < lowBound || s > highBound
		if !useBisection && mflag && math.Abs(s-b) >= math.Abs(b-c)/2 {
			useBisection = true
		}
		if !useBisection && !mflag && math.Abs(s-b) >= math.Abs(c-d)/2 {
			useBisection = true
		}
		if !useBisection && mflag && math.Abs(b-c) < tol {
			useBisection = true
		}
		if !useBisection && !mflag && math.Abs(c-d) < tol {
			useBisection = true
		}

		if useBisection {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d = c
		c, fc = b, fb

		if (fa > 0) != (fs > 0) {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}

		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}

	if math.Abs(fb) <= tol {
		return b, nil
	}
	return b, fmt.Errorf("solveBrent: did not converge to tolerance %g after %d iterations (residual=%g)", tol, maxIter, fb)
}
