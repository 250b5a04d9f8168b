package solve

import (
	"fmt"
	"math"
)

// Report describes the outcome of one scalar root search.
type Report struct {
	// Converged reports whether the search met the tolerance within its
	// iteration budget.
	Converged bool
	// Iterations is the number of function-narrowing iterations performed.
	Iterations int
	// Message is a human-readable diagnostic for the search, always set.
	Message string
}

// Root finds y such that f(y) = 0, starting from guess.
//
// The search first expands a bracket around the guess until f changes sign,
// then narrows it with Brent's method. When no sign change can be found, a
// damped secant iteration from the guess is used instead. On failure the
// last attempted estimate is returned together with a non-convergence
// Report; Root never panics and never returns NaN silently — a NaN estimate
// is reported in the message.
func Root(f func(float64) float64, guess float64, opts ...Option) (float64, Report) {
	cfg := newConfig(opts...)

	fg := f(guess)
	if math.Abs(fg) <= cfg.tolerance {
		return guess, Report{
			Converged: true,
			Message:   "initial guess already satisfies tolerance",
		}
	}

	if lo, hi, flo, fhi, ok := expandBracket(f, guess, fg, cfg); ok {
		return brent(f, lo, hi, flo, fhi, cfg)
	}

	return secant(f, guess, fg, cfg)
}

// expandBracket searches outward from the guess for an interval with a sign
// change, doubling the step each probe.
func expandBracket(f func(float64) float64, guess, fg float64, cfg config) (lo, hi, flo, fhi float64, ok bool) {
	step := math.Max(math.Abs(guess), 1.0) * 1e-2

	for i := 0; i < cfg.maxExpand; i++ {
		lo = guess - step
		hi = guess + step

		flo = f(lo)
		if !sameSignOrNaN(fg, flo) {
			return lo, guess, flo, fg, true
		}
		fhi = f(hi)
		if !sameSignOrNaN(fg, fhi) {
			return guess, hi, fg, fhi, true
		}

		step *= 2
	}

	return 0, 0, 0, 0, false
}

func sameSignOrNaN(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return true
	}

	return (a > 0) == (b > 0)
}

// brent narrows a bracketing interval [lo, hi] with Brent's method:
// inverse quadratic interpolation where stable, secant otherwise, and
// bisection as the safeguard.
func brent(f func(float64) float64, a, b, fa, fb float64, cfg config) (float64, Report) {
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}

	c, fc := a, fa
	d := c // previous value of c; unused until mflag clears
	mflag := true

	for iter := 1; iter <= cfg.maxIterations; iter++ {
		if fb == 0 || math.Abs(b-a) <= cfg.tolerance {
			return b, Report{
				Converged:  true,
				Iterations: iter,
				Message:    fmt.Sprintf("converged after %d iterations", iter),
			}
		}

		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation.
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// Secant step.
			s = b - fb*(b-a)/(fb-fa)
		}

		// Fall back to bisection when the candidate is out of range or the
		// step is not shrinking fast enough.
		mid := (a + b) / 2
		useBisection := (s < math.Min(mid, b) || s > math.Max(mid, b)) ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2)
		if useBisection {
			s = mid
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

	return b, Report{
		Converged:  false,
		Iterations: cfg.maxIterations,
		Message: fmt.Sprintf("no convergence after %d iterations; returning last estimate %g",
			cfg.maxIterations, b),
	}
}

// secant runs a damped secant iteration for the no-bracket case.
func secant(f func(float64) float64, guess, fg float64, cfg config) (float64, Report) {
	x0, f0 := guess, fg
	x1 := guess + math.Max(math.Abs(guess), 1.0)*1e-4
	f1 := f(x1)

	best, fbest := x0, math.Abs(f0)
	if math.Abs(f1) < fbest {
		best, fbest = x1, math.Abs(f1)
	}

	for iter := 1; iter <= cfg.maxIterations; iter++ {
		denom := f1 - f0
		if denom == 0 || math.IsNaN(denom) {
			break
		}

		x2 := x1 - f1*(x1-x0)/denom
		if math.IsNaN(x2) || math.IsInf(x2, 0) {
			break
		}

		f2 := f(x2)
		if math.Abs(f2) < fbest {
			best, fbest = x2, math.Abs(f2)
		}
		if math.Abs(f2) <= cfg.tolerance || math.Abs(x2-x1) <= cfg.tolerance {
			return x2, Report{
				Converged:  true,
				Iterations: iter,
				Message:    fmt.Sprintf("converged after %d iterations", iter),
			}
		}

		x0, f0 = x1, f1
		x1, f1 = x2, f2
	}

	return best, Report{
		Converged:  false,
		Iterations: cfg.maxIterations,
		Message: fmt.Sprintf("no sign change bracket found; returning best estimate %g (|f|=%g)",
			best, fbest),
	}
}
