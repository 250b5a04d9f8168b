package gadoxetate

import "math"

// expConv convolves the concentration curve a with the normalized
// exponential kernel exp(-t/T)/T over a possibly non-uniform time grid,
// using the piecewise-linear recursion that is exact for linearly
// interpolated input.
func expConv(T float64, times, a []float64) []float64 {
	n := len(times)
	f := make([]float64, n)
	if n == 0 {
		return f
	}
	if T == 0 {
		copy(f, a)
		return f
	}

	for i := 1; i < n; i++ {
		x := (times[i] - times[i-1]) / T
		if x == 0 {
			f[i] = f[i-1]
			continue
		}

		e := math.Exp(-x)
		e0 := 1 - e
		e1 := x - e0
		f[i] = e*f[i-1] + a[i-1]*e0 + (a[i]-a[i-1])*e1/x
	}

	return f
}

// cumTrapz returns the running trapezoidal integral of a over times,
// starting at zero.
func cumTrapz(times, a []float64) []float64 {
	out := make([]float64, len(times))
	for i := 1; i < len(times); i++ {
		out[i] = out[i-1] + (times[i]-times[i-1])*(a[i]+a[i-1])/2
	}

	return out
}
