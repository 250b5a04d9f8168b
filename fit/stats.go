package fit

import "math"

// rss returns the residual sum of squares between observed and fitted
// values.
func rss(observed, fitted []float64) float64 {
	var sum float64
	for i := range observed {
		d := fitted[i] - observed[i]
		sum += d * d
	}

	return sum
}

// rSquared returns the coefficient of determination of the fitted curve
// against the observed one. A constant observed curve yields NaN.
func rSquared(observed, fitted []float64) float64 {
	var mean float64
	for _, y := range observed {
		mean += y
	}
	mean /= float64(len(observed))

	var tss float64
	for _, y := range observed {
		d := y - mean
		tss += d * d
	}
	if tss == 0 {
		return math.NaN()
	}

	return 1 - rss(observed, fitted)/tss
}

// rootMeanSquareError returns the RMSE of the fitted curve.
func rootMeanSquareError(observed, fitted []float64) float64 {
	if len(observed) == 0 {
		return math.NaN()
	}

	return math.Sqrt(rss(observed, fitted) / float64(len(observed)))
}

// normalQuantile is Acklam's rational approximation to the standard normal
// inverse CDF. Relative error is below 1.15e-9 over the open unit interval.
func normalQuantile(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	if p >= 1 {
		return math.Inf(1)
	}

	a := [...]float64{
		-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00,
	}
	b := [...]float64{
		-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01,
	}
	c := [...]float64{
		-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00,
	}
	d := [...]float64{
		7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00,
	}

	const pLow = 0.02425

	switch {
	case p < pLow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p > 1-pLow:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	}
}

// tQuantile returns the quantile of Student's t distribution with dof
// degrees of freedom, via the Cornish-Fisher expansion around the normal
// quantile. Accurate to a few units in the fourth decimal for dof >= 3,
// which is ample for confidence interval half-widths.
func tQuantile(p float64, dof int) float64 {
	if dof <= 0 {
		return math.NaN()
	}

	x := normalQuantile(p)
	nu := float64(dof)

	x3 := x * x * x
	x5 := x3 * x * x
	x7 := x5 * x * x
	x9 := x7 * x * x

	g1 := (x3 + x) / 4
	g2 := (5*x5 + 16*x3 + 3*x) / 96
	g3 := (3*x7 + 19*x5 + 17*x3 - 15*x) / 384
	g4 := (79*x9 + 776*x7 + 1482*x5 - 1920*x3 - 945*x) / 92160

	return x + g1/nu + g2/(nu*nu) + g3/(nu*nu*nu) + g4/(nu*nu*nu*nu)
}
