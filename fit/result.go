package fit

// Result is the outcome of one fit.
//
// All per-parameter slices are indexed in the model's declared parameter
// order. A fit that ran out of iterations is still a Result, flagged by
// Converged; only structural failures (bad bindings, invalid overrides,
// model evaluation errors) surface as errors from Fit.
type Result struct {
	// Names are the parameter short names, in declared order.
	Names []string
	// Values are the estimated (or held, for fixed parameters) values.
	Values []float64
	// StdErrs are the standard errors of the estimates. Fixed parameters
	// report zero; entries are NaN when the error surface is degenerate or
	// no residual degrees of freedom remain (samples <= free parameters).
	StdErrs []float64
	// Confidence holds the half-width of each parameter's confidence
	// interval at the engine's configured level.
	Confidence []float64
	// Covariance is the full parameter covariance matrix, with zero rows and
	// columns for fixed parameters. Nil when not computable.
	Covariance [][]float64

	// Curve is the fitted model output over the dataset's time axis.
	Curve []float64

	// RSS is the residual sum of squares at the solution.
	RSS float64
	// RSquared is the coefficient of determination of the fitted curve.
	RSquared float64
	// RMSE is the root mean square error of the fitted curve.
	RMSE float64

	// Iterations counts outer optimizer iterations; Evaluations counts model
	// function calls, including those spent on finite differences.
	Iterations  int
	Evaluations int

	// Converged reports whether the optimizer met its tolerance within the
	// iteration budget.
	Converged bool
	// SolverMessage is the diagnostic from the final model evaluation, empty
	// for closed-form models.
	SolverMessage string
}

// Named returns the estimated values keyed by parameter short name.
func (r *Result) Named() map[string]float64 {
	out := make(map[string]float64, len(r.Names))
	for i, name := range r.Names {
		out[name] = r.Values[i]
	}

	return out
}

// Value returns the named parameter's estimate.
func (r *Result) Value(name string) (float64, bool) {
	for i, n := range r.Names {
		if n == name {
			return r.Values[i], true
		}
	}

	return 0, false
}
