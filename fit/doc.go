// Package fit estimates model parameters against measured curves.
//
// The entry point is the Engine: it binds a model's variables to dataset
// signals, seeds the parameter vector from the model's declared defaults,
// and runs a bounded Levenberg-Marquardt iteration against the fit target
// signal. Estimates come back in a Result together with standard errors,
// confidence interval half-widths, the covariance matrix and goodness-of-fit
// statistics.
//
//	engine := fit.New(fit.WithConfidenceLevel(0.95))
//	res, err := engine.Fit(ctx, m, ds,
//	    fit.WithConstantValues(map[string]float64{"FA": 15}),
//	)
//
// The engine treats the model function as a black box: closed-form and
// implicit models fit identically, and an implicit model's per-sample solver
// diagnostic is surfaced in Result.SolverMessage.
package fit
