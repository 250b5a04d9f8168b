package fit

import (
	"github.com/tracefit/tracefit/internal/options"
)

type config struct {
	maxIterations int
	tolerance     float64
	confidence    float64
	lambda        float64
}

func newConfig(opts ...Option) config {
	cfg := config{
		maxIterations: 200,
		tolerance:     1e-8,
		confidence:    0.95,
		lambda:        1e-3,
	}
	// Engine options cannot fail.
	_ = options.Apply(&cfg, opts...)

	return cfg
}

// Option configures an Engine.
type Option = options.Option[*config]

// WithMaxIterations bounds the outer optimizer iterations of one fit.
// The default is 200. A fit that exhausts the budget returns a Result with
// Converged set to false rather than an error.
func WithMaxIterations(n int) Option {
	return options.NoError(func(cfg *config) {
		if n > 0 {
			cfg.maxIterations = n
		}
	})
}

// WithTolerance sets the relative reduction in the residual sum of squares
// below which the fit is considered converged. The default is 1e-8.
func WithTolerance(tol float64) Option {
	return options.NoError(func(cfg *config) {
		if tol > 0 {
			cfg.tolerance = tol
		}
	})
}

// WithLambda seeds the Marquardt damping factor. The default is 1e-3;
// larger values start the iteration closer to gradient descent.
func WithLambda(lambda float64) Option {
	return options.NoError(func(cfg *config) {
		if lambda > 0 {
			cfg.lambda = lambda
		}
	})
}

// WithConfidenceLevel sets the confidence level for the parameter interval
// half-widths in the Result. The default is 0.95.
func WithConfidenceLevel(level float64) Option {
	return options.NoError(func(cfg *config) {
		if level > 0 && level < 1 {
			cfg.confidence = level
		}
	})
}

type callConfig struct {
	paramValues map[string]float64
	constValues map[string]float64
	fixed       map[string]struct{}
	signals     map[string]string
}

func newCallConfig(opts ...CallOption) (callConfig, error) {
	cc := callConfig{
		fixed:   make(map[string]struct{}),
		signals: make(map[string]string),
	}
	if err := options.Apply(&cc, opts...); err != nil {
		return callConfig{}, err
	}

	return cc, nil
}

// CallOption configures a single Fit call.
type CallOption = options.Option[*callConfig]

// WithParameterValues overrides the starting value of the named parameters.
// Unnamed parameters start from their declared defaults. A starting value
// outside a parameter's fit bounds fails the call before any model
// evaluation.
func WithParameterValues(values map[string]float64) CallOption {
	return options.NoError(func(cc *callConfig) {
		if cc.paramValues == nil {
			cc.paramValues = make(map[string]float64, len(values))
		}
		for name, v := range values {
			cc.paramValues[name] = v
		}
	})
}

// WithConstantValues overrides the named constants for this call. Values are
// validated against each constant's declared range or discrete value list
// before any model evaluation.
func WithConstantValues(values map[string]float64) CallOption {
	return options.NoError(func(cc *callConfig) {
		if cc.constValues == nil {
			cc.constValues = make(map[string]float64, len(values))
		}
		for name, v := range values {
			cc.constValues[name] = v
		}
	})
}

// WithFixed holds the named parameters at their starting values instead of
// estimating them. Fixed parameters report a zero standard error.
func WithFixed(names ...string) CallOption {
	return options.NoError(func(cc *callConfig) {
		for _, name := range names {
			cc.fixed[name] = struct{}{}
		}
	})
}

// WithSignal binds a model variable to a dataset signal of a different name.
// By default each variable reads the dataset signal matching its own short
// name.
func WithSignal(variable, signal string) CallOption {
	return options.NoError(func(cc *callConfig) {
		cc.signals[variable] = signal
	})
}

// signalFor resolves the dataset signal name bound to a variable.
func (cc callConfig) signalFor(variable string) string {
	if bound, ok := cc.signals[variable]; ok {
		return bound
	}

	return variable
}
