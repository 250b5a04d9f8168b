package solve

import (
	"github.com/tracefit/tracefit/internal/options"
)

type config struct {
	maxIterations int
	maxExpand     int
	tolerance     float64
	parallelism   int
	guesses       []float64
}

func newConfig(opts ...Option) config {
	cfg := config{
		maxIterations: 100,
		maxExpand:     52,
		tolerance:     1e-10,
	}
	// Options in this package cannot fail.
	_ = options.Apply(&cfg, opts...)

	return cfg
}

// Option configures Root and Samples.
type Option = options.Option[*config]

// WithMaxIterations bounds the narrowing iterations of one root search.
// The default is 100.
func WithMaxIterations(n int) Option {
	return options.NoError(func(cfg *config) {
		if n > 0 {
			cfg.maxIterations = n
		}
	})
}

// WithTolerance sets the absolute convergence tolerance on |f(y)| and on
// the interval width. The default is 1e-10.
func WithTolerance(tol float64) Option {
	return options.NoError(func(cfg *config) {
		if tol > 0 {
			cfg.tolerance = tol
		}
	})
}

// WithParallelism sets the worker count for Samples. Zero (the default)
// uses one worker per CPU; one forces sequential evaluation.
func WithParallelism(n int) Option {
	return options.NoError(func(cfg *config) {
		if n >= 0 {
			cfg.parallelism = n
		}
	})
}

// WithGuesses supplies a per-sample initial guess, overriding the single
// shared guess. The slice length must match the sample count passed to
// Samples.
func WithGuesses(guesses []float64) Option {
	return options.NoError(func(cfg *config) {
		cfg.guesses = guesses
	})
}

// guessFor returns the starting guess for one sample. Samples validates the
// per-sample guess count up front, so indexing here cannot miss.
func (cfg config) guessFor(i int, shared float64) float64 {
	if cfg.guesses == nil {
		return shared
	}

	return cfg.guesses[i]
}
