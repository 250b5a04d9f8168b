package solve

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Samples solves n independent per-sample equations eqn(i, y) = 0 and
// returns one root and one diagnostic message per sample, both in sample
// order regardless of evaluation order.
//
// Each sample is solved from the same scalar guess; there is no cross-sample
// state, which is what makes the operation safe to parallelize. Use
// WithGuesses for per-sample warm starts and WithParallelism to control the
// worker count.
//
// A sample that fails to converge does not abort the batch: its slot holds
// the solver's last estimate and its message records the failure. The final
// sample's message is what a fit surfaces as the model's current diagnostic;
// callers needing every diagnostic consume the full message slice.
//
// The context is checked cooperatively; a cancelled ctx abandons remaining
// samples and returns ctx.Err().
func Samples(ctx context.Context, eqn func(i int, y float64) float64, guess float64, n int, opts ...Option) ([]float64, []string, error) {
	cfg := newConfig(opts...)
	if cfg.guesses != nil && len(cfg.guesses) != n {
		return nil, nil, fmt.Errorf("per-sample guesses cover %d samples, need %d", len(cfg.guesses), n)
	}

	roots := make([]float64, n)
	messages := make([]string, n)

	rootOpts := []Option{
		WithMaxIterations(cfg.maxIterations),
		WithTolerance(cfg.tolerance),
	}

	solveOne := func(i int) {
		root, report := Root(func(y float64) float64 { return eqn(i, y) }, cfg.guessFor(i, guess), rootOpts...)
		// Results are keyed by sample index, so reassembly is free and the
		// output order never depends on scheduling.
		roots[i] = root
		messages[i] = report.Message
	}

	workers := cfg.parallelism
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			solveOne(i)
		}

		return roots, messages, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			solveOne(i)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return roots, messages, nil
}
