// Package solve adapts scalar root-finding for implicit models.
//
// An implicit model cannot be written as y = f(x, params); instead it
// exposes a per-sample zero equation f(y; x, params) = 0. This package
// evaluates such models point by point: Root finds a single root from an
// initial guess (bracket expansion plus Brent's method, with a secant
// fallback), and Samples drives Root across every sample of a curve,
// optionally in parallel.
//
//	roots, msgs, err := solve.Samples(ctx, func(i int, y float64) float64 {
//	    return spgrSignal(y, consts) - measured[i]
//	}, 0, len(measured))
//
// Per-sample failures degrade to the last estimate plus a diagnostic
// message rather than aborting the batch; the fit engine decides what to do
// with a degraded curve.
package solve
