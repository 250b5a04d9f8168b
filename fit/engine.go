package fit

import (
	"context"
	"fmt"
	"math"

	"github.com/tracefit/tracefit/dataset"
	"github.com/tracefit/tracefit/internal/pool"
	"github.com/tracefit/tracefit/model"
)

// Engine estimates model parameters by damped least squares.
//
// The optimizer is a bounded Levenberg-Marquardt iteration: forward
// difference Jacobian, Marquardt damping on the normal equations, and box
// projection of every candidate step onto the parameters' fit bounds. An
// Engine is stateless between calls and safe for concurrent use.
type Engine struct {
	cfg config
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	return &Engine{cfg: newConfig(opts...)}
}

const sqrtEps = 1.4901161193847656e-08 // sqrt of float64 machine epsilon

// Fit estimates the model's parameters against the dataset and returns the
// estimates with their uncertainty statistics.
//
// The observed curve is the dataset signal bound to the model's fit target
// variable; models that stack a dependent input column read it from the
// signal bound to the input variable. Bindings default to each variable's
// short name and can be redirected with WithSignal.
//
// All structural problems (no fit target, missing or mis-sized signals,
// unknown or out-of-range overrides) fail before the model function is
// invoked. Running out of iterations is not an error: the Result carries the
// best estimate with Converged set to false.
func (e *Engine) Fit(ctx context.Context, m *model.Model, ds *dataset.Dataset, opts ...CallOption) (*Result, error) {
	cc, err := newCallConfig(opts...)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	target, ok := m.FitTarget()
	if !ok {
		return nil, fmt.Errorf("%w: model %q declares no fit target variable", model.ErrNoFitTarget, m.ShortName)
	}

	n := ds.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: dataset has no samples", dataset.ErrDataShape)
	}

	observed, err := boundSignal(ds, cc, target.ShortName)
	if err != nil {
		return nil, err
	}

	in := dataset.Input{X: ds.Times()}
	if !m.XDataOnly {
		iv, _ := m.InputVariable()
		in.Y, err = boundSignal(ds, cc, iv.ShortName)
		if err != nil {
			return nil, err
		}
	}

	consts, err := model.EncodeConstants(m.Constants, cc.constValues)
	if err != nil {
		return nil, err
	}

	params, freeIdx, err := startingParams(m, cc)
	if err != nil {
		return nil, err
	}
	lo, hi := fitBounds(m)

	evals := 0
	out, err := evalModel(ctx, m, in, params, consts)
	if err != nil {
		return nil, err
	}
	evals++

	curRSS := rss(observed, out.Values)
	lambda := e.cfg.lambda
	converged := len(freeIdx) == 0
	improved := false
	iterations := 0

	for iter := 1; iter <= e.cfg.maxIterations && !converged; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations = iter

		jac, release, jacEvals, err := jacobian(ctx, m, in, params, consts, out.Values, freeIdx, lo, hi)
		evals += jacEvals
		if err != nil {
			release()
			return nil, err
		}

		a, grad := normalEquations(jac, out.Values, observed, len(freeIdx))
		release()

		accepted := false
		for attempt := 0; attempt < 25; attempt++ {
			delta, err := solveLinear(damp(a, lambda), grad)
			if err != nil {
				lambda *= 10
				continue
			}

			trial := make([]float64, len(params))
			copy(trial, params)
			for j, pi := range freeIdx {
				trial[pi] = clamp(params[pi]+delta[j], lo[pi], hi[pi])
			}

			trialOut, err := evalModel(ctx, m, in, trial, consts)
			if err != nil {
				return nil, err
			}
			evals++

			trialRSS := rss(observed, trialOut.Values)
			if trialRSS <= curRSS {
				improvement := curRSS - trialRSS
				params, out, curRSS = trial, trialOut, trialRSS
				lambda = math.Max(lambda/10, 1e-12)
				accepted = true
				improved = true
				if improvement <= e.cfg.tolerance*(curRSS+1e-30) {
					converged = true
				}

				break
			}

			lambda *= 10
			if lambda > 1e12 {
				break
			}
		}

		// No damping level yields an acceptable step. When earlier steps did
		// descend and the residual is finite the estimate is a minimum; a fit
		// that never moved off the start (a NaN-valued curve included) has
		// simply failed.
		if !accepted {
			converged = improved && !math.IsNaN(curRSS) && !math.IsInf(curRSS, 0)
			break
		}
	}

	res := &Result{
		Names:         m.ParameterNames(),
		Values:        params,
		Curve:         out.Values,
		RSS:           curRSS,
		RSquared:      rSquared(observed, out.Values),
		RMSE:          rootMeanSquareError(observed, out.Values),
		Iterations:    iterations,
		Evaluations:   evals,
		Converged:     converged,
		SolverMessage: out.Message,
	}

	statEvals, err := e.uncertainty(ctx, res, m, in, consts, observed, out.Values, freeIdx, lo, hi)
	if err != nil {
		return nil, err
	}
	res.Evaluations += statEvals

	return res, nil
}

// Evaluate runs the model once at its starting parameter values without
// fitting, returning the curve and the model's diagnostic message. It is
// what a hosting plot layer calls to preview a model before estimation.
func (e *Engine) Evaluate(ctx context.Context, m *model.Model, ds *dataset.Dataset, opts ...CallOption) ([]float64, string, error) {
	cc, err := newCallConfig(opts...)
	if err != nil {
		return nil, "", err
	}
	if err := m.Validate(); err != nil {
		return nil, "", err
	}
	if ds.Len() == 0 {
		return nil, "", fmt.Errorf("%w: dataset has no samples", dataset.ErrDataShape)
	}

	in := dataset.Input{X: ds.Times()}
	if !m.XDataOnly {
		iv, _ := m.InputVariable()
		in.Y, err = boundSignal(ds, cc, iv.ShortName)
		if err != nil {
			return nil, "", err
		}
	}

	consts, err := model.EncodeConstants(m.Constants, cc.constValues)
	if err != nil {
		return nil, "", err
	}
	params, _, err := startingParams(m, cc)
	if err != nil {
		return nil, "", err
	}

	out, err := evalModel(ctx, m, in, params, consts)
	if err != nil {
		return nil, "", err
	}

	return out.Values, out.Message, nil
}

// uncertainty fills the Result's covariance, standard errors and confidence
// half-widths from the Jacobian at the solution. A degenerate error surface
// leaves NaN entries for the free parameters; fixed parameters report zero.
func (e *Engine) uncertainty(ctx context.Context, res *Result, m *model.Model, in dataset.Input, consts model.Blob, observed, fitted []float64, freeIdx []int, lo, hi []float64) (int, error) {
	p := len(res.Values)
	res.StdErrs = make([]float64, p)
	res.Confidence = make([]float64, p)
	for _, pi := range freeIdx {
		res.StdErrs[pi] = math.NaN()
		res.Confidence[pi] = math.NaN()
	}

	dof := len(observed) - len(freeIdx)
	if len(freeIdx) == 0 || dof <= 0 {
		return 0, nil
	}

	jac, release, evals, err := jacobian(ctx, m, in, res.Values, consts, fitted, freeIdx, lo, hi)
	if err != nil {
		release()
		return evals, err
	}
	a, _ := normalEquations(jac, fitted, observed, len(freeIdx))
	release()

	inv, err := invert(a)
	if err != nil {
		// Singular curvature: estimates stand, uncertainties stay NaN.
		return evals, nil
	}

	s2 := res.RSS / float64(dof)
	tcrit := tQuantile(0.5+e.cfg.confidence/2, dof)

	cov := make([][]float64, p)
	for i := range cov {
		cov[i] = make([]float64, p)
	}
	for j, pj := range freeIdx {
		for k, pk := range freeIdx {
			cov[pj][pk] = inv[j][k] * s2
		}
	}
	res.Covariance = cov

	for _, pi := range freeIdx {
		v := cov[pi][pi]
		if v < 0 {
			continue
		}
		res.StdErrs[pi] = math.Sqrt(v)
		res.Confidence[pi] = tcrit * res.StdErrs[pi]
	}

	return evals, nil
}

// boundSignal resolves a variable's dataset signal, honoring WithSignal
// bindings.
func boundSignal(ds *dataset.Dataset, cc callConfig, variable string) ([]float64, error) {
	name := cc.signalFor(variable)
	sig, ok := ds.Signal(name)
	if !ok {
		return nil, fmt.Errorf("%w: no dataset signal %q for variable %q", dataset.ErrDataShape, name, variable)
	}

	return sig, nil
}

// startingParams builds the initial parameter vector in declared order and
// the indices of the parameters to estimate. Parameters named by WithFixed,
// and parameters whose fit bounds pin a single value, are held.
func startingParams(m *model.Model, cc callConfig) ([]float64, []int, error) {
	for name := range cc.paramValues {
		if _, ok := m.Parameter(name); !ok {
			return nil, nil, fmt.Errorf("model %q has no parameter %q", m.ShortName, name)
		}
	}
	for name := range cc.fixed {
		if _, ok := m.Parameter(name); !ok {
			return nil, nil, fmt.Errorf("model %q has no parameter %q to fix", m.ShortName, name)
		}
	}

	params := make([]float64, len(m.Parameters))
	var freeIdx []int
	for i, p := range m.Parameters {
		v := p.Default
		if ov, ok := cc.paramValues[p.ShortName]; ok {
			lo, hi := p.FitBounds()
			if ov < lo || ov > hi {
				return nil, nil, fmt.Errorf("%w: parameter %q starting value %g outside [%g, %g]",
					model.ErrOutOfRange, p.ShortName, ov, lo, hi)
			}
			v = ov
		}
		params[i] = v

		if _, held := cc.fixed[p.ShortName]; held {
			continue
		}
		if lo, hi := p.FitBounds(); lo == hi {
			continue
		}
		freeIdx = append(freeIdx, i)
	}

	return params, freeIdx, nil
}

func fitBounds(m *model.Model) (lo, hi []float64) {
	lo = make([]float64, len(m.Parameters))
	hi = make([]float64, len(m.Parameters))
	for i, p := range m.Parameters {
		lo[i], hi[i] = p.FitBounds()
	}

	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// evalModel invokes the model function and checks the output shape.
func evalModel(ctx context.Context, m *model.Model, in dataset.Input, params []float64, consts model.Blob) (model.Output, error) {
	out, err := m.Func(ctx, in, params, consts)
	if err != nil {
		return model.Output{}, fmt.Errorf("model %q: %w", m.ShortName, err)
	}
	if len(out.Values) != in.Rows() {
		return model.Output{}, fmt.Errorf("%w: model %q returned %d values for %d samples",
			dataset.ErrDataShape, m.ShortName, len(out.Values), in.Rows())
	}

	return out, nil
}

// jacobian computes the forward difference Jacobian of the model output with
// respect to the free parameters, row-major with one column per free
// parameter. The perturbation flips to a backward step at an upper bound so
// probes never leave the box. The returned release func recycles the buffer.
func jacobian(ctx context.Context, m *model.Model, in dataset.Input, params []float64, consts model.Blob, base []float64, freeIdx []int, lo, hi []float64) ([]float64, func(), int, error) {
	n := in.Rows()
	nFree := len(freeIdx)
	jac, release := pool.GetFloat64Slice(n * nFree)

	perturbed := make([]float64, len(params))
	copy(perturbed, params)

	evals := 0
	for j, pi := range freeIdx {
		h := sqrtEps * math.Max(math.Abs(params[pi]), 1)
		if params[pi]+h > hi[pi] {
			h = -h
		}

		perturbed[pi] = params[pi] + h
		out, err := evalModel(ctx, m, in, perturbed, consts)
		if err != nil {
			return nil, release, evals, err
		}
		evals++
		perturbed[pi] = params[pi]

		for i := 0; i < n; i++ {
			jac[i*nFree+j] = (out.Values[i] - base[i]) / h
		}
	}

	return jac, release, evals, nil
}

// normalEquations builds JtJ and the descent right-hand side -Jt*r from the
// flat Jacobian and the residual r = fitted - observed.
func normalEquations(jac, fitted, observed []float64, nFree int) ([][]float64, []float64) {
	a := make([][]float64, nFree)
	for j := range a {
		a[j] = make([]float64, nFree)
	}
	grad := make([]float64, nFree)

	n := len(fitted)
	for i := 0; i < n; i++ {
		row := jac[i*nFree : (i+1)*nFree]
		r := fitted[i] - observed[i]
		for j := 0; j < nFree; j++ {
			grad[j] -= row[j] * r
			for k := j; k < nFree; k++ {
				a[j][k] += row[j] * row[k]
			}
		}
	}
	for j := 0; j < nFree; j++ {
		for k := 0; k < j; k++ {
			a[j][k] = a[k][j]
		}
	}

	return a, grad
}

// damp returns a copy of the normal matrix with Marquardt damping on the
// diagonal.
func damp(a [][]float64, lambda float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(a[i]))
		copy(out[i], a[i])

		d := a[i][i]
		if d == 0 {
			d = 1
		}
		out[i][i] += lambda * d
	}

	return out
}
