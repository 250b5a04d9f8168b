package gadoxetate

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracefit/tracefit/dataset"
	"github.com/tracefit/tracefit/fit"
	"github.com/tracefit/tracefit/model"
)

func TestLibraryRegisters(t *testing.T) {
	reg := model.NewRegistry(Library())

	require.Empty(t, reg.Rejected())
	require.Len(t, reg.Models(), 2)

	m, ok := reg.Lookup("HF1-2CFM+2DSPGR")
	require.True(t, ok)
	assert.Equal(t, []string{"Ve", "Kbh", "Khe"}, m.ParameterNames())

	target, ok := m.FitTarget()
	require.True(t, ok)
	assert.Equal(t, "ROI", target.ShortName)

	input, ok := m.InputVariable()
	require.True(t, ok)
	assert.Equal(t, "AIF", input.ShortName)
}

func TestExpConvConstantInput(t *testing.T) {
	const T = 2.0
	times := make([]float64, 200)
	a := make([]float64, len(times))
	for i := range times {
		times[i] = float64(i) * 0.05
		a[i] = 1
	}

	// Convolving a unit step with exp(-t/T)/T gives 1 - exp(-t/T), and the
	// recursion is exact for piecewise-linear input.
	f := expConv(T, times, a)
	for i, ti := range times {
		assert.InDelta(t, 1-math.Exp(-ti/T), f[i], 1e-12, "t=%g", ti)
	}
}

func TestExpConvZeroTimeConstant(t *testing.T) {
	a := []float64{1, 2, 3}
	assert.Equal(t, a, expConv(0, []float64{0, 1, 2}, a))
}

func TestExpConvRepeatedTimePoint(t *testing.T) {
	f := expConv(1, []float64{0, 1, 1, 2}, []float64{0, 1, 1, 1})
	assert.Equal(t, f[1], f[2])
}

func TestCumTrapzLinear(t *testing.T) {
	times := make([]float64, 50)
	a := make([]float64, len(times))
	for i := range times {
		times[i] = float64(i) * 0.1
		a[i] = times[i]
	}

	// The trapezoid rule is exact for a linear integrand.
	integral := cumTrapz(times, a)
	for i, ti := range times {
		assert.InDelta(t, ti*ti/2, integral[i], 1e-12)
	}
}

func TestSpgrRelativeAtReference(t *testing.T) {
	assert.InDelta(t, 1.0, spgrRelative(1.32, 1.32, 20, 0.013), 1e-15)
}

func TestSpgrRelativeMonotone(t *testing.T) {
	// Higher relaxation rate means more recovered signal.
	low := spgrRelative(1.0, 0.75, 20, 0.013)
	high := spgrRelative(5.0, 0.75, 20, 0.013)
	assert.Greater(t, high, low)
	assert.Greater(t, low, 1.0)
}

func TestInvertSignalRoundTrip(t *testing.T) {
	const (
		r10  = 0.74575
		flip = 20.0
		tr   = 0.013
	)

	rates := []float64{r10, 1.5, 3.0, 8.0, 15.0}
	rel := make([]float64, len(rates))
	for i, r := range rates {
		rel[i] = spgrRelative(r, r10, flip, tr)
	}

	recovered, msg, err := invertSignal(context.Background(), rel, r10, flip, tr)
	require.NoError(t, err)
	require.NotEmpty(t, msg)
	for i, r := range rates {
		assert.InDelta(t, r, recovered[i], 1e-6, "sample %d", i)
	}
}

func TestNormalizeToBaseline(t *testing.T) {
	rel, err := normalizeToBaseline([]float64{2, 2, 4, 6}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 2, 3}, rel)

	_, err = normalizeToBaseline([]float64{0, 1}, 1)
	require.Error(t, err)
}

// synthAIF builds an arterial signal curve from a bolus-shaped
// concentration profile, forward through the SPGR equation.
func synthAIF(times []float64) []float64 {
	const (
		r10a = 0.74575
		r1   = 5.5
		flip = 20.0
		tr   = 0.013
	)

	aif := make([]float64, len(times))
	for i, ti := range times {
		ca := 2 * ti * math.Exp(-ti/1.5)
		aif[i] = spgrRelative(r10a+r1*ca, r10a, flip, tr)
	}

	return aif
}

func ratTimes(n int) []float64 {
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * 0.25
	}

	return times
}

func TestModelEvaluation(t *testing.T) {
	reg := model.NewRegistry(Library())
	m, ok := reg.Lookup("HF1-2CFM+3DSPGR")
	require.True(t, ok)

	times := ratTimes(24)
	in := dataset.Input{X: times, Y: synthAIF(times)}

	consts, err := model.EncodeConstants(m.Constants, nil)
	require.NoError(t, err)

	out, err := m.Func(context.Background(), in, m.DefaultParams(), consts)
	require.NoError(t, err)
	require.Len(t, out.Values, len(times))
	require.NotEmpty(t, out.Message)

	// Pre-contrast the tissue signal equals its baseline.
	assert.InDelta(t, 1.0, out.Values[0], 1e-6)
	for i, v := range out.Values {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "sample %d", i)
	}
	// Contrast arrival raises the signal above baseline.
	assert.Greater(t, out.Values[len(out.Values)-1], 1.0)
}

func TestZeroEffluxBranch(t *testing.T) {
	reg := model.NewRegistry(Library())
	twoD, _ := reg.Lookup("HF1-2CFM+2DSPGR")
	threeD, _ := reg.Lookup("HF1-2CFM+3DSPGR")

	times := ratTimes(12)
	in := dataset.Input{X: times, Y: synthAIF(times)}
	params := []float64{23.0, 0, 2.358}

	consts, err := model.EncodeConstants(twoD.Constants, nil)
	require.NoError(t, err)

	out, err := twoD.Func(context.Background(), in, params, consts)
	require.NoError(t, err)
	require.Len(t, out.Values, len(times))

	_, err = threeD.Func(context.Background(), in, params, consts)
	require.Error(t, err)
}

func TestFitRecoversKinetics(t *testing.T) {
	reg := model.NewRegistry(Library())
	m, ok := reg.Lookup("HF1-2CFM+3DSPGR")
	require.True(t, ok)

	times := ratTimes(30)
	aif := synthAIF(times)

	truth := []float64{20.0, 0.12, 2.0}
	consts, err := model.EncodeConstants(m.Constants, nil)
	require.NoError(t, err)
	out, err := m.Func(context.Background(), dataset.Input{X: times, Y: aif}, truth, consts)
	require.NoError(t, err)

	ds := dataset.New(times)
	require.NoError(t, ds.AddSignal("ROI", out.Values))
	require.NoError(t, ds.AddSignal("AIF", aif))

	res, err := fit.New().Fit(context.Background(), m, ds)
	require.NoError(t, err)

	require.True(t, res.Converged)
	assert.NotEmpty(t, res.SolverMessage)
	assert.Greater(t, res.RSquared, 0.999)
	assert.InDelta(t, truth[0], res.Values[0], 2.0)
	assert.InDelta(t, truth[1], res.Values[1], 0.05)
	assert.InDelta(t, truth[2], res.Values[2], 0.5)
}
