package tracefit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracefit/tracefit/compress"
	"github.com/tracefit/tracefit/dataset"
)

func TestDefaultRegistry(t *testing.T) {
	reg := NewRegistry()

	require.Empty(t, reg.Rejected())
	require.Len(t, reg.Models(), 5)

	m, ok := reg.Lookup("Linear")
	require.True(t, ok)

	byID, ok := reg.LookupID(ModelID("Linear"))
	require.True(t, ok)
	assert.Same(t, m, byID)
}

func TestFitAndEvaluate(t *testing.T) {
	reg := NewRegistry()
	m, ok := reg.Lookup("Linear")
	require.True(t, ok)

	times := make([]float64, 20)
	y := make([]float64, len(times))
	for i := range times {
		times[i] = float64(i)
		y[i] = 2*times[i] + 3
	}
	ds := dataset.New(times)
	require.NoError(t, ds.AddSignal("X", y))

	res, err := Fit(context.Background(), m, ds)
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.InDelta(t, 2.0, res.Values[0], 1e-6)
	assert.InDelta(t, 3.0, res.Values[1], 1e-6)

	curve, msg, err := Evaluate(context.Background(), m, ds)
	require.NoError(t, err)
	assert.Empty(t, msg)
	require.Len(t, curve, ds.Len())
}

func TestDatasetSnapshotRoundTrip(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	ds := dataset.New(times)
	require.NoError(t, ds.AddSignal("ROI", []float64{1, 1.2, 1.5, 1.4}))

	data, err := SaveDataset(ds, dataset.WithCompression(compress.TypeLZ4))
	require.NoError(t, err)

	loaded, err := LoadDataset(data)
	require.NoError(t, err)
	assert.Equal(t, ds.Times(), loaded.Times())

	roi, ok := loaded.Signal("ROI")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 1.2, 1.5, 1.4}, roi)
}

func TestSignalID(t *testing.T) {
	assert.Equal(t, SignalID("ROI"), dataset.SignalID("ROI"))
	assert.NotEqual(t, SignalID("ROI"), SignalID("AIF"))
}
