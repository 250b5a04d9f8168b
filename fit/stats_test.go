package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRSquaredPerfectFit(t *testing.T) {
	y := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.0, rSquared(y, y), 1e-15)
}

func TestRSquaredMeanPredictor(t *testing.T) {
	observed := []float64{1, 2, 3, 4, 5}
	fitted := []float64{3, 3, 3, 3, 3}
	assert.InDelta(t, 0.0, rSquared(observed, fitted), 1e-15)
}

func TestRSquaredConstantObserved(t *testing.T) {
	observed := []float64{2, 2, 2}
	assert.True(t, math.IsNaN(rSquared(observed, []float64{1, 2, 3})))
}

func TestRootMeanSquareError(t *testing.T) {
	observed := []float64{0, 0, 0, 0}
	fitted := []float64{1, -1, 1, -1}
	assert.InDelta(t, 1.0, rootMeanSquareError(observed, fitted), 1e-15)
}

func TestNormalQuantile(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
	}{
		{0.5, 0},
		{0.975, 1.959964},
		{0.025, -1.959964},
		{0.995, 2.575829},
		{0.841344746, 1.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, normalQuantile(tt.p), 1e-5, "p=%g", tt.p)
	}

	assert.True(t, math.IsInf(normalQuantile(0), -1))
	assert.True(t, math.IsInf(normalQuantile(1), 1))
}

func TestTQuantile(t *testing.T) {
	// Reference values from standard t tables.
	tests := []struct {
		p    float64
		dof  int
		want float64
		tol  float64
	}{
		{0.975, 5, 2.5706, 5e-3},
		{0.975, 10, 2.2281, 2e-3},
		{0.975, 30, 2.0423, 1e-3},
		{0.975, 120, 1.9799, 1e-3},
		{0.95, 10, 1.8125, 2e-3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tQuantile(tt.p, tt.dof), tt.tol, "p=%g dof=%d", tt.p, tt.dof)
	}

	// Large dof approaches the normal quantile.
	assert.InDelta(t, normalQuantile(0.975), tQuantile(0.975, 100000), 1e-4)

	assert.True(t, math.IsNaN(tQuantile(0.975, 0)))
}
