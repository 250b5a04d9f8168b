package gadoxetate

import (
	"context"
	"errors"
	"math"

	"github.com/tracefit/tracefit/solve"
)

// spgrRelative returns the steady-state spoiled gradient echo signal at
// longitudinal relaxation rate r1, relative to the signal at the reference
// rate r10 (the pre-contrast tissue). Flip angle in degrees, repetition
// time in seconds.
func spgrRelative(r1, r10, flipDeg, tr float64) float64 {
	c := math.Cos(flipDeg * math.Pi / 180)
	e := math.Exp(-tr * r1)
	e0 := math.Exp(-tr * r10)

	return ((1 - e) * (1 - c*e0)) / ((1 - c*e) * (1 - e0))
}

// invertSignal recovers the relaxation rate curve from a measured signal
// curve by solving the steady-state equation per sample. rel is the signal
// relative to its pre-contrast baseline; the reference rate r10 is the
// initial guess for every sample. The returned message is the final
// sample's solver diagnostic.
func invertSignal(ctx context.Context, rel []float64, r10, flipDeg, tr float64) ([]float64, string, error) {
	rates, msgs, err := solve.Samples(ctx, func(i int, r1 float64) float64 {
		return spgrRelative(r1, r10, flipDeg, tr) - rel[i]
	}, r10, len(rel))
	if err != nil {
		return nil, "", err
	}

	var msg string
	if len(msgs) > 0 {
		msg = msgs[len(msgs)-1]
	}

	return rates, msg, nil
}

// normalizeToBaseline divides the signal by the mean of its first baseline
// samples.
func normalizeToBaseline(signal []float64, baseline int) ([]float64, error) {
	if baseline < 1 {
		baseline = 1
	}
	if baseline > len(signal) {
		baseline = len(signal)
	}

	var mean float64
	for _, s := range signal[:baseline] {
		mean += s
	}
	mean /= float64(baseline)
	if mean == 0 {
		return nil, errors.New("baseline signal is zero")
	}

	rel := make([]float64, len(signal))
	for i, s := range signal {
		rel[i] = s / mean
	}

	return rel, nil
}
