package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func spgrConstants() []Constant {
	return []Constant{
		{ShortName: "TR", Default: 0.013, Step: 0.001, Precision: 4, Min: 0, Max: 0.1},
		{ShortName: "baseline", Default: 1, Min: 1, Max: 10,
			ListValues: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{ShortName: "FA", Default: 20, Min: 10, Max: 30,
			ListValues: []float64{10, 15, 20, 25, 30}},
		{ShortName: "r1", Default: 5.5, Min: 5, Max: 6},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	decls := spgrConstants()

	tests := []struct {
		name      string
		overrides map[string]float64
	}{
		{"no overrides", nil},
		{"one override", map[string]float64{"TR": 0.02}},
		{"discrete override", map[string]float64{"FA": 25}},
		{"all overridden", map[string]float64{"TR": 0.05, "baseline": 3, "FA": 15, "r1": 5.9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := EncodeConstants(decls, tt.overrides)
			require.NoError(t, err)

			got, err := blob.Decode()
			require.NoError(t, err)

			// Round-trip law: override merged over defaults, exactly.
			want := make(map[string]float64, len(decls))
			for _, c := range decls {
				if v, ok := tt.overrides[c.ShortName]; ok {
					want[c.ShortName] = v
				} else {
					want[c.ShortName] = c.Default
				}
			}
			require.Equal(t, want, got)
		})
	}
}

func TestEncodeDeterministicOrder(t *testing.T) {
	decls := spgrConstants()

	a, err := EncodeConstants(decls, nil)
	require.NoError(t, err)
	b, err := EncodeConstants(decls, map[string]float64{})
	require.NoError(t, err)
	require.Equal(t, a, b, "encoding must be deterministic")
	require.Equal(t, "TR=0.013;baseline=1;FA=20;r1=5.5", string(a))
}

func TestEncodeUnknownConstant(t *testing.T) {
	_, err := EncodeConstants(spgrConstants(), map[string]float64{"bogus": 1})
	require.ErrorIs(t, err, ErrUnknownConstant)
}

func TestEncodeOutOfRange(t *testing.T) {
	_, err := EncodeConstants(spgrConstants(), map[string]float64{"TR": 0.5})
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestEncodeDiscreteNotInList(t *testing.T) {
	// 22 lies inside [10, 30] but is not a declared discrete value.
	_, err := EncodeConstants(spgrConstants(), map[string]float64{"FA": 22})
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{"TR", "=1", "TR=abc", "TR=1;TR=2"} {
		_, err := Blob(raw).Decode()
		require.Error(t, err, "blob %q should not decode", raw)
	}
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Blob("").Decode()
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestBlobValue(t *testing.T) {
	blob, err := EncodeConstants(spgrConstants(), nil)
	require.NoError(t, err)

	v, err := blob.Value("r1")
	require.NoError(t, err)
	require.Equal(t, 5.5, v)

	_, err = blob.Value("nope")
	require.ErrorIs(t, err, ErrUnknownConstant)
}
