package compress

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// curvePayload builds a representative snapshot payload: two float64 columns
// of smooth curve data, the shape the snapshot codec actually feeds in.
func curvePayload(n int) []byte {
	buf := make([]byte, 0, n*16)
	for i := 0; i < n; i++ {
		t := float64(i) * 0.25
		y := 1.0 - math.Exp(-0.3*t)
		buf = appendFloat(buf, t)
		buf = appendFloat(buf, y)
	}

	return buf
}

func appendFloat(buf []byte, v float64) []byte {
	bits := math.Float64bits(v)
	for shift := 0; shift < 64; shift += 8 {
		buf = append(buf, byte(bits>>shift))
	}

	return buf
}

func TestGetCodec(t *testing.T) {
	for _, typ := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		codec, err := GetCodec(typ)
		require.NoError(t, err, "type %s", typ)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(Type(0xFF))
	require.Error(t, err)
}

func TestCodecRoundTrip(t *testing.T) {
	payload := curvePayload(512)

	tests := []struct {
		name  string
		codec Codec
	}{
		{"noop", NewNoOpCompressor()},
		{"zstd", NewZstdCompressor()},
		{"s2", NewS2Compressor()},
		{"lz4", NewLZ4Compressor()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := tt.codec.Compress(payload)
			require.NoError(t, err)

			restored, err := tt.codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, restored), "round trip must restore payload")
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, codec := range []Codec{NewZstdCompressor(), NewS2Compressor(), NewLZ4Compressor()} {
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestCodecCompressesSmoothData(t *testing.T) {
	payload := curvePayload(4096)

	zstd := NewZstdCompressor()
	compressed, err := zstd.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(payload), "smooth curve data should compress")
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "None", TypeNone.String())
	require.Equal(t, "Zstd", TypeZstd.String())
	require.Equal(t, "S2", TypeS2.String())
	require.Equal(t, "LZ4", TypeLZ4.String())
	require.Equal(t, "Unknown", Type(0).String())
}
