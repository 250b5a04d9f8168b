package compress

import "fmt"

// Type identifies a compression algorithm used for dataset snapshots.
type Type uint8

const (
	// TypeNone stores the payload uncompressed.
	TypeNone Type = 0x1
	// TypeZstd compresses with Zstandard.
	TypeZstd Type = 0x2
	// TypeS2 compresses with S2 (Snappy-compatible).
	TypeS2 Type = 0x3
	// TypeLZ4 compresses with LZ4 block format.
	TypeLZ4 Type = 0x4
)

// String returns the name of the compression type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeZstd:
		return "Zstd"
	case TypeS2:
		return "S2"
	case TypeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a snapshot payload.
//
// The input is a complete encoded payload (signal columns already laid out
// by the snapshot codec). Payload sizes are usually small, a few KB for a
// typical measured curve set, so implementations favour low fixed overhead.
//
// Memory management:
//   - The returned slice is newly allocated and owned by the caller
//     (except for the no-op codec, which passes the input through).
//   - The input slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a snapshot payload compressed by the matching
// Compressor.
//
// Implementations validate the input format and return an error when the
// data is corrupted or was produced by a different algorithm.
//
// Implementations must be safe for concurrent use; the fit engine may
// decode snapshots from multiple goroutines.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Type]Codec{
	TypeNone: NewNoOpCompressor(),
	TypeZstd: NewZstdCompressor(),
	TypeS2:   NewS2Compressor(),
	TypeLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}
