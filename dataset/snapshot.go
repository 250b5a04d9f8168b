package dataset

import (
	"errors"
	"fmt"
	"math"

	"github.com/tracefit/tracefit/compress"
	"github.com/tracefit/tracefit/endian"
	"github.com/tracefit/tracefit/internal/hash"
	"github.com/tracefit/tracefit/internal/options"
)

// Snapshot layout (all integers little-endian):
//
//	offset  size  field
//	0       4     magic "TFDS"
//	4       1     version (currently 1)
//	5       1     compression type (compress.Type)
//	6       n     payload, possibly compressed
//	6+n     8     xxHash64 checksum of the stored payload bytes
//
// Payload layout:
//
//	u32 rows, u32 signal count
//	rows x f64 time axis
//	per signal: u16 name length, name bytes, u64 name hash, rows x f64 values
const (
	snapshotMagic   = "TFDS"
	snapshotVersion = 1
	headerSize      = 6
	checksumSize    = 8
)

// ErrSnapshotCorrupt indicates a snapshot that fails structural or checksum
// validation.
var ErrSnapshotCorrupt = errors.New("corrupt snapshot")

// SnapshotConfig holds encoding options for Snapshot.
type SnapshotConfig struct {
	Compression compress.Type
}

// SnapshotOption is a functional option for SnapshotConfig.
type SnapshotOption = options.Option[*SnapshotConfig]

// WithCompression selects the payload compression codec.
// The default is compress.TypeNone.
func WithCompression(t compress.Type) SnapshotOption {
	return options.NoError(func(cfg *SnapshotConfig) {
		cfg.Compression = t
	})
}

// Snapshot serializes the dataset into a compact binary form suitable for
// caching or exchanging measured curve sets.
func Snapshot(d *Dataset, opts ...SnapshotOption) ([]byte, error) {
	cfg := &SnapshotConfig{Compression: compress.TypeNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()

	rows := d.Len()
	payload := make([]byte, 0, 8+8*rows*(1+len(d.names)))
	payload = engine.AppendUint32(payload, uint32(rows))
	payload = engine.AppendUint32(payload, uint32(len(d.names)))
	payload = appendColumn(engine, payload, d.times)

	for _, name := range d.names {
		if len(name) > math.MaxUint16 {
			return nil, fmt.Errorf("signal name %q too long", name)
		}
		payload = engine.AppendUint16(payload, uint16(len(name)))
		payload = append(payload, name...)
		payload = engine.AppendUint64(payload, hash.ID(name))
		payload = appendColumn(engine, payload, d.signals[name])
	}

	stored, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize+len(stored)+checksumSize)
	out = append(out, snapshotMagic...)
	out = append(out, snapshotVersion, byte(cfg.Compression))
	out = append(out, stored...)
	out = engine.AppendUint64(out, hash.Sum(stored))

	return out, nil
}

// FromSnapshot decodes a snapshot produced by Snapshot.
func FromSnapshot(data []byte) (*Dataset, error) {
	engine := endian.GetLittleEndianEngine()

	if len(data) < headerSize+checksumSize {
		return nil, fmt.Errorf("%w: truncated (%d bytes)", ErrSnapshotCorrupt, len(data))
	}
	if string(data[:4]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrSnapshotCorrupt)
	}
	if data[4] != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrSnapshotCorrupt, data[4])
	}

	codec, err := compress.GetCodec(compress.Type(data[5]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotCorrupt, err)
	}

	stored := data[headerSize : len(data)-checksumSize]
	want := engine.Uint64(data[len(data)-checksumSize:])
	if hash.Sum(stored) != want {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrSnapshotCorrupt)
	}

	payload, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotCorrupt, err)
	}

	r := snapshotReader{engine: engine, buf: payload}
	rows, err := r.uint32()
	if err != nil {
		return nil, err
	}
	signalCount, err := r.uint32()
	if err != nil {
		return nil, err
	}

	times, err := r.column(int(rows))
	if err != nil {
		return nil, err
	}
	ds := New(times)

	for i := uint32(0); i < signalCount; i++ {
		nameLen, nameErr := r.uint16()
		if nameErr != nil {
			return nil, nameErr
		}
		nameBytes, nameErr := r.bytes(int(nameLen))
		if nameErr != nil {
			return nil, nameErr
		}
		name := string(nameBytes)

		id, idErr := r.uint64()
		if idErr != nil {
			return nil, idErr
		}
		if id != hash.ID(name) {
			return nil, fmt.Errorf("%w: signal %q name hash mismatch", ErrSnapshotCorrupt, name)
		}

		values, colErr := r.column(int(rows))
		if colErr != nil {
			return nil, colErr
		}
		if addErr := ds.AddSignal(name, values); addErr != nil {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotCorrupt, addErr)
		}
	}

	return ds, nil
}

func appendColumn(engine endian.EndianEngine, buf []byte, col []float64) []byte {
	for _, v := range col {
		buf = engine.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

// snapshotReader walks the decoded payload with bounds checking.
type snapshotReader struct {
	engine endian.EndianEngine
	buf    []byte
	off    int
}

func (r *snapshotReader) bytes(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, fmt.Errorf("%w: payload truncated at offset %d", ErrSnapshotCorrupt, r.off)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n

	return b, nil
}

func (r *snapshotReader) uint16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

func (r *snapshotReader) uint32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

func (r *snapshotReader) uint64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

func (r *snapshotReader) column(rows int) ([]float64, error) {
	b, err := r.bytes(8 * rows)
	if err != nil {
		return nil, err
	}
	col := make([]float64, rows)
	for i := 0; i < rows; i++ {
		col[i] = math.Float64frombits(r.engine.Uint64(b[8*i:]))
	}

	return col, nil
}
