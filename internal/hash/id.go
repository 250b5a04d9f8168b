package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
//
// Signal and model names are identified throughout tracefit by this 64-bit
// hash, which gives O(1) registry lookups and a compact on-disk tag in
// dataset snapshots.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of a byte payload.
//
// Dataset snapshots append this as an integrity checksum over the encoded
// payload.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
