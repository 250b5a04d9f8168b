// Package dataset holds experimentally measured curve sets and the binary
// snapshot codec used to cache and exchange them.
//
// A Dataset is a shared time axis plus named signal columns of equal length,
// e.g. a tracer study with a region-of-interest curve and an arterial input
// curve:
//
//	ds := dataset.New(times)
//	ds.AddSignal("ROI", roi)
//	ds.AddSignal("AIF", aif)
//
// The fit engine reads signal columns by the names declared in a model's
// variable list. Input is the two-column matrix handed to model functions.
//
// # Snapshots
//
// Snapshot/FromSnapshot serialize a Dataset into a compact little-endian
// binary form with optional compression and an xxHash64 integrity checksum:
//
//	buf, _ := dataset.Snapshot(ds, dataset.WithCompression(compress.TypeZstd))
//	restored, _ := dataset.FromSnapshot(buf)
package dataset
