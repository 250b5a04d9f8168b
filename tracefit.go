// Package tracefit fits pluggable mathematical models to measured
// time-course curves.
//
// A model library declares its models once (parameters, constants, signal
// variables and the model function); the fitting engine binds a model's
// variables to the named signals of a dataset and estimates the parameters
// by bounded least squares. Implicit models that need per-sample
// root-finding are first-class: their solver diagnostics travel with every
// result.
//
// # Basic Usage
//
// Registering the bundled libraries and fitting a model:
//
//	import "github.com/tracefit/tracefit"
//
//	reg := tracefit.NewRegistry()
//	m, _ := reg.Lookup("HF1-2CFM+3DSPGR")
//
//	ds := dataset.New(times)
//	ds.AddSignal("ROI", roi)
//	ds.AddSignal("AIF", aif)
//
//	res, err := tracefit.Fit(ctx, m, ds)
//	fmt.Println(res.Named(), res.RSquared)
//
// Persisting a dataset as a compressed binary snapshot:
//
//	data, _ := tracefit.SaveDataset(ds,
//	    dataset.WithCompression(compress.TypeZstd))
//	ds2, _ := tracefit.LoadDataset(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the model,
// dataset and fit packages, simplifying the most common use cases. For
// fine-grained control (engine tolerances, fixed parameters, signal
// rebinding) use those packages directly.
package tracefit

import (
	"context"

	"github.com/tracefit/tracefit/dataset"
	"github.com/tracefit/tracefit/fit"
	"github.com/tracefit/tracefit/model"
	"github.com/tracefit/tracefit/modellib/gadoxetate"
	"github.com/tracefit/tracefit/modellib/simple"
)

// SignalID returns the 64-bit xxHash64 identifier of a signal name, the tag
// used for the signal in binary snapshots.
func SignalID(name string) uint64 {
	return dataset.SignalID(name)
}

// ModelID returns the 64-bit xxHash64 identifier of a model short name.
func ModelID(name string) uint64 {
	return model.ID(name)
}

// DefaultLibraries returns the model libraries bundled with this module.
func DefaultLibraries() []model.Library {
	return []model.Library{
		simple.Library(),
		gadoxetate.Library(),
	}
}

// NewRegistry validates and registers the given model libraries. With no
// arguments it registers the bundled libraries.
func NewRegistry(libs ...model.Library) *model.Registry {
	if len(libs) == 0 {
		libs = DefaultLibraries()
	}

	return model.NewRegistry(libs...)
}

// Fit estimates the model's parameters against the dataset using a
// default-configured engine.
func Fit(ctx context.Context, m *model.Model, ds *dataset.Dataset, opts ...fit.CallOption) (*fit.Result, error) {
	return fit.New().Fit(ctx, m, ds, opts...)
}

// Evaluate runs the model once at its starting values without fitting,
// returning the curve and the model's diagnostic message.
func Evaluate(ctx context.Context, m *model.Model, ds *dataset.Dataset, opts ...fit.CallOption) ([]float64, string, error) {
	return fit.New().Evaluate(ctx, m, ds, opts...)
}

// SaveDataset serializes the dataset into a checksummed binary snapshot.
func SaveDataset(ds *dataset.Dataset, opts ...dataset.SnapshotOption) ([]byte, error) {
	return dataset.Snapshot(ds, opts...)
}

// LoadDataset reconstructs a dataset from a binary snapshot.
func LoadDataset(data []byte) (*dataset.Dataset, error) {
	return dataset.FromSnapshot(data)
}
