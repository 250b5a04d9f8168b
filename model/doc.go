// Package model defines the pluggable model contract: descriptors for a
// fittable mathematical model, the constants transport codec, the variable
// classifier and the library registry.
//
// A Model bundles an identity, a callable implementing the model's math,
// and ordered declarations of its parameters (estimated by fitting),
// constants (fixed, user-adjustable) and variables (the named signals the
// model relates to). All descriptors are immutable value objects built once
// at library load time.
//
// # The callable contract
//
// The fit engine invokes Model.Func as
//
//	out, err := m.Func(ctx, input, params, consts)
//
// where params holds exactly len(m.Parameters) values in declared order.
// That ordering is the binding contract between engine and model author:
// overrides supplied as unordered maps are always rebound to declared order
// before the callable sees them.
//
// # Constants
//
// Constant values travel as a single opaque Blob string so the callable
// keeps a fixed shape regardless of how many constants a model declares.
// The blob is a canonical "name=value;name=value" list parsed with strconv,
// never evaluated as code:
//
//	blob, err := model.EncodeConstants(m.Constants, map[string]float64{"TR": 0.012})
//	vals, err := blob.Decode()
//
// # Libraries
//
// A model library exposes its models through the Library interface, and a
// host registers libraries explicitly:
//
//	reg := model.NewRegistry(simple.Library(), gadoxetate.Library())
//
// Malformed models are rejected individually; the rest of the library loads.
package model
