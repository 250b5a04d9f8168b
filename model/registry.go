package model

import (
	"fmt"

	"github.com/tracefit/tracefit/internal/hash"
)

// Library is the load-time contract a model library module exposes: a
// factory returning its models in presentation order. A host program calls
// NewRegistry with the libraries it wants available; there is no dynamic
// file loading in the core.
type Library interface {
	Models() []*Model
}

// DataFolderProvider is optionally implemented by a Library to point the
// host at a folder of example data files for its models.
type DataFolderProvider interface {
	DataFolder() string
}

// LibraryFunc adapts a plain function to the Library interface.
type LibraryFunc func() []*Model

// Models implements Library.
func (f LibraryFunc) Models() []*Model {
	return f()
}

// ID returns the xxHash64 identifier for a model short name.
func ID(name string) uint64 {
	return hash.ID(name)
}

// Registry holds the validated models from one or more libraries.
//
// Each model is validated on registration; a malformed model is rejected
// individually (recorded in Rejected) without failing the rest of its
// library. Lookup is by short name or by 64-bit name hash. A Registry is
// immutable after construction and safe for concurrent use.
type Registry struct {
	models   []*Model
	byName   map[string]*Model
	byID     map[uint64]*Model
	rejected []error
}

// NewRegistry validates and registers the models of the given libraries,
// preserving library and declaration order.
func NewRegistry(libs ...Library) *Registry {
	r := &Registry{
		byName: make(map[string]*Model),
		byID:   make(map[uint64]*Model),
	}

	for _, lib := range libs {
		for _, m := range lib.Models() {
			if err := m.Validate(); err != nil {
				r.rejected = append(r.rejected, err)
				continue
			}
			if _, dup := r.byName[m.ShortName]; dup {
				r.rejected = append(r.rejected,
					fmt.Errorf("%w: duplicate model short name %q", ErrInvalidModel, m.ShortName))
				continue
			}

			r.models = append(r.models, m)
			r.byName[m.ShortName] = m
			r.byID[ID(m.ShortName)] = m
		}
	}

	return r
}

// Models returns the registered models in registration order.
func (r *Registry) Models() []*Model {
	return r.models
}

// Lookup returns the model with the given short name.
func (r *Registry) Lookup(name string) (*Model, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// LookupID returns the model with the given name hash.
func (r *Registry) LookupID(id uint64) (*Model, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Rejected returns the validation errors of models that were refused
// registration, in encounter order.
func (r *Registry) Rejected() []error {
	return r.rejected
}
