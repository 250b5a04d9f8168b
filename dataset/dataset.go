package dataset

import (
	"errors"
	"fmt"

	"github.com/tracefit/tracefit/internal/hash"
)

// ErrDataShape indicates that signal columns do not share the dataset's
// time-axis length, or that a required signal is missing. It is always
// raised before any numeric work begins.
var ErrDataShape = errors.New("data shape mismatch")

// Input is the input matrix handed to a model function.
//
// X is the independent-variable column (time points). Y is the dependent
// signal column stacked next to it, present only for models that consume
// both (implicit models typically need the dependent signal as a per-sample
// argument to the root-finder). Column order is fixed: X first, then Y.
type Input struct {
	X []float64
	Y []float64
}

// Rows returns the number of samples in the input matrix.
func (in Input) Rows() int {
	return len(in.X)
}

// Dataset holds one experimentally measured curve set: a shared time axis
// plus named signal columns of equal length.
//
// Signals keep their insertion order so presentation layers can render them
// in a stable sequence. A Dataset is append-only; columns are never mutated
// after being added, so a Dataset may be shared across concurrent fits.
type Dataset struct {
	times   []float64
	names   []string
	signals map[string][]float64
}

// New creates a Dataset over the given time axis.
//
// The time values are used as-is; callers must not modify the slice after
// handing it over.
func New(times []float64) *Dataset {
	return &Dataset{
		times:   times,
		signals: make(map[string][]float64),
	}
}

// AddSignal adds a named signal column.
//
// The column must match the time axis length, otherwise ErrDataShape is
// returned. Adding a signal under an existing name is rejected.
func (d *Dataset) AddSignal(name string, values []float64) error {
	if name == "" {
		return errors.New("signal name must not be empty")
	}
	if _, exists := d.signals[name]; exists {
		return fmt.Errorf("signal %q already present", name)
	}
	if len(values) != len(d.times) {
		return fmt.Errorf("%w: signal %q has %d samples, time axis has %d",
			ErrDataShape, name, len(values), len(d.times))
	}

	d.names = append(d.names, name)
	d.signals[name] = values

	return nil
}

// Len returns the number of samples along the time axis.
func (d *Dataset) Len() int {
	return len(d.times)
}

// Times returns the time axis column.
func (d *Dataset) Times() []float64 {
	return d.times
}

// Signal returns the named signal column.
func (d *Dataset) Signal(name string) ([]float64, bool) {
	s, ok := d.signals[name]
	return s, ok
}

// SignalNames returns the signal names in insertion order.
func (d *Dataset) SignalNames() []string {
	return d.names
}

// SignalID returns the xxHash64 identifier of a signal name, the tag used
// for the signal in binary snapshots.
func SignalID(name string) uint64 {
	return hash.ID(name)
}
