package model

import (
	"context"
	"fmt"

	"github.com/tracefit/tracefit/dataset"
)

// Output is the result of one model evaluation.
//
// Message carries the last per-sample diagnostic from an implicit solve,
// in sample order; closed-form models leave it empty. Returning the message
// with the evaluation result (rather than stashing it in shared state)
// keeps concurrent fits of the same model from interfering.
type Output struct {
	// Values is the model output, one value per input row.
	Values []float64
	// Message is the final sample's solver diagnostic, "" for closed-form
	// models.
	Message string
}

// Func is the model callable contract.
//
// params always holds exactly len(Model.Parameters) values, in the order the
// parameters are declared; that ordering is the binding contract between the
// fit engine and the model author. consts carries the encoded constant
// values; decode it with Blob.Decode. The returned Values must have
// in.Rows() elements.
//
// ctx is the fit call's context: implementations performing per-sample
// root-finding should pass it through to solve.Samples so a cancelled fit
// stops promptly.
type Func func(ctx context.Context, in dataset.Input, params []float64, consts Blob) (Output, error)

// Model describes one fittable mathematical model: its identity, callable,
// and the declared parameters, constants and variables.
//
// Models are constructed once at library load time and never mutated
// afterwards, so a validated Model may be shared freely across concurrent
// fit calls.
type Model struct {
	// ShortName is the unique key for the model, usually an acronym.
	ShortName string
	// LongName is the display name.
	LongName string
	// Func implements the model's math.
	Func Func
	// XDataOnly reports whether the model consumes only the
	// independent-variable column. When false, the input matrix stacks the
	// independent column with the input variable's signal column.
	XDataOnly bool
	// Parameters are the free values estimated by fitting, in the order
	// Func expects them.
	Parameters []Parameter
	// Constants are fixed values the caller may override, never estimated.
	Constants []Constant
	// Variables describe the named signals the model relates to.
	Variables []Variable
}

// Parameter describes a free variable to be estimated by fitting.
type Parameter struct {
	ShortName string
	LongName  string
	Units     string
	// Default seeds the optimizer and fills spinboxes in a hosting UI.
	Default float64
	// Step is the UI spinbox increment, passed through for presentation.
	Step float64
	// Precision is the number of decimal places for display.
	Precision int
	// Min and Max bound the displayable range; they also bound fitting
	// when no narrower constraint is set.
	Min float64
	Max float64
	// LowerConstraint and UpperConstraint, when set, narrow the bounds
	// actually enforced during fitting. They must fall within [Min, Max].
	LowerConstraint *float64
	UpperConstraint *float64
}

// FitBounds returns the bounds enforced during fitting: the constraints when
// set, else the display range.
func (p Parameter) FitBounds() (lo, hi float64) {
	lo, hi = p.Min, p.Max
	if p.LowerConstraint != nil {
		lo = *p.LowerConstraint
	}
	if p.UpperConstraint != nil {
		hi = *p.UpperConstraint
	}

	return lo, hi
}

// Constant describes a fixed value supplied to, but never estimated by,
// the fit. When ListValues is non-empty the constant is selected from that
// discrete set rather than continuously adjusted.
type Constant struct {
	ShortName string
	LongName  string
	Units     string
	Default   float64
	Step      float64
	Precision int
	Min       float64
	Max       float64
	// ListValues is the optional discrete value set; Default must be a
	// member when non-empty.
	ListValues []float64
}

// allows reports whether v is an acceptable value for the constant.
func (c Constant) allows(v float64) bool {
	if len(c.ListValues) > 0 {
		for _, lv := range c.ListValues {
			if lv == v {
				return true
			}
		}

		return false
	}

	return v >= c.Min && v <= c.Max
}

// Validate checks the model's structural invariants. It returns an error
// wrapping ErrInvalidModel when the declaration is malformed; validated
// models are safe to register and fit.
func (m *Model) Validate() error {
	if m.ShortName == "" {
		return fmt.Errorf("%w: empty short name", ErrInvalidModel)
	}
	if m.Func == nil {
		return fmt.Errorf("%w: model %q has no function", ErrInvalidModel, m.ShortName)
	}

	seen := make(map[string]struct{}, len(m.Parameters))
	for _, p := range m.Parameters {
		if p.ShortName == "" {
			return fmt.Errorf("%w: model %q has a parameter with an empty name", ErrInvalidModel, m.ShortName)
		}
		if _, dup := seen[p.ShortName]; dup {
			return fmt.Errorf("%w: model %q declares parameter %q twice", ErrInvalidModel, m.ShortName, p.ShortName)
		}
		seen[p.ShortName] = struct{}{}

		if err := validateParameter(p); err != nil {
			return fmt.Errorf("%w: model %q parameter %q: %s", ErrInvalidModel, m.ShortName, p.ShortName, err)
		}
	}

	seen = make(map[string]struct{}, len(m.Constants))
	for _, c := range m.Constants {
		if c.ShortName == "" {
			return fmt.Errorf("%w: model %q has a constant with an empty name", ErrInvalidModel, m.ShortName)
		}
		if _, dup := seen[c.ShortName]; dup {
			return fmt.Errorf("%w: model %q declares constant %q twice", ErrInvalidModel, m.ShortName, c.ShortName)
		}
		seen[c.ShortName] = struct{}{}

		if err := validateConstant(c); err != nil {
			return fmt.Errorf("%w: model %q constant %q: %s", ErrInvalidModel, m.ShortName, c.ShortName, err)
		}
	}

	seen = make(map[string]struct{}, len(m.Variables))
	for _, v := range m.Variables {
		if v.ShortName == "" {
			return fmt.Errorf("%w: model %q has a variable with an empty name", ErrInvalidModel, m.ShortName)
		}
		if _, dup := seen[v.ShortName]; dup {
			return fmt.Errorf("%w: model %q declares variable %q twice", ErrInvalidModel, m.ShortName, v.ShortName)
		}
		seen[v.ShortName] = struct{}{}
	}

	if !m.XDataOnly {
		if _, ok := m.InputVariable(); !ok {
			return fmt.Errorf("%w: model %q stacks a dependent column but declares no input variable",
				ErrInvalidModel, m.ShortName)
		}
	}

	return nil
}

func validateParameter(p Parameter) error {
	if p.Min > p.Max {
		return fmt.Errorf("min %g exceeds max %g", p.Min, p.Max)
	}
	if p.Default < p.Min || p.Default > p.Max {
		return fmt.Errorf("default %g outside [%g, %g]", p.Default, p.Min, p.Max)
	}

	lo, hi := p.FitBounds()
	if lo < p.Min || hi > p.Max {
		return fmt.Errorf("constraints [%g, %g] outside display range [%g, %g]", lo, hi, p.Min, p.Max)
	}
	if lo > hi {
		return fmt.Errorf("lower constraint %g exceeds upper constraint %g", lo, hi)
	}
	if p.Default < lo || p.Default > hi {
		return fmt.Errorf("default %g outside constraints [%g, %g]", p.Default, lo, hi)
	}

	return nil
}

func validateConstant(c Constant) error {
	if c.Min > c.Max {
		return fmt.Errorf("min %g exceeds max %g", c.Min, c.Max)
	}
	if len(c.ListValues) > 0 {
		if !c.allows(c.Default) {
			return fmt.Errorf("default %g not in discrete value list", c.Default)
		}

		return nil
	}
	if c.Default < c.Min || c.Default > c.Max {
		return fmt.Errorf("default %g outside [%g, %g]", c.Default, c.Min, c.Max)
	}

	return nil
}

// ParameterNames returns the parameter short names in declared order.
func (m *Model) ParameterNames() []string {
	names := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		names[i] = p.ShortName
	}

	return names
}

// DefaultParams returns the declared default value of every parameter, in
// declared order. The slice is freshly allocated on each call.
func (m *Model) DefaultParams() []float64 {
	vals := make([]float64, len(m.Parameters))
	for i, p := range m.Parameters {
		vals[i] = p.Default
	}

	return vals
}

// Parameter returns the declared parameter with the given short name.
func (m *Model) Parameter(name string) (Parameter, bool) {
	for _, p := range m.Parameters {
		if p.ShortName == name {
			return p, true
		}
	}

	return Parameter{}, false
}

// Constant returns the declared constant with the given short name.
func (m *Model) Constant(name string) (Constant, bool) {
	for _, c := range m.Constants {
		if c.ShortName == name {
			return c, true
		}
	}

	return Constant{}, false
}
