package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracefit/tracefit/dataset"
)

func ptr(v float64) *float64 { return &v }

// noopFunc satisfies the callable contract for descriptor tests.
func noopFunc(_ context.Context, in dataset.Input, _ []float64, _ Blob) (Output, error) {
	return Output{Values: make([]float64, in.Rows())}, nil
}

func validModel() *Model {
	return &Model{
		ShortName: "Linear",
		LongName:  "Linear",
		Func:      noopFunc,
		XDataOnly: true,
		Parameters: []Parameter{
			{ShortName: "a", LongName: "a", Default: 1, Min: 0, Max: 100},
			{ShortName: "b", LongName: "b", Default: 2, Min: 0, Max: 100},
		},
		Constants: []Constant{
			{ShortName: "c", LongName: "Y Axis Intersection", Default: 1, Min: 0, Max: 10000},
		},
		Variables: []Variable{
			{ShortName: "X", Colour: LineBlue, FitCurveTo: true},
			{ShortName: "X2", Colour: LineRed, InputToModel: true},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, validModel().Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Model)
	}{
		{"empty short name", func(m *Model) { m.ShortName = "" }},
		{"nil function", func(m *Model) { m.Func = nil }},
		{"duplicate parameter", func(m *Model) {
			m.Parameters = append(m.Parameters, Parameter{ShortName: "a", Default: 1, Min: 0, Max: 10})
		}},
		{"duplicate constant", func(m *Model) {
			m.Constants = append(m.Constants, Constant{ShortName: "c", Default: 1, Min: 0, Max: 10})
		}},
		{"duplicate variable", func(m *Model) {
			m.Variables = append(m.Variables, Variable{ShortName: "X"})
		}},
		{"default below min", func(m *Model) { m.Parameters[0].Default = -1 }},
		{"default above max", func(m *Model) { m.Parameters[0].Default = 101 }},
		{"constraint outside display range", func(m *Model) {
			m.Parameters[0].LowerConstraint = ptr(-5)
		}},
		{"default outside constraints", func(m *Model) {
			m.Parameters[0].LowerConstraint = ptr(2)
			m.Parameters[0].UpperConstraint = ptr(50)
		}},
		{"crossed constraints", func(m *Model) {
			m.Parameters[0].Default = 50
			m.Parameters[0].LowerConstraint = ptr(60)
			m.Parameters[0].UpperConstraint = ptr(40)
		}},
		{"discrete default not in list", func(m *Model) {
			m.Constants[0].ListValues = []float64{2, 4, 8}
		}},
		{"constant default outside range", func(m *Model) { m.Constants[0].Default = -1 }},
		{"stacked input without input variable", func(m *Model) {
			m.XDataOnly = false
			m.Variables[1].InputToModel = false
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validModel()
			tt.mutate(m)
			require.ErrorIs(t, m.Validate(), ErrInvalidModel)
		})
	}
}

func TestFitBounds(t *testing.T) {
	p := Parameter{Default: 5, Min: 0, Max: 100}
	lo, hi := p.FitBounds()
	require.Equal(t, 0.0, lo)
	require.Equal(t, 100.0, hi)

	p.LowerConstraint = ptr(1)
	p.UpperConstraint = ptr(10)
	lo, hi = p.FitBounds()
	require.Equal(t, 1.0, lo)
	require.Equal(t, 10.0, hi)
}

func TestClassify(t *testing.T) {
	vars := []Variable{
		{ShortName: "ROI", FitCurveTo: true},
		{ShortName: "AIF", InputToModel: true},
		{ShortName: "VIF"}, // display only
	}

	inputs, targets := Classify(vars)
	require.Len(t, inputs, 1)
	require.Equal(t, "AIF", inputs[0].ShortName)
	require.Len(t, targets, 1)
	require.Equal(t, "ROI", targets[0].ShortName)
}

func TestFitTargetMissing(t *testing.T) {
	m := validModel()
	m.Variables[0].FitCurveTo = false

	_, ok := m.FitTarget()
	require.False(t, ok)
}

func TestDefaultParamsOrder(t *testing.T) {
	m := validModel()
	require.Equal(t, []float64{1, 2}, m.DefaultParams())
	require.Equal(t, []string{"a", "b"}, m.ParameterNames())
}

func TestParameterConstantLookup(t *testing.T) {
	m := validModel()

	p, ok := m.Parameter("b")
	require.True(t, ok)
	require.Equal(t, 2.0, p.Default)

	_, ok = m.Parameter("zzz")
	require.False(t, ok)

	c, ok := m.Constant("c")
	require.True(t, ok)
	require.Equal(t, 1.0, c.Default)
}
