// Package simple is a demonstration model library: three closed-form
// polynomial models showing the smallest possible library implementation.
// It is a template to copy when writing a library of your own.
package simple

import (
	"context"

	"github.com/tracefit/tracefit/dataset"
	"github.com/tracefit/tracefit/model"
)

type library struct{}

// Library returns the simple model library.
func Library() model.Library {
	return library{}
}

// Models returns the library's models in presentation order.
func (library) Models() []*model.Model {
	return []*model.Model{linear(), straightLine(), quadratic()}
}

// DataFolder points hosts at the folder of example curve files for these
// models.
func (library) DataFolder() string {
	return "testdata"
}

func linear() *model.Model {
	return &model.Model{
		ShortName: "Linear",
		LongName:  "Linear",
		XDataOnly: true,
		Func: func(_ context.Context, in dataset.Input, params []float64, _ model.Blob) (model.Output, error) {
			a, b := params[0], params[1]
			vals := make([]float64, in.Rows())
			for i, x := range in.X {
				vals[i] = a*x + b
			}

			return model.Output{Values: vals}, nil
		},
		Parameters: []model.Parameter{
			{ShortName: "a", LongName: "a", Units: "mL/min/mL", Default: 1, Step: 1, Precision: 1, Min: 1, Max: 100},
			{ShortName: "b", LongName: "b", Units: "mL/min/mL", Default: 2, Step: 1, Precision: 1, Min: 1, Max: 100},
		},
		Variables: variables(),
	}
}

func straightLine() *model.Model {
	return &model.Model{
		ShortName: "Straight Line",
		LongName:  "Straight Line",
		XDataOnly: true,
		Func: func(_ context.Context, in dataset.Input, params []float64, consts model.Blob) (model.Output, error) {
			c, err := consts.Value("c")
			if err != nil {
				return model.Output{}, err
			}

			m := params[0]
			vals := make([]float64, in.Rows())
			for i, x := range in.X {
				vals[i] = m*x + c
			}

			return model.Output{Values: vals}, nil
		},
		Parameters: []model.Parameter{
			{ShortName: "m", LongName: "m", Units: "s-1", Default: 1, Step: 1, Precision: 1, Min: 1, Max: 100},
		},
		Constants: []model.Constant{
			yAxisIntersection(),
		},
		Variables: variables(),
	}
}

func quadratic() *model.Model {
	return &model.Model{
		ShortName: "Quadratic",
		LongName:  "Quadratic",
		XDataOnly: true,
		Func: func(_ context.Context, in dataset.Input, params []float64, consts model.Blob) (model.Output, error) {
			c, err := consts.Value("c")
			if err != nil {
				return model.Output{}, err
			}

			a, b := params[0], params[1]
			vals := make([]float64, in.Rows())
			for i, x := range in.X {
				vals[i] = a*x*x + b*x + c
			}

			return model.Output{Values: vals}, nil
		},
		Parameters: []model.Parameter{
			{ShortName: "a", LongName: "a", Units: "mL/min/mL", Default: 4, Step: 1, Precision: 1, Min: 1, Max: 100},
			{ShortName: "b", LongName: "b", Units: "mL/min/mL", Default: 2, Step: 1, Precision: 1, Min: 1, Max: 100},
		},
		Constants: []model.Constant{
			yAxisIntersection(),
		},
		Variables: variables(),
	}
}

func yAxisIntersection() model.Constant {
	return model.Constant{
		ShortName: "c",
		LongName:  "Y Axis Intersection",
		Units:     "mg/l",
		Default:   1,
		Step:      10,
		Precision: 1,
		Min:       0,
		Max:       10000,
	}
}

func variables() []model.Variable {
	return []model.Variable{
		{ShortName: "X", LongName: "X", Colour: model.LineBlue, FitCurveTo: true},
		{ShortName: "X2", LongName: "X2", Colour: model.LineRed, InputToModel: true},
	}
}
