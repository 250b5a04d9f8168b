// Package gadoxetate models gadoxetate uptake in rat liver: high flow
// single inlet two compartment filtration models behind a spoiled gradient
// echo (SPGR) signal equation.
//
// The models are implicit. The arterial relaxation rate cannot be written
// in closed form from the measured arterial signal, so every evaluation
// inverts the SPGR equation per time point with a scalar root-finder before
// running the compartment kinetics, then maps the resulting tissue
// concentration back to a relative signal.
package gadoxetate

import (
	"context"
	"fmt"

	"github.com/tracefit/tracefit/dataset"
	"github.com/tracefit/tracefit/model"
)

// veSpleen corrects the extracellular tracer concentration for the spleen
// extracellular volume fraction.
const veSpleen = 0.43

type library struct{}

// Library returns the gadoxetate rat liver model library.
func Library() model.Library {
	return library{}
}

// Models returns the library's models in presentation order.
func (library) Models() []*model.Model {
	return []*model.Model{
		{
			ShortName:  "HF1-2CFM+2DSPGR",
			LongName:   "High Flow Single Inlet - Two Compartment Filtration and 2DSPGR Model",
			Func:       signalFunc(true),
			Parameters: parameters(),
			Constants:  constants(),
			Variables:  variables(),
		},
		{
			ShortName:  "HF1-2CFM+3DSPGR",
			LongName:   "High Flow Single Inlet - Two Compartment Filtration and 3DSPGR Model",
			Func:       signalFunc(false),
			Parameters: parameters(),
			Constants:  constants(),
			Variables:  variables(),
		},
	}
}

// DataFolder points hosts at the folder of example curve files for these
// models.
func (library) DataFolder() string {
	return "testdata"
}

// signalFunc builds the model callable. Both models share the kinetics; the
// 2D variant additionally supports a zero biliary efflux rate, where the
// hepatocyte compartment integrates the extracellular concentration instead
// of exchanging with it.
func signalFunc(allowZeroEfflux bool) model.Func {
	return func(ctx context.Context, in dataset.Input, params []float64, consts model.Blob) (model.Output, error) {
		// Ve is declared in percent, the kinetics use the decimal fraction.
		ve := params[0] / 100
		kbh := params[1]
		khe := params[2]

		c, err := consts.Decode()
		if err != nil {
			return model.Output{}, err
		}
		tr, flip, r1 := c["TR"], c["FA"], c["r1"]
		r10a, r10t := c["R10a"], c["R10t"]
		baseline := int(c["baseline"])

		rel, err := normalizeToBaseline(in.Y, baseline)
		if err != nil {
			return model.Output{}, err
		}

		r1a, msg, err := invertSignal(ctx, rel, r10a, flip, tr)
		if err != nil {
			return model.Output{}, err
		}

		n := in.Rows()
		ce := make([]float64, n)
		for i := range ce {
			ce[i] = (r1a[i] - r10a) / r1 / veSpleen
		}

		ct := make([]float64, n)
		switch {
		case kbh != 0:
			th := (1 - ve) / kbh
			conv := expConv(th, in.X, ce)
			for i := range ct {
				ct[i] = ve*ce[i] + khe*th*conv[i]
			}
		case allowZeroEfflux:
			integral := cumTrapz(in.X, ce)
			for i := range ct {
				ct[i] = ve*ce[i] + khe*integral[i]
			}
		default:
			return model.Output{}, fmt.Errorf("biliary efflux rate must be non-zero")
		}

		vals := make([]float64, n)
		for i := range vals {
			vals[i] = spgrRelative(r10t+r1*ct[i], r10t, flip, tr)
		}

		return model.Output{Values: vals, Message: msg}, nil
	}
}

func parameters() []model.Parameter {
	return []model.Parameter{
		{
			ShortName: "Ve",
			LongName:  "Extracellular Volume Fraction",
			Units:     "%",
			Default:   23.0,
			Step:      1.0,
			Precision: 2,
			Min:       0.01,
			Max:       99.99,
		},
		{
			ShortName: "Kbh",
			LongName:  "Biliary Efflux Rate",
			Units:     "mL/min/mL",
			Default:   0.0918,
			Step:      0.01,
			Precision: 4,
			Min:       0.01,
			Max:       100.0,
		},
		{
			ShortName: "Khe",
			LongName:  "Hepatocyte Uptake Rate",
			Units:     "mL/min/mL",
			Default:   2.358,
			Step:      0.1,
			Precision: 3,
			Min:       0.0001,
			Max:       100.0,
		},
	}
}

func constants() []model.Constant {
	baselineValues := make([]float64, 0, 10)
	for v := 1; v <= 10; v++ {
		baselineValues = append(baselineValues, float64(v))
	}
	flipValues := make([]float64, 0, 21)
	for v := 10; v <= 30; v++ {
		flipValues = append(flipValues, float64(v))
	}

	return []model.Constant{
		{ShortName: "TR", Default: 0.013, Step: 0.001, Precision: 4, Min: 0, Max: 0.1},
		{ShortName: "baseline", LongName: "baseline", Default: 1, Precision: 1, Min: 1, Max: 10, ListValues: baselineValues},
		{ShortName: "FA", Default: 20, Precision: 1, Min: 10, Max: 30, ListValues: flipValues},
		{ShortName: "r1", Default: 5.5, Step: 0.1, Precision: 1, Min: 5, Max: 6},
		{ShortName: "R10a", Default: 0.74575, Step: 0.1, Precision: 5, Min: 0.5, Max: 1.0},
		{ShortName: "R10t", Default: 1.3203, Step: 0.1, Precision: 4, Min: 1.0, Max: 2.0},
	}
}

func variables() []model.Variable {
	return []model.Variable{
		{ShortName: "ROI", LongName: "Region of Interest", Colour: model.LineBlue, FitCurveTo: true},
		{ShortName: "AIF", LongName: "Arterial Input Function", Colour: model.LineRed, InputToModel: true},
	}
}
