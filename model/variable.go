package model

// LineStyle is the plot style for a variable's curve. The core never
// interprets it; the value is passed through verbatim to whatever
// presentation layer hosts the library.
type LineStyle string

// Line styles matching the matplotlib-style shorthand a hosting plot layer
// typically consumes: colour letter plus marker/line pattern.
const (
	LineBlue    LineStyle = "b.-"
	LineGreen   LineStyle = "g.-"
	LineRed     LineStyle = "r.-"
	LineCyan    LineStyle = "c.-"
	LineMagenta LineStyle = "m.-"
	LineYellow  LineStyle = "y.-"
	LineBlack   LineStyle = "k.-"

	LineBlueDashed  LineStyle = "b--"
	LineGreenDashed LineStyle = "g--"
	LineRedDashed   LineStyle = "r--"
	LineBlackDashed LineStyle = "k--"
)

// Variable describes one named signal the model relates to.
//
// A variable may be an input to the model, the curve the model is fit to,
// or neither (display only). It is never required to be both.
type Variable struct {
	ShortName string
	LongName  string
	// Colour is presentation metadata, passed through untouched.
	Colour LineStyle
	// InputToModel marks the signal consumed by the model as part of its
	// input matrix.
	InputToModel bool
	// FitCurveTo marks the signal whose observed curve the model is fit to.
	FitCurveTo bool
}

// Classify partitions variables into model inputs and fit targets, in
// declared order. A variable may appear in neither list.
func Classify(vars []Variable) (inputs, targets []Variable) {
	for _, v := range vars {
		if v.InputToModel {
			inputs = append(inputs, v)
		}
		if v.FitCurveTo {
			targets = append(targets, v)
		}
	}

	return inputs, targets
}

// InputVariable returns the first variable marked as a model input.
func (m *Model) InputVariable() (Variable, bool) {
	for _, v := range m.Variables {
		if v.InputToModel {
			return v, true
		}
	}

	return Variable{}, false
}

// FitTarget returns the first variable marked as the curve to fit to.
// The second return is false when no variable is so marked; fitting such a
// model fails with ErrNoFitTarget.
func (m *Model) FitTarget() (Variable, bool) {
	for _, v := range m.Variables {
		if v.FitCurveTo {
			return v, true
		}
	}

	return Variable{}, false
}
