package model

import "errors"

var (
	// ErrInvalidModel indicates a malformed model declaration. It is raised
	// at registration time; the registry rejects only the offending model,
	// not the whole library.
	ErrInvalidModel = errors.New("invalid model")

	// ErrNoFitTarget indicates that none of a model's variables is marked
	// as the curve to fit to, so fitting would be meaningless.
	ErrNoFitTarget = errors.New("no fit target variable")

	// ErrUnknownConstant indicates a constant override whose name is not
	// declared by the model.
	ErrUnknownConstant = errors.New("unknown constant")

	// ErrOutOfRange indicates an override value outside a declared range,
	// or not a member of a declared discrete value set.
	ErrOutOfRange = errors.New("value out of range")
)
