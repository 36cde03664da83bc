package domain

import "errors"

// Common domain errors. Loading is all-or-nothing: any of these aborts the
// run, since the computation is only meaningful over internally consistent
// reference data. Wrap with fmt.Errorf("%w: ...", err) for context.
var (
	// ErrUnknownIngredient is returned when a trait row names an ingredient
	// absent from the ingredient table.
	ErrUnknownIngredient = errors.New("unknown ingredient")

	// ErrUnknownEffect is returned when a trait row names an effect absent
	// from the effect table.
	ErrUnknownEffect = errors.New("unknown effect")

	// ErrDuplicateName is returned when two rows in one table share a key.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrDuplicateTrait is returned when an ingredient is given two traits
	// for the same effect.
	ErrDuplicateTrait = errors.New("duplicate trait")

	// ErrMalformedField is returned when a field cannot be coerced to its
	// declared type. There is no partial load.
	ErrMalformedField = errors.New("malformed field")

	// ErrInvalidRow is returned when a coerced row fails validation.
	ErrInvalidRow = errors.New("invalid row")
)
