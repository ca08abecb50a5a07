package optimize

import "errors"

var (
	// ErrInvalidBounds is returned when the search interval is reversed or
	// not finite.
	ErrInvalidBounds = errors.New("optimize: invalid search bounds")

	// ErrNotANumber is returned when the objective yields NaN.
	ErrNotANumber = errors.New("optimize: objective returned NaN")
)
