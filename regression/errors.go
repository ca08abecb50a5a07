package regression

import "errors"

var (
	// ErrDegenerateRegime is returned when a regime partition has fewer usable
	// points than the model has free parameters.
	ErrDegenerateRegime = errors.New("regression: degenerate regime")

	// ErrConvergence is returned when a fit cannot produce finite, converged
	// coefficients.
	ErrConvergence = errors.New("regression: fit did not converge")
)
