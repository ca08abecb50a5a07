package quadrature

import "errors"

// ErrTolerance is returned when an integral cannot be computed to the
// requested tolerance.
var ErrTolerance = errors.New("quadrature: tolerance not achieved")
