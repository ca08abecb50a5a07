// Package optimize provides bounded scalar minimization.
//
// Minimize runs Brent's method on a closed interval: golden-section steps
// guarantee progress, parabolic interpolation steps accelerate convergence
// near a smooth minimum, and no point outside [lo, hi] is ever evaluated.
//
//	res, err := optimize.Minimize(func(x float64) (float64, error) {
//	    return (x - 0.3) * (x - 0.3), nil
//	}, 0, 1)
//
// An objective error aborts the search and is returned unchanged, so callers
// can match their own sentinels with errors.Is. Running out of evaluations is
// not an error: the best point found is returned with Converged set to false.
package optimize
