// Package series holds the ground-truth input of a densification fit: an
// immutable, strictly increasing strain/stress sample series, and the
// piecewise-linear interpolant built from it.
//
// # Sample Series
//
// A Series is validated once at construction and never mutated afterwards:
//
//	s, err := series.New(strain, stress)
//	if errors.Is(err, series.ErrInput) {
//	    // too short, mismatched lengths, non-finite or non-increasing strains
//	}
//
// The constructor copies its inputs, so the caller may reuse its slices.
// A Series is safe for concurrent reads.
//
// # Interpolant
//
// An Interpolant evaluates the linear interpolation between the two samples
// bracketing x and clamps to the boundary stress outside the sampled range:
//
//	interp := series.NewInterpolant(s)
//	y := interp.Evaluate(0.42)
//
// # Probe Histories
//
// FromProbe converts raw simulation probe histories (platen reaction force
// and displacement) into engineering strain and stress in kPa before
// validating them like New.
package series
