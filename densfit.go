// Package densfit finds the densification breakpoint of a foam or pad
// stress-strain curve.
//
// Under uniaxial compression a cellular material first deforms roughly
// linearly, then stiffens sharply once its cells collapse. densfit models the
// first regime as stress = c1 * strain and the second as
// stress = a * e^(rate * strain), and searches for the strain that best
// separates them.
//
// # Basic Usage
//
//	res, err := densfit.Fit(strain, stress)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.DensificationStrain(), res.DensificationStress(), res.CompressionModulus())
//
// # Package Structure
//
// This package wraps the most common path through the sub-packages:
//
//   - series: validated, sorted sample series and its linear interpolant
//   - fit: breakpoint search and per-regime fitting
//   - regression: proportional and exponential least-squares models
//   - optimize: bounded scalar minimization
//   - quadrature: adaptive numerical integration
//   - validate: comparison against expected reference values
//   - snapshot: compressed, checksummed persistence of fits
//
// Use the sub-packages directly for finer control.
package densfit

import (
	"github.com/arloliu/densfit/fit"
	"github.com/arloliu/densfit/quadrature"
	"github.com/arloliu/densfit/regression"
	"github.com/arloliu/densfit/series"
)

var (
	// ErrInput is returned for sample series that are too short, unsorted,
	// mismatched in length or hold non-finite values.
	ErrInput = series.ErrInput
	// ErrDegenerateRegime is returned when a candidate breakpoint leaves a
	// regime without a fittable set of points.
	ErrDegenerateRegime = regression.ErrDegenerateRegime
	// ErrConvergence is returned when a regime fit fails to produce finite
	// coefficients.
	ErrConvergence = regression.ErrConvergence
	// ErrTolerance is returned when a residual integral misses its tolerance.
	ErrTolerance = quadrature.ErrTolerance
)

// Fit validates the samples and locates their densification breakpoint.
//
// Parameters:
//   - strain: Strictly increasing strain samples
//   - stress: Stress samples, one per strain
//   - opts: Optional fit configuration (see fit.Option)
//
// Returns:
//   - *fit.Result: Breakpoint, both regime fits and the objective at the optimum
//   - error: ErrInput, ErrDegenerateRegime, ErrConvergence or ErrTolerance
func Fit(strain, stress []float64, opts ...fit.Option) (*fit.Result, error) {
	s, err := series.New(strain, stress)
	if err != nil {
		return nil, err
	}

	return fit.Search(s, opts...)
}

// FitSeries locates the densification breakpoint of an already validated series.
func FitSeries(s *series.Series, opts ...fit.Option) (*fit.Result, error) {
	return fit.Search(s, opts...)
}
