// Package fit locates the densification breakpoint of a stress-strain curve.
//
// A curve is split at a candidate breakpoint b into two regimes:
//
//   - compression, strain <= b, modeled as stress = c1 * strain
//   - compaction, strain >= b, modeled as stress = a * e^(rate * strain)
//
// Each regime is scored by the squared-error energy between its model and
// the piecewise-linear interpolant of the samples, divided by the
// interpolant's own energy over the same domain. Search minimizes the sum of
// both ratios over b with a bounded Brent search confined to
// (strain[1], strain[n-2]), then refits at the optimum.
//
//	s, err := series.New(strain, stress)
//	if err != nil {
//	    return err
//	}
//	res, err := fit.Search(s, fit.WithLogger(logger))
//	if err != nil {
//	    return err // regression.ErrDegenerateRegime, regression.ErrConvergence, quadrature.ErrTolerance
//	}
//	fmt.Println(res.Breakpoint, res.CompressionModulus())
//
// Every candidate is evaluated from scratch against immutable inputs, so an
// Evaluator may be shared by concurrent callers. Failures of any candidate
// abort the search and are returned unchanged.
package fit
