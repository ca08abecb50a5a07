// Package regression provides the per-regime models of a stress-strain fit and
// the least-squares fitters that estimate their coefficients.
//
// # Model Types
//
// Two models describe the two regimes of a compacting material:
//
//   - **Proportional**: stress = c1 * strain (compression regime, zero intercept)
//   - **Exponential**: stress = a * e^(rate * strain) (compaction/densification regime)
//
// Each fitted model is returned as a Model carrying its coefficients, R², RMSE,
// a human-readable formula and a concrete Estimator for predictions.
//
// # Fitting
//
// The proportional model has a closed-form least-squares solution:
//
//	model, err := regression.FitProportional(strain, stress)
//	if err != nil {
//	    return err
//	}
//	c1 := model.Coefficients[0]
//
// The exponential model is fitted by Levenberg–Marquardt nonlinear least
// squares from a caller-supplied starting point:
//
//	model, err := regression.FitExponential(strain, stress, a0, 1.0)
//	if errors.Is(err, regression.ErrConvergence) {
//	    // the solver could not converge; no coefficients are returned
//	}
//
// # Error Handling
//
//   - ErrDegenerateRegime: fewer usable points than free parameters
//   - ErrConvergence: the solver diverged, stalled, exhausted its evaluation
//     budget, or produced non-finite coefficients
//
// Fitters never substitute default coefficients on failure.
//
// # Estimators
//
// Estimators can also be built directly from known coefficients, e.g. to
// rebuild a model from a stored snapshot:
//
//	est, err := regression.NewEstimator("exponential", []float64{7.36, 2.0})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stress := est.Estimate(0.8)
package regression
