package fit

import (
	"math"

	"github.com/arloliu/densfit/quadrature"
)

// EvaluateResidual integrates the squared error between model and the
// reference signal, and the reference signal's own energy, over [lo, hi].
//
// A zero-width domain yields (0, 0) without evaluating either function.
//
// Parameters:
//   - reference: The reference signal, usually an interpolant's Evaluate
//   - model: The fitted regime model
//   - lo, hi: The regime domain
//   - opts: Quadrature options
//
// Returns:
//   - residual: ∫ (reference - model)² over [lo, hi]
//   - normalizer: ∫ reference² over [lo, hi]
//   - err: quadrature.ErrTolerance when either integral does not converge
func EvaluateResidual(reference, model func(float64) float64, lo, hi float64, opts ...quadrature.Option) (residual, normalizer float64, err error) {
	if lo == hi {
		return 0, 0, nil
	}

	res, err := quadrature.Integrate(func(x float64) float64 {
		d := reference(x) - model(x)
		return d * d
	}, lo, hi, opts...)
	if err != nil {
		return 0, 0, err
	}

	norm, err := signalEnergy(reference, lo, hi, opts...)
	if err != nil {
		return 0, 0, err
	}

	// squared integrands are non-negative; clip rounding noise of the rules
	return math.Abs(res.Value), math.Abs(norm.Value), nil
}

// signalEnergy integrates reference² over [lo, hi].
func signalEnergy(reference func(float64) float64, lo, hi float64, opts ...quadrature.Option) (quadrature.Result, error) {
	return quadrature.Integrate(func(x float64) float64 {
		v := reference(x)
		return v * v
	}, lo, hi, opts...)
}
