package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/densfit/internal/options"
)

const (
	lambdaInitial = 1e-3
	lambdaMax     = 1e16
)

// FitProportional fits stress = c1 * strain by least squares with the
// intercept fixed at zero.
//
// The solution is closed form: c1 = Σxy / Σx².
//
// Parameters:
//   - x: Strain values of the regime
//   - y: Stress values of the regime, same length as x
//
// Returns:
//   - *Model: The fitted model (Evaluations is 1)
//   - error: ErrDegenerateRegime if x is empty or all zero, ErrConvergence if
//     the slope is not finite
func FitProportional(x, y []float64) (*Model, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: length mismatch %d != %d", ErrDegenerateRegime, len(x), len(y))
	}
	if len(x) < ModelTypeProportional.ParamCount() {
		return nil, fmt.Errorf("%w: proportional fit needs at least 1 point", ErrDegenerateRegime)
	}

	sxx := floats.Dot(x, x)
	if sxx == 0 {
		return nil, fmt.Errorf("%w: all strain values are zero", ErrDegenerateRegime)
	}

	c1 := floats.Dot(x, y) / sxx
	if !isFinite(c1) {
		return nil, fmt.Errorf("%w: proportional slope is %v", ErrConvergence, c1)
	}

	est := NewProportionalEstimator(c1)

	return newModel(est, x, y, 1, fmt.Sprintf("y = %.6g * x", c1)), nil
}

// FitExponential fits stress = a * e^(rate * strain) by Levenberg–Marquardt
// nonlinear least squares, starting from (a0, rate0).
//
// Parameters:
//   - x: Strain values of the regime
//   - y: Stress values of the regime, same length as x
//   - a0: Initial amplitude
//   - rate0: Initial growth rate
//   - opts: Solver options (WithMaxEvaluations, WithTolerance)
//
// Returns:
//   - *Model: The fitted model
//   - error: ErrDegenerateRegime for fewer than 2 points, ErrConvergence when
//     the solver fails or the coefficients are not finite
func FitExponential(x, y []float64, a0, rate0 float64, opts ...ExponentialOption) (*Model, error) {
	cfg := DefaultExponentialConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: length mismatch %d != %d", ErrDegenerateRegime, len(x), len(y))
	}
	if len(x) < ModelTypeExponential.ParamCount() {
		return nil, fmt.Errorf("%w: exponential fit needs at least 2 points, got %d", ErrDegenerateRegime, len(x))
	}
	if !isFinite(a0) || !isFinite(rate0) {
		return nil, fmt.Errorf("%w: non-finite starting point (%v, %v)", ErrConvergence, a0, rate0)
	}

	s := newExpSolver(x, y, cfg)
	a, rate, err := s.solve(a0, rate0)
	if err != nil {
		return nil, err
	}

	est := NewExponentialEstimator(a, rate)

	return newModel(est, x, y, s.evals, fmt.Sprintf("y = %.6g * e^(%.6g * x)", a, rate)), nil
}

// expSolver holds the work buffers of one exponential fit.
type expSolver struct {
	x, y     []float64
	cfg      ExponentialConfig
	evals    int
	residual *mat.VecDense
	trial    *mat.VecDense
	jac      *mat.Dense
}

func newExpSolver(x, y []float64, cfg ExponentialConfig) *expSolver {
	n := len(x)

	return &expSolver{
		x:        x,
		y:        y,
		cfg:      cfg,
		residual: mat.NewVecDense(n, nil),
		trial:    mat.NewVecDense(n, nil),
		jac:      mat.NewDense(n, 2, nil),
	}
}

// residuals fills r with model - y and returns half the sum of squares.
func (s *expSolver) residuals(a, rate float64, r *mat.VecDense) float64 {
	s.evals++
	raw := r.RawVector().Data
	for i, xi := range s.x {
		raw[i] = a*math.Exp(rate*xi) - s.y[i]
	}

	return 0.5 * floats.Dot(raw, raw)
}

func (s *expSolver) jacobian(a, rate float64) {
	for i, xi := range s.x {
		e := math.Exp(rate * xi)
		s.jac.Set(i, 0, e)
		s.jac.Set(i, 1, a*xi*e)
	}
}

func (s *expSolver) solve(a, rate float64) (float64, float64, error) {
	tol := s.cfg.Tolerance
	cost := s.residuals(a, rate, s.residual)
	if !isFinite(cost) {
		return 0, 0, fmt.Errorf("%w: initial residual is not finite", ErrConvergence)
	}

	var (
		hess   mat.SymDense
		damped = mat.NewSymDense(2, nil)
		grad   = mat.NewVecDense(2, nil)
		step   = mat.NewVecDense(2, nil)
		chol   mat.Cholesky
	)
	lambda := lambdaInitial
	needJacobian := true

	for cost > 0 {
		if needJacobian {
			s.jacobian(a, rate)
			hess.SymOuterK(1, s.jac.T())
			grad.MulVec(s.jac.T(), s.residual)
			needJacobian = false
		}

		if s.evals >= s.cfg.MaxEvaluations {
			return 0, 0, fmt.Errorf("%w: evaluation budget of %d exhausted", ErrConvergence, s.cfg.MaxEvaluations)
		}
		if lambda > lambdaMax {
			return 0, 0, fmt.Errorf("%w: damping diverged", ErrConvergence)
		}

		damped.CopySym(&hess)
		for i := range 2 {
			d := hess.At(i, i)
			if d == 0 {
				damped.SetSym(i, i, lambda)
			} else {
				damped.SetSym(i, i, d*(1+lambda))
			}
		}

		if ok := chol.Factorize(damped); !ok {
			lambda *= 10
			continue
		}
		if err := chol.SolveVecTo(step, grad); err != nil {
			lambda *= 10
			continue
		}

		da, dr := step.AtVec(0), step.AtVec(1)
		na, nr := a-da, rate-dr
		stepNorm := math.Hypot(da, dr)
		small := stepNorm <= tol*(math.Hypot(a, rate)+tol)

		trialCost := s.residuals(na, nr, s.trial)
		if isFinite(trialCost) && trialCost < cost {
			reduction := (cost - trialCost) / cost
			a, rate, cost = na, nr, trialCost
			s.residual, s.trial = s.trial, s.residual
			needJacobian = true
			lambda /= 10

			if reduction <= tol || small {
				break
			}

			continue
		}

		if small {
			break
		}
		lambda *= 10
	}

	if !isFinite(a) || !isFinite(rate) {
		return 0, 0, fmt.Errorf("%w: non-finite coefficients (%v, %v)", ErrConvergence, a, rate)
	}

	return a, rate, nil
}

func newModel(est Estimator, x, y []float64, evals int, formula string) *Model {
	predicted := make([]float64, len(x))
	for i, xi := range x {
		predicted[i] = est.Estimate(xi)
	}

	coeffs := make([]float64, len(est.Coefficients()))
	copy(coeffs, est.Coefficients())

	return &Model{
		Type:         est.Type(),
		Coefficients: coeffs,
		RSquared:     RSquared(y, predicted),
		RMSE:         RMSE(y, predicted),
		Formula:      formula,
		Estimator:    est,
		Points:       len(x),
		Evaluations:  evals,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
