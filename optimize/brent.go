package optimize

import (
	"fmt"
	"math"

	"github.com/arloliu/densfit/internal/options"
)

var (
	goldenMean = 0.5 * (3 - math.Sqrt(5))
	sqrtEps    = math.Sqrt(2.2e-16)
)

// Objective is a scalar function to minimize. A non-nil error aborts the
// search.
type Objective func(x float64) (float64, error)

// Result is the outcome of a bounded search.
type Result struct {
	// X is the best point found.
	X float64
	// F is the objective value at X.
	F float64
	// Evaluations is the number of objective evaluations.
	Evaluations int
	// Converged reports whether the location tolerance was met before the
	// evaluation budget ran out.
	Converged bool
}

// Minimize finds a local minimum of f on [lo, hi] with Brent's bounded method.
//
// Parameters:
//   - f: The objective function
//   - lo, hi: Finite search bounds with lo <= hi
//   - opts: Search options (WithXTolerance, WithMaxEvaluations)
//
// Returns:
//   - Result: The best point found, always within [lo, hi]
//   - error: ErrInvalidBounds for bad bounds, ErrNotANumber if f returns NaN,
//     or the error returned by f itself
func Minimize(f Objective, lo, hi float64, opts ...Option) (Result, error) {
	settings := DefaultSettings()
	if err := options.Apply(&settings, opts...); err != nil {
		return Result{}, err
	}

	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Result{}, fmt.Errorf("%w: [%v, %v] is not finite", ErrInvalidBounds, lo, hi)
	}
	if lo > hi {
		return Result{}, fmt.Errorf("%w: lower bound %v exceeds upper bound %v", ErrInvalidBounds, lo, hi)
	}

	s := &search{f: f, lo: lo, hi: hi, xatol: settings.XTolerance, maxEvals: settings.MaxEvaluations}

	return s.run()
}

type search struct {
	f        Objective
	lo, hi   float64
	xatol    float64
	maxEvals int
	evals    int
}

func (s *search) eval(x float64) (float64, error) {
	s.evals++

	fx, err := s.f(x)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(fx) {
		return 0, fmt.Errorf("%w: at x=%v", ErrNotANumber, x)
	}

	return fx, nil
}

// run follows the classic bounded Brent iteration: xf is the best point, nfc
// the second best and fulc the previous value of nfc.
func (s *search) run() (Result, error) {
	a, b := s.lo, s.hi

	fulc := a + goldenMean*(b-a)
	nfc, xf := fulc, fulc
	var rat, e float64

	fx, err := s.eval(xf)
	if err != nil {
		return Result{}, err
	}
	ffulc, fnfc := fx, fx

	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(xf) + s.xatol/3
	tol2 := 2 * tol1
	converged := true

	for math.Abs(xf-xm) > tol2-0.5*(b-a) {
		if s.evals >= s.maxEvals {
			converged = false
			break
		}

		golden := true
		if math.Abs(e) > tol1 {
			golden = false
			r := (xf - nfc) * (fx - ffulc)
			q := (xf - fulc) * (fx - fnfc)
			p := (xf-fulc)*q - (xf-nfc)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = rat

			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-xf) && p < q*(b-xf) {
				rat = p / q
				x := xf + rat
				if x-a < tol2 || b-x < tol2 {
					rat = tol1 * signOf(xm-xf)
				}
			} else {
				golden = true
			}
		}

		if golden {
			if xf >= xm {
				e = a - xf
			} else {
				e = b - xf
			}
			rat = goldenMean * e
		}

		x := s.clamp(xf + signOf(rat)*math.Max(math.Abs(rat), tol1))
		fu, err := s.eval(x)
		if err != nil {
			return Result{}, err
		}

		if fu <= fx {
			if x >= xf {
				a = xf
			} else {
				b = xf
			}
			fulc, ffulc = nfc, fnfc
			nfc, fnfc = xf, fx
			xf, fx = x, fu
		} else {
			if x < xf {
				a = x
			} else {
				b = x
			}
			if fu <= fnfc || nfc == xf {
				fulc, ffulc = nfc, fnfc
				nfc, fnfc = x, fu
			} else if fu <= ffulc || fulc == xf || fulc == nfc {
				fulc, ffulc = x, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(xf) + s.xatol/3
		tol2 = 2 * tol1
	}

	return Result{
		X:           xf,
		F:           fx,
		Evaluations: s.evals,
		Converged:   converged,
	}, nil
}

func (s *search) clamp(x float64) float64 {
	return math.Min(math.Max(x, s.lo), s.hi)
}

// signOf returns the sign of v, treating zero as positive.
func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}

	return 1
}
