// Package quadrature implements adaptive one-dimensional numerical
// integration over finite intervals.
//
// Integrate estimates ∫ f(x) dx on [lo, hi] by globally adaptive bisection:
// every panel is integrated with a 7-point and a 15-point Gauss–Legendre
// rule, the difference of the two is the panel's error estimate, and the
// panel with the largest estimate is split until the summed estimate falls
// under max(AbsTolerance, RelTolerance*|I|).
//
//	res, err := quadrature.Integrate(math.Sin, 0, math.Pi)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Value) // 2
//
// When the tolerance cannot be met within the subinterval budget, or the
// integrand produces a non-finite value, Integrate returns ErrTolerance
// instead of a silently inaccurate value.
package quadrature
