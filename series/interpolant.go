package series

import "gonum.org/v1/gonum/interp"

// Interpolant is the piecewise-linear function through the samples of a
// Series. It is read-only once built.
type Interpolant struct {
	pl     interp.PiecewiseLinear
	lo, hi float64
}

// NewInterpolant builds the interpolant of s.
func NewInterpolant(s *Series) *Interpolant {
	p := &Interpolant{lo: s.First(), hi: s.Last()}
	// strain is validated strictly increasing with at least MinSamples
	// points, so Fit cannot panic and always returns nil.
	_ = p.pl.Fit(s.strain, s.stress)

	return p
}

// Evaluate returns the interpolated stress at strain x.
//
// Inside the sampled range the value is the linear interpolation between the
// two bracketing samples. Outside it, the nearest boundary sample's stress is
// returned; there is no extrapolation.
func (p *Interpolant) Evaluate(x float64) float64 {
	return p.pl.Predict(x)
}

// Domain returns the sampled strain range [strain[0], strain[n-1]].
func (p *Interpolant) Domain() (lo, hi float64) {
	return p.lo, p.hi
}
