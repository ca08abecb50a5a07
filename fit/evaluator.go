package fit

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/densfit/internal/options"
	"github.com/arloliu/densfit/internal/pool"
	"github.com/arloliu/densfit/regression"
	"github.com/arloliu/densfit/series"
)

// Evaluator scores candidate breakpoints of one sample series.
//
// An Evaluator holds only immutable state after construction and is safe for
// concurrent use.
type Evaluator struct {
	series *series.Series
	interp *series.Interpolant
	cfg    Config
	log    *zap.SugaredLogger
	// energy is ∫ interpolant² over the whole sampled domain.
	energy float64
}

// NewEvaluator prepares the interpolant and the curve energy of s.
//
// Returns quadrature.ErrTolerance if the curve energy cannot be integrated.
func NewEvaluator(s *series.Series, opts ...Option) (*Evaluator, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil series", series.ErrInput)
	}

	cfg := DefaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	e := &Evaluator{
		series: s,
		interp: series.NewInterpolant(s),
		cfg:    cfg,
		log:    cfg.Logger.Sugar(),
	}

	lo, hi := e.interp.Domain()
	energy, err := signalEnergy(e.interp.Evaluate, lo, hi, cfg.quadratureOptions()...)
	if err != nil {
		return nil, fmt.Errorf("curve energy: %w", err)
	}
	e.energy = math.Abs(energy.Value)

	return e, nil
}

// Series returns the evaluated sample series.
func (e *Evaluator) Series() *series.Series {
	return e.series
}

// Config returns the evaluator configuration.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// FitRegimes partitions the series at b and fits both regime models.
//
// Samples with strain <= b form the compression partition and samples with
// strain >= b the compaction partition; a sample exactly at b belongs to both.
// The compaction fit starts from (interpolant(b), 1.0). Residual and
// Normalizer of the returned fits are left zero.
//
// Returns regression.ErrDegenerateRegime or regression.ErrConvergence.
func (e *Evaluator) FitRegimes(b float64) (compression, compaction RegimeFit, err error) {
	n := e.series.Len()
	xs, ys, cleanup := pool.GetFloat64Pair(n)
	defer cleanup()

	e.series.Each(func(strain, stress float64) {
		if strain <= b {
			xs = append(xs, strain)
			ys = append(ys, stress)
		}
	})

	lower, err := regression.FitProportional(xs, ys)
	if err != nil {
		return RegimeFit{}, RegimeFit{}, fmt.Errorf("compression regime at %v: %w", b, err)
	}

	xs, ys = xs[:0], ys[:0]
	e.series.Each(func(strain, stress float64) {
		if strain >= b {
			xs = append(xs, strain)
			ys = append(ys, stress)
		}
	})

	upper, err := regression.FitExponential(xs, ys, e.interp.Evaluate(b), 1.0, e.cfg.exponentialOptions()...)
	if err != nil {
		return RegimeFit{}, RegimeFit{}, fmt.Errorf("compaction regime at %v: %w", b, err)
	}

	lo, hi := e.interp.Domain()
	compression = newRegimeFit(lower, Domain{Lo: math.Min(0, lo), Hi: b})
	compaction = newRegimeFit(upper, Domain{Lo: b, Hi: hi})

	return compression, compaction, nil
}

// Score fills the Residual and Normalizer of r over its domain.
//
// Returns quadrature.ErrTolerance when an integral does not converge.
func (e *Evaluator) Score(r *RegimeFit) error {
	res, norm, err := EvaluateResidual(e.interp.Evaluate, r.Estimate, r.Domain.Lo, r.Domain.Hi, e.cfg.quadratureOptions()...)
	if err != nil {
		return fmt.Errorf("%s regime residual: %w", r.Model, err)
	}
	r.Residual = res
	r.Normalizer = norm

	return nil
}

// Objective combines the normalized residuals of both regimes.
func (e *Evaluator) Objective(compression, compaction RegimeFit) float64 {
	floor := e.cfg.NormalizerEpsilon * e.energy

	return ratio(compression.Residual, compression.Normalizer, floor) +
		ratio(compaction.Residual, compaction.Normalizer, floor)
}

// Evaluate fits and scores both regimes at breakpoint b.
func (e *Evaluator) Evaluate(b float64) (*Result, error) {
	compression, compaction, err := e.FitRegimes(b)
	if err != nil {
		return nil, err
	}
	if err := e.Score(&compression); err != nil {
		return nil, err
	}
	if err := e.Score(&compaction); err != nil {
		return nil, err
	}

	return &Result{
		Compression: compression,
		Compaction:  compaction,
		Breakpoint:  b,
		Objective:   e.Objective(compression, compaction),
	}, nil
}

func newRegimeFit(m *regression.Model, d Domain) RegimeFit {
	return RegimeFit{
		Model:        m.Type,
		Coefficients: m.Coefficients,
		Domain:       d,
		Points:       m.Points,
		RSquared:     m.RSquared,
		RMSE:         m.RMSE,
		estimator:    m.Estimator,
	}
}
