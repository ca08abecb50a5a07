package regression

import (
	"fmt"

	"github.com/arloliu/densfit/internal/options"
)

const (
	// DefaultExponentialMaxEvaluations is the residual evaluation budget of
	// the exponential solver, 200 * (params + 1).
	DefaultExponentialMaxEvaluations = 600
	// DefaultExponentialTolerance is the relative cost-reduction and step-size
	// tolerance of the exponential solver.
	DefaultExponentialTolerance = 1.49012e-8
)

// ExponentialConfig holds the Levenberg–Marquardt solver settings.
type ExponentialConfig struct {
	MaxEvaluations int
	Tolerance      float64
}

// DefaultExponentialConfig returns the default solver settings.
func DefaultExponentialConfig() ExponentialConfig {
	return ExponentialConfig{
		MaxEvaluations: DefaultExponentialMaxEvaluations,
		Tolerance:      DefaultExponentialTolerance,
	}
}

// ExponentialOption is a functional option for ExponentialConfig.
type ExponentialOption = options.Option[*ExponentialConfig]

// WithMaxEvaluations sets the residual evaluation budget.
func WithMaxEvaluations(n int) ExponentialOption {
	return options.New(func(cfg *ExponentialConfig) error {
		if n < 2 {
			return fmt.Errorf("max evaluations must be at least 2, got %d", n)
		}
		cfg.MaxEvaluations = n

		return nil
	})
}

// WithTolerance sets the relative convergence tolerance.
func WithTolerance(tol float64) ExponentialOption {
	return options.New(func(cfg *ExponentialConfig) error {
		if !(tol > 0) {
			return fmt.Errorf("tolerance must be positive, got %v", tol)
		}
		cfg.Tolerance = tol

		return nil
	})
}

// WithExponentialConfig replaces the whole solver configuration.
func WithExponentialConfig(c ExponentialConfig) ExponentialOption {
	return options.New(func(cfg *ExponentialConfig) error {
		if err := options.Apply(cfg, WithMaxEvaluations(c.MaxEvaluations), WithTolerance(c.Tolerance)); err != nil {
			return err
		}

		return nil
	})
}
