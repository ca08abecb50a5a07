package optimize

import (
	"fmt"

	"github.com/arloliu/densfit/internal/options"
)

const (
	// DefaultXTolerance is the absolute tolerance on the minimizer location.
	DefaultXTolerance = 1e-5
	// DefaultMaxEvaluations is the objective evaluation budget.
	DefaultMaxEvaluations = 500
)

// Settings holds the search parameters.
type Settings struct {
	XTolerance     float64
	MaxEvaluations int
}

// DefaultSettings returns the default search parameters.
func DefaultSettings() Settings {
	return Settings{XTolerance: DefaultXTolerance, MaxEvaluations: DefaultMaxEvaluations}
}

// Option is a functional option for Settings.
type Option = options.Option[*Settings]

// WithXTolerance sets the absolute location tolerance. Must be positive.
func WithXTolerance(tol float64) Option {
	return options.New(func(s *Settings) error {
		if !(tol > 0) {
			return fmt.Errorf("x tolerance must be positive, got %v", tol)
		}
		s.XTolerance = tol

		return nil
	})
}

// WithMaxEvaluations sets the evaluation budget. Must be at least 1.
func WithMaxEvaluations(n int) Option {
	return options.New(func(s *Settings) error {
		if n < 1 {
			return fmt.Errorf("max evaluations must be at least 1, got %d", n)
		}
		s.MaxEvaluations = n

		return nil
	})
}
