package quadrature

import (
	"fmt"

	"github.com/arloliu/densfit/internal/options"
)

const (
	// DefaultAbsTolerance is the default absolute error target.
	DefaultAbsTolerance = 1.49e-8
	// DefaultRelTolerance is the default relative error target.
	DefaultRelTolerance = 1.49e-8
	// DefaultMaxSubintervals bounds the number of panels one integral may use.
	DefaultMaxSubintervals = 1_000_000
)

// Config holds the adaptive integration settings.
type Config struct {
	AbsTolerance    float64
	RelTolerance    float64
	MaxSubintervals int
}

// DefaultConfig returns the default integration settings.
func DefaultConfig() Config {
	return Config{
		AbsTolerance:    DefaultAbsTolerance,
		RelTolerance:    DefaultRelTolerance,
		MaxSubintervals: DefaultMaxSubintervals,
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithAbsTolerance sets the absolute error target. Must be positive.
func WithAbsTolerance(tol float64) Option {
	return options.New(func(c *Config) error {
		if !(tol > 0) {
			return fmt.Errorf("absolute tolerance must be positive, got %v", tol)
		}
		c.AbsTolerance = tol

		return nil
	})
}

// WithRelTolerance sets the relative error target. Must be non-negative.
func WithRelTolerance(tol float64) Option {
	return options.New(func(c *Config) error {
		if tol < 0 || tol != tol {
			return fmt.Errorf("relative tolerance must be non-negative, got %v", tol)
		}
		c.RelTolerance = tol

		return nil
	})
}

// WithMaxSubintervals sets the panel budget. Must be at least 1.
func WithMaxSubintervals(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("max subintervals must be at least 1, got %d", n)
		}
		c.MaxSubintervals = n

		return nil
	})
}

// WithConfig replaces the whole configuration after validating each field.
func WithConfig(cfg Config) Option {
	return options.New(func(c *Config) error {
		return options.Apply(c,
			WithAbsTolerance(cfg.AbsTolerance),
			WithRelTolerance(cfg.RelTolerance),
			WithMaxSubintervals(cfg.MaxSubintervals),
		)
	})
}
