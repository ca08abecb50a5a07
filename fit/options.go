package fit

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/densfit/internal/options"
	"github.com/arloliu/densfit/optimize"
	"github.com/arloliu/densfit/quadrature"
	"github.com/arloliu/densfit/regression"
)

// DefaultNormalizerEpsilon is the default floor of a regime normalizer,
// relative to the energy of the whole curve.
const DefaultNormalizerEpsilon = 1e-12

// Config holds the settings of a breakpoint search.
type Config struct {
	// XTolerance is the absolute breakpoint tolerance of the bounded search.
	XTolerance float64
	// MaxEvaluations caps the number of candidate breakpoints.
	MaxEvaluations int
	// Quadrature configures the residual and normalizer integrals.
	Quadrature quadrature.Config
	// Exponential configures the compaction regime solver.
	Exponential regression.ExponentialConfig
	// NormalizerEpsilon floors each normalizer at NormalizerEpsilon times the
	// energy of the whole curve. Zero disables the floor.
	NormalizerEpsilon float64
	// Logger receives per-candidate debug records and a search summary.
	Logger *zap.Logger
}

// DefaultConfig returns the default search settings.
func DefaultConfig() Config {
	return Config{
		XTolerance:        optimize.DefaultXTolerance,
		MaxEvaluations:    optimize.DefaultMaxEvaluations,
		Quadrature:        quadrature.DefaultConfig(),
		Exponential:       regression.DefaultExponentialConfig(),
		NormalizerEpsilon: DefaultNormalizerEpsilon,
		Logger:            zap.NewNop(),
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.Logger = l
	})
}

// WithXTolerance sets the absolute breakpoint tolerance.
func WithXTolerance(tol float64) Option {
	return options.New(func(c *Config) error {
		if !(tol > 0) {
			return fmt.Errorf("x tolerance must be positive, got %v", tol)
		}
		c.XTolerance = tol

		return nil
	})
}

// WithMaxEvaluations caps the number of evaluated candidates.
func WithMaxEvaluations(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("max evaluations must be at least 1, got %d", n)
		}
		c.MaxEvaluations = n

		return nil
	})
}

// WithQuadratureTolerance sets the absolute and relative integration
// tolerances.
func WithQuadratureTolerance(abs, rel float64) Option {
	return options.New(func(c *Config) error {
		return options.Apply(&c.Quadrature,
			quadrature.WithAbsTolerance(abs),
			quadrature.WithRelTolerance(rel),
		)
	})
}

// WithMaxSubintervals sets the quadrature subinterval budget.
func WithMaxSubintervals(n int) Option {
	return options.New(func(c *Config) error {
		return options.Apply(&c.Quadrature, quadrature.WithMaxSubintervals(n))
	})
}

// WithExponentialMaxEvaluations sets the compaction solver's evaluation budget.
func WithExponentialMaxEvaluations(n int) Option {
	return options.New(func(c *Config) error {
		return options.Apply(&c.Exponential, regression.WithMaxEvaluations(n))
	})
}

// WithExponentialTolerance sets the compaction solver's convergence tolerance.
func WithExponentialTolerance(tol float64) Option {
	return options.New(func(c *Config) error {
		return options.Apply(&c.Exponential, regression.WithTolerance(tol))
	})
}

// WithNormalizerEpsilon sets the relative normalizer floor. Must be
// non-negative.
func WithNormalizerEpsilon(eps float64) Option {
	return options.New(func(c *Config) error {
		if eps < 0 || eps != eps {
			return fmt.Errorf("normalizer epsilon must be non-negative, got %v", eps)
		}
		c.NormalizerEpsilon = eps

		return nil
	})
}

func (c *Config) searchOptions() []optimize.Option {
	return []optimize.Option{
		optimize.WithXTolerance(c.XTolerance),
		optimize.WithMaxEvaluations(c.MaxEvaluations),
	}
}

func (c *Config) quadratureOptions() []quadrature.Option {
	return []quadrature.Option{quadrature.WithConfig(c.Quadrature)}
}

func (c *Config) exponentialOptions() []regression.ExponentialOption {
	return []regression.ExponentialOption{regression.WithExponentialConfig(c.Exponential)}
}
