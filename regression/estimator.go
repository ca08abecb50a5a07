package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ModelType represents the type of regression model.
type ModelType int

const (
	// ModelTypeProportional represents the zero-intercept linear model: stress = c1 * strain
	ModelTypeProportional ModelType = iota
	// ModelTypeExponential represents the exponential model: stress = a * e^(rate * strain)
	ModelTypeExponential
)

// modelTypeNames maps ModelType to their string representations.
var modelTypeNames = map[ModelType]string{
	ModelTypeProportional: "proportional",
	ModelTypeExponential:  "exponential",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// ParamCount returns the number of free parameters of the model type, or 0
// for unknown types.
func (mt ModelType) ParamCount() int {
	switch mt {
	case ModelTypeProportional:
		return 1
	case ModelTypeExponential:
		return 2
	default:
		return 0
	}
}

// modelTypeFromString maps string names to ModelType.
var modelTypeFromString = map[string]ModelType{
	"proportional": ModelTypeProportional,
	"linear":       ModelTypeProportional,
	"exponential":  ModelTypeExponential,
}

// ModelTypeFromString returns the ModelType for a given string name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	if modelType, exists := modelTypeFromString[strings.ToLower(name)]; exists {
		return modelType
	}

	return ModelType(-1)
}

// Estimator evaluates a fitted regime model.
type Estimator interface {
	// Estimate returns the model stress at the given strain.
	Estimate(strain float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns the model coefficients.
	Coefficients() []float64
	// SetCoefficients replaces the model coefficients. The number of
	// coefficients must equal the model's ParamCount.
	SetCoefficients(coeffs []float64) error
}

// ProportionalEstimator implements the zero-intercept model: stress = c1 * strain
type ProportionalEstimator struct {
	c1     float64
	coeffs []float64
}

var _ Estimator = (*ProportionalEstimator)(nil)

// NewProportionalEstimator creates a proportional estimator with slope c1.
func NewProportionalEstimator(c1 float64) *ProportionalEstimator {
	return &ProportionalEstimator{c1: c1, coeffs: make([]float64, 1)}
}

// Estimate calculates stress = c1 * strain. The value at strain 0 is exactly 0.
func (p *ProportionalEstimator) Estimate(strain float64) float64 {
	return p.c1 * strain
}

// Type returns the model type.
func (p *ProportionalEstimator) Type() ModelType {
	return ModelTypeProportional
}

// Coefficients returns the model coefficients [c1].
func (p *ProportionalEstimator) Coefficients() []float64 {
	p.coeffs[0] = p.c1
	return p.coeffs
}

// SetCoefficients updates the slope. Expects exactly 1 coefficient.
func (p *ProportionalEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 1 {
		return fmt.Errorf("proportional model expects exactly 1 coefficient, got %d", len(coeffs))
	}
	p.c1 = coeffs[0]

	return nil
}

// ExponentialEstimator implements the exponential model: stress = a * e^(rate * strain)
type ExponentialEstimator struct {
	a, rate float64
	coeffs  []float64
}

var _ Estimator = (*ExponentialEstimator)(nil)

// NewExponentialEstimator creates an exponential estimator with amplitude a
// and growth rate rate.
func NewExponentialEstimator(a, rate float64) *ExponentialEstimator {
	return &ExponentialEstimator{a: a, rate: rate, coeffs: make([]float64, 2)}
}

// Estimate calculates stress = a * e^(rate * strain).
func (e *ExponentialEstimator) Estimate(strain float64) float64 {
	return e.a * math.Exp(e.rate*strain)
}

// Type returns the model type.
func (e *ExponentialEstimator) Type() ModelType {
	return ModelTypeExponential
}

// Coefficients returns the model coefficients [a, rate].
func (e *ExponentialEstimator) Coefficients() []float64 {
	e.coeffs[0] = e.a
	e.coeffs[1] = e.rate

	return e.coeffs
}

// SetCoefficients updates [a, rate]. Expects exactly 2 coefficients.
func (e *ExponentialEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("exponential model expects exactly 2 coefficients, got %d", len(coeffs))
	}
	e.a = coeffs[0]
	e.rate = coeffs[1]

	return nil
}

// newEmptyEstimator creates a zero-valued estimator for the given ModelType.
func newEmptyEstimator(modelType ModelType) Estimator {
	switch modelType {
	case ModelTypeProportional:
		return NewProportionalEstimator(0)
	case ModelTypeExponential:
		return NewExponentialEstimator(0, 0)
	default:
		return nil
	}
}

// NewEstimator creates an estimator by model name and coefficients.
//
// Parameters:
//   - name: The model name (case-insensitive): "proportional" (alias "linear")
//     expects 1 coefficient, "exponential" expects 2
//   - coeffs: The model coefficients
//
// Returns:
//   - Estimator: The created estimator instance
//   - error: Returns an error if the name is unknown or the coefficient count is wrong
//
// Example:
//
//	est, err := NewEstimator("proportional", []float64{40})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stress := est.Estimate(0.25) // 10
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	modelType := ModelTypeFromString(name)
	if modelType == ModelType(-1) {
		supported := make([]string, 0, len(modelTypeNames))
		for _, n := range modelTypeNames {
			supported = append(supported, n)
		}
		slices.Sort(supported)

		return nil, fmt.Errorf("unknown model type: %s. Supported types: %s", name, strings.Join(supported, ", "))
	}

	estimator := newEmptyEstimator(modelType)
	if err := estimator.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return estimator, nil
}
