package fit

import (
	"fmt"
	"math"

	"github.com/arloliu/densfit/regression"
)

// Domain is a closed strain interval [Lo, Hi].
type Domain struct {
	Lo float64
	Hi float64
}

// Width returns Hi - Lo.
func (d Domain) Width() float64 {
	return d.Hi - d.Lo
}

// Contains reports whether x lies in the closed interval.
func (d Domain) Contains(x float64) bool {
	return x >= d.Lo && x <= d.Hi
}

// RegimeFit is one regime's fitted model and its fit quality over the
// regime's domain.
type RegimeFit struct {
	// Model is the regression model type of the regime.
	Model regression.ModelType
	// Coefficients are [c1] for compression and [a, rate] for compaction.
	Coefficients []float64
	// Domain is the strain interval the residual is integrated over.
	Domain Domain
	// Residual is ∫ (interpolant - model)² over Domain.
	Residual float64
	// Normalizer is ∫ interpolant² over Domain.
	Normalizer float64
	// Points is the number of samples in the regime partition.
	Points int
	// RSquared is the coefficient of determination over the partition.
	RSquared float64
	// RMSE is the root mean square error over the partition.
	RMSE float64

	estimator regression.Estimator
}

// Estimate evaluates the regime model at strain x.
func (r RegimeFit) Estimate(x float64) float64 {
	est := r.estimator
	if est == nil {
		var err error
		est, err = regression.NewEstimator(r.Model.String(), r.Coefficients)
		if err != nil {
			return math.NaN()
		}
	}

	return est.Estimate(x)
}

// RelativeError returns Residual / Normalizer, or 0 when both are 0.
func (r RegimeFit) RelativeError() float64 {
	return ratio(r.Residual, r.Normalizer, 0)
}

// String returns a short description of the regime fit.
func (r RegimeFit) String() string {
	return fmt.Sprintf("%s %v on [%.6g, %.6g] (relative error %.3g, %d points)",
		r.Model, r.Coefficients, r.Domain.Lo, r.Domain.Hi, r.RelativeError(), r.Points)
}

// SearchStats describes the bounded search that produced a Result.
type SearchStats struct {
	// Evaluations is the number of candidate breakpoints evaluated.
	Evaluations int
	// Converged is false when the search stopped on its evaluation cap.
	Converged bool
}

// Result is the two-regime fit at a breakpoint.
type Result struct {
	// Compression is the proportional fit of the lower regime.
	Compression RegimeFit
	// Compaction is the exponential fit of the upper regime.
	Compaction RegimeFit
	// Breakpoint is the strain separating the regimes.
	Breakpoint float64
	// Objective is the sum of both regimes' normalized residuals.
	Objective float64
	// Search is populated by Search; it is zero for single evaluations.
	Search SearchStats
}

// DensificationStrain returns the breakpoint strain.
func (r *Result) DensificationStrain() float64 {
	return r.Breakpoint
}

// DensificationStress returns the compression model stress at the breakpoint.
func (r *Result) DensificationStress() float64 {
	return r.Compression.Estimate(r.Breakpoint)
}

// CompressionModulus returns the compression regime slope c1.
func (r *Result) CompressionModulus() float64 {
	if len(r.Compression.Coefficients) == 0 {
		return math.NaN()
	}

	return r.Compression.Coefficients[0]
}

// String returns a human-readable summary of the result.
func (r *Result) String() string {
	return fmt.Sprintf("Result{Breakpoint: %.6g, Objective: %.4g, Compression: %s, Compaction: %s}",
		r.Breakpoint, r.Objective, r.Compression, r.Compaction)
}

// ratio returns res / max(norm, floor), defined as 0 for a 0/0 regime.
func ratio(res, norm, floor float64) float64 {
	if res == 0 && norm == 0 {
		return 0
	}

	return res / math.Max(norm, floor)
}
