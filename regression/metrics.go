package regression

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RSquared returns the coefficient of determination of predicted against
// actual. A constant actual series has no variance to explain and yields 0.
func RSquared(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}
	if floats.Max(actual) == floats.Min(actual) {
		return 0
	}

	r2 := stat.RSquaredFrom(predicted, actual, nil)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		return 0
	}

	return r2
}

// RMSE returns the root mean square error of predicted against actual.
func RMSE(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}

	return floats.Distance(actual, predicted, 2) / math.Sqrt(float64(len(actual)))
}
