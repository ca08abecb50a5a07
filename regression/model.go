package regression

import "fmt"

// Model is a fitted regression model with its quality metrics.
//
// Fields:
//   - Type: The model type (proportional, exponential)
//   - Coefficients: The fitted parameters, in the order of the model formula
//   - RSquared: Coefficient of determination over the fitted points
//   - RMSE: Root mean square error over the fitted points
//   - Formula: Human-readable formula
//   - Estimator: Concrete estimator for predictions
//   - Points: Number of samples the model was fitted to
//   - Evaluations: Model evaluations spent by the solver (1 for closed-form fits)
type Model struct {
	// Type is the model type.
	Type ModelType
	// Coefficients contains the fitted model coefficients.
	Coefficients []float64
	// RSquared is the coefficient of determination (goodness of fit).
	RSquared float64
	// RMSE is the root mean square error.
	RMSE float64
	// Formula is a human-readable representation of the model.
	Formula string
	// Estimator is the concrete estimator implementation.
	Estimator Estimator
	// Points is the number of samples used by the fit.
	Points int
	// Evaluations is the number of residual evaluations used by the solver.
	Evaluations int
}

// String returns a string representation of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4g, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}
