package validate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/densfit/fit"
	"github.com/arloliu/densfit/series"
)

// ErrMismatch is returned by Report.Err when a computed quantity deviates
// from its reference beyond tolerance.
var ErrMismatch = errors.New("validate: result does not match reference")

// Quantity names used in checks.
const (
	CompressionRatio    = "compression_ratio"
	DensificationStrain = "densification_strain"
	DensificationStress = "densification_stress"
	CompressionModulus  = "compression_modulus"
)

// Summary holds the quantities derived from a fit.
type Summary struct {
	CompressionRatio    float64 `msgpack:"compression_ratio" json:"compression_ratio"`
	DensificationStrain float64 `msgpack:"densification_strain" json:"densification_strain"`
	DensificationStress float64 `msgpack:"densification_stress" json:"densification_stress"`
	CompressionModulus  float64 `msgpack:"compression_modulus" json:"compression_modulus"`
}

// Summarize derives a Summary from a sample series and its fit. The
// compression ratio is the final sampled strain.
func Summarize(s *series.Series, r *fit.Result) Summary {
	return Summary{
		CompressionRatio:    s.Last(),
		DensificationStrain: r.DensificationStrain(),
		DensificationStress: r.DensificationStress(),
		CompressionModulus:  r.CompressionModulus(),
	}
}

// Reference holds expected values. NaN fields are not checked.
type Reference struct {
	CompressionRatio    float64 `msgpack:"compression_ratio" json:"compression_ratio"`
	DensificationStrain float64 `msgpack:"densification_strain" json:"densification_strain"`
	DensificationStress float64 `msgpack:"densification_stress" json:"densification_stress"`
	CompressionModulus  float64 `msgpack:"compression_modulus" json:"compression_modulus"`
}

// EmptyReference returns a Reference with every quantity unset.
func EmptyReference() Reference {
	nan := math.NaN()
	return Reference{CompressionRatio: nan, DensificationStrain: nan, DensificationStress: nan, CompressionModulus: nan}
}

// ExpectedCompressionRatio returns the compression ratio reached at fraction
// of the maximum possible compression of a pad whose solid volume ratio is
// padVolumeRatio.
func ExpectedCompressionRatio(padVolumeRatio, fraction float64) float64 {
	return fraction * (1 - padVolumeRatio)
}

// Tolerance bounds the accepted deviation: |computed - expected| must not
// exceed Absolute + Relative*|expected|.
type Tolerance struct {
	Absolute float64
	Relative float64
}

// DefaultTolerance accepts a relative deviation of 1e-6.
func DefaultTolerance() Tolerance {
	return Tolerance{Absolute: 1e-12, Relative: 1e-6}
}

func (t Tolerance) allows(expected, deviation float64) bool {
	return deviation <= t.Absolute+t.Relative*math.Abs(expected)
}

// Check is the comparison of one quantity.
type Check struct {
	Name      string
	Expected  float64
	Computed  float64
	Deviation float64
	Passed    bool
}

// String formats the check as one report line.
func (c Check) String() string {
	status := "ok"
	if !c.Passed {
		status = "FAIL"
	}

	return fmt.Sprintf("%-22s expected %-14.8g computed %-14.8g deviation %-10.3g %s",
		c.Name, c.Expected, c.Computed, c.Deviation, status)
}

// Report is the outcome of a comparison.
type Report struct {
	Checks    []Check
	Tolerance Tolerance
}

// Passed reports whether every check passed.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}

	return true
}

// Failed returns the failing checks.
func (r Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}

	return failed
}

// Err returns nil when every check passed, otherwise an error wrapping
// ErrMismatch that names the failing quantities.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	names := make([]string, len(failed))
	for i, c := range failed {
		names[i] = c.Name
	}

	return fmt.Errorf("%w: %s", ErrMismatch, strings.Join(names, ", "))
}

// String formats the report, one check per line.
func (r Report) String() string {
	var sb strings.Builder
	for _, c := range r.Checks {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Compare checks summary against every quantity set in ref.
func Compare(summary Summary, ref Reference, tol Tolerance) Report {
	pairs := []struct {
		name               string
		expected, computed float64
	}{
		{CompressionRatio, ref.CompressionRatio, summary.CompressionRatio},
		{DensificationStrain, ref.DensificationStrain, summary.DensificationStrain},
		{DensificationStress, ref.DensificationStress, summary.DensificationStress},
		{CompressionModulus, ref.CompressionModulus, summary.CompressionModulus},
	}

	report := Report{Tolerance: tol}
	for _, p := range pairs {
		if math.IsNaN(p.expected) {
			continue
		}

		deviation := math.Abs(p.computed - p.expected)
		report.Checks = append(report.Checks, Check{
			Name:      p.name,
			Expected:  p.expected,
			Computed:  p.computed,
			Deviation: deviation,
			// NaN deviations compare false and fail the check
			Passed: tol.allows(p.expected, deviation),
		})
	}

	return report
}
