package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/densfit/fit"
	"github.com/arloliu/densfit/regression"
	"github.com/arloliu/densfit/series"
)

func sampleSummary() Summary {
	return Summary{
		CompressionRatio:    0.7,
		DensificationStrain: 0.46,
		DensificationStress: 20.8,
		CompressionModulus:  45.2,
	}
}

func TestSummarize(t *testing.T) {
	strain := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	stress := make([]float64, len(strain))
	for i, x := range strain {
		if x <= 0.5 {
			stress[i] = 40 * x
		} else {
			stress[i] = 20 * math.Exp(2*(x-0.5))
		}
	}
	s, err := series.New(strain, stress)
	require.NoError(t, err)

	res, err := fit.Search(s)
	require.NoError(t, err)

	sum := Summarize(s, res)
	assert.Equal(t, 1.0, sum.CompressionRatio)
	assert.Equal(t, res.Breakpoint, sum.DensificationStrain)
	assert.InDelta(t, res.CompressionModulus()*res.Breakpoint, sum.DensificationStress, 1e-9)
	assert.Equal(t, res.Compression.Coefficients[0], sum.CompressionModulus)
}

func TestSummarizeHandBuiltResult(t *testing.T) {
	s, err := series.New([]float64{0, 0.2, 0.4, 0.6}, []float64{0, 1, 2, 5})
	require.NoError(t, err)

	res := &fit.Result{
		Compression: fit.RegimeFit{Model: regression.ModelTypeProportional, Coefficients: []float64{5}},
		Breakpoint:  0.3,
	}

	sum := Summarize(s, res)
	assert.Equal(t, 0.6, sum.CompressionRatio)
	assert.Equal(t, 0.3, sum.DensificationStrain)
	assert.InDelta(t, 1.5, sum.DensificationStress, 1e-12)
	assert.Equal(t, 5.0, sum.CompressionModulus)
}

func TestCompare(t *testing.T) {
	t.Run("all pass", func(t *testing.T) {
		ref := Reference{CompressionRatio: 0.7, DensificationStrain: 0.46, DensificationStress: 20.8, CompressionModulus: 45.2}

		report := Compare(sampleSummary(), ref, DefaultTolerance())
		require.Len(t, report.Checks, 4)
		require.True(t, report.Passed())
		require.Empty(t, report.Failed())
		require.NoError(t, report.Err())
	})

	t.Run("skips unset quantities", func(t *testing.T) {
		ref := EmptyReference()
		ref.CompressionModulus = 45.2

		report := Compare(sampleSummary(), ref, DefaultTolerance())
		require.Len(t, report.Checks, 1)
		require.Equal(t, CompressionModulus, report.Checks[0].Name)
		require.True(t, report.Passed())
	})

	t.Run("empty reference passes", func(t *testing.T) {
		report := Compare(sampleSummary(), EmptyReference(), DefaultTolerance())
		require.Empty(t, report.Checks)
		require.NoError(t, report.Err())
	})

	t.Run("mismatch", func(t *testing.T) {
		ref := EmptyReference()
		ref.DensificationStrain = 0.5
		ref.CompressionModulus = 45.2

		report := Compare(sampleSummary(), ref, DefaultTolerance())
		require.False(t, report.Passed())

		failed := report.Failed()
		require.Len(t, failed, 1)
		require.Equal(t, DensificationStrain, failed[0].Name)
		require.InDelta(t, 0.04, failed[0].Deviation, 1e-12)

		err := report.Err()
		require.ErrorIs(t, err, ErrMismatch)
		require.Contains(t, err.Error(), DensificationStrain)
		require.NotContains(t, err.Error(), CompressionModulus)
	})

	t.Run("relative tolerance", func(t *testing.T) {
		ref := EmptyReference()
		ref.DensificationStress = 20

		loose := Compare(sampleSummary(), ref, Tolerance{Relative: 0.05})
		require.True(t, loose.Passed())

		tight := Compare(sampleSummary(), ref, Tolerance{Relative: 0.01})
		require.False(t, tight.Passed())
	})

	t.Run("absolute tolerance", func(t *testing.T) {
		ref := EmptyReference()
		ref.CompressionRatio = 0.69

		require.True(t, Compare(sampleSummary(), ref, Tolerance{Absolute: 0.02}).Passed())
		require.False(t, Compare(sampleSummary(), ref, Tolerance{Absolute: 0.001}).Passed())
	})

	t.Run("non-finite computed value fails", func(t *testing.T) {
		sum := sampleSummary()
		sum.CompressionModulus = math.NaN()
		ref := EmptyReference()
		ref.CompressionModulus = 45.2

		require.ErrorIs(t, Compare(sum, ref, Tolerance{Relative: 1}).Err(), ErrMismatch)
	})
}

func TestExpectedCompressionRatio(t *testing.T) {
	require.InDelta(t, 0.85*0.6, ExpectedCompressionRatio(0.4, 0.85), 1e-12)
}

func TestReportString(t *testing.T) {
	ref := EmptyReference()
	ref.CompressionModulus = 40

	out := Compare(sampleSummary(), ref, DefaultTolerance()).String()
	require.Contains(t, out, CompressionModulus)
	require.Contains(t, out, "FAIL")
}
