package series

import (
	"fmt"
	"math"

	"github.com/arloliu/densfit/internal/hash"
)

// MinSamples is the smallest series that leaves an interior breakpoint
// candidate with at least two samples on each side.
const MinSamples = 4

// Series is an immutable, ordered collection of (strain, stress) samples.
type Series struct {
	strain      []float64
	stress      []float64
	fingerprint uint64
}

// New validates and copies the given columns into a Series.
//
// Parameters:
//   - strain: Strictly increasing strain values
//   - stress: Stress values, one per strain
//
// Returns:
//   - *Series: The validated series
//   - error: ErrInput (wrapped with detail) when an invariant is violated
func New(strain, stress []float64) (*Series, error) {
	if len(strain) != len(stress) {
		return nil, fmt.Errorf("%w: %d strain values vs %d stress values", ErrInput, len(strain), len(stress))
	}
	if len(strain) < MinSamples {
		return nil, fmt.Errorf("%w: %d samples, need at least %d", ErrInput, len(strain), MinSamples)
	}

	for i := range strain {
		if !isFinite(strain[i]) || !isFinite(stress[i]) {
			return nil, fmt.Errorf("%w: non-finite sample at index %d (%v, %v)", ErrInput, i, strain[i], stress[i])
		}
		if i > 0 && strain[i] <= strain[i-1] {
			return nil, fmt.Errorf("%w: strain not strictly increasing at index %d (%v after %v)",
				ErrInput, i, strain[i], strain[i-1])
		}
	}

	s := &Series{
		strain: append([]float64(nil), strain...),
		stress: append([]float64(nil), stress...),
	}
	s.fingerprint = hash.Series(s.strain, s.stress)

	return s, nil
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.strain)
}

// Strain returns the i-th strain value.
func (s *Series) Strain(i int) float64 {
	return s.strain[i]
}

// Stress returns the i-th stress value.
func (s *Series) Stress(i int) float64 {
	return s.stress[i]
}

// Strains returns a copy of the strain column.
func (s *Series) Strains() []float64 {
	return append([]float64(nil), s.strain...)
}

// Stresses returns a copy of the stress column.
func (s *Series) Stresses() []float64 {
	return append([]float64(nil), s.stress...)
}

// First returns the smallest strain in the series.
func (s *Series) First() float64 {
	return s.strain[0]
}

// Last returns the largest strain in the series.
func (s *Series) Last() float64 {
	return s.strain[len(s.strain)-1]
}

// SearchBounds returns the open interval of admissible breakpoints,
// (strain[1], strain[n-2]). Excluding the outermost samples keeps at least
// two samples in each regime wherever the breakpoint lands.
func (s *Series) SearchBounds() (lo, hi float64) {
	return s.strain[1], s.strain[len(s.strain)-2]
}

// Fingerprint returns the xxHash64 digest of both columns. Bit-identical
// series have identical fingerprints.
func (s *Series) Fingerprint() uint64 {
	return s.fingerprint
}

// Each calls fn for every sample in strain order.
func (s *Series) Each(fn func(strain, stress float64)) {
	for i := range s.strain {
		fn(s.strain[i], s.stress[i])
	}
}

// String returns a short summary of the series.
func (s *Series) String() string {
	return fmt.Sprintf("Series{Len: %d, Strain: [%g, %g], Fingerprint: %016x}",
		s.Len(), s.First(), s.Last(), s.fingerprint)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
