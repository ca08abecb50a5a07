package series

import (
	"fmt"
	"math"
)

// FromProbe converts platen probe histories into an engineering stress-strain
// series.
//
// Stress is the reaction force spread over the square platen face, reported
// in kPa; strain is the platen displacement relative to the pad height:
//
//	stress = force / (platenWidthMM / 1000)^2 / 1000
//	strain = displacement / padHeight
//
// Parameters:
//   - force: Reaction force history in N
//   - displacement: Compressive platen displacement history, same length unit as padHeight
//   - padHeight: Undeformed pad height
//   - platenWidthMM: Edge length of the square platen in millimetres
//
// Returns:
//   - *Series: The converted, validated series
//   - error: ErrInput when the geometry is invalid or the converted series violates an invariant
func FromProbe(force, displacement []float64, padHeight, platenWidthMM float64) (*Series, error) {
	if !(padHeight > 0) || math.IsInf(padHeight, 0) {
		return nil, fmt.Errorf("%w: pad height must be positive and finite, got %v", ErrInput, padHeight)
	}
	if !(platenWidthMM > 0) || math.IsInf(platenWidthMM, 0) {
		return nil, fmt.Errorf("%w: platen width must be positive and finite, got %v", ErrInput, platenWidthMM)
	}
	if len(force) != len(displacement) {
		return nil, fmt.Errorf("%w: %d force values vs %d displacement values", ErrInput, len(force), len(displacement))
	}

	width := platenWidthMM / 1000
	area := width * width

	strain := make([]float64, len(force))
	stress := make([]float64, len(force))
	for i := range force {
		stress[i] = force[i] / area / 1000
		strain[i] = displacement[i] / padHeight
	}

	return New(strain, stress)
}
