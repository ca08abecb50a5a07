package series

import "errors"

// ErrInput is returned when a sample series violates its invariants:
// fewer than MinSamples points, mismatched column lengths, non-finite values,
// or strains that are not strictly increasing.
var ErrInput = errors.New("series: invalid sample series")
