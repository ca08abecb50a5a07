package pool

import "sync"

// float64SlicePool holds scratch slices used to partition sample series.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves a zero-length float64 slice with at least the
// requested capacity from the pool.
//
// The caller appends into the returned slice and must call the returned
// cleanup function once the slice is no longer referenced. Values appended
// into the slice must be copied out before cleanup if they are to outlive it.
//
// Parameters:
//   - capacity: Minimum capacity of the returned slice
//
// Returns:
//   - []float64: A slice with length 0 and capacity >= capacity
//   - func(): Cleanup function that returns the slice to the pool
//
// Example:
//
//	xs, cleanup := pool.GetFloat64Slice(len(strain))
//	defer cleanup()
//	for _, x := range strain {
//	    if x <= b {
//	        xs = append(xs, x)
//	    }
//	}
func GetFloat64Slice(capacity int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < capacity {
		slice = make([]float64, 0, capacity)
	}
	*ptr = slice

	return slice, func() {
		*ptr = (*ptr)[:0]
		float64SlicePool.Put(ptr)
	}
}

// GetFloat64Pair retrieves two pooled slices for paired x/y columns.
//
// Both slices have length 0 and at least the requested capacity. The single
// returned cleanup function releases both.
func GetFloat64Pair(capacity int) (xs, ys []float64, cleanup func()) {
	xs, cleanX := GetFloat64Slice(capacity)
	ys, cleanY := GetFloat64Slice(capacity)

	return xs, ys, func() {
		cleanX()
		cleanY()
	}
}
