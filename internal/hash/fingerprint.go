package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Float64s computes the xxHash64 of the IEEE 754 bit patterns of values.
//
// Each value is hashed as 8 little-endian bytes, so two slices have the same
// fingerprint only when they are bit-identical (0.0 and -0.0 differ, NaN
// payloads are preserved).
func Float64s(values []float64) uint64 {
	d := xxhash.New()
	writeFloat64s(d, values)

	return d.Sum64()
}

// Series computes a single fingerprint over paired x/y columns.
//
// The column lengths are mixed into the digest so that moving a value from
// one column to the other always changes the result.
//
// Parameters:
//   - xs: First column (e.g. strain)
//   - ys: Second column (e.g. stress)
//
// Returns:
//   - uint64: xxHash64 digest of both columns
func Series(xs, ys []float64) uint64 {
	d := xxhash.New()

	var lenBuf [16]byte
	binary.LittleEndian.PutUint64(lenBuf[0:8], uint64(len(xs)))
	binary.LittleEndian.PutUint64(lenBuf[8:16], uint64(len(ys)))
	_, _ = d.Write(lenBuf[:])

	writeFloat64s(d, xs)
	writeFloat64s(d, ys)

	return d.Sum64()
}

// Bytes computes the xxHash64 of raw bytes.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

func writeFloat64s(d *xxhash.Digest, values []float64) {
	var buf [64]byte
	n := 0
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[n:n+8], math.Float64bits(v))
		n += 8
		if n == len(buf) {
			_, _ = d.Write(buf[:])
			n = 0
		}
	}
	if n > 0 {
		_, _ = d.Write(buf[:n])
	}
}
