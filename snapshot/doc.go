// Package snapshot stores fitted stress-strain curves as golden records.
//
// A Snapshot captures a sample series, its fingerprint, the summary of its
// fit and, optionally, the reference it was validated against. Snapshots are
// written in a small binary container:
//
//	offset size field
//	0      4    magic "DFSN"
//	4      1    container version (1)
//	5      1    payload compression (format.CompressionType)
//	6      2    reserved, zero
//	8      4    compressed payload length
//	12     4    raw payload length
//	16     8    xxHash64 of the compressed payload
//	24     ...  compressed msgpack payload
//
// All integers are little-endian. Decode verifies the header, the payload
// checksum and the series fingerprint, and reports damage as ErrCorrupted or
// ErrChecksum.
package snapshot
