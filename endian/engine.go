// Package endian provides the byte-order engine used by densfit binary
// containers.
//
// EndianEngine unifies binary.ByteOrder and binary.AppendByteOrder so that a
// container writer can append header fields directly to its output buffer and
// a reader can decode them with the same value:
//
//	engine := endian.GetLittleEndianEngine()
//	header = engine.AppendUint32(header, uint32(len(payload)))
//	...
//	size := engine.Uint32(header[8:12])
//
// Snapshot files are always little-endian regardless of the host.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
