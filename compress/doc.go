// Package compress provides the payload codecs of densfit snapshot files.
//
// A snapshot payload is a msgpack document; before it is written to disk it
// passes through one of the codecs below, selected by format.CompressionType
// and recorded in the container header so that Decode can reverse it:
//
//   - None: payload stored as-is
//   - Zstd: best ratio, suited to archived golden snapshots
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// Usage:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// Zstd uses the pure-Go klauspost/compress implementation by default. Building
// with the gozstd tag (and cgo enabled) switches to the valyala/gozstd
// bindings; both produce standard zstd frames.
//
// All codecs are stateless values and safe for concurrent use.
package compress
