package snapshot

import (
	"fmt"
	"math"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/arloliu/densfit/compress"
	"github.com/arloliu/densfit/endian"
	"github.com/arloliu/densfit/format"
	"github.com/arloliu/densfit/internal/hash"
	"github.com/arloliu/densfit/internal/pool"
)

const (
	// HeaderSize is the size of the container header in bytes.
	HeaderSize = 24
	// Version is the container version written by Encode.
	Version = 1
)

var magic = [4]byte{'D', 'F', 'S', 'N'}

var engine = endian.GetLittleEndianEngine()

// Encode serializes snap into a container with the given payload compression.
func Encode(snap *Snapshot, compression format.CompressionType) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot: nil snapshot")
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	if err := msgpack.NewEncoder(buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("snapshot: encode payload: %w", err)
	}
	raw := buf.Bytes()

	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot: compress payload with %s: %w", compression, err)
	}
	if uint64(len(raw)) > math.MaxUint32 || uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("snapshot: payload of %d bytes exceeds container limit", len(raw))
	}

	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, magic[:]...)
	out = append(out, Version, byte(compression))
	out = engine.AppendUint16(out, 0)
	out = engine.AppendUint32(out, uint32(len(payload)))
	out = engine.AppendUint32(out, uint32(len(raw)))
	out = engine.AppendUint64(out, hash.Bytes(payload))
	out = append(out, payload...)

	return out, nil
}

// Decode parses a container produced by Encode.
func Decode(data []byte) (*Snapshot, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupted, len(data))
	}
	if [4]byte(data[0:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupted, data[0:4])
	}
	if data[4] != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, data[4])
	}

	compression := format.CompressionType(data[5])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	payloadLen := engine.Uint32(data[8:12])
	rawLen := engine.Uint32(data[12:16])
	checksum := engine.Uint64(data[16:24])

	payload := data[HeaderSize:]
	if uint64(len(payload)) != uint64(payloadLen) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupted, len(payload), payloadLen)
	}
	if got := hash.Bytes(payload); got != checksum {
		return nil, fmt.Errorf("%w: payload hash %016x, header says %016x", ErrChecksum, got, checksum)
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s payload: %v", ErrCorrupted, compression, err)
	}
	if uint64(len(raw)) != uint64(rawLen) {
		return nil, fmt.Errorf("%w: payload decompressed to %d bytes, header says %d", ErrCorrupted, len(raw), rawLen)
	}

	var snap Snapshot
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrCorrupted, err)
	}
	if got := hash.Series(snap.Strain, snap.Stress); got != snap.Fingerprint {
		return nil, fmt.Errorf("%w: series fingerprint %016x, recorded %016x", ErrChecksum, got, snap.Fingerprint)
	}

	return &snap, nil
}

// WriteFile encodes snap and writes it to path.
func WriteFile(path string, snap *Snapshot, compression format.CompressionType) error {
	data, err := Encode(snap, compression)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}

	return nil
}

// ReadFile reads and decodes the snapshot stored at path.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}

	snap, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return snap, nil
}
