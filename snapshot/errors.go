package snapshot

import "errors"

var (
	// ErrCorrupted is returned when a snapshot container is malformed.
	ErrCorrupted = errors.New("snapshot: corrupted container")

	// ErrChecksum is returned when the payload checksum or the series
	// fingerprint does not match the stored value.
	ErrChecksum = errors.New("snapshot: checksum mismatch")

	// ErrVersion is returned for containers written by an unknown version.
	ErrVersion = errors.New("snapshot: unsupported container version")
)
