// Package secret provides the opaque 256-bit secret value used for the
// accumulator's master secret, blinding salt, and node-salt salt, and for
// per-entity/per-pad derived secrets.
package secret

import (
	"encoding/binary"
	"errors"
)

// MaxLengthBytes is the maximum length of a string used to construct a
// Secret directly (as opposed to one produced by key derivation).
const MaxLengthBytes = 32

// ErrStringTooLong is returned by FromString when the input exceeds
// MaxLengthBytes.
var ErrStringTooLong = errors.New("secret: string exceeds 32 bytes")

// Secret is an opaque 256-bit value. The zero value is the all-zero
// secret, which is a valid (if insecure) value.
type Secret [32]byte

// FromBytes wraps a raw 32-byte value, typically the output of a key
// derivation (see package kdf).
func FromBytes(b [32]byte) Secret {
	return Secret(b)
}

// FromString builds a Secret from a short UTF-8 string, zero-padded on the
// right to 32 bytes. Returns ErrStringTooLong if s is longer than
// MaxLengthBytes.
func FromString(s string) (Secret, error) {
	var out Secret
	if len(s) > MaxLengthBytes {
		return out, ErrStringTooLong
	}
	copy(out[:], s)
	return out, nil
}

// FromUint64 builds a Secret from a little-endian, zero-padded u64.
func FromUint64(v uint64) Secret {
	var out Secret
	binary.LittleEndian.PutUint64(out[:8], v)
	return out
}

// Bytes returns the raw 32-byte value.
func (s Secret) Bytes() [32]byte {
	return [32]byte(s)
}
