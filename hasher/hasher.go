// Package hasher provides the domain-separated 256-bit hash primitive used
// throughout the accumulator: node hashing, padding-node hashing, and (via
// the kdf package) key derivation all build on this type.
package hasher

import "lukechampine.com/blake3"

// Delimiter is appended after every call to Update, so that concatenated
// fields can never collide across a boundary (update(A); update(B) hashes
// differently from update(A||B) whenever A or B is non-empty).
const Delimiter = 0x3B // ';'

// Digest is a 256-bit hash output.
type Digest [32]byte

// Hasher wraps a BLAKE3 hash state with delimited updates. The zero value
// is not usable; construct with New or NewKeyed.
type Hasher struct {
	inner *blake3.Hasher
}

// New returns an unkeyed Hasher.
func New() *Hasher {
	return &Hasher{inner: blake3.New(32, nil)}
}

// NewKeyed returns a Hasher keyed with a 32-byte key, used by the kdf
// package when a salt is supplied.
func NewKeyed(key [32]byte) *Hasher {
	return &Hasher{inner: blake3.New(32, key[:])}
}

// Update appends data to the running hash, followed by Delimiter. Returns
// the receiver so calls can be chained: h.Update(a).Update(b).Sum().
func (h *Hasher) Update(data []byte) *Hasher {
	h.inner.Write(data)
	h.inner.Write([]byte{Delimiter})
	return h
}

// Sum finalizes the hash and returns the 32-byte digest. The Hasher may
// continue to be updated afterwards; each Sum call reflects everything
// written so far.
func (h *Hasher) Sum() Digest {
	var out Digest
	h.inner.Sum(out[:0])
	return out
}
