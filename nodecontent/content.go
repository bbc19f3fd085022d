// Package nodecontent implements the two node-content representations
// carried by the sparse binary tree: Full, which keeps the plaintext
// liability and blinding factor around for proving, and Hidden, which
// keeps only the commitment and hash and is what gets shipped in proofs.
// The tree store holds Full content.
package nodecontent

import (
	"math/big"

	"github.com/dapol-go/dapol/curve"
	"github.com/dapol-go/dapol/hasher"
)

// Content is implemented by both Full and Hidden. The merge law is the
// same for both forms: sum the commitments, hash the concatenation of
// compressed commitments and child hashes.
type Content interface {
	Merge(other Content) Content
}

// leafTag and padTag are the domain-separating prefixes for leaf and
// padding node hashes.
var (
	leafTag = []byte("leaf")
	padTag  = []byte("pad")
)

// hashChildren computes H(left.commitment | right.commitment | left.hash | right.hash).
func hashChildren(leftCommitment, rightCommitment *curve.Point, leftHash, rightHash hasher.Digest) hasher.Digest {
	leftC := curve.Compress(leftCommitment)
	rightC := curve.Compress(rightCommitment)
	h := hasher.New()
	h.Update(leftC[:])
	h.Update(rightC[:])
	h.Update(leftHash[:])
	h.Update(rightHash[:])
	return h.Sum()
}

// encodeCoordinate serializes a (x,y) coordinate as 8 bytes little-endian
// x followed by 1 byte y, matching the encode(coord) used throughout the
// hashing formulas.
func encodeCoordinate(x uint64, y uint8) []byte {
	out := make([]byte, 9)
	for i := 0; i < 8; i++ {
		out[i] = byte(x >> (8 * i))
	}
	out[8] = y
	return out
}

func leafHash(entityID []byte, entitySalt [32]byte) hasher.Digest {
	h := hasher.New()
	h.Update(leafTag)
	h.Update(entityID)
	h.Update(entitySalt[:])
	return h.Sum()
}

func padHash(x uint64, y uint8, salt [32]byte) hasher.Digest {
	h := hasher.New()
	h.Update(padTag)
	h.Update(encodeCoordinate(x, y))
	h.Update(salt[:])
	return h.Sum()
}

// reduceBlinding maps a raw 32-byte blinding secret onto a scalar field
// element, matching the teacher's "from_bytes_mod_order" convention.
func reduceBlinding(raw [32]byte) *big.Int {
	b := new(big.Int).SetBytes(reverse(raw[:]))
	return curve.ReduceScalar(b)
}

// reverse returns a reversed copy of b, used to convert the Secret type's
// little-endian byte layout into the big-endian form math/big.Int.SetBytes
// expects.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
