// Package kdf implements the key-derivation function used to turn the
// accumulator's master secret into per-entity and per-padding-node
// secrets, blinding factors, and salts.
//
// Derive is a thin wrapper over hasher.Hasher, mirroring the reference
// implementation's KDF (which is itself a thin wrapper over a blake3
// hasher): a salt, if supplied, keys the hash; the input key material and
// an optional context/info value are then fed through as delimited
// updates.
package kdf

import (
	"github.com/dapol-go/dapol/hasher"
	"github.com/dapol-go/dapol/secret"
)

// Derive returns a 32-byte key from the given inputs.
//
//   - salt keys the underlying hash when non-nil (BLAKE3 keyed mode);
//     derivations with no salt use the unkeyed hash.
//   - ikm is the input key material (always required).
//   - info optionally binds the output to additional context (an x-coord,
//     an encoded coordinate) so distinct contexts never collide.
func Derive(salt *secret.Secret, ikm []byte, info []byte) secret.Secret {
	var h *hasher.Hasher
	if salt != nil {
		h = hasher.NewKeyed(salt.Bytes())
	} else {
		h = hasher.New()
	}
	h.Update(ikm)
	if len(info) > 0 {
		h.Update(info)
	}
	return secret.FromBytes(h.Sum())
}
