package accumulator

import (
	"encoding/binary"

	"github.com/dapol-go/dapol/bintree"
	"github.com/dapol-go/dapol/kdf"
	"github.com/dapol-go/dapol/nodecontent"
)

// newPadFunc builds the coordinate-determined padding-content closure
// spec.md §4.2 describes: pad_secret = derive(None, master_secret,
// encode(coord)); pad_blinding/pad_salt are then derived from pad_secret
// under salt_b/salt_s respectively. Grounded on
// original_source/src/accumulators/ndm_smt.rs's
// new_padding_node_content_closure.
func newPadFunc(secrets Secrets) bintree.PadFunc {
	master := secrets.Master.Bytes()
	saltB := secrets.SaltB
	saltS := secrets.SaltS
	return func(c bintree.Coordinate) nodecontent.Content {
		padSecret := kdf.Derive(nil, master[:], c.Encode())
		padSecretBytes := padSecret.Bytes()
		blinding := kdf.Derive(&saltB, padSecretBytes[:], nil)
		salt := kdf.Derive(&saltS, padSecretBytes[:], nil)
		return nodecontent.NewPad(blinding.Bytes(), c.X, c.Y, salt.Bytes())
	}
}

// entityLeaf derives an entity's secret, blinding factor, and salt from
// the secrets triple and its assigned x-coordinate, then builds the full
// leaf content. Grounded on the same file's per-entity derivation block
// (the "w" value from the DAPOL+ paper).
func entityLeaf(secrets Secrets, entity Entity, x uint64) bintree.Node {
	master := secrets.Master.Bytes()
	saltB := secrets.SaltB
	saltS := secrets.SaltS

	var xBytes [8]byte
	binary.LittleEndian.PutUint64(xBytes[:], x)
	entitySecret := kdf.Derive(nil, master[:], xBytes[:])
	entitySecretBytes := entitySecret.Bytes()
	blinding := kdf.Derive(&saltB, entitySecretBytes[:], nil)
	salt := kdf.Derive(&saltS, entitySecretBytes[:], nil)

	content := nodecontent.NewLeaf(entity.Liability, blinding.Bytes(), []byte(entity.ID), salt.Bytes())
	return bintree.Node{Coord: bintree.Coordinate{X: x, Y: 0}, Content: content}
}
