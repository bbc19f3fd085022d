package nodecontent

import (
	"github.com/dapol-go/dapol/curve"
	"github.com/dapol-go/dapol/hasher"
)

// Hidden is the content type used for proof transmission: it keeps only the commitment and hash, never the plaintext liability or
// blinding factor. Grounded on
// original_source/src/node_content/hidden_node.rs.
type Hidden struct {
	Commitment *curve.Point
	Hash       hasher.Digest
}

// NewHiddenLeaf builds the hidden content for a leaf node directly, without
// going through Full first.
func NewHiddenLeaf(commitment *curve.Point, entityID []byte, entitySalt [32]byte) Hidden {
	return Hidden{Commitment: commitment, Hash: leafHash(entityID, entitySalt)}
}

// NewHiddenPad builds the hidden content for a padding node directly.
func NewHiddenPad(commitment *curve.Point, x uint64, y uint8, salt [32]byte) Hidden {
	return Hidden{Commitment: commitment, Hash: padHash(x, y, salt)}
}

// Merge returns the parent content: commitment sums homomorphically, hash
// folds both children's compressed commitments and hashes.
func (h Hidden) Merge(other Content) Content {
	right := other.(Hidden)
	parentCommitment := curve.Add(h.Commitment, right.Commitment)
	parentHash := hashChildren(h.Commitment, right.Commitment, h.Hash, right.Hash)
	return Hidden{Commitment: parentCommitment, Hash: parentHash}
}
