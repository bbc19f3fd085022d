package nodecontent

import (
	"math/big"

	"github.com/dapol-go/dapol/curve"
	"github.com/dapol-go/dapol/hasher"
)

// Full is the content type used during tree construction and proof
// generation: it keeps the plaintext liability and blinding factor
// alongside the commitment and hash, so both can be recovered for
// auditing after the tree is built. Grounded on
// original_source/src/node_content/full_node.rs.
type Full struct {
	Liability      uint64
	BlindingFactor *big.Int
	Commitment     *curve.Point
	Hash           hasher.Digest
}

// NewLeaf builds the content for a leaf node: commitment to the given
// liability under the given blinding factor, hash over the entity's
// identity and per-entity salt.
func NewLeaf(liability uint64, blindingFactor [32]byte, entityID []byte, entitySalt [32]byte) Full {
	blinding := reduceBlinding(blindingFactor)
	commitment := curve.Commit(new(big.Int).SetUint64(liability), blinding)
	return Full{
		Liability:      liability,
		BlindingFactor: blinding,
		Commitment:     commitment,
		Hash:           leafHash(entityID, entitySalt),
	}
}

// NewPad builds the content for a padding node: commitment to liability
// 0 under the given blinding factor, hash over the node's coordinate and
// a pad-specific salt.
func NewPad(blindingFactor [32]byte, x uint64, y uint8, salt [32]byte) Full {
	blinding := reduceBlinding(blindingFactor)
	commitment := curve.Commit(new(big.Int), blinding)
	return Full{
		Liability:      0,
		BlindingFactor: blinding,
		Commitment:     commitment,
		Hash:           padHash(x, y, salt),
	}
}

// Compress discards the liability and blinding factor, keeping only the
// commitment and hash for storage and proof transmission.
func (f Full) Compress() Hidden {
	return Hidden{Commitment: f.Commitment, Hash: f.Hash}
}

// Merge returns the parent content: liability and blinding factor sum,
// commitment sums homomorphically, hash folds both children's compressed
// commitments and hashes.
func (f Full) Merge(other Content) Content {
	right := other.(Full)
	parentLiability := f.Liability + right.Liability
	parentBlinding := curve.ScalarAdd(f.BlindingFactor, right.BlindingFactor)
	parentCommitment := curve.Add(f.Commitment, right.Commitment)
	parentHash := hashChildren(f.Commitment, right.Commitment, f.Hash, right.Hash)
	return Full{
		Liability:      parentLiability,
		BlindingFactor: parentBlinding,
		Commitment:     parentCommitment,
		Hash:           parentHash,
	}
}
