// Package inclusionproof binds a tree path to Bulletproofs range proofs,
// certifying that a leaf's liability (and every partial sum along its path
// to the root) is non-negative, without revealing any liability value.
//
// Grounded on original_source/src/inclusion_proof.rs's InclusionProof: the
// path (leaf plus siblings, bottom to top) carries only hidden content so
// that verifiers never see plaintext liabilities or blinding factors; the
// aggregation index splits the path into a single aggregated range proof
// over the bottom k nodes and one individual range proof per remaining
// upper node.
package inclusionproof

import (
	"fmt"
	"math/big"

	"github.com/dapol-go/dapol/bintree"
	"github.com/dapol-go/dapol/curve"
	"github.com/dapol-go/dapol/hasher"
	"github.com/dapol-go/dapol/nodecontent"
	"github.com/dapol-go/dapol/rangeproof"
)

// InclusionProof is a self-contained proof that a leaf belongs to a tree
// with a given root hash, plus a certificate that the leaf's liability and
// every ancestor partial sum on its path lie in [0, 2^BitLength).
type InclusionProof struct {
	Leaf             bintree.Node // hidden content
	Siblings         []bintree.Node // hidden content, bottom to top
	Height           uint8
	AggregationIndex uint8
	BitLength        rangeproof.BitLength
	Aggregated       *rangeproof.AggregatedProof
	Individuals      []*rangeproof.IndividualProof
}

// reconstructPath merges leaf with its siblings bottom to top, returning
// every node on the path including leaf (first) and root (last). Each
// sibling's own coordinate determines its orientation, so ordering does
// not need to be threaded through separately.
func reconstructPath(leaf bintree.Node, siblings []bintree.Node, height uint8) ([]bintree.Node, error) {
	if len(siblings) != int(height)-1 {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrSiblingCount, height-1, len(siblings))
	}

	path := make([]bintree.Node, 0, height)
	path = append(path, leaf)
	current := leaf
	for _, sib := range siblings {
		var left, right bintree.Node
		if current.Coord.IsLeft() {
			left, right = current, sib
		} else {
			left, right = sib, current
		}
		current = bintree.Merge(left, right, current.Coord.Y+1)
		path = append(path, current)
	}
	return path, nil
}

// Generate builds an inclusion proof from the full-content leaf and its
// full-content path siblings (bottom to top, as produced by
// bintree.BuildPathSiblings). factor determines how many bottom-to-top
// path nodes, starting at the leaf, are proved together in one aggregated
// Bulletproof; the remainder are proved individually.
func Generate(leaf bintree.Node, siblings bintree.PathSiblings, height uint8, factor rangeproof.AggregationFactor, bitLen rangeproof.BitLength) (*InclusionProof, error) {
	path, err := reconstructPath(leaf, []bintree.Node(siblings), height)
	if err != nil {
		return nil, err
	}

	k := int(factor.ApplyTo(height))
	bottom, upper := path[:k], path[k:]

	var aggregated *rangeproof.AggregatedProof
	if len(bottom) > 0 {
		values := make([]*big.Int, len(bottom))
		blindings := make([]*big.Int, len(bottom))
		for i, n := range bottom {
			full := n.Content.(nodecontent.Full)
			values[i] = new(big.Int).SetUint64(full.Liability)
			blindings[i] = full.BlindingFactor
		}
		aggregated, err = rangeproof.ProveAggregatedRanges(values, blindings, bitLen)
		if err != nil {
			return nil, fmt.Errorf("inclusionproof: aggregated range proof: %w", err)
		}
	}

	individuals := make([]*rangeproof.IndividualProof, len(upper))
	for i, n := range upper {
		full := n.Content.(nodecontent.Full)
		ip, err := rangeproof.ProveIndividual(new(big.Int).SetUint64(full.Liability), full.BlindingFactor, bitLen)
		if err != nil {
			return nil, fmt.Errorf("inclusionproof: individual range proof: %w", err)
		}
		individuals[i] = ip
	}

	hiddenSiblings := make([]bintree.Node, len(siblings))
	for i, s := range siblings {
		hiddenSiblings[i] = bintree.Node{Coord: s.Coord, Content: s.Content.(nodecontent.Full).Compress()}
	}

	return &InclusionProof{
		Leaf:             bintree.Node{Coord: leaf.Coord, Content: leaf.Content.(nodecontent.Full).Compress()},
		Siblings:         hiddenSiblings,
		Height:           height,
		AggregationIndex: uint8(k),
		BitLength:        bitLen,
		Aggregated:       aggregated,
		Individuals:      individuals,
	}, nil
}

// Verify checks the proof against the tree's root hash: the path
// reconstructed from the leaf and siblings must hash to root, and every
// range proof must verify against the corresponding reconstructed
// commitment.
func (p *InclusionProof) Verify(root hasher.Digest) error {
	path, err := reconstructPath(p.Leaf, p.Siblings, p.Height)
	if err != nil {
		return err
	}

	rootNode := path[len(path)-1].Content.(nodecontent.Hidden)
	if rootNode.Hash != root {
		return ErrRootMismatch
	}

	k := int(p.AggregationIndex)
	if k < 0 || k > len(path) {
		return fmt.Errorf("%w: aggregation index %d out of range [0,%d]", ErrRangeProof, k, len(path))
	}
	bottom, upper := path[:k], path[k:]

	if len(bottom) > 0 {
		commitments := make([]*curve.Point, len(bottom))
		for i, n := range bottom {
			commitments[i] = n.Content.(nodecontent.Hidden).Commitment
		}
		if p.Aggregated == nil || !p.Aggregated.Verify(commitments, p.BitLength) {
			return ErrRangeProof
		}
	}

	if len(upper) != len(p.Individuals) {
		return fmt.Errorf("%w: expected %d individual proofs, got %d", ErrRangeProof, len(upper), len(p.Individuals))
	}
	for i, n := range upper {
		commitment := n.Content.(nodecontent.Hidden).Commitment
		if p.Individuals[i] == nil || !p.Individuals[i].Verify(commitment, p.BitLength) {
			return ErrRangeProof
		}
	}

	return nil
}
