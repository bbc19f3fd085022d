// Package accumulator orchestrates the full proof-of-liabilities pipeline:
// assigning entities to tree positions, building the sparse Merkle tree
// over their committed liabilities, and generating/verifying inclusion
// proofs. Grounded on
// original_source/src/accumulators/ndm_smt.rs's NdmSmt (build pipeline,
// entity mapping, proof pipeline).
package accumulator

import (
	"sync"

	"github.com/dapol-go/dapol/bintree"
	"github.com/dapol-go/dapol/hasher"
	"github.com/dapol-go/dapol/inclusionproof"
	"github.com/dapol-go/dapol/nodecontent"
	"github.com/dapol-go/dapol/rangeproof"
	"github.com/dapol-go/dapol/xcoord"
)

// Accumulator is an immutable, built Non-Deterministic-Mapping Sparse
// Merkle Tree: a tree of Pedersen-committed liabilities plus the entity to
// bottom-layer-position map needed to generate inclusion proofs.
type Accumulator struct {
	secrets        Secrets
	store          *bintree.Store
	root           bintree.Node
	entityMapping  map[string]uint64
	height         uint8
	maxThreadCount int
	pad            bintree.PadFunc
}

// Build runs the full construction pipeline (spec.md §4.10):
//  1. draw one unique x-coord per entity (xcoord.Generator);
//  2. derive per-entity secrets and leaf content in parallel;
//  3. reject duplicate entity ids;
//  4. build the tree;
//  5. return the Accumulator holding secrets, entity map, and tree.
func Build(secrets Secrets, entities []Entity, cfg Config) (*Accumulator, error) {
	cfg = cfg.resolve()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := validateEntities(entities); err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, ErrEmptyEntities
	}

	configLog.Info("building accumulator", "height", cfg.Height, "entities", len(entities), "max_thread_count", cfg.MaxThreadCount)

	gen := xcoord.New(bintree.MaxBottomLayerNodes(cfg.Height))
	xs := make([]uint64, len(entities))
	for i := range entities {
		x, err := gen.NewUnique()
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}

	leaves := deriveLeavesParallel(secrets, entities, xs, int(cfg.MaxThreadCount))

	mapping := make(map[string]uint64, len(entities))
	for i, e := range entities {
		if _, exists := mapping[e.ID]; exists {
			return nil, &ErrDuplicateEntityIDs{ID: e.ID}
		}
		mapping[e.ID] = xs[i]
	}

	pad := newPadFunc(secrets)
	store, root, err := bintree.BuildParallel(cfg.Height, cfg.StoreDepth, leaves, pad, int(cfg.MaxThreadCount))
	if err != nil {
		return nil, err
	}

	return &Accumulator{
		secrets:        secrets,
		store:          store,
		root:           root,
		entityMapping:  mapping,
		height:         cfg.Height,
		maxThreadCount: int(cfg.MaxThreadCount),
		pad:            pad,
	}, nil
}

// deriveLeavesParallel derives each entity's leaf content concurrently,
// bounded by maxThreadCount live workers at once (spec.md §4.10 step 3;
// §5's bounded-fan-out model). Order is preserved: leaves[i] corresponds
// to entities[i] at xs[i].
func deriveLeavesParallel(secrets Secrets, entities []Entity, xs []uint64, maxThreadCount int) []bintree.Node {
	leaves := make([]bintree.Node, len(entities))
	if maxThreadCount < 1 {
		maxThreadCount = DefaultMaxThreadCount
	}

	sem := make(chan struct{}, maxThreadCount)
	var wg sync.WaitGroup
	for i := range entities {
		i := i
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			leaves[i] = entityLeaf(secrets, entities[i], xs[i])
		}()
	}
	wg.Wait()
	return leaves
}

// RootHash returns the 32-byte hash digest of the tree's root node.
func (a *Accumulator) RootHash() hasher.Digest {
	return a.root.Content.(nodecontent.Full).Hash
}

// EntityMapping returns a copy of the entity id -> x-coord map.
func (a *Accumulator) EntityMapping() map[string]uint64 {
	out := make(map[string]uint64, len(a.entityMapping))
	for k, v := range a.entityMapping {
		out[k] = v
	}
	return out
}

// Height returns the tree height.
func (a *Accumulator) Height() uint8 { return a.height }

// GenerateInclusionProof generates an inclusion proof for entityID using
// the default aggregation factor (fully aggregated) and bit length (64).
func (a *Accumulator) GenerateInclusionProof(entityID string) (*inclusionproof.InclusionProof, error) {
	return a.GenerateInclusionProofWith(entityID, rangeproof.DefaultAggregationFactor(), rangeproof.DefaultBitLength)
}

// GenerateInclusionProofWith generates an inclusion proof for entityID
// with an explicit aggregation factor and range-proof bit length. Grounded
// on original_source/src/accumulators/ndm_smt.rs's
// generate_inclusion_proof_with (proof pipeline: id -> x-coord -> leaf ->
// path siblings -> inclusion proof).
func (a *Accumulator) GenerateInclusionProofWith(entityID string, factor rangeproof.AggregationFactor, bitLen rangeproof.BitLength) (*inclusionproof.InclusionProof, error) {
	x, ok := a.entityMapping[entityID]
	if !ok {
		return nil, &ErrEntityIDNotFound{ID: entityID}
	}

	leaf, ok := a.store.Leaf(x)
	if !ok {
		panic("accumulator: entity mapping points to a missing leaf")
	}

	siblings := bintree.BuildPathSiblings(a.store, leaf, a.pad, a.maxThreadCount)
	return inclusionproof.Generate(leaf, siblings, a.height, factor, bitLen)
}
