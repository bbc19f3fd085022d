package bintree

import (
	"testing"

	"github.com/dapol-go/dapol/nodecontent"
)

func TestPathSiblingsCountAndReconstruction(t *testing.T) {
	leaves := buildTenEntities()
	pad := testPad(3)
	store, root, err := BuildSequential(8, 2, leaves, pad)
	if err != nil {
		t.Fatalf("BuildSequential: %v", err)
	}

	leaf, ok := store.Leaf(20)
	if !ok {
		t.Fatal("expected leaf at x=20")
	}

	siblings := BuildPathSiblings(store, leaf, pad, 1)
	if len(siblings) != 7 {
		t.Fatalf("len(siblings) = %d, want 7 (height-1)", len(siblings))
	}

	// Reconstruct the path bottom-up and confirm it reaches the stored root.
	current := leaf
	for _, sib := range siblings {
		var left, right Node
		if current.Coord.IsLeft() {
			left, right = current, sib
		} else {
			left, right = sib, current
		}
		current = merge(left, right, current.Coord.Y+1)
	}
	if current.Content.(nodecontent.Full).Hash != root.Content.(nodecontent.Full).Hash {
		t.Fatal("reconstructed root hash does not match the stored root")
	}
}

func TestPathSiblingsRegenerationMatchesStoredValue(t *testing.T) {
	leaves := buildTenEntities()
	pad := testPad(3)
	fullStore, _, err := BuildSequential(8, 8, leaves, pad) // store_depth=height: everything retained
	if err != nil {
		t.Fatalf("BuildSequential(full store): %v", err)
	}
	sparseStore, _, err := BuildSequential(8, 1, leaves, pad) // store_depth=1: only root + leaves retained
	if err != nil {
		t.Fatalf("BuildSequential(sparse store): %v", err)
	}

	leaf, _ := fullStore.Leaf(20)
	fullSiblings := BuildPathSiblings(fullStore, leaf, pad, 1)

	sparseLeaf, _ := sparseStore.Leaf(20)
	sparseSiblings := BuildPathSiblings(sparseStore, sparseLeaf, pad, 1)

	if len(fullSiblings) != len(sparseSiblings) {
		t.Fatalf("sibling count mismatch: %d vs %d", len(fullSiblings), len(sparseSiblings))
	}
	for i := range fullSiblings {
		fh := fullSiblings[i].Content.(nodecontent.Full).Hash
		sh := sparseSiblings[i].Content.(nodecontent.Full).Hash
		if fh != sh {
			t.Fatalf("sibling %d hash mismatch between full and regenerated stores", i)
		}
	}
}
