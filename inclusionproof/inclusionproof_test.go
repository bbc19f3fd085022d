package inclusionproof

import (
	"testing"

	"github.com/dapol-go/dapol/bintree"
	"github.com/dapol-go/dapol/nodecontent"
	"github.com/dapol-go/dapol/rangeproof"
)

func testPad(seed byte) bintree.PadFunc {
	var blinding [32]byte
	blinding[0] = seed
	var salt [32]byte
	salt[0] = seed + 1
	return func(c bintree.Coordinate) nodecontent.Content {
		return nodecontent.NewPad(blinding, c.X, c.Y, salt)
	}
}

func testLeaf(x uint64, liability uint64, entityID string) bintree.Node {
	var blinding [32]byte
	blinding[0] = byte(liability)
	var salt [32]byte
	salt[0] = byte(liability + 1)
	content := nodecontent.NewLeaf(liability, blinding, []byte(entityID), salt)
	return bintree.Node{Coord: bintree.Coordinate{X: x, Y: 0}, Content: content}
}

func buildTestTree(t *testing.T) (*bintree.Store, bintree.Node) {
	t.Helper()
	leaves := []bintree.Node{
		testLeaf(1, 13, "a"),
		testLeaf(3, 23, "b"),
		testLeaf(4, 41, "c"),
		testLeaf(6, 7, "d"),
	}
	store, root, err := bintree.BuildSequential(4, 4, leaves, testPad(9))
	if err != nil {
		t.Fatalf("BuildSequential: %v", err)
	}
	return store, root
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	store, root := buildTestTree(t)
	rootHash := root.Content.(nodecontent.Full).Hash

	leaf, ok := store.Leaf(3)
	if !ok {
		t.Fatal("expected leaf at x=3")
	}
	siblings := bintree.BuildPathSiblings(store, leaf, testPad(9), 1)

	proof, err := Generate(leaf, siblings, store.Height(), rangeproof.DefaultAggregationFactor(), rangeproof.DefaultBitLength)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := proof.Verify(rootHash); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestGenerateVerifyPartialAggregation(t *testing.T) {
	store, root := buildTestTree(t)
	rootHash := root.Content.(nodecontent.Full).Hash

	leaf, ok := store.Leaf(1)
	if !ok {
		t.Fatal("expected leaf at x=1")
	}
	siblings := bintree.BuildPathSiblings(store, leaf, testPad(9), 1)

	proof, err := Generate(leaf, siblings, store.Height(), rangeproof.Divisor(2), rangeproof.DefaultBitLength)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if proof.AggregationIndex == 0 || int(proof.AggregationIndex) == int(store.Height()) {
		t.Fatalf("expected a partial aggregation index, got %d of %d", proof.AggregationIndex, store.Height())
	}
	if len(proof.Individuals) == 0 {
		t.Fatal("expected at least one individual range proof")
	}
	if err := proof.Verify(rootHash); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestGenerateVerifyZeroAggregation(t *testing.T) {
	store, root := buildTestTree(t)
	rootHash := root.Content.(nodecontent.Full).Hash

	leaf, ok := store.Leaf(4)
	if !ok {
		t.Fatal("expected leaf at x=4")
	}
	siblings := bintree.BuildPathSiblings(store, leaf, testPad(9), 1)

	proof, err := Generate(leaf, siblings, store.Height(), rangeproof.Divisor(0), rangeproof.DefaultBitLength)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if proof.AggregationIndex != 0 {
		t.Fatalf("AggregationIndex = %d, want 0", proof.AggregationIndex)
	}
	if proof.Aggregated != nil {
		t.Fatal("expected no aggregated proof when aggregation index is 0")
	}
	if len(proof.Individuals) != int(store.Height()) {
		t.Fatalf("len(Individuals) = %d, want %d", len(proof.Individuals), store.Height())
	}
	if err := proof.Verify(rootHash); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyFailsOnWrongRoot(t *testing.T) {
	store, _ := buildTestTree(t)
	leaf, ok := store.Leaf(3)
	if !ok {
		t.Fatal("expected leaf at x=3")
	}
	siblings := bintree.BuildPathSiblings(store, leaf, testPad(9), 1)

	proof, err := Generate(leaf, siblings, store.Height(), rangeproof.DefaultAggregationFactor(), rangeproof.DefaultBitLength)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var wrongRoot [32]byte
	wrongRoot[0] = 0xff
	if err := proof.Verify(wrongRoot); err != ErrRootMismatch {
		t.Fatalf("expected ErrRootMismatch, got %v", err)
	}
}

func TestVerifyFailsOnTamperedSiblingCount(t *testing.T) {
	store, root := buildTestTree(t)
	rootHash := root.Content.(nodecontent.Full).Hash

	leaf, ok := store.Leaf(3)
	if !ok {
		t.Fatal("expected leaf at x=3")
	}
	siblings := bintree.BuildPathSiblings(store, leaf, testPad(9), 1)

	proof, err := Generate(leaf, siblings, store.Height(), rangeproof.DefaultAggregationFactor(), rangeproof.DefaultBitLength)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	proof.Siblings = proof.Siblings[:len(proof.Siblings)-1]
	if err := proof.Verify(rootHash); err == nil {
		t.Fatal("expected an error after dropping a sibling")
	}
}
