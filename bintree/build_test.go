package bintree

import (
	"sync/atomic"
	"testing"

	"github.com/dapol-go/dapol/curve"
	"github.com/dapol-go/dapol/nodecontent"
)

func testPad(seed byte) PadFunc {
	var blinding [32]byte
	blinding[0] = seed
	var salt [32]byte
	salt[0] = seed + 1
	return func(c Coordinate) nodecontent.Content {
		return nodecontent.NewPad(blinding, c.X, c.Y, salt)
	}
}

func testLeaf(liability uint64, entityID string) Node {
	var blinding [32]byte
	blinding[0] = byte(liability)
	var salt [32]byte
	salt[0] = byte(liability + 1)
	content := nodecontent.NewLeaf(liability, blinding, []byte(entityID), salt)
	return Node{Content: content}
}

func rootCommitment(t *testing.T, root Node) *curve.Point {
	t.Helper()
	full, ok := root.Content.(nodecontent.Full)
	if !ok {
		t.Fatalf("root content is not nodecontent.Full: %T", root.Content)
	}
	return full.Commitment
}

func TestSequentialBuildSingleLeaf(t *testing.T) {
	leaf := testLeaf(5, "alice")
	leaf.Coord = Coordinate{X: 2, Y: 0}
	store, root, err := BuildSequential(4, 4, []Node{leaf}, testPad(7))
	if err != nil {
		t.Fatalf("BuildSequential: %v", err)
	}
	if root.Coord != (Coordinate{X: 0, Y: 3}) {
		t.Fatalf("root coord = %v, want (0,3)", root.Coord)
	}
	if _, ok := store.Leaf(2); !ok {
		t.Fatal("leaf not retained in store")
	}
	full := root.Content.(nodecontent.Full)
	if full.Liability != 5 {
		t.Fatalf("root liability = %d, want 5", full.Liability)
	}
}

func TestSequentialRejectsEmptyLeaves(t *testing.T) {
	if _, _, err := BuildSequential(4, 4, nil, testPad(1)); err != ErrEmptyLeaves {
		t.Fatalf("expected ErrEmptyLeaves, got %v", err)
	}
}

func TestSequentialRejectsDuplicateLeaves(t *testing.T) {
	a := testLeaf(1, "a")
	a.Coord = Coordinate{X: 2, Y: 0}
	b := testLeaf(2, "b")
	b.Coord = Coordinate{X: 2, Y: 0}
	_, _, err := BuildSequential(4, 4, []Node{a, b}, testPad(1))
	if err == nil {
		t.Fatal("expected duplicate-leaves error")
	}
}

func TestSequentialRejectsInvalidXCoord(t *testing.T) {
	a := testLeaf(1, "a")
	a.Coord = Coordinate{X: 100, Y: 0}
	_, _, err := BuildSequential(4, 4, []Node{a}, testPad(1))
	if err == nil {
		t.Fatal("expected invalid-x-coord error")
	}
}

func TestSequentialRejectsTooManyLeaves(t *testing.T) {
	leaves := make([]Node, 9)
	for i := range leaves {
		leaves[i] = testLeaf(uint64(i), "e")
		leaves[i].Coord = Coordinate{X: uint64(i), Y: 0}
	}
	_, _, err := BuildSequential(4, 4, leaves, testPad(1)) // height 4 -> max 8 leaves
	if err == nil {
		t.Fatal("expected too-many-leaves error")
	}
}

func buildTenEntities() []Node {
	leaves := make([]Node, 10)
	xs := []uint64{1, 3, 10, 20, 45, 60, 90, 100, 110, 127}
	for i, x := range xs {
		leaves[i] = testLeaf(uint64(i+1)*7, "entity")
		leaves[i].Coord = Coordinate{X: x, Y: 0}
	}
	return leaves
}

func TestSequentialAndParallelProduceEqualRoots(t *testing.T) {
	leaves := buildTenEntities()
	_, seqRoot, err := BuildSequential(8, 8, leaves, testPad(3))
	if err != nil {
		t.Fatalf("BuildSequential: %v", err)
	}
	_, parRoot1, err := BuildParallel(8, 8, leaves, testPad(3), 1)
	if err != nil {
		t.Fatalf("BuildParallel(maxThread=1): %v", err)
	}
	_, parRoot16, err := BuildParallel(8, 8, leaves, testPad(3), 16)
	if err != nil {
		t.Fatalf("BuildParallel(maxThread=16): %v", err)
	}

	if seqRoot.Content.(nodecontent.Full).Hash != parRoot1.Content.(nodecontent.Full).Hash {
		t.Fatal("sequential and parallel(1) roots differ")
	}
	if parRoot1.Content.(nodecontent.Full).Hash != parRoot16.Content.(nodecontent.Full).Hash {
		t.Fatal("parallel(1) and parallel(16) roots differ")
	}
	if !curve.Equal(rootCommitment(t, seqRoot), rootCommitment(t, parRoot16)) {
		t.Fatal("sequential and parallel(16) root commitments differ")
	}
}

func TestSingleEntityRootStableAcrossThreadCounts(t *testing.T) {
	leaf := testLeaf(42, "solo")
	leaf.Coord = Coordinate{X: 5, Y: 0}
	_, root1, err := BuildParallel(8, 8, []Node{leaf}, testPad(9), 1)
	if err != nil {
		t.Fatalf("BuildParallel(1): %v", err)
	}
	_, root16, err := BuildParallel(8, 8, []Node{leaf}, testPad(9), 16)
	if err != nil {
		t.Fatalf("BuildParallel(16): %v", err)
	}
	if root1.Content.(nodecontent.Full).Hash != root16.Content.(nodecontent.Full).Hash {
		t.Fatal("single-entity root differs between thread counts")
	}
}

func TestStoreDepthOmitsInteriorNodes(t *testing.T) {
	leaves := buildTenEntities()
	store, _, err := BuildSequential(8, 2, leaves, testPad(3))
	if err != nil {
		t.Fatalf("BuildSequential: %v", err)
	}
	// Layer 4 (y=4) is below the top-2 band (layers 6,7 for height 8) and
	// above the bottom layer, so it should not be retained.
	if _, ok := store.Get(Coordinate{X: 0, Y: 4}); ok {
		t.Fatal("interior node outside the store-depth band was retained")
	}
	// All ten real leaves must still be present regardless of store depth.
	for _, l := range leaves {
		if _, ok := store.Leaf(l.Coord.X); !ok {
			t.Fatalf("leaf at x=%d missing from store", l.Coord.X)
		}
	}
}

// TestBuildNodeThreadCountReturnsToBaseline is a white-box check that every
// goroutine spawned by buildNode decrements the shared thread counter on
// exit, symmetric with its increment before spawn (spec.md §5). Without the
// matching decrement the counter only climbs across a build's recursion,
// and once it reaches maxThreadCount every remaining split silently falls
// back to sequential recursion for the rest of the build.
func TestBuildNodeThreadCountReturnsToBaseline(t *testing.T) {
	height := uint8(8)
	leaves := buildTenEntities()
	sorted := make([]Node, len(leaves))
	copy(sorted, leaves)
	sortNodesByX(sorted)

	store := NewStore(height, height)
	threadCount := int32(1) // accounts for the calling goroutine, as BuildParallel does.
	params := buildParams{
		xMin:           0,
		xMax:           MaxBottomLayerNodes(height) - 1,
		y:              height - 1,
		height:         height,
		storeDepth:     height,
		threadCount:    &threadCount,
		maxThreadCount: 16,
	}
	params.xMid = (params.xMin + params.xMax) / 2

	root := buildNode(params, sorted, testPad(3), store)
	store.Insert(root)

	if got := atomic.LoadInt32(&threadCount); got != 1 {
		t.Fatalf("threadCount after build = %d, want 1 (every spawn must be matched by a decrement on exit)", got)
	}
}
