package bintree

import "sync"

// Store is a coordinate-addressed map of nodes retained after a build,
// banded by store depth: every bottom-layer non-pad leaf, plus every node
// on the top `StoreDepth` layers (root inclusive). Safe for concurrent
// inserts during a parallel build; treated as read-only afterwards.
//
// Grounded on original_source/src/binary_tree/sparse_binary_tree.rs's
// store field and the store-depth banding described in spec.md §4.3.
type Store struct {
	mu         sync.Mutex
	nodes      map[Coordinate]Node
	height     uint8
	storeDepth uint8
}

// NewStore creates an empty store for a tree of the given height and
// store depth.
func NewStore(height, storeDepth uint8) *Store {
	return &Store{
		nodes:      make(map[Coordinate]Node),
		height:     height,
		storeDepth: storeDepth,
	}
}

// WithinBand reports whether a node at layer y should be retained: either
// it is a bottom-layer leaf (y == 0) or it falls in the top storeDepth
// layers, i.e. y >= height - storeDepth.
func (s *Store) WithinBand(y uint8) bool {
	if y == 0 {
		return true
	}
	return y >= s.height-s.storeDepth
}

// Insert stores n unconditionally. Callers check interior/root layers with
// WithinBand before calling Insert, and leave bottom-layer pad nodes out
// (only real leaves go in at y=0).
func (s *Store) Insert(n Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[n.Coord] = n
}

// Get looks up a node by coordinate.
func (s *Store) Get(c Coordinate) (Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[c]
	return n, ok
}

// Leaf returns the leaf node at x on the bottom layer, if one was stored.
func (s *Store) Leaf(x uint64) (Node, bool) {
	return s.Get(Coordinate{X: x, Y: 0})
}

// Root returns the stored root node (always retained, since the root's
// layer H-1 is always within any non-empty store-depth band).
func (s *Store) Root() (Node, bool) {
	return s.Get(Coordinate{X: 0, Y: s.height - 1})
}

// Height and StoreDepth expose the store's configuration.
func (s *Store) Height() uint8     { return s.height }
func (s *Store) StoreDepth() uint8 { return s.storeDepth }

// Len returns the number of retained nodes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

// LeavesInRange returns every stored bottom-layer leaf whose x falls in
// [min,max], sorted ascending by x. Used by the path-siblings rebuilder
// to find real leaves within a missing subtree's x-range. Scans the store
// rather than the numeric range, since only real leaves occupy y=0.
func (s *Store) LeavesInRange(min, max uint64) []Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Node
	for coord, n := range s.nodes {
		if coord.Y == 0 && coord.X >= min && coord.X <= max {
			out = append(out, n)
		}
	}
	sortNodesByX(out)
	return out
}
