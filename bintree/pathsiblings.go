package bintree

// PathSiblings is the ordered list of H-1 sibling nodes for a leaf's path
// to the root, bottom layer first, root excluded. Combined with the leaf
// itself it reconstructs every node on the path as well as the root.
type PathSiblings []Node

// BuildPathSiblings walks from leaf to the root, collecting the sibling
// at each layer either from the store or, if the store does not retain
// it, by regenerating just that sibling's subtree. maxThreadCount
// controls whether regeneration uses the sequential or divide-and-conquer
// algorithm (maxThreadCount <= 1 behaves sequentially, since buildNode
// only spawns a goroutine when the shared thread budget allows it).
//
// Grounded on original_source/src/binary_tree/path_siblings.rs's bottom-
// to-top walk and restricted-subtree regeneration via
// RecursionParams::from_coordinate with store_depth forced to 1.
func BuildPathSiblings(store *Store, leaf Node, pad PadFunc, maxThreadCount int) PathSiblings {
	height := store.Height()
	siblings := make(PathSiblings, 0, height-1)
	current := leaf.Coord

	for y := uint8(0); y < height-1; y++ {
		sibCoord := current.Sibling()
		sib, ok := store.Get(sibCoord)
		if !ok {
			sib = regenerateSibling(store, sibCoord, pad, maxThreadCount)
		}
		siblings = append(siblings, sib)
		current = current.Parent()
	}
	return siblings
}

// regenerateSibling rebuilds a single node that the store chose not to
// retain, using only the real leaves that fall within its subtree's
// bottom-layer x-range. If none do, the node is pure padding and no
// builder invocation is needed at all.
func regenerateSibling(store *Store, coord Coordinate, pad PadFunc, maxThreadCount int) Node {
	min, max := coord.BottomRange()
	// The store holds every real leaf (store-depth banding never drops
	// bottom-layer non-pad leaves), so scanning it is sufficient to find
	// whatever real leaves live under this subtree.
	leaves := store.LeavesInRange(min, max)
	if len(leaves) == 0 {
		return Node{Coord: coord, Content: pad(coord)}
	}

	scratch := NewStore(store.Height(), 1) // store_depth=1: discarded, nothing retained below the root.
	threadCount := int32(1)
	params := buildParams{
		xMin:           min,
		xMax:           max,
		y:              coord.Y,
		height:         store.Height(),
		storeDepth:     1,
		threadCount:    &threadCount,
		maxThreadCount: int32(maxThreadCount),
	}
	params.xMid = (params.xMin + params.xMax) / 2
	return buildNode(params, leaves, pad, scratch)
}
