package bintree

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// DefaultMaxThreadCount is used when the caller has no better source for
// hardware parallelism (see accumulator.Config for the runtime.NumCPU()
// based default). Grounded on
// original_source/src/max_thread_count.rs's DEFAULT_MAX_THREAD_COUNT.
const DefaultMaxThreadCount = 4

// buildParams tracks the recursive state of the top-down parallel build:
// the bottom-layer x-range owned by the current subtree, its layer, and
// the shared thread budget. Grounded on
// original_source/src/binary_tree/tree_builder/multi_threaded.rs's
// RecursionParams.
type buildParams struct {
	xMin, xMid, xMax uint64
	y                uint8
	height           uint8
	storeDepth       uint8
	threadCount      *int32
	maxThreadCount   int32
}

func (p buildParams) intoLeftChild() buildParams {
	p.xMax = p.xMid
	p.xMid = (p.xMin + p.xMax) / 2
	p.y--
	return p
}

func (p buildParams) intoRightChild() buildParams {
	p.xMin = p.xMid + 1
	p.xMid = (p.xMin + p.xMax) / 2
	p.y--
	return p
}

// BuildParallel builds a tree top-down, recursively splitting the
// bottom-layer x-range at each layer and spawning a goroutine for one
// side whenever the shared thread budget allows. Produces the same root
// as BuildSequential for identical inputs regardless of scheduling.
func BuildParallel(height, storeDepth uint8, leaves []Node, pad PadFunc, maxThreadCount int) (*Store, Node, error) {
	if err := ValidateHeight(height); err != nil {
		return nil, Node{}, err
	}
	if len(leaves) == 0 {
		return nil, Node{}, ErrEmptyLeaves
	}
	maxLeaves := MaxBottomLayerNodes(height)
	if uint64(len(leaves)) > maxLeaves {
		return nil, Node{}, fmt.Errorf("%w: %d leaves exceeds capacity %d", ErrTooManyLeaves, len(leaves), maxLeaves)
	}
	if maxThreadCount < 1 {
		maxThreadCount = DefaultMaxThreadCount
	}

	sorted := make([]Node, len(leaves))
	copy(sorted, leaves)
	sortNodesByX(sorted)
	for i, n := range sorted {
		if n.Coord.X >= maxLeaves {
			return nil, Node{}, fmt.Errorf("%w: x=%d", ErrInvalidXCoord, n.Coord.X)
		}
		if i > 0 && sorted[i].Coord.X == sorted[i-1].Coord.X {
			return nil, Node{}, fmt.Errorf("%w: x=%d", ErrDuplicateLeaves, n.Coord.X)
		}
	}

	store := NewStore(height, storeDepth)
	threadCount := int32(1) // accounts for the calling goroutine.
	params := buildParams{
		xMin:           0,
		xMax:           maxLeaves - 1,
		y:              height - 1,
		height:         height,
		storeDepth:     storeDepth,
		threadCount:    &threadCount,
		maxThreadCount: int32(maxThreadCount),
	}
	params.xMid = (params.xMin + params.xMax) / 2

	root := buildNode(params, sorted, pad, store)
	store.Insert(root)
	return store, root, nil
}

// splitByMid partitions sorted leaves (ascending x) into those with
// x <= mid and those with x > mid, returning the count in the left half.
// Because a subtree's leaves are already confined to its own x-range, the
// split is always a single contiguous prefix.
func splitByMid(leaves []Node, mid uint64) int {
	count := 0
	for _, n := range leaves {
		if n.Coord.X > mid {
			break
		}
		count++
	}
	return count
}

func buildNode(p buildParams, leaves []Node, pad PadFunc, store *Store) Node {
	maxNodes := uint64(1) << p.y
	if uint64(len(leaves)) > maxNodes {
		panic(fmt.Sprintf("bintree: leaf count %d exceeds layer capacity %d", len(leaves), maxNodes))
	}
	if len(leaves) == 0 {
		panic("bintree: recursive build invoked with zero leaves")
	}
	if p.xMin%2 != 0 {
		panic(fmt.Sprintf("bintree: x_min %d must be even", p.xMin))
	}
	if p.xMax%2 != 1 {
		panic(fmt.Sprintf("bintree: x_max %d must be odd", p.xMax))
	}
	span := p.xMax - p.xMin + 1
	if span&(span-1) != 0 {
		panic(fmt.Sprintf("bintree: subtree span %d is not a power of two", span))
	}

	if p.y == 1 {
		var left, right Node
		if len(leaves) == 2 {
			left, right = leaves[0], leaves[1]
			store.Insert(left)
			store.Insert(right)
		} else {
			node := leaves[0]
			store.Insert(node)
			if node.Coord.IsLeft() {
				left = node
				sib := node.Coord.Sibling()
				right = Node{Coord: sib, Content: pad(sib)}
			} else {
				right = node
				sib := node.Coord.Sibling()
				left = Node{Coord: sib, Content: pad(sib)}
			}
		}
		return merge(left, right, p.y)
	}

	withinStoreDepthForChildren := p.y-1 >= p.height-p.storeDepth

	var left, right Node
	splitIndex := splitByMid(leaves, p.xMid)
	switch {
	case splitIndex == len(leaves):
		// All leaves live under the left child; the right child is pure pad.
		left = buildNode(p.intoLeftChild(), leaves, pad, store)
		sib := left.Coord.Sibling()
		right = Node{Coord: sib, Content: pad(sib)}

	case splitIndex == 0:
		// All leaves live under the right child; the left child is pure pad.
		right = buildNode(p.intoRightChild(), leaves, pad, store)
		sib := right.Coord.Sibling()
		left = Node{Coord: sib, Content: pad(sib)}

	default:
		leftLeaves := leaves[:splitIndex]
		rightLeaves := leaves[splitIndex:]

		if atomic.LoadInt32(p.threadCount) < p.maxThreadCount {
			atomic.AddInt32(p.threadCount, 1)
			var wg sync.WaitGroup
			wg.Add(1)
			var rightResult Node
			go func() {
				defer wg.Done()
				defer atomic.AddInt32(p.threadCount, -1)
				rightResult = buildNode(p.intoRightChild(), rightLeaves, pad, store)
			}()
			left = buildNode(p.intoLeftChild(), leftLeaves, pad, store)
			wg.Wait()
			right = rightResult
		} else {
			right = buildNode(p.intoRightChild(), rightLeaves, pad, store)
			left = buildNode(p.intoLeftChild(), leftLeaves, pad, store)
		}
	}

	if withinStoreDepthForChildren {
		store.Insert(left)
		store.Insert(right)
	}
	return merge(left, right, p.y)
}
