package bintree

import "fmt"

// BuildSequential builds a tree layer-by-layer, bottom-up. leaves must
// have distinct X coordinates in [0, 2^(height-1)); they need not be
// pre-sorted. pad synthesizes the content of any sibling not present in
// leaves. Grounded on
// original_source/src/binary_tree/single_threaded_builder.rs.
func BuildSequential(height, storeDepth uint8, leaves []Node, pad PadFunc) (*Store, Node, error) {
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
	for _, n := range sorted {
		store.Insert(n)
	}

	current := sorted
	for y := uint8(0); y < height-1; y++ {
		next := make([]Node, 0, (len(current)+1)/2)
		i := 0
		for i < len(current) {
			node := current[i]
			var left, right Node
			switch {
			case node.Coord.IsRight():
				leftCoord := node.Coord.Sibling()
				left = Node{Coord: leftCoord, Content: pad(leftCoord)}
				right = node
				i++
			case i+1 < len(current) && current[i+1].Coord.X == node.Coord.X+1:
				left = node
				right = current[i+1]
				i += 2
			default:
				left = node
				rightCoord := node.Coord.Sibling()
				right = Node{Coord: rightCoord, Content: pad(rightCoord)}
				i++
			}

			if y > 0 && store.WithinBand(y) {
				store.Insert(left)
				store.Insert(right)
			}
			next = append(next, merge(left, right, y+1))
		}
		current = next
	}

	if len(current) != 1 {
		panic("bintree: sequential build left more than one root candidate")
	}
	root := current[0]
	store.Insert(root)
	return store, root, nil
}
