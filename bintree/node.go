package bintree

import "github.com/dapol-go/dapol/nodecontent"

// Node is a Coordinate paired with the content merged up to it.
type Node struct {
	Coord   Coordinate
	Content nodecontent.Content
}

// PadFunc synthesizes the content of a padding node at the given
// coordinate. Implementations close over (master_secret, salt_b, salt_s)
// per spec.md §9 ("Closures for padding") so the tree code never needs to
// know how pad content is derived.
type PadFunc func(Coordinate) nodecontent.Content

func merge(left, right Node, y uint8) Node {
	parentCoord := Coordinate{X: left.Coord.X / 2, Y: y}
	return Node{Coord: parentCoord, Content: left.Content.Merge(right.Content)}
}

// Merge combines a node with its sibling into their shared parent at layer
// y. left and right must already be correctly oriented (left.Coord even).
// Exported for callers outside the package (e.g. inclusion-proof path
// reconstruction) that need the same merge law the builders use.
func Merge(left, right Node, y uint8) Node {
	return merge(left, right, y)
}
