package bintree

import "sort"

func sortNodesByX(nodes []Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Coord.X < nodes[j].Coord.X })
}
