// Package xcoord assigns entities to unique, uniformly random x-coordinates
// on the bottom layer of the tree.
//
// Grounded on
// original_source/src/accumulators/ndm_smt/x_coord_generator.rs's
// RandomXCoordGenerator: an online Durstenfeld (Fisher-Yates) shuffle
// optimized by a coalescing map, so a unique value can be drawn one at a
// time without materializing the full [0, max) range up front.
package xcoord

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ErrOutOfBounds is returned once more unique coordinates have been
// requested than the generator's range holds.
type ErrOutOfBounds struct {
	MaxValue uint64
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("xcoord: counter cannot exceed max value %d", e.MaxValue)
}

// Generator draws unique x-coordinates from [0, maxXCoord) one at a time,
// in uniformly random order, without repetition.
type Generator struct {
	used     map[uint64]uint64
	maxCoord uint64
	i        uint64
}

// New builds a Generator over [0, maxXCoord), the available leaf slots of
// a bottom layer; for a tree of height h that is 2^(h-1).
func New(maxXCoord uint64) *Generator {
	return &Generator{
		used:     make(map[uint64]uint64),
		maxCoord: maxXCoord,
	}
}

// NewUnique draws the next unique x-coordinate using Durstenfeld's shuffle
// algorithm optimized by a coalescing map: sample k uniformly from
// [i, maxCoord), follow the chain in the map if k was already claimed by an
// earlier draw, then record that i has claimed k (or its chain terminus).
func (g *Generator) NewUnique() (uint64, error) {
	if g.i >= g.maxCoord {
		return 0, &ErrOutOfBounds{MaxValue: g.maxCoord}
	}

	k, err := randomInRange(g.i, g.maxCoord)
	if err != nil {
		return 0, err
	}

	x := k
	for {
		v, ok := g.used[x]
		if !ok {
			break
		}
		x = v
	}

	g.used[k] = g.i
	g.i++
	return x, nil
}

// randomInRange draws a uniform random value from [lo, hi) via crypto/rand.
func randomInRange(lo, hi uint64) (uint64, error) {
	span := new(big.Int).SetUint64(hi - lo)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("xcoord: crypto/rand unavailable: %w", err)
	}
	return lo + n.Uint64(), nil
}
