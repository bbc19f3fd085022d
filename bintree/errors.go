package bintree

import "errors"

// Sentinel errors for the builder's InvalidInput-class failures (spec.md
// §4.4 edge cases). Internal invariant violations panic instead — see the
// bounds checks in parallel.go.
var (
	ErrEmptyLeaves     = errors.New("bintree: no leaves supplied")
	ErrTooManyLeaves   = errors.New("bintree: more leaves than bottom-layer capacity")
	ErrDuplicateLeaves = errors.New("bintree: duplicate leaf x-coordinate")
	ErrInvalidXCoord   = errors.New("bintree: leaf x-coordinate out of range")
	ErrInvalidHeight   = errors.New("bintree: height out of range")
)
