package inclusionproof

import "errors"

// ErrSiblingCount is returned when the number of siblings supplied does not
// match tree height minus one.
var ErrSiblingCount = errors.New("inclusionproof: sibling count does not match tree height")

// ErrRootMismatch is returned when the path reconstructed from the leaf and
// its siblings does not hash to the expected root.
var ErrRootMismatch = errors.New("inclusionproof: recomputed root does not match")

// ErrRangeProof is returned when an aggregated or individual range proof
// fails to verify against its commitment.
var ErrRangeProof = errors.New("inclusionproof: range proof verification failed")
