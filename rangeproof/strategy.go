package rangeproof

import (
	"errors"
	"math/big"

	"github.com/dapol-go/dapol/curve"
)

// Domain-separator labels for Fiat-Shamir transcript initialization,
// mandated by spec.md §6 for cross-implementation interop.
const (
	IndividualRangeProofLabel = "IndividualRangeProof"
	AggregatedRangeProofLabel = "AggregatedRangeProof"
)

// NewIndividualTranscript starts a transcript for a single-value range
// proof (the n=1 degenerate case of aggregation).
func NewIndividualTranscript() *curve.Transcript {
	return curve.NewTranscript(IndividualRangeProofLabel)
}

// NewAggregatedTranscript starts a transcript for a multi-value aggregated
// range proof.
func NewAggregatedTranscript() *curve.Transcript {
	return curve.NewTranscript(AggregatedRangeProofLabel)
}

// ErrEmptyValues is returned when ProveAggregatedRanges is called with no
// values.
var ErrEmptyValues = errors.New("rangeproof: no values supplied")

// NextPowerOfTwo returns the smallest power of two >= n (n > 0).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// PrevPowerOfTwo returns the largest power of two <= n (n > 0).
func PrevPowerOfTwo(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

// useSplitting applies the heuristic from spec.md §4.8: choose splitting
// when n < (next_pow2(n) - prev_pow2(n)) / 2, else padding.
func useSplitting(n int) bool {
	if n&(n-1) == 0 {
		return false // already a power of two; no strategy needed.
	}
	next := NextPowerOfTwo(n)
	prev := PrevPowerOfTwo(n)
	return n < (next-prev)/2
}

// setBitSizes decomposes n into its power-of-two set bits, largest first:
// n = 2^a1 + 2^a2 + ... with a1 > a2 > ...
func setBitSizes(n int) []int {
	var sizes []int
	for bit := 63; bit >= 0; bit-- {
		if n&(1<<uint(bit)) != 0 {
			sizes = append(sizes, 1<<uint(bit))
		}
	}
	return sizes
}

// AggregatedProof is a range proof over an arbitrary number of values,
// using the padding or splitting strategy from spec.md §4.8 to handle
// counts that are not themselves a power of two.
type AggregatedProof struct {
	Count    int
	Strategy string // "padding", "splitting", or "exact"
	Parts    []*Bulletproof
}

// dummyCommitment is the agreed-upon commitment for padding dummy ranges:
// value=0, blinding=1.
func dummyCommitment() *curve.Point {
	return curve.Commit(new(big.Int), big.NewInt(1))
}

// ProveAggregatedRanges proves that every values[i], committed as
// commitments[i] = curve.Commit(values[i], blindings[i]), lies in
// [0, 2^n). It selects the padding or splitting strategy automatically.
func ProveAggregatedRanges(values, blindings []*big.Int, n BitLength) (*AggregatedProof, error) {
	if len(values) == 0 {
		return nil, ErrEmptyValues
	}
	if !n.valid() {
		return nil, ErrInvalidBitLength
	}
	count := len(values)

	if count&(count-1) == 0 {
		transcript := NewAggregatedTranscript()
		bp, err := ProveAggregated(transcript, values, blindings, n)
		if err != nil {
			return nil, err
		}
		return &AggregatedProof{Count: count, Strategy: "exact", Parts: []*Bulletproof{bp}}, nil
	}

	if useSplitting(count) {
		return proveSplitting(values, blindings, n, count)
	}
	return provePadding(values, blindings, n, count)
}

func provePadding(values, blindings []*big.Int, n BitLength, count int) (*AggregatedProof, error) {
	target := NextPowerOfTwo(count)
	paddedValues := make([]*big.Int, target)
	paddedBlindings := make([]*big.Int, target)
	copy(paddedValues, values)
	copy(paddedBlindings, blindings)
	for i := count; i < target; i++ {
		paddedValues[i] = new(big.Int)
		paddedBlindings[i] = big.NewInt(1)
	}

	transcript := NewAggregatedTranscript()
	bp, err := ProveAggregated(transcript, paddedValues, paddedBlindings, n)
	if err != nil {
		return nil, err
	}
	return &AggregatedProof{Count: count, Strategy: "padding", Parts: []*Bulletproof{bp}}, nil
}

// proveSplitting decomposes count into its power-of-two set bits and
// produces one aggregated proof per bit, slicing the input tail-aligned
// (the last `size` elements belong to that slice, walking from the
// largest bit down), all driven by one shared transcript.
func proveSplitting(values, blindings []*big.Int, n BitLength, count int) (*AggregatedProof, error) {
	sizes := setBitSizes(count)
	transcript := NewAggregatedTranscript()

	parts := make([]*Bulletproof, 0, len(sizes))
	end := count
	for _, size := range sizes {
		start := end - size
		bp, err := ProveAggregated(transcript, values[start:end], blindings[start:end], n)
		if err != nil {
			return nil, err
		}
		parts = append(parts, bp)
		end = start
	}
	return &AggregatedProof{Count: count, Strategy: "splitting", Parts: parts}, nil
}

// Verify checks an AggregatedProof against the public commitments it
// certifies, in the same order they were passed to ProveAggregatedRanges.
func (p *AggregatedProof) Verify(commitments []*curve.Point, n BitLength) bool {
	if p == nil || len(commitments) != p.Count {
		return false
	}
	for _, part := range p.Parts {
		if part == nil || part.N != int(n) {
			return false
		}
	}

	switch p.Strategy {
	case "exact":
		if len(p.Parts) != 1 {
			return false
		}
		transcript := NewAggregatedTranscript()
		return VerifyAggregated(transcript, commitments, p.Parts[0])

	case "padding":
		if len(p.Parts) != 1 {
			return false
		}
		target := NextPowerOfTwo(p.Count)
		padded := make([]*curve.Point, target)
		copy(padded, commitments)
		dummy := dummyCommitment()
		for i := p.Count; i < target; i++ {
			padded[i] = dummy
		}
		transcript := NewAggregatedTranscript()
		return VerifyAggregated(transcript, padded, p.Parts[0])

	case "splitting":
		sizes := setBitSizes(p.Count)
		if len(sizes) != len(p.Parts) {
			return false
		}
		transcript := NewAggregatedTranscript()
		end := p.Count
		for i, size := range sizes {
			start := end - size
			if !VerifyAggregated(transcript, commitments[start:end], p.Parts[i]) {
				return false
			}
			end = start
		}
		return true
	}
	return false
}
