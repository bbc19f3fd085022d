package rangeproof

import (
	"math/big"

	"github.com/dapol-go/dapol/curve"
)

// IndividualProof is a range proof over a single committed value, the
// degenerate m=1 case of the aggregated construction (spec.md §4.8: "A
// proof over a single value needs none of the aggregation machinery").
type IndividualProof struct {
	Bulletproof *Bulletproof
}

// ProveIndividual proves that value, committed as
// curve.Commit(value, blinding), lies in [0, 2^n).
func ProveIndividual(value, blinding *big.Int, n BitLength) (*IndividualProof, error) {
	if !n.valid() {
		return nil, ErrInvalidBitLength
	}
	transcript := NewIndividualTranscript()
	bp, err := ProveAggregated(transcript, []*big.Int{value}, []*big.Int{blinding}, n)
	if err != nil {
		return nil, err
	}
	return &IndividualProof{Bulletproof: bp}, nil
}

// Verify checks an IndividualProof against the public commitment it
// certifies.
func (p *IndividualProof) Verify(commitment *curve.Point, n BitLength) bool {
	if p == nil || p.Bulletproof == nil || p.Bulletproof.M != 1 || p.Bulletproof.N != int(n) {
		return false
	}
	transcript := NewIndividualTranscript()
	return VerifyAggregated(transcript, []*curve.Point{commitment}, p.Bulletproof)
}
