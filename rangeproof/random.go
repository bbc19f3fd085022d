package rangeproof

import (
	"crypto/rand"
	"math/big"

	"github.com/dapol-go/dapol/curve"
)

// randomBigInt draws a uniform random integer in [0, groupOrder).
func randomBigInt() *big.Int {
	n, err := rand.Int(rand.Reader, curve.GroupOrder())
	if err != nil {
		// crypto/rand failing indicates a broken host RNG; there is no
		// meaningful recovery for a commitment scheme that depends on
		// unpredictable blinding factors.
		panic("rangeproof: crypto/rand unavailable: " + err.Error())
	}
	return n
}
