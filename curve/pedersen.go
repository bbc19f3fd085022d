package curve

import (
	"encoding/binary"
	"math/big"
	"sync"

	"github.com/dapol-go/dapol/hasher"
)

// deriveGenerator derives an independent group generator via hash-and-
// increment: hash (label, index, attempt) to a candidate y-coordinate and
// solve for x, retrying on non-residues or points outside the curve. The
// point is then multiplied by the cofactor 4 so that it lies in the
// prime-order subgroup, retrying if that yields the identity. No
// party ever learns a discrete-log relationship between generators
// produced this way and Generator(), which is what a Pedersen commitment
// needs to stay binding.
func deriveGenerator(label string, index uint64) *Point {
	var idxBytes [8]byte
	binary.LittleEndian.PutUint64(idxBytes[:], index)

	for attempt := uint32(0); ; attempt++ {
		var attemptBytes [4]byte
		binary.LittleEndian.PutUint32(attemptBytes[:], attempt)

		digest := hasher.New().
			Update([]byte("dapol-generator")).
			Update([]byte(label)).
			Update(idxBytes[:]).
			Update(attemptBytes[:]).
			Sum()

		y := new(big.Int).Mod(new(big.Int).SetBytes(digest[:]), fieldModulus)
		y2 := frSqr(y)
		num := frSub(y2, big.NewInt(1))
		den := frAdd(big.NewInt(5), frMul(curveD, y2))
		denInv := frInv(den)
		if denInv == nil {
			continue
		}
		x2 := frMul(num, denInv)
		x := frSqrt(x2)
		if x == nil {
			continue
		}
		p, err := FromAffine(x, y)
		if err != nil {
			continue
		}
		p = Double(Double(p))
		if p.IsIdentity() {
			continue
		}
		return p
	}
}

// ValueGenerator and BlindingGenerator are the two generators used for the
// two-value Pedersen commitment C = ValueGenerator^liability *
// BlindingGenerator^blinding.
var (
	valueGeneratorOnce sync.Once
	valueGenerator     *Point
	blindingGeneratorOnce sync.Once
	blindingGenerator     *Point
)

// ValueGenerator returns the generator the liability value is committed
// against.
func ValueGenerator() *Point {
	valueGeneratorOnce.Do(func() { valueGenerator = deriveGenerator("value", 0) })
	return valueGenerator
}

// BlindingGenerator returns the generator the blinding factor is committed
// against.
func BlindingGenerator() *Point {
	blindingGeneratorOnce.Do(func() { blindingGenerator = deriveGenerator("blinding", 0) })
	return blindingGenerator
}

// Commit computes a two-value Pedersen commitment C = g^value * h^blinding.
func Commit(value, blinding *big.Int) *Point {
	return Add(ScalarMulPoint(ValueGenerator(), value), ScalarMulPoint(BlindingGenerator(), blinding))
}

// vectorGeneratorCache memoizes derived Bulletproofs vector generators per
// label, growing lazily as larger bit-lengths/aggregation sizes are
// requested.
var (
	vectorGeneratorCacheMu sync.Mutex
	vectorGeneratorCache   = map[string][]*Point{}
)

// VectorGenerators returns n independent generators for the given label
// (conventionally "G" or "H"), deriving and caching additional ones as
// needed.
func VectorGenerators(label string, n int) []*Point {
	vectorGeneratorCacheMu.Lock()
	defer vectorGeneratorCacheMu.Unlock()

	cached := vectorGeneratorCache[label]
	for len(cached) < n {
		cached = append(cached, deriveGenerator("vec-"+label, uint64(len(cached))))
	}
	vectorGeneratorCache[label] = cached

	out := make([]*Point, n)
	copy(out, cached[:n])
	return out
}
