// Package curve implements the elliptic-curve group backing the
// accumulator's Pedersen commitments and Bulletproofs-style range proofs.
//
// The group is a prime-order twisted Edwards curve (-5x²+y² = 1+dx²y²)
// defined over the BLS12-381 scalar field, the Bandersnatch/Banderwagon
// construction used elsewhere for Verkle-trie vector commitments. It is
// reused here purely as a discrete-log-hard group with cheap addition and
// a canonical compressed encoding — the properties a Pedersen commitment
// scheme needs, independent of any Verkle-specific semantics.
//
// Points are held in extended twisted Edwards coordinates (X, Y, T, Z)
// where x = X/Z, y = Y/Z, T = XY/Z, for efficient addition without field
// inversions on the hot path. math/big backs field arithmetic; this
// implementation favors correctness over constant-time execution and is
// intended for public commitment/proof verification, not secret-key
// operations.
package curve

import (
	"errors"
	"math/big"
)

// Field and curve parameters.
var (
	// fieldModulus is the BLS12-381 scalar field order, the base field for
	// point-coordinate arithmetic.
	fieldModulus, _ = new(big.Int).SetString(
		"73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

	// groupOrder is the prime order of the curve's large subgroup, used for
	// scalar arithmetic (scalar multiplication, challenge reduction, etc).
	groupOrder, _ = new(big.Int).SetString(
		"1cfb69d4ca675f520cce760202687600ff8f87007419047174fd06b52876e7e1", 16)

	// curveA is the twisted Edwards 'a' parameter, -5 mod fieldModulus.
	curveA = new(big.Int).Sub(fieldModulus, big.NewInt(5))

	// curveD is the twisted Edwards 'd' parameter.
	curveD, _ = new(big.Int).SetString(
		"6389c12633c267cbc66e3bf86be3b6d8cb66677177e54f92b369f2f5188d58e7", 16)

	genX, _ = new(big.Int).SetString(
		"29c132cc2c0b34c5743711777bbe42f32b79c022ad998465e1e71866a252ae18", 16)
	genY, _ = new(big.Int).SetString(
		"2a6c669eda123e0f157d8b50badcd586358cad81eee464605e3167b6cc974166", 16)
)

// FieldModulus returns the base field modulus used for point coordinates.
func FieldModulus() *big.Int { return new(big.Int).Set(fieldModulus) }

// GroupOrder returns the prime order of the curve subgroup, used to reduce
// scalars (blinding factors, proof challenges).
func GroupOrder() *big.Int { return new(big.Int).Set(groupOrder) }

func frAdd(a, b *big.Int) *big.Int { return new(big.Int).Mod(new(big.Int).Add(a, b), fieldModulus) }
func frSub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, fieldModulus)
}
func frMul(a, b *big.Int) *big.Int { return new(big.Int).Mod(new(big.Int).Mul(a, b), fieldModulus) }
func frSqr(a *big.Int) *big.Int    { return frMul(a, a) }
func frNeg(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(fieldModulus, new(big.Int).Mod(a, fieldModulus))
}
func frInv(a *big.Int) *big.Int  { return new(big.Int).ModInverse(a, fieldModulus) }
func frSqrt(a *big.Int) *big.Int { return new(big.Int).ModSqrt(a, fieldModulus) }

// ScalarAdd returns (a + b) mod groupOrder.
func ScalarAdd(a, b *big.Int) *big.Int { return new(big.Int).Mod(new(big.Int).Add(a, b), groupOrder) }

// ScalarSub returns (a - b) mod groupOrder.
func ScalarSub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, groupOrder)
}

// ScalarMul returns (a * b) mod groupOrder.
func ScalarMul(a, b *big.Int) *big.Int { return new(big.Int).Mod(new(big.Int).Mul(a, b), groupOrder) }

// ScalarInv returns a^(-1) mod groupOrder.
func ScalarInv(a *big.Int) *big.Int { return new(big.Int).ModInverse(a, groupOrder) }

// ReduceScalar reduces an arbitrary integer modulo groupOrder, producing a
// value usable as a commitment blinding factor or curve scalar.
func ReduceScalar(a *big.Int) *big.Int { return new(big.Int).Mod(a, groupOrder) }

// Point is a group element in extended twisted Edwards coordinates.
type Point struct {
	x, y, t, z *big.Int
}

// Identity returns the group identity element.
func Identity() *Point {
	return &Point{x: new(big.Int), y: big.NewInt(1), t: new(big.Int), z: big.NewInt(1)}
}

// Generator returns the standard base point of the group.
func Generator() *Point {
	return &Point{x: new(big.Int).Set(genX), y: new(big.Int).Set(genY), t: frMul(genX, genY), z: big.NewInt(1)}
}

// IsIdentity reports whether p is the identity element.
func (p *Point) IsIdentity() bool {
	return new(big.Int).Mod(p.x, fieldModulus).Sign() == 0
}

// FromAffine constructs a point from affine (x, y) coordinates, verifying
// it lies on the curve.
func FromAffine(x, y *big.Int) (*Point, error) {
	if !isOnCurve(x, y) {
		return nil, errors.New("curve: point not on curve")
	}
	xm := new(big.Int).Mod(x, fieldModulus)
	ym := new(big.Int).Mod(y, fieldModulus)
	return &Point{x: xm, y: ym, t: frMul(xm, ym), z: big.NewInt(1)}, nil
}

// Affine returns the point's affine (x, y) coordinates.
func (p *Point) Affine() (x, y *big.Int) {
	if p.z.Cmp(big.NewInt(1)) == 0 {
		return new(big.Int).Set(p.x), new(big.Int).Set(p.y)
	}
	zInv := frInv(p.z)
	return frMul(p.x, zInv), frMul(p.y, zInv)
}

func isOnCurve(x, y *big.Int) bool {
	xm := new(big.Int).Mod(x, fieldModulus)
	ym := new(big.Int).Mod(y, fieldModulus)
	x2, y2 := frSqr(xm), frSqr(ym)
	lhs := frAdd(frMul(curveA, x2), y2)
	rhs := frAdd(big.NewInt(1), frMul(curveD, frMul(x2, y2)))
	return lhs.Cmp(rhs) == 0
}

// Add returns p1 + p2 using the unified twisted-Edwards addition formula
// (Hisil et al., "Twisted Edwards Curves Revisited", 2008).
func Add(p1, p2 *Point) *Point {
	A := frMul(p1.x, p2.x)
	B := frMul(p1.y, p2.y)
	C := frMul(frMul(p1.t, curveD), p2.t)
	D := frMul(p1.z, p2.z)

	E := frSub(frMul(frAdd(p1.x, p1.y), frAdd(p2.x, p2.y)), frAdd(A, B))
	F := frSub(D, C)
	G := frAdd(D, C)
	H := frSub(B, frMul(curveA, A))

	return &Point{x: frMul(E, F), y: frMul(G, H), t: frMul(E, H), z: frMul(F, G)}
}

// Double returns p + p using the dedicated doubling formula.
func Double(p *Point) *Point {
	A := frSqr(p.x)
	B := frSqr(p.y)
	C := frMul(big.NewInt(2), frSqr(p.z))

	D := frMul(curveA, A)
	E := frSub(frSqr(frAdd(p.x, p.y)), frAdd(A, B))
	G := frAdd(D, B)
	F := frSub(G, C)
	H := frSub(D, B)

	return &Point{x: frMul(E, F), y: frMul(G, H), t: frMul(E, H), z: frMul(F, G)}
}

// Neg returns -p.
func Neg(p *Point) *Point {
	return &Point{x: frNeg(p.x), y: new(big.Int).Set(p.y), t: frNeg(p.t), z: new(big.Int).Set(p.z)}
}

// Sub returns p1 - p2.
func Sub(p1, p2 *Point) *Point {
	return Add(p1, Neg(p2))
}

// ScalarMulPoint computes k*p by double-and-add. k is reduced modulo the
// group order.
func ScalarMulPoint(p *Point, k *big.Int) *Point {
	if k.Sign() == 0 || p.IsIdentity() {
		return Identity()
	}
	scalar := new(big.Int).Mod(k, groupOrder)
	if scalar.Sign() == 0 {
		return Identity()
	}

	result := Identity()
	base := &Point{x: new(big.Int).Set(p.x), y: new(big.Int).Set(p.y), t: new(big.Int).Set(p.t), z: new(big.Int).Set(p.z)}
	for i := scalar.BitLen() - 1; i >= 0; i-- {
		result = Double(result)
		if scalar.Bit(i) == 1 {
			result = Add(result, base)
		}
	}
	return result
}

// MultiScalarMul computes sum(scalars[i] * points[i]) with a naive
// accumulator. Acceptable for the proof sizes this module deals with
// (tens to low hundreds of terms); a production deployment proving very
// large batches would want Pippenger's algorithm instead.
func MultiScalarMul(points []*Point, scalars []*big.Int) *Point {
	if len(points) == 0 || len(points) != len(scalars) {
		return Identity()
	}
	result := Identity()
	for i := range points {
		if scalars[i] == nil || scalars[i].Sign() == 0 {
			continue
		}
		result = Add(result, ScalarMulPoint(points[i], scalars[i]))
	}
	return result
}

// Equal reports whether p1 and p2 represent the same group element, where
// (x, y) and (-x, -y) are one element: x1*y2 == x2*y1.
func Equal(p1, p2 *Point) bool {
	return frMul(p1.x, p2.y).Cmp(frMul(p2.x, p1.y)) == 0
}

// Compressed is the 32-byte canonical encoding of a point.
type Compressed [32]byte

// Compress encodes p as its Y coordinate in little-endian, with the sign
// of X folded into the top bit, normalized so Y is always taken from the
// lower half of the field (so (x, y) and (-x, -y), which Equal treats as
// the same element, have a single canonical form).
func Compress(p *Point) Compressed {
	var out Compressed
	if p.IsIdentity() {
		out[0] = 1
		return out
	}
	x, y := p.Affine()
	halfR := new(big.Int).Rsh(fieldModulus, 1)
	if y.Cmp(halfR) > 0 {
		x, y = frNeg(x), frNeg(y)
	}
	yBytes := y.Bytes()
	for i, b := range yBytes {
		out[len(yBytes)-1-i] = b
	}
	if x.Cmp(halfR) > 0 {
		out[31] |= 0x80
	}
	return out
}

// Decompress decodes a 32-byte canonical encoding back into a point.
func Decompress(data Compressed) (*Point, error) {
	signBit := data[31] & 0x80
	data[31] &= 0x7f

	beBytes := make([]byte, 32)
	for i := 0; i < 32; i++ {
		beBytes[31-i] = data[i]
	}
	y := new(big.Int).SetBytes(beBytes)
	if y.Cmp(fieldModulus) >= 0 {
		return nil, errors.New("curve: y coordinate out of range")
	}

	y2 := frSqr(y)
	num := frSub(y2, big.NewInt(1))
	den := frAdd(big.NewInt(5), frMul(curveD, y2))
	denInv := frInv(den)
	if denInv == nil {
		return nil, errors.New("curve: degenerate point")
	}
	x2 := frMul(num, denInv)
	x := frSqrt(x2)
	if x == nil {
		return nil, errors.New("curve: no valid x coordinate")
	}

	halfR := new(big.Int).Rsh(fieldModulus, 1)
	if signBit != 0 && x.Cmp(halfR) <= 0 {
		x = frNeg(x)
	} else if signBit == 0 && x.Cmp(halfR) > 0 {
		x = frNeg(x)
	}
	return FromAffine(x, y)
}
