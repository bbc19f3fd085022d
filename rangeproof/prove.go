package rangeproof

import (
	"math/big"

	"github.com/dapol-go/dapol/curve"
)

// ProveAggregated builds a single Bulletproof certifying that each of
// values[i] (committed as commitments[i] = Commit(values[i], blindings[i]))
// lies in [0, 2^n). len(values) must be a power of two; the transcript
// must already carry the proof-kind domain label (see
// NewIndividualTranscript / NewAggregatedTranscript). ProveAggregated
// appends the public commitments to the transcript itself.
func ProveAggregated(transcript *curve.Transcript, values, blindings []*big.Int, n BitLength) (*Bulletproof, error) {
	if !n.valid() {
		return nil, ErrInvalidBitLength
	}
	m := len(values)
	for j := 0; j < m; j++ {
		transcript.AppendPoint(curve.Commit(values[j], blindings[j]))
	}
	bitLen := int(n)
	total := bitLen * m

	g := curve.VectorGenerators("G", total)
	h := curve.VectorGenerators("H", total)
	gVal := curve.ValueGenerator()
	hBlind := curve.BlindingGenerator()

	aL := make([]*big.Int, 0, total)
	for j := 0; j < m; j++ {
		aL = append(aL, bitDecompose(values[j], bitLen)...)
	}
	aR := vecSub(aL, onesVector(total))

	alpha := randomScalar()
	A := curve.Add(curve.Add(curve.MultiScalarMul(g, aL), curve.MultiScalarMul(h, aR)), curve.ScalarMulPoint(hBlind, alpha))

	sL := make([]*big.Int, total)
	sR := make([]*big.Int, total)
	for i := 0; i < total; i++ {
		sL[i] = randomScalar()
		sR[i] = randomScalar()
	}
	rho := randomScalar()
	S := curve.Add(curve.Add(curve.MultiScalarMul(g, sL), curve.MultiScalarMul(h, sR)), curve.ScalarMulPoint(hBlind, rho))

	transcript.AppendPoint(A)
	transcript.AppendPoint(S)
	y := transcript.Challenge()
	z := transcript.Challenge()

	yPowers := powersOfScalar(y, total)
	z2 := curve.ScalarMul(z, z)

	// z^(2+j) broadcast across each range's n-bit block, tensored with 2^n.
	twoPowers := powersOfScalar(big.NewInt(2), bitLen)
	zTwoTerm := make([]*big.Int, total)
	zPowJ := new(big.Int).Set(z2)
	for j := 0; j < m; j++ {
		for i := 0; i < bitLen; i++ {
			zTwoTerm[j*bitLen+i] = curve.ScalarMul(zPowJ, twoPowers[i])
		}
		zPowJ = curve.ScalarMul(zPowJ, z)
	}

	l0 := vecSub(aL, constVec(z, total))
	l1 := sL
	r0 := vecAdd(hadamard(yPowers, vecAdd(aR, constVec(z, total))), zTwoTerm)
	r1 := hadamard(yPowers, sR)

	t0 := innerProduct(l0, r0)
	t1 := curve.ScalarAdd(innerProduct(l0, r1), innerProduct(l1, r0))
	t2 := innerProduct(l1, r1)
	_ = t0

	tau1 := randomScalar()
	tau2 := randomScalar()
	T1 := curve.Add(curve.ScalarMulPoint(gVal, t1), curve.ScalarMulPoint(hBlind, tau1))
	T2 := curve.Add(curve.ScalarMulPoint(gVal, t2), curve.ScalarMulPoint(hBlind, tau2))

	transcript.AppendPoint(T1)
	transcript.AppendPoint(T2)
	x := transcript.Challenge()

	l := vecAdd(l0, scalarVec(x, l1))
	r := vecAdd(r0, scalarVec(x, r1))
	that := innerProduct(l, r)

	x2 := curve.ScalarMul(x, x)
	tauX := curve.ScalarAdd(curve.ScalarAdd(curve.ScalarMul(tau2, x2), curve.ScalarMul(tau1, x)), sumZPowGamma(z, blindings, m))
	mu := curve.ScalarAdd(alpha, curve.ScalarMul(rho, x))

	// Rescale H by y^-i so the IPA operates on (G, H') with the Hadamard
	// factor folded into the generator basis, per the Bulletproofs paper.
	hPrime := make([]*curve.Point, total)
	yInv := curve.ScalarInv(y)
	yInvPow := big.NewInt(1)
	for i := 0; i < total; i++ {
		hPrime[i] = curve.ScalarMulPoint(h[i], yInvPow)
		yInvPow = curve.ScalarMul(yInvPow, yInv)
	}

	transcript.AppendScalar(tauX)
	transcript.AppendScalar(mu)
	transcript.AppendScalar(that)

	ipa := curve.IPAProve(transcript, g, hPrime, ipaBasePoint(), l, r)

	return &Bulletproof{A: A, S: S, T1: T1, T2: T2, TauX: tauX, Mu: mu, That: that, IPA: ipa, N: bitLen, M: m}, nil
}

// sumZPowGamma computes sum_{j} z^(2+j) * gamma_j, the blinding-factor
// aggregation term of tau_x.
func sumZPowGamma(z *big.Int, blindings []*big.Int, m int) *big.Int {
	sum := new(big.Int)
	zPow := curve.ScalarMul(z, z)
	for j := 0; j < m; j++ {
		sum = curve.ScalarAdd(sum, curve.ScalarMul(zPow, blindings[j]))
		zPow = curve.ScalarMul(zPow, z)
	}
	return sum
}

// VerifyAggregated verifies a Bulletproof against the public commitments it
// certifies. The transcript must be in the same state the prover's was
// in (same domain label, same earlier proofs); VerifyAggregated appends
// the commitments itself, as ProveAggregated does.
func VerifyAggregated(transcript *curve.Transcript, commitments []*curve.Point, proof *Bulletproof) bool {
	m := len(commitments)
	if proof == nil || proof.M != m {
		return false
	}
	for _, c := range commitments {
		transcript.AppendPoint(c)
	}
	n := proof.N
	total := n * m

	g := curve.VectorGenerators("G", total)
	h := curve.VectorGenerators("H", total)
	gVal := curve.ValueGenerator()
	hBlind := curve.BlindingGenerator()

	transcript.AppendPoint(proof.A)
	transcript.AppendPoint(proof.S)
	y := transcript.Challenge()
	z := transcript.Challenge()

	transcript.AppendPoint(proof.T1)
	transcript.AppendPoint(proof.T2)
	x := transcript.Challenge()

	transcript.AppendScalar(proof.TauX)
	transcript.AppendScalar(proof.Mu)
	transcript.AppendScalar(proof.That)

	// Check the scalar (t, tau_x) commitment equation:
	//   g^that * h^tauX == (prod V_j^(z^(2+j))) * g^delta(y,z) * T1^x * T2^(x^2)
	delta := deltaMN(y, z, n, m)
	lhs := curve.Add(curve.ScalarMulPoint(gVal, proof.That), curve.ScalarMulPoint(hBlind, proof.TauX))

	rhs := curve.ScalarMulPoint(gVal, delta)
	zPow := curve.ScalarMul(z, z)
	for j := 0; j < m; j++ {
		rhs = curve.Add(rhs, curve.ScalarMulPoint(commitments[j], zPow))
		zPow = curve.ScalarMul(zPow, z)
	}
	x2 := curve.ScalarMul(x, x)
	rhs = curve.Add(rhs, curve.Add(curve.ScalarMulPoint(proof.T1, x), curve.ScalarMulPoint(proof.T2, x2)))

	if !curve.Equal(lhs, rhs) {
		return false
	}

	// Recompute P = A + x*S - z*<1,G> + <z*y^n + z^2*2^n, H'> then remove
	// the mu blinding to obtain the pure <l,G>+<r,H'> commitment, and
	// finally add that*U so the IPA proof can be checked in one shot.
	yPowers := powersOfScalar(y, total)
	twoPowers := powersOfScalar(big.NewInt(2), n)
	zTwoTerm := make([]*big.Int, total)
	zPowJ := new(big.Int).Set(zPow0(z))
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			zTwoTerm[j*n+i] = curve.ScalarMul(zPowJ, twoPowers[i])
		}
		zPowJ = curve.ScalarMul(zPowJ, z)
	}
	zyTerm := make([]*big.Int, total)
	for i := 0; i < total; i++ {
		zyTerm[i] = curve.ScalarAdd(curve.ScalarMul(z, yPowers[i]), zTwoTerm[i])
	}

	hInv := curve.ScalarInv(y)
	hPrime := make([]*curve.Point, total)
	hInvPow := big.NewInt(1)
	for i := 0; i < total; i++ {
		hPrime[i] = curve.ScalarMulPoint(h[i], hInvPow)
		hInvPow = curve.ScalarMul(hInvPow, hInv)
	}

	negZ := curve.ScalarSub(new(big.Int), z)
	gSum := curve.MultiScalarMul(g, constVec(negZ, total))
	hSum := curve.MultiScalarMul(hPrime, zyTerm)

	p := curve.Add(curve.Add(curve.Add(proof.A, curve.ScalarMulPoint(proof.S, x)), gSum), hSum)
	p = curve.Sub(p, curve.ScalarMulPoint(hBlind, proof.Mu))
	p = curve.Add(p, curve.ScalarMulPoint(ipaBasePoint(), proof.That))

	return curve.IPAVerify(transcript, g, hPrime, ipaBasePoint(), p, proof.IPA)
}

func zPow0(z *big.Int) *big.Int { return curve.ScalarMul(z, z) }
