// Package khotproof implements the k-hot vector zero-knowledge proof:
// a Bulletproofs-style argument that a committed length-n binary
// vector has Hamming weight exactly k, built on top of the recursive
// inner-product argument in package ipp.
//
// Grounded on the teacher's bulletproofs package (bulletproofs/bp.go's
// Setup/Prove/Verify shape and bulletproofs/bip.go's recursive proof
// object), re-derived for the k-hot algebraic identity rather than the
// teacher's range-proof identity, and cross-checked against
// original_source/src/k_hot_proof.rs's prove/verify for exact operation
// order and constant placement.
package khotproof

import (
	"crypto/rand"
	"errors"

	"github.com/arnegrid/khotproof/curve"
	"github.com/arnegrid/khotproof/generators"
	"github.com/arnegrid/khotproof/ipp"
	"github.com/arnegrid/khotproof/polyutil"
	"github.com/arnegrid/khotproof/transcript"
)

// Error kinds. A verification failure never distinguishes a malformed
// proof body from a genuine algebraic mismatch: both collapse to
// ErrVerification so a verifier cannot leak which sub-check failed.
var (
	ErrInvalidGeneratorsLength = errors.New("khotproof: requested length exceeds generator capacity")
	ErrFormat                  = errors.New("khotproof: malformed byte encoding")
	ErrVerification            = errors.New("khotproof: verification failed")
)

// Proof is the k-hot proof: the two blinding-sum points (A, S),
// the degree-1/2 commitment points (T1, T2), the evaluated scalars,
// and the inner-product argument that closes the Hamming-weight
// identity (spec.md §3, §4.D.14).
//
// A, S, T1, T2 are kept as their raw compressed encodings rather than
// decompressed points: identity rejection is a verification-time
// concern (transcript.ValidateAndAppendPoint), not a parse-time one,
// so a proof built directly by Prove and one round-tripped through
// FromBytes behave identically under Verify.
type Proof struct {
	A, S, T1, T2             []byte
	Tx, TxBlinding, EBlinding *curve.Scalar
	IPP                      *ipp.Proof
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func onesVector(n int) []*curve.Scalar {
	out := make([]*curve.Scalar, n)
	for i := range out {
		out[i] = curve.ScalarFromUint64(1)
	}
	return out
}

// Prove constructs a k-hot proof that v, a length-n vector of 0/1
// bytes, has Hamming weight k when committed against bpGens/pcGens.
// It returns ErrInvalidGeneratorsLength before touching the transcript
// if n is not a power of two or exceeds bpGens' capacity; v's byte
// values are otherwise not checked. Bytes other than 0/1 are not
// rejected: the A commitment reads only each byte's low bit while
// a_L takes the full byte value, so such a vector yields a proof
// that does not verify.
func Prove(
	bpGens *generators.BulletproofGens,
	pcGens *generators.PedersenGens,
	tr *transcript.Transcript,
	k *curve.Scalar,
	v []byte,
) (*Proof, error) {
	n := len(v)
	if !isPowerOfTwo(n) || n > bpGens.Capacity() {
		return nil, ErrInvalidGeneratorsLength
	}
	share := bpGens.Share(0)
	g := share.G(n)
	h := share.H(n)

	aBlinding := curve.RandomScalar(rand.Reader)
	sBlinding := curve.RandomScalar(rand.Reader)

	aL := make([]*curve.Scalar, n)
	aR := make([]*curve.Scalar, n)
	sL := make([]*curve.Scalar, n)
	sR := make([]*curve.Scalar, n)
	one := curve.ScalarFromUint64(1)
	for i := 0; i < n; i++ {
		aL[i] = curve.ScalarFromUint64(uint64(v[i]))
		aR[i] = curve.NewScalar().Sub(aL[i], one)
		sL[i] = curve.RandomScalar(rand.Reader)
		sR[i] = curve.RandomScalar(rand.Reader)
	}

	// A = <a_L,G> + <a_R,H> + a_blinding*B_blinding. Since a_L_i is 0
	// or 1, each (a_L_i*G_i + a_R_i*H_i) term reduces to G_i or -H_i;
	// select branchlessly on the secret bit (spec.md §4.D.3).
	aPoint := curve.Identity()
	for i := 0; i < n; i++ {
		negH := curve.NewPoint().Negate(h[i])
		term := curve.NewPoint().Select(uint64(v[i]), g[i], negH)
		aPoint = curve.NewPoint().Add(aPoint, term)
	}
	aPoint = curve.NewPoint().Add(aPoint, curve.NewPoint().ScalarMult(aBlinding, pcGens.BBlinding))

	sPoint := curve.Identity()
	for i := 0; i < n; i++ {
		term := curve.NewPoint().Add(
			curve.NewPoint().ScalarMult(sL[i], g[i]),
			curve.NewPoint().ScalarMult(sR[i], h[i]),
		)
		sPoint = curve.NewPoint().Add(sPoint, term)
	}
	sPoint = curve.NewPoint().Add(sPoint, curve.NewPoint().ScalarMult(sBlinding, pcGens.BBlinding))

	tr.DomainSepKHotProof(uint64(n), k)
	tr.AppendPoint("A", aPoint)
	tr.AppendPoint("S", sPoint)
	y := tr.ChallengeScalar("y")
	z := tr.ChallengeScalar("z")

	yPowers := polyutil.ExpIter(y, n)
	z2 := curve.NewScalar().Mul(z, z)

	l0 := make([]*curve.Scalar, n)
	r0 := make([]*curve.Scalar, n)
	r1 := make([]*curve.Scalar, n)
	for i := 0; i < n; i++ {
		l0[i] = curve.NewScalar().Sub(aL[i], z)

		aRPlusZ := curve.NewScalar().Add(aR[i], z)
		term := curve.NewScalar().Mul(yPowers[i], aRPlusZ)
		r0[i] = curve.NewScalar().Add(term, z2)

		r1[i] = curve.NewScalar().Mul(yPowers[i], sR[i])
	}

	lPoly := polyutil.VecPoly1{A: l0, B: sL}
	rPoly := polyutil.VecPoly1{A: r0, B: r1}
	tPoly := lPoly.InnerProduct(rPoly)

	t1Blinding := curve.RandomScalar(rand.Reader)
	t2Blinding := curve.RandomScalar(rand.Reader)
	t1Point := pcGens.Commit(tPoly.T1, t1Blinding)
	t2Point := pcGens.Commit(tPoly.T2, t2Blinding)

	tr.AppendPoint("T_1", t1Point)
	tr.AppendPoint("T_2", t2Point)
	x := tr.ChallengeScalar("x")

	tx := tPoly.Eval(x)
	x2 := curve.NewScalar().Mul(x, x)
	txBlinding := curve.NewScalar().Add(
		curve.NewScalar().Mul(t1Blinding, x),
		curve.NewScalar().Mul(t2Blinding, x2),
	)
	eBlinding := curve.NewScalar().Add(aBlinding, curve.NewScalar().Mul(sBlinding, x))

	tr.AppendScalar("t_x", tx)
	tr.AppendScalar("t_x_blinding", txBlinding)
	tr.AppendScalar("e_blinding", eBlinding)
	w := tr.ChallengeScalar("w")

	q := curve.NewPoint().ScalarMult(w, pcGens.B)

	gFactors := onesVector(n)
	yInv := curve.NewScalar().Inv(y)
	hFactors := polyutil.ExpIter(yInv, n)

	lVec := lPoly.Eval(x)
	rVec := rPoly.Eval(x)

	tr.DomainSepInnerProduct(uint64(n))
	ippProof, err := ipp.Create(tr, q, gFactors, hFactors, g, h, lVec, rVec)
	if err != nil {
		return nil, err
	}

	return &Proof{
		A:          aPoint.Bytes(),
		S:          sPoint.Bytes(),
		T1:         t1Point.Bytes(),
		T2:         t2Point.Bytes(),
		Tx:         tx,
		TxBlinding: txBlinding,
		EBlinding:  eBlinding,
		IPP:        ippProof,
	}, nil
}

// Verify checks that proof attests a k-hot vector of length n against
// bpGens/pcGens under tr, binding k into the re-derived transcript the
// same way Prove did. It never reveals which internal check failed:
// any structural defect in the proof body and any algebraic mismatch
// both surface as ErrVerification (spec.md §7).
func Verify(
	proof *Proof,
	bpGens *generators.BulletproofGens,
	pcGens *generators.PedersenGens,
	tr *transcript.Transcript,
	n int,
	k *curve.Scalar,
) error {
	if !isPowerOfTwo(n) || n > bpGens.Capacity() {
		return ErrInvalidGeneratorsLength
	}

	tr.DomainSepKHotProof(uint64(n), k)

	aPoint, err := tr.ValidateAndAppendPoint("A", proof.A)
	if err != nil {
		return ErrVerification
	}
	sPoint, err := tr.ValidateAndAppendPoint("S", proof.S)
	if err != nil {
		return ErrVerification
	}
	y := tr.ChallengeScalar("y")
	z := tr.ChallengeScalar("z")

	t1Point, err := tr.ValidateAndAppendPoint("T_1", proof.T1)
	if err != nil {
		return ErrVerification
	}
	t2Point, err := tr.ValidateAndAppendPoint("T_2", proof.T2)
	if err != nil {
		return ErrVerification
	}
	x := tr.ChallengeScalar("x")

	tr.AppendScalar("t_x", proof.Tx)
	tr.AppendScalar("t_x_blinding", proof.TxBlinding)
	tr.AppendScalar("e_blinding", proof.EBlinding)
	w := tr.ChallengeScalar("w")

	// Verifier-private batching scalar: folds two algebraic checks
	// into one MSM. It must never be absorbed into the transcript.
	c := curve.RandomScalar(rand.Reader)

	tr.DomainSepInnerProduct(uint64(n))
	uSq, uInvSq, s, err := proof.IPP.VerificationScalars(n, tr)
	if err != nil {
		return ErrVerification
	}

	a := proof.IPP.A
	b := proof.IPP.B
	if a == nil || b == nil {
		return ErrVerification
	}

	share := bpGens.Share(0)
	g := share.G(n)
	h := share.H(n)

	delta := polyutil.Delta(n, y, z)
	z2 := curve.NewScalar().Mul(z, z)
	yInv := curve.NewScalar().Inv(y)
	yInvPowers := polyutil.ExpIter(yInv, n)

	txMinusAB := curve.NewScalar().Sub(proof.Tx, curve.NewScalar().Mul(a, b))
	term1 := curve.NewScalar().Mul(w, txMinusAB)

	kz2 := curve.NewScalar().Mul(k, z2)
	inner := curve.NewScalar().Add(delta, kz2)
	inner = curve.NewScalar().Sub(inner, proof.Tx)
	term2 := curve.NewScalar().Mul(c, inner)

	basepointScalar := curve.NewScalar().Add(term1, term2)

	acc := curve.Identity()
	acc = curve.NewPoint().Add(acc, aPoint)
	acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(x, sPoint))
	acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(curve.NewScalar().Mul(c, x), t1Point))
	x2 := curve.NewScalar().Mul(x, x)
	acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(curve.NewScalar().Mul(c, x2), t2Point))

	for j := range proof.IPP.L {
		acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(uSq[j], proof.IPP.L[j]))
		acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(uInvSq[j], proof.IPP.R[j]))
	}

	blindingScalar := curve.NewScalar().Neg(proof.EBlinding)
	blindingScalar = curve.NewScalar().Sub(blindingScalar, curve.NewScalar().Mul(c, proof.TxBlinding))
	acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(blindingScalar, pcGens.BBlinding))
	acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(basepointScalar, pcGens.B))

	for i := 0; i < n; i++ {
		gi := curve.NewScalar().Neg(z)
		gi = curve.NewScalar().Sub(gi, curve.NewScalar().Mul(a, s[i]))
		acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(gi, g[i]))

		bracket := curve.NewScalar().Sub(z2, curve.NewScalar().Mul(b, s[n-1-i]))
		hi := curve.NewScalar().Add(z, curve.NewScalar().Mul(yInvPowers[i], bracket))
		acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(hi, h[i]))
	}

	if !acc.IsIdentity() {
		return ErrVerification
	}
	return nil
}
