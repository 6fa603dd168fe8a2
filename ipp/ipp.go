// Package ipp implements the recursive, logarithmic-depth inner-product
// argument the k-hot prover and verifier delegate to (spec.md §4.C):
// given public Q and tweaked base vectors G', H' derived from G, H and
// per-index factors, it proves <l, r> = t without revealing l or r,
// using O(log n) group elements.
//
// Grounded on the teacher's computeBipRecursive/Verify pair
// (bulletproofs/bip.go), restructured to the Bulletproofs-standard
// shape spec.md §4.C describes: tweaked generator vectors folded
// alongside the secret vectors at every halving round, driven by a
// shared labelled transcript rather than the teacher's untyped
// two-point SHA-256 hash.
package ipp

import (
	"errors"

	"github.com/arnegrid/khotproof/curve"
	"github.com/arnegrid/khotproof/polyutil"
	"github.com/arnegrid/khotproof/transcript"
)

// ErrVectorLength is returned when the input vectors disagree in
// length or are not a power of two.
var ErrVectorLength = errors.New("ipp: vectors must share a power-of-two length")

// Proof is the recursive halving proof: a round of (L, R) per halving,
// plus the final folded scalars (a, b).
type Proof struct {
	L, R []*curve.Point
	A, B *curve.Scalar
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func tweakBases(factors []*curve.Scalar, base []*curve.Point) []*curve.Point {
	out := make([]*curve.Point, len(base))
	for i := range base {
		out[i] = curve.NewPoint().ScalarMult(factors[i], base[i])
	}
	return out
}

// Create builds an inner-product proof that <l, r> = t, where
// P = <l, G'> + <r, H'> + t*Q for G'_i = gFactors_i*G_i and
// H'_i = hFactors_i*H_i. The transcript must already have absorbed
// everything the caller wants bound before the first halving
// challenge; Create absorbs only the per-round L, R values.
func Create(
	tr *transcript.Transcript,
	q *curve.Point,
	gFactors, hFactors []*curve.Scalar,
	g, h []*curve.Point,
	l, r []*curve.Scalar,
) (*Proof, error) {
	n := len(l)
	if n == 0 || !isPowerOfTwo(n) || len(r) != n || len(g) != n || len(h) != n ||
		len(gFactors) != n || len(hFactors) != n {
		return nil, ErrVectorLength
	}

	gPrime := tweakBases(gFactors, g)
	hPrime := tweakBases(hFactors, h)

	logN := 0
	for m := n; m > 1; m >>= 1 {
		logN++
	}

	proof := &Proof{
		L: make([]*curve.Point, 0, logN),
		R: make([]*curve.Point, 0, logN),
	}

	for len(l) > 1 {
		m := len(l) / 2

		lLo, lHi := l[:m], l[m:]
		rLo, rHi := r[:m], r[m:]
		gLo, gHi := gPrime[:m], gPrime[m:]
		hLo, hHi := hPrime[:m], hPrime[m:]

		cL := polyutil.ScalarProduct(lLo, rHi)
		cR := polyutil.ScalarProduct(lHi, rLo)

		L := vectorCommit(lLo, gHi, rHi, hLo)
		L = curve.NewPoint().Add(L, curve.NewPoint().ScalarMult(cL, q))

		R := vectorCommit(lHi, gLo, rLo, hHi)
		R = curve.NewPoint().Add(R, curve.NewPoint().ScalarMult(cR, q))

		tr.AppendPoint("L", L)
		tr.AppendPoint("R", R)
		u := tr.ChallengeScalar("u")
		uInv := curve.NewScalar().Inv(u)

		l = foldScalars(lLo, lHi, u, uInv)
		r = foldScalars(rLo, rHi, uInv, u)
		gPrime = foldPoints(gLo, gHi, uInv, u)
		hPrime = foldPoints(hLo, hHi, u, uInv)

		proof.L = append(proof.L, L)
		proof.R = append(proof.R, R)
	}

	proof.A = l[0]
	proof.B = r[0]
	return proof, nil
}

// vectorCommit returns <a, basesA> + <b, basesB>.
func vectorCommit(a []*curve.Scalar, basesA []*curve.Point, b []*curve.Scalar, basesB []*curve.Point) *curve.Point {
	acc := curve.Identity()
	for i := range a {
		acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(a[i], basesA[i]))
	}
	for i := range b {
		acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(b[i], basesB[i]))
	}
	return acc
}

func foldScalars(lo, hi []*curve.Scalar, cLo, cHi *curve.Scalar) []*curve.Scalar {
	out := make([]*curve.Scalar, len(lo))
	for i := range lo {
		a := curve.NewScalar().Mul(lo[i], cLo)
		b := curve.NewScalar().Mul(hi[i], cHi)
		out[i] = curve.NewScalar().Add(a, b)
	}
	return out
}

func foldPoints(lo, hi []*curve.Point, cLo, cHi *curve.Scalar) []*curve.Point {
	out := make([]*curve.Point, len(lo))
	for i := range lo {
		a := curve.NewPoint().ScalarMult(cLo, lo[i])
		b := curve.NewPoint().ScalarMult(cHi, hi[i])
		out[i] = curve.NewPoint().Add(a, b)
	}
	return out
}

// VerificationScalars replays the halving challenges bound into the
// proof's L/R sequence and returns (u^2, u^-2, s), where s_i is the
// product of u_j^{+-1} selected by the binary expansion of i
// (spec.md §4.C). The caller combines these with A, B and the
// generator tables in its own multi-scalar multiplication; this
// function does not itself decide accept/reject.
func (p *Proof) VerificationScalars(n int, tr *transcript.Transcript) ([]*curve.Scalar, []*curve.Scalar, []*curve.Scalar, error) {
	logN := len(p.L)
	if !isPowerOfTwo(n) || len(p.R) != logN || (1<<uint(logN)) != n {
		return nil, nil, nil, ErrVectorLength
	}

	u := make([]*curve.Scalar, logN)
	uInv := make([]*curve.Scalar, logN)
	uSq := make([]*curve.Scalar, logN)
	uInvSq := make([]*curve.Scalar, logN)

	for j := 0; j < logN; j++ {
		tr.AppendPoint("L", p.L[j])
		tr.AppendPoint("R", p.R[j])
		uj := tr.ChallengeScalar("u")
		u[j] = uj
		uInv[j] = curve.NewScalar().Inv(uj)
		uSq[j] = curve.NewScalar().Mul(uj, uj)
		uInvSq[j] = curve.NewScalar().Mul(uInv[j], uInv[j])
	}

	s := make([]*curve.Scalar, n)
	for i := 0; i < n; i++ {
		prod := curve.ScalarFromUint64(1)
		for j := 0; j < logN; j++ {
			bit := (i >> uint(logN-1-j)) & 1
			if bit == 1 {
				prod = curve.NewScalar().Mul(prod, u[j])
			} else {
				prod = curve.NewScalar().Mul(prod, uInv[j])
			}
		}
		s[i] = prod
	}

	return uSq, uInvSq, s, nil
}

// Verify performs a direct, non-batched check that the proof attests
// P = <a,G'> + <b,H'> + (a*b)*Q, folding G, H itself via
// VerificationScalars. It is provided for standalone testing of this
// package; the k-hot verifier instead folds the equivalent check into
// its own single aggregated multi-scalar multiplication (spec.md §4.E).
func (p *Proof) Verify(
	tr *transcript.Transcript,
	q *curve.Point,
	gFactors, hFactors []*curve.Scalar,
	g, h []*curve.Point,
	P *curve.Point,
) (bool, error) {
	n := len(g)
	uSq, uInvSq, s, err := p.VerificationScalars(n, tr)
	if err != nil {
		return false, err
	}

	gPrime := curve.Identity()
	hPrime := curve.Identity()
	for i := 0; i < n; i++ {
		gCoeff := curve.NewScalar().Mul(p.A, s[i])
		gCoeff = curve.NewScalar().Mul(gCoeff, gFactors[i])
		gPrime = curve.NewPoint().Add(gPrime, curve.NewPoint().ScalarMult(gCoeff, g[i]))

		hCoeff := curve.NewScalar().Mul(p.B, s[n-1-i])
		hCoeff = curve.NewScalar().Mul(hCoeff, hFactors[i])
		hPrime = curve.NewPoint().Add(hPrime, curve.NewPoint().ScalarMult(hCoeff, h[i]))
	}

	ab := curve.NewScalar().Mul(p.A, p.B)
	rhs := curve.NewPoint().Add(gPrime, hPrime)
	rhs = curve.NewPoint().Add(rhs, curve.NewPoint().ScalarMult(ab, q))

	// Unrolling the per-round fold (l'=u·l_lo+u⁻¹·l_hi, G''=u⁻¹·G'_lo+u·G'_hi,
	// etc.) shows the folded commitment relates to the original one by
	// P = a·G_fold + b·H_fold + a·b·Q - Σ(u²·L_j + u⁻²·R_j), not +.
	for j := range p.L {
		rhs = curve.NewPoint().Sub(rhs, curve.NewPoint().ScalarMult(uSq[j], p.L[j]))
		rhs = curve.NewPoint().Sub(rhs, curve.NewPoint().ScalarMult(uInvSq[j], p.R[j]))
	}

	return P.Equal(rhs), nil
}
