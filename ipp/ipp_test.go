package ipp

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnegrid/khotproof/curve"
	"github.com/arnegrid/khotproof/generators"
	"github.com/arnegrid/khotproof/polyutil"
	"github.com/arnegrid/khotproof/transcript"
)

func randomVector(n int) []*curve.Scalar {
	out := make([]*curve.Scalar, n)
	for i := range out {
		out[i] = curve.RandomScalar(rand.Reader)
	}
	return out
}

func onesVector(n int) []*curve.Scalar {
	out := make([]*curve.Scalar, n)
	for i := range out {
		out[i] = curve.ScalarFromUint64(1)
	}
	return out
}

func commitP(q *curve.Point, gFactors, hFactors []*curve.Scalar, g, h []*curve.Point, l, r []*curve.Scalar) *curve.Point {
	acc := curve.Identity()
	for i := range l {
		gi := curve.NewPoint().ScalarMult(gFactors[i], g[i])
		acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(l[i], gi))
	}
	for i := range r {
		hi := curve.NewPoint().ScalarMult(hFactors[i], h[i])
		acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(r[i], hi))
	}
	t := polyutil.ScalarProduct(l, r)
	acc = curve.NewPoint().Add(acc, curve.NewPoint().ScalarMult(t, q))
	return acc
}

func TestCreateAndVerifyRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 32} {
		n := n
		t.Run("", func(t *testing.T) {
			gens := generators.New(n)
			share := gens.Share(0)
			g := share.G(n)
			h := share.H(n)
			q := curve.HashToPoint("ipp-test-Q")

			l := randomVector(n)
			r := randomVector(n)
			gFactors := onesVector(n)
			hFactors := onesVector(n)

			P := commitP(q, gFactors, hFactors, g, h, l, r)

			proveTr := transcript.New("ipp-test")
			proveTr.DomainSepInnerProduct(uint64(n))
			proof, err := Create(proveTr, q, gFactors, hFactors, g, h, append([]*curve.Scalar{}, l...), append([]*curve.Scalar{}, r...))
			require.NoError(t, err)

			verifyTr := transcript.New("ipp-test")
			verifyTr.DomainSepInnerProduct(uint64(n))
			ok, err := proof.Verify(verifyTr, q, gFactors, hFactors, g, h, P)
			require.NoError(t, err)
			require.True(t, ok, "valid inner-product proof rejected for n=%d", n)
		})
	}
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	n := 8
	gens := generators.New(n)
	share := gens.Share(0)
	g := share.G(n)
	h := share.H(n)
	q := curve.HashToPoint("ipp-test-Q-tamper")

	l := randomVector(n)
	r := randomVector(n)
	gFactors := onesVector(n)
	hFactors := onesVector(n)

	P := commitP(q, gFactors, hFactors, g, h, l, r)

	proveTr := transcript.New("ipp-test")
	proveTr.DomainSepInnerProduct(uint64(n))
	proof, err := Create(proveTr, q, gFactors, hFactors, g, h, append([]*curve.Scalar{}, l...), append([]*curve.Scalar{}, r...))
	require.NoError(t, err)

	// Baseline: the untampered proof must actually be accepted, so the
	// rejection asserted below reflects a real accept->reject
	// transition rather than a verifier that always returns false.
	baselineTr := transcript.New("ipp-test")
	baselineTr.DomainSepInnerProduct(uint64(n))
	baselineOK, err := proof.Verify(baselineTr, q, gFactors, hFactors, g, h, P)
	require.NoError(t, err)
	require.True(t, baselineOK, "untampered proof was rejected")

	proof.A = curve.NewScalar().Add(proof.A, curve.ScalarFromUint64(1))

	verifyTr := transcript.New("ipp-test")
	verifyTr.DomainSepInnerProduct(uint64(n))
	ok, err := proof.Verify(verifyTr, q, gFactors, hFactors, g, h, P)
	require.NoError(t, err)
	require.False(t, ok, "tampered proof accepted")
}

func TestVerifyRejectsWrongTranscriptLabel(t *testing.T) {
	n := 4
	gens := generators.New(n)
	share := gens.Share(0)
	g := share.G(n)
	h := share.H(n)
	q := curve.HashToPoint("ipp-test-Q-label")

	l := randomVector(n)
	r := randomVector(n)
	gFactors := onesVector(n)
	hFactors := onesVector(n)

	P := commitP(q, gFactors, hFactors, g, h, l, r)

	proveTr := transcript.New("ipp-test")
	proveTr.DomainSepInnerProduct(uint64(n))
	proof, err := Create(proveTr, q, gFactors, hFactors, g, h, append([]*curve.Scalar{}, l...), append([]*curve.Scalar{}, r...))
	require.NoError(t, err)

	// Baseline: the same proof verified against a matching transcript
	// label must accept, so the mismatched-label case below exercises
	// a real accept->reject transition.
	baselineTr := transcript.New("ipp-test")
	baselineTr.DomainSepInnerProduct(uint64(n))
	baselineOK, err := proof.Verify(baselineTr, q, gFactors, hFactors, g, h, P)
	require.NoError(t, err)
	require.True(t, baselineOK, "proof rejected against its own transcript label")

	verifyTr := transcript.New("different-application-label")
	verifyTr.DomainSepInnerProduct(uint64(n))
	ok, err := proof.Verify(verifyTr, q, gFactors, hFactors, g, h, P)
	require.NoError(t, err)
	require.False(t, ok, "proof verified against a transcript keyed with a different application label")
}

func TestCreateRejectsNonPowerOfTwo(t *testing.T) {
	n := 3
	gens := generators.New(4)
	share := gens.Share(0)
	g := share.G(n)
	h := share.H(n)
	q := curve.HashToPoint("ipp-test-Q-npot")

	l := randomVector(n)
	r := randomVector(n)
	gFactors := onesVector(n)
	hFactors := onesVector(n)

	tr := transcript.New("ipp-test")
	_, err := Create(tr, q, gFactors, hFactors, g, h, l, r)
	require.ErrorIs(t, err, ErrVectorLength)
}
