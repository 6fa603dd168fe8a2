package transcript

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnegrid/khotproof/curve"
)

func TestChallengesAreDeterministicGivenSameTranscript(t *testing.T) {
	one := curve.ScalarFromUint64(1)

	t1 := New("test-label")
	t1.DomainSepKHotProof(8, one)
	y1 := t1.ChallengeScalar("y")
	z1 := t1.ChallengeScalar("z")

	t2 := New("test-label")
	t2.DomainSepKHotProof(8, one)
	y2 := t2.ChallengeScalar("y")
	z2 := t2.ChallengeScalar("z")

	require.True(t, y1.Equal(y2), "identical transcripts produced different y challenges")
	require.True(t, z1.Equal(z2), "identical transcripts produced different z challenges")
	require.False(t, y1.Equal(z1), "distinct labels produced the same challenge")
}

func TestLabelMismatchChangesChallenges(t *testing.T) {
	one := curve.ScalarFromUint64(1)

	a := New("LabelA")
	a.DomainSepKHotProof(8, one)
	ya := a.ChallengeScalar("y")

	b := New("LabelB")
	b.DomainSepKHotProof(8, one)
	yb := b.ChallengeScalar("y")

	require.False(t, ya.Equal(yb), "mismatched application labels produced identical challenges")
}

func TestValidateAndAppendPointRejectsIdentity(t *testing.T) {
	tr := New("test")
	idBytes := curve.Identity().Bytes()
	_, err := tr.ValidateAndAppendPoint("A", idBytes)
	require.ErrorIs(t, err, ErrBadPoint)
}

func TestValidateAndAppendPointRejectsMalformed(t *testing.T) {
	tr := New("test")
	garbage := make([]byte, curve.EncodedLen)
	for i := range garbage {
		garbage[i] = 0xff
	}
	_, err := tr.ValidateAndAppendPoint("A", garbage)
	require.ErrorIs(t, err, ErrBadPoint)
}

func TestValidateAndAppendPointAcceptsValidNonIdentity(t *testing.T) {
	tr := New("test")
	p := curve.NewPoint().BaseScalarMult(curve.RandomScalar(rand.Reader))
	decoded, err := tr.ValidateAndAppendPoint("A", p.Bytes())
	require.NoError(t, err)
	require.True(t, decoded.Equal(p), "decoded point does not match original")
}
