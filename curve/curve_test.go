package curve

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarArithmetic(t *testing.T) {
	a := RandomScalar(rand.Reader)
	b := RandomScalar(rand.Reader)

	sum := NewScalar().Add(a, b)
	diff := NewScalar().Sub(sum, b)
	require.True(t, diff.Equal(a), "(a+b)-b != a")

	inv := NewScalar().Inv(a)
	one := NewScalar().Mul(a, inv)
	require.True(t, one.Equal(ScalarFromUint64(1)), "a * a^-1 != 1")
}

func TestScalarCanonicalRoundTrip(t *testing.T) {
	s := RandomScalar(rand.Reader)
	enc := s.Bytes()
	require.Len(t, enc, EncodedLen)

	decoded, err := NewScalar().SetCanonicalBytes(enc)
	require.NoError(t, err)
	require.True(t, decoded.Equal(s), "round-tripped scalar does not match original")
}

func TestScalarNonCanonicalRejected(t *testing.T) {
	// 2^255-19 (little-endian) exceeds the scalar field order, so it is
	// not a canonical representative.
	nonCanonical := make([]byte, EncodedLen)
	nonCanonical[0] = 0xed
	for i := 1; i < 31; i++ {
		nonCanonical[i] = 0xff
	}
	nonCanonical[31] = 0x7f
	_, err := NewScalar().SetCanonicalBytes(nonCanonical)
	require.Error(t, err, "expected non-canonical scalar encoding to be rejected")
}

func TestPointArithmeticAndEncoding(t *testing.T) {
	s := RandomScalar(rand.Reader)
	p := NewPoint().BaseScalarMult(s)

	enc := p.Bytes()
	require.Len(t, enc, EncodedLen)

	decoded, err := NewPoint().SetCompressedBytes(enc)
	require.NoError(t, err)
	require.True(t, decoded.Equal(p), "round-tripped point does not match original")

	sum := NewPoint().Add(p, p)
	doubled := NewPoint().ScalarMult(ScalarFromUint64(2), p)
	require.True(t, sum.Equal(doubled), "p+p != 2*p")

	zero := NewPoint().Sub(p, p)
	require.True(t, zero.IsIdentity(), "p-p is not the identity")
}

func TestIdentityReportsIsIdentity(t *testing.T) {
	id := Identity()
	require.True(t, id.IsIdentity())
}

func TestHashToPointDeterministic(t *testing.T) {
	a := HashToPoint("label-one")
	b := HashToPoint("label-one")
	c := HashToPoint("label-two")
	require.True(t, a.Equal(b), "HashToPoint is not deterministic for a fixed label")
	require.False(t, a.Equal(c), "HashToPoint collided across distinct labels")
}

func TestSelectPicksOperandByCondition(t *testing.T) {
	g := HashToPoint("select-test-g")
	h := HashToPoint("select-test-h")

	chosen1 := NewPoint().Select(1, g, h)
	require.True(t, chosen1.Equal(g), "Select(1, g, h) != g")

	chosen0 := NewPoint().Select(0, g, h)
	require.True(t, chosen0.Equal(h), "Select(0, g, h) != h")
}
