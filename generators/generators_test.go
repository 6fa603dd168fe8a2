package generators

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnegrid/khotproof/curve"
)

func TestGeneratorsAreDeterministic(t *testing.T) {
	a := New(8)
	b := New(8)
	for i := 0; i < 8; i++ {
		require.True(t, a.Share(0).G(8)[i].Equal(b.Share(0).G(8)[i]), "G[%d] differs across independently constructed tables", i)
		require.True(t, a.Share(0).H(8)[i].Equal(b.Share(0).H(8)[i]), "H[%d] differs across independently constructed tables", i)
	}
}

func TestGeneratorsAreDistinct(t *testing.T) {
	g := New(4)
	seen := map[string]bool{}
	for _, p := range append(append([]*curve.Point{}, g.Share(0).G(4)...), g.Share(0).H(4)...) {
		k := string(p.Bytes())
		require.False(t, seen[k], "duplicate generator encoding found")
		seen[k] = true
	}
}

func TestPedersenCommitBinding(t *testing.T) {
	pc := NewPedersenGens()
	v := curve.RandomScalar(rand.Reader)
	r1 := curve.RandomScalar(rand.Reader)
	r2 := curve.RandomScalar(rand.Reader)
	require.False(t, r1.Equal(r2), "test requires distinct blindings")

	c1 := pc.Commit(v, r1)
	c2 := pc.Commit(v, r2)
	require.False(t, c1.Equal(c2), "commitments with distinct blindings collided")
}

func TestShareNonZeroPanics(t *testing.T) {
	require.Panics(t, func() {
		New(4).Share(1)
	})
}
