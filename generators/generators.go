// Package generators supplies the deterministic generator tables the
// k-hot prover and verifier share: a pair of Pedersen base points and
// two length-n sequences of vector-commitment generators. Grounded on
// the teacher's bulletproofs.Setup (bulletproofs/bp.go), which derives
// every generator via a seeded MapToGroup/HashToElement call so prover
// and verifier can regenerate the same tables from nothing but a
// capacity.
package generators

import (
	"fmt"

	"github.com/arnegrid/khotproof/curve"
)

const (
	seedB         = "khotproof/PedersenGens/B"
	seedBBlinding = "khotproof/PedersenGens/B_blinding"
	seedG         = "khotproof/BulletproofGens/G"
	seedH         = "khotproof/BulletproofGens/H"
)

// PedersenGens holds the pair (B, B_blinding) used for scalar Pedersen
// commitments: commit(v, r) = v*B + r*B_blinding.
type PedersenGens struct {
	B         *curve.Point
	BBlinding *curve.Point
}

// NewPedersenGens derives the canonical Pedersen base points.
func NewPedersenGens() *PedersenGens {
	return &PedersenGens{
		B:         curve.HashToPoint(seedB),
		BBlinding: curve.HashToPoint(seedBBlinding),
	}
}

// Commit computes v*B + r*B_blinding.
func (p *PedersenGens) Commit(v, r *curve.Scalar) *curve.Point {
	vB := curve.NewPoint().ScalarMult(v, p.B)
	rH := curve.NewPoint().ScalarMult(r, p.BBlinding)
	return curve.NewPoint().Add(vB, rH)
}

// BulletproofGens supplies the two length-capacity generator sequences
// G and H used for vector Pedersen commitments, plus the auxiliary
// "share" selector spec.md §6 describes; multi-party aggregation over
// shares beyond share 0 is out of scope (spec.md §1 non-goals), so
// Share returns a view only for share 0 and panics for any other index.
type BulletproofGens struct {
	capacity int
	gVec     []*curve.Point
	hVec     []*curve.Point
}

// New derives a BulletproofGens table with room for `capacity` vector
// entries. Each entry is independently derived via HashToPoint so no
// discrete-log relation between any two generators is known.
func New(capacity int) *BulletproofGens {
	g := make([]*curve.Point, capacity)
	h := make([]*curve.Point, capacity)
	for i := 0; i < capacity; i++ {
		g[i] = curve.HashToPoint(fmt.Sprintf("%s/%d", seedG, i))
		h[i] = curve.HashToPoint(fmt.Sprintf("%s/%d", seedH, i))
	}
	return &BulletproofGens{capacity: capacity, gVec: g, hVec: h}
}

// Capacity returns the maximum vector length this table supports.
func (bp *BulletproofGens) Capacity() int {
	return bp.capacity
}

// GensShare is the view onto a BulletproofGens exposed to a single
// party; with only share 0 supported, it always exposes the whole
// table's first n entries.
type GensShare struct {
	gens *BulletproofGens
}

// Share returns the generator view for party index `share`. Only
// share 0 is implemented; non-zero values panic, since multi-party
// aggregation is explicitly out of scope (spec.md §1).
func (bp *BulletproofGens) Share(share int) GensShare {
	if share != 0 {
		panic("generators: multi-party aggregation is not supported, share must be 0")
	}
	return GensShare{gens: bp}
}

// G returns the first n entries of the G generator sequence.
func (s GensShare) G(n int) []*curve.Point {
	return s.gens.gVec[:n]
}

// H returns the first n entries of the H generator sequence.
func (s GensShare) H(n int) []*curve.Point {
	return s.gens.hVec[:n]
}
