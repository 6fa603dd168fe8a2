// Package curve wraps the Ristretto255 group from circl behind the
// Scalar/Point vocabulary spec.md's data model expects, the same way
// the teacher's group package wraps circl behind its own Element/Group
// interfaces (see group/ristretto255.go).
package curve

import (
	"crypto/subtle"
	"errors"
	"io"
	"math/big"

	"github.com/cloudflare/circl/group"
)

// ErrInvalidEncoding is returned when a 32-byte encoding does not decode
// to a valid, canonical scalar or a valid, on-curve point.
var ErrInvalidEncoding = errors.New("curve: invalid encoding")

var gg = group.Ristretto255

// order is the order of the Ristretto255 scalar field, grounded on the
// same literal the teacher uses in group/ristretto255.go.
var order, _ = new(big.Int).SetString(
	"1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)

// EncodedLen is the canonical encoded length, in bytes, of both a
// Scalar and a Point.
const EncodedLen = 32

// Scalar is an element of the Ristretto255 scalar field.
type Scalar struct {
	s group.Scalar
}

// NewScalar returns the zero scalar.
func NewScalar() *Scalar {
	return &Scalar{s: gg.NewScalar()}
}

// RandomScalar samples a uniformly random non-zero scalar from rnd.
func RandomScalar(rnd io.Reader) *Scalar {
	return &Scalar{s: gg.RandomNonZeroScalar(rnd)}
}

// ScalarFromUint64 builds a scalar from a small non-negative integer.
func ScalarFromUint64(v uint64) *Scalar {
	s := gg.NewScalar()
	s.SetUint64(v)
	return &Scalar{s: s}
}

// ScalarFromWideBytes reduces an oversized byte string (e.g. a 64-byte
// transcript squeeze) modulo the scalar field order, the wide-reduction
// construction spec.md §4.A requires for challenge extraction so that
// no modulo-bias is introduced by truncating to 32 bytes first.
func ScalarFromWideBytes(b []byte) *Scalar {
	n := new(big.Int).SetBytes(b)
	n.Mod(n, order)
	s := gg.NewScalar()
	s.SetBigInt(n)
	return &Scalar{s: s}
}

// Add sets s to a+b and returns s.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	s.s = gg.NewScalar()
	s.s.Add(a.s, b.s)
	return s
}

// Sub sets s to a-b and returns s.
func (s *Scalar) Sub(a, b *Scalar) *Scalar {
	s.s = gg.NewScalar()
	s.s.Sub(a.s, b.s)
	return s
}

// Mul sets s to a*b and returns s.
func (s *Scalar) Mul(a, b *Scalar) *Scalar {
	s.s = gg.NewScalar()
	s.s.Mul(a.s, b.s)
	return s
}

// Neg sets s to -a and returns s.
func (s *Scalar) Neg(a *Scalar) *Scalar {
	s.s = gg.NewScalar()
	s.s.Neg(a.s)
	return s
}

// Inv sets s to a^-1 and returns s. a must be non-zero.
func (s *Scalar) Inv(a *Scalar) *Scalar {
	s.s = gg.NewScalar()
	s.s.Inv(a.s)
	return s
}

// Equal reports whether s and o encode the same field element.
func (s *Scalar) Equal(o *Scalar) bool {
	return s.s.IsEqual(o.s)
}

// Set sets s to a and returns s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.s = gg.NewScalar()
	s.s.Set(a.s)
	return s
}

// Bytes returns the canonical little-endian 32-byte encoding of s.
func (s *Scalar) Bytes() []byte {
	b, err := s.s.MarshalBinary()
	if err != nil {
		panic("curve: scalar failed to marshal")
	}
	return b
}

// SetCanonicalBytes decodes a canonical 32-byte scalar encoding into s.
// It rejects any encoding that is not the unique reduced representative.
func (s *Scalar) SetCanonicalBytes(b []byte) (*Scalar, error) {
	if len(b) != EncodedLen {
		return nil, ErrInvalidEncoding
	}
	sc := gg.NewScalar()
	if err := sc.UnmarshalBinary(b); err != nil {
		return nil, ErrInvalidEncoding
	}
	// Canonicity check: re-encoding must reproduce the same bytes.
	// circl's Ristretto255 scalar decode already reduces mod the group
	// order; reject inputs that were not already in reduced form.
	reenc, err := sc.MarshalBinary()
	if err != nil || subtle.ConstantTimeCompare(reenc, b) != 1 {
		return nil, ErrInvalidEncoding
	}
	s.s = sc
	return s, nil
}

// Point is an element of the Ristretto255 group.
type Point struct {
	p group.Element
}

// NewPoint returns the identity point.
func NewPoint() *Point {
	return &Point{p: gg.NewElement()}
}

// Identity returns the group identity element.
func Identity() *Point {
	return &Point{p: gg.Identity()}
}

// HashToPoint deterministically derives a point with unknown discrete
// log relative to the group's standard generator from an ASCII label, grounded on the
// teacher's MapToGroup (group/ristretto255.go), which calls the same
// circl HashToElement primitive.
func HashToPoint(label string) *Point {
	return &Point{p: gg.HashToElement([]byte(label), []byte("khotproof-generators"))}
}

// Add sets p to a+b and returns p.
func (p *Point) Add(a, b *Point) *Point {
	p.p = gg.NewElement()
	p.p.Add(a.p, b.p)
	return p
}

// Sub sets p to a-b and returns p.
func (p *Point) Sub(a, b *Point) *Point {
	neg := gg.NewElement()
	neg.Neg(b.p)
	p.p = gg.NewElement()
	p.p.Add(a.p, neg)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a *Point) *Point {
	p.p = gg.NewElement()
	p.p.Neg(a.p)
	return p
}

// ScalarMult sets p to s*a and returns p.
func (p *Point) ScalarMult(s *Scalar, a *Point) *Point {
	p.p = gg.NewElement()
	p.p.Mul(a.p, s.s)
	return p
}

// BaseScalarMult sets p to s times the group's standard generator and
// returns p.
func (p *Point) BaseScalarMult(s *Scalar) *Point {
	p.p = gg.NewElement()
	p.p.MulGen(s.s)
	return p
}

// Set sets p to a and returns p.
func (p *Point) Set(a *Point) *Point {
	p.p = gg.NewElement()
	p.p.Set(a.p)
	return p
}

// Select sets p to a if cond == 1, or to b if cond == 0, with no
// data-dependent branch: it computes b + cond*(a-b) purely
// arithmetically, so the sequence of group operations performed is
// identical regardless of cond. This is the primitive spec.md §4.D.3
// requires for the k-hot prover's A-commitment construction.
func (p *Point) Select(cond uint64, a, b *Point) *Point {
	cond &= 1
	diff := NewPoint().Sub(a, b)
	weighted := NewPoint().ScalarMult(ScalarFromUint64(cond), diff)
	p.p = gg.NewElement()
	p.p.Add(b.p, weighted.p)
	return p
}

// IsIdentity reports whether p is the group identity.
func (p *Point) IsIdentity() bool {
	return p.p.IsIdentity()
}

// Equal reports whether p and o are the same group element.
func (p *Point) Equal(o *Point) bool {
	return p.p.IsEqual(o.p)
}

// Bytes returns the canonical 32-byte compressed encoding of p.
func (p *Point) Bytes() []byte {
	b, err := p.p.MarshalBinary()
	if err != nil {
		panic("curve: point failed to marshal")
	}
	return b
}

// SetCompressedBytes decodes a 32-byte compressed point encoding into
// p. It returns ErrInvalidEncoding if the bytes do not decode to a
// valid group element.
func (p *Point) SetCompressedBytes(b []byte) (*Point, error) {
	if len(b) != EncodedLen {
		return nil, ErrInvalidEncoding
	}
	el := gg.NewElement()
	if err := el.UnmarshalBinary(b); err != nil {
		return nil, ErrInvalidEncoding
	}
	p.p = el
	return p, nil
}
