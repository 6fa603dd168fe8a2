package khotproof

import (
	"github.com/arnegrid/khotproof/curve"
	"github.com/arnegrid/khotproof/ipp"
)

const scalarLen = curve.EncodedLen

// ToBytes serializes p into the canonical layout (spec.md §4.F):
// A, S, T1, T2, t_x, t_x_blinding, e_blinding, then the inner-product
// argument's (L_j, R_j) pairs in round order, then its final (a, b).
func (p *Proof) ToBytes() []byte {
	logN := len(p.IPP.L)
	out := make([]byte, 0, (7+2*logN+2)*scalarLen)
	out = append(out, p.A...)
	out = append(out, p.S...)
	out = append(out, p.T1...)
	out = append(out, p.T2...)
	out = append(out, p.Tx.Bytes()...)
	out = append(out, p.TxBlinding.Bytes()...)
	out = append(out, p.EBlinding.Bytes()...)
	for j := 0; j < logN; j++ {
		out = append(out, p.IPP.L[j].Bytes()...)
		out = append(out, p.IPP.R[j].Bytes()...)
	}
	out = append(out, p.IPP.A.Bytes()...)
	out = append(out, p.IPP.B.Bytes()...)
	return out
}

// FromBytes parses the canonical layout back into a Proof. The vector
// length n is not itself encoded; it is recovered from the total byte
// length, which fixes log2(n) uniquely (spec.md §3's length
// invariant). FromBytes rejects a malformed total length, any
// non-canonical scalar, and any inner-product L/R entry that fails to
// decompress, but does not itself reject identity points for A, S,
// T1, T2 — that check is Verify's job via validate_and_append_point,
// so a syntactically valid but semantically-rejectable proof parses
// successfully and fails only at verification time.
func FromBytes(b []byte) (*Proof, error) {
	if len(b) < 7*scalarLen || len(b)%scalarLen != 0 {
		return nil, ErrFormat
	}
	totalWords := len(b) / scalarLen
	rem := totalWords - 9 // 7 fixed fields + final (a, b)
	if rem < 0 || rem%2 != 0 {
		return nil, ErrFormat
	}
	logN := rem / 2

	off := 0
	next := func() []byte {
		chunk := b[off : off+scalarLen]
		off += scalarLen
		return chunk
	}

	a := append([]byte{}, next()...)
	s := append([]byte{}, next()...)
	t1 := append([]byte{}, next()...)
	t2 := append([]byte{}, next()...)

	tx, err := curve.NewScalar().SetCanonicalBytes(next())
	if err != nil {
		return nil, ErrFormat
	}
	txBlinding, err := curve.NewScalar().SetCanonicalBytes(next())
	if err != nil {
		return nil, ErrFormat
	}
	eBlinding, err := curve.NewScalar().SetCanonicalBytes(next())
	if err != nil {
		return nil, ErrFormat
	}

	ls := make([]*curve.Point, logN)
	rs := make([]*curve.Point, logN)
	for j := 0; j < logN; j++ {
		lp, err := curve.NewPoint().SetCompressedBytes(next())
		if err != nil {
			return nil, ErrFormat
		}
		rp, err := curve.NewPoint().SetCompressedBytes(next())
		if err != nil {
			return nil, ErrFormat
		}
		ls[j] = lp
		rs[j] = rp
	}

	ippA, err := curve.NewScalar().SetCanonicalBytes(next())
	if err != nil {
		return nil, ErrFormat
	}
	ippB, err := curve.NewScalar().SetCanonicalBytes(next())
	if err != nil {
		return nil, ErrFormat
	}

	return &Proof{
		A:          a,
		S:          s,
		T1:         t1,
		T2:         t2,
		Tx:         tx,
		TxBlinding: txBlinding,
		EBlinding:  eBlinding,
		IPP: &ipp.Proof{
			L: ls,
			R: rs,
			A: ippA,
			B: ippB,
		},
	}, nil
}
