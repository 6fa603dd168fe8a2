// Package polyutil provides the vector/scalar-polynomial building
// blocks the k-hot prover assembles l(X) and r(X) from: degree-1
// vector polynomials, the resulting degree-2 scalar polynomial, power
// iterators, and the δ(y,z) correction term (spec.md §4.B).
//
// Grounded on the teacher's vector helpers (bulletproofs/vector.go:
// VectorAdd, VectorScalarMul, VectorMul, VectorInnerProduct) and on the
// powerOf/ScalarProduct helpers bp.go and multibp.go call but the
// retrieved teacher snapshot does not itself define — this package
// supplies them properly, generalized from math/big to curve.Scalar.
package polyutil

import "github.com/arnegrid/khotproof/curve"

// ScalarProduct returns the inner product <a, b>.
func ScalarProduct(a, b []*curve.Scalar) *curve.Scalar {
	if len(a) != len(b) {
		panic("polyutil: vectors must have equal length")
	}
	sum := curve.NewScalar()
	for i := range a {
		term := curve.NewScalar().Mul(a[i], b[i])
		sum = curve.NewScalar().Add(sum, term)
	}
	return sum
}

// VectorAdd returns the element-wise sum of a and b.
func VectorAdd(a, b []*curve.Scalar) []*curve.Scalar {
	if len(a) != len(b) {
		panic("polyutil: vectors must have equal length")
	}
	out := make([]*curve.Scalar, len(a))
	for i := range a {
		out[i] = curve.NewScalar().Add(a[i], b[i])
	}
	return out
}

// VectorSub returns the element-wise difference a - b.
func VectorSub(a, b []*curve.Scalar) []*curve.Scalar {
	if len(a) != len(b) {
		panic("polyutil: vectors must have equal length")
	}
	out := make([]*curve.Scalar, len(a))
	for i := range a {
		out[i] = curve.NewScalar().Sub(a[i], b[i])
	}
	return out
}

// VectorScalarMul returns a with every entry multiplied by s.
func VectorScalarMul(a []*curve.Scalar, s *curve.Scalar) []*curve.Scalar {
	out := make([]*curve.Scalar, len(a))
	for i := range a {
		out[i] = curve.NewScalar().Mul(a[i], s)
	}
	return out
}

// VectorMul returns the element-wise (Hadamard) product of a and b.
func VectorMul(a, b []*curve.Scalar) []*curve.Scalar {
	if len(a) != len(b) {
		panic("polyutil: vectors must have equal length")
	}
	out := make([]*curve.Scalar, len(a))
	for i := range a {
		out[i] = curve.NewScalar().Mul(a[i], b[i])
	}
	return out
}

// ExpIter returns the power sequence 1, a, a^2, ..., a^(n-1) as an
// eagerly computed slice of n entries; it is not a lazy iterator, and
// each call recomputes the sequence from 1. Grounded on the teacher's powerOf helper
// (referenced from bulletproofs/bp.go and multibp.go).
func ExpIter(a *curve.Scalar, n int) []*curve.Scalar {
	out := make([]*curve.Scalar, n)
	if n == 0 {
		return out
	}
	out[0] = curve.ScalarFromUint64(1)
	for i := 1; i < n; i++ {
		out[i] = curve.NewScalar().Mul(out[i-1], a)
	}
	return out
}

// SumOfPowers returns <1, exp_iter(a)> over n terms, i.e. 1 + a + ... + a^(n-1).
func SumOfPowers(a *curve.Scalar, n int) *curve.Scalar {
	sum := curve.NewScalar()
	cur := curve.ScalarFromUint64(1)
	for i := 0; i < n; i++ {
		sum = curve.NewScalar().Add(sum, cur)
		cur = curve.NewScalar().Mul(cur, a)
	}
	return sum
}

// Delta computes δ(y,z) = (z - z^2)*<1, y^n> - z^3*n, the scalar
// correction term that closes the k-hot algebraic identity (spec.md
// §4.B, §8's "δ law"), matching original_source/src/k_hot_proof.rs's
// `delta` function exactly, including accumulating the sum of powers
// without assuming it fits outside the field.
func Delta(n int, y, z *curve.Scalar) *curve.Scalar {
	z2 := curve.NewScalar().Mul(z, z)
	z3 := curve.NewScalar().Mul(z2, z)
	sumY := SumOfPowers(y, n)

	zMinusZ2 := curve.NewScalar().Sub(z, z2)
	left := curve.NewScalar().Mul(zMinusZ2, sumY)

	nScalar := curve.NewScalar()
	for i := 0; i < n; i++ {
		nScalar = curve.NewScalar().Add(nScalar, curve.ScalarFromUint64(1))
	}
	right := curve.NewScalar().Mul(z3, nScalar)

	return curve.NewScalar().Sub(left, right)
}

// VecPoly1 is a degree-1 vector polynomial a + b*X over F_l^n.
type VecPoly1 struct {
	A, B []*curve.Scalar
}

// ZeroVecPoly1 returns the all-zero VecPoly1 of length n.
func ZeroVecPoly1(n int) VecPoly1 {
	a := make([]*curve.Scalar, n)
	b := make([]*curve.Scalar, n)
	for i := 0; i < n; i++ {
		a[i] = curve.NewScalar()
		b[i] = curve.NewScalar()
	}
	return VecPoly1{A: a, B: b}
}

// Eval returns a + b*x.
func (p VecPoly1) Eval(x *curve.Scalar) []*curve.Scalar {
	return VectorAdd(p.A, VectorScalarMul(p.B, x))
}

// InnerProduct computes the Poly2 t(X) = <l(X), r(X)> given VecPoly1s
// l = (l0, l1) and r = (r0, r1): t0 = <l0,r0>, t1 = <l0,r1>+<l1,r0>,
// t2 = <l1,r1>.
func (p VecPoly1) InnerProduct(q VecPoly1) Poly2 {
	t0 := ScalarProduct(p.A, q.A)
	t2 := ScalarProduct(p.B, q.B)

	lSum := VectorAdd(p.A, p.B)
	rSum := VectorAdd(q.A, q.B)
	t1 := ScalarProduct(lSum, rSum)
	t1 = curve.NewScalar().Sub(t1, t0)
	t1 = curve.NewScalar().Sub(t1, t2)

	return Poly2{T0: t0, T1: t1, T2: t2}
}

// Poly2 is a degree-2 scalar polynomial t0 + t1*X + t2*X^2.
type Poly2 struct {
	T0, T1, T2 *curve.Scalar
}

// Eval returns t0 + t1*x + t2*x^2.
func (p Poly2) Eval(x *curve.Scalar) *curve.Scalar {
	x2 := curve.NewScalar().Mul(x, x)
	out := curve.NewScalar().Add(p.T0, curve.NewScalar().Mul(p.T1, x))
	out = curve.NewScalar().Add(out, curve.NewScalar().Mul(p.T2, x2))
	return out
}
