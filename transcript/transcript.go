// Package transcript implements a Merlin-style public-coin transcript:
// a deterministic sponge that absorbs labelled prover messages and
// squeezes labelled challenge scalars, so that the prover's and the
// verifier's challenge derivations are bit-identical (spec.md §4.A).
//
// The construction is grounded on the teacher's own Fiat-Shamir
// helpers (bulletproofs/bip.go's hashIP, bulletproofs/bp.go's HashBP),
// which absorb points and scalars into a crypto/sha256 digest and read
// the challenge back out of the sum. merlin itself does not appear
// anywhere in the retrieved corpus, so this module builds a labelled,
// resumable transcript from the teacher's own SHA-256 idiom instead of
// vendoring an unexamined dependency: each absorb step folds a length
// prefix, the label, and the message into a running SHA-256 state, and
// each challenge squeezes 64 bytes (two digests of the current state
// under distinct suffixes) and reduces them into a scalar with
// curve.ScalarFromWideBytes.
package transcript

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/arnegrid/khotproof/curve"
)

// ErrBadPoint is returned by ValidateAndAppendPoint when the supplied
// compressed point is malformed or encodes the group identity.
var ErrBadPoint = errors.New("transcript: invalid or identity point")

// Transcript is a keyed, append-only absorption state. It is not safe
// for concurrent use; a single proving or verification call borrows it
// for its entire duration (spec.md §5).
type Transcript struct {
	state [sha256.Size]byte
}

// New creates a transcript keyed by an application label.
func New(applicationLabel string) *Transcript {
	t := &Transcript{}
	h := sha256.New()
	h.Write([]byte("khot-transcript-v1"))
	h.Write(lengthPrefixed([]byte(applicationLabel)))
	copy(t.state[:], h.Sum(nil))
	return t
}

func lengthPrefixed(b []byte) []byte {
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(b)))
	out := make([]byte, 0, 8+len(b))
	out = append(out, lenBuf[:]...)
	out = append(out, b...)
	return out
}

func (t *Transcript) absorb(label string, data []byte) {
	h := sha256.New()
	h.Write(t.state[:])
	h.Write(lengthPrefixed([]byte(label)))
	h.Write(lengthPrefixed(data))
	copy(t.state[:], h.Sum(nil))
}

// DomainSepKHotProof absorbs the k-hot proof domain separator together
// with the vector length n and the target Hamming weight k, so that
// proofs for distinct (n, k) pairs can never be confused by a verifier
// running the wrong parameters (spec.md §4.A, §9).
func (t *Transcript) DomainSepKHotProof(n uint64, k *curve.Scalar) {
	var nBuf [8]byte
	binary.LittleEndian.PutUint64(nBuf[:], n)
	t.absorb("dom-sep", append([]byte("k-hot-proof v1"), nBuf[:]...))
	t.AppendScalar("k", k)
}

// DomainSepInnerProduct absorbs the inner-product argument's own domain
// separator, used when the k-hot prover/verifier delegate to package ipp.
func (t *Transcript) DomainSepInnerProduct(n uint64) {
	var nBuf [8]byte
	binary.LittleEndian.PutUint64(nBuf[:], n)
	t.absorb("dom-sep", append([]byte("inner-product v1"), nBuf[:]...))
}

// AppendPoint absorbs a compressed point under a label without
// validating it; used by the prover, which only ever absorbs points it
// just computed.
func (t *Transcript) AppendPoint(label string, p *curve.Point) {
	t.absorb(label, p.Bytes())
}

// ValidateAndAppendPoint decodes a compressed point, rejects it if it
// is malformed or decodes to the group identity, and otherwise absorbs
// it. This is the verifier-side counterpart to AppendPoint and is the
// only place identity points are rejected (spec.md §7, §8).
func (t *Transcript) ValidateAndAppendPoint(label string, compressed []byte) (*curve.Point, error) {
	p, err := curve.NewPoint().SetCompressedBytes(compressed)
	if err != nil {
		return nil, ErrBadPoint
	}
	if p.IsIdentity() {
		return nil, ErrBadPoint
	}
	t.absorb(label, compressed)
	return p, nil
}

// AppendScalar absorbs a scalar under a label.
func (t *Transcript) AppendScalar(label string, s *curve.Scalar) {
	t.absorb(label, s.Bytes())
}

// ChallengeScalar squeezes a labelled challenge scalar. Squeezing
// itself updates the transcript state (by absorbing the label) before
// deriving 64 bytes of output, so distinct challenges in the same
// round never collide even when extracted back to back.
func (t *Transcript) ChallengeScalar(label string) *curve.Scalar {
	t.absorb("challenge", []byte(label))

	wide := make([]byte, 64)
	h1 := sha256.New()
	h1.Write(t.state[:])
	h1.Write([]byte("squeeze-lo"))
	copy(wide[:32], h1.Sum(nil))

	h2 := sha256.New()
	h2.Write(t.state[:])
	h2.Write([]byte("squeeze-hi"))
	copy(wide[32:], h2.Sum(nil))

	// Ratchet the state forward so a second challenge_scalar call in
	// the same round is not a function of the first one's output alone.
	copy(t.state[:], wide[:32])

	return curve.ScalarFromWideBytes(wide)
}
