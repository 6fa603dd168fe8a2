// Command khotdemo builds a k-hot proof for a small example vector,
// serializes it, parses it back, and verifies it, printing each stage
// the way the teacher's main.go narrates a vote cast and verification.
package main

import (
	"fmt"

	"github.com/arnegrid/khotproof/curve"
	"github.com/arnegrid/khotproof/generators"
	"github.com/arnegrid/khotproof/khotproof"
	"github.com/arnegrid/khotproof/transcript"
)

func buildVector(n int, hotIndices ...int) []byte {
	v := make([]byte, n)
	for _, i := range hotIndices {
		v[i] = 1
	}
	return v
}

func main() {
	const n = 16
	const weight = 3
	label := "khotdemo v1"

	fmt.Println("Setup")
	bpGens := generators.New(n)
	pcGens := generators.NewPedersenGens()
	k := curve.ScalarFromUint64(weight)

	v := buildVector(n, 1, 5, 12)
	fmt.Printf("vector length %d, claimed Hamming weight %d\n", n, weight)

	fmt.Println()
	fmt.Println("Proving")
	proveTr := transcript.New(label)
	proof, err := khotproof.Prove(bpGens, pcGens, proveTr, k, v)
	if err != nil {
		fmt.Println("prove failed:", err)
		return
	}

	raw := proof.ToBytes()
	fmt.Printf("proof serialized to %d bytes\n", len(raw))

	fmt.Println()
	fmt.Println("Round-trip through bytes")
	parsed, err := khotproof.FromBytes(raw)
	if err != nil {
		fmt.Println("parse failed:", err)
		return
	}

	fmt.Println()
	fmt.Println("Verification")
	verifyTr := transcript.New(label)
	err = khotproof.Verify(parsed, bpGens, pcGens, verifyTr, n, k)
	fmt.Println("proof is valid:", err == nil)

	fmt.Println()
	fmt.Println("Tampering with a single byte")
	raw[0] ^= 0xFF
	tampered, err := khotproof.FromBytes(raw)
	if err != nil {
		fmt.Println("tampered proof failed to parse:", err)
		return
	}
	tamperedTr := transcript.New(label)
	err = khotproof.Verify(tampered, bpGens, pcGens, tamperedTr, n, k)
	fmt.Println("tampered proof is valid:", err == nil)
}
