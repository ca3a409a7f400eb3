// Package avalanche demonstrates the avalanche effect of a cryptographic
// hash: a one character change to the input flips roughly half of the
// output bits.
package avalanche

import (
	"crypto/sha256"
	"strings"

	"github.com/ardanlabs/chainlab/foundation/lab/digest"
)

// TotalBits is the output width of the hash under comparison.
const TotalBits = sha256.Size * 8

// Comparison captures a side by side hash of two inputs with their bit
// level difference.
type Comparison struct {
	InputA         string  `json:"input_a"`
	InputB         string  `json:"input_b"`
	HashA          string  `json:"hash_a"`
	HashB          string  `json:"hash_b"`
	BinaryA        string  `json:"binary_a"`
	BinaryB        string  `json:"binary_b"`
	FlippedBits    int     `json:"flipped_bits"`
	TotalBits      int     `json:"total_bits"`
	FlipPercentage float64 `json:"flip_percentage"`
	DiffVisual     string  `json:"diff_visual"`
}

// Compare hashes both inputs and reports how many output bits differ,
// along with a block character visual of where the flips landed.
func Compare(inputA string, inputB string) Comparison {
	hashA := digest.Hash(inputA)
	hashB := digest.Hash(inputB)

	binA := hexToBinary(hashA)
	binB := hexToBinary(hashB)

	var flipped int
	var visual strings.Builder
	for i := range binA {
		if binA[i] != binB[i] {
			flipped++
			visual.WriteRune('█')
			continue
		}
		visual.WriteRune('░')
	}

	return Comparison{
		InputA:         inputA,
		InputB:         inputB,
		HashA:          hashA,
		HashB:          hashB,
		BinaryA:        binA,
		BinaryB:        binB,
		FlippedBits:    flipped,
		TotalBits:      TotalBits,
		FlipPercentage: float64(flipped) / TotalBits * 100,
		DiffVisual:     visual.String(),
	}
}

// hexToBinary expands a hex digest into its bit string, one character per
// bit, most significant first.
func hexToBinary(hexStr string) string {
	var sb strings.Builder
	sb.Grow(len(hexStr) * 4)

	for i := 0; i < len(hexStr); i++ {
		n := hexDigit(hexStr[i])
		for bit := 3; bit >= 0; bit-- {
			if n&(1<<bit) != 0 {
				sb.WriteByte('1')
				continue
			}
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// hexDigit converts one lowercase hex character to its value.
func hexDigit(c byte) byte {
	if c >= 'a' {
		return c - 'a' + 10
	}
	return c - '0'
}
