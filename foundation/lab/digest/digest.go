// Package digest provides the hashing primitives shared by the lab tools.
// Every tool in the lab speaks the same dialect: SHA-256 over UTF-8 text,
// rendered as a lowercase hex string with no prefix.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// ZeroHash represents a hash code of zeros. It is the previous-hash
// sentinel carried by a genesis block.
const ZeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// HashLen is the length of a hex encoded SHA-256 digest.
const HashLen = 64

// Hash returns the hex encoded SHA-256 digest of the specified text.
func Hash(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// Join digests the concatenation of two hex digests. This is the parent
// rule used by the merkle tree.
func Join(left string, right string) string {
	return Hash(left + right)
}

// HasLeadingZeros reports whether the hex digest starts with the specified
// number of '0' characters. A zero count always matches.
func HasLeadingZeros(hash string, zeros int) bool {
	if zeros < 0 || zeros > len(hash) || zeros > HashLen {
		return false
	}
	return hash[:zeros] == ZeroHash[:zeros]
}
