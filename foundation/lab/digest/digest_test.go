package digest_test

import (
	"testing"

	"github.com/ardanlabs/chainlab/foundation/lab/digest"
)

func Test_Hash(t *testing.T) {
	// Known SHA-256 vector.
	const want = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	if got := digest.Hash("hello"); got != want {
		t.Errorf("error: expected %q, got %q", want, got)
	}

	if got := digest.Hash("hello"); got != digest.Hash("hello") {
		t.Errorf("error: expected deterministic digests, got %q", got)
	}
}

func Test_Join(t *testing.T) {
	left := digest.Hash("a")
	right := digest.Hash("b")

	if digest.Join(left, right) != digest.Hash(left+right) {
		t.Error("error: expected Join to digest the concatenated hex strings")
	}

	if digest.Join(left, right) == digest.Join(right, left) {
		t.Error("error: expected Join to be order sensitive")
	}
}

func Test_HasLeadingZeros(t *testing.T) {
	type table struct {
		hash  string
		zeros int
		want  bool
	}

	tt := []table{
		{"00ab", 0, true},
		{"00ab", 1, true},
		{"00ab", 2, true},
		{"00ab", 3, false},
		{"a0ab", 1, false},
		{"00ab", 5, false},
		{"00ab", -1, false},
		{digest.ZeroHash, 64, true},
	}

	for _, tst := range tt {
		if got := digest.HasLeadingZeros(tst.hash, tst.zeros); got != tst.want {
			t.Errorf("error: HasLeadingZeros(%q, %d): expected %v, got %v", tst.hash, tst.zeros, tst.want, got)
		}
	}
}
