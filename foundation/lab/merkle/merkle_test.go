package merkle_test

import (
	"testing"

	"github.com/ardanlabs/chainlab/foundation/lab/digest"
	"github.com/ardanlabs/chainlab/foundation/lab/merkle"
)

func Test_EmptyInput(t *testing.T) {
	if root := merkle.Build(nil); root != nil {
		t.Errorf("error: expected nil root for empty input, got %v", root)
	}

	if root := merkle.Root([]string{}); root != "" {
		t.Errorf("error: expected empty root hash for empty input, got %q", root)
	}

	if levels := merkle.Levels(nil); levels != nil {
		t.Errorf("error: expected nil levels for empty input, got %v", levels)
	}
}

func Test_SingleTransaction(t *testing.T) {
	root := merkle.Build([]string{"x"})
	if root == nil {
		t.Fatal("error: expected a root for a single transaction")
	}

	// A lone transaction is its own root. No pairing step occurs.
	if root.Hash != digest.Hash("x") {
		t.Errorf("error: expected root equal to the leaf digest, got %q", root.Hash)
	}

	if !root.IsLeaf() {
		t.Error("error: expected the single transaction root to be a leaf")
	}

	levels := merkle.Levels([]string{"x"})
	if len(levels) != 1 || len(levels[0]) != 1 {
		t.Fatalf("error: expected one level with one node, got %v", levels)
	}
	if levels[0][0].Hash != root.Hash {
		t.Errorf("error: expected the level view to agree with the root, got %q", levels[0][0].Hash)
	}
}

func Test_Determinism(t *testing.T) {
	txs := []string{"a", "b", "c", "d", "e"}

	first := merkle.Root(txs)
	second := merkle.Root(txs)

	if first != second {
		t.Errorf("error: expected identical roots across calls, got %q and %q", first, second)
	}
}

func Test_OrderSensitivity(t *testing.T) {
	ab := merkle.Root([]string{"a", "b"})
	ba := merkle.Root([]string{"b", "a"})

	if ab == ba {
		t.Errorf("error: expected permuted input to change the root, both were %q", ab)
	}

	// Pairing is positional, so the two-leaf root is exactly the digest of
	// the concatenated leaf digests.
	want := digest.Join(digest.Hash("a"), digest.Hash("b"))
	if ab != want {
		t.Errorf("error: expected root %q, got %q", want, ab)
	}
}

func Test_OddLeafDuplication(t *testing.T) {
	odd := merkle.Root([]string{"a", "b", "c"})
	padded := merkle.Root([]string{"a", "b", "c", "c"})

	if odd != padded {
		t.Errorf("error: expected the last leaf to be duplicated, got %q and %q", odd, padded)
	}

	// The duplication rule applies at every level: six leaves make three
	// internal nodes, and the third must pair with a copy of itself.
	six := []string{"t1", "t2", "t3", "t4", "t5", "t6"}
	root := merkle.Build(six)
	if root == nil {
		t.Fatal("error: expected a root for six transactions")
	}

	levels := merkle.Levels(six)
	if levels[0][0].Hash != root.Hash {
		t.Errorf("error: expected the level view root %q to match Build root %q", levels[0][0].Hash, root.Hash)
	}
}

func Test_StructureView(t *testing.T) {
	txs := []string{"a", "b", "c"}
	root := merkle.Build(txs)

	s := merkle.ToStructure(root)
	if s == nil {
		t.Fatal("error: expected a structure view")
	}

	if s.Type != "node" {
		t.Errorf("error: expected a node at the root, got %q", s.Type)
	}
	if s.Hash != merkle.Root(txs) {
		t.Errorf("error: expected the structure root hash to match Root")
	}
	if len(s.ShortHash) != 19 {
		t.Errorf("error: expected a 16 char prefix with ellipsis, got %q", s.ShortHash)
	}

	// Walk left to the first leaf.
	leaf := s
	for leaf.Type != "leaf" {
		if leaf.Left == nil {
			t.Fatal("error: expected a left child on every internal node")
		}
		leaf = leaf.Left
	}
	if leaf.Data != "a" {
		t.Errorf("error: expected the leftmost leaf to carry %q, got %q", "a", leaf.Data)
	}

	if merkle.ToStructure(nil) != nil {
		t.Error("error: expected a nil view for a nil node")
	}
}

func Test_LevelsRootFirst(t *testing.T) {
	txs := []string{"a", "b", "c", "d"}

	levels := merkle.Levels(txs)
	if len(levels) != 3 {
		t.Fatalf("error: expected 3 levels for four transactions, got %d", len(levels))
	}

	if len(levels[0]) != 1 {
		t.Errorf("error: expected the first level to hold only the root, got %d nodes", len(levels[0]))
	}
	if levels[0][0].Hash != merkle.Root(txs) {
		t.Errorf("error: expected the first level to carry the root hash")
	}

	if len(levels[2]) != 4 {
		t.Errorf("error: expected the last level to hold the leaves, got %d nodes", len(levels[2]))
	}
	for i, tx := range txs {
		if levels[2][i].Data != tx {
			t.Errorf("error: expected leaf %d to carry %q, got %q", i, tx, levels[2][i].Data)
		}
	}

	for _, n := range levels[1] {
		if len(n.LeftChild) != 8 || len(n.RightChild) != 8 {
			t.Errorf("error: expected 8 char child prefixes, got %q and %q", n.LeftChild, n.RightChild)
		}
	}
}
