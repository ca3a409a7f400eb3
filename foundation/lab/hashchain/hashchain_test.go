package hashchain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/chainlab/foundation/lab/digest"
	"github.com/ardanlabs/chainlab/foundation/lab/hashchain"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_AppendAndValidate(t *testing.T) {
	t.Log("Given the need to validate a chain built purely by appends.")
	{
		t.Logf("\tTest 0:\tWhen appending blocks to a fresh chain.")
		{
			chain := hashchain.New()

			genesis := chain.Blocks()[0]
			if genesis.Index != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould have genesis at index 0, got %d.", failed, genesis.Index)
			}
			t.Logf("\t%s\tTest 0:\tShould have genesis at index 0.", success)

			if genesis.PrevHash != digest.ZeroHash {
				t.Fatalf("\t%s\tTest 0:\tShould have the zero hash sentinel on genesis, got %q.", failed, genesis.PrevHash)
			}
			t.Logf("\t%s\tTest 0:\tShould have the zero hash sentinel on genesis.", success)

			if genesis.Hash != genesis.CalculateHash() {
				t.Fatalf("\t%s\tTest 0:\tShould have a genesis hash computed immediately.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have a genesis hash computed immediately.", success)

			a := chain.Append("A")
			b := chain.Append("B")

			if a.Index != 1 || b.Index != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould assign sequential indexes, got %d and %d.", failed, a.Index, b.Index)
			}
			t.Logf("\t%s\tTest 0:\tShould assign sequential indexes.", success)

			if b.PrevHash != a.Hash {
				t.Fatalf("\t%s\tTest 0:\tShould link each block to its predecessor's hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould link each block to its predecessor's hash.", success)

			v := chain.Validate()
			if !v.Valid {
				t.Fatalf("\t%s\tTest 0:\tShould validate an untampered chain: %v.", failed, v.Errors)
			}
			t.Logf("\t%s\tTest 0:\tShould validate an untampered chain.", success)

			if v.CheckedBlocks != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould count every block including genesis, got %d.", failed, v.CheckedBlocks)
			}
			t.Logf("\t%s\tTest 0:\tShould count every block including genesis.", success)

			if len(v.Errors) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould report no errors, got %d.", failed, len(v.Errors))
			}
			t.Logf("\t%s\tTest 0:\tShould report no errors.", success)
		}
	}
}

func Test_TamperDetection(t *testing.T) {
	t.Log("Given the need to detect a tampered payload.")
	{
		t.Logf("\tTest 0:\tWhen tampering block 1 of a three block chain.")
		{
			chain := hashchain.New()
			chain.Append("A")
			chain.Append("B")

			tr, err := chain.Tamper(1, "X")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to tamper a valid index: %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to tamper a valid index.", success)

			if tr.OldPayload != "A" || tr.NewPayload != "X" {
				t.Fatalf("\t%s\tTest 0:\tShould report old and new payloads, got %q and %q.", failed, tr.OldPayload, tr.NewPayload)
			}
			t.Logf("\t%s\tTest 0:\tShould report old and new payloads.", success)

			v := chain.Validate()
			if v.Valid {
				t.Fatalf("\t%s\tTest 0:\tShould fail validation after tampering.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould fail validation after tampering.", success)

			// The previous-hash fields are untouched, so the link checks
			// for blocks 1 and 2 still pass: exactly one hash mismatch.
			if len(v.Errors) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould report exactly one error, got %d: %v.", failed, len(v.Errors), v.Errors)
			}
			t.Logf("\t%s\tTest 0:\tShould report exactly one error.", success)

			if !strings.Contains(v.Errors[0], "block 1") || !strings.Contains(v.Errors[0], "hash mismatch") {
				t.Fatalf("\t%s\tTest 0:\tShould name block 1 with a hash mismatch, got %q.", failed, v.Errors[0])
			}
			t.Logf("\t%s\tTest 0:\tShould name block 1 with a hash mismatch.", success)
		}

		t.Logf("\tTest 1:\tWhen tampering with an out of range index.")
		{
			chain := hashchain.New()
			chain.Append("A")
			before := chain.Blocks()

			for _, index := range []int{-1, 2, 99} {
				if _, err := chain.Tamper(index, "X"); !errors.Is(err, hashchain.ErrInvalidIndex) {
					t.Fatalf("\t%s\tTest 1:\tShould reject index %d with ErrInvalidIndex, got %v.", failed, index, err)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould reject out of range indexes with ErrInvalidIndex.", success)

			after := chain.Blocks()
			for i := range before {
				if before[i] != after[i] {
					t.Fatalf("\t%s\tTest 1:\tShould not mutate the chain on a rejected tamper.", failed)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould not mutate the chain on a rejected tamper.", success)

			if v := chain.Validate(); !v.Valid {
				t.Fatalf("\t%s\tTest 1:\tShould still validate after a rejected tamper: %v.", failed, v.Errors)
			}
			t.Logf("\t%s\tTest 1:\tShould still validate after a rejected tamper.", success)
		}
	}
}

func Test_BrokenLink(t *testing.T) {
	t.Log("Given the need to detect a broken chain link independently of a hash mismatch.")
	{
		t.Logf("\tTest 0:\tWhen a block's previous hash no longer matches its predecessor.")
		{
			chain := hashchain.New()
			chain.Append("A")
			chain.Append("B")

			// Rewrite block 1's payload and rehash it so the block itself
			// is internally consistent. Block 2's link is now broken while
			// block 1 passes the hash check.
			blocks := chain.Blocks()
			tampered := blocks[1]
			tampered.Payload = "X"
			tampered.Hash = tampered.CalculateHash()

			rebuilt := hashchain.Restore([]hashchain.Block{blocks[0], tampered, blocks[2]})

			v := rebuilt.Validate()
			if v.Valid {
				t.Fatalf("\t%s\tTest 0:\tShould fail validation with a broken link.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould fail validation with a broken link.", success)

			if len(v.Errors) != 1 || !strings.Contains(v.Errors[0], "block 2") || !strings.Contains(v.Errors[0], "previous hash mismatch") {
				t.Fatalf("\t%s\tTest 0:\tShould report one link violation at block 2, got %v.", failed, v.Errors)
			}
			t.Logf("\t%s\tTest 0:\tShould report one link violation at block 2.", success)
		}
	}
}
