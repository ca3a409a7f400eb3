// Package hashchain maintains an ordered, hash linked sequence of blocks
// and detects structural tampering. It is the smallest honest model of how
// a blockchain notices that history has been rewritten: every block commits
// to the hash of its predecessor, so editing any payload breaks the block's
// own hash and reordering breaks the links.
package hashchain

import (
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/chainlab/foundation/lab/digest"
)

// ErrInvalidIndex is returned by Tamper when the block index is out of
// range. The chain is left untouched.
var ErrInvalidIndex = errors.New("invalid block index")

// genesisPayload is the fixed payload carried by every genesis block.
const genesisPayload = "Genesis Block"

// =============================================================================

// Block represents a single record in the chain. Blocks are immutable once
// appended; the only mutation path is the Tamper operation, which exists to
// exercise validation.
type Block struct {
	Index     int    `json:"index"`
	Timestamp int64  `json:"timestamp"`
	Payload   string `json:"payload"`
	PrevHash  string `json:"previous_hash"`
	Nonce     int    `json:"nonce"`
	Hash      string `json:"hash"`
}

// newBlock constructs a block and computes its hash immediately.
func newBlock(index int, payload string, prevHash string) Block {
	b := Block{
		Index:     index,
		Timestamp: time.Now().UTC().Unix(),
		Payload:   payload,
		PrevHash:  prevHash,
	}
	b.Hash = b.CalculateHash()

	return b
}

// CalculateHash digests the block fields in their fixed preimage order:
// index, timestamp, payload, previous hash, nonce.
func (b Block) CalculateHash() string {
	preimage := fmt.Sprintf("%d%d%s%s%d", b.Index, b.Timestamp, b.Payload, b.PrevHash, b.Nonce)
	return digest.Hash(preimage)
}

// =============================================================================

// Validation represents the outcome of walking the chain and checking every
// structural invariant. Errors accumulate; a single bad block never stops
// the walk.
type Validation struct {
	Valid         bool     `json:"valid"`
	Errors        []string `json:"errors"`
	CheckedBlocks int      `json:"checked_blocks"`
}

// TamperResult reports what a tamper operation changed.
type TamperResult struct {
	BlockIndex int    `json:"block_index"`
	OldPayload string `json:"old_payload"`
	NewPayload string `json:"new_payload"`
}

// =============================================================================

// Chain manages an append only sequence of hash linked blocks. A Chain
// value is not safe for concurrent use; callers owning a shared instance
// must provide their own synchronization.
type Chain struct {
	blocks []Block
}

// New constructs a chain seeded with its genesis block. The genesis block
// carries index 0 and the all zero previous-hash sentinel.
func New() *Chain {
	c := Chain{
		blocks: []Block{newBlock(0, genesisPayload, digest.ZeroHash)},
	}

	return &c
}

// Restore constructs a chain from raw blocks, stored hashes included, so a
// previously exported chain can be revalidated. No checks run on the way
// in; that is Validate's job.
func Restore(blocks []Block) *Chain {
	c := Chain{
		blocks: make([]Block, len(blocks)),
	}
	copy(c.blocks, blocks)

	return &c
}

// Append adds a new block carrying the specified payload. The block links
// to the current latest block and its hash is computed immediately. There
// is no proof of work gate, which keeps this chain a model of linkage
// rather than of admission control.
func (c *Chain) Append(payload string) Block {
	b := newBlock(len(c.blocks), payload, c.LatestBlock().Hash)
	c.blocks = append(c.blocks, b)

	return b
}

// LatestBlock returns the most recently appended block.
func (c *Chain) LatestBlock() Block {
	return c.blocks[len(c.blocks)-1]
}

// Blocks returns a copy of the chain in append order.
func (c *Chain) Blocks() []Block {
	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)

	return blocks
}

// Length returns the number of blocks in the chain, genesis included.
func (c *Chain) Length() int {
	return len(c.blocks)
}

// Validate walks every block after genesis and applies two independent
// checks: the stored hash must equal the recomputed hash (catches payload
// edits that skipped rehashing), and the previous-hash field must equal the
// predecessor's hash (catches broken or reordered links). A block can fail
// one check, the other, or both.
func (c *Chain) Validate() Validation {
	v := Validation{
		Valid:         true,
		Errors:        []string{},
		CheckedBlocks: len(c.blocks),
	}

	for i := 1; i < len(c.blocks); i++ {
		current := c.blocks[i]
		previous := c.blocks[i-1]

		if current.Hash != current.CalculateHash() {
			v.Valid = false
			v.Errors = append(v.Errors, fmt.Sprintf("block %d: hash mismatch, payload may have been tampered", i))
		}

		if current.PrevHash != previous.Hash {
			v.Valid = false
			v.Errors = append(v.Errors, fmt.Sprintf("block %d: previous hash mismatch, chain link broken", i))
		}
	}

	return v
}

// Tamper mutates the payload of the block at the specified index without
// recomputing its hash, leaving the stored hash stale so Validate can catch
// it. An out of range index is rejected with ErrInvalidIndex and no
// mutation takes place. This is a demonstration operation, not a normal
// mutation path.
func (c *Chain) Tamper(index int, newPayload string) (TamperResult, error) {
	if index < 0 || index >= len(c.blocks) {
		return TamperResult{}, fmt.Errorf("tamper block %d: %w", index, ErrInvalidIndex)
	}

	tr := TamperResult{
		BlockIndex: index,
		OldPayload: c.blocks[index].Payload,
		NewPayload: newPayload,
	}
	c.blocks[index].Payload = newPayload

	return tr, nil
}
