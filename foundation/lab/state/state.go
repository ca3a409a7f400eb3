// Package state is the core API for the lab and owns the shared demo
// chain. The individual tools are pure value-producing packages; state
// exists for the two things that are not: the one chain instance the
// service mutates, and the handoff of mining work to a dedicated worker
// so an unbounded search never runs on a request-serving goroutine.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/ardanlabs/chainlab/foundation/lab/hashchain"
	"github.com/ardanlabs/chainlab/foundation/lab/pow"
)

// ErrNoWorker is returned when mining is requested before a worker has
// registered itself with the state.
var ErrNoWorker = errors.New("no mining worker registered")

// EventHandler defines a function that is called when events occur in the
// processing of lab operations.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for background mining.
type Worker interface {
	Shutdown()
	Mine(ctx context.Context, payload string, difficulty int, maxAttempts int) (pow.Result, error)
}

// =============================================================================

// Config represents the configuration required to start the lab state.
type Config struct {
	EvHandler EventHandler
}

// State manages the demo chain and provides an API for application
// support. The chain is guarded so multiple request goroutines can drive
// the same instance.
type State struct {
	mu        sync.Mutex
	chain     *hashchain.Chain
	evHandler EventHandler

	Worker Worker
}

// New constructs a new lab state seeded with a fresh genesis chain.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	return &State{
		chain:     hashchain.New(),
		evHandler: ev,
	}
}

// Shutdown cleanly brings the state down, stopping the worker if one has
// registered.
func (s *State) Shutdown() {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	if s.Worker != nil {
		s.Worker.Shutdown()
	}
}

// =============================================================================
// Chain support.

// AppendBlock adds a new block carrying the specified payload to the demo
// chain and returns it.
func (s *State) AppendBlock(payload string) hashchain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := s.chain.Append(payload)
	s.evHandler("state: append: blk[%d] hash[%s]", block.Index, block.Hash)

	return block
}

// TamperBlock mutates the payload of a block in place without rehashing,
// to exercise validation. Out of range indexes are rejected unchanged.
func (s *State) TamperBlock(index int, payload string) (hashchain.TamperResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, err := s.chain.Tamper(index, payload)
	if err != nil {
		return hashchain.TamperResult{}, err
	}

	s.evHandler("state: tamper: blk[%d]", index)
	return tr, nil
}

// ValidateChain walks the demo chain and reports every structural
// violation found.
func (s *State) ValidateChain() hashchain.Validation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain.Validate()
}

// RetrieveChain returns a copy of the demo chain in append order.
func (s *State) RetrieveChain() []hashchain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain.Blocks()
}

// ResetChain discards the demo chain and seeds a fresh genesis one.
func (s *State) ResetChain() []hashchain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chain = hashchain.New()
	s.evHandler("state: reset: new genesis chain")

	return s.chain.Blocks()
}

// =============================================================================
// Mining support.

// Mine hands a search off to the registered worker and waits for the
// result. The context bounds the wall-clock time of the search on top of
// the maxAttempts bound.
func (s *State) Mine(ctx context.Context, payload string, difficulty int, maxAttempts int) (pow.Result, error) {
	if s.Worker == nil {
		return pow.Result{}, ErrNoWorker
	}

	return s.Worker.Mine(ctx, payload, difficulty, maxAttempts)
}
