package state_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ardanlabs/chainlab/foundation/lab/state"
	"github.com/ardanlabs/chainlab/foundation/lab/worker"
	"github.com/ardanlabs/chainlab/foundation/logger"
)

func ifErrFailNow(t *testing.T, err error) {
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
}

func Test_ChainAndMine(t *testing.T) {
	log, err := logger.New("TEST")
	ifErrFailNow(t, err)
	defer log.Sync()

	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...), "traceid", "00000000-0000-0000-0000-000000000000")
	}

	st := state.New(state.Config{
		EvHandler: ev,
	})

	worker.Run(st, ev)
	defer st.Shutdown()

	// Drive the shared chain the way the handlers do.
	st.AppendBlock("Alice pays Bob 1 BTC")
	st.AppendBlock("Bob pays Charlie 0.5 BTC")

	if v := st.ValidateChain(); !v.Valid {
		t.Fatalf("expected a clean chain to validate, got %v", v.Errors)
	}

	if _, err := st.TamperBlock(1, "Alice pays Bob 100 BTC"); err != nil {
		t.Fatalf("expected to tamper block 1: %v", err)
	}

	v := st.ValidateChain()
	if v.Valid || len(v.Errors) != 1 {
		t.Fatalf("expected exactly one validation error after tampering, got %v", v.Errors)
	}

	if blocks := st.ResetChain(); len(blocks) != 1 {
		t.Fatalf("expected reset to leave only genesis, got %d blocks", len(blocks))
	}

	// Mining runs on the worker goroutine, bounded by the context.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := st.Mine(ctx, "Block #100", 1, 1_000_000)
	if err != nil {
		t.Fatalf("expected the worker to mine: %v", err)
	}
	if !result.Success {
		t.Fatal("expected a difficulty 1 search to succeed within a million attempts")
	}
}

func Test_MineWithoutWorker(t *testing.T) {
	st := state.New(state.Config{})

	if _, err := st.Mine(context.Background(), "payload", 1, 10); !errors.Is(err, state.ErrNoWorker) {
		t.Fatalf("expected ErrNoWorker, got %v", err)
	}
}

func Test_MineAfterShutdown(t *testing.T) {
	log, err := logger.New("TEST")
	ifErrFailNow(t, err)
	defer log.Sync()

	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	}

	st := state.New(state.Config{EvHandler: ev})
	worker.Run(st, ev)
	st.Shutdown()

	if _, err := st.Mine(context.Background(), "payload", 1, 10); !errors.Is(err, worker.ErrShutdown) {
		t.Fatalf("expected ErrShutdown, got %v", err)
	}
}
