// Package worker implements the background mining workflow for the lab.
// Searches run one at a time on a dedicated goroutine so request-serving
// paths never carry an unbounded loop; callers cancel through their
// context, which layers a wall-clock budget over the attempt bound.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ardanlabs/chainlab/foundation/lab/pow"
	"github.com/ardanlabs/chainlab/foundation/lab/state"
)

// ErrShutdown is returned for any mining request made after the worker has
// been asked to stop.
var ErrShutdown = errors.New("worker is shut down")

// pendingJobs bounds how many searches may queue behind the running one.
const pendingJobs = 10

// =============================================================================

// job carries one mining request to the mining goroutine.
type job struct {
	ctx         context.Context
	payload     string
	difficulty  int
	maxAttempts int
	result      chan jobResult
}

// jobResult carries the outcome back to the requesting goroutine.
type jobResult struct {
	result pow.Result
	err    error
}

// Worker manages the mining workflow for the lab.
type Worker struct {
	state     *state.State
	wg        sync.WaitGroup
	shut      chan struct{}
	jobs      chan job
	evHandler state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up the mining goroutine.
func Run(st *state.State, evHandler state.EventHandler) {
	w := Worker{
		state:     st,
		shut:      make(chan struct{}),
		jobs:      make(chan job, pendingJobs),
		evHandler: evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work. Jobs already queued
// are abandoned; their callers receive ErrShutdown.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	close(w.shut)
	w.wg.Wait()
}

// Mine submits a search to the mining goroutine and waits for the result.
// The caller's context cancels both the wait and the search itself.
func (w *Worker) Mine(ctx context.Context, payload string, difficulty int, maxAttempts int) (pow.Result, error) {
	j := job{
		ctx:         ctx,
		payload:     payload,
		difficulty:  difficulty,
		maxAttempts: maxAttempts,
		result:      make(chan jobResult, 1),
	}

	select {
	case w.jobs <- j:
	case <-w.shut:
		return pow.Result{}, ErrShutdown
	case <-ctx.Done():
		return pow.Result{}, ctx.Err()
	}

	select {
	case jr := <-j.result:
		return jr.result, jr.err
	case <-w.shut:
		return pow.Result{}, ErrShutdown
	case <-ctx.Done():
		return pow.Result{}, ctx.Err()
	}
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}

// miningOperations handles mining requests one at a time.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case j := <-w.jobs:
			if !w.isShutdown() {
				w.runMiningOperation(j)
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation performs one search and reports the outcome back to
// the requester. The result channel is buffered so an abandoned caller
// never blocks the mining goroutine.
func (w *Worker) runMiningOperation(j job) {
	w.evHandler("worker: runMiningOperation: MINING: started: difficulty[%d]", j.difficulty)
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	result, err := pow.Mine(j.ctx, j.payload, j.difficulty, j.maxAttempts, pow.EventHandler(w.evHandler))

	switch {
	case err != nil && j.ctx.Err() != nil:
		w.evHandler("worker: runMiningOperation: MINING: CANCELLED: by request")
	case err != nil:
		w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
	case !result.Success:
		w.evHandler("worker: runMiningOperation: MINING: exhausted after attempts[%d]", result.Attempts)
	}

	j.result <- jobResult{result: result, err: err}
}
