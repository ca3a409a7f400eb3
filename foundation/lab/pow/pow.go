// Package pow performs a bounded exhaustive search for a nonce that makes
// a payload digest meet a difficulty target. The search is deliberately
// deterministic, always scanning from nonce 0, so identical inputs always
// yield identical results. A real miner randomizes or partitions the nonce
// space; reproducibility matters more here.
package pow

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/ardanlabs/chainlab/foundation/lab/digest"
)

// Argument errors reported before any work starts.
var (
	ErrNegativeDifficulty  = errors.New("difficulty must not be negative")
	ErrNegativeMaxAttempts = errors.New("max attempts must not be negative")
	ErrInvalidHashRate     = errors.New("hash rate must be greater than zero")
)

// progressInterval controls how often the event handler hears about an
// ongoing search.
const progressInterval = 100_000

// EventHandler defines a function that is called with progress information
// while a search is running.
type EventHandler func(v string, args ...any)

// =============================================================================

// Result represents the outcome of a single mining invocation. It is a
// pure computed snapshot, immutable after the call returns.
type Result struct {
	Success     bool    `json:"success"`
	Nonce       int     `json:"nonce"`
	Hash        string  `json:"hash"`
	Attempts    int     `json:"attempts"`
	TimeSeconds float64 `json:"time_seconds"`
	Difficulty  int     `json:"difficulty"`
	Payload     string  `json:"payload"`
}

// Mine searches for a nonce such that the digest of payload+nonce carries
// difficulty leading '0' hex characters. Starting at nonce 0, each failed
// candidate increments the nonce until success or until nonce reaches
// maxAttempts, where the result reports success false with an empty hash.
// Attempts count 1-based on success, so a hit at nonce 0 is one attempt.
//
// maxAttempts bounds the search space but cannot bound wall-clock time to
// a caller's budget, so the context is checked on every iteration and a
// cancellation or deadline is reported as the context's error.
func Mine(ctx context.Context, payload string, difficulty int, maxAttempts int, ev EventHandler) (Result, error) {
	switch {
	case difficulty < 0:
		return Result{}, ErrNegativeDifficulty
	case maxAttempts < 0:
		return Result{}, ErrNegativeMaxAttempts
	}

	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	t := time.Now()

	for nonce := 0; nonce < maxAttempts; nonce++ {
		if err := ctx.Err(); err != nil {
			ev("pow: mine: CANCELLED: attempts[%d]", nonce)
			return Result{}, err
		}

		if nonce > 0 && nonce%progressInterval == 0 {
			ev("pow: mine: attempts[%d]", nonce)
		}

		hash := digest.Hash(payload + strconv.Itoa(nonce))
		if digest.HasLeadingZeros(hash, difficulty) {
			ev("pow: mine: SOLVED: nonce[%d] attempts[%d]", nonce, nonce+1)

			return Result{
				Success:     true,
				Nonce:       nonce,
				Hash:        hash,
				Attempts:    nonce + 1,
				TimeSeconds: time.Since(t).Seconds(),
				Difficulty:  difficulty,
				Payload:     payload,
			}, nil
		}
	}

	ev("pow: mine: EXHAUSTED: attempts[%d]", maxAttempts)

	return Result{
		Success:     false,
		Nonce:       maxAttempts,
		Hash:        "",
		Attempts:    maxAttempts,
		TimeSeconds: time.Since(t).Seconds(),
		Difficulty:  difficulty,
		Payload:     payload,
	}, nil
}

// =============================================================================

// Estimate projects the expected cost of a search at the specified
// difficulty and hash rate. Each required leading zero is one hex digit of
// constraint, 4 bits, a 1-in-16 chance under a uniform hash assumption.
type Estimate struct {
	Difficulty       int     `json:"difficulty"`
	HashRate         float64 `json:"hash_rate"`
	ExpectedAttempts float64 `json:"expected_attempts"`
	ExpectedSeconds  float64 `json:"expected_seconds"`
}

// EstimateTime computes the expected attempts (16^difficulty) and expected
// seconds (attempts divided by hash rate) for the specified difficulty.
func EstimateTime(difficulty int, hashRate float64) (Estimate, error) {
	if difficulty < 0 {
		return Estimate{}, ErrNegativeDifficulty
	}
	if hashRate <= 0 {
		return Estimate{}, ErrInvalidHashRate
	}

	attempts := math.Pow(16, float64(difficulty))

	return Estimate{
		Difficulty:       difficulty,
		HashRate:         hashRate,
		ExpectedAttempts: attempts,
		ExpectedSeconds:  attempts / hashRate,
	}, nil
}
