// Package minegrp maintains the group of handlers for proof of work and
// difficulty tooling.
package minegrp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/chainlab/business/web/errs"
	"github.com/ardanlabs/chainlab/foundation/events"
	"github.com/ardanlabs/chainlab/foundation/lab/difficulty"
	"github.com/ardanlabs/chainlab/foundation/lab/pow"
	"github.com/ardanlabs/chainlab/foundation/lab/state"
	"github.com/ardanlabs/chainlab/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of mining endpoints.
type Handlers struct {
	Log                *zap.SugaredLogger
	State              *state.State
	Evts               *events.Events
	WS                 websocket.Upgrader
	MineTimeout        time.Duration
	DefaultMaxAttempts int
}

// Mine searches for a nonce meeting the submitted difficulty. The search
// runs on the state's mining worker with a wall-clock deadline layered
// over the attempt bound, so a hard difficulty cannot pin this goroutine.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req mineRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	maxAttempts := h.DefaultMaxAttempts
	if req.MaxAttempts != nil {
		maxAttempts = *req.MaxAttempts
	}

	ctx, cancel := context.WithTimeout(ctx, h.MineTimeout)
	defer cancel()

	result, err := h.State.Mine(ctx, req.Payload, req.Difficulty, maxAttempts)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return errs.NewTrusted(errors.New("mining timed out before a nonce was found"), http.StatusRequestTimeout)
		case errors.Is(err, pow.ErrNegativeDifficulty), errors.Is(err, pow.ErrNegativeMaxAttempts):
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	h.Log.Infow("mine", "traceid", web.GetTraceID(ctx), "difficulty", req.Difficulty,
		"success", result.Success, "attempts", result.Attempts)

	return web.Respond(ctx, w, result, http.StatusOK)
}

// Estimate projects the expected attempts and time for a difficulty at a
// hash rate, both taken from the path.
func (h Handlers) Estimate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	diff, err := strconv.Atoi(web.Param(r, "difficulty"))
	if err != nil {
		return errs.NewTrusted(errors.New("difficulty must be an integer"), http.StatusBadRequest)
	}

	hashRate, err := strconv.ParseFloat(web.Param(r, "hashrate"), 64)
	if err != nil {
		return errs.NewTrusted(errors.New("hashrate must be a number"), http.StatusBadRequest)
	}

	est, err := pow.EstimateTime(diff, hashRate)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return web.Respond(ctx, w, est, http.StatusOK)
}

// Forecast projects the next difficulty adjustment from an observed
// average block time.
func (h Handlers) Forecast(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req forecastRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	f, err := difficulty.NewForecast(req.CurrentDifficulty, req.BlockHeight, req.AvgBlockTime)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return web.Respond(ctx, w, f, http.StatusOK)
}

// Events handles a web socket to provide mining events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	h.Log.Infow("events", "traceid", v.TraceID, "status", "client connected")

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
