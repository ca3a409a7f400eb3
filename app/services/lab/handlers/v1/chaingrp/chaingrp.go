// Package chaingrp maintains the group of handlers for the demo chain.
package chaingrp

import (
	"context"
	"errors"
	"net/http"

	"github.com/ardanlabs/chainlab/business/web/errs"
	"github.com/ardanlabs/chainlab/foundation/lab/hashchain"
	"github.com/ardanlabs/chainlab/foundation/lab/state"
	"github.com/ardanlabs/chainlab/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of chain endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Query returns the full chain along with its current validation.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := chainResponse{
		Chain: h.State.RetrieveChain(),
		Valid: h.State.ValidateChain(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Validate runs the structural checks and returns the accumulated errors.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.ValidateChain(), http.StatusOK)
}

// AppendBlock adds a block carrying the submitted payload.
func (h Handlers) AppendBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app appendRequest
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	block := h.State.AppendBlock(app.Payload)

	h.Log.Infow("append block", "traceid", web.GetTraceID(ctx), "block", block.Index, "hash", block.Hash)

	resp := appendResponse{
		Block: block,
		Chain: h.State.RetrieveChain(),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Tamper mutates a block payload in place without rehashing so the next
// validation can catch it.
func (h Handlers) Tamper(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var tam tamperRequest
	if err := web.Decode(r, &tam); err != nil {
		return err
	}

	tr, err := h.State.TamperBlock(tam.Index, tam.Payload)
	if err != nil {
		if errors.Is(err, hashchain.ErrInvalidIndex) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	h.Log.Infow("tamper block", "traceid", web.GetTraceID(ctx), "block", tam.Index)

	resp := tamperResponse{
		TamperResult: tr,
		Chain:        h.State.RetrieveChain(),
		Valid:        h.State.ValidateChain(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Reset discards the demo chain and starts over from genesis.
func (h Handlers) Reset(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.ResetChain()

	h.Log.Infow("reset chain", "traceid", web.GetTraceID(ctx))

	resp := chainResponse{
		Chain: blocks,
		Valid: h.State.ValidateChain(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
