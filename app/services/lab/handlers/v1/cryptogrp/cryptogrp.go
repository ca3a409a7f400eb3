// Package cryptogrp maintains the group of handlers for the stateless
// cryptography tools: merkle commitment, the avalanche effect, and address
// derivation.
package cryptogrp

import (
	"context"
	"net/http"

	"github.com/ardanlabs/chainlab/foundation/lab/address"
	"github.com/ardanlabs/chainlab/foundation/lab/avalanche"
	"github.com/ardanlabs/chainlab/foundation/lab/merkle"
	"github.com/ardanlabs/chainlab/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of crypto tool endpoints.
type Handlers struct {
	Log *zap.SugaredLogger
}

// Merkle commits the submitted transactions to a root and returns the
// diagnostic views. An empty transaction list commits to an empty root,
// not an error.
func (h Handlers) Merkle(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req merkleRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	root := merkle.Build(req.Transactions)

	resp := merkleResponse{
		TreeStructure:    merkle.ToStructure(root),
		Levels:           merkle.Levels(req.Transactions),
		TransactionCount: len(req.Transactions),
	}
	if root != nil {
		resp.MerkleRoot = root.Hash
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Avalanche hashes both submitted inputs and reports the bit level
// difference between the digests.
func (h Handlers) Avalanche(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req avalancheRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	return web.Respond(ctx, w, avalanche.Compare(req.InputA, req.InputB), http.StatusOK)
}

// GenerateAddress creates a fresh keypair and walks the address derivation
// pipeline, returning every intermediate step.
func (h Handlers) GenerateAddress(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	d, err := address.Generate()
	if err != nil {
		return err
	}

	h.Log.Infow("generate address", "traceid", web.GetTraceID(ctx), "address", d.Address)

	return web.Respond(ctx, w, d, http.StatusOK)
}
