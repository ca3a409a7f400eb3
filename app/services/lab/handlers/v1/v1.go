// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"
	"time"

	"github.com/ardanlabs/chainlab/app/services/lab/handlers/v1/chaingrp"
	"github.com/ardanlabs/chainlab/app/services/lab/handlers/v1/cryptogrp"
	"github.com/ardanlabs/chainlab/app/services/lab/handlers/v1/minegrp"
	"github.com/ardanlabs/chainlab/foundation/events"
	"github.com/ardanlabs/chainlab/foundation/lab/state"
	"github.com/ardanlabs/chainlab/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log                *zap.SugaredLogger
	State              *state.State
	Evts               *events.Events
	MineTimeout        time.Duration
	DefaultMaxAttempts int
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	cgh := chaingrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, version, "/chain", cgh.Query)
	app.Handle(http.MethodGet, version, "/chain/validate", cgh.Validate)
	app.Handle(http.MethodPost, version, "/chain/block", cgh.AppendBlock)
	app.Handle(http.MethodPost, version, "/chain/tamper", cgh.Tamper)
	app.Handle(http.MethodPost, version, "/chain/reset", cgh.Reset)

	cry := cryptogrp.Handlers{
		Log: cfg.Log,
	}

	app.Handle(http.MethodPost, version, "/merkle", cry.Merkle)
	app.Handle(http.MethodPost, version, "/avalanche", cry.Avalanche)
	app.Handle(http.MethodGet, version, "/address/generate", cry.GenerateAddress)

	mgh := minegrp.Handlers{
		Log:                cfg.Log,
		State:              cfg.State,
		Evts:               cfg.Evts,
		MineTimeout:        cfg.MineTimeout,
		DefaultMaxAttempts: cfg.DefaultMaxAttempts,
	}

	app.Handle(http.MethodPost, version, "/mine", mgh.Mine)
	app.Handle(http.MethodGet, version, "/mine/estimate/:difficulty/:hashrate", mgh.Estimate)
	app.Handle(http.MethodPost, version, "/difficulty/forecast", mgh.Forecast)
	app.Handle(http.MethodGet, version, "/events", mgh.Events)
}
