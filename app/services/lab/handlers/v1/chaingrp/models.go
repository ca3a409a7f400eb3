package chaingrp

import "github.com/ardanlabs/chainlab/foundation/lab/hashchain"

type appendRequest struct {
	Payload string `json:"payload" validate:"required"`
}

type tamperRequest struct {
	Index   int    `json:"index" validate:"min=0"`
	Payload string `json:"payload" validate:"required"`
}

type chainResponse struct {
	Chain []hashchain.Block    `json:"chain"`
	Valid hashchain.Validation `json:"valid"`
}

type appendResponse struct {
	Block hashchain.Block   `json:"block"`
	Chain []hashchain.Block `json:"chain"`
}

type tamperResponse struct {
	TamperResult hashchain.TamperResult `json:"tamper_result"`
	Chain        []hashchain.Block      `json:"chain"`
	Valid        hashchain.Validation   `json:"valid"`
}
