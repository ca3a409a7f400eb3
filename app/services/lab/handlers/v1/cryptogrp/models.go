package cryptogrp

import "github.com/ardanlabs/chainlab/foundation/lab/merkle"

type merkleRequest struct {
	Transactions []string `json:"transactions"`
}

type merkleResponse struct {
	MerkleRoot       string               `json:"merkle_root"`
	TreeStructure    *merkle.Structure    `json:"tree_structure,omitempty"`
	Levels           [][]merkle.LevelNode `json:"levels,omitempty"`
	TransactionCount int                  `json:"transaction_count"`
}

type avalancheRequest struct {
	InputA string `json:"input_a"`
	InputB string `json:"input_b"`
}
