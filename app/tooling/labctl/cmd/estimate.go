package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ardanlabs/chainlab/foundation/lab/pow"
	"github.com/spf13/cobra"
)

var hashRate float64

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate how long mining at a difficulty will take.",
	Run:   estimateRun,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().IntVarP(&difficulty, "difficulty", "d", 4, "Number of leading zeros required.")
	estimateCmd.Flags().Float64VarP(&hashRate, "hash-rate", "r", 1_000_000, "Hashes per second.")
}

func estimateRun(cmd *cobra.Command, args []string) {
	estimate, err := pow.EstimateTime(difficulty, hashRate)
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.MarshalIndent(estimate, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
}
