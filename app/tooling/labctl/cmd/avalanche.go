package cmd

import (
	"fmt"

	"github.com/ardanlabs/chainlab/foundation/lab/avalanche"
	"github.com/spf13/cobra"
)

var avalancheCmd = &cobra.Command{
	Use:   "avalanche [input-a] [input-b]",
	Short: "Show how much two inputs diverge after hashing.",
	Args:  cobra.ExactArgs(2),
	Run:   avalancheRun,
}

func init() {
	rootCmd.AddCommand(avalancheCmd)
}

func avalancheRun(cmd *cobra.Command, args []string) {
	cmp := avalanche.Compare(args[0], args[1])

	fmt.Println("hash a:", cmp.HashA)
	fmt.Println("hash b:", cmp.HashB)
	fmt.Printf("flipped %d of %d bits (%.2f%%)\n", cmp.FlippedBits, cmp.TotalBits, cmp.FlipPercentage)
	fmt.Println(cmp.DiffVisual)
}
