package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/chainlab/foundation/lab/merkle"
	"github.com/spf13/cobra"
)

var showLevels bool

var merkleCmd = &cobra.Command{
	Use:   "merkle [transaction ...]",
	Short: "Compute the merkle root for a list of transactions.",
	Args:  cobra.MinimumNArgs(1),
	Run:   merkleRun,
}

func init() {
	rootCmd.AddCommand(merkleCmd)
	merkleCmd.Flags().BoolVarP(&showLevels, "levels", "l", false, "Print every level of the tree.")
}

func merkleRun(cmd *cobra.Command, args []string) {
	root := merkle.Build(args)
	if root == nil {
		log.Fatal("no transactions provided")
	}

	fmt.Println("root:", root.Hash)

	if showLevels {
		for i, level := range merkle.Levels(args) {
			fmt.Printf("level %d:\n", i)
			for _, node := range level {
				fmt.Printf("  %s\n", node.Hash)
			}
		}
	}
}
