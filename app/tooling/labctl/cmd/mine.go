package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ardanlabs/chainlab/foundation/lab/pow"
	"github.com/spf13/cobra"
)

var (
	difficulty  int
	maxAttempts int
	verbose     bool
)

var mineCmd = &cobra.Command{
	Use:   "mine [payload]",
	Short: "Mine a nonce for the given payload.",
	Args:  cobra.ExactArgs(1),
	Run:   mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().IntVarP(&difficulty, "difficulty", "d", 4, "Number of leading zeros required.")
	mineCmd.Flags().IntVarP(&maxAttempts, "max-attempts", "m", 50_000_000, "Give up after this many attempts.")
	mineCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print mining progress.")
}

func mineRun(cmd *cobra.Command, args []string) {
	ev := func(v string, evArgs ...any) {}
	if verbose {
		ev = func(v string, evArgs ...any) {
			fmt.Printf(v+"\n", evArgs...)
		}
	}

	result, err := pow.Mine(context.Background(), args[0], difficulty, maxAttempts, ev)
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
}
