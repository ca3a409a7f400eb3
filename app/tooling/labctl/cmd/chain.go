package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ardanlabs/chainlab/foundation/lab/hashchain"
	"github.com/spf13/cobra"
)

var tamperIndex int

var chainCmd = &cobra.Command{
	Use:   "chain [payload ...]",
	Short: "Build a chain from the given payloads and validate it.",
	Run:   chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
	chainCmd.Flags().IntVarP(&tamperIndex, "tamper", "t", -1, "Tamper with the block at this index before validating.")
}

func chainRun(cmd *cobra.Command, args []string) {
	chain := hashchain.New()
	for _, payload := range args {
		chain.Append(payload)
	}

	if tamperIndex >= 0 {
		result, err := chain.Tamper(tamperIndex, "tampered data")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("tampered block %d: %s -> %s\n", result.BlockIndex, result.OldPayload, result.NewPayload)
	}

	data, err := json.MarshalIndent(chain.Blocks(), "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))

	validation := chain.Validate()
	fmt.Printf("valid: %v, checked: %d\n", validation.Valid, validation.CheckedBlocks)
	for _, e := range validation.Errors {
		fmt.Println(" ", e)
	}
}
