package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ardanlabs/chainlab/foundation/lab/address"
	"github.com/spf13/cobra"
)

var privateKeyHex string

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Generate a bitcoin style address and show every derivation step.",
	Run:   addressRun,
}

func init() {
	rootCmd.AddCommand(addressCmd)
	addressCmd.Flags().StringVarP(&privateKeyHex, "key", "k", "", "Derive from this private key instead of generating one.")
}

func addressRun(cmd *cobra.Command, args []string) {
	var derivation address.Derivation
	var err error

	switch {
	case privateKeyHex != "":
		var key []byte
		key, err = hex.DecodeString(privateKeyHex)
		if err != nil {
			log.Fatal(err)
		}
		derivation, err = address.Derive(key, address.MainnetVersion)

	default:
		derivation, err = address.Generate()
	}
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.MarshalIndent(derivation, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
}
