package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	difficultypkg "github.com/ardanlabs/chainlab/foundation/lab/difficulty"
	"github.com/spf13/cobra"
)

var (
	currentDifficulty float64
	blockHeight       int
	avgBlockTime      float64
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast the next difficulty adjustment.",
	Run:   forecastRun,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
	forecastCmd.Flags().Float64VarP(&currentDifficulty, "difficulty", "d", 1.0, "Current network difficulty.")
	forecastCmd.Flags().IntVarP(&blockHeight, "height", "b", 0, "Current block height.")
	forecastCmd.Flags().Float64VarP(&avgBlockTime, "avg-block-time", "t", 600, "Average block time in seconds.")
}

func forecastRun(cmd *cobra.Command, args []string) {
	forecast, err := difficultypkg.NewForecast(currentDifficulty, blockHeight, avgBlockTime)
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.MarshalIndent(forecast, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
}
