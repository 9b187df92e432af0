package main

import (
	"github.com/spf13/cobra"

	"github.com/menulens/menulens/internal/cli"
	"github.com/menulens/menulens/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "menulens",
	Short: "Menu digitization and allergen detection pipeline",
	Long: `Menulens turns restaurant menu files (PDF scans and photos) into
structured menu data with allergen alerts.

The pipeline includes:
  - PDF text extraction and image OCR with LLM vision fallback
  - Heuristic menu structuring (sections, items, prices, ingredients)
  - Allergen keyword detection with severity tiers
  - LLM-assisted dish safety ranking against a diner's allergy profile`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.menulens/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
