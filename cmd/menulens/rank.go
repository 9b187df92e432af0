package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/menulens/menulens/internal/allergen"
	"github.com/menulens/menulens/internal/cli"
	"github.com/menulens/menulens/internal/config"
	"github.com/menulens/menulens/internal/safedish"
)

var rankAllergens string

var rankCmd = &cobra.Command{
	Use:   "rank <image>",
	Short: "Rank dishes on a menu image by safety for an allergy profile",
	Long: `Rank the dishes on a menu image by how safe they are for a diner
with the given allergies. Requires an LLM API key.

Allergen ids: milk, eggs, fish, shellfish, tree_nuts, peanuts, wheat,
soybeans, sesame.

Examples:
  menulens rank menu.jpg --allergens peanuts,shellfish
  menulens rank menu.png --allergens '["milk","tree_nuts"]' -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		selected := allergen.ParseSelection(rankAllergens)
		if len(selected) == 0 {
			return errors.New("at least one known allergen id is required (--allergens)")
		}

		client := newLLMClient(cfg)
		ranker := newRanker(cfg, client, logger)
		if ranker == nil {
			return errors.New("dish ranking requires an LLM API key (set OPENAI_API_KEY)")
		}

		image, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		recommendations, err := ranker.Rank(ctx, image, selected)
		if err != nil {
			if errors.Is(err, safedish.ErrMalformedResponse) {
				logger.Warn("ranking reply was malformed, no recommendations", "error", err)
				recommendations = nil
			} else {
				return err
			}
		}

		return cli.Output(safedish.Reconcile(recommendations, selected))
	},
}

func init() {
	rankCmd.Flags().StringVar(&rankAllergens, "allergens", "", "allergen ids as a comma separated list or JSON array")

	rootCmd.AddCommand(rankCmd)
}
