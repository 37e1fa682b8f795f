package cmd

import (
	"fmt"

	"github.com/genum-ai/genum/internal/cli"
	"github.com/genum-ai/genum/internal/llm"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/spf13/cobra"
)

// NewCostCmd creates the command that prices a token count
func NewCostCmd(container *cli.Container) *cobra.Command {
	var (
		vendor          string
		model           string
		promptTokens    int64
		completion      int64
		promptPrice     float64
		completionPrice float64
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Calculate the cost of a token count",
		Long: `Price prompt and completion tokens with explicit per-million prices, or with the
catalogue prices of a vendor model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var prices provider.Prices
			if cmd.Flags().Changed("prompt-price") || cmd.Flags().Changed("completion-price") {
				prices = provider.Prices{Prompt: promptPrice, Completion: completionPrice}
			} else {
				if vendor == "" {
					vendor = string(container.Config.Defaults.Vendor)
				}
				if model == "" {
					model = container.Config.Defaults.Model
				}
				var ok bool
				prices, ok = llm.PricesFor(provider.Vendor(vendor), model)
				if !ok {
					return fmt.Errorf("no catalogue prices for %s/%s, pass --prompt-price and --completion-price", vendor, model)
				}
			}

			tokens := provider.NewTokens(promptTokens, completion, 0)
			cost := provider.CalculateCost(tokens, prices)

			container.ThemeMgr.RenderTable(cmd.OutOrStdout(),
				[]string{"", "Tokens", "Price / 1M", "Cost (USD)"},
				[][]string{
					{"prompt", fmt.Sprint(tokens.Prompt), fmt.Sprint(prices.Prompt), fmt.Sprintf("%.6f", cost.Prompt)},
					{"completion", fmt.Sprint(tokens.Completion), fmt.Sprint(prices.Completion), fmt.Sprintf("%.6f", cost.Completion)},
					{"total", fmt.Sprint(tokens.Total), "", fmt.Sprintf("%.6f", cost.Total)},
				},
			)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&vendor, "vendor", "v", "", "Vendor whose catalogue prices to use")
	flags.StringVarP(&model, "model", "m", "", "Model whose catalogue prices to use")
	flags.Int64Var(&promptTokens, "prompt-tokens", 0, "Prompt token count")
	flags.Int64Var(&completion, "completion-tokens", 0, "Completion token count")
	flags.Float64Var(&promptPrice, "prompt-price", 0, "USD per million prompt tokens")
	flags.Float64Var(&completionPrice, "completion-price", 0, "USD per million completion tokens")

	return cmd
}
