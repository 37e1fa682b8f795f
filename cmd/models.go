package cmd

import (
	"fmt"

	"github.com/genum-ai/genum/internal/cli"
	"github.com/genum-ai/genum/internal/llm"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/spf13/cobra"
)

// NewModelsCmd creates the command that lists the model catalogue
func NewModelsCmd(container *cli.Container) *cobra.Command {
	var vendor string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List supported vendors and models with default prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			providers := llm.GetSupportedLLMProviders()
			if vendor != "" {
				p := llm.GetProviderByID(providers, provider.Vendor(vendor))
				if p == nil {
					return fmt.Errorf("%w: %s", provider.ErrUnknownVendor, vendor)
				}
				providers = []llm.Provider{*p}
			}

			var rows [][]string
			for _, p := range providers {
				for _, m := range p.Models {
					rows = append(rows, []string{
						string(p.ID),
						m.ModelID,
						m.Name,
						fmt.Sprint(m.Prices.Prompt),
						fmt.Sprint(m.Prices.Completion),
					})
				}
			}

			container.ThemeMgr.RenderTable(cmd.OutOrStdout(),
				[]string{"Vendor", "Model", "Name", "Prompt $/1M", "Completion $/1M"},
				rows,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&vendor, "vendor", "v", "", "Only list models of this vendor")
	return cmd
}
