// Package cmd holds the cobra commands of the genum binary.
package cmd

import (
	"fmt"
	"strings"

	"github.com/genum-ai/genum/internal/cli"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd(container *cli.Container) *cobra.Command {
	rootCmd := &cobra.Command{
		Version: container.AppConfig.Version.VersionText(),
		Use:     "genum",
		Short:   "Run prompts against OpenAI, Anthropic and Gemini through one interface",
		Long: `Genum sends a prompt with optional files, tools and a response schema to any
supported vendor and returns a normalized answer with token usage and cost.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			themeManager := container.ThemeMgr
			themeManager.DisplayBanner(
				fmt.Sprintf("Welcome to %s", container.AppConfig.Name),
				44,
				"Multi-vendor prompt runner",
				fmt.Sprintf("Vendors: %s", vendorList(container.Registry.Vendors())),
			)
			themeManager.GetCurrentTheme().Info().Println("")

			if len(container.Config.APIKeys()) == 0 {
				themeManager.GetCurrentTheme().Warning().Printf("No API keys configured. Run '%s init' to set up your vendors.\n", cmd.Name())
				return nil
			}

			themeManager.GetCurrentTheme().Info().Printf("Default: %s / %s\n", container.Config.Defaults.Vendor, container.Config.Defaults.Model)
			return cmd.Help()
		},
	}

	return rootCmd
}

func vendorList(vendors []provider.Vendor) string {
	names := make([]string, len(vendors))
	for i, v := range vendors {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
