package cmd

import (
	"fmt"

	"github.com/genum-ai/genum/internal/cli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd creates a config command
func NewConfigCmd(container *cli.Container) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage genum configuration",
		Long:  `Commands to manage and view your genum configuration.`,
	}

	cfgCmd.AddCommand(NewConfigPreviewCmd(container))
	return cfgCmd
}

// NewConfigPreviewCmd creates a command to preview the effective configuration
func NewConfigPreviewCmd(container *cli.Container) *cobra.Command {
	var showKeys bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the effective configuration",
		Long:  `Display the configuration after environment overrides, with API keys masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := container.Config
			if !showKeys {
				cfg = cfg.Redacted()
			}

			configData, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			t := container.ThemeMgr.GetCurrentTheme()
			t.Primary().Println("\n📄 Configuration")
			t.Subtle().Printf("Located at: %s\n\n", container.ConfigFilePath())

			fmt.Fprintln(cmd.OutOrStdout(), string(configData))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showKeys, "show-keys", false, "Print API keys unmasked")
	return cmd
}
