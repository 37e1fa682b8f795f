package cmd

import (
	"github.com/genum-ai/genum/internal/cli"
	"github.com/genum-ai/genum/internal/initializer"
	"github.com/genum-ai/genum/internal/logger"
	"github.com/spf13/cobra"
)

// NewInitCmd creates an interactive init command
func NewInitCmd(container *cli.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Configure vendor API keys and defaults with a guided setup",
		Long:  `Start an interactive wizard that stores vendor API keys, the default vendor and model, and usage ledger settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := container.Logger.WithField("command", "init")
			log.Info("Starting initialization", nil)

			ini := initializer.NewInitializer(
				log,
				container.AppConfig,
				container.ThemeMgr,
				initializer.NewDefaultConfigManager(container.ConfigFilePath()),
			)

			if err := ini.Run(); err != nil {
				log.Error("Initialization failed", map[string]interface{}{logger.ErrorKey: err})
				container.ThemeMgr.GetCurrentTheme().Error().Printf("Initialization failed: %v\n", err)
				return err
			}

			log.Info("Initialization complete", nil)

			root := cmd.Root().Name()
			container.ThemeMgr.GetCurrentTheme().Info().Printf("\nRun '%s run --question \"...\"' to send a prompt.\n", root)
			container.ThemeMgr.GetCurrentTheme().Info().Printf("Run '%s help' to see the available commands.\n", root)
			return nil
		},
	}

	return cmd
}
