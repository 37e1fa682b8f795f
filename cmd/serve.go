package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/genum-ai/genum/internal/cli"
	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/webserver"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the command that runs the HTTP API in the foreground
func NewServeCmd(container *cli.Container) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the run, usage and catalogue API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := container.Config
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			log := container.Logger.WithField("command", "serve")
			ws := webserver.BuildWebserver(cfg, container.Runner(nil), container.Store, log)

			if err := ws.Start(); err != nil {
				log.Error("Failed to start API server", map[string]interface{}{logger.ErrorKey: err})
				return err
			}
			container.ThemeMgr.GetCurrentTheme().Success().Printf("API listening on http://%s (Ctrl+C to stop)\n", ws.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			container.ThemeMgr.GetCurrentTheme().Info().Println("\nShutting down...")
			return ws.Stop()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on. Defaults to the configured port")
	return cmd
}
