package main

import (
	"context"
	"fmt"
	"os"

	"github.com/genum-ai/genum/cmd"
	"github.com/genum-ai/genum/internal/cli"
)

var version = "0.0.1"
var commit = "none"
var date = "unknown"

func main() {
	ctx := context.Background()

	container, err := cli.NewContainer(ctx, cli.InitOptions{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during initialization: %v\n", err)
		os.Exit(1)
	}

	log := container.Logger
	log.Debugf("%s %s started", container.AppConfig.Name, container.AppConfig.Version.VersionText())

	rootCmd := cmd.NewRootCmd(container)
	rootCmd.AddCommand(
		cmd.NewInitCmd(container),
		cmd.NewConfigCmd(container),
		cmd.NewRunCmd(container),
		cmd.NewCostCmd(container),
		cmd.NewModelsCmd(container),
		cmd.NewUsageCmd(container),
		cmd.NewServeCmd(container),
		cmd.NewUpdateCmd(container),
	)

	err = rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error(fmt.Sprintf("%s exited with error", container.AppConfig.Name), map[string]interface{}{"error": err.Error()})
	}

	if closeErr := container.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", closeErr)
	}

	if err != nil {
		os.Exit(1)
	}
}
