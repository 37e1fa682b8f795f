package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/genum-ai/genum/internal/cli"
	"github.com/genum-ai/genum/internal/config"
	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/theme"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

// NewUpdateCmd creates a new update command
func NewUpdateCmd(c *cli.Container) *cobra.Command {
	var yes bool

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Check for updates and update the CLI",
		Long:  "Check for updates and if a new version is available, download and install it",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUpdate(c.ThemeMgr.GetCurrentTheme(), c.AppConfig.Repository, c.AppConfig.Version.Version, yes)
			if err != nil {
				c.Logger.Error("Update failed", map[string]interface{}{logger.ErrorKey: err})
			}
			return err
		},
	}

	updateCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Install without asking for confirmation")
	return updateCmd
}

func runUpdate(t theme.Theme, repository config.Repository, currentAppVersion string, yes bool) error {
	t.Info().Printf("Checking for updates for %s/%s... [Current version: %s]\n",
		repository.Owner,
		repository.Repo,
		currentAppVersion,
	)

	latest, found, err := selfupdate.DetectLatest(fmt.Sprintf("%s/%s", repository.Owner, repository.Repo))
	if err != nil {
		return fmt.Errorf("error detecting version: %w", err)
	}

	if latest == nil {
		t.Warning().Println("No updates found")
		return nil
	}

	if !found || !versionChanged(latest.Version.String(), currentAppVersion) {
		t.Success().Printf("Current version (%s) is the latest\n", currentAppVersion)
		return nil
	}

	t.Primary().Printf("New version available: %s (current: %s)\n", latest.Version, currentAppVersion)
	t.Subtle().Printf("Release notes:\n%s\n", latest.ReleaseNotes)

	if !yes {
		confirmed := false
		if err := survey.AskOne(&survey.Confirm{Message: "Do you want to update?"}, &confirmed); err != nil {
			return err
		}
		if !confirmed {
			t.Warning().Println("Update cancelled")
			return nil
		}
	}

	t.Info().Println("Downloading and installing update...")
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("error updating binary: %w", err)
	}

	t.Success().Printf("Successfully updated to version %s\n", latest.Version)
	return nil
}

// versionChanged compares versions ignoring a leading v
func versionChanged(latest, current string) bool {
	return strings.TrimPrefix(latest, "v") != strings.TrimPrefix(current, "v")
}
