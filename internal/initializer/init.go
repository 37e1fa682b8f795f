// Package initializer runs the interactive first-run setup.
package initializer

import (
	"fmt"

	"github.com/genum-ai/genum/internal/config"
	"github.com/genum-ai/genum/internal/llm"
	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/theme"
)

// ConfigureFunc fills cfg interactively
type ConfigureFunc func(themeManager *theme.Manager, cfg *config.Config) error

// Initializer handles the interactive setup process
type Initializer struct {
	Config        config.Config
	IsUpdateMode  bool
	configManager ConfigManager
	configure     ConfigureFunc
	log           logger.Logger
	appConfig     *config.AppConfig
	cliTheme      *theme.Manager
}

// ConfigManager interface for loading/saving configuration
type ConfigManager interface {
	LoadConfig() (config.Config, error)
	SaveConfig(config.Config) error
	ConfigExists() bool
}

// NewInitializer creates a new initializer with default dependencies
func NewInitializer(log logger.Logger, appCfg *config.AppConfig, themeManager *theme.Manager, configManager ConfigManager) *Initializer {
	return &Initializer{
		log:           logger.OrDiscard(log),
		appConfig:     appCfg,
		configManager: configManager,
		configure:     llm.ConfigureLLM,
		cliTheme:      themeManager,
	}
}

// WithConfigManager sets a custom config manager (useful for testing)
func (i *Initializer) WithConfigManager(cm ConfigManager) *Initializer {
	i.configManager = cm
	return i
}

// WithConfigure replaces the interactive questions (useful for testing)
func (i *Initializer) WithConfigure(fn ConfigureFunc) *Initializer {
	i.configure = fn
	return i
}

// Run starts the interactive configuration process
func (i *Initializer) Run() error {
	i.log.Debug("Starting configuration process", nil)

	var err error
	i.IsUpdateMode = i.configManager.ConfigExists()
	i.log.Debug("Resolved configuration mode", map[string]interface{}{"update_mode": i.IsUpdateMode})

	t := i.cliTheme.GetCurrentTheme()
	if i.IsUpdateMode {
		i.Config, err = i.configManager.LoadConfig()
		if err != nil {
			i.log.Error("Error loading configuration", map[string]interface{}{logger.ErrorKey: err})
			return fmt.Errorf("error loading configuration: %w", err)
		}

		t.Primary().Println("🔄 Configuration Update Mode")
		t.Warning().Println("You are about to update your existing configuration. Press Enter to keep current values, or provide new ones.")
	} else {
		i.Config = config.Default()
		t.Primary().Println("🔧 Initial Configuration")
		t.Info().Printf("Please configure %s for the first time. You can always change the configuration later.\n", i.appConfig.Name)
	}

	if err := i.configure(i.cliTheme, &i.Config); err != nil {
		i.log.Error("Error configuring vendors", map[string]interface{}{logger.ErrorKey: err})
		return fmt.Errorf("error configuring vendors: %w", err)
	}

	i.log.Debug("Saving configuration", map[string]interface{}{
		"vendor": string(i.Config.Defaults.Vendor),
		"model":  i.Config.Defaults.Model,
	})
	if err := i.configManager.SaveConfig(i.Config); err != nil {
		i.log.Error("Error saving configuration", map[string]interface{}{logger.ErrorKey: err})
		return fmt.Errorf("error saving configuration: %w", err)
	}

	i.log.Debug("Configuration process complete", nil)
	t.Success().Println("\n✅ Configuration updated successfully!")
	return nil
}
