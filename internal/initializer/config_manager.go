package initializer

import (
	"fmt"
	"os"

	"github.com/genum-ai/genum/internal/config"
)

// DefaultConfigManager implements ConfigManager with real file operations
type DefaultConfigManager struct {
	configFilePath string
}

func NewDefaultConfigManager(configFilePath string) *DefaultConfigManager {
	return &DefaultConfigManager{configFilePath: configFilePath}
}

// LoadConfig loads the existing configuration, or the defaults when the file is missing or empty
func (cm *DefaultConfigManager) LoadConfig() (config.Config, error) {
	if cm.configFilePath == "" {
		return config.Default(), fmt.Errorf("config file path not set")
	}
	return config.Load(cm.configFilePath)
}

// SaveConfig saves the configuration to disk
func (cm *DefaultConfigManager) SaveConfig(cfg config.Config) error {
	return config.Save(cm.configFilePath, cfg)
}

// ConfigExists checks if a non-empty configuration file already exists
func (cm *DefaultConfigManager) ConfigExists() bool {
	info, err := os.Stat(cm.configFilePath)
	if err != nil {
		return false
	}
	return info.Size() > 0
}
