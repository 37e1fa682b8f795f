package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/genum-ai/genum/internal/provider"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// VendorConfig holds the credentials and endpoint override of one vendor
type VendorConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// DefaultsConfig holds the values used when a run does not name them
type DefaultsConfig struct {
	Vendor      provider.Vendor `yaml:"vendor"`
	Model       string          `yaml:"model"`
	Temperature *float64        `yaml:"temperature,omitempty"`
	MaxTokens   int64           `yaml:"max_tokens,omitempty"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port int `yaml:"port"`
}

// StoreConfig represents the usage ledger configuration. An empty Path uses the app data directory.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// Config represents the main configuration
type Config struct {
	Vendors    map[provider.Vendor]VendorConfig `yaml:"vendors"`
	Defaults   DefaultsConfig                   `yaml:"defaults"`
	Logging    LoggingConfig                    `yaml:"logging"`
	Server     ServerConfig                     `yaml:"server"`
	Store      StoreConfig                      `yaml:"store"`
	Resilience provider.ResilienceConfig        `yaml:"resilience"`
	Theme      string                           `yaml:"theme,omitempty"`
}

// EnvKeys maps each vendor to the environment variable that overrides its API key
var EnvKeys = map[provider.Vendor]string{
	provider.VendorOpenAI:    "OPENAI_API_KEY",
	provider.VendorAnthropic: "ANTHROPIC_API_KEY",
	provider.VendorGemini:    "GEMINI_API_KEY",
}

// Default returns the configuration written on first start
func Default() Config {
	return Config{
		Vendors: map[provider.Vendor]VendorConfig{},
		Defaults: DefaultsConfig{
			Vendor: provider.VendorOpenAI,
			Model:  "gpt-4o-mini",
		},
		Logging: LoggingConfig{Level: "info"},
		Server:  ServerConfig{Port: 10222},
		Store:   StoreConfig{Enabled: true},
		Theme:   "professional",
	}
}

// Load reads the YAML file at path. A missing or empty file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Vendors == nil {
		cfg.Vendors = map[provider.Vendor]VendorConfig{}
	}

	return cfg, nil
}

// Save writes cfg as YAML to path, creating the parent directory
func Save(path string, cfg Config) error {
	if path == "" {
		return fmt.Errorf("config file path not set")
	}

	yamlData, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// the file holds API keys
	return os.WriteFile(path, yamlData, 0600)
}

// LoadDotEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides vendor API keys with the matching environment variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if c.Vendors == nil {
		c.Vendors = map[provider.Vendor]VendorConfig{}
	}

	for vendor, name := range EnvKeys {
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		vc := c.Vendors[vendor]
		vc.APIKey = value
		c.Vendors[vendor] = vc
	}
}

// APIKeys returns the configured key of every vendor that has one
func (c Config) APIKeys() map[provider.Vendor]string {
	keys := make(map[provider.Vendor]string, len(c.Vendors))
	for vendor, vc := range c.Vendors {
		if vc.APIKey != "" {
			keys[vendor] = vc.APIKey
		}
	}
	return keys
}

// BaseURL returns the endpoint override of vendor, or an empty string
func (c Config) BaseURL(vendor provider.Vendor) string {
	return c.Vendors[vendor].BaseURL
}

// Redacted returns a copy with API keys masked, for display
func (c Config) Redacted() Config {
	out := c
	out.Vendors = make(map[provider.Vendor]VendorConfig, len(c.Vendors))
	for vendor, vc := range c.Vendors {
		vc.APIKey = mask(vc.APIKey)
		out.Vendors[vendor] = vc
	}
	return out
}

func mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
