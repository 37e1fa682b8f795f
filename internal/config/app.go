// Package config holds build information and the YAML configuration of genum.
package config

import (
	"fmt"
)

// Repository represents a GitHub repository
type Repository struct {
	Owner string
	Repo  string
}

// AppConfig represents the configuration for the application
type AppConfig struct {
	Name       string
	Repository Repository
	Version    Version
}

// Version represents the version information for the application
type Version struct {
	Version string
	Commit  string
	Date    string
}

// VersionText returns the version information as a string
func (v *Version) VersionText() string {
	return fmt.Sprintf("v%s : %s (%s)", v.Version, v.Commit, v.Date)
}

// Option is a function that configures an AppConfig
type Option func(*AppConfig)

// WithVersion sets the build information
func WithVersion(version, commit, date string) Option {
	return func(c *AppConfig) {
		c.Version = Version{Version: version, Commit: commit, Date: date}
	}
}

// WithRepository sets the repository used for self-update
func WithRepository(owner, repo string) Option {
	return func(c *AppConfig) {
		c.Repository = Repository{Owner: owner, Repo: repo}
	}
}

// NewAppConfig returns the genum application config with opts applied
func NewAppConfig(opts ...Option) *AppConfig {
	c := &AppConfig{
		Name:       "Genum",
		Repository: Repository{Owner: "genum-ai", Repo: "genum"},
		Version:    Version{Version: "0.0.1", Commit: "none", Date: "unknown"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
