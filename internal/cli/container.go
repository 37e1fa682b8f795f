// Package cli builds the dependencies shared by the genum commands.
package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/genum-ai/genum/internal/config"
	"github.com/genum-ai/genum/internal/filesystem"
	"github.com/genum-ai/genum/internal/llm"
	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/genum-ai/genum/internal/runner"
	"github.com/genum-ai/genum/internal/theme"
	"github.com/genum-ai/genum/internal/usage"
)

// Container holds all application dependencies
type Container struct {
	AppConfig  *config.AppConfig
	Config     config.Config
	Filesystem *filesystem.Filesystem
	Paths      map[filesystem.PathType]string
	Logger     logger.Logger
	ThemeMgr   *theme.Manager
	HTTPClient *http.Client
	Registry   *provider.Registry
	Store      usage.Store
}

// InitOptions contains options for initialization
type InitOptions struct {
	Version string
	Commit  string
	Date    string

	// LogLevel overrides the configured level when set
	LogLevel logger.LogLevel
	// Theme overrides the configured theme when set
	Theme theme.Theme
	// HomeDir roots the app directory somewhere other than the user's home
	HomeDir string
	// DotEnvFiles are loaded before the environment overrides are applied
	DotEnvFiles []string
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, opts InitOptions) (*Container, error) {
	container := &Container{}
	var err error

	if opts.Version == "" {
		return nil, fmt.Errorf("version is required")
	}

	if opts.Commit == "" {
		return nil, fmt.Errorf("commit is required")
	}

	if opts.Date == "" {
		return nil, fmt.Errorf("date is required")
	}

	container.AppConfig = config.NewAppConfig(config.WithVersion(opts.Version, opts.Commit, opts.Date))

	container.Filesystem = filesystem.NewAppFilesystem(container.AppConfig)
	if opts.HomeDir != "" {
		container.Filesystem.WithHomeDir(opts.HomeDir)
	}

	container.Paths, err = container.Filesystem.EnsureAllPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to ensure all application paths: %w", err)
	}

	if err := config.LoadDotEnv(opts.DotEnvFiles...); err != nil {
		return nil, err
	}

	container.Config, err = config.Load(container.Paths[filesystem.ConfigFilePath])
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	container.Config.ApplyEnv(nil)

	t := opts.Theme
	if t == nil {
		t = theme.ByName(theme.Name(container.Config.Theme))
	}
	container.ThemeMgr = theme.NewManager(t)

	level := opts.LogLevel
	if level == "" {
		level = logger.LogLevel(container.Config.Logging.Level)
	}

	container.Logger, err = logger.NewZapLogger(logger.Config{
		LogLevel:      level,
		FilePath:      container.Paths[filesystem.LogsFilePath],
		ErrorFilePath: container.Paths[filesystem.ErrorLogsFilePath],
		UseConsole:    container.Config.Logging.Console,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	provider.SetLogger(container.Logger.WithField("component", "provider"))

	container.HTTPClient = &http.Client{}

	container.Registry, err = llm.BuildRegistry(container.Config, container.HTTPClient, container.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build adapter registry: %w", err)
	}

	container.Store, err = openStore(ctx, container.Config.Store, container.Paths[filesystem.UsageDB])
	if err != nil {
		return nil, err
	}

	container.Logger.Debug("Container initialized", map[string]interface{}{
		"vendors":       container.Registry.Vendors(),
		"store_enabled": container.Config.Store.Enabled,
	})

	return container, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig, defaultPath string) (usage.Store, error) {
	if !cfg.Enabled {
		return usage.NewMemoryStore(), nil
	}

	path := cfg.Path
	if path == "" {
		path = defaultPath
	}

	store, err := usage.NewSQLiteStore(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage store: %w", err)
	}
	return store, nil
}

// Runner returns a runner recording into store, or into the container's store when nil
func (c *Container) Runner(store usage.Store) *runner.Service {
	if store == nil {
		store = c.Store
	}
	return runner.NewService(
		c.Registry,
		store,
		c.Logger,
		runner.WithAPIKeys(c.Config.APIKeys()),
		runner.WithPriceLookup(llm.PricesFor),
	)
}

// ConfigFilePath returns the location of the YAML configuration
func (c *Container) ConfigFilePath() string {
	return c.Paths[filesystem.ConfigFilePath]
}

// Close releases the store and flushes the logger
func (c *Container) Close() error {
	var err error
	if c.Store != nil {
		err = c.Store.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return err
}
