// Package filesystem prepares the application directory layout under the user's home.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/genum-ai/genum/internal/config"
)

type PathType string

const (
	configYamlFileName = "config.yaml"
	usageDBFileName    = "usage.db"

	AppDirectory      PathType = "app"
	ConfigDirectory   PathType = "config"
	ConfigFilePath    PathType = "config_file"
	LogsDirectory     PathType = "logs"
	LogsFilePath      PathType = "log_file"
	ErrorLogsFilePath PathType = "error_log_file"
	DataDirectory     PathType = "data"
	UsageDB           PathType = "usage_db"
)

// Filesystem is a struct that contains the methods to interact with local storage.
type Filesystem struct {
	appCfg  *config.AppConfig
	homeDir string
}

// NewAppFilesystem creates a new Filesystem instance rooted at the user's home directory.
func NewAppFilesystem(appCfg *config.AppConfig) *Filesystem {
	return &Filesystem{
		appCfg: appCfg,
	}
}

// WithHomeDir roots the layout at dir instead of the user's home directory
func (s *Filesystem) WithHomeDir(dir string) *Filesystem {
	s.homeDir = dir
	return s
}

// EnsureAllPaths creates the directory tree and returns every known path.
// Files are only located here; the logger and the usage store create them on first write.
func (s *Filesystem) EnsureAllPaths() (map[PathType]string, error) {
	paths := map[PathType]string{}

	appDirectory, err := s.ensureAppDirectory()
	if err != nil {
		return paths, err
	}
	paths[AppDirectory] = appDirectory

	for _, dir := range []struct {
		pathType PathType
		name     string
	}{
		{ConfigDirectory, "config"},
		{LogsDirectory, "logs"},
		{DataDirectory, "data"},
	} {
		p := filepath.Join(appDirectory, dir.name)
		if err := os.MkdirAll(p, 0750); err != nil {
			return paths, fmt.Errorf("failed to create %s directory: %w", dir.name, err)
		}
		paths[dir.pathType] = p
	}

	name := strings.ToLower(s.appCfg.Name)
	paths[ConfigFilePath] = filepath.Join(paths[ConfigDirectory], configYamlFileName)
	paths[LogsFilePath] = filepath.Join(paths[LogsDirectory], fmt.Sprintf("%s.log", name))
	paths[ErrorLogsFilePath] = filepath.Join(paths[LogsDirectory], fmt.Sprintf("%s-error.log", name))
	paths[UsageDB] = filepath.Join(paths[DataDirectory], usageDBFileName)

	return paths, nil
}

func (s *Filesystem) ensureAppDirectory() (string, error) {
	homeDir, err := s.getUserHomeDirectory()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(homeDir, fmt.Sprintf(".%s", strings.ToLower(s.appCfg.Name)))

	if err := os.MkdirAll(appDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create app directory: %w", err)
	}

	return appDir, nil
}

func (s *Filesystem) getUserHomeDirectory() (string, error) {
	if s.homeDir != "" {
		return s.homeDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return homeDir, nil
}
