package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/genum-ai/genum/internal/config"
	"github.com/genum-ai/genum/internal/filesystem"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/genum-ai/genum/internal/theme"
	"github.com/genum-ai/genum/internal/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(home string) InitOptions {
	return InitOptions{
		Version:     "1.0.0",
		Commit:      "abc",
		Date:        "today",
		Theme:       theme.NewMockTheme(&bytes.Buffer{}),
		HomeDir:     home,
		DotEnvFiles: []string{filepath.Join(home, "missing.env")},
	}
}

func TestNewContainer(t *testing.T) {
	home := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "env-key")

	c, err := NewContainer(context.Background(), testOptions(home))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	assert.Equal(t, "v1.0.0 : abc (today)", c.AppConfig.Version.VersionText())
	assert.Equal(t, filepath.Join(home, ".genum", "config", "config.yaml"), c.ConfigFilePath())
	assert.Equal(t, "env-key", c.Config.Vendors[provider.VendorOpenAI].APIKey)
	assert.Len(t, c.Registry.Vendors(), 3)

	_, isSQLite := c.Store.(*usage.SQLiteStore)
	assert.True(t, isSQLite, "store is enabled by default")
	_, err = os.Stat(c.Paths[filesystem.UsageDB])
	assert.NoError(t, err)

	assert.NotNil(t, c.Runner(nil))
	assert.NotNil(t, c.Runner(usage.NewMemoryStore()))
}

func TestNewContainer_ReadsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GEMINI_API_KEY", "")
	cfg := config.Default()
	cfg.Store.Enabled = false
	cfg.Vendors[provider.VendorGemini] = config.VendorConfig{APIKey: "g"}
	require.NoError(t, config.Save(filepath.Join(home, ".genum", "config", "config.yaml"), cfg))

	c, err := NewContainer(context.Background(), testOptions(home))
	require.NoError(t, err)
	defer c.Close()

	_, isMemory := c.Store.(*usage.MemoryStore)
	assert.True(t, isMemory)
	assert.Equal(t, "g", c.Config.APIKeys()[provider.VendorGemini])
}

func TestNewContainer_RequiresBuildInfo(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *InitOptions)
		errMsg string
	}{
		{"version", func(o *InitOptions) { o.Version = "" }, "version is required"},
		{"commit", func(o *InitOptions) { o.Commit = "" }, "commit is required"},
		{"date", func(o *InitOptions) { o.Date = "" }, "date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t.TempDir())
			tt.mutate(&opts)

			_, err := NewContainer(context.Background(), opts)
			assert.EqualError(t, err, tt.errMsg)
		})
	}
}
