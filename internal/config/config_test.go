package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/genum-ai/genum/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "missing file yields defaults",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name:    "empty file yields defaults",
			content: strPtr("  \n"),
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, provider.VendorOpenAI, cfg.Defaults.Vendor)
				assert.True(t, cfg.Store.Enabled)
			},
		},
		{
			name: "values override defaults",
			content: strPtr(`
vendors:
  anthropic:
    api_key: sk-ant
    base_url: http://localhost:9999
defaults:
  vendor: anthropic
  model: claude-3-5-haiku-latest
  temperature: 0.2
resilience:
  timeout: 30s
  max_attempts: 3
`),
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "sk-ant", cfg.Vendors[provider.VendorAnthropic].APIKey)
				assert.Equal(t, "http://localhost:9999", cfg.BaseURL(provider.VendorAnthropic))
				assert.Equal(t, provider.VendorAnthropic, cfg.Defaults.Vendor)
				require.NotNil(t, cfg.Defaults.Temperature)
				assert.InDelta(t, 0.2, *cfg.Defaults.Temperature, 1e-9)
				assert.Equal(t, 30*time.Second, cfg.Resilience.Timeout)
				assert.Equal(t, 3, cfg.Resilience.MaxAttempts)
				assert.Equal(t, 10222, cfg.Server.Port, "unset keys keep defaults")
			},
		},
		{
			name:    "invalid yaml",
			content: strPtr("vendors: [unclosed"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0600))
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Vendors[provider.VendorGemini] = VendorConfig{APIKey: "g-key"}
	cfg.Resilience = provider.ResilienceConfig{Timeout: time.Minute, MaxAttempts: 2}

	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, Save("", cfg))
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.Vendors[provider.VendorOpenAI] = VendorConfig{APIKey: "from-file", BaseURL: "http://proxy"}

	env := map[string]string{
		"OPENAI_API_KEY":    "from-env",
		"GEMINI_API_KEY":    "gem",
		"ANTHROPIC_API_KEY": "",
	}
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, VendorConfig{APIKey: "from-env", BaseURL: "http://proxy"}, cfg.Vendors[provider.VendorOpenAI])
	assert.Equal(t, map[provider.Vendor]string{
		provider.VendorOpenAI: "from-env",
		provider.VendorGemini: "gem",
	}, cfg.APIKeys())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GENUM_TEST_DOTENV=loaded\n"), 0600))

	t.Setenv("GENUM_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("GENUM_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("GENUM_TEST_DOTENV"))
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.Vendors[provider.VendorOpenAI] = VendorConfig{APIKey: "sk-1234567890abcd"}
	cfg.Vendors[provider.VendorGemini] = VendorConfig{APIKey: "short"}

	red := cfg.Redacted()

	assert.Equal(t, "sk-1*********abcd", red.Vendors[provider.VendorOpenAI].APIKey)
	assert.Equal(t, "*****", red.Vendors[provider.VendorGemini].APIKey)
	assert.Equal(t, "sk-1234567890abcd", cfg.Vendors[provider.VendorOpenAI].APIKey, "original untouched")
}

func TestNewAppConfig(t *testing.T) {
	c := NewAppConfig(WithVersion("1.2.3", "abc", "2024-01-01"))

	assert.Equal(t, "Genum", c.Name)
	assert.Equal(t, Repository{Owner: "genum-ai", Repo: "genum"}, c.Repository)
	assert.Equal(t, "v1.2.3 : abc (2024-01-01)", c.Version.VersionText())
}

func strPtr(s string) *string { return &s }
