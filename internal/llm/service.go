package llm

import (
	"fmt"
	"net/http"

	"github.com/genum-ai/genum/internal/config"
	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/genum-ai/genum/internal/provider/anthropic"
	"github.com/genum-ai/genum/internal/provider/gemini"
	"github.com/genum-ai/genum/internal/provider/openai"
)

// BuildAdapter creates the adapter of one vendor. The HTTP client is shared so
// connections are reused across calls.
func BuildAdapter(vendor provider.Vendor, cfg config.Config, httpClient *http.Client, log logger.Logger) (provider.Adapter, error) {
	if vendor == "" {
		return nil, fmt.Errorf("vendor not specified")
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	log = logger.OrDiscard(log).WithField("vendor", string(vendor))
	baseURL := cfg.BaseURL(vendor)

	var adapter provider.Adapter
	switch vendor {
	case provider.VendorOpenAI:
		opts := []openai.Option{openai.WithHTTPClient(httpClient), openai.WithLogger(log)}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		adapter = openai.New(opts...)
	case provider.VendorAnthropic:
		opts := []anthropic.Option{anthropic.WithHTTPClient(httpClient), anthropic.WithLogger(log)}
		if baseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(baseURL))
		}
		adapter = anthropic.New(opts...)
	case provider.VendorGemini:
		opts := []gemini.Option{gemini.WithHTTPClient(httpClient), gemini.WithLogger(log)}
		if baseURL != "" {
			opts = append(opts, gemini.WithBaseURL(baseURL))
		}
		adapter = gemini.New(opts...)
	default:
		return nil, fmt.Errorf("%w: %s", provider.ErrUnknownVendor, vendor)
	}

	return provider.NewResilient(adapter, cfg.Resilience), nil
}

// BuildRegistry registers an adapter for every supported vendor
func BuildRegistry(cfg config.Config, httpClient *http.Client, log logger.Logger) (*provider.Registry, error) {
	registry := provider.NewRegistry()
	for _, p := range GetSupportedLLMProviders() {
		adapter, err := BuildAdapter(p.ID, cfg, httpClient, log)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s adapter: %w", p.ID, err)
		}
		registry.Register(adapter)
	}
	return registry, nil
}
