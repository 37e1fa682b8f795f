package llm

import (
	"testing"

	"github.com/genum-ai/genum/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSupportedLLMProviders(t *testing.T) {
	providers := GetSupportedLLMProviders()
	require.Len(t, providers, 3)

	for _, p := range providers {
		assert.NotEmpty(t, p.Models, p.ID)
		for _, m := range p.Models {
			assert.NotEmpty(t, m.ModelID)
			assert.Positive(t, m.Prices.Prompt, m.ModelID)
			assert.Positive(t, m.Prices.Completion, m.ModelID)
		}
	}
}

func TestPricesFor(t *testing.T) {
	tests := []struct {
		name   string
		vendor provider.Vendor
		model  string
		want   provider.Prices
		found  bool
	}{
		{name: "known gemini model", vendor: provider.VendorGemini, model: "gemini-2.0-flash", want: provider.Prices{Prompt: 0.1, Completion: 0.4}, found: true},
		{name: "known openai model", vendor: provider.VendorOpenAI, model: "gpt-4o-mini", want: provider.Prices{Prompt: 0.15, Completion: 0.6}, found: true},
		{name: "model of another vendor", vendor: provider.VendorAnthropic, model: "gpt-4o-mini"},
		{name: "unknown vendor", vendor: "mistral", model: "large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PricesFor(tt.vendor, tt.model)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindPrices(t *testing.T) {
	providers := []Provider{{
		ID:     provider.VendorAnthropic,
		Models: []Model{{ModelID: "claude-local", Prices: provider.Prices{Prompt: 7, Completion: 9}}},
	}}

	got, ok := FindPrices(providers, provider.VendorAnthropic, "claude-local")
	assert.True(t, ok)
	assert.Equal(t, provider.Prices{Prompt: 7, Completion: 9}, got)

	_, ok = FindPrices(providers, provider.VendorGemini, "gemini-2.0-flash")
	assert.False(t, ok)
}

func TestGetProviderByID(t *testing.T) {
	p := GetProviderByID(GetSupportedLLMProviders(), provider.VendorAnthropic)
	require.NotNil(t, p)
	assert.Equal(t, "Anthropic", p.Name)

	assert.Nil(t, GetProviderByID(GetSupportedLLMProviders(), "nope"))
}
