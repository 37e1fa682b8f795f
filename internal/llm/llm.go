// Package llm is the catalogue of supported vendors and models, and builds the adapter registry.
package llm

import (
	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/genum-ai/genum/internal/provider"
	openaisdk "github.com/openai/openai-go"
)

// GetSupportedLLMProviders returns the list of supported LLM providers
func GetSupportedLLMProviders() []Provider {
	return []Provider{
		{
			ID:          provider.VendorAnthropic,
			Name:        "Anthropic",
			Description: "Claude models through the Messages API",
			Models: []Model{
				{
					Name:        "Claude Sonnet 4",
					Description: "High intelligence with balanced speed",
					ModelID:     string(anthropicsdk.ModelClaudeSonnet4_0),
					Prices:      provider.Prices{Prompt: 3, Completion: 15},
				},
				{
					Name:        "Claude Opus 4",
					Description: "Most capable model for complex tasks",
					ModelID:     string(anthropicsdk.ModelClaudeOpus4_0),
					Prices:      provider.Prices{Prompt: 15, Completion: 75},
				},
				{
					Name:        "Claude 3.7 Sonnet",
					Description: "Extended thinking capable model",
					ModelID:     string(anthropicsdk.ModelClaude3_7SonnetLatest),
					Prices:      provider.Prices{Prompt: 3, Completion: 15},
				},
				{
					Name:        "Claude 3.5 Haiku Latest",
					Description: "Fast and cost-effective model",
					ModelID:     string(anthropicsdk.ModelClaude3_5HaikuLatest),
					Prices:      provider.Prices{Prompt: 0.8, Completion: 4},
				},
			},
		},
		{
			ID:          provider.VendorGemini,
			Name:        "Google Gemini",
			Description: "Gemini models through the Gemini API",
			Models: []Model{
				{
					Name:        "Gemini 2.5 Pro",
					Description: "Reasoning model for complex problems",
					ModelID:     "gemini-2.5-pro",
					Prices:      provider.Prices{Prompt: 1.25, Completion: 10},
				},
				{
					Name:        "Gemini 2.5 Flash",
					Description: "Fast model with thinking support",
					ModelID:     "gemini-2.5-flash",
					Prices:      provider.Prices{Prompt: 0.3, Completion: 2.5},
				},
				{
					Name:        "Gemini 2.0 Flash",
					Description: "High-performance and ultra-fast model",
					ModelID:     "gemini-2.0-flash",
					Prices:      provider.Prices{Prompt: 0.1, Completion: 0.4},
				},
				{
					Name:        "Gemini 2.0 Flash Lite",
					Description: "Lightweight and efficient version of Gemini 2.0",
					ModelID:     "gemini-2.0-flash-lite",
					Prices:      provider.Prices{Prompt: 0.075, Completion: 0.3},
				},
			},
		},
		{
			ID:          provider.VendorOpenAI,
			Name:        "OpenAI",
			Description: "OpenAI models through the Responses API",
			Models: []Model{
				{
					Name:        "GPT-4.1",
					Description: "Flagship model for complex tasks",
					ModelID:     string(openaisdk.ChatModelGPT4_1),
					Prices:      provider.Prices{Prompt: 2, Completion: 8},
				},
				{
					Name:        "GPT-4.1 mini",
					Description: "Balanced for intelligence, speed and cost",
					ModelID:     string(openaisdk.ChatModelGPT4_1Mini),
					Prices:      provider.Prices{Prompt: 0.4, Completion: 1.6},
				},
				{
					Name:        "GPT-4o",
					Description: "Fast, intelligent, flexible GPT model",
					ModelID:     string(openaisdk.ChatModelGPT4o),
					Prices:      provider.Prices{Prompt: 2.5, Completion: 10},
				},
				{
					Name:        "GPT-4o mini",
					Description: "Fast, affordable small model for focused tasks",
					ModelID:     string(openaisdk.ChatModelGPT4oMini),
					Prices:      provider.Prices{Prompt: 0.15, Completion: 0.6},
				},
				{
					Name:        "o3-mini",
					Description: "Small reasoning model",
					ModelID:     string(openaisdk.ChatModelO3Mini),
					Prices:      provider.Prices{Prompt: 1.1, Completion: 4.4},
				},
			},
		},
	}
}

// GetProviderByID returns the provider with the given id, or nil
func GetProviderByID(providers []Provider, id provider.Vendor) *Provider {
	for _, p := range providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

// PricesFor returns the catalogue prices of a model
func PricesFor(vendor provider.Vendor, model string) (provider.Prices, bool) {
	return FindPrices(GetSupportedLLMProviders(), vendor, model)
}

// FindPrices looks up the prices of a model in the given providers
func FindPrices(providers []Provider, vendor provider.Vendor, model string) (provider.Prices, bool) {
	p := GetProviderByID(providers, vendor)
	if p == nil {
		return provider.Prices{}, false
	}
	for _, m := range p.Models {
		if m.ModelID == model {
			return m.Prices, true
		}
	}
	return provider.Prices{}, false
}
