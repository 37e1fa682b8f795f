package llm

import (
	"github.com/genum-ai/genum/internal/api"
	"github.com/genum-ai/genum/internal/provider"
)

// Model is a model a vendor serves, with its default prices
type Model struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ModelID     string          `json:"modelId"`
	Prices      provider.Prices `json:"prices"`
}

// Provider represents a vendor and the models it serves
type Provider struct {
	ID          provider.Vendor `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Models      []Model         `json:"models"`
}

// ListProvidersResponse is the response structure for listing LLM providers
type ListProvidersResponse struct {
	Providers []Provider `json:"providers"`
	api.Pagination
}

// CostRequest asks for the cost of a token count. Zero prices are looked up from the catalogue.
type CostRequest struct {
	Vendor provider.Vendor  `json:"vendor,omitempty"`
	Model  string           `json:"model,omitempty"`
	Tokens provider.Tokens  `json:"tokens"`
	Prices *provider.Prices `json:"prices,omitempty"`
}

// CostResponse is the priced token count
type CostResponse struct {
	Prices provider.Prices `json:"prices"`
	Cost   provider.Cost   `json:"cost"`
}
