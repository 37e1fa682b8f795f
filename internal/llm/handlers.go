package llm

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/genum-ai/genum/internal/api"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/go-chi/chi/v5"
)

type LLMHandler struct {
	providers []Provider
}

func NewLLMHandler(providers []Provider) *LLMHandler {
	return &LLMHandler{
		providers: providers,
	}
}

// ListProvidersHTTPHandler handles HTTP requests to list all LLM providers
func (h *LLMHandler) ListProvidersHTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		response := ListProvidersResponse{
			Providers: h.providers,
			Pagination: api.Pagination{
				Page:    1,
				PerPage: len(h.providers),
				Total:   len(h.providers),
			},
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
			return
		}
	}
}

// GetProviderByIDHTTPHandler handles HTTP requests to get a specific LLM provider by ID
func (h *LLMHandler) GetProviderByIDHTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerID := provider.Vendor(chi.URLParam(r, "vendor"))

		p := GetProviderByID(h.providers, providerID)
		if p == nil {
			http.Error(w, "Provider not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(p); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
			return
		}
	}
}

// CostHTTPHandler prices a token count with explicit or catalogue prices
func (h *LLMHandler) CostHTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var prices provider.Prices
		switch {
		case req.Prices != nil:
			prices = *req.Prices
		default:
			var ok bool
			prices, ok = FindPrices(h.providers, req.Vendor, req.Model)
			if !ok {
				http.Error(w, "Unknown model and no prices given", http.StatusNotFound)
				return
			}
		}

		tokens := provider.NewTokens(req.Tokens.Prompt, req.Tokens.Completion, req.Tokens.Total)

		w.Header().Set("Content-Type", "application/json")
		response := CostResponse{
			Prices: prices,
			Cost:   provider.CalculateCost(tokens, prices),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
			return
		}
	}
}
