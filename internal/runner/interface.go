package runner

import (
	"context"

	"github.com/genum-ai/genum/internal/provider"
	"github.com/google/uuid"
)

// RunRequest selects a vendor and carries the provider request
type RunRequest struct {
	Vendor  provider.Vendor  `json:"vendor"`
	Request provider.Request `json:"request"`
}

// RunResult is a priced response
type RunResult struct {
	RunID        uuid.UUID          `json:"run_id"`
	Vendor       provider.Vendor    `json:"vendor"`
	Model        string             `json:"model"`
	Response     *provider.Response `json:"response"`
	Cost         provider.Cost      `json:"cost"`
	SchemaValid  *bool              `json:"schema_valid,omitempty"`
	SchemaErrors []string           `json:"schema_errors,omitempty"`
}

// Runner executes prompts against vendors
type Runner interface {
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
}

// PriceLookup returns the default per-million prices of a model
type PriceLookup func(vendor provider.Vendor, model string) (provider.Prices, bool)
