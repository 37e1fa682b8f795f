// Package usage records every prompt run with its tokens and cost.
package usage

import (
	"context"
	"time"

	"github.com/genum-ai/genum/internal/provider"
	"github.com/google/uuid"
)

// Record is one priced vendor call
type Record struct {
	ID             uuid.UUID       `json:"id"`
	Vendor         provider.Vendor `json:"vendor"`
	Model          string          `json:"model"`
	Tokens         provider.Tokens `json:"tokens"`
	Cost           provider.Cost   `json:"cost"`
	ResponseTimeMs int64           `json:"response_time_ms"`
	Status         string          `json:"status,omitempty"`
	SchemaValid    *bool           `json:"schema_valid,omitempty"`
	Error          string          `json:"error,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Failed reports whether the call ended in an error
func (r Record) Failed() bool {
	return r.Error != ""
}

// Filter narrows List and Summary. Zero fields match everything.
type Filter struct {
	Vendor provider.Vendor
	Model  string
	Since  time.Time
	Limit  int
}

func (f Filter) matches(r Record) bool {
	if f.Vendor != "" && r.Vendor != f.Vendor {
		return false
	}
	if f.Model != "" && r.Model != f.Model {
		return false
	}
	if !f.Since.IsZero() && r.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}

// SummaryRow aggregates runs of one vendor and model
type SummaryRow struct {
	Vendor   provider.Vendor `json:"vendor"`
	Model    string          `json:"model"`
	Runs     int64           `json:"runs"`
	Failures int64           `json:"failures"`
	Tokens   provider.Tokens `json:"tokens"`
	Cost     provider.Cost   `json:"cost"`
}

// Store persists usage records
type Store interface {
	Save(ctx context.Context, r Record) error
	List(ctx context.Context, f Filter) ([]Record, error)
	Summary(ctx context.Context, f Filter) ([]SummaryRow, error)
	Close() error
}
