// Package runner executes a prompt against a vendor adapter, prices the call and
// records it in the usage ledger.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/genum-ai/genum/internal/usage"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

// Service implements Runner
type Service struct {
	registry *provider.Registry
	store    usage.Store
	logger   logger.Logger
	apiKeys  map[provider.Vendor]string
	prices   PriceLookup
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithAPIKeys sets the keys used when a request carries none
func WithAPIKeys(keys map[provider.Vendor]string) Option {
	return func(s *Service) { s.apiKeys = keys }
}

// WithPriceLookup sets the prices used when a request carries none
func WithPriceLookup(p PriceLookup) Option {
	return func(s *Service) { s.prices = p }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a runner service. A nil store keeps records in memory.
func NewService(registry *provider.Registry, store usage.Store, log logger.Logger, opts ...Option) *Service {
	if store == nil {
		store = usage.NewMemoryStore()
	}
	s := &Service{
		registry: registry,
		store:    store,
		logger:   logger.OrDiscard(log),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ Runner = (*Service)(nil)

// Run executes one prompt. Schema validation failures are reported on the result and
// never returned as errors.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	runID := uuid.New()
	log := s.logger.WithFields(map[string]interface{}{
		"run_id": runID.String(),
		"vendor": string(req.Vendor),
		"model":  req.Request.Model,
	})

	adapter, err := s.registry.Get(req.Vendor)
	if err != nil {
		log.Error("Unknown vendor", map[string]interface{}{logger.ErrorKey: err})
		return nil, err
	}

	request := s.withDefaults(req.Vendor, req.Request)
	log.Info("Run started", nil)

	record := usage.Record{
		ID:        runID,
		Vendor:    req.Vendor,
		Model:     request.Model,
		CreatedAt: s.now().UTC(),
	}

	resp, err := adapter.Generate(ctx, request)
	if err != nil {
		log.Error("Run failed", map[string]interface{}{logger.ErrorKey: err})
		record.Error = err.Error()
		s.save(ctx, log, record)
		return nil, fmt.Errorf("run %s failed: %w", runID, err)
	}

	cost := provider.CalculateCost(resp.Tokens, request.Prices())
	result := &RunResult{
		RunID:    runID,
		Vendor:   req.Vendor,
		Model:    request.Model,
		Response: resp,
		Cost:     cost,
	}

	if request.Parameters.ResponseFormat == provider.ResponseFormatJSONSchema && request.Parameters.JSONSchema != "" {
		valid, problems := ValidateAnswer(request.Parameters.JSONSchema, resp.Answer)
		result.SchemaValid = &valid
		result.SchemaErrors = problems
		if !valid {
			log.Warn("Answer does not match the JSON schema", map[string]interface{}{"problems": problems})
		}
	}

	record.Tokens = resp.Tokens
	record.Cost = cost
	record.ResponseTimeMs = resp.ResponseTimeMs
	record.Status = resp.Status
	record.SchemaValid = result.SchemaValid
	s.save(ctx, log, record)

	log.Info("Run finished", map[string]interface{}{
		"prompt_tokens":     resp.Tokens.Prompt,
		"completion_tokens": resp.Tokens.Completion,
		"total_tokens":      resp.Tokens.Total,
		"cost":              cost.Total,
		"latency_ms":        resp.ResponseTimeMs,
	})

	return result, nil
}

func (s *Service) withDefaults(vendor provider.Vendor, request provider.Request) provider.Request {
	if request.APIKey == "" {
		request.APIKey = s.apiKeys[vendor]
	}
	if request.PromptPrice == 0 && request.CompletionPrice == 0 && s.prices != nil {
		if p, ok := s.prices(vendor, request.Model); ok {
			request.PromptPrice = p.Prompt
			request.CompletionPrice = p.Completion
		}
	}
	return request
}

func (s *Service) save(ctx context.Context, log logger.Logger, record usage.Record) {
	if err := s.store.Save(ctx, record); err != nil {
		log.Error("Failed to record usage", map[string]interface{}{logger.ErrorKey: err})
	}
}

// ValidateAnswer checks a JSON answer against a stored schema, which may be wrapped
// in a {name, strict, schema} envelope.
func ValidateAnswer(jsonSchema, answer string) (bool, []string) {
	schema := provider.UnwrapSchemaEnvelope(provider.NormalizeJSONSchema(jsonSchema))
	if _, ok := schema.(*provider.OrderedObject); !ok {
		return false, []string{"schema is not a JSON object"}
	}
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return false, []string{err.Error()}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewStringLoader(answer),
	)
	if err != nil {
		return false, []string{err.Error()}
	}
	if result.Valid() {
		return true, nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return false, problems
}
