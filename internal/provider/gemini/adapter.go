// Package gemini adapts provider requests to the Gemini generateContent API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/provider"
	"google.golang.org/genai"
)

// Adapter calls Gemini. It is safe for concurrent use.
type Adapter struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

// Option configures an Adapter
type Option func(*Adapter)

// WithHTTPClient shares one HTTP client between calls
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) { a.httpClient = c }
}

// WithBaseURL points the adapter at a different API host
func WithBaseURL(u string) Option {
	return func(a *Adapter) { a.baseURL = u }
}

// WithLogger sets the adapter logger
func WithLogger(l logger.Logger) Option {
	return func(a *Adapter) { a.logger = logger.OrDiscard(l) }
}

// New creates a Gemini adapter
func New(opts ...Option) *Adapter {
	a := &Adapter{
		httpClient: http.DefaultClient,
		logger:     logger.Discard,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

var _ provider.Adapter = (*Adapter)(nil)

// Vendor returns provider.VendorGemini
func (a *Adapter) Vendor() provider.Vendor {
	return provider.VendorGemini
}

// Generate sends one generateContent call
func (a *Adapter) Generate(ctx context.Context, request provider.Request) (*provider.Response, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     request.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: a.httpClient,
	}
	if a.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: a.baseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	a.logger.Debug("Sending Gemini request", map[string]interface{}{
		"model": request.Model,
		"files": len(request.Files),
		"tools": len(request.Parameters.Tools),
	})

	resp, elapsed, err := provider.Timed(func() (*genai.GenerateContentResponse, error) {
		return client.Models.GenerateContent(ctx, request.Model, MapContents(request), MapConfig(request))
	})
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	answer, thoughts, status, err := readAnswer(resp)
	if err != nil {
		return nil, err
	}

	var prompt, completion, total int64
	if u := resp.UsageMetadata; u != nil {
		prompt = int64(u.PromptTokenCount)
		completion = int64(u.CandidatesTokenCount)
		total = int64(u.TotalTokenCount)
	}

	return &provider.Response{
		Answer:          answer,
		Tokens:          provider.NewTokens(prompt, completion, total),
		ResponseTimeMs:  elapsed.Milliseconds(),
		ChainOfThoughts: thoughts,
		Status:          status,
	}, nil
}

// readAnswer reads the last part of the first candidate. Earlier thought parts are
// returned as the chain of thoughts.
func readAnswer(resp *genai.GenerateContentResponse) (answer, thoughts, status string, err error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", "", "", nil
	}
	candidate := resp.Candidates[0]
	status = string(candidate.FinishReason)

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", "", status, nil
	}
	parts := candidate.Content.Parts

	var cot []string
	for _, p := range parts[:len(parts)-1] {
		if p != nil && p.Thought && p.Text != "" {
			cot = append(cot, p.Text)
		}
	}
	thoughts = strings.Join(cot, "\n")

	last := parts[len(parts)-1]
	switch {
	case last == nil:
	case last.Text != "":
		answer = last.Text
	case last.FunctionCall != nil:
		data, err := json.Marshal(last.FunctionCall)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to encode function call: %w", err)
		}
		answer = string(data)
	}

	return answer, thoughts, status, nil
}
