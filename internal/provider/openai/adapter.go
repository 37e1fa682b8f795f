// Package openai adapts provider requests to the OpenAI Responses API.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/provider"
	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// Adapter calls OpenAI. It is safe for concurrent use.
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

// New creates an OpenAI adapter
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

// Vendor returns provider.VendorOpenAI
func (a *Adapter) Vendor() provider.Vendor {
	return provider.VendorOpenAI
}

// Generate sends one Responses API call
func (a *Adapter) Generate(ctx context.Context, request provider.Request) (*provider.Response, error) {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(request.APIKey),
		option.WithHTTPClient(a.httpClient),
	}
	if a.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(a.baseURL))
	}
	client := sdk.NewClient(clientOpts...)

	params, reqOpts := ResponsesConfig(request)

	a.logger.Debug("Sending OpenAI request", map[string]interface{}{
		"model": request.Model,
		"files": len(request.Files),
		"tools": len(request.Parameters.Tools),
	})

	resp, elapsed, err := provider.Timed(func() (*responses.Response, error) {
		return client.Responses.New(ctx, params, reqOpts...)
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	var thoughts []string
	var answerItem *responses.ResponseOutputItemUnion
	for i := range resp.Output {
		item := resp.Output[i]
		if item.Type == itemTypeReasoning {
			thoughts = append(thoughts, reasoningSummary(item)...)
			continue
		}
		answerItem = &resp.Output[i]
	}
	if answerItem == nil {
		return nil, fmt.Errorf("%w from OpenAI", provider.ErrNoAnswer)
	}

	answer, err := AnswerMapper(*answerItem)
	if err != nil {
		return nil, err
	}

	return &provider.Response{
		Answer:          answer,
		Tokens:          provider.NewTokens(resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens),
		ResponseTimeMs:  elapsed.Milliseconds(),
		ChainOfThoughts: strings.Join(thoughts, "\n"),
		Status:          string(resp.Status),
	}, nil
}
