// Package anthropic adapts provider requests to the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/provider"
)

// DefaultMaxTokens is sent when the request does not set max_tokens
const DefaultMaxTokens int64 = 4096

const (
	blockTypeText             = "text"
	blockTypeToolUse          = "tool_use"
	blockTypeThinking         = "thinking"
	blockTypeRedactedThinking = "redacted_thinking"
)

// Adapter calls Anthropic. It is safe for concurrent use.
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

// New creates an Anthropic adapter
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

// Vendor returns provider.VendorAnthropic
func (a *Adapter) Vendor() provider.Vendor {
	return provider.VendorAnthropic
}

// Generate sends one Messages API call
func (a *Adapter) Generate(ctx context.Context, request provider.Request) (*provider.Response, error) {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(request.APIKey),
		option.WithHTTPClient(a.httpClient),
	}
	if a.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(a.baseURL))
	}
	client := sdk.NewClient(clientOpts...)

	params, reqOpts := messageParams(request)

	a.logger.Debug("Sending Anthropic request", map[string]interface{}{
		"model": request.Model,
		"files": len(request.Files),
		"tools": len(request.Parameters.Tools),
	})

	msg, elapsed, err := provider.Timed(func() (*sdk.Message, error) {
		return client.Messages.New(ctx, params, reqOpts...)
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	answer, thoughts, err := readAnswer(msg.Content)
	if err != nil {
		return nil, err
	}

	return &provider.Response{
		Answer:          answer,
		Tokens:          provider.NewTokens(msg.Usage.InputTokens, msg.Usage.OutputTokens, 0),
		ResponseTimeMs:  elapsed.Milliseconds(),
		ChainOfThoughts: thoughts,
		Status:          string(msg.StopReason),
	}, nil
}

func messageParams(request provider.Request) (sdk.MessageNewParams, []option.RequestOption) {
	p := request.Parameters
	params := sdk.MessageNewParams{
		Model:     sdk.Model(request.Model),
		MaxTokens: DefaultMaxTokens,
	}
	if p.MaxTokens > 0 {
		params.MaxTokens = p.MaxTokens
	}
	if request.Instruction != "" {
		params.System = []sdk.TextBlockParam{{Text: request.Instruction}}
	}
	if p.Temperature != nil {
		params.Temperature = sdk.Float(*p.Temperature)
	}

	opts := []option.RequestOption{
		option.WithJSONSet("messages", MapMessages(request)),
	}
	if len(p.Tools) > 0 {
		opts = append(opts, option.WithJSONSet("tools", MapTools(p.Tools)))
	}
	return params, opts
}

// readAnswer reads the first content block after any leading thinking blocks
func readAnswer(content []sdk.ContentBlockUnion) (string, string, error) {
	var thoughts []string
	for _, block := range content {
		switch block.Type {
		case blockTypeThinking:
			thoughts = append(thoughts, block.Thinking)
		case blockTypeRedactedThinking:
		case blockTypeText:
			return block.Text, strings.Join(thoughts, "\n"), nil
		case blockTypeToolUse:
			return block.RawJSON(), strings.Join(thoughts, "\n"), nil
		default:
			return "", "", fmt.Errorf("%w from Anthropic", provider.ErrNoAnswer)
		}
	}
	return "", "", fmt.Errorf("%w from Anthropic", provider.ErrNoAnswer)
}
