// Package provider defines the vendor-agnostic request/response contract shared by the
// OpenAI, Anthropic and Gemini adapters, plus cost and schema helpers.
package provider

import "context"

// Vendor identifies an AI vendor
type Vendor string

const (
	VendorOpenAI    Vendor = "openai"
	VendorAnthropic Vendor = "anthropic"
	VendorGemini    Vendor = "gemini"
)

// Response formats understood by the adapters
const (
	ResponseFormatText       = "text"
	ResponseFormatJSONObject = "json_object"
	ResponseFormatJSONSchema = "json_schema"
)

// File is an attachment sent alongside the question
type File struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Buffer      []byte `json:"buffer"`
}

// FunctionCall is a tool definition the model may call
type FunctionCall struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Parameters is the generation configuration of a Request
type Parameters struct {
	Temperature     *float64       `json:"temperature,omitempty"`
	MaxTokens       int64          `json:"max_tokens,omitempty"`
	Tools           []FunctionCall `json:"tools,omitempty"`
	JSONSchema      string         `json:"json_schema,omitempty"`
	ResponseFormat  string         `json:"response_format,omitempty"`
	ReasoningEffort string         `json:"reasoning_effort,omitempty"`
	Verbosity       string         `json:"verbosity,omitempty"`
}

// Request describes one LLM call. Adapters never mutate it.
type Request struct {
	APIKey          string     `json:"-"`
	Instruction     string     `json:"instruction"`
	Question        string     `json:"question"`
	Model           string     `json:"model"`
	Parameters      Parameters `json:"parameters"`
	PromptPrice     float64    `json:"promptPrice"`
	CompletionPrice float64    `json:"completionPrice"`
	Files           []File     `json:"files,omitempty"`
}

// HasFiles reports whether the request carries attachments
func (r Request) HasFiles() bool {
	return len(r.Files) > 0
}

// Prices returns the request's per-million token prices
func (r Request) Prices() Prices {
	return Prices{Prompt: r.PromptPrice, Completion: r.CompletionPrice}
}

// Tokens holds token counts of a single call
type Tokens struct {
	Prompt     int64 `json:"prompt"`
	Completion int64 `json:"completion"`
	Total      int64 `json:"total"`
}

// Response is the normalized result of a vendor call
type Response struct {
	Answer          string `json:"answer"`
	Tokens          Tokens `json:"tokens"`
	ResponseTimeMs  int64  `json:"response_time_ms"`
	ChainOfThoughts string `json:"chainOfThoughts,omitempty"`
	Status          string `json:"status,omitempty"`
}

// Adapter translates a Request into one vendor call
type Adapter interface {
	Vendor() Vendor
	Generate(ctx context.Context, request Request) (*Response, error)
}

// AdapterFunc lets a plain function act as an Adapter for a fixed vendor
type AdapterFunc struct {
	V  Vendor
	Fn func(ctx context.Context, request Request) (*Response, error)
}

// Vendor returns the configured vendor
func (a AdapterFunc) Vendor() Vendor { return a.V }

// Generate calls the wrapped function
func (a AdapterFunc) Generate(ctx context.Context, request Request) (*Response, error) {
	return a.Fn(ctx, request)
}
