package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestServer(t *testing.T, status int, body string, captured *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))

		data, _ := io.ReadAll(r.Body)
		if captured != nil {
			*captured = string(data)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func messageBody(content string) string {
	return `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-7-sonnet-latest",
		"content":` + content + `,"stop_reason":"end_turn","stop_sequence":null,
		"usage":{"input_tokens":20,"output_tokens":7}}`
}

func TestAdapter_GenerateText(t *testing.T) {
	var body string
	srv := newTestServer(t, http.StatusOK, messageBody(`[{"type":"text","text":"Hello there"}]`), &body)

	temp := 0.5
	a := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	assert.Equal(t, provider.VendorAnthropic, a.Vendor())

	resp, err := a.Generate(context.Background(), provider.Request{
		APIKey:      "sk-ant-test",
		Model:       "claude-3-7-sonnet-latest",
		Instruction: "Be kind",
		Question:    "hi",
		Parameters:  provider.Parameters{Temperature: &temp},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello there", resp.Answer)
	assert.Equal(t, provider.Tokens{Prompt: 20, Completion: 7, Total: 27}, resp.Tokens)
	assert.Equal(t, "end_turn", resp.Status)
	assert.Empty(t, resp.ChainOfThoughts)

	req := gjson.Parse(body)
	assert.Equal(t, "claude-3-7-sonnet-latest", req.Get("model").String())
	assert.Equal(t, DefaultMaxTokens, req.Get("max_tokens").Int())
	assert.Equal(t, "Be kind", req.Get("system.0.text").String())
	assert.InDelta(t, 0.5, req.Get("temperature").Float(), 1e-9)
	assert.Equal(t, "hi", req.Get("messages.0.content").String())
	assert.Equal(t, gjson.String, req.Get("messages.0.content").Type)
	assert.False(t, req.Get("tools").Exists())
}

func TestAdapter_GenerateToolUse(t *testing.T) {
	var body string
	srv := newTestServer(t, http.StatusOK, messageBody(`[
		{"type":"thinking","thinking":"The user wants the weather","signature":"sig"},
		{"type":"tool_use","id":"toolu_1","name":"get_weather","input":{"city":"Oslo"}}]`), &body)

	resp, err := New(WithBaseURL(srv.URL)).Generate(context.Background(), provider.Request{
		APIKey:   "sk-ant-test",
		Model:    "claude-sonnet-4-20250514",
		Question: "Weather in Oslo?",
		Parameters: provider.Parameters{
			MaxTokens: 1024,
			Tools: []provider.FunctionCall{{
				Name:       "get_weather",
				Parameters: map[string]any{"properties": map[string]any{"city": map[string]any{"type": "string"}}},
			}},
		},
	})
	require.NoError(t, err)

	var block map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Answer), &block))
	assert.Equal(t, "tool_use", block["type"])
	assert.Equal(t, "get_weather", block["name"])
	assert.Equal(t, map[string]any{"city": "Oslo"}, block["input"])
	assert.Equal(t, "The user wants the weather", resp.ChainOfThoughts)

	req := gjson.Parse(body)
	assert.Equal(t, int64(1024), req.Get("max_tokens").Int())
	assert.Equal(t, "get_weather", req.Get("tools.0.name").String())
	assert.Equal(t, "object", req.Get("tools.0.input_schema.type").String())
	assert.False(t, req.Get("system").Exists())
}

func TestAdapter_GenerateNoAnswer(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty content", `[]`},
		{"unknown block", `[{"type":"server_tool_use","id":"x","name":"web_search","input":{}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, messageBody(tt.content), nil)

			_, err := New(WithBaseURL(srv.URL)).Generate(context.Background(), provider.Request{APIKey: "sk-ant-test", Model: "m", Question: "?"})
			require.Error(t, err)
			assert.ErrorIs(t, err, provider.ErrNoAnswer)
			assert.Equal(t, "No answer from Anthropic", err.Error())
		})
	}
}

func TestAdapter_GenerateVendorError(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens too large"}}`, nil)

	_, err := New(WithBaseURL(srv.URL)).Generate(context.Background(), provider.Request{APIKey: "sk-ant-test", Model: "m", Question: "?"})
	require.Error(t, err)

	var apiErr *sdk.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
