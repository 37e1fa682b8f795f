package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/genum-ai/genum/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"
)

func newTestServer(t *testing.T, status int, body string, captured *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)

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

func TestAdapter_Generate(t *testing.T) {
	var body string
	srv := newTestServer(t, http.StatusOK, `{
		"candidates": [{
			"content": {"role": "model", "parts": [
				{"text": "Comparing the options", "thought": true},
				{"text": "{\"answer\":\"yes\"}"}
			]},
			"finishReason": "STOP"
		}],
		"usageMetadata": {"promptTokenCount": 8, "candidatesTokenCount": 4, "totalTokenCount": 15}
	}`, &body)

	a := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	assert.Equal(t, provider.VendorGemini, a.Vendor())

	resp, err := a.Generate(context.Background(), provider.Request{
		APIKey:      "gm-test",
		Model:       "gemini-2.0-flash",
		Instruction: "Reply in JSON",
		Question:    "Is it raining?",
		Parameters: provider.Parameters{
			JSONSchema: `{"name":"r","strict":true,"schema":{"type":"OBJECT","properties":{"zeta":{"type":"STRING"},"alpha":{"type":"STRING"}}}}`,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"answer":"yes"}`, resp.Answer)
	assert.Equal(t, provider.Tokens{Prompt: 8, Completion: 4, Total: 15}, resp.Tokens)
	assert.Equal(t, "Comparing the options", resp.ChainOfThoughts)
	assert.Equal(t, "STOP", resp.Status)

	req := gjson.Parse(body)
	assert.Equal(t, "Is it raining?", req.Get("contents.0.parts.0.text").String())
	assert.Equal(t, "Reply in JSON", req.Get("systemInstruction.parts.0.text").String())
	assert.Equal(t, "application/json", req.Get("generationConfig.responseMimeType").String())
	assert.Equal(t, `["zeta","alpha"]`, req.Get("generationConfig.responseSchema.propertyOrdering").Raw)
}

func TestAdapter_GenerateFunctionCall(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{
		"candidates": [{"content": {"role": "model", "parts": [
			{"functionCall": {"name": "get_weather", "args": {"city": "Rome"}}}
		]}, "finishReason": "STOP"}]
	}`, nil)

	resp, err := New(WithBaseURL(srv.URL)).Generate(context.Background(), provider.Request{
		APIKey:     "gm-test",
		Model:      "gemini-2.0-flash",
		Question:   "Weather in Rome?",
		Parameters: provider.Parameters{Tools: []provider.FunctionCall{{Name: "get_weather"}}},
	})
	require.NoError(t, err)

	assert.Equal(t, "get_weather", gjson.Get(resp.Answer, "name").String())
	assert.Equal(t, "Rome", gjson.Get(resp.Answer, "args.city").String())
	assert.Equal(t, provider.Tokens{}, resp.Tokens)
}

func TestAdapter_GenerateVendorError(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"error":{"code":400,"message":"bad request content","status":"INVALID_ARGUMENT"}}`, nil)

	_, err := New(WithBaseURL(srv.URL)).Generate(context.Background(), provider.Request{APIKey: "gm-test", Model: "gemini-2.0-flash", Question: "?"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad request content")
}

func TestReadAnswer(t *testing.T) {
	tests := []struct {
		name       string
		resp       *genai.GenerateContentResponse
		wantAnswer string
		wantStatus string
	}{
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
		},
		{
			name: "last part without text or call",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content:      genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText("first"), genai.NewPartFromBytes([]byte{1}, "image/png")}, genai.RoleModel),
				FinishReason: genai.FinishReasonStop,
			}}},
			wantStatus: "STOP",
		},
		{
			name: "last part wins",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText("draft"), genai.NewPartFromText("final")}, genai.RoleModel),
			}}},
			wantAnswer: "final",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, _, status, err := readAnswer(tt.resp)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAnswer, answer)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}
