package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/genum-ai/genum/internal/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	vendor  provider.Vendor
	resp    *provider.Response
	err     error
	lastReq provider.Request
}

func (f *fakeAdapter) Vendor() provider.Vendor { return f.vendor }

func (f *fakeAdapter) Generate(_ context.Context, r provider.Request) (*provider.Response, error) {
	f.lastReq = r
	return f.resp, f.err
}

func fixedClock() time.Time {
	return time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)
}

func TestService_Run(t *testing.T) {
	adapter := &fakeAdapter{
		vendor: provider.VendorOpenAI,
		resp: &provider.Response{
			Answer:         "hello",
			Tokens:         provider.Tokens{Prompt: 1000, Completion: 500, Total: 1500},
			ResponseTimeMs: 42,
			Status:         "completed",
		},
	}
	store := usage.NewMemoryStore()
	svc := NewService(provider.NewRegistry(adapter), store, nil,
		WithAPIKeys(map[provider.Vendor]string{provider.VendorOpenAI: "sk-config"}),
		WithPriceLookup(func(provider.Vendor, string) (provider.Prices, bool) {
			return provider.Prices{Prompt: 2, Completion: 6}, true
		}),
		WithClock(fixedClock),
	)

	result, err := svc.Run(context.Background(), RunRequest{
		Vendor:  provider.VendorOpenAI,
		Request: provider.Request{Model: "gpt-4o", Question: "hi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "sk-config", adapter.lastReq.APIKey)
	assert.Equal(t, 2.0, adapter.lastReq.PromptPrice)
	assert.Equal(t, "hello", result.Response.Answer)
	assert.InDelta(t, 0.005, result.Cost.Total, 1e-12)
	assert.Nil(t, result.SchemaValid)

	records, err := store.List(context.Background(), usage.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.RunID, records[0].ID)
	assert.Equal(t, provider.VendorOpenAI, records[0].Vendor)
	assert.Equal(t, "gpt-4o", records[0].Model)
	assert.InDelta(t, 0.002, records[0].Cost.Prompt, 1e-12)
	assert.InDelta(t, 0.003, records[0].Cost.Completion, 1e-12)
	assert.Equal(t, int64(42), records[0].ResponseTimeMs)
	assert.Equal(t, fixedClock(), records[0].CreatedAt)
}

func TestService_RunKeepsRequestValues(t *testing.T) {
	adapter := &fakeAdapter{vendor: provider.VendorAnthropic, resp: &provider.Response{Tokens: provider.Tokens{Prompt: 1_000_000}}}
	svc := NewService(provider.NewRegistry(adapter), nil, nil,
		WithAPIKeys(map[provider.Vendor]string{provider.VendorAnthropic: "from-config"}),
		WithPriceLookup(func(provider.Vendor, string) (provider.Prices, bool) {
			return provider.Prices{Prompt: 100}, true
		}),
	)

	result, err := svc.Run(context.Background(), RunRequest{
		Vendor:  provider.VendorAnthropic,
		Request: provider.Request{APIKey: "explicit", Model: "m", PromptPrice: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "explicit", adapter.lastReq.APIKey)
	assert.InDelta(t, 3.0, result.Cost.Prompt, 1e-12)
}

func TestService_RunSchemaValidation(t *testing.T) {
	schema := `{"name":"person","strict":true,"schema":{"type":"object","properties":{"age":{"type":"integer"}},"required":["age"]}}`

	tests := []struct {
		name      string
		answer    string
		wantValid bool
	}{
		{"valid answer", `{"age":30}`, true},
		{"missing field", `{}`, false},
		{"not json", `thirty`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &fakeAdapter{vendor: provider.VendorGemini, resp: &provider.Response{Answer: tt.answer}}
			svc := NewService(provider.NewRegistry(adapter), nil, nil)

			result, err := svc.Run(context.Background(), RunRequest{
				Vendor: provider.VendorGemini,
				Request: provider.Request{
					Model:      "gemini-2.0-flash",
					Parameters: provider.Parameters{ResponseFormat: "json_schema", JSONSchema: schema},
				},
			})
			require.NoError(t, err)
			require.NotNil(t, result.SchemaValid)
			assert.Equal(t, tt.wantValid, *result.SchemaValid)
			if !tt.wantValid {
				assert.NotEmpty(t, result.SchemaErrors)
			}
		})
	}
}

func TestService_RunAdapterError(t *testing.T) {
	adapter := &fakeAdapter{vendor: provider.VendorOpenAI, err: provider.ErrRefusal}
	store := usage.NewMemoryStore()

	log := &logger.MockLogger{}
	log.On("Info", mock.Anything, mock.Anything)
	log.On("Error", "Run failed", mock.Anything).Once()

	svc := NewService(provider.NewRegistry(adapter), store, log)
	_, err := svc.Run(context.Background(), RunRequest{Vendor: provider.VendorOpenAI, Request: provider.Request{Model: "gpt-4o"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrRefusal)

	records, _ := store.List(context.Background(), usage.Filter{})
	require.Len(t, records, 1)
	assert.True(t, records[0].Failed())
	log.AssertExpectations(t)
}

func TestService_RunUnknownVendor(t *testing.T) {
	svc := NewService(provider.NewRegistry(), nil, nil)
	_, err := svc.Run(context.Background(), RunRequest{Vendor: "cohere"})
	assert.True(t, errors.Is(err, provider.ErrUnknownVendor))
}

func TestValidateAnswer_BareSchema(t *testing.T) {
	valid, problems := ValidateAnswer(`{"type":"array","items":{"type":"string"}}`, `["a","b"]`)
	assert.True(t, valid)
	assert.Empty(t, problems)

	valid, problems = ValidateAnswer(`not json`, `[]`)
	assert.False(t, valid)
	assert.Len(t, problems, 1)
}
