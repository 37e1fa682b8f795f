package provider

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubAdapter(v Vendor, answer string) AdapterFunc {
	return AdapterFunc{V: v, Fn: func(context.Context, Request) (*Response, error) {
		return &Response{Answer: answer}, nil
	}}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(stubAdapter(VendorOpenAI, "o"), stubAdapter(VendorGemini, "g"))
	r.Register(stubAdapter(VendorAnthropic, "a"))

	assert.Equal(t, []Vendor{VendorAnthropic, VendorGemini, VendorOpenAI}, r.Vendors())

	a, err := r.Get(VendorAnthropic)
	require.NoError(t, err)
	resp, err := a.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "a", resp.Answer)

	_, err = r.Get("mistral")
	assert.ErrorIs(t, err, ErrUnknownVendor)
	assert.Contains(t, err.Error(), "mistral")
}

func TestTimed(t *testing.T) {
	v, d, err := Timed(func() (string, error) {
		time.Sleep(5 * time.Millisecond)
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", v)
	assert.GreaterOrEqual(t, d, 5*time.Millisecond)
}

func TestNewResilient(t *testing.T) {
	t.Run("disabled config returns the inner adapter", func(t *testing.T) {
		a := NewResilient(stubAdapter(VendorOpenAI, "x"), ResilienceConfig{})
		_, wrapped := a.(*Resilient)
		assert.False(t, wrapped)
		assert.Equal(t, VendorOpenAI, a.Vendor())
	})

	t.Run("retries until success", func(t *testing.T) {
		var calls int32
		inner := AdapterFunc{V: VendorGemini, Fn: func(context.Context, Request) (*Response, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return nil, errors.New("temporary")
			}
			return &Response{Answer: "ok"}, nil
		}}

		a := NewResilient(inner, ResilienceConfig{MaxAttempts: 3, InitialDelay: time.Millisecond})
		assert.Equal(t, VendorGemini, a.Vendor())

		resp, err := a.Generate(context.Background(), Request{})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Answer)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
		}{
			{"refusal", ErrRefusal},
			{"wrapped no answer", fmt.Errorf("gemini: %w", ErrNoAnswer)},
			{"canceled", context.Canceled},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var calls int32
				inner := AdapterFunc{V: VendorOpenAI, Fn: func(context.Context, Request) (*Response, error) {
					atomic.AddInt32(&calls, 1)
					return nil, tt.err
				}}

				a := NewResilient(inner, ResilienceConfig{MaxAttempts: 3, InitialDelay: time.Millisecond})
				_, err := a.Generate(context.Background(), Request{})
				assert.ErrorIs(t, err, tt.err)
				assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
			})
		}
	})

	t.Run("times out slow calls", func(t *testing.T) {
		inner := AdapterFunc{V: VendorAnthropic, Fn: func(ctx context.Context, _ Request) (*Response, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(2 * time.Second):
				return &Response{}, nil
			}
		}}

		a := NewResilient(inner, ResilienceConfig{Timeout: 20 * time.Millisecond})
		_, err := a.Generate(context.Background(), Request{})
		assert.Error(t, err)
	})
}
