package provider

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
)

// ResilienceConfig controls the optional timeout and retry around an adapter.
// The zero value disables both.
type ResilienceConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
}

// Enabled reports whether any resilience behavior is configured
func (c ResilienceConfig) Enabled() bool {
	return c.Timeout > 0 || c.MaxAttempts > 1
}

// Errors that a second attempt cannot change
var nonRetryable = []error{
	ErrRefusal,
	ErrInvalidMessageType,
	ErrNoAnswer,
	ErrUnknownVendor,
	context.Canceled,
	context.DeadlineExceeded,
}

// Resilient decorates an adapter with a per-call timeout and exponential retry
type Resilient struct {
	inner Adapter
	cfg   ResilienceConfig
}

// NewResilient wraps inner. When cfg is disabled, inner is returned untouched.
func NewResilient(inner Adapter, cfg ResilienceConfig) Adapter {
	if !cfg.Enabled() {
		return inner
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = time.Second
	}
	return &Resilient{inner: inner, cfg: cfg}
}

// Vendor returns the wrapped adapter's vendor
func (r *Resilient) Vendor() Vendor {
	return r.inner.Vendor()
}

// Generate runs the wrapped adapter under the configured policy
func (r *Resilient) Generate(ctx context.Context, request Request) (*Response, error) {
	call := func(ctx context.Context) (*Response, error) {
		return r.inner.Generate(ctx, request)
	}

	if r.cfg.MaxAttempts > 1 {
		rt := retry.New[*Response](retry.Config{
			MaxAttempts:        r.cfg.MaxAttempts,
			InitialDelay:       r.cfg.InitialDelay,
			BackoffPolicy:      retry.BackoffExponential,
			NonRetryableErrors: nonRetryable,
		})
		once := call
		call = func(ctx context.Context) (*Response, error) {
			return rt.Do(ctx, once)
		}
	}

	if r.cfg.Timeout <= 0 {
		return call(ctx)
	}

	t := timeout.New[*Response](timeout.Config{
		DefaultTimeout: r.cfg.Timeout,
	})
	return t.Execute(ctx, r.cfg.Timeout, call)
}
