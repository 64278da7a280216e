package store

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	// DefaultRetries is how many times a failed call is retried.
	DefaultRetries = 3
	// DefaultRetryBase is the first backoff delay; it doubles on every retry.
	DefaultRetryBase = 100 * time.Millisecond
)

// Retrying retries failed calls of the wrapped KV with exponential backoff.
// ErrNotFound and context cancellation are returned immediately.
type Retrying struct {
	next    KV
	retries uint64
	base    time.Duration
}

// NewRetrying wraps next. Zero retries means every call is tried once;
// negative retries and a non-positive base fall back to the defaults.
func NewRetrying(next KV, retries int, base time.Duration) *Retrying {
	if retries < 0 {
		retries = DefaultRetries
	}
	if base <= 0 {
		base = DefaultRetryBase
	}
	return &Retrying{next: next, retries: uint64(retries), base: base}
}

func (r *Retrying) backoff() retry.Backoff {
	return retry.WithMaxRetries(r.retries, retry.NewExponential(r.base))
}

func (r *Retrying) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		b, err := r.next.Get(ctx, key)
		if err != nil {
			return retryable(err)
		}
		out = b
		return nil
	})
	return out, err
}

func (r *Retrying) Set(ctx context.Context, key string, value []byte) error {
	return retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		return retryable(r.next.Set(ctx, key, value))
	})
}

// Close closes the wrapped store when it holds resources.
func (r *Retrying) Close() error {
	return closeKV(r.next)
}

// Unwrap returns the wrapped store.
func (r *Retrying) Unwrap() KV {
	return r.next
}

func retryable(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return retry.RetryableError(err)
	}
}
