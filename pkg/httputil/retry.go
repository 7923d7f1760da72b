// Package httputil provides shared HTTP plumbing for the record-source
// clients: retryable error classification and exponential-backoff retry
// loops around individual page requests.
package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. The Notion client wraps
// 5xx responses and send failures with this type so [Retry] attempts the
// page query again; auth and 4xx errors stay unwrapped and fail fast.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times, doubling delay between tries.
// Only errors wrapped in [RetryableError] are retried; anything else is
// returned immediately. Returns the last error once the attempts are
// exhausted, or ctx.Err() if the context is cancelled while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff runs [Retry] with the defaults used for source
// queries: 3 attempts starting at 1 second.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
