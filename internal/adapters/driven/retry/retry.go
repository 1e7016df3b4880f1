// Package retry implements the bounded exponential backoff shared by the
// external-call adapters. Transient failures (transport errors, 5xx) are
// retried; permanent failures (4xx, validation) surface immediately.
package retry

import (
	"context"
	"errors"
	"time"
)

// DefaultAttempts is the total number of tries including the first.
const DefaultAttempts = 3

// DefaultBaseDelay is the delay before the first retry; it doubles on
// each subsequent one.
const DefaultBaseDelay = 500 * time.Millisecond

// permanentError marks an error that must not be retried.
type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent wraps an error so Do surfaces it without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do runs fn up to attempts times with exponential backoff between tries.
// It returns nil on the first success, the unwrapped error as soon as fn
// reports a Permanent failure, or the last error once attempts are
// exhausted. Cancellation interrupts the backoff sleep.
func Do(ctx context.Context, attempts int, base time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := base
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		err := fn()
		if err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err
	}
	return lastErr
}
