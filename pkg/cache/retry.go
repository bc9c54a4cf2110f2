package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend marks a failed round trip to Redis or MongoDB.
var ErrBackend = errors.New("backend unavailable")

// RetryableError marks a backend failure worth another attempt, such as a
// ping to a server that is still starting.
type RetryableError struct{ Err error }

// Retryable marks err for RetryWithBackoff. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff settings for RetryWithBackoff. Tests shorten RetryDelay.
var (
	RetryAttempts = 3
	RetryDelay    = time.Second
)

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// Retryable, or RetryAttempts calls have failed. The wait starts at
// RetryDelay and doubles.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := RetryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= RetryAttempts {
			return err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
