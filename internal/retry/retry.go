// Package retry runs fetch operations with exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// Config holds retry settings. MaxRetries counts retries after the first
// attempt.
type Config struct {
	MaxRetries int           `yaml:"maxRetries"`
	BaseDelay  time.Duration `yaml:"baseDelay"`
}

// DefaultConfig returns two retries starting at 500ms.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
	}
}

// StatusError reports an unexpected HTTP status from an upstream.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.Code)
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err so WithBackoff returns it without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// WithBackoff runs operation until it succeeds, fails permanently, the
// retries are exhausted or ctx is done.
func WithBackoff(ctx context.Context, cfg Config, operation func(context.Context) error) error {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	for attempt := 0; ; attempt++ {
		err := operation(ctx)
		if err == nil {
			return nil
		}
		if !Retryable(err) {
			return err
		}
		if attempt >= cfg.MaxRetries {
			return fmt.Errorf("operation failed after %d attempts: %w", attempt+1, err)
		}

		delay := cfg.BaseDelay * time.Duration(1<<attempt)
		if cfg.BaseDelay > 0 {
			delay += time.Duration(rand.Int63n(int64(cfg.BaseDelay)))
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Retryable reports whether err is worth another attempt. Context errors,
// permanent errors and 4xx statuses other than 429 are not.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var perm *permanentError
	if errors.As(err, &perm) {
		return false
	}
	var status *StatusError
	if errors.As(err, &status) {
		return HTTPStatusRetryable(status.Code)
	}
	return true
}

// HTTPStatusRetryable reports whether a response status should be retried.
func HTTPStatusRetryable(statusCode int) bool {
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
