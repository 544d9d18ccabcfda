package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/payroll-must-balance/internal/service"
)

var (
	// ErrRateLimit marks an error caused by an API quota.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries is returned once every attempt has failed.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryClass tells WithRetry what to do after a failed attempt.
type RetryClass int

const (
	// RetryTransient waits for the current backoff delay and tries again.
	RetryTransient RetryClass = iota
	// RetryThrottled waits for the maximum delay before the next attempt.
	RetryThrottled
	// RetryPermanent gives up and returns the error unchanged.
	RetryPermanent
)

// Classifier decides the RetryClass of an attempt's error.
type Classifier func(error) RetryClass

// ClassifyError is the fallback Classifier. Cancellation is permanent, quota
// errors are throttled and anything else is transient.
func ClassifyError(err error) RetryClass {
	switch {
	case errors.Is(err, context.Canceled):
		return RetryPermanent
	case errors.Is(err, ErrRateLimit):
		return RetryThrottled
	default:
		return RetryTransient
	}
}

// WithRetry runs operation until it succeeds, classify marks the error
// permanent, ctx ends or opts.MaxAttempts attempts have failed. A nil
// classify means ClassifyError.
func WithRetry(ctx context.Context, opts service.RetryOptions, classify Classifier, operation func() error) error {
	if classify == nil {
		classify = ClassifyError
	}
	attempts := max(opts.MaxAttempts, 1)
	delay := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		class := classify(err)
		if class == RetryPermanent {
			return err
		}
		if attempt == attempts {
			return fmt.Errorf("%w: %s failed %d times: %w", ErrMaxRetries, opts.Operation, attempts, err)
		}

		wait := delay
		if class == RetryThrottled {
			wait = max(opts.MaxDelay, delay)
		}
		slog.Warn("Retrying",
			"operation", opts.Operation,
			"attempt", attempt,
			"max_attempts", attempts,
			"wait", wait,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay = backoff(delay, opts)
	}
}

func backoff(d time.Duration, opts service.RetryOptions) time.Duration {
	if opts.Multiplier > 1 {
		d = time.Duration(float64(d) * opts.Multiplier)
	}
	if opts.MaxDelay > 0 && d > opts.MaxDelay {
		d = opts.MaxDelay
	}
	return d
}
