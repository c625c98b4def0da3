// Package resilience composes call policies (timeout, fallback, retry) around
// a single context-aware call. Policies are plain decorators, so the order in
// which they are chained is the order in which failures are seen.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Call is one attempt at producing a T.
type Call[T any] func(ctx context.Context) (T, error)

// Policy decorates a Call.
type Policy[T any] func(next Call[T]) Call[T]

// Backoff returns the delay to wait before retry number n (1-based).
type Backoff func(n int) time.Duration

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Chain applies policies to call in list order: the first policy wraps the
// call directly, the last one is outermost.
func Chain[T any](call Call[T], policies ...Policy[T]) Call[T] {
	for _, p := range policies {
		call = p(call)
	}
	return call
}

// Timeout bounds each invocation of the wrapped call. When the deadline set
// here expires the call resolves to fallback with no error. A deadline or
// cancellation coming from the caller's context is still reported as an error.
func Timeout[T any](d time.Duration, fallback T) Policy[T] {
	return func(next Call[T]) Call[T] {
		return func(ctx context.Context) (T, error) {
			timeoutCtx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			v, err := next(timeoutCtx)
			if err != nil && ctx.Err() == nil && errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
				return fallback, nil
			}
			return v, err
		}
	}
}

// FallbackOn resolves errors matching match to fallback.
func FallbackOn[T any](match func(error) bool, fallback T) Policy[T] {
	return func(next Call[T]) Call[T] {
		return func(ctx context.Context) (T, error) {
			v, err := next(ctx)
			if err != nil && match(err) {
				return fallback, nil
			}
			return v, err
		}
	}
}

// Fallback resolves every error to fallback.
func Fallback[T any](fallback T) Policy[T] {
	return FallbackOn(func(error) bool { return true }, fallback)
}

// Retry re-invokes the wrapped call while it fails, at most maxRetries extra
// times. backoff(n) is waited before retry n. A nil sleeper uses Sleep.
func Retry[T any](maxRetries int, backoff Backoff, sleep Sleeper) Policy[T] {
	if sleep == nil {
		sleep = Sleep
	}
	return func(next Call[T]) Call[T] {
		return func(ctx context.Context) (T, error) {
			v, err := next(ctx)
			for n := 1; err != nil && n <= maxRetries; n++ {
				if serr := sleep(ctx, backoff(n)); serr != nil {
					return v, fmt.Errorf("retry %d aborted: %w", n, serr)
				}
				v, err = next(ctx)
			}
			if err != nil && maxRetries > 0 {
				return v, fmt.Errorf("after %d retries: %w", maxRetries, err)
			}
			return v, err
		}
	}
}

// LinearBackoff waits n*base before retry n: base, 2*base, 3*base...
func LinearBackoff(base time.Duration) Backoff {
	return func(n int) time.Duration {
		return time.Duration(n) * base
	}
}

// Sleep waits for d, returning early with ctx.Err() when ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
