package utils

import (
	"context"
	"fmt"
	"time"
)

// Retry runs fn up to attempts times with linear backoff (delay, 2*delay,
// ...) between failures. It stops early if the context is cancelled.
// Used for balance and price fetches; override mutations are never retried.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i) * delay):
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, err)
}
