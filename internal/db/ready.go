package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// WaitForReady retries ping with exponential backoff until it succeeds or timeout expires.
func WaitForReady(ctx context.Context, timeout time.Duration, ping func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 100 * time.Millisecond
	expo.MaxInterval = 2 * time.Second
	expo.MaxElapsedTime = 0 // bounded by ctx

	if err := backoff.Retry(func() error { return ping(ctx) }, backoff.WithContext(expo, ctx)); err != nil {
		return fmt.Errorf("timeout waiting for database: %w", err)
	}
	return nil
}
