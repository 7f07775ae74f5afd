package resource

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryThrottled calls op until it succeeds, fails with an error other than
// Throttled, or maxRetries retries have been used up. The last error is returned,
// or the error of ctx if it was done between two throttled attempts.
func retryThrottled(ctx context.Context, maxRetries uint64, interval time.Duration, op func() error) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = interval
	expo.MaxInterval = 30 * time.Second
	expo.MaxElapsedTime = 0

	var lastErr error

	err := backoff.Retry(func() error {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if KindOf(lastErr) != Throttled {
			return backoff.Permanent(lastErr)
		}

		return lastErr
	}, backoff.WithContext(backoff.WithMaxRetries(expo, maxRetries), ctx))

	// ctx was done while waiting for the next attempt
	if err != nil && ctx.Err() != nil && KindOf(lastErr) == Throttled {
		return ctx.Err()
	}

	if err != nil && lastErr != nil {
		return lastErr
	}

	return err
}
