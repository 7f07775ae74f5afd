package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
)

// AwaitTerminal polls the state of an async resource every interval until it is
// deleted or timeout elapses. A timeout only fails this resource; if ctx is done,
// the resource is skipped since the whole run is being cancelled.
// A non-positive interval is replaced by DefaultPollInterval.
func AwaitTerminal(ctx context.Context, client Client, ref Ref, timeout, interval time.Duration) Outcome {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	logger := log.WithFields(log.Fields{
		"type": ref.Kind.String(),
		"id":   ref.ID,
	})

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error

	for {
		state, err := client.DescribeState(ctx, ref)
		switch {
		case err == nil && state == StateDeleted:
			return Outcome{Status: Deleted}
		case err != nil && KindOf(err) == NotFound:
			return Outcome{Status: Deleted}
		case err != nil:
			lastErr = err
			logger.WithError(err).Debug("failed to describe state, waiting longer")
		default:
			logger.WithField("state", state).Debug("still deleting, waiting longer")
		}

		select {
		case <-ctx.Done():
			return skipped(ReasonCancelled)
		case <-deadline.C:
			msg := fmt.Sprintf("not deleted after %s", timeout)
			if lastErr != nil {
				msg += ": " + lastErr.Error()
			}
			return Outcome{Status: Failed, Error: Timeout, Message: msg}
		case <-ticker.C:
		}
	}
}
