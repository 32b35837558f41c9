package commands

import (
	"context"
	"errors"
	"time"

	"relay/internal/pkg/errs"
)

const (
	// conflictRetryAttempts bounds how often a handler reruns its unit of
	// work after a serialization conflict.
	conflictRetryAttempts = 3

	// conflictRetryBackoff is the base delay between attempts; attempt n
	// waits n times this long.
	conflictRetryBackoff = 25 * time.Millisecond
)

// withConflictRetry runs fn until it succeeds, fails with a non-conflict
// error, or exhausts the attempt budget. The unit of work inside fn must be
// side-effect-free until its commit, so rerunning it is safe.
func withConflictRetry(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= conflictRetryAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil || !errors.Is(lastErr, errs.ErrConflict) {
			return lastErr
		}

		if attempt == conflictRetryAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * conflictRetryBackoff):
		}
	}

	return errs.NewConflictErrorWithCause(operation, conflictRetryAttempts, lastErr)
}
