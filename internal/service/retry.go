package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/sarmadH97/keeyu-task-board/internal/platform/postgres"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// txRetryAttempts bounds how many times a conflicting write is rerun
// before the conflict surfaces to the client as a 409.
const txRetryAttempts = 3

// txRetryBackoff is the pause between attempts. Constant rather than
// exponential: conflicts here come from two users touching the same
// scope at once, and the row locks that caused them are released as
// soon as the winner commits.
const txRetryBackoff = 100 * time.Millisecond

// withTxRetry reruns fn while it fails with a retryable conflict
// (serialization failure, deadlock, or a deferred unique violation
// surfacing at commit). fn must open its own transaction so every
// attempt starts from a clean snapshot. Once the attempts are
// exhausted the error maps to store.ErrTransactionConflict.
func withTxRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(txRetryAttempts-1, retry.NewConstant(txRetryBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if postgres.IsRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil && postgres.IsRetryable(err) {
		return fmt.Errorf("%w: gave up after %d attempts: %v",
			store.ErrTransactionConflict, txRetryAttempts, err)
	}
	return err
}
