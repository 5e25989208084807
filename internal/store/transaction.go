// Package store defines the persistence interfaces for the task board
// and the transaction helper shared by their implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/sarmadH97/keeyu-task-board/internal/platform/logger"
)

// TxFn is a function executed within a database transaction. The
// transaction commits if the function returns nil and rolls back
// otherwise.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn inside a transaction on db. An error from fn
// rolls the transaction back and comes back unchanged, so callers can
// still match sentinels with errors.Is. A panic inside fn rolls back and
// is re-raised. Reorder operations rely on this wrapper so that neighbor
// reads, rebalances, and the final position write land atomically.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("transaction begin failed", slog.String("error", err.Error()))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback after panic failed",
				slog.Any("panic", p),
				slog.String("error", rbErr.Error()))
		} else {
			log.Error("transaction rolled back after panic",
				slog.Any("panic", p))
		}
		// ALLOW-PANIC: Propagating panic after rollback
		panic(p)
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("transaction rollback failed",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("rollback failed: %v (while handling: %w)", rbErr, err)
		}
		log.Debug("transaction rolled back",
			slog.String("error", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("transaction commit failed", slog.String("error", err.Error()))
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.Debug("transaction committed")
	return nil
}
