// Package postgres implements the store interfaces on PostgreSQL via
// database/sql and the pgx driver.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// PostgreSQL error codes the store layer gives dedicated handling.
const (
	uniqueViolationCode      = "23505"
	foreignKeyViolationCode  = "23503"
	checkViolationCode       = "23514"
	notNullViolationCode     = "23502"
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
)

// MapError maps a database error to the matching store sentinel,
// wrapping the original error so context survives. Use it on every
// database operation whose errors cross the store boundary.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return invalidEntityError("foreign key violation", pgErr.ConstraintName, err)
		case checkViolationCode:
			return invalidEntityError("check constraint violation", pgErr.ConstraintName, err)
		case notNullViolationCode:
			return invalidEntityError("not null violation", pgErr.ColumnName, err)
		case serializationFailureCode, deadlockDetectedCode:
			return fmt.Errorf("%w: %v", store.ErrTransactionConflict, err)
		}
	}

	return err
}

// invalidEntityError wraps a constraint failure as store.ErrInvalidEntity,
// naming the violated constraint or column.
func invalidEntityError(kind, detail string, err error) error {
	return fmt.Errorf("%w: %s (%s): %v", store.ErrInvalidEntity, kind, detail, err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsRetryable reports whether the error marks a transaction that can
// be retried from the top: serialization failures, deadlocks, and
// unique violations raised at commit by the deferred per-scope
// position constraints. Only wrap position-writing transactions with a
// retry on this predicate; a unique violation from a plain insert
// (for example a taken email) is not transient.
func IsRetryable(err error) bool {
	if errors.Is(err, store.ErrTransactionConflict) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case serializationFailureCode, deadlockDetectedCode, uniqueViolationCode:
		return true
	}
	return false
}

// MapUniqueViolation maps a PostgreSQL unique violation to a more
// specific error, passing everything else through. When specificError
// is nil the generic store.ErrDuplicate is used with a message built
// from the entity name.
func MapUniqueViolation(err error, entityName string, specificError error) error {
	if !IsUniqueViolation(err) {
		return err
	}

	if specificError != nil {
		return fmt.Errorf("%w: %v", specificError, err)
	}

	if entityName != "" {
		return fmt.Errorf("%w: %s already exists: %v", store.ErrDuplicate, entityName, err)
	}
	return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
}
