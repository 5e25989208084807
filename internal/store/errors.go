package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by store implementations. Entity-specific
// variants wrap a base error, so errors.Is against the base matches
// every variant.
var (
	// ErrNotFound marks lookups of entities that do not exist.
	ErrNotFound = errors.New("entity not found")

	ErrUserNotFound   = fmt.Errorf("%w: user", ErrNotFound)
	ErrBoardNotFound  = fmt.Errorf("%w: board", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)
	ErrTaskNotFound   = fmt.Errorf("%w: task", ErrNotFound)

	// ErrDuplicate marks writes that would violate a uniqueness rule.
	ErrDuplicate = errors.New("entity already exists")

	// ErrEmailExists is returned when registering or updating a user to
	// an email another account already holds.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrInvalidEntity marks writes rejected by validation or by a
	// database constraint, such as a foreign key to a missing parent.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrNotImplemented marks operations a store intentionally refuses,
	// such as moving a board to a different owner.
	ErrNotImplemented = errors.New("method not implemented")

	// ErrTransactionConflict marks transactions the database aborted in
	// favor of a concurrent one: serialization failures, deadlocks, and
	// position collisions detected at commit. The whole operation may
	// be retried a bounded number of times.
	ErrTransactionConflict = errors.New("transaction conflict")
)

// IsNotFoundError reports whether err is ErrNotFound or one of its
// entity-specific variants.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err marks a uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsTransactionConflict reports whether err marks a retryable
// transaction conflict.
func IsTransactionConflict(err error) bool {
	return errors.Is(err, ErrTransactionConflict)
}
