package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the service implementations. Callers match
// them with errors.Is; the API layer maps ErrNotOwned to 403.
var (
	// ErrNotOwned reports a resource owned by a different user than the
	// caller. Admins bypass the ownership check.
	ErrNotOwned = errors.New("resource is owned by another user")

	// Entity-specific ownership errors. All match ErrNotOwned under
	// errors.Is.
	ErrBoardNotOwned  = fmt.Errorf("%w: board", ErrNotOwned)
	ErrColumnNotOwned = fmt.Errorf("%w: column", ErrNotOwned)
	ErrTaskNotOwned   = fmt.Errorf("%w: task", ErrNotOwned)
)
