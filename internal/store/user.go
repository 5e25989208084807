package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
)

// UserStore persists user accounts.
type UserStore interface {
	// Create saves a new user. The user must already carry its hashed
	// password; plaintext passwords never reach this layer. A taken
	// email fails with ErrEmailExists.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns the user with the given ID, or ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns the account registered under email, or
	// ErrUserNotFound. Login and duplicate checks come through here.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users ordered by creation time ascending. Used
	// by the admin account listing.
	List(ctx context.Context) ([]*domain.User, error)

	// Update rewrites the user's email, role, and hashed password from
	// a complete user object. Fails with ErrUserNotFound for a missing
	// user and ErrEmailExists when the new email is taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes the account. The user's boards, columns, and
	// tasks cascade away with the row. Fails with ErrUserNotFound for
	// a missing user.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx binds the store to a caller-managed transaction.
	WithTx(tx *sql.Tx) UserStore
}
