package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
)

// BoardStore defines the interface for board data persistence. The
// boards of one owner form a sibling scope; every listing method
// returns them ordered by position ascending.
type BoardStore interface {
	// Create saves a new board to the store.
	// Returns ErrInvalidEntity if validation or a constraint fails,
	// ErrDuplicate if the owner already has a board at that position.
	Create(ctx context.Context, board *domain.Board) error

	// GetByID retrieves a board by its unique ID.
	// Returns ErrBoardNotFound if the board does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)

	// ListByOwner returns the owner's boards ordered by position
	// ascending. Returns an empty slice when the owner has none.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Board, error)

	// ListByOwnerForUpdate behaves like ListByOwner but additionally
	// row-locks every returned board for the duration of the current
	// transaction, serializing concurrent reorders of the same scope.
	// Must be called on a store bound to a transaction via WithTx.
	ListByOwnerForUpdate(ctx context.Context, ownerID uuid.UUID) ([]*domain.Board, error)

	// MaxPosition returns the highest position among the owner's boards,
	// or 0 when the owner has none.
	MaxPosition(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// Update modifies an existing board's title.
	// Returns ErrBoardNotFound if the board does not exist.
	Update(ctx context.Context, board *domain.Board) error

	// UpdatePosition rewrites a single board's position.
	// Returns ErrBoardNotFound if the board does not exist.
	UpdatePosition(ctx context.Context, id uuid.UUID, position int64) error

	// Delete removes a board and, via cascade, its columns and tasks.
	// Remaining sibling boards keep their positions.
	// Returns ErrBoardNotFound if the board does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new BoardStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) BoardStore
}
