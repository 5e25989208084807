package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
)

// ColumnStore defines the interface for column data persistence. The
// columns of one board form a sibling scope; listing methods return
// them ordered by position ascending.
type ColumnStore interface {
	// Create saves a new column to the store.
	// Returns ErrInvalidEntity if validation or a constraint fails.
	Create(ctx context.Context, column *domain.Column) error

	// GetByID retrieves a column by its unique ID.
	// Returns ErrColumnNotFound if the column does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)

	// ListByBoard returns the board's columns ordered by position
	// ascending. Returns an empty slice when the board has none.
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)

	// ListByBoardForUpdate is ListByBoard with the returned rows locked
	// for the current transaction. Must be called on a store bound to a
	// transaction via WithTx.
	ListByBoardForUpdate(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)

	// MaxPosition returns the highest position among the board's
	// columns, or 0 when the board has none.
	MaxPosition(ctx context.Context, boardID uuid.UUID) (int64, error)

	// Update modifies an existing column's title.
	// Returns ErrColumnNotFound if the column does not exist.
	Update(ctx context.Context, column *domain.Column) error

	// UpdatePosition rewrites a single column's position.
	// Returns ErrColumnNotFound if the column does not exist.
	UpdatePosition(ctx context.Context, id uuid.UUID, position int64) error

	// UpdateBoardAndPosition re-parents a column onto another board and
	// assigns its position there in one atomic write.
	// Returns ErrColumnNotFound if the column does not exist.
	UpdateBoardAndPosition(ctx context.Context, id, boardID uuid.UUID, position int64) error

	// Delete removes a column and, via cascade, its tasks. Sibling
	// columns keep their positions.
	// Returns ErrColumnNotFound if the column does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ColumnStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ColumnStore
}
