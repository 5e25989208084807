package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
)

// TaskStore defines the interface for task data persistence. Tasks are
// scoped by column the way columns are scoped by board; the method set
// mirrors ColumnStore.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByColumn returns the column's tasks ordered by position ascending.
	ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error)

	// ListByColumnForUpdate is ListByColumn with the returned rows
	// locked for the current transaction.
	ListByColumnForUpdate(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error)

	// ListByBoard returns every task on the board ordered by column and
	// position, for assembling the full board view in one query.
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)

	// MaxPosition returns the highest position among the column's tasks,
	// or 0 when the column has none.
	MaxPosition(ctx context.Context, columnID uuid.UUID) (int64, error)

	// Update modifies an existing task's title and description.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdatePosition rewrites a single task's position.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdatePosition(ctx context.Context, id uuid.UUID, position int64) error

	// UpdateColumnAndPosition moves a task into another column and
	// assigns its position there in one atomic write.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateColumnAndPosition(ctx context.Context, id, columnID uuid.UUID, position int64) error

	// Delete removes a task. Sibling tasks keep their positions.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TaskStore
}
