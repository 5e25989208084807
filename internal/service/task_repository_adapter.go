package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/service/reorder"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// NewTaskRepositoryAdapter creates an adapter that allows a
// store.TaskStore to be used as the reorder engine's repository.
// The sibling scope of a task is its column; cross-scope moves are the
// drag of a task into another column.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) reorder.Repository {
	return &taskRepositoryAdapter{
		taskStore: taskStore,
		db:        db,
	}
}

type taskRepositoryAdapter struct {
	taskStore store.TaskStore
	db        *sql.DB
}

func (a *taskRepositoryAdapter) ListForUpdate(
	ctx context.Context,
	scopeID uuid.UUID,
) ([]reorder.Sibling, error) {
	tasks, err := a.taskStore.ListByColumnForUpdate(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	siblings := make([]reorder.Sibling, len(tasks))
	for i, t := range tasks {
		siblings[i] = reorder.Sibling{ID: t.ID, ScopeID: t.ColumnID, Position: t.Position}
	}
	return siblings, nil
}

func (a *taskRepositoryAdapter) Get(ctx context.Context, id uuid.UUID) (reorder.Sibling, error) {
	t, err := a.taskStore.GetByID(ctx, id)
	if err != nil {
		return reorder.Sibling{}, err
	}
	return reorder.Sibling{ID: t.ID, ScopeID: t.ColumnID, Position: t.Position}, nil
}

func (a *taskRepositoryAdapter) UpdatePosition(
	ctx context.Context,
	id uuid.UUID,
	position int64,
) error {
	return a.taskStore.UpdatePosition(ctx, id, position)
}

func (a *taskRepositoryAdapter) UpdateScopeAndPosition(
	ctx context.Context,
	id uuid.UUID,
	scopeID uuid.UUID,
	position int64,
) error {
	return a.taskStore.UpdateColumnAndPosition(ctx, id, scopeID, position)
}

func (a *taskRepositoryAdapter) MaxPosition(ctx context.Context, scopeID uuid.UUID) (int64, error) {
	return a.taskStore.MaxPosition(ctx, scopeID)
}

func (a *taskRepositoryAdapter) WithTx(tx *sql.Tx) reorder.Repository {
	return &taskRepositoryAdapter{
		taskStore: a.taskStore.WithTx(tx),
		db:        a.db,
	}
}

func (a *taskRepositoryAdapter) DB() *sql.DB {
	return a.db
}
