package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/service/reorder"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// NewColumnRepositoryAdapter creates an adapter that allows a
// store.ColumnStore to be used as the reorder engine's repository.
// The sibling scope of a column is its board; cross-scope moves carry
// a column to another board.
func NewColumnRepositoryAdapter(columnStore store.ColumnStore, db *sql.DB) reorder.Repository {
	return &columnRepositoryAdapter{
		columnStore: columnStore,
		db:          db,
	}
}

type columnRepositoryAdapter struct {
	columnStore store.ColumnStore
	db          *sql.DB
}

func (a *columnRepositoryAdapter) ListForUpdate(
	ctx context.Context,
	scopeID uuid.UUID,
) ([]reorder.Sibling, error) {
	columns, err := a.columnStore.ListByBoardForUpdate(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	siblings := make([]reorder.Sibling, len(columns))
	for i, c := range columns {
		siblings[i] = reorder.Sibling{ID: c.ID, ScopeID: c.BoardID, Position: c.Position}
	}
	return siblings, nil
}

func (a *columnRepositoryAdapter) Get(ctx context.Context, id uuid.UUID) (reorder.Sibling, error) {
	c, err := a.columnStore.GetByID(ctx, id)
	if err != nil {
		return reorder.Sibling{}, err
	}
	return reorder.Sibling{ID: c.ID, ScopeID: c.BoardID, Position: c.Position}, nil
}

func (a *columnRepositoryAdapter) UpdatePosition(
	ctx context.Context,
	id uuid.UUID,
	position int64,
) error {
	return a.columnStore.UpdatePosition(ctx, id, position)
}

func (a *columnRepositoryAdapter) UpdateScopeAndPosition(
	ctx context.Context,
	id uuid.UUID,
	scopeID uuid.UUID,
	position int64,
) error {
	return a.columnStore.UpdateBoardAndPosition(ctx, id, scopeID, position)
}

func (a *columnRepositoryAdapter) MaxPosition(ctx context.Context, scopeID uuid.UUID) (int64, error) {
	return a.columnStore.MaxPosition(ctx, scopeID)
}

func (a *columnRepositoryAdapter) WithTx(tx *sql.Tx) reorder.Repository {
	return &columnRepositoryAdapter{
		columnStore: a.columnStore.WithTx(tx),
		db:          a.db,
	}
}

func (a *columnRepositoryAdapter) DB() *sql.DB {
	return a.db
}
