package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/service/reorder"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// NewBoardRepositoryAdapter creates an adapter that allows a
// store.BoardStore to be used as the reorder engine's repository.
// The sibling scope of a board is its owner.
func NewBoardRepositoryAdapter(boardStore store.BoardStore, db *sql.DB) reorder.Repository {
	return &boardRepositoryAdapter{
		boardStore: boardStore,
		db:         db,
	}
}

type boardRepositoryAdapter struct {
	boardStore store.BoardStore
	db         *sql.DB
}

func (a *boardRepositoryAdapter) ListForUpdate(
	ctx context.Context,
	scopeID uuid.UUID,
) ([]reorder.Sibling, error) {
	boards, err := a.boardStore.ListByOwnerForUpdate(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	siblings := make([]reorder.Sibling, len(boards))
	for i, b := range boards {
		siblings[i] = reorder.Sibling{ID: b.ID, ScopeID: b.OwnerID, Position: b.Position}
	}
	return siblings, nil
}

func (a *boardRepositoryAdapter) Get(ctx context.Context, id uuid.UUID) (reorder.Sibling, error) {
	b, err := a.boardStore.GetByID(ctx, id)
	if err != nil {
		return reorder.Sibling{}, err
	}
	return reorder.Sibling{ID: b.ID, ScopeID: b.OwnerID, Position: b.Position}, nil
}

func (a *boardRepositoryAdapter) UpdatePosition(
	ctx context.Context,
	id uuid.UUID,
	position int64,
) error {
	return a.boardStore.UpdatePosition(ctx, id, position)
}

// UpdateScopeAndPosition is unreachable for boards: the board service
// always targets the board's own owner scope, so a move never changes
// it.
func (a *boardRepositoryAdapter) UpdateScopeAndPosition(
	ctx context.Context,
	id uuid.UUID,
	scopeID uuid.UUID,
	position int64,
) error {
	return fmt.Errorf("boards cannot change owner: %w", store.ErrNotImplemented)
}

func (a *boardRepositoryAdapter) MaxPosition(ctx context.Context, scopeID uuid.UUID) (int64, error) {
	return a.boardStore.MaxPosition(ctx, scopeID)
}

func (a *boardRepositoryAdapter) WithTx(tx *sql.Tx) reorder.Repository {
	return &boardRepositoryAdapter{
		boardStore: a.boardStore.WithTx(tx),
		db:         a.db,
	}
}

func (a *boardRepositoryAdapter) DB() *sql.DB {
	return a.db
}
