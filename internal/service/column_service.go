package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/logger"
	"github.com/sarmadH97/keeyu-task-board/internal/service/reorder"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// ColumnService provides operations on board columns. Access to a
// column is access to its board: every method resolves the owning
// board and applies the same ownership rule as BoardService.
type ColumnService interface {
	// Create adds a new column at the right end of the board.
	Create(ctx context.Context, actor Actor, boardID uuid.UUID, title string) (*domain.Column, error)

	// Get retrieves a single column.
	Get(ctx context.Context, actor Actor, columnID uuid.UUID) (*domain.Column, error)

	// Rename changes a column's title.
	Rename(ctx context.Context, actor Actor, columnID uuid.UUID, title string) (*domain.Column, error)

	// Delete removes a column and its tasks.
	Delete(ctx context.Context, actor Actor, columnID uuid.UUID) error

	// Move reorders a column, optionally carrying it to another board
	// the actor can access. BeforeID and AfterID name the intended
	// neighbors on the destination board.
	Move(ctx context.Context, actor Actor, columnID uuid.UUID, boardID, beforeID, afterID *uuid.UUID) (*domain.Column, error)
}

// Verify interface compliance at compile time.
var _ ColumnService = (*columnServiceImpl)(nil)

type columnServiceImpl struct {
	columnStore store.ColumnStore
	boardStore  store.BoardStore
	engine      *reorder.Engine
	db          *sql.DB
	logger      *slog.Logger
}

// NewColumnService creates a ColumnService over the given stores.
func NewColumnService(
	columnStore store.ColumnStore,
	boardStore store.BoardStore,
	db *sql.DB,
	logger *slog.Logger,
) ColumnService {
	if columnStore == nil {
		panic("columnStore cannot be nil")
	}
	if boardStore == nil {
		panic("boardStore cannot be nil")
	}
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &columnServiceImpl{
		columnStore: columnStore,
		boardStore:  boardStore,
		engine:      reorder.NewEngine("column", NewColumnRepositoryAdapter(columnStore, db), logger),
		db:          db,
		logger:      logger.With(slog.String("component", "column_service")),
	}
}

func (s *columnServiceImpl) Create(
	ctx context.Context,
	actor Actor,
	boardID uuid.UUID,
	title string,
) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.authorizeBoard(ctx, actor, boardID); err != nil {
		return nil, err
	}

	var column *domain.Column
	err := withTxRetry(ctx, func(ctx context.Context) error {
		return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			pos, err := s.engine.WithTx(tx).AppendPosition(ctx, boardID)
			if err != nil {
				return err
			}

			c, err := domain.NewColumn(boardID, title, pos)
			if err != nil {
				return err
			}

			if err := s.columnStore.WithTx(tx).Create(ctx, c); err != nil {
				return err
			}
			column = c
			return nil
		})
	})
	if err != nil {
		log.Error("failed to create column",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	log.Info("column created",
		slog.String("column_id", column.ID.String()),
		slog.String("board_id", boardID.String()),
		slog.Int64("position", column.Position))
	return column, nil
}

func (s *columnServiceImpl) Get(
	ctx context.Context,
	actor Actor,
	columnID uuid.UUID,
) (*domain.Column, error) {
	column, err := s.columnStore.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeBoard(ctx, actor, column.BoardID); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *columnServiceImpl) Rename(
	ctx context.Context,
	actor Actor,
	columnID uuid.UUID,
	title string,
) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var column *domain.Column
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.columnStore.WithTx(tx)

		c, err := txStore.GetByID(ctx, columnID)
		if err != nil {
			return err
		}
		if err := s.authorizeBoard(ctx, actor, c.BoardID); err != nil {
			return err
		}
		if err := c.Rename(title); err != nil {
			return err
		}
		if err := txStore.Update(ctx, c); err != nil {
			return err
		}
		column = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("column renamed", slog.String("column_id", columnID.String()))
	return column, nil
}

func (s *columnServiceImpl) Delete(ctx context.Context, actor Actor, columnID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.columnStore.WithTx(tx)

		c, err := txStore.GetByID(ctx, columnID)
		if err != nil {
			return err
		}
		if err := s.authorizeBoard(ctx, actor, c.BoardID); err != nil {
			return err
		}
		return txStore.Delete(ctx, columnID)
	})
	if err != nil {
		return err
	}

	log.Info("column deleted", slog.String("column_id", columnID.String()))
	return nil
}

func (s *columnServiceImpl) Move(
	ctx context.Context,
	actor Actor,
	columnID uuid.UUID,
	boardID, beforeID, afterID *uuid.UUID,
) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	column, err := s.columnStore.GetByID(ctx, columnID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, reorder.ErrEntityNotFound
		}
		return nil, err
	}
	if err := s.authorizeBoard(ctx, actor, column.BoardID); err != nil {
		return nil, err
	}

	// A cross-board move needs access to the destination board too.
	scope := column.BoardID
	if boardID != nil && *boardID != column.BoardID {
		if err := s.authorizeBoard(ctx, actor, *boardID); err != nil {
			return nil, err
		}
		scope = *boardID
	}

	req := reorder.MoveRequest{
		ID:       columnID,
		ScopeID:  scope,
		BeforeID: beforeID,
		AfterID:  afterID,
	}

	var placement *reorder.Placement
	err = withTxRetry(ctx, func(ctx context.Context) error {
		var moveErr error
		placement, moveErr = s.engine.Move(ctx, req)
		return moveErr
	})
	if err != nil {
		return nil, err
	}

	column.BoardID = placement.ScopeID
	column.Position = placement.Position
	log.Debug("column moved",
		slog.String("column_id", columnID.String()),
		slog.String("board_id", placement.ScopeID.String()),
		slog.Int64("position", placement.Position))
	return column, nil
}

// authorizeBoard resolves the board and checks the actor may touch it.
func (s *columnServiceImpl) authorizeBoard(ctx context.Context, actor Actor, boardID uuid.UUID) error {
	board, err := s.boardStore.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board.OwnerID == actor.ID || actor.IsAdmin() {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Warn("actor does not own board",
		slog.String("actor_id", actor.ID.String()),
		slog.String("board_id", boardID.String()),
		slog.String("owner_id", board.OwnerID.String()))
	return ErrColumnNotOwned
}
