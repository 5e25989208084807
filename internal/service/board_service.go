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

// BoardContents is a board assembled with its columns and their tasks,
// each level ordered by position ascending. It is the payload of the
// board detail view.
type BoardContents struct {
	Board   *domain.Board
	Columns []ColumnContents
}

// ColumnContents pairs a column with its ordered tasks.
type ColumnContents struct {
	Column *domain.Column
	Tasks  []*domain.Task
}

// BoardService provides operations on a user's boards.
type BoardService interface {
	// Create adds a new board at the end of the actor's board list.
	Create(ctx context.Context, actor Actor, title string) (*domain.Board, error)

	// Get retrieves a single board.
	// Returns store.ErrBoardNotFound if it does not exist and
	// ErrBoardNotOwned if the actor may not access it.
	Get(ctx context.Context, actor Actor, boardID uuid.UUID) (*domain.Board, error)

	// GetWithContents retrieves a board together with its columns and
	// tasks, ordered for display.
	GetWithContents(ctx context.Context, actor Actor, boardID uuid.UUID) (*BoardContents, error)

	// List returns the actor's own boards ordered by position ascending.
	List(ctx context.Context, actor Actor) ([]*domain.Board, error)

	// Rename changes a board's title.
	Rename(ctx context.Context, actor Actor, boardID uuid.UUID, title string) (*domain.Board, error)

	// Delete removes a board and everything on it.
	Delete(ctx context.Context, actor Actor, boardID uuid.UUID) error

	// Move reorders a board within its owner's board list. BeforeID and
	// AfterID name the intended neighbors; both nil appends to the end.
	Move(ctx context.Context, actor Actor, boardID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Board, error)
}

// Verify interface compliance at compile time.
var _ BoardService = (*boardServiceImpl)(nil)

type boardServiceImpl struct {
	boardStore  store.BoardStore
	columnStore store.ColumnStore
	taskStore   store.TaskStore
	engine      *reorder.Engine
	db          *sql.DB
	logger      *slog.Logger
}

// NewBoardService creates a BoardService over the given stores. The
// reordering engine is wired internally from the board store.
func NewBoardService(
	boardStore store.BoardStore,
	columnStore store.ColumnStore,
	taskStore store.TaskStore,
	db *sql.DB,
	logger *slog.Logger,
) BoardService {
	if boardStore == nil {
		panic("boardStore cannot be nil")
	}
	if columnStore == nil {
		panic("columnStore cannot be nil")
	}
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &boardServiceImpl{
		boardStore:  boardStore,
		columnStore: columnStore,
		taskStore:   taskStore,
		engine:      reorder.NewEngine("board", NewBoardRepositoryAdapter(boardStore, db), logger),
		db:          db,
		logger:      logger.With(slog.String("component", "board_service")),
	}
}

func (s *boardServiceImpl) Create(
	ctx context.Context,
	actor Actor,
	title string,
) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var board *domain.Board
	err := withTxRetry(ctx, func(ctx context.Context) error {
		return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			pos, err := s.engine.WithTx(tx).AppendPosition(ctx, actor.ID)
			if err != nil {
				return err
			}

			b, err := domain.NewBoard(actor.ID, title, pos)
			if err != nil {
				return err
			}

			if err := s.boardStore.WithTx(tx).Create(ctx, b); err != nil {
				return err
			}
			board = b
			return nil
		})
	})
	if err != nil {
		log.Error("failed to create board",
			slog.String("error", err.Error()),
			slog.String("owner_id", actor.ID.String()))
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	log.Info("board created",
		slog.String("board_id", board.ID.String()),
		slog.String("owner_id", actor.ID.String()),
		slog.Int64("position", board.Position))
	return board, nil
}

func (s *boardServiceImpl) Get(
	ctx context.Context,
	actor Actor,
	boardID uuid.UUID,
) (*domain.Board, error) {
	board, err := s.boardStore.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *boardServiceImpl) GetWithContents(
	ctx context.Context,
	actor Actor,
	boardID uuid.UUID,
) (*BoardContents, error) {
	board, err := s.Get(ctx, actor, boardID)
	if err != nil {
		return nil, err
	}

	columns, err := s.columnStore.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	tasks, err := s.taskStore.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	// Tasks arrive ordered by column position then task position, so
	// grouping preserves each column's display order.
	byColumn := make(map[uuid.UUID][]*domain.Task, len(columns))
	for _, t := range tasks {
		byColumn[t.ColumnID] = append(byColumn[t.ColumnID], t)
	}

	contents := &BoardContents{
		Board:   board,
		Columns: make([]ColumnContents, len(columns)),
	}
	for i, c := range columns {
		columnTasks := byColumn[c.ID]
		if columnTasks == nil {
			columnTasks = []*domain.Task{}
		}
		contents.Columns[i] = ColumnContents{Column: c, Tasks: columnTasks}
	}
	return contents, nil
}

func (s *boardServiceImpl) List(ctx context.Context, actor Actor) ([]*domain.Board, error) {
	return s.boardStore.ListByOwner(ctx, actor.ID)
}

func (s *boardServiceImpl) Rename(
	ctx context.Context,
	actor Actor,
	boardID uuid.UUID,
	title string,
) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var board *domain.Board
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.boardStore.WithTx(tx)

		b, err := txStore.GetByID(ctx, boardID)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, actor, b); err != nil {
			return err
		}
		if err := b.Rename(title); err != nil {
			return err
		}
		if err := txStore.Update(ctx, b); err != nil {
			return err
		}
		board = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("board renamed", slog.String("board_id", boardID.String()))
	return board, nil
}

func (s *boardServiceImpl) Delete(ctx context.Context, actor Actor, boardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.boardStore.WithTx(tx)

		b, err := txStore.GetByID(ctx, boardID)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, actor, b); err != nil {
			return err
		}
		return txStore.Delete(ctx, boardID)
	})
	if err != nil {
		return err
	}

	log.Info("board deleted", slog.String("board_id", boardID.String()))
	return nil
}

func (s *boardServiceImpl) Move(
	ctx context.Context,
	actor Actor,
	boardID uuid.UUID,
	beforeID, afterID *uuid.UUID,
) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	board, err := s.boardStore.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, reorder.ErrEntityNotFound
		}
		return nil, err
	}
	if err := s.authorize(ctx, actor, board); err != nil {
		return nil, err
	}

	// Boards reorder within their owner's scope, which never changes.
	req := reorder.MoveRequest{
		ID:       boardID,
		ScopeID:  board.OwnerID,
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

	board.Position = placement.Position
	log.Debug("board moved",
		slog.String("board_id", boardID.String()),
		slog.Int64("position", placement.Position))
	return board, nil
}

// authorize checks that the actor may touch the board. Admins may
// touch any board.
func (s *boardServiceImpl) authorize(ctx context.Context, actor Actor, board *domain.Board) error {
	if board.OwnerID == actor.ID || actor.IsAdmin() {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Warn("actor does not own board",
		slog.String("actor_id", actor.ID.String()),
		slog.String("board_id", board.ID.String()),
		slog.String("owner_id", board.OwnerID.String()))
	return ErrBoardNotOwned
}
