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

// TaskService provides operations on tasks. Ownership resolves through
// the task's column to its board; admins bypass the check the same way
// they do for boards.
type TaskService interface {
	// Create adds a new task at the bottom of the column.
	Create(ctx context.Context, actor Actor, columnID uuid.UUID, title, description string) (*domain.Task, error)

	// Get retrieves a single task.
	Get(ctx context.Context, actor Actor, taskID uuid.UUID) (*domain.Task, error)

	// Update changes a task's title and description.
	Update(ctx context.Context, actor Actor, taskID uuid.UUID, title, description string) (*domain.Task, error)

	// Delete removes a task. Sibling tasks keep their positions.
	Delete(ctx context.Context, actor Actor, taskID uuid.UUID) error

	// Move reorders a task, optionally dragging it into another column.
	// BeforeID and AfterID name the intended neighbor tasks in the
	// destination column.
	Move(ctx context.Context, actor Actor, taskID uuid.UUID, columnID, beforeID, afterID *uuid.UUID) (*domain.Task, error)
}

// Verify interface compliance at compile time.
var _ TaskService = (*taskServiceImpl)(nil)

type taskServiceImpl struct {
	taskStore   store.TaskStore
	columnStore store.ColumnStore
	boardStore  store.BoardStore
	engine      *reorder.Engine
	db          *sql.DB
	logger      *slog.Logger
}

// NewTaskService creates a TaskService over the given stores.
func NewTaskService(
	taskStore store.TaskStore,
	columnStore store.ColumnStore,
	boardStore store.BoardStore,
	db *sql.DB,
	logger *slog.Logger,
) TaskService {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
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

	return &taskServiceImpl{
		taskStore:   taskStore,
		columnStore: columnStore,
		boardStore:  boardStore,
		engine:      reorder.NewEngine("task", NewTaskRepositoryAdapter(taskStore, db), logger),
		db:          db,
		logger:      logger.With(slog.String("component", "task_service")),
	}
}

func (s *taskServiceImpl) Create(
	ctx context.Context,
	actor Actor,
	columnID uuid.UUID,
	title, description string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.authorizeColumn(ctx, actor, columnID); err != nil {
		return nil, err
	}

	var task *domain.Task
	err := withTxRetry(ctx, func(ctx context.Context) error {
		return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			pos, err := s.engine.WithTx(tx).AppendPosition(ctx, columnID)
			if err != nil {
				return err
			}

			t, err := domain.NewTask(columnID, title, description, pos)
			if err != nil {
				return err
			}

			if err := s.taskStore.WithTx(tx).Create(ctx, t); err != nil {
				return err
			}
			task = t
			return nil
		})
	})
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("column_id", columnID.String()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("column_id", columnID.String()),
		slog.Int64("position", task.Position))
	return task, nil
}

func (s *taskServiceImpl) Get(
	ctx context.Context,
	actor Actor,
	taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeColumn(ctx, actor, task.ColumnID); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) Update(
	ctx context.Context,
	actor Actor,
	taskID uuid.UUID,
	title, description string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		t, err := txStore.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := s.authorizeColumn(ctx, actor, t.ColumnID); err != nil {
			return err
		}
		if err := t.UpdateDetails(title, description); err != nil {
			return err
		}
		if err := txStore.Update(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task updated", slog.String("task_id", taskID.String()))
	return task, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, actor Actor, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		t, err := txStore.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := s.authorizeColumn(ctx, actor, t.ColumnID); err != nil {
			return err
		}
		return txStore.Delete(ctx, taskID)
	})
	if err != nil {
		return err
	}

	log.Info("task deleted", slog.String("task_id", taskID.String()))
	return nil
}

func (s *taskServiceImpl) Move(
	ctx context.Context,
	actor Actor,
	taskID uuid.UUID,
	columnID, beforeID, afterID *uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, reorder.ErrEntityNotFound
		}
		return nil, err
	}
	if err := s.authorizeColumn(ctx, actor, task.ColumnID); err != nil {
		return nil, err
	}

	// Dragging into another column needs access to that column's board,
	// which may be a different board entirely.
	scope := task.ColumnID
	if columnID != nil && *columnID != task.ColumnID {
		if err := s.authorizeColumn(ctx, actor, *columnID); err != nil {
			return nil, err
		}
		scope = *columnID
	}

	req := reorder.MoveRequest{
		ID:       taskID,
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

	task.ColumnID = placement.ScopeID
	task.Position = placement.Position
	log.Debug("task moved",
		slog.String("task_id", taskID.String()),
		slog.String("column_id", placement.ScopeID.String()),
		slog.Int64("position", placement.Position))
	return task, nil
}

// authorizeColumn resolves the column's board and checks the actor may
// touch it.
func (s *taskServiceImpl) authorizeColumn(ctx context.Context, actor Actor, columnID uuid.UUID) error {
	column, err := s.columnStore.GetByID(ctx, columnID)
	if err != nil {
		return err
	}

	board, err := s.boardStore.GetByID(ctx, column.BoardID)
	if err != nil {
		return fmt.Errorf("failed to resolve board for column: %w", err)
	}
	if board.OwnerID == actor.ID || actor.IsAdmin() {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Warn("actor does not own board",
		slog.String("actor_id", actor.ID.String()),
		slog.String("column_id", columnID.String()),
		slog.String("owner_id", board.OwnerID.String()))
	return ErrTaskNotOwned
}
