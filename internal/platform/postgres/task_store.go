package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/logger"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is
// nil, the process default is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the column does not exist and
// store.ErrDuplicate if the column already holds that position.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, column_id, title, description, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.ColumnID,
		task.Title,
		task.Description,
		task.Position,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("column_id", task.ColumnID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("column_id", task.ColumnID.String()),
		slog.Int64("position", task.Position))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, column_id, title, description, position, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.ColumnID,
		&task.Title,
		&task.Description,
		&task.Position,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return &task, nil
}

// ListByColumn implements store.TaskStore.ListByColumn
func (s *PostgresTaskStore) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT id, column_id, title, description, position, created_at, updated_at
		FROM tasks
		WHERE column_id = $1
		ORDER BY position
	`
	return s.listTasks(ctx, query, columnID)
}

// ListByColumnForUpdate implements store.TaskStore.ListByColumnForUpdate
// Row locks are held until the surrounding transaction finishes.
func (s *PostgresTaskStore) ListByColumnForUpdate(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT id, column_id, title, description, position, created_at, updated_at
		FROM tasks
		WHERE column_id = $1
		ORDER BY position
		FOR UPDATE
	`
	return s.listTasks(ctx, query, columnID)
}

// ListByBoard implements store.TaskStore.ListByBoard
// It returns every task on the board ordered by column position and
// then task position, so the full board view assembles in one query.
func (s *PostgresTaskStore) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT t.id, t.column_id, t.title, t.description, t.position, t.created_at, t.updated_at
		FROM tasks t
		JOIN columns c ON c.id = t.column_id
		WHERE c.board_id = $1
		ORDER BY c.position, t.position
	`
	return s.listTasks(ctx, query, boardID)
}

func (s *PostgresTaskStore) listTasks(ctx context.Context, query string, scopeID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, scopeID)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("scope_id", scopeID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.ColumnID,
			&task.Title,
			&task.Description,
			&task.Position,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks",
		slog.String("scope_id", scopeID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// MaxPosition implements store.TaskStore.MaxPosition
// Returns 0 when the column has no tasks.
func (s *PostgresTaskStore) MaxPosition(ctx context.Context, columnID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COALESCE(MAX(position), 0) FROM tasks WHERE column_id = $1`

	var max int64
	if err := s.db.QueryRowContext(ctx, query, columnID).Scan(&max); err != nil {
		log.Error("failed to get max task position",
			slog.String("error", err.Error()),
			slog.String("column_id", columnID.String()))
		return 0, MapError(err)
	}

	return max, nil
}

// Update implements store.TaskStore.Update
// Title and description are writable this way; position and column
// changes move through UpdatePosition and UpdateColumnAndPosition.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, task.Title, task.Description, task.UpdatedAt, task.ID)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for update", slog.String("task_id", task.ID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully", slog.String("task_id", task.ID.String()))
	return nil
}

// UpdatePosition implements store.TaskStore.UpdatePosition
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) UpdatePosition(ctx context.Context, id uuid.UUID, position int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET position = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, position, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update task position",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.Int64("position", position))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for position update", slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Debug("task position updated",
		slog.String("task_id", id.String()),
		slog.Int64("position", position))
	return nil
}

// UpdateColumnAndPosition implements store.TaskStore.UpdateColumnAndPosition
// Both fields change in a single statement so a task is never visible
// in the new column with its old position.
// Returns store.ErrTaskNotFound if the task does not exist and
// store.ErrInvalidEntity if the destination column does not exist.
func (s *PostgresTaskStore) UpdateColumnAndPosition(ctx context.Context, id, columnID uuid.UUID, position int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET column_id = $1, position = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, columnID, position, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to move task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("column_id", columnID.String()),
			slog.Int64("position", position))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for move", slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task moved",
		slog.String("task_id", id.String()),
		slog.String("column_id", columnID.String()),
		slog.Int64("position", position))
	return nil
}

// Delete implements store.TaskStore.Delete
// Sibling tasks keep their positions.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete", slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}
