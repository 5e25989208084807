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

// PostgresColumnStore implements the store.ColumnStore interface using a
// PostgreSQL database as the storage backend.
type PostgresColumnStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresColumnStore creates a new PostgreSQL implementation of the
// ColumnStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is
// nil, the process default is used.
func NewPostgresColumnStore(db store.DBTX, logger *slog.Logger) *PostgresColumnStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresColumnStore{
		db:     db,
		logger: logger.With(slog.String("component", "column_store")),
	}
}

// Ensure PostgresColumnStore implements store.ColumnStore interface
var _ store.ColumnStore = (*PostgresColumnStore)(nil)

// Create implements store.ColumnStore.Create
// Returns store.ErrInvalidEntity if the board does not exist and
// store.ErrDuplicate if the board already holds that position.
func (s *PostgresColumnStore) Create(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		log.Warn("column validation failed during create",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()))
		return err
	}

	query := `
		INSERT INTO columns (id, board_id, title, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		column.ID,
		column.BoardID,
		column.Title,
		column.Position,
		column.CreatedAt,
		column.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create column",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()),
			slog.String("board_id", column.BoardID.String()))
		return MapError(err)
	}

	log.Info("column created successfully",
		slog.String("column_id", column.ID.String()),
		slog.String("board_id", column.BoardID.String()),
		slog.Int64("position", column.Position))
	return nil
}

// GetByID implements store.ColumnStore.GetByID
// Returns store.ErrColumnNotFound if the column does not exist.
func (s *PostgresColumnStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, board_id, title, position, created_at, updated_at
		FROM columns
		WHERE id = $1
	`

	var column domain.Column
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&column.ID,
		&column.BoardID,
		&column.Title,
		&column.Position,
		&column.CreatedAt,
		&column.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("column not found", slog.String("column_id", id.String()))
			return nil, store.ErrColumnNotFound
		}
		log.Error("failed to get column by ID",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return nil, MapError(err)
	}

	return &column, nil
}

// ListByBoard implements store.ColumnStore.ListByBoard
func (s *PostgresColumnStore) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	query := `
		SELECT id, board_id, title, position, created_at, updated_at
		FROM columns
		WHERE board_id = $1
		ORDER BY position
	`
	return s.listColumns(ctx, query, boardID)
}

// ListByBoardForUpdate implements store.ColumnStore.ListByBoardForUpdate
// Row locks are held until the surrounding transaction finishes.
func (s *PostgresColumnStore) ListByBoardForUpdate(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	query := `
		SELECT id, board_id, title, position, created_at, updated_at
		FROM columns
		WHERE board_id = $1
		ORDER BY position
		FOR UPDATE
	`
	return s.listColumns(ctx, query, boardID)
}

func (s *PostgresColumnStore) listColumns(ctx context.Context, query string, boardID uuid.UUID) ([]*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		log.Error("failed to query columns",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var columns []*domain.Column
	for rows.Next() {
		var column domain.Column
		if err := rows.Scan(
			&column.ID,
			&column.BoardID,
			&column.Title,
			&column.Position,
			&column.CreatedAt,
			&column.UpdatedAt,
		); err != nil {
			log.Error("failed to scan column row", slog.String("error", err.Error()))
			return nil, err
		}
		columns = append(columns, &column)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if columns == nil {
		columns = []*domain.Column{}
	}

	log.Debug("listed columns",
		slog.String("board_id", boardID.String()),
		slog.Int("count", len(columns)))
	return columns, nil
}

// MaxPosition implements store.ColumnStore.MaxPosition
// Returns 0 when the board has no columns.
func (s *PostgresColumnStore) MaxPosition(ctx context.Context, boardID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COALESCE(MAX(position), 0) FROM columns WHERE board_id = $1`

	var max int64
	if err := s.db.QueryRowContext(ctx, query, boardID).Scan(&max); err != nil {
		log.Error("failed to get max column position",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return 0, MapError(err)
	}

	return max, nil
}

// Update implements store.ColumnStore.Update
// Only the title is writable this way; position and board changes move
// through UpdatePosition and UpdateBoardAndPosition.
// Returns store.ErrColumnNotFound if the column does not exist.
func (s *PostgresColumnStore) Update(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		log.Warn("column validation failed during update",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()))
		return err
	}

	column.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE columns
		SET title = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, column.Title, column.UpdatedAt, column.ID)
	if err != nil {
		log.Error("failed to update column",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("column not found for update", slog.String("column_id", column.ID.String()))
		return store.ErrColumnNotFound
	}

	log.Info("column updated successfully", slog.String("column_id", column.ID.String()))
	return nil
}

// UpdatePosition implements store.ColumnStore.UpdatePosition
// Returns store.ErrColumnNotFound if the column does not exist.
func (s *PostgresColumnStore) UpdatePosition(ctx context.Context, id uuid.UUID, position int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE columns
		SET position = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, position, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update column position",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()),
			slog.Int64("position", position))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("column not found for position update", slog.String("column_id", id.String()))
		return store.ErrColumnNotFound
	}

	log.Debug("column position updated",
		slog.String("column_id", id.String()),
		slog.Int64("position", position))
	return nil
}

// UpdateBoardAndPosition implements store.ColumnStore.UpdateBoardAndPosition
// Both fields change in a single statement so a column is never visible
// on the new board with its old position.
// Returns store.ErrColumnNotFound if the column does not exist and
// store.ErrInvalidEntity if the destination board does not exist.
func (s *PostgresColumnStore) UpdateBoardAndPosition(ctx context.Context, id, boardID uuid.UUID, position int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE columns
		SET board_id = $1, position = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, boardID, position, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to move column",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()),
			slog.String("board_id", boardID.String()),
			slog.Int64("position", position))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("column not found for move", slog.String("column_id", id.String()))
		return store.ErrColumnNotFound
	}

	log.Info("column moved",
		slog.String("column_id", id.String()),
		slog.String("board_id", boardID.String()),
		slog.Int64("position", position))
	return nil
}

// Delete implements store.ColumnStore.Delete
// Tasks in the column cascade away with the row.
// Returns store.ErrColumnNotFound if the column does not exist.
func (s *PostgresColumnStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM columns WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete column",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("column not found for delete", slog.String("column_id", id.String()))
		return store.ErrColumnNotFound
	}

	log.Info("column deleted successfully", slog.String("column_id", id.String()))
	return nil
}

// WithTx implements store.ColumnStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresColumnStore) WithTx(tx *sql.Tx) store.ColumnStore {
	return &PostgresColumnStore{
		db:     tx,
		logger: s.logger,
	}
}
