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

// PostgresBoardStore implements the store.BoardStore interface using a
// PostgreSQL database as the storage backend.
type PostgresBoardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBoardStore creates a new PostgreSQL implementation of the
// BoardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is
// nil, the process default is used.
func NewPostgresBoardStore(db store.DBTX, logger *slog.Logger) *PostgresBoardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBoardStore{
		db:     db,
		logger: logger.With(slog.String("component", "board_store")),
	}
}

// Ensure PostgresBoardStore implements store.BoardStore interface
var _ store.BoardStore = (*PostgresBoardStore)(nil)

// Create implements store.BoardStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist and
// store.ErrDuplicate if the owner already holds that position.
func (s *PostgresBoardStore) Create(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		log.Warn("board validation failed during create",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	query := `
		INSERT INTO boards (id, owner_id, title, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		board.ID,
		board.OwnerID,
		board.Title,
		board.Position,
		board.CreatedAt,
		board.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create board",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()),
			slog.String("owner_id", board.OwnerID.String()))
		return MapError(err)
	}

	log.Info("board created successfully",
		slog.String("board_id", board.ID.String()),
		slog.String("owner_id", board.OwnerID.String()),
		slog.Int64("position", board.Position))
	return nil
}

// GetByID implements store.BoardStore.GetByID
// Returns store.ErrBoardNotFound if the board does not exist.
func (s *PostgresBoardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving board by ID", slog.String("board_id", id.String()))

	query := `
		SELECT id, owner_id, title, position, created_at, updated_at
		FROM boards
		WHERE id = $1
	`

	var board domain.Board
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&board.ID,
		&board.OwnerID,
		&board.Title,
		&board.Position,
		&board.CreatedAt,
		&board.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("board not found", slog.String("board_id", id.String()))
			return nil, store.ErrBoardNotFound
		}
		log.Error("failed to get board by ID",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return nil, MapError(err)
	}

	return &board, nil
}

// ListByOwner implements store.BoardStore.ListByOwner
// Boards come back ordered by position ascending; an empty slice when
// the owner has none.
func (s *PostgresBoardStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Board, error) {
	query := `
		SELECT id, owner_id, title, position, created_at, updated_at
		FROM boards
		WHERE owner_id = $1
		ORDER BY position
	`
	return s.listBoards(ctx, query, ownerID)
}

// ListByOwnerForUpdate implements store.BoardStore.ListByOwnerForUpdate
// The returned rows stay locked until the surrounding transaction
// finishes, so concurrent reorders of the same owner's boards queue up
// behind each other.
func (s *PostgresBoardStore) ListByOwnerForUpdate(ctx context.Context, ownerID uuid.UUID) ([]*domain.Board, error) {
	query := `
		SELECT id, owner_id, title, position, created_at, updated_at
		FROM boards
		WHERE owner_id = $1
		ORDER BY position
		FOR UPDATE
	`
	return s.listBoards(ctx, query, ownerID)
}

func (s *PostgresBoardStore) listBoards(ctx context.Context, query string, ownerID uuid.UUID) ([]*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing boards", slog.String("owner_id", ownerID.String()))

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to query boards",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var boards []*domain.Board
	for rows.Next() {
		var board domain.Board
		if err := rows.Scan(
			&board.ID,
			&board.OwnerID,
			&board.Title,
			&board.Position,
			&board.CreatedAt,
			&board.UpdatedAt,
		); err != nil {
			log.Error("failed to scan board row", slog.String("error", err.Error()))
			return nil, err
		}
		boards = append(boards, &board)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if boards == nil {
		boards = []*domain.Board{}
	}

	log.Debug("listed boards",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(boards)))
	return boards, nil
}

// MaxPosition implements store.BoardStore.MaxPosition
// Returns 0 when the owner has no boards.
func (s *PostgresBoardStore) MaxPosition(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COALESCE(MAX(position), 0) FROM boards WHERE owner_id = $1`

	var max int64
	if err := s.db.QueryRowContext(ctx, query, ownerID).Scan(&max); err != nil {
		log.Error("failed to get max board position",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return 0, MapError(err)
	}

	return max, nil
}

// Update implements store.BoardStore.Update
// Only the title is writable this way; positions move through
// UpdatePosition so ordering changes stay inside reorder transactions.
// Returns store.ErrBoardNotFound if the board does not exist.
func (s *PostgresBoardStore) Update(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		log.Warn("board validation failed during update",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	board.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE boards
		SET title = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, board.Title, board.UpdatedAt, board.ID)
	if err != nil {
		log.Error("failed to update board",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("board not found for update", slog.String("board_id", board.ID.String()))
		return store.ErrBoardNotFound
	}

	log.Info("board updated successfully", slog.String("board_id", board.ID.String()))
	return nil
}

// UpdatePosition implements store.BoardStore.UpdatePosition
// Returns store.ErrBoardNotFound if the board does not exist.
func (s *PostgresBoardStore) UpdatePosition(ctx context.Context, id uuid.UUID, position int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE boards
		SET position = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, position, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update board position",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()),
			slog.Int64("position", position))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("board not found for position update", slog.String("board_id", id.String()))
		return store.ErrBoardNotFound
	}

	log.Debug("board position updated",
		slog.String("board_id", id.String()),
		slog.Int64("position", position))
	return nil
}

// Delete implements store.BoardStore.Delete
// Columns and tasks on the board cascade away with the row; sibling
// boards keep their positions.
// Returns store.ErrBoardNotFound if the board does not exist.
func (s *PostgresBoardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM boards WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete board",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("board not found for delete", slog.String("board_id", id.String()))
		return store.ErrBoardNotFound
	}

	log.Info("board deleted successfully", slog.String("board_id", id.String()))
	return nil
}

// WithTx implements store.BoardStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresBoardStore) WithTx(tx *sql.Tx) store.BoardStore {
	return &PostgresBoardStore{
		db:     tx,
		logger: s.logger,
	}
}
