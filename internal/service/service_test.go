package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/logger"
)

// newTestDB returns a sqlmock-backed connection so the transaction
// wrapper runs for real while the stores stay mocked.
func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// txExpecter wraps the begin/commit pairs the transaction-wrapped
// service methods produce.
type txExpecter struct {
	mock sqlmock.Sqlmock
}

func (e txExpecter) expectTx() {
	e.mock.ExpectBegin()
	e.mock.ExpectCommit()
}

func (e txExpecter) expectRollback() {
	e.mock.ExpectBegin()
	e.mock.ExpectRollback()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCtx() context.Context {
	return logger.WithLogger(context.Background(), discardLogger())
}

func mustBoard(t *testing.T, ownerID uuid.UUID, title string, pos int64) *domain.Board {
	t.Helper()
	b, err := domain.NewBoard(ownerID, title, pos)
	require.NoError(t, err)
	return b
}

func mustColumn(t *testing.T, boardID uuid.UUID, title string, pos int64) *domain.Column {
	t.Helper()
	c, err := domain.NewColumn(boardID, title, pos)
	require.NoError(t, err)
	return c
}

func mustTask(t *testing.T, columnID uuid.UUID, title string, pos int64) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(columnID, title, "", pos)
	require.NoError(t, err)
	return task
}
