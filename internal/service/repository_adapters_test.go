package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/service/reorder"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

func TestBoardRepositoryAdapterMapsSiblings(t *testing.T) {
	t.Parallel()

	db, _ := newTestDB(t)
	boards := &MockBoardStore{}
	adapter := NewBoardRepositoryAdapter(boards, db)

	owner := uuid.New()
	first := mustBoard(t, owner, "Roadmap", 1024)
	second := mustBoard(t, owner, "Backlog", 2048)
	boards.On("ListByOwnerForUpdate", mock.Anything, owner).
		Return([]*domain.Board{first, second}, nil)

	siblings, err := adapter.ListForUpdate(testCtx(), owner)

	require.NoError(t, err)
	require.Len(t, siblings, 2)
	assert.Equal(t, reorder.Sibling{ID: first.ID, ScopeID: owner, Position: 1024}, siblings[0])
	assert.Equal(t, reorder.Sibling{ID: second.ID, ScopeID: owner, Position: 2048}, siblings[1])
	assert.Same(t, db, adapter.DB())
}

func TestBoardRepositoryAdapterRejectsScopeChange(t *testing.T) {
	t.Parallel()

	db, _ := newTestDB(t)
	adapter := NewBoardRepositoryAdapter(&MockBoardStore{}, db)

	err := adapter.UpdateScopeAndPosition(testCtx(), uuid.New(), uuid.New(), 1024)

	assert.ErrorIs(t, err, store.ErrNotImplemented)
}

func TestColumnRepositoryAdapterGet(t *testing.T) {
	t.Parallel()

	db, _ := newTestDB(t)
	cols := &MockColumnStore{}
	adapter := NewColumnRepositoryAdapter(cols, db)

	boardID := uuid.New()
	column := mustColumn(t, boardID, "Todo", 1024)
	cols.On("GetByID", mock.Anything, column.ID).Return(column, nil)

	sibling, err := adapter.Get(testCtx(), column.ID)

	require.NoError(t, err)
	assert.Equal(t, reorder.Sibling{ID: column.ID, ScopeID: boardID, Position: 1024}, sibling)
}

func TestTaskRepositoryAdapterScopeChange(t *testing.T) {
	t.Parallel()

	db, _ := newTestDB(t)
	tasks := &MockTaskStore{}
	adapter := NewTaskRepositoryAdapter(tasks, db)

	taskID := uuid.New()
	destColumn := uuid.New()
	tasks.On("UpdateColumnAndPosition", mock.Anything, taskID, destColumn, int64(512)).Return(nil)

	err := adapter.UpdateScopeAndPosition(testCtx(), taskID, destColumn, 512)

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}
