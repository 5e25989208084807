package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/postgres"
	"github.com/sarmadH97/keeyu-task-board/internal/service/auth"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
	"github.com/sarmadH97/keeyu-task-board/internal/testdb"
)

// The tests in this file run against a real Postgres database and
// exercise what sqlmock cannot: row locks taken by the reorder engine,
// the deferred unique constraint on positions, and the retry behavior
// when concurrent moves collide. They skip unless DATABASE_URL is set.
//
// Each test creates its own user and works only inside that user's
// boards, so position math is deterministic even on a shared database.
// Deleting the user at cleanup cascades to boards, columns, and tasks.

type integrationEnv struct {
	db        *sql.DB
	actor     Actor
	boards    BoardService
	columns   ColumnService
	tasks     TaskService
	taskStore store.TaskStore
}

func setupIntegrationEnv(t *testing.T) *integrationEnv {
	t.Helper()

	if !testdb.IsIntegrationTestEnvironment() {
		t.Skip("skipping integration test: DATABASE_URL is not set")
	}

	db := testdb.GetTestDB(t)
	log := discardLogger()

	userStore := postgres.NewPostgresUserStore(db, log)
	boardStore := postgres.NewPostgresBoardStore(db, log)
	columnStore := postgres.NewPostgresColumnStore(db, log)
	taskStore := postgres.NewPostgresTaskStore(db, log)

	// bcrypt.MinCost keeps the fixture cheap; these credentials are
	// never used to log in.
	hash, err := auth.HashPassword("integration-password", bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().UTC()
	owner := &domain.User{
		ID:             uuid.New(),
		Email:          fmt.Sprintf("it-%s@example.com", uuid.New().String()[:8]),
		Role:           domain.RoleMember,
		HashedPassword: hash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, userStore.Create(context.Background(), owner))
	t.Cleanup(func() {
		if err := userStore.Delete(context.Background(), owner.ID); err != nil {
			t.Logf("failed to delete test user %s: %v", owner.ID, err)
		}
	})

	return &integrationEnv{
		db:        db,
		actor:     Actor{ID: owner.ID, Role: owner.Role},
		boards:    NewBoardService(boardStore, columnStore, taskStore, db, log),
		columns:   NewColumnService(columnStore, boardStore, db, log),
		tasks:     NewTaskService(taskStore, columnStore, boardStore, db, log),
		taskStore: taskStore,
	}
}

func TestIntegrationTaskOrderingLifecycle(t *testing.T) {
	env := setupIntegrationEnv(t)
	ctx := context.Background()

	board, err := env.boards.Create(ctx, env.actor, "Release planning")
	require.NoError(t, err)
	assert.Equal(t, int64(1024), board.Position)

	todo, err := env.columns.Create(ctx, env.actor, board.ID, "Todo")
	require.NoError(t, err)
	assert.Equal(t, int64(1024), todo.Position)

	first, err := env.tasks.Create(ctx, env.actor, todo.ID, "Write changelog", "")
	require.NoError(t, err)
	second, err := env.tasks.Create(ctx, env.actor, todo.ID, "Tag the release", "")
	require.NoError(t, err)
	third, err := env.tasks.Create(ctx, env.actor, todo.ID, "Announce", "")
	require.NoError(t, err)

	assert.Equal(t, int64(1024), first.Position)
	assert.Equal(t, int64(2048), second.Position)
	assert.Equal(t, int64(3072), third.Position)

	// Drag the last task to the top. With only an after neighbor the
	// engine halves the head position.
	moved, err := env.tasks.Move(ctx, env.actor, third.ID, nil, nil, &first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(512), moved.Position)

	// Drop the middle task between the new head and the old head.
	moved, err = env.tasks.Move(ctx, env.actor, second.ID, nil, &third.ID, &first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(768), moved.Position)

	ordered, err := env.taskStore.ListByColumn(ctx, todo.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)

	gotIDs := []uuid.UUID{ordered[0].ID, ordered[1].ID, ordered[2].ID}
	assert.Equal(t, []uuid.UUID{third.ID, second.ID, first.ID}, gotIDs)
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Position, ordered[i-1].Position)
	}
}

func TestIntegrationMoveRebalancesCrowdedColumn(t *testing.T) {
	env := setupIntegrationEnv(t)
	ctx := context.Background()

	board, err := env.boards.Create(ctx, env.actor, "Support rotation")
	require.NoError(t, err)
	backlog, err := env.columns.Create(ctx, env.actor, board.ID, "Backlog")
	require.NoError(t, err)
	doing, err := env.columns.Create(ctx, env.actor, board.ID, "Doing")
	require.NoError(t, err)

	first, err := env.tasks.Create(ctx, env.actor, backlog.ID, "Triage inbox", "")
	require.NoError(t, err)
	second, err := env.tasks.Create(ctx, env.actor, backlog.ID, "Update runbook", "")
	require.NoError(t, err)
	mover, err := env.tasks.Create(ctx, env.actor, doing.ID, "Escalate outage", "")
	require.NoError(t, err)

	// Squeeze the backlog neighbors together so no integer fits between
	// them and the move is forced to rebalance the column first.
	require.NoError(t, env.taskStore.UpdatePosition(ctx, first.ID, 100))
	require.NoError(t, env.taskStore.UpdatePosition(ctx, second.ID, 101))

	moved, err := env.tasks.Move(ctx, env.actor, mover.ID, &backlog.ID, &first.ID, &second.ID)
	require.NoError(t, err)
	assert.Equal(t, backlog.ID, moved.ColumnID)
	assert.Equal(t, int64(1536), moved.Position)

	ordered, err := env.taskStore.ListByColumn(ctx, backlog.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, first.ID, ordered[0].ID)
	assert.Equal(t, int64(1024), ordered[0].Position)
	assert.Equal(t, mover.ID, ordered[1].ID)
	assert.Equal(t, int64(1536), ordered[1].Position)
	assert.Equal(t, second.ID, ordered[2].ID)
	assert.Equal(t, int64(2048), ordered[2].Position)
}

func TestIntegrationMoveLeavesSourceColumnUntouched(t *testing.T) {
	env := setupIntegrationEnv(t)
	ctx := context.Background()

	board, err := env.boards.Create(ctx, env.actor, "Sprint 12")
	require.NoError(t, err)
	todo, err := env.columns.Create(ctx, env.actor, board.ID, "Todo")
	require.NoError(t, err)
	done, err := env.columns.Create(ctx, env.actor, board.ID, "Done")
	require.NoError(t, err)

	first, err := env.tasks.Create(ctx, env.actor, todo.ID, "Design review", "")
	require.NoError(t, err)
	second, err := env.tasks.Create(ctx, env.actor, todo.ID, "Implement", "")
	require.NoError(t, err)
	third, err := env.tasks.Create(ctx, env.actor, todo.ID, "Ship", "")
	require.NoError(t, err)

	moved, err := env.tasks.Move(ctx, env.actor, second.ID, &done.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, done.ID, moved.ColumnID)
	assert.Equal(t, int64(1024), moved.Position)

	// The remaining tasks keep the positions they already had.
	remaining, err := env.taskStore.ListByColumn(ctx, todo.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, first.ID, remaining[0].ID)
	assert.Equal(t, int64(1024), remaining[0].Position)
	assert.Equal(t, third.ID, remaining[1].ID)
	assert.Equal(t, int64(3072), remaining[1].Position)
}

func TestIntegrationConcurrentMovesContendForOneSlot(t *testing.T) {
	env := setupIntegrationEnv(t)
	ctx := context.Background()

	board, err := env.boards.Create(ctx, env.actor, "Incident board")
	require.NoError(t, err)
	col, err := env.columns.Create(ctx, env.actor, board.ID, "Active")
	require.NoError(t, err)

	var tasks []*domain.Task
	for _, title := range []string{"Page on-call", "Open bridge", "Draft update", "File retro"} {
		task, err := env.tasks.Create(ctx, env.actor, col.ID, title, "")
		require.NoError(t, err)
		tasks = append(tasks, task)
	}
	first, second := tasks[0], tasks[1]

	// Both movers target the slot between the first two tasks. The row
	// locks serialize them; the winner takes the midpoint and the loser
	// keeps recomputing the same occupied value until its retries run
	// out, surfacing a conflict for the client to refetch and retry.
	movers := []uuid.UUID{tasks[2].ID, tasks[3].ID}
	errs := make([]error, len(movers))
	var wg sync.WaitGroup
	for i, id := range movers {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			_, errs[i] = env.tasks.Move(ctx, env.actor, id, nil, &first.ID, &second.ID)
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, moveErr := range errs {
		if moveErr == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, moveErr, store.ErrTransactionConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent mover should win the slot")

	ordered, err := env.taskStore.ListByColumn(ctx, col.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 4)

	seen := make(map[int64]bool)
	var prev int64
	for _, task := range ordered {
		assert.False(t, seen[task.Position], "positions must stay unique after the race")
		seen[task.Position] = true
		assert.Greater(t, task.Position, prev)
		prev = task.Position
	}
}
