package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/sarmadH97/keeyu-task-board/internal/config"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/postgres"
	"github.com/sarmadH97/keeyu-task-board/internal/service"
	"github.com/sarmadH97/keeyu-task-board/internal/service/auth"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// application bundles everything the server needs at runtime, wired once
// at startup and torn down in cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore   store.UserStore
	boardStore  store.BoardStore
	columnStore store.ColumnStore
	taskStore   store.TaskStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	boardService     service.BoardService
	columnService    service.ColumnService
	taskService      service.TaskService
	userService      service.UserService
}

// newApplication wires stores and services over the already-open
// database connection. On success the application owns db and closes it
// in cleanup; on error the caller keeps ownership.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.boardStore = postgres.NewPostgresBoardStore(db, logger)
	app.columnStore = postgres.NewPostgresColumnStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Each domain service wires its own reordering engine over the store
	// it moves entities in.
	app.boardService = service.NewBoardService(
		app.boardStore,
		app.columnStore,
		app.taskStore,
		db,
		logger,
	)
	app.columnService = service.NewColumnService(app.columnStore, app.boardStore, db, logger)
	app.taskService = service.NewTaskService(
		app.taskStore,
		app.columnStore,
		app.boardStore,
		db,
		logger,
	)
	app.userService = service.NewUserService(app.userStore, db, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run builds the router and serves until the context is canceled or a
// shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup releases resources owned by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown complete")
}
