package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

// UserService provides the account operations behind the admin surface.
// Registration and login live in the API layer next to token issuing;
// route-level role checks keep these admin-only.
type UserService interface {
	// List returns all registered users ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)

	// Get retrieves a user by their ID.
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// Delete removes a user together with their boards, columns, and
	// tasks.
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, db *sql.DB, logger *slog.Logger) *UserServiceImpl {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// List returns all registered users.
func (s *UserServiceImpl) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.logger.Debug("listed users", "count", len(users))
	return users, nil
}

// Get retrieves a user by their ID.
func (s *UserServiceImpl) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to load user",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	return user, nil
}

// Delete deletes a user by their ID.
// Uses a transaction so the cascade over the user's boards commits
// atomically with the account row.
func (s *UserServiceImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		if err := txStore.Delete(ctx, userID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				s.logger.Debug("delete targeted a missing user",
					"user_id", userID)
			} else {
				s.logger.Error("user delete failed",
					"error", err,
					"user_id", userID)
			}
			return err
		}

		s.logger.Info("user deleted", "user_id", userID)
		return nil
	})
}
