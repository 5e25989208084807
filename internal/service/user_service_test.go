package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/store"
)

func newUserServiceFixture(t *testing.T) (*UserServiceImpl, *MockUserStore, txExpecter) {
	t.Helper()
	db, dbMock := newTestDB(t)
	users := &MockUserStore{}
	svc := NewUserService(users, db, discardLogger())
	return svc, users, txExpecter{dbMock}
}

func TestNewUserService(t *testing.T) {
	t.Parallel()

	db, _ := newTestDB(t)
	assert.Panics(t, func() { NewUserService(nil, db, discardLogger()) })
	assert.Panics(t, func() { NewUserService(&MockUserStore{}, nil, discardLogger()) })
	assert.NotNil(t, NewUserService(&MockUserStore{}, db, nil))
}

func TestUserServiceList(t *testing.T) {
	t.Parallel()

	svc, users, _ := newUserServiceFixture(t)
	want := []*domain.User{
		{ID: uuid.New(), Email: "alice@example.com", Role: domain.RoleAdmin},
		{ID: uuid.New(), Email: "bob@example.com", Role: domain.RoleMember},
	}
	users.On("List", mock.Anything).Return(want, nil)

	got, err := svc.List(testCtx())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUserServiceListError(t *testing.T) {
	t.Parallel()

	svc, users, _ := newUserServiceFixture(t)
	users.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	got, err := svc.List(testCtx())

	assert.Nil(t, got)
	assert.ErrorContains(t, err, "failed to list users")
}

func TestUserServiceGet(t *testing.T) {
	t.Parallel()

	svc, users, _ := newUserServiceFixture(t)
	user := &domain.User{ID: uuid.New(), Email: "alice@example.com", Role: domain.RoleMember}
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	got, err := svc.Get(testCtx(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserServiceGetNotFound(t *testing.T) {
	t.Parallel()

	svc, users, _ := newUserServiceFixture(t)
	id := uuid.New()
	users.On("GetByID", mock.Anything, id).Return(nil, store.ErrUserNotFound)

	got, err := svc.Get(testCtx(), id)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserServiceDelete(t *testing.T) {
	t.Parallel()

	svc, users, ctl := newUserServiceFixture(t)
	id := uuid.New()
	users.On("WithTx", mock.Anything).Return(users)
	users.On("Delete", mock.Anything, id).Return(nil)

	ctl.expectTx()

	require.NoError(t, svc.Delete(testCtx(), id))
	users.AssertExpectations(t)
}

func TestUserServiceDeleteNotFound(t *testing.T) {
	t.Parallel()

	svc, users, ctl := newUserServiceFixture(t)
	id := uuid.New()
	users.On("WithTx", mock.Anything).Return(users)
	users.On("Delete", mock.Anything, id).Return(store.ErrUserNotFound)

	ctl.expectRollback()

	err := svc.Delete(testCtx(), id)

	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
