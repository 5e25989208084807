package api

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/service"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse answers a successful register or login with the user's
// ID and a fresh token pair. ExpiresAt is the access token's expiry in
// RFC 3339 form.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    string    `json:"expires_at,omitempty"`
}

// RefreshTokenRequest is the body of POST /auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse answers a successful refresh with the new
// token pair.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateBoardRequest is the body of POST /boards.
type CreateBoardRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

// UpdateBoardRequest is the body of PUT /boards/{id}.
type UpdateBoardRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

// MoveBoardRequest names the intended neighbors for a board reorder.
// Omitting both appends the board to the end of the owner's list.
type MoveBoardRequest struct {
	BeforeID *uuid.UUID `json:"before_id"`
	AfterID  *uuid.UUID `json:"after_id"`
}

// CreateColumnRequest is the body of POST /columns.
type CreateColumnRequest struct {
	BoardID uuid.UUID `json:"board_id" validate:"required"`
	Title   string    `json:"title"    validate:"required,max=255"`
}

// UpdateColumnRequest is the body of PUT /columns/{id}.
type UpdateColumnRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

// MoveColumnRequest names the intended neighbors for a column reorder.
// BoardID, when set, carries the column to another board.
type MoveColumnRequest struct {
	BoardID  *uuid.UUID `json:"board_id"`
	BeforeID *uuid.UUID `json:"before_id"`
	AfterID  *uuid.UUID `json:"after_id"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	ColumnID    uuid.UUID `json:"column_id"   validate:"required"`
	Title       string    `json:"title"       validate:"required,max=255"`
	Description string    `json:"description" validate:"max=4000"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}.
type UpdateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
}

// MoveTaskRequest names the intended neighbors for a task reorder.
// ColumnID, when set, drags the task into another column.
type MoveTaskRequest struct {
	ColumnID *uuid.UUID `json:"column_id"`
	BeforeID *uuid.UUID `json:"before_id"`
	AfterID  *uuid.UUID `json:"after_id"`
}

// BoardResponse is the wire representation of a board. Positions are
// decimal strings so they survive clients that round large JSON
// numbers.
type BoardResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ColumnResponse is the wire representation of a column.
type ColumnResponse struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	Title     string    `json:"title"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	ColumnID    uuid.UUID `json:"column_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    string    `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ColumnContentsResponse is a column together with its ordered tasks.
type ColumnContentsResponse struct {
	ColumnResponse
	Tasks []TaskResponse `json:"tasks"`
}

// BoardContentsResponse is the full board view: the board plus its
// ordered columns, each with its ordered tasks.
type BoardContentsResponse struct {
	BoardResponse
	Columns []ColumnContentsResponse `json:"columns"`
}

// UserResponse is the wire representation of a user account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func formatPosition(position int64) string {
	return strconv.FormatInt(position, 10)
}

func boardToResponse(b *domain.Board) BoardResponse {
	return BoardResponse{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Title:     b.Title,
		Position:  formatPosition(b.Position),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func boardsToResponse(boards []*domain.Board) []BoardResponse {
	out := make([]BoardResponse, len(boards))
	for i, b := range boards {
		out[i] = boardToResponse(b)
	}
	return out
}

func columnToResponse(c *domain.Column) ColumnResponse {
	return ColumnResponse{
		ID:        c.ID,
		BoardID:   c.BoardID,
		Title:     c.Title,
		Position:  formatPosition(c.Position),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		ColumnID:    t.ColumnID,
		Title:       t.Title,
		Description: t.Description,
		Position:    formatPosition(t.Position),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = taskToResponse(t)
	}
	return out
}

func boardContentsToResponse(contents *service.BoardContents) BoardContentsResponse {
	columns := make([]ColumnContentsResponse, len(contents.Columns))
	for i, cc := range contents.Columns {
		columns[i] = ColumnContentsResponse{
			ColumnResponse: columnToResponse(cc.Column),
			Tasks:          tasksToResponse(cc.Tasks),
		}
	}
	return BoardContentsResponse{
		BoardResponse: boardToResponse(contents.Board),
		Columns:       columns,
	}
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = userToResponse(u)
	}
	return out
}
