package service

import (
	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
)

// Actor identifies the authenticated user an operation runs on behalf
// of. Handlers build it from the token claims in the request context.
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// IsAdmin reports whether the actor may touch resources they do not
// own.
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}
