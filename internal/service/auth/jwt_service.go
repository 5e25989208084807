package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
)

// JWTService mints and validates the two token kinds the API uses: a
// short-lived access token presented on every request and a longer-lived
// refresh token exchanged for a fresh pair.
type JWTService interface {
	// GenerateToken signs an access token carrying the user's ID and role.
	GenerateToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateToken parses and verifies an access token and returns its
	// claims. Expired or tampered tokens fail, as does a refresh token
	// presented here (ErrWrongTokenType).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken signs a refresh token for the same identity.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateRefreshToken parses and verifies a refresh token and returns
	// its claims. An access token presented here fails with
	// ErrWrongTokenType.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded payload of a token.
type Claims struct {
	UserID uuid.UUID `json:"uid,omitempty"`

	// Role is the authorization role the user held when the token was
	// issued. Role changes take effect once existing tokens expire.
	Role domain.Role `json:"role,omitempty"`

	// TokenType distinguishes "access" from "refresh" so one kind cannot
	// be replayed as the other.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
