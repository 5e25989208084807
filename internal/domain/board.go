package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrBoardIDEmpty         = errors.New("board ID cannot be empty")
	ErrBoardOwnerEmpty      = errors.New("board owner ID cannot be empty")
	ErrBoardTitleEmpty      = errors.New("board title cannot be empty")
	ErrBoardTitleTooLong    = errors.New("board title cannot exceed 255 characters")
	ErrBoardPositionInvalid = errors.New("board position must be positive")
)

// maxTitleLength caps board, column, and task titles.
const maxTitleLength = 255

// Board is a user's top-level container for columns. All boards of one
// owner form a sibling scope: sorting them by Position ascending yields
// the owner's display order.
type Board struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBoard creates a new Board owned by ownerID at the given position.
// Callers obtain the position from the ordering engine's append
// computation so the new board lands after the owner's existing ones.
// Returns an error if validation fails.
func NewBoard(ownerID uuid.UUID, title string, position int64) (*Board, error) {
	board := &Board{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Position:  position,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	return board, nil
}

// Validate checks if the Board has valid data.
// Returns an error if any field fails validation.
func (b *Board) Validate() error {
	if b.ID == uuid.Nil {
		return ErrBoardIDEmpty
	}

	if b.OwnerID == uuid.Nil {
		return ErrBoardOwnerEmpty
	}

	if strings.TrimSpace(b.Title) == "" {
		return ErrBoardTitleEmpty
	}

	if len(b.Title) > maxTitleLength {
		return ErrBoardTitleTooLong
	}

	if b.Position <= 0 {
		return ErrBoardPositionInvalid
	}

	return nil
}

// Rename updates the board's title and bumps the UpdatedAt timestamp.
// Returns an error if the new title is invalid.
func (b *Board) Rename(title string) error {
	origTitle := b.Title
	b.Title = title

	if err := b.Validate(); err != nil {
		b.Title = origTitle
		return err
	}

	b.UpdatedAt = time.Now().UTC()
	return nil
}
