package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrColumnIDEmpty         = errors.New("column ID cannot be empty")
	ErrColumnBoardEmpty      = errors.New("column board ID cannot be empty")
	ErrColumnTitleEmpty      = errors.New("column title cannot be empty")
	ErrColumnTitleTooLong    = errors.New("column title cannot exceed 255 characters")
	ErrColumnPositionInvalid = errors.New("column position must be positive")
)

// Column is a vertical lane on a board holding tasks. The columns of
// one board form a sibling scope ordered by Position ascending; moving
// a column to another board re-parents it and assigns a position in the
// destination scope.
type Column struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	Title     string    `json:"title"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewColumn creates a new Column on the given board at the given
// position. Returns an error if validation fails.
func NewColumn(boardID uuid.UUID, title string, position int64) (*Column, error) {
	column := &Column{
		ID:        uuid.New(),
		BoardID:   boardID,
		Title:     title,
		Position:  position,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := column.Validate(); err != nil {
		return nil, err
	}

	return column, nil
}

// Validate checks if the Column has valid data.
// Returns an error if any field fails validation.
func (c *Column) Validate() error {
	if c.ID == uuid.Nil {
		return ErrColumnIDEmpty
	}

	if c.BoardID == uuid.Nil {
		return ErrColumnBoardEmpty
	}

	if strings.TrimSpace(c.Title) == "" {
		return ErrColumnTitleEmpty
	}

	if len(c.Title) > maxTitleLength {
		return ErrColumnTitleTooLong
	}

	if c.Position <= 0 {
		return ErrColumnPositionInvalid
	}

	return nil
}

// Rename updates the column's title and bumps the UpdatedAt timestamp.
// Returns an error if the new title is invalid.
func (c *Column) Rename(title string) error {
	origTitle := c.Title
	c.Title = title

	if err := c.Validate(); err != nil {
		c.Title = origTitle
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}
