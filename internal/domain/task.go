package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskColumnEmpty is returned when a task's column ID is empty or nil.
	ErrTaskColumnEmpty = errors.New("task column ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskTitleTooLong is returned when a task's title exceeds the cap.
	ErrTaskTitleTooLong = errors.New("task title cannot exceed 255 characters")

	// ErrTaskDescriptionTooLong is returned when a task's description exceeds the cap.
	ErrTaskDescriptionTooLong = errors.New("task description cannot exceed 4000 characters")

	// ErrTaskPositionInvalid is returned when a task's position is not positive.
	ErrTaskPositionInvalid = errors.New("task position must be positive")
)

// maxDescriptionLength caps task descriptions.
const maxDescriptionLength = 4000

// Task is a single card on the board. The tasks of one column form a
// sibling scope ordered by Position ascending; drag and drop between
// columns re-parents the task and assigns a position in the destination
// column's scope.
type Task struct {
	ID          uuid.UUID `json:"id"`
	ColumnID    uuid.UUID `json:"column_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task in the given column at the given position.
// Returns an error if validation fails.
func NewTask(columnID uuid.UUID, title, description string, position int64) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Position:    position,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.ColumnID == uuid.Nil {
		return ErrTaskColumnEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	if len(t.Title) > maxTitleLength {
		return ErrTaskTitleTooLong
	}

	if len(t.Description) > maxDescriptionLength {
		return ErrTaskDescriptionTooLong
	}

	if t.Position <= 0 {
		return ErrTaskPositionInvalid
	}

	return nil
}

// UpdateDetails updates the task's title and description and bumps the
// UpdatedAt timestamp. Returns an error if the new values are invalid,
// leaving the task unchanged.
func (t *Task) UpdateDetails(title, description string) error {
	origTitle := t.Title
	origDescription := t.Description
	t.Title = title
	t.Description = description

	if err := t.Validate(); err != nil {
		t.Title = origTitle
		t.Description = origDescription
		return err
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}
