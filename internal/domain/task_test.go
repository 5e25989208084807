package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	columnID := uuid.New()

	task, err := NewTask(columnID, "Fix login bug", "Steps to reproduce in the ticket", 1024)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.ColumnID != columnID {
		t.Errorf("Expected column %s, got %s", columnID, task.ColumnID)
	}

	if task.Position != 1024 {
		t.Errorf("Expected position 1024, got %d", task.Position)
	}
}

func TestNewTaskValidation(t *testing.T) {
	columnID := uuid.New()

	testCases := []struct {
		name        string
		columnID    uuid.UUID
		title       string
		description string
		position    int64
		expected    error
	}{
		{
			name:     "Missing column",
			columnID: uuid.Nil,
			title:    "Task",
			position: 1024,
			expected: ErrTaskColumnEmpty,
		},
		{
			name:     "Empty title",
			columnID: columnID,
			title:    "",
			position: 1024,
			expected: ErrTaskTitleEmpty,
		},
		{
			name:     "Title too long",
			columnID: columnID,
			title:    strings.Repeat("x", 256),
			position: 1024,
			expected: ErrTaskTitleTooLong,
		},
		{
			name:        "Description too long",
			columnID:    columnID,
			title:       "Task",
			description: strings.Repeat("x", 4001),
			position:    1024,
			expected:    ErrTaskDescriptionTooLong,
		},
		{
			name:     "Zero position",
			columnID: columnID,
			title:    "Task",
			position: 0,
			expected: ErrTaskPositionInvalid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask(tc.columnID, tc.title, tc.description, tc.position)
			if err != tc.expected {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestTaskUpdateDetails(t *testing.T) {
	task, err := NewTask(uuid.New(), "Original", "Original description", 1024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := task.UpdateDetails("Updated", "Updated description"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Title != "Updated" || task.Description != "Updated description" {
		t.Errorf("Expected updated fields, got %q / %q", task.Title, task.Description)
	}

	if err := task.UpdateDetails("", "whatever"); err != ErrTaskTitleEmpty {
		t.Errorf("Expected ErrTaskTitleEmpty, got %v", err)
	}
	if task.Title != "Updated" || task.Description != "Updated description" {
		t.Errorf("Expected fields restored after failed update, got %q / %q", task.Title, task.Description)
	}
}

func TestNewColumn(t *testing.T) {
	boardID := uuid.New()

	column, err := NewColumn(boardID, "In Progress", 2048)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if column.BoardID != boardID {
		t.Errorf("Expected board %s, got %s", boardID, column.BoardID)
	}

	if column.Position != 2048 {
		t.Errorf("Expected position 2048, got %d", column.Position)
	}

	if _, err := NewColumn(uuid.Nil, "In Progress", 2048); err != ErrColumnBoardEmpty {
		t.Errorf("Expected ErrColumnBoardEmpty, got %v", err)
	}

	if _, err := NewColumn(boardID, "In Progress", -1); err != ErrColumnPositionInvalid {
		t.Errorf("Expected ErrColumnPositionInvalid, got %v", err)
	}
}

func TestColumnRename(t *testing.T) {
	column, err := NewColumn(uuid.New(), "Todo", 1024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := column.Rename("Done"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if column.Title != "Done" {
		t.Errorf("Expected title %q, got %q", "Done", column.Title)
	}

	if err := column.Rename(strings.Repeat("x", 256)); err != ErrColumnTitleTooLong {
		t.Errorf("Expected ErrColumnTitleTooLong, got %v", err)
	}
	if column.Title != "Done" {
		t.Errorf("Expected title to be restored after failed rename, got %q", column.Title)
	}
}
