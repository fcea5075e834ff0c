package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Length bounds enforced on task fields. Limits are counted in
// characters (runes), not bytes.
const (
	TitleMinLength       = 3
	TitleMaxLength       = 100
	DescriptionMaxLength = 500
)

// Common validation errors for Task. Each wraps ErrValidation so
// callers can detect the whole class with errors.Is.
var (
	ErrTaskIDEmpty        = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrTitleTooShort      = fmt.Errorf("%w: title must be at least %d characters", ErrValidation, TitleMinLength)
	ErrTitleTooLong       = fmt.Errorf("%w: title must be at most %d characters", ErrValidation, TitleMaxLength)
	ErrDescriptionTooLong = fmt.Errorf("%w: description must be at most %d characters", ErrValidation, DescriptionMaxLength)
)

// Task represents a single to-do item tracked by the service.
// Identity, completion state, and timestamps are owned by the store;
// callers only ever supply the title and optional description.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task with the given title and optional
// description. It generates a new UUID for the task ID, marks the task
// as not completed, and sets both timestamps to the current UTC
// instant. Returns an error if validation fails.
func NewTask(title string, description *string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
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

	if utf8.RuneCountInString(t.Title) < TitleMinLength {
		return ErrTitleTooShort
	}

	if utf8.RuneCountInString(t.Title) > TitleMaxLength {
		return ErrTitleTooLong
	}

	if t.Description != nil && utf8.RuneCountInString(*t.Description) > DescriptionMaxLength {
		return ErrDescriptionTooLong
	}

	return nil
}

// TaskPatch describes a partial update to a Task. Nil fields are left
// untouched; non-nil fields overwrite the current value. Clearing the
// description is expressed as a pointer to the empty string.
type TaskPatch struct {
	Title       *string
	Description *string
	IsCompleted *bool
}

// Apply merges the patch into the task, overwriting only the supplied
// fields, and refreshes UpdatedAt. The merged result is validated
// before the receiver is mutated, so a failed patch leaves the task
// unchanged.
func (t *Task) Apply(patch TaskPatch) error {
	updated := *t
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = patch.Description
	}
	if patch.IsCompleted != nil {
		updated.IsCompleted = *patch.IsCompleted
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*t = updated
	return nil
}

// ToggleCompletion flips the task's completion state and refreshes
// UpdatedAt.
func (t *Task) ToggleCompletion() {
	t.IsCompleted = !t.IsCompleted
	t.UpdatedAt = time.Now().UTC()
}
