package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskora/task-api/internal/domain"
)

// TaskFilter narrows List results. A nil Completed returns every task.
type TaskFilter struct {
	Completed *bool
}

// TaskStore defines the interface for task data persistence.
// Version: 1.0
type TaskStore interface {
	// Create validates the given title and optional description, builds
	// a new task with a generated ID and fresh timestamps, and saves it.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, title string, description *string) (*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List retrieves tasks matching the filter, newest first.
	// Returns an empty slice if no tasks match the criteria.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update merges the patch into an existing task and saves the
	// result. Fields left nil in the patch are preserved; UpdatedAt is
	// always refreshed. The read and write happen atomically.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors if the merged task data is invalid.
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Toggle flips the completion state of an existing task. The read
	// and write happen atomically.
	// Returns ErrTaskNotFound if the task does not exist.
	Toggle(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Delete removes a task permanently.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
