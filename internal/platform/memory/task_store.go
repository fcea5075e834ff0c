package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/taskora/task-api/internal/domain"
	"github.com/taskora/task-api/internal/store"
)

// MemoryTaskStore implements the store.TaskStore interface with an
// in-process map guarded by a read-write mutex. Tasks are stored by
// value, so every read-modify-write cycle operates on a private copy
// under the lock, giving the same atomicity as the row-level locking
// used by the Postgres implementation.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]domain.Task
	logger *slog.Logger
}

// NewMemoryTaskStore creates a new in-memory task store.
// If logger is nil, slog.Default() will be used.
func NewMemoryTaskStore(logger *slog.Logger) *MemoryTaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryTaskStore{
		tasks:  make(map[uuid.UUID]domain.Task),
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// Ensure MemoryTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MemoryTaskStore)(nil)

// cloneTask returns a copy whose Description pointer is detached from
// the stored value, so callers cannot mutate store state through it.
func cloneTask(t domain.Task) domain.Task {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	return t
}

// Create implements store.TaskStore.Create
func (r *MemoryTaskStore) Create(
	ctx context.Context,
	title string,
	description *string,
) (*domain.Task, error) {
	_ = ctx

	task, err := domain.NewTask(title, description)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.tasks[task.ID] = cloneTask(*task)
	r.mu.Unlock()

	r.logger.Debug("task created", slog.String("task_id", task.ID.String()))
	return task, nil
}

// GetByID implements store.TaskStore.GetByID
func (r *MemoryTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	_ = ctx

	r.mu.RLock()
	task, ok := r.tasks[id]
	r.mu.RUnlock()

	if !ok {
		return nil, store.ErrTaskNotFound
	}

	task = cloneTask(task)
	return &task, nil
}

// List implements store.TaskStore.List
func (r *MemoryTaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	_ = ctx

	r.mu.RLock()
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.Completed != nil && t.IsCompleted != *filter.Completed {
			continue
		}
		task := cloneTask(t)
		out = append(out, &task)
	}
	r.mu.RUnlock()

	// Newest first, matching the Postgres ordering.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// Update implements store.TaskStore.Update
func (r *MemoryTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	task = cloneTask(task)
	if err := task.Apply(patch); err != nil {
		return nil, err
	}
	r.tasks[id] = cloneTask(task)

	r.logger.Debug("task updated", slog.String("task_id", id.String()))
	return &task, nil
}

// Toggle implements store.TaskStore.Toggle
func (r *MemoryTaskStore) Toggle(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	task = cloneTask(task)
	task.ToggleCompletion()
	r.tasks[id] = cloneTask(task)

	r.logger.Debug("task completion toggled",
		slog.String("task_id", id.String()),
		slog.Bool("is_completed", task.IsCompleted))
	return &task, nil
}

// Delete implements store.TaskStore.Delete
func (r *MemoryTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(r.tasks, id)

	r.logger.Debug("task deleted", slog.String("task_id", id.String()))
	return nil
}
