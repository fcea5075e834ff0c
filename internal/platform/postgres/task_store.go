package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskora/task-api/internal/domain"
	"github.com/taskora/task-api/internal/platform/logger"
	"github.com/taskora/task-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default
// logger will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It builds a new task from the given title and optional description
// and saves it to the database.
// Returns validation errors from the domain Task if data is invalid.
func (s *PostgresTaskStore) Create(
	ctx context.Context,
	title string,
	description *string,
) (*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description)
	if err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO tasks (id, title, description, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.IsCompleted,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()))
	return task, nil
}

// GetByID implements store.TaskStore.GetByID
// It retrieves a task by its unique ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.String("task_id", id.String()))

	query := `
		SELECT id, title, description, is_completed, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	var description sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}

	log.Debug("task retrieved successfully",
		slog.String("task_id", id.String()))
	return &task, nil
}

// List implements store.TaskStore.List
// It retrieves tasks matching the filter, newest first.
// Returns an empty slice if no tasks match the criteria.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	var query string
	var args []interface{}

	if filter.Completed != nil {
		query = `
			SELECT id, title, description, is_completed, created_at, updated_at
			FROM tasks
			WHERE is_completed = $1
			ORDER BY created_at DESC
		`
		args = []interface{}{*filter.Completed}

		log.Debug("listing tasks by completion state",
			slog.Bool("completed", *filter.Completed))
	} else {
		query = `
			SELECT id, title, description, is_completed, created_at, updated_at
			FROM tasks
			ORDER BY created_at DESC
		`

		log.Debug("listing all tasks")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		var description sql.NullString

		err := rows.Scan(
			&task.ID,
			&task.Title,
			&description,
			&task.IsCompleted,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}

		if description.Valid {
			task.Description = &description.String
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// It merges the patch into an existing task inside a transaction so
// the read and write cannot interleave with another mutation of the
// same task.
// Returns store.ErrTaskNotFound if the task does not exist.
// Returns validation errors if the merged task data is invalid.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		task, err := s.getTaskForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := task.Apply(patch); err != nil {
			log.Warn("task validation failed during update",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
			return err
		}

		if err := s.saveTask(ctx, tx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task updated successfully",
		slog.String("task_id", id.String()))
	return updated, nil
}

// Toggle implements store.TaskStore.Toggle
// It flips the completion state of an existing task inside a
// transaction.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Toggle(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	var toggled *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		task, err := s.getTaskForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		task.ToggleCompletion()

		if err := s.saveTask(ctx, tx, task); err != nil {
			return err
		}

		toggled = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task completion toggled",
		slog.String("task_id", id.String()),
		slog.Bool("is_completed", toggled.IsCompleted))
	return toggled, nil
}

// Delete implements store.TaskStore.Delete
// It removes a task permanently.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	// If no rows were affected, the task didn't exist
	if rowsAffected == 0 {
		log.Debug("task not found for delete",
			slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully",
		slog.String("task_id", id.String()))
	return nil
}

// getTaskForUpdate loads a task inside a transaction with a row lock
// so concurrent mutations of the same task serialize instead of losing
// updates.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) getTaskForUpdate(
	ctx context.Context,
	q store.DBTX,
	id uuid.UUID,
) (*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, is_completed, created_at, updated_at
		FROM tasks
		WHERE id = $1
		FOR UPDATE
	`

	var task domain.Task
	var description sql.NullString

	err := q.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for locked read",
				slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to read task for update",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}

	return &task, nil
}

// saveTask writes the mutable fields of a task back to the database.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) saveTask(ctx context.Context, q store.DBTX, task *domain.Task) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, is_completed = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := q.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.IsCompleted,
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		log.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	// If no rows were affected, the task didn't exist
	if rowsAffected == 0 {
		log.Debug("task not found for save",
			slog.String("task_id", task.ID.String()))
		return store.ErrTaskNotFound
	}

	return nil
}
