package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskora/task-api/internal/api/shared"
	"github.com/taskora/task-api/internal/domain"
	"github.com/taskora/task-api/internal/platform/logger"
	"github.com/taskora/task-api/internal/redact"
	"github.com/taskora/task-api/internal/store"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if taskStore == nil {
		panic("taskStore cannot be nil for TaskHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/v1/tasks requests.
// The optional "completed" query parameter filters tasks by completion state.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var filter store.TaskFilter
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Warn("invalid completed filter", slog.String("value", raw))
			shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity,
				"Invalid completed filter", err,
				shared.WithValidationDetails([]shared.FieldError{
					{Field: "completed", Message: "must be true or false"},
				}))
			return
		}
		filter.Completed = &completed
	}

	tasks, err := h.taskStore.List(r.Context(), filter)
	if err != nil {
		h.respondTaskError(w, r, uuid.Nil, err, "Failed to list tasks")
		return
	}

	// Transform domain objects to responses; an empty result stays an
	// empty JSON array rather than null.
	response := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, taskToResponse(task))
	}

	log.Debug("successfully listed tasks", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateTask handles POST /api/v1/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// Parse request body
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(
			w, r, http.StatusUnprocessableEntity, "Invalid request format", err)
		return
	}

	// Validate request
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity,
			SanitizeValidationError(err), err,
			shared.WithValidationDetails(ValidationDetails(err)))
		return
	}

	task, err := h.taskStore.Create(r.Context(), req.Title, req.Description)
	if err != nil {
		h.respondTaskError(w, r, uuid.Nil, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /api/v1/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := h.parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID)
	if err != nil {
		h.respondTaskError(w, r, taskID, err, "Failed to get task")
		return
	}

	log.Debug("task retrieved", slog.String("task_id", taskID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /api/v1/tasks/{id} requests.
// Only fields present in the body are changed; absent fields keep their
// stored values.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := h.parseTaskID(w, r)
	if !ok {
		return
	}

	// Parse request body
	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", taskID.String()))
		shared.RespondWithErrorAndLog(
			w, r, http.StatusUnprocessableEntity, "Invalid request format", err)
		return
	}

	// Validate request
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", taskID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity,
			SanitizeValidationError(err), err,
			shared.WithValidationDetails(ValidationDetails(err)))
		return
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	}

	task, err := h.taskStore.Update(r.Context(), taskID, patch)
	if err != nil {
		h.respondTaskError(w, r, taskID, err, "Failed to update task")
		return
	}

	log.Debug("task updated", slog.String("task_id", taskID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ToggleTask handles PATCH /api/v1/tasks/{id} requests.
// It flips the completion state of the task.
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := h.parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskStore.Toggle(r.Context(), taskID)
	if err != nil {
		h.respondTaskError(w, r, taskID, err, "Failed to toggle task")
		return
	}

	log.Debug("task completion toggled",
		slog.String("task_id", taskID.String()),
		slog.Bool("is_completed", task.IsCompleted))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/v1/tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := h.parseTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID); err != nil {
		h.respondTaskError(w, r, taskID, err, "Failed to delete task")
		return
	}

	log.Debug("task deleted", slog.String("task_id", taskID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// parseTaskID extracts and validates the task ID from the URL path.
// On failure it writes a 422 response and returns false.
func (h *TaskHandler) parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// Extract task ID from URL path using chi router
	pathTaskID := chi.URLParam(r, "id")
	taskID, err := uuid.Parse(pathTaskID)
	if err != nil {
		log.Warn("invalid task ID format", slog.String("task_id", pathTaskID))
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity,
			"Invalid task ID format",
			fmt.Errorf("%w: %q", domain.ErrInvalidID, pathTaskID),
			shared.WithValidationDetails([]shared.FieldError{
				{Field: "id", Message: "must be a valid UUID"},
			}))
		return uuid.Nil, false
	}

	return taskID, true
}

// respondTaskError maps store and domain errors to HTTP responses,
// naming the requested task in not-found messages. The full error is
// logged; only the sanitized message reaches the client.
func (h *TaskHandler) respondTaskError(
	w http.ResponseWriter,
	r *http.Request,
	taskID uuid.UUID,
	err error,
	serverErrMessage string,
) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	switch {
	case statusCode == http.StatusNotFound && taskID != uuid.Nil:
		safeMessage = fmt.Sprintf("Task with ID %s not found", taskID)
	case statusCode == http.StatusInternalServerError:
		safeMessage = serverErrMessage
	}

	if details := ValidationDetails(err); details != nil {
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err,
			shared.WithValidationDetails(details))
		return
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
