package api

import (
	"time"
)

// Common request/response structures

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// UpdateTaskRequest defines the payload for the task update endpoint.
// All fields are optional; absent fields leave the stored value untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsCompleted *bool   `json:"is_completed"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
