package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskora/task-api/internal/api"
	apiMiddleware "github.com/taskora/task-api/internal/api/middleware"
	"github.com/taskora/task-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(
		apiMiddleware.NewTraceMiddleware(app.logger),
	) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/{id}", taskHandler.GetTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Patch("/{id}", taskHandler.ToggleTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})
	})

	// Welcome banner
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"Hello": "World"})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return r
}
