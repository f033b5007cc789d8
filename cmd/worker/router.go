package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/strings-worker/internal/api"
	apiMiddleware "github.com/phrazzld/strings-worker/internal/api/middleware"
)

// setupRouter creates and configures the worker's router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	taskHandler := api.NewTaskHandler(app.eventEmitter, app.taskStore, app.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tasks", taskHandler.SubmitTask)
		r.Get("/tasks/{id}", taskHandler.GetTaskStatus)
		r.Get("/metadata", taskHandler.GetMetadata)
	})

	r.Get("/healthz", taskHandler.HealthCheck)

	return r
}
