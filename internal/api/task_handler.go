package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/strings-worker/internal/api/shared"
	"github.com/phrazzld/strings-worker/internal/events"
	"github.com/phrazzld/strings-worker/internal/task"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	emitter   events.RequestEmitter
	store     task.TaskStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(
	emitter events.RequestEmitter,
	store task.TaskStore,
	logger *slog.Logger,
) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		emitter:   emitter,
		store:     store,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// SubmitTask handles POST /api/v1/tasks requests. It turns the request into
// a task request event and emits it; the task runtime picks the event up and
// schedules the extraction. The response carries the event ID, which is also
// the ID the task can be polled under.
func (h *TaskHandler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	var req SubmitTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	payload := task.StringsPayload{
		PipeResult: req.PipeResult,
		InputFiles: req.InputFiles,
		OutputPath: req.OutputPath,
		WorkflowID: req.WorkflowID,
		TaskConfig: req.TaskConfig,
	}

	event, err := events.NewTaskRequestEvent(task.TaskName, payload)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to create task", err)
		return
	}

	if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to submit task", err)
		return
	}

	h.logger.Info("task submitted",
		slog.String("task_id", event.ID.String()),
		slog.String("workflow_id", req.WorkflowID))

	shared.RespondWithJSON(w, r, http.StatusAccepted, SubmitTaskResponse{
		TaskID: event.ID,
	})
}

// GetTaskStatus handles GET /api/v1/tasks/{id} requests.
func (h *TaskHandler) GetTaskStatus(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	taskID, err := uuid.Parse(idParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	record, err := h.store.GetTask(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to look up task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskStatusResponse{
		TaskID:       record.ID,
		Status:       string(record.Status),
		ErrorMessage: record.ErrorMessage,
		Result:       record.Result,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	})
}

// GetMetadata handles GET /api/v1/metadata requests. It describes the task
// and its configuration fields so pipeline front ends can render a form.
func (h *TaskHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, task.TaskMetadata)
}

// HealthCheck handles GET /healthz requests.
func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
