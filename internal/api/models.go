package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/strings-worker/internal/stage"
)

// Common request/response structures

// SubmitTaskRequest defines the payload for the task submission endpoint.
// Either PipeResult or InputFiles must carry the files to process.
type SubmitTaskRequest struct {
	// PipeResult is the encoded result of an upstream pipeline task.
	PipeResult string `json:"pipe_result,omitempty"`

	// InputFiles lists the files to process when no pipe result is given.
	InputFiles []stage.InputFile `json:"input_files,omitempty"`

	// OutputPath is the shared-storage directory output files are written into.
	OutputPath string `json:"output_path" validate:"required"`

	// WorkflowID identifies the workflow the task belongs to.
	WorkflowID string `json:"workflow_id"`

	// TaskConfig maps encoding names to whether they are enabled.
	TaskConfig map[string]bool `json:"task_config,omitempty"`
}

// SubmitTaskResponse defines the successful response for the task
// submission endpoint.
type SubmitTaskResponse struct {
	// TaskID is the identifier the submitted task can be polled under
	TaskID uuid.UUID `json:"task_id"`
}

// TaskStatusResponse defines the response for the task status endpoint.
type TaskStatusResponse struct {
	TaskID       uuid.UUID `json:"task_id"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`

	// Result is the encoded task result, present once the task completed.
	Result string `json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HealthResponse defines the response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
