package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProgressEventName identifies progress events on the wire. The name matches
// what pipeline observers subscribe to.
const ProgressEventName = "task-progress"

// TaskRequestEvent represents a request to create a background task.
// It contains the necessary information for task creation without
// direct dependencies on the task package.
type TaskRequestEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates the task type that should be created
	Type string `json:"type"`

	// Payload contains the task-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent creates a new TaskRequestEvent with the specified type and payload.
func NewTaskRequestEvent(eventType string, payload interface{}) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// ProgressEvent is an ephemeral snapshot of a running extraction. It is
// purely observational and never part of the final task result.
type ProgressEvent struct {
	// TaskID identifies the task the snapshot belongs to
	TaskID uuid.UUID `json:"task_id"`

	// Name is the event name observers subscribe to, always ProgressEventName
	Name string `json:"name"`

	// ExtractedStrings is the number of strings written so far
	ExtractedStrings int `json:"extracted_strings"`

	// Rate is the average extraction rate in strings per second since the
	// subprocess started, truncated to an integer
	Rate int `json:"rate"`

	// EmittedAt is the timestamp when the snapshot was taken
	EmittedAt time.Time `json:"emitted_at"`
}

// NewProgressEvent creates a progress snapshot for the given task.
func NewProgressEvent(taskID uuid.UUID, extracted, rate int) *ProgressEvent {
	return &ProgressEvent{
		TaskID:           taskID,
		Name:             ProgressEventName,
		ExtractedStrings: extracted,
		Rate:             rate,
		EmittedAt:        time.Now(),
	}
}

// RequestHandler defines an interface for components that handle task
// request events.
type RequestHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// RequestEmitter defines an interface for components that emit task
// request events without direct knowledge of handlers.
type RequestEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}

// ProgressHandler defines an interface for components that observe
// progress events.
type ProgressHandler interface {
	// HandleProgress processes a single progress snapshot.
	HandleProgress(ctx context.Context, event *ProgressEvent) error
}

// ProgressEmitter defines an interface for components that emit progress
// events during task execution.
type ProgressEmitter interface {
	// EmitProgress publishes the given snapshot to all registered handlers.
	EmitProgress(ctx context.Context, event *ProgressEvent) error
}
