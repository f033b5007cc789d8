package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/strings-worker/internal/extract"
	"github.com/phrazzld/strings-worker/internal/stage"
)

// Status constants for StringsTask
// These match the TaskStatus values defined in task.go
const (
	statusPending    = "pending"
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)

// Common errors
var (
	ErrNilStager       = errors.New("stager cannot be nil")
	ErrNilExtractor    = errors.New("extractor cannot be nil")
	ErrNilLogger       = errors.New("logger cannot be nil")
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
)

// Extractor defines the interface to the extraction core
type Extractor interface {
	// Run processes every enabled encoding against every input file and
	// returns the produced outputs
	Run(
		ctx context.Context,
		taskID uuid.UUID,
		inputs []stage.InputFile,
		taskConfig map[string]bool,
		outputDir string,
	) (*extract.RunOutcome, error)
}

// StringsPayload is the serialized argument shape the queue runtime hands
// to a strings task.
type StringsPayload struct {
	// PipeResult is the encoded result of the previous pipeline task, if any
	PipeResult string `json:"pipe_result,omitempty"`

	// InputFiles lists the files to process (unused when PipeResult is set)
	InputFiles []stage.InputFile `json:"input_files,omitempty"`

	// OutputPath is the directory output files are written into
	OutputPath string `json:"output_path"`

	// WorkflowID identifies the workflow the task belongs to
	WorkflowID string `json:"workflow_id"`

	// TaskConfig selects which encodings to extract; keys are encoding
	// names, true enables the encoding
	TaskConfig map[string]bool `json:"task_config"`
}

// StringsTask implements the Task interface for extracting printable
// strings from the staged input files.
type StringsTask struct {
	id        uuid.UUID
	payload   StringsPayload
	stager    stage.Stager
	extractor Extractor
	logger    *slog.Logger
	status    string // Using string instead of TaskStatus to keep status transitions local
}

// NewStringsTask creates a new strings extraction task. A nil id is
// replaced with a fresh one; passing the originating request event's ID
// keeps the task traceable back to its submission.
func NewStringsTask(
	id uuid.UUID,
	payload StringsPayload,
	stager stage.Stager,
	extractor Extractor,
	logger *slog.Logger,
) (*StringsTask, error) {
	if stager == nil {
		return nil, ErrNilStager
	}
	if extractor == nil {
		return nil, ErrNilExtractor
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if payload.OutputPath == "" {
		return nil, ErrEmptyOutputPath
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &StringsTask{
		id:        id,
		payload:   payload,
		stager:    stager,
		extractor: extractor,
		logger:    logger.With("task_type", TaskName, "workflow_id", payload.WorkflowID),
		status:    statusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *StringsTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *StringsTask) Type() string {
	return TaskName
}

// Payload returns the task data as a byte slice
func (t *StringsTask) Payload() []byte {
	data, err := json.Marshal(t.payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *StringsTask) Status() TaskStatus {
	return TaskStatus(t.status)
}

// Execute runs the full extraction: resolve the staged inputs, drive the
// extraction core over every (encoding, input) pair, and assemble the
// encoded result envelope. All failures propagate to the worker pool
// uncaught; retries belong to the surrounding queue runtime.
func (t *StringsTask) Execute(ctx context.Context) (string, error) {
	t.status = statusProcessing
	t.logger.Info("starting strings extraction task")

	if err := ctx.Err(); err != nil {
		t.status = statusFailed
		return "", fmt.Errorf("task cancelled by context: %w", err)
	}

	inputs, err := t.stager.ResolveInputs(t.payload.PipeResult, t.payload.InputFiles)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("failed to resolve input files", "error", err)
		return "", fmt.Errorf("failed to resolve input files: %w", err)
	}

	t.logger.Info("resolved input files", "input_count", len(inputs))

	outcome, err := t.extractor.Run(ctx, t.id, inputs, t.payload.TaskConfig, t.payload.OutputPath)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("extraction run failed", "error", err)
		return "", err
	}

	// Items whose subprocess exited non-zero still contribute output, but
	// their exit status travels in the result metadata so downstream
	// consumers can see the partial failure.
	meta := make(map[string]string, len(outcome.ExitErrors))
	for name, status := range outcome.ExitErrors {
		meta["exit_status:"+name] = status
	}

	result, err := extract.BuildResult(outcome.OutputFiles, t.payload.WorkflowID, meta)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("no output produced", "error", err)
		return "", err
	}

	encoded, err := result.Encode()
	if err != nil {
		t.status = statusFailed
		return "", err
	}

	t.status = statusCompleted
	t.logger.Info("strings extraction task completed",
		"output_count", len(result.OutputFiles),
		"failed_count", len(outcome.ExitErrors))
	return encoded, nil
}
