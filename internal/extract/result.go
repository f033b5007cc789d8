package extract

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/strings-worker/internal/stage"
)

// TaskResult is the final aggregate a task hands back to the pipeline: the
// ordered output file descriptors, the workflow they belong to, and a
// free-form metadata map.
type TaskResult struct {
	OutputFiles []stage.OutputFile `json:"output_files"`
	WorkflowID  string             `json:"workflow_id"`
	Meta        map[string]string  `json:"meta"`
}

// BuildResult assembles a TaskResult. A result is only constructible when
// at least one output was produced; an empty list is a hard task failure,
// never a silently successful empty result.
func BuildResult(outputs []stage.OutputFile, workflowID string, meta map[string]string) (*TaskResult, error) {
	if len(outputs) == 0 {
		return nil, ErrNoOutput
	}
	if meta == nil {
		meta = make(map[string]string)
	}
	return &TaskResult{
		OutputFiles: outputs,
		WorkflowID:  workflowID,
		Meta:        meta,
	}, nil
}

// Encode serializes the result into the base64(JSON) envelope the pipeline
// passes between stages.
func (r *TaskResult) Encode() (string, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task result: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeResult parses an encoded result envelope, typically one piped from
// a previous pipeline stage.
func DecodeResult(encoded string) (*TaskResult, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode task result: %w", err)
	}
	var result TaskResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task result: %w", err)
	}
	return &result, nil
}
