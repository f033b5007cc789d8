package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskRequestEvent(t *testing.T) {
	t.Parallel()

	type samplePayload struct {
		WorkflowID string `json:"workflow_id"`
		OutputPath string `json:"output_path"`
	}

	t.Run("round trips the payload", func(t *testing.T) {
		t.Parallel()

		payload := samplePayload{WorkflowID: "wf-1", OutputPath: "/out"}
		event, err := NewTaskRequestEvent("strings-worker.tasks.strings", payload)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.Equal(t, "strings-worker.tasks.strings", event.Type)
		assert.False(t, event.CreatedAt.IsZero())

		var decoded samplePayload
		require.NoError(t, event.UnmarshalPayload(&decoded))
		assert.Equal(t, payload, decoded)
	})

	t.Run("unmarshal into incompatible type fails", func(t *testing.T) {
		t.Parallel()

		event, err := NewTaskRequestEvent("strings-worker.tasks.strings", samplePayload{})
		require.NoError(t, err)

		var wrong int
		assert.Error(t, event.UnmarshalPayload(&wrong))
	})

	t.Run("unserializable payload fails", func(t *testing.T) {
		t.Parallel()

		_, err := NewTaskRequestEvent("strings-worker.tasks.strings", make(chan int))
		assert.Error(t, err)
	})
}

func TestNewProgressEvent(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()
	event := NewProgressEvent(taskID, 150, 50)

	assert.Equal(t, taskID, event.TaskID)
	assert.Equal(t, ProgressEventName, event.Name)
	assert.Equal(t, 150, event.ExtractedStrings)
	assert.Equal(t, 50, event.Rate)
	assert.False(t, event.EmittedAt.IsZero())

	// Snapshots are serialized for observers; keep the wire names stable.
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"extracted_strings":150`)
	assert.Contains(t, string(raw), `"rate":50`)
	assert.Contains(t, string(raw), `"name":"task-progress"`)
}
