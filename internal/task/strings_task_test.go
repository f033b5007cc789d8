package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/strings-worker/internal/extract"
	"github.com/phrazzld/strings-worker/internal/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStager implements stage.Stager for task tests.
type mockStager struct {
	resolveFn func(pipeResult string, explicit []stage.InputFile) ([]stage.InputFile, error)
}

func (m *mockStager) ResolveInputs(pipeResult string, explicit []stage.InputFile) ([]stage.InputFile, error) {
	if m.resolveFn != nil {
		return m.resolveFn(pipeResult, explicit)
	}
	return explicit, nil
}

func (m *mockStager) CreateOutputFile(dir, displayName string) (stage.OutputFile, error) {
	return stage.OutputFile{Path: dir + "/" + displayName, DisplayName: displayName}, nil
}

func (m *mockStager) CountLines(path string) (int, error) {
	return 0, nil
}

// mockExtractor implements Extractor for task tests.
type mockExtractor struct {
	outcome   *extract.RunOutcome
	err       error
	gotTaskID uuid.UUID
	gotInputs []stage.InputFile
	gotConfig map[string]bool
	gotDir    string
}

func (m *mockExtractor) Run(
	ctx context.Context,
	taskID uuid.UUID,
	inputs []stage.InputFile,
	taskConfig map[string]bool,
	outputDir string,
) (*extract.RunOutcome, error) {
	m.gotTaskID = taskID
	m.gotInputs = inputs
	m.gotConfig = taskConfig
	m.gotDir = outputDir
	return m.outcome, m.err
}

func validPayload() StringsPayload {
	return StringsPayload{
		InputFiles: []stage.InputFile{
			{ID: "1", Path: "/data/a.bin", DisplayName: "a.bin"},
		},
		OutputPath: "/out",
		WorkflowID: "wf-1",
		TaskConfig: map[string]bool{"ASCII": true},
	}
}

func TestNewStringsTask(t *testing.T) {
	t.Parallel()

	stager := &mockStager{}
	extractor := &mockExtractor{}
	logger := newQueueTestLogger()

	t.Run("validates dependencies", func(t *testing.T) {
		t.Parallel()

		_, err := NewStringsTask(uuid.Nil, validPayload(), nil, extractor, logger)
		assert.ErrorIs(t, err, ErrNilStager)

		_, err = NewStringsTask(uuid.Nil, validPayload(), stager, nil, logger)
		assert.ErrorIs(t, err, ErrNilExtractor)

		_, err = NewStringsTask(uuid.Nil, validPayload(), stager, extractor, nil)
		assert.ErrorIs(t, err, ErrNilLogger)
	})

	t.Run("requires an output path", func(t *testing.T) {
		t.Parallel()

		payload := validPayload()
		payload.OutputPath = ""
		_, err := NewStringsTask(uuid.Nil, payload, stager, extractor, logger)
		assert.ErrorIs(t, err, ErrEmptyOutputPath)
	})

	t.Run("nil id gets a fresh one, explicit id is kept", func(t *testing.T) {
		t.Parallel()

		task, err := NewStringsTask(uuid.Nil, validPayload(), stager, extractor, logger)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID())

		id := uuid.New()
		task, err = NewStringsTask(id, validPayload(), stager, extractor, logger)
		require.NoError(t, err)
		assert.Equal(t, id, task.ID())
	})

	t.Run("payload round trips", func(t *testing.T) {
		t.Parallel()

		payload := validPayload()
		task, err := NewStringsTask(uuid.Nil, payload, stager, extractor, logger)
		require.NoError(t, err)

		assert.Equal(t, TaskName, task.Type())
		assert.Equal(t, TaskStatusPending, task.Status())

		var decoded StringsPayload
		require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
		assert.Equal(t, payload, decoded)
	})
}

func TestStringsTask_Execute(t *testing.T) {
	t.Parallel()

	logger := newQueueTestLogger()

	t.Run("builds and encodes the result", func(t *testing.T) {
		t.Parallel()

		outputs := []stage.OutputFile{
			{ID: "o1", Path: "/out/a.bin.ASCII_strings", DisplayName: "a.bin.ASCII_strings"},
		}
		extractor := &mockExtractor{
			outcome: &extract.RunOutcome{OutputFiles: outputs, ExitErrors: map[string]string{}},
		}

		task, err := NewStringsTask(uuid.Nil, validPayload(), &mockStager{}, extractor, logger)
		require.NoError(t, err)

		encoded, err := task.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, TaskStatusCompleted, task.Status())

		result, err := extract.DecodeResult(encoded)
		require.NoError(t, err)
		assert.Equal(t, outputs, result.OutputFiles)
		assert.Equal(t, "wf-1", result.WorkflowID)
		assert.Empty(t, result.Meta)

		// Extraction was attributed to this task in the right directory.
		assert.Equal(t, task.ID(), extractor.gotTaskID)
		assert.Equal(t, "/out", extractor.gotDir)
		assert.Equal(t, map[string]bool{"ASCII": true}, extractor.gotConfig)
	})

	t.Run("surfaces per-item exit errors in the result meta", func(t *testing.T) {
		t.Parallel()

		extractor := &mockExtractor{
			outcome: &extract.RunOutcome{
				OutputFiles: []stage.OutputFile{
					{ID: "o1", Path: "/out/a.bin.ASCII_strings", DisplayName: "a.bin.ASCII_strings"},
				},
				ExitErrors: map[string]string{"a.bin.ASCII_strings": "exit status 1"},
			},
		}

		task, err := NewStringsTask(uuid.Nil, validPayload(), &mockStager{}, extractor, logger)
		require.NoError(t, err)

		encoded, err := task.Execute(context.Background())
		require.NoError(t, err)

		result, err := extract.DecodeResult(encoded)
		require.NoError(t, err)
		assert.Equal(t, "exit status 1", result.Meta["exit_status:a.bin.ASCII_strings"])
	})

	t.Run("no output is a hard failure", func(t *testing.T) {
		t.Parallel()

		extractor := &mockExtractor{
			outcome: &extract.RunOutcome{ExitErrors: map[string]string{}},
		}

		task, err := NewStringsTask(uuid.Nil, validPayload(), &mockStager{}, extractor, logger)
		require.NoError(t, err)

		_, err = task.Execute(context.Background())
		assert.ErrorIs(t, err, extract.ErrNoOutput)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("extraction errors propagate", func(t *testing.T) {
		t.Parallel()

		extractor := &mockExtractor{err: extract.ErrUnknownEncoding}

		task, err := NewStringsTask(uuid.Nil, validPayload(), &mockStager{}, extractor, logger)
		require.NoError(t, err)

		_, err = task.Execute(context.Background())
		assert.ErrorIs(t, err, extract.ErrUnknownEncoding)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("input resolution errors propagate", func(t *testing.T) {
		t.Parallel()

		stager := &mockStager{
			resolveFn: func(pipeResult string, explicit []stage.InputFile) ([]stage.InputFile, error) {
				return nil, errors.New("corrupt pipe result")
			},
		}
		extractor := &mockExtractor{}

		task, err := NewStringsTask(uuid.Nil, validPayload(), stager, extractor, logger)
		require.NoError(t, err)

		_, err = task.Execute(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to resolve input files")
	})

	t.Run("cancelled context fails fast", func(t *testing.T) {
		t.Parallel()

		task, err := NewStringsTask(uuid.Nil, validPayload(), &mockStager{}, &mockExtractor{}, logger)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = task.Execute(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
