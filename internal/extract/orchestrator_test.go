package extract

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/strings-worker/internal/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(t *testing.T, scriptBody string) (*Orchestrator, *collectingEmitter) {
	t.Helper()

	logger := newTestLogger()
	stager := stage.NewLocalStager(logger)
	emitter := &collectingEmitter{}
	invoker := NewInvoker(writeScript(t, scriptBody), logger)
	sampler := NewSampler(stager, emitter, 25*time.Millisecond, logger)
	return NewOrchestrator(stager, invoker, sampler, logger), emitter
}

func TestOrchestrator_Run(t *testing.T) {
	t.Parallel()

	inputs := []stage.InputFile{
		{ID: "1", Path: "/data/a.bin", DisplayName: "a.bin"},
		{ID: "2", Path: "/data/b.bin", DisplayName: "b.bin"},
	}

	t.Run("produces one output per encoding and input pair", func(t *testing.T) {
		t.Parallel()

		// Emit a different line count per encoding flag.
		orch, _ := newTestOrchestrator(t, `
case "$5" in
  s) printf '10 alpha\n20 beta\n30 gamma\n' ;;
  l) printf '40 uni\n' ;;
esac`)
		outputDir := t.TempDir()

		outcome, err := orch.Run(context.Background(), uuid.New(), inputs, map[string]bool{
			"ASCII":   true,
			"UTF16LE": true,
		}, outputDir)

		require.NoError(t, err)
		require.Len(t, outcome.OutputFiles, 4)
		assert.Empty(t, outcome.ExitErrors)

		// Encodings sorted by name, inputs in list order.
		names := make([]string, 0, len(outcome.OutputFiles))
		for _, out := range outcome.OutputFiles {
			names = append(names, out.DisplayName)
		}
		assert.Equal(t, []string{
			"a.bin.ASCII_strings",
			"b.bin.ASCII_strings",
			"a.bin.UTF16LE_strings",
			"b.bin.UTF16LE_strings",
		}, names)

		content, err := os.ReadFile(outcome.OutputFiles[0].Path)
		require.NoError(t, err)
		assert.Equal(t, "10 alpha\n20 beta\n30 gamma\n", string(content))

		content, err = os.ReadFile(outcome.OutputFiles[2].Path)
		require.NoError(t, err)
		assert.Equal(t, "40 uni\n", string(content))
	})

	t.Run("unknown encoding fails before any subprocess is spawned", func(t *testing.T) {
		t.Parallel()

		orch, _ := newTestOrchestrator(t, `printf '0 never\n'`)
		outputDir := t.TempDir()

		_, err := orch.Run(context.Background(), uuid.New(), inputs, map[string]bool{
			"ASCII":  true,
			"LATIN1": true,
		}, outputDir)

		assert.ErrorIs(t, err, ErrUnknownEncoding)

		entries, readErr := os.ReadDir(outputDir)
		require.NoError(t, readErr)
		assert.Empty(t, entries, "no output files may exist after a configuration error")
	})

	t.Run("disabled encodings are skipped", func(t *testing.T) {
		t.Parallel()

		orch, _ := newTestOrchestrator(t, `printf '0 line\n'`)

		outcome, err := orch.Run(context.Background(), uuid.New(), inputs, map[string]bool{
			"ASCII":   true,
			"UTF16LE": false,
		}, t.TempDir())

		require.NoError(t, err)
		require.Len(t, outcome.OutputFiles, 2)
		assert.Equal(t, "a.bin.ASCII_strings", outcome.OutputFiles[0].DisplayName)
		assert.Equal(t, "b.bin.ASCII_strings", outcome.OutputFiles[1].DisplayName)
	})

	t.Run("empty input list yields an empty outcome", func(t *testing.T) {
		t.Parallel()

		orch, _ := newTestOrchestrator(t, `printf '0 line\n'`)

		outcome, err := orch.Run(context.Background(), uuid.New(), nil, map[string]bool{"ASCII": true}, t.TempDir())

		require.NoError(t, err)
		assert.Empty(t, outcome.OutputFiles)
	})

	t.Run("non-zero exit keeps the output and records the status", func(t *testing.T) {
		t.Parallel()

		orch, _ := newTestOrchestrator(t, `printf '0 partial\n'; exit 1`)

		outcome, err := orch.Run(
			context.Background(),
			uuid.New(),
			inputs[:1],
			map[string]bool{"ASCII": true},
			t.TempDir(),
		)

		require.NoError(t, err)
		require.Len(t, outcome.OutputFiles, 1)
		assert.Contains(t, outcome.ExitErrors, "a.bin.ASCII_strings")

		content, readErr := os.ReadFile(outcome.OutputFiles[0].Path)
		require.NoError(t, readErr)
		assert.Equal(t, "0 partial\n", string(content))
	})

	t.Run("spawn failure aborts the run", func(t *testing.T) {
		t.Parallel()

		logger := newTestLogger()
		stager := stage.NewLocalStager(logger)
		invoker := NewInvoker("/nonexistent/strings-binary", logger)
		sampler := NewSampler(stager, &collectingEmitter{}, time.Second, logger)
		orch := NewOrchestrator(stager, invoker, sampler, logger)

		_, err := orch.Run(context.Background(), uuid.New(), inputs[:1], map[string]bool{"ASCII": true}, t.TempDir())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to spawn")
	})

	t.Run("cancellation aborts between pairs", func(t *testing.T) {
		t.Parallel()

		orch, _ := newTestOrchestrator(t, `sleep 10`)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(100 * time.Millisecond)
			cancel()
		}()

		start := time.Now()
		_, err := orch.Run(ctx, uuid.New(), inputs, map[string]bool{"ASCII": true}, t.TempDir())

		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("repeat runs produce identical output bytes", func(t *testing.T) {
		t.Parallel()

		orch, _ := newTestOrchestrator(t, `printf '100 stable\n200 output\n'`)

		first, err := orch.Run(context.Background(), uuid.New(), inputs[:1], map[string]bool{"ASCII": true}, t.TempDir())
		require.NoError(t, err)
		second, err := orch.Run(context.Background(), uuid.New(), inputs[:1], map[string]bool{"ASCII": true}, t.TempDir())
		require.NoError(t, err)

		firstContent, err := os.ReadFile(first.OutputFiles[0].Path)
		require.NoError(t, err)
		secondContent, err := os.ReadFile(second.OutputFiles[0].Path)
		require.NoError(t, err)
		assert.Equal(t, firstContent, secondContent)
	})
}
