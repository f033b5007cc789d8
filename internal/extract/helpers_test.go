package extract

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/phrazzld/strings-worker/internal/events"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a logger that discards all output.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// writeScript writes a shell script standing in for strings(1) and returns
// its path. The script receives the real argument shape:
// -a -t d --encoding <code> <input-path>.
func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-strings")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// collectingEmitter records emitted progress events for assertions.
type collectingEmitter struct {
	mu     sync.Mutex
	events []*events.ProgressEvent
}

func (c *collectingEmitter) EmitProgress(ctx context.Context, event *events.ProgressEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *collectingEmitter) snapshot() []*events.ProgressEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*events.ProgressEvent, len(c.events))
	copy(out, c.events)
	return out
}
