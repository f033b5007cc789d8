package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// defaultBinary is the extraction utility looked up on PATH when no
// explicit binary is configured.
const defaultBinary = "strings"

// Process is a live handle to a spawned extraction subprocess. It owns the
// output file descriptor the child writes into and closes it once the
// child has exited.
type Process struct {
	cmd     *exec.Cmd
	out     *os.File
	started time.Time
}

// StartedAt returns the wall-clock time the subprocess was launched.
func (p *Process) StartedAt() time.Time {
	return p.started
}

// Wait blocks until the subprocess exits and releases the output file
// descriptor. The returned error is the child's exit result as reported by
// os/exec; callers decide what a non-zero exit means.
func (p *Process) Wait() error {
	waitErr := p.cmd.Wait()
	if closeErr := p.out.Close(); closeErr != nil && waitErr == nil {
		return fmt.Errorf("failed to close output file: %w", closeErr)
	}
	return waitErr
}

// Kill forcibly terminates the subprocess. Safe to call after exit.
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// Invoker launches the extraction utility for a single (input, encoding)
// pair with its standard output redirected straight into the allocated
// output file. Nothing is buffered in memory; the utility streams results
// incrementally.
type Invoker struct {
	binary string
	logger *slog.Logger
}

// NewInvoker creates an Invoker running the given binary. An empty binary
// falls back to "strings" on PATH.
func NewInvoker(binary string, logger *slog.Logger) *Invoker {
	if binary == "" {
		binary = defaultBinary
	}
	return &Invoker{
		binary: binary,
		logger: logger.With("component", "extraction_invoker"),
	}
}

// Invoke starts the extraction utility for inputPath with the given
// encoding, writing to outputPath. The launch is non-blocking: the caller
// receives a live Process handle and is responsible for waiting on it.
// A spawn failure (missing binary, permission denied) is fatal and is
// returned as-is; there is no retry at this layer.
//
// The invocation is equivalent to:
//
//	strings -a -t d --encoding <code> <inputPath>
//
// -a scans the whole file regardless of sections, -t d prefixes every
// string with its byte offset in decimal.
func (i *Invoker) Invoke(ctx context.Context, inputPath string, encoding Encoding, outputPath string) (*Process, error) {
	out, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file %s: %w", outputPath, err)
	}

	cmd := exec.CommandContext(ctx, i.binary, "-a", "-t", "d", "--encoding", encoding.Flag(), inputPath)
	cmd.Stdout = out

	i.logger.Debug("launching extraction subprocess",
		"binary", i.binary,
		"encoding", encoding.String(),
		"input_path", inputPath,
		"output_path", outputPath)

	if err := cmd.Start(); err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("failed to spawn %s: %w", i.binary, err)
	}

	return &Process{
		cmd:     cmd,
		out:     out,
		started: time.Now(),
	}, nil
}
