package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/google/uuid"
	"github.com/phrazzld/strings-worker/internal/stage"
)

// Orchestrator drives the full extraction of a task: one subprocess per
// (encoding, input file) pair, each sampled to completion, with the
// produced output handles collected in order.
type Orchestrator struct {
	stager  stage.Stager
	invoker *Invoker
	sampler *Sampler
	logger  *slog.Logger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(stager stage.Stager, invoker *Invoker, sampler *Sampler, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		stager:  stager,
		invoker: invoker,
		sampler: sampler,
		logger:  logger.With("component", "encoding_orchestrator"),
	}
}

// RunOutcome is what a completed extraction run produced.
type RunOutcome struct {
	// OutputFiles holds one descriptor per (encoding, input) pair, in
	// processing order: encodings sorted by name, inputs in list order.
	OutputFiles []stage.OutputFile

	// ExitErrors records, per output display name, the exit status of
	// subprocesses that ended non-zero. Their outputs are still included
	// in OutputFiles; the caller decides how to surface the failures.
	ExitErrors map[string]string
}

// outputName derives the display name of an output file from the input it
// was extracted from and the encoding used.
func outputName(inputDisplayName string, enc Encoding) string {
	return fmt.Sprintf("%s.%s_strings", inputDisplayName, enc)
}

// Run processes every enabled encoding against every input file,
// sequentially. All configuration keys are validated before the first
// subprocess is spawned: an unknown encoding name fails the task with no
// partial results.
//
// A subprocess that cannot be spawned, or a cancelled context, aborts the
// run. A subprocess that runs but exits non-zero does not: its output is
// kept and the exit status is recorded in the outcome, so a single
// unreadable input cannot discard the strings already extracted from the
// others.
func (o *Orchestrator) Run(
	ctx context.Context,
	taskID uuid.UUID,
	inputs []stage.InputFile,
	taskConfig map[string]bool,
	outputDir string,
) (*RunOutcome, error) {
	encodings, err := enabledEncodings(taskConfig)
	if err != nil {
		return nil, err
	}

	o.logger.Info("starting extraction run",
		"task_id", taskID,
		"encoding_count", len(encodings),
		"input_count", len(inputs))

	outcome := &RunOutcome{
		OutputFiles: make([]stage.OutputFile, 0, len(encodings)*len(inputs)),
		ExitErrors:  make(map[string]string),
	}

	for _, enc := range encodings {
		for _, input := range inputs {
			out, err := o.stager.CreateOutputFile(outputDir, outputName(input.DisplayName, enc))
			if err != nil {
				return nil, fmt.Errorf("failed to allocate output for %s: %w", input.DisplayName, err)
			}

			proc, err := o.invoker.Invoke(ctx, input.Path, enc, out.Path)
			if err != nil {
				return nil, err
			}

			err = o.sampler.PollUntilExit(ctx, taskID, proc, out.Path)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			var exitErr *exec.ExitError
			switch {
			case err == nil:
			case errors.As(err, &exitErr):
				o.logger.Warn("extraction subprocess exited non-zero",
					"task_id", taskID,
					"input_path", input.Path,
					"encoding", enc.String(),
					"exit_status", exitErr.String())
				outcome.ExitErrors[out.DisplayName] = exitErr.String()
			default:
				return nil, fmt.Errorf("extraction of %s (%s) aborted: %w", input.DisplayName, enc, err)
			}

			outcome.OutputFiles = append(outcome.OutputFiles, out)
		}
	}

	o.logger.Info("extraction run finished",
		"task_id", taskID,
		"output_count", len(outcome.OutputFiles),
		"failed_count", len(outcome.ExitErrors))

	return outcome, nil
}
