package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/strings-worker/internal/events"
)

// DefaultPollInterval is how often progress is sampled when no interval is
// configured. The loop is a coarse busy-poll: output files are modest and
// re-counting them every few seconds is cheap.
const DefaultPollInterval = 3 * time.Second

// LineCounter is the slice of the staging layer the sampler needs.
type LineCounter interface {
	CountLines(path string) (int, error)
}

// Sampler watches a single running extraction subprocess, periodically
// re-counting the lines written to its output file and emitting progress
// snapshots until the process exits.
type Sampler struct {
	counter  LineCounter
	emitter  events.ProgressEmitter
	interval time.Duration
	logger   *slog.Logger
}

// NewSampler creates a Sampler emitting one snapshot per interval. A zero
// or negative interval falls back to DefaultPollInterval.
func NewSampler(counter LineCounter, emitter events.ProgressEmitter, interval time.Duration, logger *slog.Logger) *Sampler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Sampler{
		counter:  counter,
		emitter:  emitter,
		interval: interval,
		logger:   logger.With("component", "progress_sampler"),
	}
}

// progressRate returns the average extraction rate in lines per second
// since start, truncated to an integer. A zero elapsed duration yields 0.
func progressRate(extracted int, elapsed time.Duration) int {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return int(float64(extracted) / secs)
}

// PollUntilExit blocks until proc exits, emitting a progress snapshot for
// taskID every interval. The returned error is the child's exit result;
// the loop itself does not interpret exit codes. If the process exits
// before the first tick elapses no snapshot is emitted at all, which is
// accepted behavior.
//
// Cancelling ctx kills the subprocess, waits for it to be reaped and
// returns the context error, so no orphaned child or dangling output
// descriptor survives an abandoned task.
func (s *Sampler) PollUntilExit(ctx context.Context, taskID uuid.UUID, proc *Process, outputPath string) error {
	done := make(chan error, 1)
	go func() { done <- proc.Wait() }()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = proc.Kill()
			<-done
			return ctx.Err()

		case err := <-done:
			return err

		case <-ticker.C:
			extracted, err := s.counter.CountLines(outputPath)
			if err != nil {
				// The output file can briefly lag the subprocess; try again next tick.
				s.logger.Warn("failed to count extracted strings",
					"error", err,
					"output_path", outputPath)
				continue
			}

			rate := progressRate(extracted, time.Since(proc.StartedAt()))
			_ = s.emitter.EmitProgress(ctx, events.NewProgressEvent(taskID, extracted, rate))

			s.logger.Debug("extraction progress",
				"task_id", taskID,
				"extracted_strings", extracted,
				"rate", rate)
		}
	}
}
