package stage

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrEmptyDisplayName is returned when an output file is requested without a name.
var ErrEmptyDisplayName = errors.New("output file display name cannot be empty")

// LocalStager implements Stager against the local filesystem. Both the
// staged inputs and the output directory are expected to live on a volume
// shared with the rest of the pipeline.
type LocalStager struct {
	logger *slog.Logger
}

// NewLocalStager creates a LocalStager.
func NewLocalStager(logger *slog.Logger) *LocalStager {
	return &LocalStager{
		logger: logger.With("component", "local_stager"),
	}
}

// pipedResult is the subset of a prior task's result envelope needed to
// turn its outputs into this task's inputs.
type pipedResult struct {
	OutputFiles []OutputFile `json:"output_files"`
}

// ResolveInputs returns the input files a task should process. A non-empty
// pipeResult (the base64-encoded result of the previous pipeline stage)
// takes precedence over the explicit list.
func (s *LocalStager) ResolveInputs(pipeResult string, explicit []InputFile) ([]InputFile, error) {
	if pipeResult == "" {
		return explicit, nil
	}

	raw, err := base64.StdEncoding.DecodeString(pipeResult)
	if err != nil {
		return nil, fmt.Errorf("failed to decode piped result: %w", err)
	}

	var prior pipedResult
	if err := json.Unmarshal(raw, &prior); err != nil {
		return nil, fmt.Errorf("failed to unmarshal piped result: %w", err)
	}

	inputs := make([]InputFile, 0, len(prior.OutputFiles))
	for _, out := range prior.OutputFiles {
		inputs = append(inputs, InputFile{
			ID:          out.ID,
			Path:        out.Path,
			DisplayName: out.DisplayName,
		})
	}

	s.logger.Debug("resolved inputs from piped result", "input_count", len(inputs))
	return inputs, nil
}

// CreateOutputFile allocates a new empty file in dir named after the display
// name. The display name is reduced to its base element so a hostile name
// cannot escape the output directory.
func (s *LocalStager) CreateOutputFile(dir, displayName string) (OutputFile, error) {
	if displayName == "" {
		return OutputFile{}, ErrEmptyDisplayName
	}

	name := filepath.Base(displayName)
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return OutputFile{}, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return OutputFile{}, fmt.Errorf("failed to close output file %s: %w", path, err)
	}

	out := OutputFile{
		ID:          uuid.New().String(),
		Path:        path,
		DisplayName: name,
	}

	s.logger.Debug("allocated output file", "path", out.Path, "display_name", out.DisplayName)
	return out, nil
}

// CountLines counts newline characters in the file at path using buffered
// chunk reads, so growing output files can be re-scanned cheaply between
// progress ticks.
func (s *LocalStager) CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := bufio.NewReaderSize(f, 256*1024)
	buf := make([]byte, 64*1024)

	count := 0
	for {
		n, err := reader.Read(buf)
		count += bytes.Count(buf[:n], []byte{'\n'})
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
}
