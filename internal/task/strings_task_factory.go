package task

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/strings-worker/internal/stage"
)

// StringsTaskFactory creates StringsTask instances
type StringsTaskFactory struct {
	stager    stage.Stager
	extractor Extractor
	logger    *slog.Logger
}

// NewStringsTaskFactory creates a new factory for StringsTasks
func NewStringsTaskFactory(
	stager stage.Stager,
	extractor Extractor,
	logger *slog.Logger,
) *StringsTaskFactory {
	return &StringsTaskFactory{
		stager:    stager,
		extractor: extractor,
		logger:    logger.With("component", "strings_task_factory"),
	}
}

// CreateTask creates a new StringsTask with the given identifier and payload
func (f *StringsTaskFactory) CreateTask(id uuid.UUID, payload StringsPayload) (Task, error) {
	task, err := NewStringsTask(
		id,
		payload,
		f.stager,
		f.extractor,
		f.logger,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
