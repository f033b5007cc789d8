package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEmitter is a simple in-process implementation of RequestEmitter
// and ProgressEmitter that stores registered handlers in memory and
// dispatches events to them synchronously.
type InMemoryEmitter struct {
	requestHandlers  []RequestHandler
	progressHandlers []ProgressHandler
	mu               sync.RWMutex
	logger           *slog.Logger
}

// NewInMemoryEmitter creates a new instance of InMemoryEmitter.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	return &InMemoryEmitter{
		requestHandlers:  make([]RequestHandler, 0),
		progressHandlers: make([]ProgressHandler, 0),
		logger:           logger.With("component", "in_memory_emitter"),
	}
}

// RegisterHandler adds a new request handler to receive task request events.
func (e *InMemoryEmitter) RegisterHandler(handler RequestHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requestHandlers = append(e.requestHandlers, handler)
	e.logger.Debug("registered request handler", "handler_count", len(e.requestHandlers))
}

// RegisterProgressHandler adds a new handler to receive progress events.
func (e *InMemoryEmitter) RegisterProgressHandler(handler ProgressHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progressHandlers = append(e.progressHandlers, handler)
	e.logger.Debug("registered progress handler", "handler_count", len(e.progressHandlers))
}

// EmitEvent publishes the given event to all registered request handlers.
// If any handler returns an error, the event is still sent to the remaining
// handlers and the first error encountered is returned.
func (e *InMemoryEmitter) EmitEvent(ctx context.Context, event *TaskRequestEvent) error {
	e.mu.RLock()
	handlers := make([]RequestHandler, len(e.requestHandlers))
	copy(handlers, e.requestHandlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting task request event",
		"event_id", event.ID,
		"event_type", event.Type,
		"handler_count", len(handlers))

	if len(handlers) == 0 {
		e.logger.Warn("no handlers registered for event",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// EmitProgress publishes the given snapshot to all registered progress
// handlers. Handler errors are logged but never fail the emitting task:
// progress is observational.
func (e *InMemoryEmitter) EmitProgress(ctx context.Context, event *ProgressEvent) error {
	e.mu.RLock()
	handlers := make([]ProgressHandler, len(e.progressHandlers))
	copy(handlers, e.progressHandlers)
	e.mu.RUnlock()

	for i, handler := range handlers {
		if err := handler.HandleProgress(ctx, event); err != nil {
			e.logger.Error("progress handler failed",
				"error", err,
				"handler_index", i,
				"task_id", event.TaskID)
		}
	}

	return nil
}
