package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/strings-worker/internal/config"
	"github.com/phrazzld/strings-worker/internal/events"
	"github.com/phrazzld/strings-worker/internal/extract"
	"github.com/phrazzld/strings-worker/internal/platform/logger"
	"github.com/phrazzld/strings-worker/internal/platform/telemetry"
	"github.com/phrazzld/strings-worker/internal/stage"
	"github.com/phrazzld/strings-worker/internal/task"
)

// application holds the worker's initialized dependencies.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	tracer *telemetry.TracerProvider

	// Extraction pipeline
	stager       stage.Stager
	orchestrator *extract.Orchestrator

	// Event system
	eventEmitter *events.InMemoryEmitter

	// Task handling
	taskStore  task.TaskStore
	taskRunner *task.TaskRunner
}

// initializeApp loads configuration and wires up the worker's components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Worker.LogLevel)

	appLogger.Info("Worker configuration loaded",
		"port", cfg.Worker.Port,
		"log_level", cfg.Worker.LogLevel,
		"output_dir", cfg.Extract.OutputDir,
		"binary", cfg.Extract.Binary)

	tracer, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	emitter := events.NewInMemoryEmitter(appLogger)

	stager := stage.NewLocalStager(appLogger)
	invoker := extract.NewInvoker(cfg.Extract.Binary, appLogger)
	sampler := extract.NewSampler(stager, emitter, cfg.Extract.PollInterval(), appLogger)
	orchestrator := extract.NewOrchestrator(stager, invoker, sampler, appLogger)

	taskStore := task.NewMemoryTaskStore()
	taskRunner := task.NewTaskRunner(taskStore, task.TaskRunnerConfig{
		WorkerCount: cfg.Worker.WorkerCount,
		QueueSize:   cfg.Worker.QueueSize,
	}, appLogger)

	taskFactory := task.NewStringsTaskFactory(stager, orchestrator, appLogger)
	emitter.RegisterHandler(task.NewTaskFactoryEventHandler(taskFactory, taskRunner, appLogger))
	emitter.RegisterProgressHandler(&progressLogHandler{logger: appLogger})

	app := &application{
		config:       cfg,
		logger:       appLogger,
		tracer:       tracer,
		stager:       stager,
		orchestrator: orchestrator,
		eventEmitter: emitter,
		taskStore:    taskStore,
		taskRunner:   taskRunner,
	}

	appLogger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the task runner and the HTTP server, handling lifecycle and
// cleanup. It blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	app.taskRunner.Start()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of the worker's resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.tracer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := app.tracer.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("Error shutting down tracer", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

// progressLogHandler surfaces progress events in the worker's logs.
type progressLogHandler struct {
	logger *slog.Logger
}

func (h *progressLogHandler) HandleProgress(ctx context.Context, event *events.ProgressEvent) error {
	h.logger.Info("task progress",
		"task_id", event.TaskID,
		"extracted_strings", event.ExtractedStrings,
		"rate", event.Rate)
	return nil
}
