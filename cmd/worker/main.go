// Package main implements the entry point for the strings worker, which
// extracts printable strings from files on shared storage and reports
// progress and results back to the orchestrating pipeline.
package main

import (
	"context"
	"log"
)

// main is the entry point for the strings worker. It initializes
// configuration, logging, tracing, and the task runtime, then serves the
// HTTP API until interrupted.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
