// Package events provides types and interfaces for the worker's event flow.
//
// Two kinds of events move through the system: TaskRequestEvent, which asks
// the runtime to create and run a task, and ProgressEvent, which a running
// task emits periodically so observers can follow extraction progress.
// Emitters fan events out to registered handlers, keeping producers decoupled
// from whoever consumes them.
package events
