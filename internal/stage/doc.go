// Package stage handles movement of task files between the shared storage
// and a running task: resolving the inputs a task should process (either an
// explicit list or the outputs piped from a previous pipeline stage) and
// allocating the output files a task writes into.
package stage
