// Package task manages background job queuing, processing, and lifecycle.
// It provides the queue and worker pool the strings extraction task runs
// on, the task registration metadata exposed to the orchestrating pipeline,
// and the concrete StringsTask that wraps the extraction core.
package task
