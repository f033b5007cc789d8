// Package extract implements the string-extraction core of the worker.
// It builds and launches strings(1) invocations per (input file, encoding)
// pair, samples the growing output to report progress while the child
// process runs, and aggregates the produced output files into the task
// result envelope handed back to the pipeline.
package extract
