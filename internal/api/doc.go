// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the worker's task runtime, translating HTTP concerns to task
// submissions and status lookups.
package api
