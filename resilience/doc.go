// Package resilience provides a context-aware retry helper with exponential
// backoff and jitter, used around collaborator sidecar calls.
package resilience
