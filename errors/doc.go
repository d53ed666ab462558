// Package errors provides unified error handling for callscore with
// machine-readable error codes and retryable detection.
package errors
