// Package classify defines the provider interface and common types for
// zero-shot text classification backends. It is used for role inference
// and intent detection over call transcripts.
//
// # Backends
//
//   - classify/bart: BART MNLI zero-shot classification sidecar
package classify
