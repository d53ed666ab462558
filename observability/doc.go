// Package observability wires OpenTelemetry tracing and metrics for the
// call analysis pipeline. It exposes init helpers for the OTLP HTTP
// exporters plus the span names and instruments used by the pipeline
// stages.
package observability
