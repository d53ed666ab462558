// Package provider implements a generic registry and manager for pluggable
// collaborator backends (transcription, diarization, classification).
//
// Backends register a Factory under a name; a Manager instantiates them from
// config and a Selector picks one at call time, falling back across backends
// that report themselves unavailable.
package provider
