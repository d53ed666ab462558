// Package diarization defines the provider interface and common types
// for interacting with speaker diarization backends.
//
// Backends plug into a generic provider registry so the diarizer can be
// selected at runtime from configuration.
//
// # Backends
//
//   - diarization/pyannote: Pyannote-based speaker diarization sidecar
//   - diarization/mock: scripted intervals matching the mock transcript
//
// # Usage
//
//	mgr := diarization.NewManager()
//	mgr.Register(pyannote.ProviderName, pyannote.Factory())
//	prov, err := mgr.Get(ctx)
//	resp, err := prov.Diarize(ctx, diarization.Request{AudioPath: path})
package diarization
