// Package transcription defines the provider interface and common types
// for interacting with speech-to-text backends.
//
// Backends plug into a generic provider registry so the ASR engine can
// be selected at runtime from configuration.
//
// # Backends
//
//   - transcription/whisper: faster-whisper HTTP sidecar
//   - transcription/mock: deterministic scripted call for development
//
// # Usage
//
//	mgr := transcription.NewManager()
//	mgr.Register(whisper.ProviderName, whisper.Factory())
//	prov, err := mgr.Get(ctx)
//	resp, err := prov.Transcribe(ctx, transcription.Request{AudioPath: path})
package transcription
