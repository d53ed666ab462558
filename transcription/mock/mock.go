// Package mock provides a deterministic transcription backend that returns
// a scripted debt-collection call. It is used for development and tests
// where no audio or ASR sidecar is available.
package mock

import (
	"context"
	"strings"

	"github.com/skillsenselab/callscore/provider"
	"github.com/skillsenselab/callscore/transcription"
)

// ProviderName is the registered name for the mock provider.
const ProviderName = "mock"

// Provider implements transcription.Provider with a fixed scripted call.
type Provider struct{}

// NewProvider creates a new mock transcription provider.
func NewProvider() *Provider { return &Provider{} }

// Factory returns a provider.Factory for the mock provider.
func Factory() provider.Factory[transcription.Provider] {
	return func(_ map[string]any) (transcription.Provider, error) {
		return NewProvider(), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable always reports true; the mock has no external dependency.
func (p *Provider) IsAvailable(_ context.Context) bool { return true }

// Transcribe ignores the audio path and returns a scripted two-party
// collection call with time-aligned spans.
func (p *Provider) Transcribe(_ context.Context, _ transcription.Request) (*transcription.Response, error) {
	spans := []transcription.Span{
		{Start: 0.0, End: 5.0, Text: "Hello, this is John calling from HDFC Bank. Am I speaking with Mr. Sharma?"},
		{Start: 5.5, End: 7.0, Text: "Yes, speaking."},
		{Start: 7.5, End: 12.0, Text: "Sir, this call is regarding your overdue payment of 15,000 rupees."},
		{Start: 12.5, End: 16.0, Text: "I know, I will pay next week by UPI."},
		{Start: 16.5, End: 20.0, Text: "Okay, please do so by Monday. Thank you."},
	}

	texts := make([]string, len(spans))
	for i, s := range spans {
		texts[i] = s.Text
	}

	return &transcription.Response{
		Text:     strings.Join(texts, " "),
		Spans:    spans,
		Duration: spans[len(spans)-1].End,
		Language: "en",
	}, nil
}
