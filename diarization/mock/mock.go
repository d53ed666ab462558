// Package mock provides a deterministic diarization backend whose
// intervals line up with the scripted call of the mock transcription
// provider. Selecting both gives a fully attributed offline run with
// confidences and roles populated.
package mock

import (
	"context"

	"github.com/skillsenselab/callscore/diarization"
	"github.com/skillsenselab/callscore/provider"
)

// ProviderName is the registered name for the mock provider.
const ProviderName = "mock"

// Provider implements diarization.Provider with fixed speaker intervals.
type Provider struct{}

// NewProvider creates a new mock diarization provider.
func NewProvider() *Provider { return &Provider{} }

// Factory returns a provider.Factory for the mock provider.
func Factory() provider.Factory[diarization.Provider] {
	return func(_ map[string]any) (diarization.Provider, error) {
		return NewProvider(), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable always reports true; the mock has no external dependency.
func (p *Provider) IsAvailable(_ context.Context) bool { return true }

// Diarize ignores the audio path and returns the speaker intervals of
// the scripted two-party call, alternating between the caller and the
// customer.
func (p *Provider) Diarize(_ context.Context, _ diarization.Request) (*diarization.Response, error) {
	return &diarization.Response{
		NumSpeakers: 2,
		Intervals: []diarization.Interval{
			{Speaker: "Speaker 1", Start: 0.0, End: 5.0},
			{Speaker: "Speaker 2", Start: 5.5, End: 7.0},
			{Speaker: "Speaker 1", Start: 7.5, End: 12.0},
			{Speaker: "Speaker 2", Start: 12.5, End: 16.0},
			{Speaker: "Speaker 1", Start: 16.5, End: 20.0},
		},
	}, nil
}
