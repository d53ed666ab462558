package diarization

import "github.com/skillsenselab/callscore/provider"

// NewRegistry creates a new provider registry for diarization providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// NewManager creates a new provider manager for diarization providers.
func NewManager() *provider.Manager[Provider] {
	return provider.NewManager(NewRegistry(), &provider.HealthCheckSelector[Provider]{})
}
