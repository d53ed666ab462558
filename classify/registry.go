package classify

import "github.com/skillsenselab/callscore/provider"

// NewRegistry creates a new provider registry for classification providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// NewManager creates a new provider manager for classification providers.
func NewManager() *provider.Manager[Provider] {
	return provider.NewManager(NewRegistry(), &provider.HealthCheckSelector[Provider]{})
}
