package classify

import (
	"context"

	"github.com/skillsenselab/callscore/provider"
)

// Provider is the interface that zero-shot classification backends must
// implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Classify scores the request text against the candidate labels.
	Classify(ctx context.Context, req Request) (*Result, error)
}
