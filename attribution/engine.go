package attribution

import (
	"context"
	"strings"

	"github.com/skillsenselab/callscore/diarization"
	"github.com/skillsenselab/callscore/logger"
	"github.com/skillsenselab/callscore/transcription"
	"github.com/skillsenselab/callscore/validation"
)

// Config holds engine tuning parameters.
type Config struct {
	// MergeGap is the maximum silence in seconds bridged when merging
	// consecutive turns of one speaker.
	MergeGap float64 `json:"merge_gap" validate:"gte=0"`
}

// ApplyDefaults fills zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.MergeGap == 0 {
		c.MergeGap = DefaultMergeGap
	}
}

// Result is the engine's output for one call: time-ordered attributed
// turns plus the resolved per-speaker roles. Strategy names the scorer
// that actually produced the roles, which differs from the configured
// one when scoring degraded. Merged counts the provisional turns
// coalesced away during merging.
type Result struct {
	Turns    []Turn          `json:"turns"`
	Roles    map[string]Role `json:"roles"`
	Speakers []string        `json:"speakers"`
	Strategy string          `json:"strategy"`
	Merged   int             `json:"merged"`
}

// Engine reconciles transcription spans with diarization intervals into
// role-labeled turns. It is stateless between invocations; each call to
// Attribute owns its inputs and outputs exclusively, so separate calls
// may run concurrently.
type Engine struct {
	mergeGap float64
	scorer   RoleScorer
	fallback RoleScorer
	log      *logger.Logger
}

// NewEngine creates an attribution engine. A nil scorer selects the
// lexical strategy.
func NewEngine(cfg Config, scorer RoleScorer) (*Engine, error) {
	cfg.ApplyDefaults()
	if err := validation.Validate(&cfg); err != nil {
		return nil, err
	}
	if scorer == nil {
		scorer = NewLexicalScorer()
	}
	return &Engine{
		mergeGap: cfg.MergeGap,
		scorer:   scorer,
		fallback: NewLexicalScorer(),
		log:      logger.Get("attribution").WithComponent("engine"),
	}, nil
}

// Attribute runs the full attribution sequence: build provisional turns,
// merge them, score the speakers, and resolve roles. It never fails on
// data shape; degraded inputs produce degraded but well-formed output.
func (e *Engine) Attribute(ctx context.Context, spans []transcription.Span, intervals []diarization.Interval) (*Result, error) {
	built := BuildTurns(spans, intervals)
	turns := MergeTurns(built, e.mergeGap)
	speakers := aggregateSpeakers(turns)

	strategy := e.scorer.Name()
	evidence, err := e.scorer.Score(ctx, speakers)
	if err != nil {
		// A missing collaborator downgrades the strategy, never the call.
		e.log.Warn("role scorer failed, downgrading to lexical", logger.Fields(
			"strategy", strategy,
			logger.FieldError, err.Error(),
		))
		strategy = e.fallback.Name()
		if evidence, err = e.fallback.Score(ctx, speakers); err != nil {
			return nil, err
		}
	}

	roles := ResolveRoles(evidence)
	turns = ApplyRoles(turns, roles)

	names := make([]string, len(speakers))
	for i, sp := range speakers {
		names[i] = sp.Speaker
	}

	return &Result{
		Turns:    turns,
		Roles:    roles,
		Speakers: names,
		Strategy: strategy,
		Merged:   len(built) - len(turns),
	}, nil
}

// Strategy returns the name of the configured role scorer. A Result
// whose Strategy differs signals a degraded run.
func (e *Engine) Strategy() string {
	return e.scorer.Name()
}

// aggregateSpeakers collects each real speaker's concatenated text and
// first appearance, in discovery order. The unknown-speaker sentinel is
// excluded from role scoring but its turns still flow through with a
// null role.
func aggregateSpeakers(turns []Turn) []SpeakerText {
	var (
		order []string
		texts = make(map[string]*strings.Builder)
		first = make(map[string]float64)
	)
	for _, t := range turns {
		if t.Speaker == SpeakerUnknown || t.Speaker == "" {
			continue
		}
		b, seen := texts[t.Speaker]
		if !seen {
			b = &strings.Builder{}
			texts[t.Speaker] = b
			first[t.Speaker] = t.Start
			order = append(order, t.Speaker)
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}

	speakers := make([]SpeakerText, len(order))
	for i, name := range order {
		speakers[i] = SpeakerText{
			Speaker:   name,
			Text:      texts[name].String(),
			FirstSeen: first[name],
		}
	}
	return speakers
}
