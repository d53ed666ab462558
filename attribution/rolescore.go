package attribution

import (
	"context"
	"strings"

	"github.com/skillsenselab/callscore/classify"
	"github.com/skillsenselab/callscore/errors"
	"github.com/skillsenselab/callscore/logger"
	"github.com/skillsenselab/callscore/util"
)

// SpeakerText is one speaker's aggregated turn text plus the earliest
// time at which the speaker appears. FirstSeen is used only for
// tie-breaking.
type SpeakerText struct {
	Speaker   string
	Text      string
	FirstSeen float64
}

// Evidence is one speaker's role-scoring outcome. Lexical scoring fills
// CollectorScore and DebtorScore; classifier scoring fills
// AgentProbability and sets Probabilistic.
type Evidence struct {
	Speaker   string
	FirstSeen float64

	CollectorScore float64
	DebtorScore    float64

	AgentProbability float64
	Probabilistic    bool
}

// RoleScorer scores aggregated speaker texts into role evidence. The
// resolver consumes only the evidence shape, not the strategy identity.
type RoleScorer interface {
	Name() string
	Score(ctx context.Context, speakers []SpeakerText) ([]Evidence, error)
}

// Lexical keyword vocabularies. Matching is case-insensitive substring
// containment, not word-boundary regex.
var (
	collectorKeywords = map[string]float64{
		"calling from":          2,
		"bank":                  2,
		"loan":                  2,
		"emi":                   2,
		"due date":              2,
		"payment reminder":      2,
		"this call is recorded": 2,
	}

	debtorKeywords = map[string]float64{
		"i will pay": 2,
		"salary":     2,
		"next week":  2,
		"tomorrow":   2,
		"cannot pay": 2,
		"give time":  2,
	}
)

// LexicalScorer scores speakers against fixed collector and debtor
// keyword vocabularies.
type LexicalScorer struct{}

// NewLexicalScorer creates a lexical role scorer.
func NewLexicalScorer() *LexicalScorer { return &LexicalScorer{} }

// Name returns the strategy name.
func (s *LexicalScorer) Name() string { return "lexical" }

// Score sums matched keyword weights per vocabulary for each speaker.
func (s *LexicalScorer) Score(_ context.Context, speakers []SpeakerText) ([]Evidence, error) {
	evidence := make([]Evidence, len(speakers))
	for i, sp := range speakers {
		doc := strings.ToLower(sp.Text)
		evidence[i] = Evidence{
			Speaker:        sp.Speaker,
			FirstSeen:      sp.FirstSeen,
			CollectorScore: keywordScore(doc, collectorKeywords),
			DebtorScore:    keywordScore(doc, debtorKeywords),
		}
	}
	return evidence, nil
}

func keywordScore(doc string, vocab map[string]float64) float64 {
	var score float64
	for kw, weight := range vocab {
		if strings.Contains(doc, kw) {
			score += weight
		}
	}
	return score
}

const (
	// maxClassifierChars bounds the text submitted per speaker to the
	// classifier collaborator.
	maxClassifierChars = 4000

	agentLabel  = "agent/collector calling about a debt"
	debtorLabel = "customer/debtor responding about repayment"

	// neutralAgentProbability substitutes for a failed classifier call.
	neutralAgentProbability = 0.5
)

// ClassifierScorer scores speakers by asking a zero-shot classification
// collaborator how much each speaker's text resembles the agent role.
type ClassifierScorer struct {
	classifier classify.Provider
	log        *logger.Logger
}

// NewClassifierScorer creates a classifier-backed role scorer.
func NewClassifierScorer(c classify.Provider) *ClassifierScorer {
	return &ClassifierScorer{
		classifier: c,
		log:        logger.Get("attribution").WithComponent("classifier_scorer"),
	}
}

// Name returns the strategy name.
func (s *ClassifierScorer) Name() string { return "classifier" }

// Score submits each speaker's aggregated text to the classifier and
// records the probability mass assigned to the agent description. A
// per-speaker classifier failure degrades to a neutral probability
// rather than aborting the call.
func (s *ClassifierScorer) Score(ctx context.Context, speakers []SpeakerText) ([]Evidence, error) {
	if s.classifier == nil {
		return nil, errors.ServiceUnavailable("no classification provider configured")
	}

	evidence := make([]Evidence, len(speakers))
	for i, sp := range speakers {
		p := neutralAgentProbability

		res, err := s.classifier.Classify(ctx, classify.Request{
			Text:            util.TruncateRunes(sp.Text, maxClassifierChars),
			CandidateLabels: []string{agentLabel, debtorLabel},
		})
		if err != nil {
			s.log.Warn("classifier call failed, using neutral probability", logger.Fields(
				logger.FieldSpeaker, sp.Speaker,
				logger.FieldError, err.Error(),
			))
		} else {
			p = res.Score(agentLabel)
		}

		evidence[i] = Evidence{
			Speaker:          sp.Speaker,
			FirstSeen:        sp.FirstSeen,
			AgentProbability: p,
			Probabilistic:    true,
		}
	}
	return evidence, nil
}
