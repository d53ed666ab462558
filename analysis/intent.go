package analysis

import (
	"context"
	"strings"

	"github.com/skillsenselab/callscore/classify"
	"github.com/skillsenselab/callscore/logger"
	"github.com/skillsenselab/callscore/util"
)

// IntentLabels are the candidate call intents, scored zero-shot.
var IntentLabels = []string{
	"Payment Discussion",
	"Dispute",
	"Confirmation",
	"Arrangement",
	"Full Promise to Pay",
	"Partial Promise",
	"Refusal",
	"General Inquiry",
}

// IntentAmbiguous is returned for empty transcripts.
const IntentAmbiguous = "Ambiguous"

// debtKeywords signal that a call is about a payment even when the
// classifier is unsure.
var debtKeywords = []string{
	"pay", "payment", "emi", "due", "overdue", "amount",
	"rupees", "rs", "upi", "bank", "transfer",
}

const (
	maxIntentChars      = 2000
	intentScoreFloor    = 0.5
	fallbackDebtIntent  = "Payment Discussion"
	fallbackOtherIntent = "General Inquiry"
)

// IntentClassifier labels a transcript with one call intent. It prefers
// a zero-shot classification backend and degrades to a debt-keyword
// heuristic when the backend is missing or fails.
type IntentClassifier struct {
	classifier classify.Provider
	log        *logger.Logger
}

// NewIntentClassifier creates an intent classifier. A nil classifier
// selects the keyword heuristic unconditionally.
func NewIntentClassifier(c classify.Provider) *IntentClassifier {
	return &IntentClassifier{
		classifier: c,
		log:        logger.Get("analysis").WithComponent("intent"),
	}
}

// Classify returns the best intent label for the given text.
func (ic *IntentClassifier) Classify(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return IntentAmbiguous
	}

	hasDebtTerms := util.ContainsAny(strings.ToLower(text), debtKeywords)

	if ic.classifier == nil {
		return fallbackIntent(hasDebtTerms)
	}

	res, err := ic.classifier.Classify(ctx, classify.Request{
		Text:            util.TruncateRunes(text, maxIntentChars),
		CandidateLabels: IntentLabels,
	})
	if err != nil {
		ic.log.Warn("intent backend failed, using keyword fallback", logger.Fields(
			logger.FieldError, err.Error(),
		))
		return fallbackIntent(hasDebtTerms)
	}

	best, score := res.Top()
	if best == "" {
		return fallbackIntent(hasDebtTerms)
	}
	// A weak prediction without any debt vocabulary is not trustworthy.
	if score < intentScoreFloor && !hasDebtTerms {
		return fallbackOtherIntent
	}
	return best
}

func fallbackIntent(hasDebtTerms bool) string {
	if hasDebtTerms {
		return fallbackDebtIntent
	}
	return fallbackOtherIntent
}
