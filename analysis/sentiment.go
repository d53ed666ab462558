package analysis

import (
	"context"
	"strings"

	"github.com/skillsenselab/callscore/classify"
	"github.com/skillsenselab/callscore/logger"
	"github.com/skillsenselab/callscore/util"
)

// maxSentimentChars bounds the text submitted to the sentiment backend.
const maxSentimentChars = 512

var sentimentLabels = []string{"positive", "negative", "neutral"}

// Small polarity lexicon used when no classification backend is
// reachable. Scores are summed over word matches and the sign decides
// the label.
var (
	positiveWords = []string{"thank", "thanks", "sure", "okay", "great", "good", "yes", "happy", "fine", "appreciate"}
	negativeWords = []string{"cannot", "can't", "won't", "refuse", "problem", "angry", "late", "miss", "bad", "never"}
)

// SentimentAnalyzer derives a polarity label for a transcript. It
// prefers a zero-shot classification backend and degrades to a small
// keyword lexicon when the backend is missing or fails.
type SentimentAnalyzer struct {
	classifier classify.Provider
	log        *logger.Logger
}

// NewSentimentAnalyzer creates a sentiment analyzer. A nil classifier
// selects the lexicon fallback unconditionally.
func NewSentimentAnalyzer(c classify.Provider) *SentimentAnalyzer {
	return &SentimentAnalyzer{
		classifier: c,
		log:        logger.Get("analysis").WithComponent("sentiment"),
	}
}

// Analyze returns the polarity of the given text. Empty text is neutral
// at zero confidence.
func (a *SentimentAnalyzer) Analyze(ctx context.Context, text string) Sentiment {
	if strings.TrimSpace(text) == "" {
		return Sentiment{Label: SentimentNeutral, Score: 0.0}
	}

	if a.classifier != nil {
		res, err := a.classifier.Classify(ctx, classify.Request{
			Text:            util.TruncateRunes(text, maxSentimentChars),
			CandidateLabels: sentimentLabels,
		})
		if err == nil {
			if label, score := res.Top(); label != "" {
				return Sentiment{Label: strings.ToUpper(label), Score: score}
			}
		} else {
			a.log.Warn("sentiment backend failed, using lexicon fallback", logger.Fields(
				logger.FieldError, err.Error(),
			))
		}
	}

	return lexiconSentiment(text)
}

func lexiconSentiment(text string) Sentiment {
	doc := strings.ToLower(text)
	var score int
	for _, w := range positiveWords {
		if strings.Contains(doc, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(doc, w) {
			score--
		}
	}

	switch {
	case score > 0:
		return Sentiment{Label: SentimentPositive, Score: 0.6}
	case score < 0:
		return Sentiment{Label: SentimentNegative, Score: 0.6}
	}
	return Sentiment{Label: SentimentNeutral, Score: 0.5}
}
