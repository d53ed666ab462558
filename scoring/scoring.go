package scoring

import (
	"strings"
	"unicode"

	"github.com/skillsenselab/callscore/analysis"
	"github.com/skillsenselab/callscore/attribution"
	"github.com/skillsenselab/callscore/util"
)

// Card is the four-dimension report card for one call. Every value lies
// in [1,5].
type Card struct {
	Listening     int `json:"Listening"`
	Communication int `json:"Communication"`
	Persuasion    int `json:"Persuasion"`
	Outcome       int `json:"Outcome"`
}

// Map returns the card as a label-keyed map for export layers.
func (c Card) Map() map[string]int {
	return map[string]int{
		"Listening":     c.Listening,
		"Communication": c.Communication,
		"Persuasion":    c.Persuasion,
		"Outcome":       c.Outcome,
	}
}

const (
	baseline = 3
	minScore = 1
	maxScore = 5

	// Word count above which the call counts as substantive.
	wordCountThreshold = 80

	// Confidence floors for sentiment and emotion adjustments.
	sentimentFloor = 0.6
	emotionFloor   = 0.5
)

var (
	empathyPhrases  = []string{"i understand", "okay", "sure", "let me check", "please"}
	apologyPhrases  = []string{"sorry", "apologize"}
	positiveIntents = []string{"full promise", "arrangement", "confirmation"}

	upliftEmotions  = map[string]bool{"HAPPY": true, "EXCITED": true}
	adverseEmotions = map[string]bool{"ANGRY": true, "SAD": true, "FEAR": true}
)

// Score computes the rubric from attributed turns plus the call's
// intent, sentiment, and tone signals. Each adjustment is an independent
// commutative addition on a neutral baseline of 3, clamped to [1,5] at
// the end. Identical inputs always produce identical cards.
func Score(turns []attribution.Turn, intent string, sentiment analysis.Sentiment, tone analysis.Tone) Card {
	var sb strings.Builder
	for _, t := range turns {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	allText := sb.String()
	lowerText := strings.ToLower(allText)

	sLabel := strings.ToUpper(sentiment.Label)
	eLabel := strings.ToUpper(tone.Pretty)
	if eLabel == "" {
		eLabel = strings.ToUpper(tone.Label)
	}

	listening := baseline
	communication := baseline
	persuasion := baseline
	outcome := baseline

	// Listening: empathetic and apologetic phrasing.
	if util.ContainsAny(lowerText, empathyPhrases) {
		listening++
	}
	if util.ContainsAny(lowerText, apologyPhrases) {
		listening++
	}

	// Communication: substance and overall polarity.
	if util.WordCount(allText) > wordCountThreshold {
		communication++
	}
	switch sLabel {
	case analysis.SentimentPositive:
		communication++
	case analysis.SentimentNegative:
		communication--
	}

	// Persuasion: confident positive sentiment and high-confidence tone.
	if sLabel == analysis.SentimentPositive && sentiment.Score > sentimentFloor {
		persuasion++
	}
	if upliftEmotions[eLabel] && tone.Score > emotionFloor {
		persuasion++
	}
	if adverseEmotions[eLabel] && tone.Score > emotionFloor {
		persuasion--
	}

	// Outcome: intent category, polarity, and concrete numbers such as
	// amounts or dates quoted in the call.
	intentLower := strings.ToLower(intent)
	if util.ContainsAny(intentLower, positiveIntents) {
		outcome++
	}
	if strings.Contains(intentLower, "refusal") {
		outcome--
	}
	if sLabel == analysis.SentimentNegative {
		outcome--
	}
	if hasDigit(turns) {
		outcome++
	}

	return Card{
		Listening:     util.Clamp(listening, minScore, maxScore),
		Communication: util.Clamp(communication, minScore, maxScore),
		Persuasion:    util.Clamp(persuasion, minScore, maxScore),
		Outcome:       util.Clamp(outcome, minScore, maxScore),
	}
}

func hasDigit(turns []attribution.Turn) bool {
	for _, t := range turns {
		for _, r := range t.Text {
			if unicode.IsDigit(r) {
				return true
			}
		}
	}
	return false
}
