package analysis

// Sentiment polarity labels.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// Sentiment is a polarity label with its confidence.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Tone is a speech emotion label with its confidence. Label is the raw
// model output; Pretty is the human-readable form.
type Tone struct {
	Label  string  `json:"label"`
	Pretty string  `json:"label_pretty"`
	Score  float64 `json:"score"`
}

// ToneUnknown is returned when no emotion backend is available or the
// call fails.
var ToneUnknown = Tone{Label: "UNKNOWN", Pretty: "UNKNOWN", Score: 0.0}

// Entities holds the regex-extracted mentions from a call transcript.
type Entities struct {
	Amounts []string `json:"amounts"`
	Dates   []string `json:"dates"`
	Modes   []string `json:"modes"`
}
