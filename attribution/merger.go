package attribution

import (
	"strings"

	"github.com/skillsenselab/callscore/util"
)

// DefaultMergeGap is the maximum silence in seconds between two turns of
// the same speaker for them to be coalesced into one.
const DefaultMergeGap = 2.0

// MergeTurns coalesces consecutive turns that share a speaker and are
// separated by at most maxGap seconds. It is a left-to-right fold that
// produces new turn values; the input slice is never mutated. Merging
// extends the end time, joins the texts with a single space, and averages
// the two confidences.
func MergeTurns(turns []Turn, maxGap float64) []Turn {
	if len(turns) == 0 {
		return nil
	}

	merged := make([]Turn, 0, len(turns))
	acc := turns[0]
	for _, t := range turns[1:] {
		if t.Speaker == acc.Speaker && t.Start-acc.End <= maxGap {
			acc = Turn{
				Speaker:    acc.Speaker,
				Start:      acc.Start,
				End:        t.End,
				Text:       joinText(acc.Text, t.Text),
				Confidence: util.Round2((acc.Confidence + t.Confidence) / 2),
				Role:       acc.Role,
				SpeakerID:  acc.SpeakerID,
			}
			continue
		}
		merged = append(merged, acc)
		acc = t
	}
	return append(merged, acc)
}

func joinText(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
