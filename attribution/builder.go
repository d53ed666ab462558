package attribution

import (
	"math"

	"github.com/skillsenselab/callscore/diarization"
	"github.com/skillsenselab/callscore/transcription"
	"github.com/skillsenselab/callscore/util"
)

// fallbackConfidence is assigned when a span overlaps no interval and is
// attributed to the nearest one instead.
const fallbackConfidence = 0.5

// BuildTurns attributes each transcribed span to a speaker using the
// diarized intervals. Spans with non-positive duration are dropped.
//
// When a span overlaps at least one interval, the speaker with the
// largest accumulated overlap wins and confidence is the fraction of the
// span that speaker covers, capped at 1. When nothing overlaps, the span
// is attributed to the interval whose nearest boundary is closest, at a
// fixed reduced confidence. With no intervals at all, the sentinel
// SpeakerUnknown is used at zero confidence.
func BuildTurns(spans []transcription.Span, intervals []diarization.Interval) []Turn {
	turns := make([]Turn, 0, len(spans))
	for _, span := range spans {
		dur := span.Duration()
		if dur <= 0 {
			continue
		}

		var (
			speaker    string
			confidence float64
		)

		overlaps := SpeakerOverlaps(span, intervals)
		switch {
		case !overlaps.Empty():
			winner, winDur := overlaps.Winner()
			speaker = winner
			confidence = util.Round2(math.Min(1.0, winDur/dur))
		case len(intervals) > 0:
			speaker = nearestInterval(span, intervals).Speaker
			confidence = fallbackConfidence
		default:
			speaker = SpeakerUnknown
			confidence = 0.0
		}

		turns = append(turns, Turn{
			Speaker:    speaker,
			Start:      span.Start,
			End:        span.End,
			Text:       span.Text,
			Confidence: confidence,
			Role:       RoleUnknown,
			SpeakerID:  speaker,
		})
	}
	return turns
}

// nearestInterval picks the interval whose start or end boundary lies
// temporally closest to the corresponding span boundary.
func nearestInterval(span transcription.Span, intervals []diarization.Interval) diarization.Interval {
	best := intervals[0]
	bestDist := boundaryDistance(span, best)
	for _, iv := range intervals[1:] {
		if d := boundaryDistance(span, iv); d < bestDist {
			best = iv
			bestDist = d
		}
	}
	return best
}

func boundaryDistance(span transcription.Span, iv diarization.Interval) float64 {
	return math.Min(math.Abs(iv.Start-span.Start), math.Abs(iv.End-span.End))
}
