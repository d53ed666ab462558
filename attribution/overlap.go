package attribution

import (
	"github.com/skillsenselab/callscore/diarization"
	"github.com/skillsenselab/callscore/transcription"
)

// Overlaps accumulates per-speaker overlap durations for one transcribed
// span. It remembers the order in which speaker labels were first
// encountered so that ties resolve deterministically.
type Overlaps struct {
	totals map[string]float64
	order  []string
}

// SpeakerOverlaps computes, for one transcribed span, the total
// overlapping duration contributed by each speaker's diarized intervals.
// Intervals with zero overlap are excluded. The scan is linear in the
// number of intervals.
func SpeakerOverlaps(span transcription.Span, intervals []diarization.Interval) *Overlaps {
	o := &Overlaps{totals: make(map[string]float64)}
	for _, iv := range intervals {
		d := iv.Overlap(span.Start, span.End)
		if d <= 0 {
			continue
		}
		if _, seen := o.totals[iv.Speaker]; !seen {
			o.order = append(o.order, iv.Speaker)
		}
		o.totals[iv.Speaker] += d
	}
	return o
}

// Empty reports whether no interval overlapped the span.
func (o *Overlaps) Empty() bool {
	return len(o.order) == 0
}

// Total returns the accumulated overlap for a speaker.
func (o *Overlaps) Total(speaker string) float64 {
	return o.totals[speaker]
}

// Winner returns the speaker with the maximum accumulated overlap and
// that overlap. Ties go to the label encountered first in interval
// iteration order. It returns ("", 0) when no overlap exists.
func (o *Overlaps) Winner() (string, float64) {
	var (
		best    string
		bestDur float64
	)
	for _, speaker := range o.order {
		if d := o.totals[speaker]; d > bestDur {
			best = speaker
			bestDur = d
		}
	}
	return best, bestDur
}
