package diarization

// Request holds parameters for a diarization call.
type Request struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// Response holds the result of a diarization call.
type Response struct {
	// Intervals contains speaker-attributed time intervals.
	Intervals []Interval `json:"intervals"`
	// NumSpeakers is the number of speakers detected.
	NumSpeakers int `json:"num_speakers"`
}

// Interval represents a speaker-attributed time range.
type Interval struct {
	// Speaker is the diarizer-assigned speaker label.
	Speaker string `json:"speaker"`
	// Start is the interval start time in seconds.
	Start float64 `json:"start"`
	// End is the interval end time in seconds.
	End float64 `json:"end"`
}

// Overlap returns the length in seconds of the intersection between the
// interval and the half-open range [start, end). A non-positive result
// means no overlap.
func (iv Interval) Overlap(start, end float64) float64 {
	o := min(iv.End, end) - max(iv.Start, start)
	if o < 0 {
		return 0
	}
	return o
}
