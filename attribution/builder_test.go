package attribution

import (
	"testing"

	"github.com/skillsenselab/callscore/diarization"
	"github.com/skillsenselab/callscore/transcription"
)

func TestBuildTurnsFullCoverage(t *testing.T) {
	spans := []transcription.Span{{Start: 1.0, End: 3.0, Text: "hello there"}}
	intervals := []diarization.Interval{{Speaker: "SPEAKER_00", Start: 0.0, End: 5.0}}

	turns := BuildTurns(spans, intervals)
	if len(turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(turns))
	}
	if turns[0].Speaker != "SPEAKER_00" {
		t.Errorf("speaker = %q, want SPEAKER_00", turns[0].Speaker)
	}
	if turns[0].Confidence != 1.0 {
		t.Errorf("fully covered span should have confidence 1.0, got %v", turns[0].Confidence)
	}
	if turns[0].SpeakerID != "SPEAKER_00" {
		t.Errorf("speaker_id = %q, want SPEAKER_00", turns[0].SpeakerID)
	}
	if turns[0].Role != RoleUnknown {
		t.Errorf("provisional turn should have no role, got %q", turns[0].Role)
	}
}

func TestBuildTurnsPartialCoverage(t *testing.T) {
	spans := []transcription.Span{{Start: 0.0, End: 4.0, Text: "x"}}
	intervals := []diarization.Interval{{Speaker: "SPEAKER_00", Start: 0.0, End: 1.0}}

	turns := BuildTurns(spans, intervals)
	if turns[0].Confidence != 0.25 {
		t.Errorf("confidence = %v, want 0.25", turns[0].Confidence)
	}
}

func TestBuildTurnsSkipsNonPositiveSpans(t *testing.T) {
	spans := []transcription.Span{
		{Start: 2.0, End: 2.0, Text: "zero"},
		{Start: 3.0, End: 1.0, Text: "negative"},
		{Start: 4.0, End: 5.0, Text: "kept"},
	}
	intervals := []diarization.Interval{{Speaker: "SPEAKER_00", Start: 0.0, End: 10.0}}

	turns := BuildTurns(spans, intervals)
	if len(turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(turns))
	}
	if turns[0].Text != "kept" {
		t.Errorf("wrong span survived: %q", turns[0].Text)
	}
}

// A span falling in a diarization gap attributes to the interval with the
// nearest boundary at fixed 0.5 confidence.
func TestBuildTurnsNearestIntervalFallback(t *testing.T) {
	spans := []transcription.Span{{Start: 9.0, End: 9.5, Text: "isolated"}}
	intervals := []diarization.Interval{
		{Speaker: "SPEAKER_00", Start: 0.0, End: 5.0},
		{Speaker: "SPEAKER_01", Start: 9.8, End: 12.0},
	}

	turns := BuildTurns(spans, intervals)
	if turns[0].Speaker != "SPEAKER_01" {
		t.Errorf("speaker = %q, want SPEAKER_01", turns[0].Speaker)
	}
	if turns[0].Confidence != 0.5 {
		t.Errorf("fallback confidence = %v, want 0.5", turns[0].Confidence)
	}
}

func TestBuildTurnsNoIntervals(t *testing.T) {
	spans := []transcription.Span{{Start: 0.0, End: 1.0, Text: "x"}}

	turns := BuildTurns(spans, nil)
	if turns[0].Speaker != SpeakerUnknown {
		t.Errorf("speaker = %q, want %q", turns[0].Speaker, SpeakerUnknown)
	}
	if turns[0].Confidence != 0.0 {
		t.Errorf("confidence = %v, want 0.0", turns[0].Confidence)
	}
}

func TestBuildTurnsConfidenceCappedAtOne(t *testing.T) {
	spans := []transcription.Span{{Start: 0.0, End: 2.0, Text: "x"}}
	// Two same-speaker intervals covering the span accumulate more
	// overlap than its duration.
	intervals := []diarization.Interval{
		{Speaker: "SPEAKER_00", Start: 0.0, End: 2.0},
		{Speaker: "SPEAKER_00", Start: 0.5, End: 1.5},
	}

	turns := BuildTurns(spans, intervals)
	if turns[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want capped 1.0", turns[0].Confidence)
	}
}
