package attribution

import (
	"context"
	"testing"

	"github.com/skillsenselab/callscore/diarization"
	"github.com/skillsenselab/callscore/transcription"
)

func newTestEngine(t *testing.T, scorer RoleScorer) *Engine {
	t.Helper()
	e, err := NewEngine(Config{}, scorer)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestEngineAttributeEndToEnd(t *testing.T) {
	spans := []transcription.Span{
		{Start: 0.0, End: 5.0, Text: "Hello, this is John calling from HDFC Bank."},
		{Start: 5.5, End: 7.0, Text: "Yes, speaking."},
		{Start: 7.5, End: 12.0, Text: "This is about your loan EMI due date."},
		{Start: 12.5, End: 16.0, Text: "I will pay next week after my salary."},
	}
	intervals := []diarization.Interval{
		{Speaker: "SPEAKER_00", Start: 0.0, End: 5.2},
		{Speaker: "SPEAKER_01", Start: 5.3, End: 7.2},
		{Speaker: "SPEAKER_00", Start: 7.3, End: 12.2},
		{Speaker: "SPEAKER_01", Start: 12.3, End: 16.5},
	}

	res, err := newTestEngine(t, nil).Attribute(context.Background(), spans, intervals)
	if err != nil {
		t.Fatalf("attribute: %v", err)
	}

	if res.Strategy != "lexical" {
		t.Errorf("strategy = %q, want lexical", res.Strategy)
	}
	if len(res.Speakers) != 2 {
		t.Fatalf("speakers = %v, want 2", res.Speakers)
	}
	if res.Roles["SPEAKER_00"] != RoleCollector {
		t.Errorf("SPEAKER_00 = %q, want COLLECTOR", res.Roles["SPEAKER_00"])
	}
	if res.Roles["SPEAKER_01"] != RoleDebtor {
		t.Errorf("SPEAKER_01 = %q, want DEBTOR", res.Roles["SPEAKER_01"])
	}
	for i, turn := range res.Turns {
		if turn.Role == RoleUnknown {
			t.Errorf("turn %d has no role; two-speaker calls must be total", i)
		}
		if turn.Confidence < 0 || turn.Confidence > 1 {
			t.Errorf("turn %d confidence %v out of [0,1]", i, turn.Confidence)
		}
	}

	// Merged turns must be time-ordered and non-overlapping.
	for i := 1; i < len(res.Turns); i++ {
		if res.Turns[i].Start < res.Turns[i-1].End {
			t.Errorf("turns %d and %d overlap", i-1, i)
		}
	}
}

func TestEngineAttributeMergesAdjacentTurns(t *testing.T) {
	spans := []transcription.Span{
		{Start: 0.0, End: 2.0, Text: "Hello,"},
		{Start: 2.5, End: 4.0, Text: "this is John."},
		{Start: 5.0, End: 6.0, Text: "Hi."},
	}
	intervals := []diarization.Interval{
		{Speaker: "SPEAKER_00", Start: 0.0, End: 4.2},
		{Speaker: "SPEAKER_01", Start: 4.8, End: 6.2},
	}

	res, err := newTestEngine(t, nil).Attribute(context.Background(), spans, intervals)
	if err != nil {
		t.Fatalf("attribute: %v", err)
	}
	if len(res.Turns) != 2 {
		t.Fatalf("expected 2 merged turns, got %d: %+v", len(res.Turns), res.Turns)
	}
	if res.Turns[0].Text != "Hello, this is John." {
		t.Errorf("merged text = %q", res.Turns[0].Text)
	}
	if res.Merged != 1 {
		t.Errorf("Merged = %d, want 1 coalesced turn", res.Merged)
	}
}

func TestEngineDowngradesToLexical(t *testing.T) {
	spans := []transcription.Span{
		{Start: 0.0, End: 2.0, Text: "calling from the bank"},
		{Start: 3.0, End: 5.0, Text: "i will pay tomorrow"},
	}
	intervals := []diarization.Interval{
		{Speaker: "A", Start: 0.0, End: 2.2},
		{Speaker: "B", Start: 2.8, End: 5.2},
	}

	// A classifier scorer with no provider fails wholesale; the engine
	// must fall back to the lexical strategy instead of failing the call.
	engine := newTestEngine(t, NewClassifierScorer(nil))
	res, err := engine.Attribute(context.Background(), spans, intervals)
	if err != nil {
		t.Fatalf("attribute: %v", err)
	}
	if res.Strategy != "lexical" {
		t.Errorf("strategy = %q, want downgraded lexical", res.Strategy)
	}
	if engine.Strategy() != "classifier" {
		t.Errorf("configured strategy = %q, want classifier", engine.Strategy())
	}
	if res.Roles["A"] != RoleCollector || res.Roles["B"] != RoleDebtor {
		t.Errorf("roles = %v", res.Roles)
	}
}

func TestEngineAttributeNoDiarization(t *testing.T) {
	spans := []transcription.Span{{Start: 0.0, End: 2.0, Text: "hello"}}

	res, err := newTestEngine(t, nil).Attribute(context.Background(), spans, nil)
	if err != nil {
		t.Fatalf("attribute: %v", err)
	}
	if len(res.Turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(res.Turns))
	}
	if res.Turns[0].Speaker != SpeakerUnknown {
		t.Errorf("speaker = %q, want %q", res.Turns[0].Speaker, SpeakerUnknown)
	}
	if res.Turns[0].Role != RoleUnknown {
		t.Errorf("role = %q, want unresolved", res.Turns[0].Role)
	}
	if len(res.Speakers) != 0 {
		t.Errorf("unknown sentinel must not count as a speaker, got %v", res.Speakers)
	}
}

func TestNewEngineRejectsNegativeGap(t *testing.T) {
	if _, err := NewEngine(Config{MergeGap: -1}, nil); err == nil {
		t.Error("expected validation error for negative merge gap")
	}
}
