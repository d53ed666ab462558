package attribution

import (
	"context"
	"testing"
)

func lexicalEvidence(t *testing.T, speakers []SpeakerText) []Evidence {
	t.Helper()
	ev, err := NewLexicalScorer().Score(context.Background(), speakers)
	if err != nil {
		t.Fatalf("lexical score: %v", err)
	}
	return ev
}

// Speaker 1 uses collector language, speaker 2 uses debtor language.
func TestResolveRolesKeywordEvidence(t *testing.T) {
	ev := lexicalEvidence(t, []SpeakerText{
		{Speaker: "SPEAKER_00", Text: "calling from HDFC bank regarding your loan EMI", FirstSeen: 0.0},
		{Speaker: "SPEAKER_01", Text: "I will pay tomorrow when I get my salary", FirstSeen: 5.0},
	})

	roles := ResolveRoles(ev)
	if roles["SPEAKER_00"] != RoleCollector {
		t.Errorf("SPEAKER_00 = %q, want COLLECTOR", roles["SPEAKER_00"])
	}
	if roles["SPEAKER_01"] != RoleDebtor {
		t.Errorf("SPEAKER_01 = %q, want DEBTOR", roles["SPEAKER_01"])
	}
}

// With zero keyword matches the earliest speaker becomes collector.
func TestResolveRolesFirstAppearanceFallback(t *testing.T) {
	ev := lexicalEvidence(t, []SpeakerText{
		{Speaker: "SPEAKER_01", Text: "hello how are you", FirstSeen: 0.5},
		{Speaker: "SPEAKER_00", Text: "fine thanks and you", FirstSeen: 3.0},
	})

	roles := ResolveRoles(ev)
	if roles["SPEAKER_01"] != RoleCollector {
		t.Errorf("earliest speaker = %q, want COLLECTOR", roles["SPEAKER_01"])
	}
	if roles["SPEAKER_00"] != RoleDebtor {
		t.Errorf("later speaker = %q, want DEBTOR", roles["SPEAKER_00"])
	}
}

func TestResolveRolesDebtorScoreTieBreak(t *testing.T) {
	// Equal collector scores (both zero), unequal debtor scores.
	ev := lexicalEvidence(t, []SpeakerText{
		{Speaker: "A", Text: "i will pay next week", FirstSeen: 0.0},
		{Speaker: "B", Text: "please hold on", FirstSeen: 2.0},
	})

	roles := ResolveRoles(ev)
	if roles["A"] != RoleDebtor {
		t.Errorf("A = %q, want DEBTOR (higher debtor score)", roles["A"])
	}
	if roles["B"] != RoleCollector {
		t.Errorf("B = %q, want COLLECTOR", roles["B"])
	}
}

// Role coverage and exclusivity hold for any two-speaker evidence.
func TestResolveRolesCoverageAndExclusivity(t *testing.T) {
	cases := []struct {
		name string
		a, b SpeakerText
	}{
		{"keywords both sides", SpeakerText{Speaker: "A", Text: "bank loan emi"}, SpeakerText{Speaker: "B", Text: "salary tomorrow"}},
		{"no keywords", SpeakerText{Speaker: "A", Text: "hm", FirstSeen: 1}, SpeakerText{Speaker: "B", Text: "ok", FirstSeen: 2}},
		{"same text", SpeakerText{Speaker: "A", Text: "bank", FirstSeen: 2}, SpeakerText{Speaker: "B", Text: "bank", FirstSeen: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			roles := ResolveRoles(lexicalEvidence(t, []SpeakerText{tc.a, tc.b}))
			ra, rb := roles[tc.a.Speaker], roles[tc.b.Speaker]
			if ra == RoleUnknown || rb == RoleUnknown {
				t.Fatalf("two-speaker call must assign both roles, got %q/%q", ra, rb)
			}
			if ra == rb {
				t.Errorf("both speakers got %q", ra)
			}
		})
	}
}

func TestResolveRolesNotTwoSpeakers(t *testing.T) {
	// Zero speakers.
	if roles := ResolveRoles(nil); len(roles) != 0 {
		t.Errorf("expected empty role map, got %v", roles)
	}

	// One lexically scored speaker.
	roles := ResolveRoles(lexicalEvidence(t, []SpeakerText{{Speaker: "A", Text: "bank loan"}}))
	if roles["A"] != RoleUnknown {
		t.Errorf("single lexical speaker = %q, want unresolved", roles["A"])
	}

	// Three speakers.
	roles = ResolveRoles(lexicalEvidence(t, []SpeakerText{
		{Speaker: "A", Text: "bank"}, {Speaker: "B", Text: "salary"}, {Speaker: "C", Text: "hello"},
	}))
	for sp, r := range roles {
		if r != RoleUnknown {
			t.Errorf("speaker %s = %q, want unresolved", sp, r)
		}
	}
}

func TestResolveRolesProbabilisticPair(t *testing.T) {
	roles := ResolveRoles([]Evidence{
		{Speaker: "A", AgentProbability: 0.3, Probabilistic: true},
		{Speaker: "B", AgentProbability: 0.7, Probabilistic: true},
	})
	if roles["B"] != RoleCollector || roles["A"] != RoleDebtor {
		t.Errorf("roles = %v, want B=COLLECTOR A=DEBTOR", roles)
	}

	// An exact numeric tie resolves by discovery order.
	roles = ResolveRoles([]Evidence{
		{Speaker: "A", AgentProbability: 0.5, Probabilistic: true},
		{Speaker: "B", AgentProbability: 0.5, Probabilistic: true},
	})
	if roles["A"] != RoleCollector || roles["B"] != RoleDebtor {
		t.Errorf("tie roles = %v, want A=COLLECTOR B=DEBTOR", roles)
	}
}

func TestResolveRolesSingleSpeakerThreshold(t *testing.T) {
	// 0.55 is below the single-speaker threshold.
	roles := ResolveRoles([]Evidence{
		{Speaker: "A", AgentProbability: 0.55, Probabilistic: true},
	})
	if roles["A"] != RoleUnknown {
		t.Errorf("0.55 should leave role unresolved, got %q", roles["A"])
	}

	roles = ResolveRoles([]Evidence{
		{Speaker: "A", AgentProbability: 0.85, Probabilistic: true},
	})
	if roles["A"] != RoleCollector {
		t.Errorf("0.85 should resolve collector, got %q", roles["A"])
	}
}

func TestApplyRolesPreservesSpeakerID(t *testing.T) {
	turns := []Turn{
		{Speaker: "SPEAKER_00", SpeakerID: "SPEAKER_00", Text: "a"},
		{Speaker: "SPEAKER_01", SpeakerID: "SPEAKER_01", Text: "b"},
		{Speaker: SpeakerUnknown, SpeakerID: SpeakerUnknown, Text: "c"},
	}
	roles := map[string]Role{"SPEAKER_00": RoleCollector, "SPEAKER_01": RoleDebtor}

	out := ApplyRoles(turns, roles)
	if out[0].Role != RoleCollector || out[1].Role != RoleDebtor {
		t.Errorf("roles not applied: %+v", out)
	}
	if out[2].Role != RoleUnknown {
		t.Errorf("unknown speaker role = %q, want unresolved", out[2].Role)
	}
	for i, turn := range out {
		if turn.SpeakerID != turns[i].SpeakerID {
			t.Errorf("speaker_id changed: %q -> %q", turns[i].SpeakerID, turn.SpeakerID)
		}
	}
}
