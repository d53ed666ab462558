package attribution

import "encoding/json"

// Role is the conversational role inferred for a speaker in a two-party
// collection call.
type Role string

const (
	// RoleCollector marks the agent calling about the debt.
	RoleCollector Role = "COLLECTOR"
	// RoleDebtor marks the customer responding about repayment.
	RoleDebtor Role = "DEBTOR"
	// RoleUnknown marks an undetermined role. It serializes as JSON null.
	RoleUnknown Role = ""
)

// SpeakerUnknown is the sentinel speaker label used when no diarization
// data exists for a call.
const SpeakerUnknown = "speaker_unknown"

// MarshalJSON renders RoleUnknown as null so downstream consumers see an
// explicit absence rather than an empty string.
func (r Role) MarshalJSON() ([]byte, error) {
	if r == RoleUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

// UnmarshalJSON accepts null as RoleUnknown.
func (r *Role) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RoleUnknown
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = Role(s)
	return nil
}

// Turn is a speaker-attributed unit of conversation. Turns are built one
// per transcribed span, then coalesced by the merger. SpeakerID always
// preserves the diarizer's original label regardless of role outcome.
type Turn struct {
	Speaker    string  `json:"speaker"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Role       Role    `json:"role"`
	SpeakerID  string  `json:"speaker_id"`
}

// Duration returns the turn length in seconds.
func (t Turn) Duration() float64 {
	return t.End - t.Start
}
