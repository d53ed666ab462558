package attribution

// singleSpeakerThreshold is the minimum agent probability needed to call
// a lone classifier-scored speaker a collector.
const singleSpeakerThreshold = 0.6

// ResolveRoles converts scorer evidence into a role per speaker.
//
// With exactly two scored speakers the assignment is total: lexical
// evidence compares collector scores, then debtor scores, then falls back
// to earliest first appearance; probabilistic evidence picks the higher
// agent probability, with a numeric tie resolved by discovery order. A
// lone classifier-scored speaker becomes collector only above a fixed
// probability threshold. Any other speaker count leaves every role
// unresolved.
func ResolveRoles(evidence []Evidence) map[string]Role {
	roles := make(map[string]Role, len(evidence))
	for _, ev := range evidence {
		roles[ev.Speaker] = RoleUnknown
	}

	switch len(evidence) {
	case 1:
		ev := evidence[0]
		if ev.Probabilistic && ev.AgentProbability > singleSpeakerThreshold {
			roles[ev.Speaker] = RoleCollector
		}
	case 2:
		a, b := evidence[0], evidence[1]
		if a.Probabilistic || b.Probabilistic {
			resolveProbabilistic(roles, a, b)
		} else {
			resolveLexical(roles, a, b)
		}
	}
	return roles
}

func resolveProbabilistic(roles map[string]Role, a, b Evidence) {
	// Discovery order breaks an exact numeric tie.
	if b.AgentProbability > a.AgentProbability {
		a, b = b, a
	}
	roles[a.Speaker] = RoleCollector
	roles[b.Speaker] = RoleDebtor
}

func resolveLexical(roles map[string]Role, a, b Evidence) {
	switch {
	case a.CollectorScore != b.CollectorScore:
		if b.CollectorScore > a.CollectorScore {
			a, b = b, a
		}
	case a.DebtorScore != b.DebtorScore:
		// Higher debtor score wins debtor; the other is collector.
		if a.DebtorScore > b.DebtorScore {
			a, b = b, a
		}
	default:
		// No lexical evidence at all. Earliest first appearance
		// becomes the collector.
		if b.FirstSeen < a.FirstSeen {
			a, b = b, a
		}
	}
	roles[a.Speaker] = RoleCollector
	roles[b.Speaker] = RoleDebtor
}

// ApplyRoles returns a copy of turns with each turn's role set from the
// resolved per-speaker assignment. Speakers without an entry keep
// RoleUnknown. SpeakerID is never altered.
func ApplyRoles(turns []Turn, roles map[string]Role) []Turn {
	out := make([]Turn, len(turns))
	for i, t := range turns {
		t.Role = roles[t.Speaker]
		out[i] = t
	}
	return out
}
