// Package attribution reconciles two independent segmentations of one
// call, transcribed text spans and speaker-labeled diarization
// intervals, into a single sequence of speaker-attributed turns, and
// infers which of two recurring speakers is the collector and which is
// the debtor.
//
// The pieces compose leaf-first: SpeakerOverlaps resolves interval
// overlap for one span, BuildTurns applies it across a call, MergeTurns
// coalesces adjacent same-speaker turns, a RoleScorer (lexical or
// classifier-backed) turns aggregated speaker text into evidence, and
// ResolveRoles applies a deterministic tie-break chain so that two-party
// calls always get a total role assignment. Engine is the stateless
// facade over the whole sequence.
package attribution
