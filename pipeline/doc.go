// Package pipeline orchestrates the end-to-end analysis of one call:
// transcription, diarization, turn attribution and role inference,
// signal analysis, rubric scoring, and artifact export. Collaborator
// failures degrade the result rather than failing the call wherever the
// downstream stages can cope.
package pipeline
