// Package analysis derives secondary signals from a call: transcript
// sentiment, call intent, speech emotion, and regex-extracted payment
// entities. Sentiment and intent prefer a zero-shot classification
// backend and degrade to keyword heuristics; tone talks to a speech
// emotion sidecar and degrades to an unknown label.
package analysis
