package classify

// Request holds parameters for a zero-shot classification call.
type Request struct {
	// Text is the input text to classify.
	Text string `json:"text"`
	// CandidateLabels are the labels to score the text against.
	CandidateLabels []string `json:"candidate_labels"`
}

// Result holds the outcome of a zero-shot classification call.
// Labels are ordered by descending score and Scores sum to 1 across
// the candidate set.
type Result struct {
	// Labels are the candidate labels ranked best-first.
	Labels []string `json:"labels"`
	// Scores are the probabilities aligned with Labels.
	Scores []float64 `json:"scores"`
}

// Top returns the best label and its score. It returns ("", 0) for an
// empty result.
func (r *Result) Top() (string, float64) {
	if len(r.Labels) == 0 || len(r.Scores) == 0 {
		return "", 0
	}
	return r.Labels[0], r.Scores[0]
}

// Score returns the probability assigned to the given label, or 0 if
// the label was not among the candidates.
func (r *Result) Score(label string) float64 {
	for i, l := range r.Labels {
		if l == label && i < len(r.Scores) {
			return r.Scores[i]
		}
	}
	return 0
}
