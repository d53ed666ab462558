package bart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillsenselab/callscore/classify"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req bartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Text != "i will pay next week" {
			t.Errorf("request text = %q", req.Text)
		}
		if len(req.CandidateLabels) != 2 {
			t.Errorf("len(candidate_labels) = %d, want 2", len(req.CandidateLabels))
		}
		json.NewEncoder(w).Encode(bartResponse{
			Labels: []string{"promise", "refusal"},
			Scores: []float64{0.91, 0.09},
		})
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	result, err := p.Classify(context.Background(), classify.Request{
		Text:            "i will pay next week",
		CandidateLabels: []string{"promise", "refusal"},
	})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	label, score := result.Top()
	if label != "promise" {
		t.Errorf("Top() label = %q, want %q", label, "promise")
	}
	if score != 0.91 {
		t.Errorf("Top() score = %v, want 0.91", score)
	}
	if got := result.Score("refusal"); got != 0.09 {
		t.Errorf(`Score("refusal") = %v, want 0.09`, got)
	}
}

func TestClassifyBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(bartResponse{Error: "model not loaded"})
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	if _, err := p.Classify(context.Background(), classify.Request{Text: "x"}); err == nil {
		t.Error("Classify() error = nil, want backend error")
	}
}

func TestClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	if _, err := p.Classify(context.Background(), classify.Request{Text: "x"}); err == nil {
		t.Error("Classify() error = nil, want error on 502")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	if !NewProvider(Config{BaseURL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("IsAvailable() = false, want true")
	}
	srv.Close()
	if NewProvider(Config{BaseURL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("IsAvailable() = true after shutdown, want false")
	}
}
