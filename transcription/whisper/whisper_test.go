package whisper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/callscore/transcription"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "call.wav")
	if err := os.WriteFile(path, []byte("RIFF fake audio"), 0o600); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	var gotModel, gotLanguage string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("missing audio part: %v", err)
		}
		json.NewEncoder(w).Encode(whisperResponse{
			Text:     "hello world",
			Language: "en",
			Segments: []whisperSegment{
				{Text: "hello", Start: 0.0, End: 1.5},
				{Text: "world", Start: 1.5, End: 3.0},
			},
		})
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL, Model: "base", Language: "en"})
	resp, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: writeTempAudio(t)})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if gotModel != "base" {
		t.Errorf("model field = %q, want %q", gotModel, "base")
	}
	if gotLanguage != "en" {
		t.Errorf("language field = %q, want %q", gotLanguage, "en")
	}
	if resp.Text != "hello world" {
		t.Errorf("Text = %q, want %q", resp.Text, "hello world")
	}
	if len(resp.Spans) != 2 {
		t.Fatalf("len(Spans) = %d, want 2", len(resp.Spans))
	}
	if resp.Spans[1].Start != 1.5 || resp.Spans[1].End != 3.0 {
		t.Errorf("Spans[1] = %+v, want start 1.5 end 3.0", resp.Spans[1])
	}
	if resp.Duration != 3.0 {
		t.Errorf("Duration = %v, want 3.0", resp.Duration)
	}
}

func TestTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	if _, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: writeTempAudio(t)}); err == nil {
		t.Error("Transcribe() error = nil, want error on 500")
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	p := NewProvider(Config{URL: "http://localhost:1"})
	if _, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/nonexistent/audio.wav"}); err == nil {
		t.Error("Transcribe() error = nil, want error for missing file")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if !NewProvider(Config{URL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("IsAvailable() = false, want true")
	}

	srv.Close()
	if NewProvider(Config{URL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("IsAvailable() = true after shutdown, want false")
	}
}

func TestFactoryDefaults(t *testing.T) {
	p, err := Factory()(map[string]any{})
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}
	if p.Name() != ProviderName {
		t.Errorf("Name() = %q, want %q", p.Name(), ProviderName)
	}
	wp, ok := p.(*Provider)
	if !ok {
		t.Fatalf("factory returned %T, want *Provider", p)
	}
	if wp.cfg.URL != defaultWhisperURL {
		t.Errorf("default URL = %q, want %q", wp.cfg.URL, defaultWhisperURL)
	}
	if wp.cfg.Model != defaultWhisperModel {
		t.Errorf("default model = %q, want %q", wp.cfg.Model, defaultWhisperModel)
	}
}
