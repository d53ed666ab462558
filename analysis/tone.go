package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/skillsenselab/callscore/logger"
)

// emoPretty maps raw emotion model labels to display names.
var emoPretty = map[string]string{
	"ang": "Angry",
	"hap": "Happy",
	"neu": "Neutral",
	"sad": "Sad",
	"fea": "Fear",
	"exc": "Excited",
}

const (
	defaultToneURL     = "http://localhost:8390"
	defaultToneTimeout = 120 * time.Second
)

// ToneConfig holds configuration for the speech emotion sidecar.
type ToneConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// ToneAnalyzer derives a speech emotion label from call audio via an
// HTTP sidecar. Failures degrade to ToneUnknown rather than erroring;
// the rubric treats an unknown tone as no evidence.
type ToneAnalyzer struct {
	cfg    ToneConfig
	client *http.Client
	log    *logger.Logger
}

// NewToneAnalyzer creates a tone analyzer.
func NewToneAnalyzer(cfg ToneConfig) *ToneAnalyzer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultToneURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultToneTimeout
	}
	return &ToneAnalyzer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    logger.Get("analysis").WithComponent("tone"),
	}
}

// IsAvailable checks if the emotion sidecar is reachable.
func (a *ToneAnalyzer) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Analyze sends the call audio to the emotion sidecar and returns the
// dominant emotion. Any failure yields ToneUnknown.
func (a *ToneAnalyzer) Analyze(ctx context.Context, audioPath string) Tone {
	tone, err := a.analyze(ctx, audioPath)
	if err != nil {
		a.log.Warn("tone analysis failed", logger.Fields(
			logger.FieldError, err.Error(),
		))
		return ToneUnknown
	}
	return tone
}

func (a *ToneAnalyzer) analyze(ctx context.Context, audioPath string) (Tone, error) {
	audioData, err := os.ReadFile(audioPath)
	if err != nil {
		return ToneUnknown, fmt.Errorf("read audio file: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "audio.wav")
	if err != nil {
		return ToneUnknown, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audioData); err != nil {
		return ToneUnknown, fmt.Errorf("write audio data: %w", err)
	}
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+"/emotion", &buf)
	if err != nil {
		return ToneUnknown, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return ToneUnknown, fmt.Errorf("emotion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return ToneUnknown, fmt.Errorf("emotion error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
		Error string  `json:"error,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ToneUnknown, fmt.Errorf("decode emotion response: %w", err)
	}
	if result.Error != "" {
		return ToneUnknown, fmt.Errorf("emotion error: %s", result.Error)
	}

	return Tone{
		Label:  result.Label,
		Pretty: prettyEmotion(result.Label),
		Score:  result.Score,
	}, nil
}

func prettyEmotion(label string) string {
	if pretty, ok := emoPretty[strings.ToLower(label)]; ok {
		return pretty
	}
	return label
}
