package bart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skillsenselab/callscore/classify"
	"github.com/skillsenselab/callscore/provider"
)

const (
	// ProviderName is the registered name for the BART provider.
	ProviderName = "bart"

	defaultBartURL     = "http://localhost:8389"
	defaultBartTimeout = 60 * time.Second
)

// Config holds configuration for the BART classification provider.
type Config struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// Provider implements classify.Provider using a BART MNLI HTTP sidecar.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new BART classification provider.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBartURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultBartTimeout
	}
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Factory returns a provider.Factory that creates BART Provider
// instances from a generic config map.
func Factory() provider.Factory[classify.Provider] {
	return func(cfg map[string]any) (classify.Provider, error) {
		bc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			bc.BaseURL = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			bc.Timeout = v
		}
		return NewProvider(bc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the BART sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Classify sends text to the BART sidecar and returns ranked labels.
func (p *Provider) Classify(ctx context.Context, req classify.Request) (*classify.Result, error) {
	payload, err := json.Marshal(bartRequest{
		Text:            req.Text,
		CandidateLabels: req.CandidateLabels,
	})
	if err != nil {
		return nil, fmt.Errorf("encode classify request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/classify", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("classify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classify error (status %d): %s", resp.StatusCode, string(body))
	}

	var result bartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode classify response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("classify error: %s", result.Error)
	}

	return &classify.Result{
		Labels: result.Labels,
		Scores: result.Scores,
	}, nil
}

// --- internal BART API types ---

type bartRequest struct {
	Text            string   `json:"text"`
	CandidateLabels []string `json:"candidate_labels"`
}

type bartResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
	Error  string    `json:"error,omitempty"`
}
