package pipeline

import (
	"context"
	"fmt"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/skillsenselab/callscore/attribution"
	"github.com/skillsenselab/callscore/classify"
	"github.com/skillsenselab/callscore/diarization"
	diarmock "github.com/skillsenselab/callscore/diarization/mock"
	"github.com/skillsenselab/callscore/observability"
	"github.com/skillsenselab/callscore/report"
	"github.com/skillsenselab/callscore/storage/local"
	"github.com/skillsenselab/callscore/transcription"
	"github.com/skillsenselab/callscore/transcription/mock"
)

// failingDiarizer simulates a sidecar outage.
type failingDiarizer struct{}

func (d *failingDiarizer) Name() string { return "failing" }

func (d *failingDiarizer) IsAvailable(_ context.Context) bool { return false }

func (d *failingDiarizer) Diarize(_ context.Context, _ diarization.Request) (*diarization.Response, error) {
	return nil, fmt.Errorf("diarizer down")
}

// fixedClassifier answers every request with one label.
type fixedClassifier struct {
	label string
	score float64
}

func (c *fixedClassifier) Name() string { return "fixed" }

func (c *fixedClassifier) IsAvailable(_ context.Context) bool { return true }

func (c *fixedClassifier) Classify(_ context.Context, _ classify.Request) (*classify.Result, error) {
	return &classify.Result{Labels: []string{c.label}, Scores: []float64{c.score}}, nil
}

func newTestPipeline(t *testing.T, deps Deps) *Pipeline {
	t.Helper()
	store, err := local.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	deps.Transcriber = mock.NewProvider()
	deps.Exporter = report.NewExporter(store)
	p, err := New(deps)
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	return p
}

// The offline pair of mock backends must yield a fully attributed call:
// real speakers, resolved roles, bounded confidences.
func TestPipelineProcessEndToEnd(t *testing.T) {
	p := newTestPipeline(t, Deps{Diarizer: diarmock.NewProvider()})

	rep, err := p.Process(context.Background(), "ignored.wav")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if rep.CallID == "" {
		t.Error("expected a call id")
	}
	if len(rep.Turns) == 0 {
		t.Fatal("expected turns")
	}
	if rep.Roles["Speaker 1"] != "COLLECTOR" {
		t.Errorf("Speaker 1 role = %q, want COLLECTOR", rep.Roles["Speaker 1"])
	}
	if rep.Roles["Speaker 2"] != "DEBTOR" {
		t.Errorf("Speaker 2 role = %q, want DEBTOR", rep.Roles["Speaker 2"])
	}
	for _, turn := range rep.Turns {
		if turn.Speaker == attribution.SpeakerUnknown {
			t.Errorf("turn %q attributed to the unknown sentinel", turn.Text)
		}
		if turn.Confidence <= 0 || turn.Confidence > 1 {
			t.Errorf("turn confidence = %v out of (0,1]", turn.Confidence)
		}
	}
	for key, v := range rep.Scores.Map() {
		if v < 1 || v > 5 {
			t.Errorf("score %s = %d out of [1,5]", key, v)
		}
	}
	// The scripted call quotes an amount.
	if len(rep.Entities.Amounts) == 0 {
		t.Error("expected extracted amounts")
	}
}

func TestPipelineSurvivesDiarizerFailure(t *testing.T) {
	p := newTestPipeline(t, Deps{Diarizer: &failingDiarizer{}})

	rep, err := p.Process(context.Background(), "ignored.wav")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	for _, turn := range rep.Turns {
		if turn.Speaker != "speaker_unknown" {
			t.Errorf("speaker = %q, want speaker_unknown without diarization", turn.Speaker)
		}
		if turn.Role != "" {
			t.Errorf("role = %q, want unresolved", turn.Role)
		}
	}
}

func TestPipelineDedicatedSentimentBackend(t *testing.T) {
	p := newTestPipeline(t, Deps{
		Diarizer:            diarmock.NewProvider(),
		SentimentClassifier: &fixedClassifier{label: "positive", score: 0.9},
	})

	rep, err := p.Process(context.Background(), "ignored.wav")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if rep.Sentiment.Label != "POSITIVE" {
		t.Errorf("sentiment label = %q, want POSITIVE from the dedicated backend", rep.Sentiment.Label)
	}
	if rep.Sentiment.Score != 0.9 {
		t.Errorf("sentiment score = %v, want 0.9", rep.Sentiment.Score)
	}
}

// A classifier-backed engine whose backend is gone downgrades to the
// lexical strategy; the fallback counter must record that.
func TestPipelineCountsRoleFallback(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	metrics, err := observability.NewMetrics(meter)
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	engine, err := attribution.NewEngine(attribution.Config{}, attribution.NewClassifierScorer(nil))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	p := newTestPipeline(t, Deps{
		Diarizer: diarmock.NewProvider(),
		Engine:   engine,
		Metrics:  metrics,
	})
	rep, err := p.Process(context.Background(), "ignored.wav")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if rep.Strategy != "lexical" {
		t.Fatalf("strategy = %q, want lexical after downgrade", rep.Strategy)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect metrics: %v", err)
	}
	if got := counterValue(t, rm, "callscore.roles.fallbacks"); got != 1 {
		t.Errorf("roles.fallbacks = %d, want 1", got)
	}
	if got := counterValue(t, rm, "callscore.calls.processed"); got != 1 {
		t.Errorf("calls.processed = %d, want 1", got)
	}
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is %T, want Sum[int64]", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not recorded", name)
	return 0
}

func TestPipelineRequiresTranscriber(t *testing.T) {
	store, err := local.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	if _, err := New(Deps{Exporter: report.NewExporter(store)}); err == nil {
		t.Error("expected error without transcriber")
	}
}

func TestPipelineRequiresExporter(t *testing.T) {
	if _, err := New(Deps{Transcriber: mock.NewProvider()}); err == nil {
		t.Error("expected error without exporter")
	}
}

var _ transcription.Provider = (*mock.Provider)(nil)
var _ diarization.Provider = (*diarmock.Provider)(nil)
