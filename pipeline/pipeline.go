package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/skillsenselab/callscore/analysis"
	"github.com/skillsenselab/callscore/attribution"
	"github.com/skillsenselab/callscore/classify"
	"github.com/skillsenselab/callscore/diarization"
	"github.com/skillsenselab/callscore/errors"
	"github.com/skillsenselab/callscore/logger"
	"github.com/skillsenselab/callscore/observability"
	"github.com/skillsenselab/callscore/report"
	"github.com/skillsenselab/callscore/resilience"
	"github.com/skillsenselab/callscore/scoring"
	"github.com/skillsenselab/callscore/transcription"
)

// Deps are the collaborators a pipeline needs. Transcriber and Exporter
// are required; everything else is optional and degrades gracefully.
// SentimentClassifier lets sentiment ride a dedicated backend; when nil
// it shares Classifier.
type Deps struct {
	Transcriber         transcription.Provider
	Diarizer            diarization.Provider
	Classifier          classify.Provider
	SentimentClassifier classify.Provider
	Tone                *analysis.ToneAnalyzer
	Engine              *attribution.Engine
	Exporter            *report.Exporter
	Metrics             *observability.Metrics
	Retry               resilience.RetryConfig
	Language            string
}

// Pipeline orchestrates one call's journey: transcribe, diarize,
// attribute, analyze, score, export. Each stage is traced and timed.
// The pipeline holds no per-call state, so one instance may process
// calls concurrently.
type Pipeline struct {
	deps      Deps
	sentiment *analysis.SentimentAnalyzer
	intent    *analysis.IntentClassifier
	log       *logger.Logger
}

// New creates a call analysis pipeline.
func New(deps Deps) (*Pipeline, error) {
	if deps.Transcriber == nil {
		return nil, errors.MissingField("transcriber")
	}
	if deps.Exporter == nil {
		return nil, errors.MissingField("exporter")
	}
	if deps.Engine == nil {
		engine, err := attribution.NewEngine(attribution.Config{}, nil)
		if err != nil {
			return nil, err
		}
		deps.Engine = engine
	}
	if deps.Retry.MaxAttempts == 0 {
		deps.Retry = resilience.DefaultRetryConfig()
	}
	sentimentBackend := deps.SentimentClassifier
	if sentimentBackend == nil {
		sentimentBackend = deps.Classifier
	}
	return &Pipeline{
		deps:      deps,
		sentiment: analysis.NewSentimentAnalyzer(sentimentBackend),
		intent:    analysis.NewIntentClassifier(deps.Classifier),
		log:       logger.Get("pipeline"),
	}, nil
}

// Process analyzes one audio file end to end and exports its artifacts.
func (p *Pipeline) Process(ctx context.Context, audioPath string) (*report.Report, error) {
	callID := "call-" + uuid.NewString()[:8]
	log := p.log.WithFields(logger.Fields(logger.FieldCallID, callID))
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, "pipeline.process")
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrCallID, callID)
	observability.SetSpanAttribute(ctx, observability.AttrAudioPath, audioPath)

	log.Info("processing call", logger.Fields("audio", audioPath))

	transcript, err := p.transcribe(ctx, audioPath)
	if err != nil {
		p.countFailure(ctx, "transcribe")
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	intervals := p.diarize(ctx, audioPath, log)

	attributed, err := p.attribute(ctx, transcript.Spans, intervals)
	if err != nil {
		p.countFailure(ctx, "attribute")
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	rep := p.analyze(ctx, callID, audioPath, transcript, attributed)

	if err := p.export(ctx, rep); err != nil {
		p.countFailure(ctx, "export")
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	if p.deps.Metrics != nil {
		p.deps.Metrics.CallsProcessed.Add(ctx, 1)
		p.deps.Metrics.TurnsBuilt.Add(ctx, int64(len(rep.Turns)))
		p.deps.Metrics.TurnsMerged.Add(ctx, int64(attributed.Merged))
	}
	log.Info("call processed", logger.Fields(
		"turns", len(rep.Turns),
		"intent", rep.Intent,
		logger.FieldDuration, time.Since(start).String(),
	))
	return rep, nil
}

func (p *Pipeline) transcribe(ctx context.Context, audioPath string) (*transcription.Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()
	defer p.timeStage(ctx, "transcribe", time.Now())

	resp, err := resilience.Retry(ctx, p.deps.Retry, func() (*transcription.Response, error) {
		return p.deps.Transcriber.Transcribe(ctx, transcription.Request{
			AudioPath: audioPath,
			Language:  p.deps.Language,
		})
	})
	if err != nil {
		return nil, errors.ExternalServiceError("transcription", err)
	}
	observability.SetSpanAttribute(ctx, observability.AttrSpanCount, len(resp.Spans))
	return resp, nil
}

// diarize tolerates a missing or failing diarizer; the attribution
// engine handles an empty interval set.
func (p *Pipeline) diarize(ctx context.Context, audioPath string, log *logger.Logger) []diarization.Interval {
	ctx, span := observability.StartSpan(ctx, observability.SpanDiarize)
	defer span.End()
	defer p.timeStage(ctx, "diarize", time.Now())

	if p.deps.Diarizer == nil {
		log.Warn("no diarizer configured, proceeding without speaker intervals")
		return nil
	}

	resp, err := resilience.Retry(ctx, p.deps.Retry, func() (*diarization.Response, error) {
		return p.deps.Diarizer.Diarize(ctx, diarization.Request{AudioPath: audioPath})
	})
	if err != nil {
		log.Warn("diarization failed, proceeding without speaker intervals", logger.Fields(
			logger.FieldError, err.Error(),
		))
		observability.SetSpanError(ctx, err)
		return nil
	}
	observability.SetSpanAttribute(ctx, observability.AttrSpeakerCount, resp.NumSpeakers)
	return resp.Intervals
}

func (p *Pipeline) attribute(ctx context.Context, spans []transcription.Span, intervals []diarization.Interval) (*attribution.Result, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAttribute)
	defer span.End()
	defer p.timeStage(ctx, "attribute", time.Now())

	res, err := p.deps.Engine.Attribute(ctx, spans, intervals)
	if err != nil {
		return nil, err
	}
	if p.deps.Metrics != nil && res.Strategy != p.deps.Engine.Strategy() {
		p.deps.Metrics.RoleFallbacks.Add(ctx, 1)
	}
	observability.SetSpanAttribute(ctx, observability.AttrTurnCount, len(res.Turns))
	observability.SetSpanAttribute(ctx, observability.AttrRoleStrategy, res.Strategy)
	return res, nil
}

func (p *Pipeline) analyze(ctx context.Context, callID, audioPath string, transcript *transcription.Response, attributed *attribution.Result) *report.Report {
	ctx, span := observability.StartSpan(ctx, observability.SpanAnalyze)
	defer span.End()
	defer p.timeStage(ctx, "analyze", time.Now())

	sentiment := p.sentiment.Analyze(ctx, transcript.Text)
	intent := p.intent.Classify(ctx, transcript.Text)
	entities := analysis.ExtractEntities(transcript.Text)

	tone := analysis.ToneUnknown
	if p.deps.Tone != nil {
		tone = p.deps.Tone.Analyze(ctx, audioPath)
	}

	scoreCtx, scoreSpan := observability.StartSpan(ctx, observability.SpanScore)
	scoreStart := time.Now()
	card := scoring.Score(attributed.Turns, intent, sentiment, tone)
	p.timeStage(scoreCtx, "score", scoreStart)
	scoreSpan.End()

	return &report.Report{
		CallID:     callID,
		Timestamp:  time.Now().UTC(),
		AudioPath:  audioPath,
		Transcript: transcript.Text,
		Turns:      attributed.Turns,
		Roles:      attributed.Roles,
		Strategy:   attributed.Strategy,
		Intent:     intent,
		Sentiment:  sentiment,
		Tone:       tone,
		Entities:   entities,
		Scores:     card,
	}
}

func (p *Pipeline) export(ctx context.Context, rep *report.Report) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanExport)
	defer span.End()
	defer p.timeStage(ctx, "export", time.Now())

	return p.deps.Exporter.Export(ctx, rep)
}

func (p *Pipeline) timeStage(ctx context.Context, stage string, start time.Time) {
	elapsed := time.Since(start)
	p.log.Debug("stage complete", logger.DurationFields(stage, elapsed))
	if p.deps.Metrics == nil {
		return
	}
	p.deps.Metrics.StageDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("stage", stage)))
}

func (p *Pipeline) countFailure(ctx context.Context, stage string) {
	if p.deps.Metrics == nil {
		return
	}
	p.deps.Metrics.CallsFailed.Add(ctx, 1,
		metric.WithAttributes(attribute.String("stage", stage)))
}
