package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skillsenselab/callscore/analysis"
	"github.com/skillsenselab/callscore/attribution"
	"github.com/skillsenselab/callscore/classify"
	"github.com/skillsenselab/callscore/classify/bart"
	"github.com/skillsenselab/callscore/diarization"
	diarmock "github.com/skillsenselab/callscore/diarization/mock"
	"github.com/skillsenselab/callscore/diarization/pyannote"
	"github.com/skillsenselab/callscore/logger"
	"github.com/skillsenselab/callscore/observability"
	"github.com/skillsenselab/callscore/pipeline"
	"github.com/skillsenselab/callscore/provider"
	"github.com/skillsenselab/callscore/report"
	"github.com/skillsenselab/callscore/storage/local"
	"github.com/skillsenselab/callscore/transcription"
	"github.com/skillsenselab/callscore/transcription/mock"
	"github.com/skillsenselab/callscore/transcription/whisper"
	"github.com/skillsenselab/callscore/version"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <audio-file>",
	Short: "Analyze one recorded call and export its report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.GetGlobalLogger()
	log.Info("callscore starting", logger.Fields("version", version.Short()))

	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    "callscore",
			ServiceVersion: version.Get().Version,
			Environment:    cfg.Observability.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Observability.Insecure,
			SampleRate:     1.0,
		})
		if err != nil {
			return err
		}
		defer tp.Shutdown(context.Background())

		mp, err := observability.InitMeter(ctx, observability.MeterConfig{
			ServiceName:    "callscore",
			ServiceVersion: version.Get().Version,
			Environment:    cfg.Observability.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Observability.Insecure,
		})
		if err != nil {
			return err
		}
		defer mp.Shutdown(context.Background())
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}

	p, err := pipeline.New(deps)
	if err != nil {
		return err
	}

	rep, err := p.Process(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("call %s analyzed\n", rep.CallID)
	fmt.Printf("  intent:    %s\n", rep.Intent)
	fmt.Printf("  sentiment: %s\n", rep.Sentiment.Label)
	for _, key := range []string{"Listening", "Communication", "Persuasion", "Outcome"} {
		fmt.Printf("  %-13s %d/5\n", key+":", rep.Scores.Map()[key])
	}
	fmt.Printf("artifacts written to %s/%s\n", cfg.OutputDir, rep.CallID)
	return nil
}

func buildDeps(ctx context.Context) (pipeline.Deps, error) {
	var deps pipeline.Deps

	transcriber, err := buildTranscriber(ctx)
	if err != nil {
		return deps, err
	}

	store, err := local.NewStorage(cfg.OutputDir)
	if err != nil {
		return deps, err
	}

	classifier := buildClassifier(ctx)

	var scorer attribution.RoleScorer
	if cfg.Engine.RoleStrategy == "classifier" && classifier != nil {
		scorer = attribution.NewClassifierScorer(classifier)
	}
	engine, err := attribution.NewEngine(attribution.Config{MergeGap: cfg.Engine.MergeGapSeconds}, scorer)
	if err != nil {
		return deps, err
	}

	deps = pipeline.Deps{
		Transcriber:         transcriber,
		Diarizer:            buildDiarizer(ctx, transcriber.Name()),
		Classifier:          classifier,
		SentimentClassifier: buildSentimentClassifier(ctx),
		Engine:              engine,
		Exporter:            report.NewExporter(store),
		Language:            cfg.Language,
	}
	if cfg.Services.Tone.URL != "" {
		deps.Tone = analysis.NewToneAnalyzer(analysis.ToneConfig{
			BaseURL: cfg.Services.Tone.URL,
			Timeout: cfg.Services.Tone.Timeout,
		})
	}
	return deps, nil
}

// buildTranscriber initializes every ASR backend and resolves one by
// priority, so an unreachable sidecar degrades to the scripted mock
// instead of failing the run.
func buildTranscriber(ctx context.Context) (transcription.Provider, error) {
	priority := []string{cfg.ASRBackend}
	if cfg.ASRBackend != mock.ProviderName {
		priority = append(priority, mock.ProviderName)
	}

	mgr := transcription.NewManager(transcription.WithSelector(
		&provider.PrioritySelector[transcription.Provider]{Priority: priority},
	))
	mgr.Register(whisper.ProviderName, whisper.Factory())
	mgr.Register(mock.ProviderName, mock.Factory())
	logger.Debug("asr backends registered", logger.Fields("backends", mgr.Registered()))

	if err := mgr.Initialize(whisper.ProviderName, map[string]any{
		"url":      cfg.Services.Whisper.URL,
		"timeout":  cfg.Services.Whisper.Timeout,
		"language": cfg.Language,
	}); err != nil {
		return nil, err
	}
	if err := mgr.Initialize(mock.ProviderName, nil); err != nil {
		return nil, err
	}

	chosen, err := mgr.Get(ctx)
	if err != nil {
		return nil, err
	}
	if chosen.Name() != cfg.ASRBackend {
		logger.Warn("configured asr backend unavailable, falling back", logger.Fields(
			"configured", cfg.ASRBackend,
			"using", chosen.Name(),
		))
	}
	return chosen, nil
}

// buildDiarizer returns nil if no backend is reachable; the pipeline
// tolerates running without speaker intervals. A mock transcriber pairs
// with the mock diarizer so offline runs still attribute speakers.
func buildDiarizer(ctx context.Context, asrName string) diarization.Provider {
	mgr := diarization.NewManager()
	mgr.Register(pyannote.ProviderName, pyannote.Factory())
	mgr.Register(diarmock.ProviderName, diarmock.Factory())

	if asrName == mock.ProviderName {
		if err := mgr.Initialize(diarmock.ProviderName, nil); err != nil {
			logger.Warn("mock diarizer unavailable", logger.ErrorFields("diarize", err))
			return nil
		}
		prov, err := mgr.GetByName(diarmock.ProviderName)
		if err != nil {
			return nil
		}
		return prov
	}

	if err := mgr.Initialize(pyannote.ProviderName, map[string]any{
		"base_url": cfg.Services.Pyannote.URL,
		"timeout":  cfg.Services.Pyannote.Timeout,
	}); err != nil {
		logger.Warn("diarization backend init failed", logger.ErrorFields("diarize", err))
		return nil
	}
	prov, err := mgr.Get(ctx)
	if err != nil {
		logger.Warn("diarization sidecar unreachable, speaker attribution will degrade")
		return nil
	}
	return prov
}

// buildClassifier returns nil if the sidecar is unreachable; role
// inference then falls back to the lexical strategy and sentiment and
// intent fall back to keyword heuristics.
func buildClassifier(ctx context.Context) classify.Provider {
	mgr := classify.NewManager()
	mgr.Register(bart.ProviderName, bart.Factory())
	if err := mgr.Initialize(bart.ProviderName, map[string]any{
		"base_url": cfg.Services.Classifier.URL,
		"timeout":  cfg.Services.Classifier.Timeout,
	}); err != nil {
		logger.Warn("classification backend init failed", logger.ErrorFields("classify", err))
		return nil
	}
	prov, err := mgr.Get(ctx)
	if err != nil {
		logger.Warn("classification sidecar unreachable, using lexical fallbacks")
		return nil
	}
	return prov
}

// buildSentimentClassifier wires a dedicated sentiment endpoint when one
// is configured; otherwise sentiment shares the main classifier.
func buildSentimentClassifier(ctx context.Context) classify.Provider {
	if cfg.Services.Sentiment.URL == "" {
		return nil
	}
	prov := bart.NewProvider(bart.Config{
		BaseURL: cfg.Services.Sentiment.URL,
		Timeout: cfg.Services.Sentiment.Timeout,
	})
	if !prov.IsAvailable(ctx) {
		logger.Warn("sentiment sidecar unreachable, sharing the main classifier")
		return nil
	}
	return prov
}
