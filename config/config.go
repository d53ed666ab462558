package config

import (
	"time"

	"github.com/skillsenselab/callscore/logger"
)

// ServiceConfig holds the endpoint of a collaborator sidecar.
type ServiceConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ServicesConfig groups the collaborator sidecars used by the pipeline.
type ServicesConfig struct {
	Whisper    ServiceConfig `yaml:"whisper" mapstructure:"whisper"`
	Pyannote   ServiceConfig `yaml:"pyannote" mapstructure:"pyannote"`
	Classifier ServiceConfig `yaml:"classifier" mapstructure:"classifier"`
	Sentiment  ServiceConfig `yaml:"sentiment" mapstructure:"sentiment"`
	Tone       ServiceConfig `yaml:"tone" mapstructure:"tone"`
}

// EngineConfig holds tuning knobs for the attribution engine.
type EngineConfig struct {
	// MergeGapSeconds is the maximum silence between same-speaker turns
	// that still merges them into one turn.
	MergeGapSeconds float64 `yaml:"merge_gap_seconds" mapstructure:"merge_gap_seconds" validate:"gte=0"`
	// RoleStrategy selects how conversational roles are inferred.
	RoleStrategy string `yaml:"role_strategy" mapstructure:"role_strategy" validate:"oneof=lexical classifier"`
}

// ObservabilityConfig holds OpenTelemetry export settings.
type ObservabilityConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint    string `yaml:"endpoint" mapstructure:"endpoint"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Insecure    bool   `yaml:"insecure" mapstructure:"insecure"`
}

// Config is the root application configuration.
type Config struct {
	ASRBackend    string              `yaml:"asr_backend" mapstructure:"asr_backend" validate:"oneof=whisper mock"`
	OutputDir     string              `yaml:"output_dir" mapstructure:"output_dir" validate:"required"`
	Language      string              `yaml:"language" mapstructure:"language"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Services      ServicesConfig      `yaml:"services" mapstructure:"services"`
	Engine        EngineConfig        `yaml:"engine" mapstructure:"engine"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.ASRBackend == "" {
		c.ASRBackend = "whisper"
	}
	if c.OutputDir == "" {
		c.OutputDir = "outputs"
	}
	if c.Engine.MergeGapSeconds == 0 {
		c.Engine.MergeGapSeconds = 2.0
	}
	if c.Engine.RoleStrategy == "" {
		c.Engine.RoleStrategy = "lexical"
	}
	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	c.Logging.ApplyDefaults()
}
