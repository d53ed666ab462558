package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/callscore/validation"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.ASRBackend != "whisper" {
		t.Errorf("expected whisper default backend, got %s", cfg.ASRBackend)
	}
	if cfg.OutputDir != "outputs" {
		t.Errorf("expected outputs default dir, got %s", cfg.OutputDir)
	}
	if cfg.Engine.MergeGapSeconds != 2.0 {
		t.Errorf("expected 2.0s merge gap default, got %v", cfg.Engine.MergeGapSeconds)
	}
	if cfg.Engine.RoleStrategy != "lexical" {
		t.Errorf("expected lexical default strategy, got %s", cfg.Engine.RoleStrategy)
	}
}

func TestDefaultsPassValidation(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if err := validation.Validate(cfg); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestValidationRejectsBadStrategy(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Engine.RoleStrategy = "majority-vote"
	if err := validation.Validate(cfg); err == nil {
		t.Error("expected validation error for unknown role strategy")
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
asr_backend: mock
output_dir: /tmp/callscore-test
engine:
  merge_gap_seconds: 1.5
  role_strategy: classifier
services:
  whisper:
    url: http://localhost:9000
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg Config
	if err := Load(&cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	cfg.ApplyDefaults()

	if cfg.ASRBackend != "mock" {
		t.Errorf("expected mock backend, got %s", cfg.ASRBackend)
	}
	if cfg.Engine.MergeGapSeconds != 1.5 {
		t.Errorf("expected 1.5 merge gap, got %v", cfg.Engine.MergeGapSeconds)
	}
	if cfg.Engine.RoleStrategy != "classifier" {
		t.Errorf("expected classifier strategy, got %s", cfg.Engine.RoleStrategy)
	}
	if cfg.Services.Whisper.URL != "http://localhost:9000" {
		t.Errorf("unexpected whisper url: %s", cfg.Services.Whisper.URL)
	}
}

func TestLoadMissingFileIsNotFatal(t *testing.T) {
	var cfg Config
	if err := Load(&cfg, WithConfigFile(""), WithEnvFile("")); err != nil {
		t.Errorf("expected no error without config file, got %v", err)
	}
}
