package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MFA.Dictionary != "english_us_arpa" || cfg.MFA.AcousticModel != "english_us_arpa" {
		t.Fatalf("unexpected model defaults: %+v", cfg.MFA)
	}
	if cfg.MFA.Beam != 100 || cfg.MFA.RetryBeam != 400 {
		t.Fatalf("unexpected beam defaults: %+v", cfg.MFA)
	}
	if cfg.Audio.MinSampleRate != 16000 || cfg.Audio.MaxChannels != 1 {
		t.Fatalf("unexpected audio defaults: %+v", cfg.Audio)
	}
	if cfg.Paths.Outputs != "outputs" {
		t.Fatalf("unexpected outputs path: %q", cfg.Paths.Outputs)
	}
	if cfg.TextGridDir() != filepath.Join("outputs", "textgrids") {
		t.Fatalf("unexpected textgrid dir: %q", cfg.TextGridDir())
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `pipeline:
  log_level: debug
paths:
  outputs: /tmp/out
mfa:
  dictionary: german_mfa
  beam: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Pipeline.LogLvl != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.Pipeline.LogLvl)
	}
	if cfg.Paths.Outputs != "/tmp/out" {
		t.Fatalf("unexpected outputs: %q", cfg.Paths.Outputs)
	}
	if cfg.MFA.Dictionary != "german_mfa" || cfg.MFA.Beam != 10 {
		t.Fatalf("file values not applied: %+v", cfg.MFA)
	}
	// untouched keys keep their defaults
	if cfg.MFA.RetryBeam != 400 {
		t.Fatalf("default lost: %+v", cfg.MFA)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("MFA_MFA_BEAM", "55")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MFA.Beam != 55 {
		t.Fatalf("env override not applied: %+v", cfg.MFA)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
