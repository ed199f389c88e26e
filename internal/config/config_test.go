package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CANVAS_MODEL", "CANVAS_MAX_TOKENS", "CANVAS_THEME_COLOR", "CANVAS_DATA_DIR", "CANVAS_LOG_FILE", "CANVAS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model == "" || cfg.MaxTokens <= 0 || cfg.ThemeColor == "" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.LogFile == "" {
		t.Fatalf("log file should derive from data dir")
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("model: from-file\ntheme_color: \"#111111\"\nmax_tokens: 1024\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "from-file" || cfg.MaxTokens != 1024 {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	t.Setenv("CANVAS_MODEL", "from-env")
	t.Setenv("CANVAS_MAX_TOKENS", "2048")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "from-env" || cfg.MaxTokens != 2048 {
		t.Fatalf("env overrides should win over file: %+v", cfg)
	}
	if cfg.ThemeColor != "#111111" {
		t.Fatalf("untouched file value should survive: %+v", cfg)
	}
}

func TestLoad_MalformedEnvNumberIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("CANVAS_MAX_TOKENS", "many")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxTokens != Default().MaxTokens {
		t.Fatalf("bad env number should be ignored: %+v", cfg)
	}
}

func TestTranscriptPath_UnderDataDir(t *testing.T) {
	clearEnv(t)
	t.Setenv("CANVAS_DATA_DIR", "/tmp/canvas-test")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.TranscriptPath(); got != filepath.Join("/tmp/canvas-test", "transcript.sqlite") {
		t.Fatalf("unexpected transcript path %q", got)
	}
}
