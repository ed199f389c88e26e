// Package config resolves the application configuration: defaults, then an
// optional YAML file, then environment overrides. The API key is never stored
// in the file; the anthropic client reads ANTHROPIC_API_KEY itself.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Model is the Claude model id used by the agent bridge.
	Model string `yaml:"model"`

	// MaxTokens caps a single model response.
	MaxTokens int `yaml:"max_tokens"`

	// ThemeColor is the default card accent (hex), overridable per card and
	// at runtime via the set_theme tool.
	ThemeColor string `yaml:"theme_color"`

	// DataDir holds the transcript database and the log file.
	DataDir string `yaml:"data_dir"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Model:      "claude-sonnet-4-5-20250929",
		MaxTokens:  4096,
		ThemeColor: "#2563EB",
		DataDir:    defaultDataDir(),
		LogLevel:   "info",
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".canvas"
	}
	return filepath.Join(home, ".canvas")
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// Load reads the config file (missing file is fine) and applies env
// overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults + env only.
	default:
		return Config{}, err
	}

	cfg.applyEnv()
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "canvas.log")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("CANVAS_MODEL")); v != "" {
		c.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("CANVAS_MAX_TOKENS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxTokens = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CANVAS_THEME_COLOR")); v != "" {
		c.ThemeColor = v
	}
	if v := strings.TrimSpace(os.Getenv("CANVAS_DATA_DIR")); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("CANVAS_LOG_FILE")); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("CANVAS_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
}

// TranscriptPath is the sqlite transcript database location.
func (c Config) TranscriptPath() string {
	return filepath.Join(c.DataDir, "transcript.sqlite")
}
