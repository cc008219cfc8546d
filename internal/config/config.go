package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	CatalogPath  string `env:"CLIMATE_QUEST_CATALOG"`
	JournalDir   string `env:"CLIMATE_QUEST_JOURNAL_DIR" envDefault:".runs"`
	LogFile      string `env:"CLIMATE_QUEST_LOG_FILE"    envDefault:"climate-quest.log"`
	LogLevel     string `env:"CLIMATE_QUEST_LOG_LEVEL"   envDefault:"info"`
	Seed         uint64 `env:"CLIMATE_QUEST_SEED"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL"              envDefault:"gemini-2.5-flash"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NarratorEnabled reports whether a Gemini key was supplied.
func (c *Config) NarratorEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid CLIMATE_QUEST_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
