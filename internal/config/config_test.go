package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"CLIMATE_QUEST_CATALOG", "CLIMATE_QUEST_JOURNAL_DIR", "CLIMATE_QUEST_LOG_FILE", "CLIMATE_QUEST_LOG_LEVEL", "CLIMATE_QUEST_SEED", "GEMINI_API_KEY", "GEMINI_MODEL"} {
		unsetenv(t, k)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.CatalogPath)
	assert.Equal(t, ".runs", cfg.JournalDir)
	assert.Equal(t, "climate-quest.log", cfg.LogFile)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.False(t, cfg.NarratorEnabled())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CLIMATE_QUEST_CATALOG", "balance.yaml")
	t.Setenv("CLIMATE_QUEST_LOG_LEVEL", "debug")
	t.Setenv("CLIMATE_QUEST_SEED", "42")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "balance.yaml", cfg.CatalogPath)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.NarratorEnabled())
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("CLIMATE_QUEST_SEED", "not-a-number")
	_, err := LoadConfig()
	require.Error(t, err)

	unsetenv(t, "CLIMATE_QUEST_SEED")
	t.Setenv("CLIMATE_QUEST_LOG_LEVEL", "chatty")
	_, err = LoadConfig()
	require.Error(t, err)
}

// unsetenv removes k for the duration of the test.
func unsetenv(t *testing.T, k string) {
	t.Helper()
	t.Setenv(k, "")
	require.NoError(t, os.Unsetenv(k))
}
