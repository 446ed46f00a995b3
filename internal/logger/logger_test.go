package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	prevTimeFormat := zerolog.TimeFieldFormat
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		zerolog.TimeFieldFormat = prevTimeFormat
		_ = Setup(DefaultConfig())
	})
}

func TestSetupJSONFile(t *testing.T) {
	restoreGlobals(t)

	path := filepath.Join(t.TempDir(), "rankocr.log")
	require.NoError(t, Setup(LogConfig{
		Level:      "debug",
		Format:     "json",
		TimeFormat: time.RFC3339,
		Output:     path,
	}))

	log := WithComponent("rank")
	log.Debug().Int("error_count", 3).Msg("documents ranked")
	fieldLog := WithFields(map[string]interface{}{"ranker": "simple"})
	fieldLog.Info().Msg("lookup")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `"component":"rank"`)
	assert.Contains(t, out, `"error_count":3`)
	assert.Contains(t, out, `"message":"documents ranked"`)
	assert.Contains(t, out, `"ranker":"simple"`)
}

func TestSetupLevelFilters(t *testing.T) {
	restoreGlobals(t)

	path := filepath.Join(t.TempDir(), "rankocr.log")
	require.NoError(t, Setup(LogConfig{Level: "warn", Format: "json", Output: path}))

	log := GetLogger()
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "shown")
}

func TestSetupInvalidLevel(t *testing.T) {
	restoreGlobals(t)

	assert.Error(t, Setup(LogConfig{Level: "loud", Format: "json", Output: "stderr"}))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
}
