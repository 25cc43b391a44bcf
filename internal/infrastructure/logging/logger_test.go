package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	"github.com/andrescamacho/redcycle-go/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(common.LevelWarn))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestSlogAdapter_JSONRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	NewSlogAdapter(logger).Log(common.LevelInfo, "batch processed", map[string]interface{}{
		"module":       "foam",
		"recovered_kg": 95.0,
	})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "batch processed", record["msg"])
	assert.Equal(t, "foam", record["module"])
	assert.Equal(t, 95.0, record["recovered_kg"])
}

func TestSlogAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	adapter := NewSlogAdapter(logger)

	adapter.Log(common.LevelDebug, "request handled", nil)
	assert.Empty(t, buf.String())

	adapter.Log(common.LevelWarn, "request rejected", map[string]interface{}{"error": "not enough energy"})
	assert.Contains(t, buf.String(), "request rejected")
	assert.Contains(t, buf.String(), `error="not enough energy"`)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "redcycle.log")

	logger, closer, err := New(config.LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path})
	require.NoError(t, err)
	logger.Info("session reset")
	require.NoError(t, closer.Close())

	assert.FileExists(t, path)
}
