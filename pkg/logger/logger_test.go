package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, getLoggerLevel("debug"))
	assert.Equal(t, slog.LevelInfo, getLoggerLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, getLoggerLevel("warn"))
	assert.Equal(t, slog.LevelError, getLoggerLevel("error"))
	assert.Equal(t, slog.LevelDebug, getLoggerLevel("verbose"))
}

func TestLoggerFormatsMessage(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, &Config{Level: "info"}).With("claims")

	log.Debug("hidden %d", 1)
	log.Info("bound %s to %s", "25CDF5286DC38DAD", "userA")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "bound 25CDF5286DC38DAD to userA", record["msg"])
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "claims", record["component"])
}
