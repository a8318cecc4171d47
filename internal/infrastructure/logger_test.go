package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drecli/internal/config"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "dre.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: logFile,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())

	logger.Info("statement loaded", "accounts", 3)
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	entries := decodeLines(t, content)
	require.Len(t, entries, 1)
	assert.Equal(t, "statement loaded", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, float64(3), entries[0]["accounts"])

	t.Run("second call is a no-op", func(t *testing.T) {
		again, err := InitializeLogger(config.LoggingConfig{Level: "debug"})
		require.NoError(t, err)
		assert.Same(t, logger, again)
	})
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggingConfig{Level: "debug"}, &buf)

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.InfoContext(ctx, "with trace")
	logger.With("component", "test").InfoContext(ctx, "derived logger")
	logger.Info("without trace")

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 3)
	assert.Equal(t, "trace-123", entries[0]["trace_id"])
	assert.Equal(t, "trace-123", entries[1]["trace_id"])
	assert.Equal(t, "test", entries[1]["component"])
	assert.NotContains(t, entries[2], "trace_id")
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		warning bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"WARNING", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(config.LoggingConfig{Level: tt.level}, &buf)

			logger.Debug("d")
			logger.Warn("w")

			out := buf.String()
			assert.Equal(t, tt.debug, strings.Contains(out, `"msg":"d"`))
			assert.Equal(t, tt.warning, strings.Contains(out, `"msg":"w"`))
		})
	}
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 36)

	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)))
	assert.Empty(t, GetTraceID(context.Background()))
	assert.NotEqual(t, GenerateTraceID(), GenerateTraceID())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	WithComponent(NewLogger(config.LoggingConfig{}, &buf), "loader").Info("x")
	assert.Contains(t, buf.String(), `"component":"loader"`)
	assert.NotNil(t, WithComponent(nil, "x"))
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggingConfig{Format: "text"}, &buf)
	logger.InfoContext(WithTraceID(context.Background(), "t-1"), "loaded", "accounts", 3)

	out := buf.String()
	assert.Contains(t, out, "msg=loaded")
	assert.Contains(t, out, "accounts=3")
	assert.Contains(t, out, "trace_id=t-1")
}
