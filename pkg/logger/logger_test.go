package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewJSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "info", "json")
	log.Info("hello", "component", "test")
	log.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.Equal(t, "faq-assistant", line["service"])
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "test", line["component"])
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	newWithWriter(&buf, "debug", "TEXT").Debug("visible")
	require.Contains(t, buf.String(), "msg=visible")
	require.Contains(t, buf.String(), "service=faq-assistant")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warning"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}
