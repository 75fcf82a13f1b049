package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"INFO":    LogLevelInfo,
		"":        LogLevelInfo,
		" warn ":  LogLevelWarn,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewSlogLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(LogLevelWarn, "text", &buf)

	l.Info("hidden")
	l.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=v")
}

func TestNewSlogLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(LogLevelDebug, "json", &buf)
	With(l, "component", "runner").Debug("runner.turn.start")

	assert.Contains(t, buf.String(), `"msg":"runner.turn.start"`)
	assert.Contains(t, buf.String(), `"component":"runner"`)
}

func TestLogToolCall(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(LogLevelInfo, "text", &buf)

	LogToolCall(l, "A", "lookup", 5*time.Millisecond, nil)
	LogToolCall(l, "A", "lookup", time.Millisecond, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "tool.call.completed")
	assert.Contains(t, out, "tool.call.failed")
	assert.Contains(t, out, "error=boom")
}

func TestWith_NoOpPassThrough(t *testing.T) {
	l := With(NoOpLogger{}, "a", 1)
	assert.Equal(t, NoOpLogger{}, l)
	assert.Equal(t, "ERROR", LogLevelError.String())
}
