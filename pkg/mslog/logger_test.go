package mslog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleHandlerFormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.LevelInfo, &buf)

	l.Info("resolved repository", "repo", "acme/widgets", "id", 42)

	assert.Equal(t, "ℹ️  resolved repository repo=acme/widgets, id=42\n", buf.String())
}

func TestSimpleHandlerKeepsWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.LevelInfo, &buf).With("component", "worker")

	l.Warn("job failed", "kind", "delete_scratch_org")

	assert.Equal(t, "⚠️  job failed component=worker, kind=delete_scratch_org\n", buf.String())
}

func TestSimpleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.LevelWarn, &buf)

	l.Info("hidden")
	l.Debug("hidden")

	assert.Empty(t, buf.String())
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSON(slog.LevelInfo, &buf)

	l.Info("http request", "status", 202)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "http request", rec["msg"])
	assert.EqualValues(t, 202, rec["status"])
}
