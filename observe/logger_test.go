package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "log line %q", line)
		out = append(out, entry)
	}
	return out
}

func TestLogger_IncludesCascadeFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf).WithCascade(CascadeMeta{
		Variant: "view",
		Site:    "german",
		Locale:  "de-DE",
		Model:   "about",
	})

	logger.Info(context.Background(), "cascade built")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	e := entries[0]
	for k, want := range map[string]string{
		"msg":             "cascade built",
		"level":           "info",
		"cascade.variant": "view",
		"cascade.site":    "german",
		"cascade.locale":  "de-DE",
		"cascade.model":   "about",
	} {
		assert.Equal(t, want, e[k], k)
	}
	assert.Contains(t, e, "timestamp")
}

func TestLogger_OmitsEmptyMeta(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerWithWriter("info", &buf).WithCascade(CascadeMeta{Variant: "query"}).Info(context.Background(), "x")

	e := decodeLines(t, &buf)[0]
	for _, k := range []string{"cascade.site", "cascade.locale", "cascade.model"} {
		assert.NotContains(t, e, k)
	}
}

func TestLogger_ErrorFieldStringified(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerWithWriter("debug", &buf).Error(context.Background(), "evaluator panicked",
		Field{Key: "error", Value: errors.New("nil map")},
		Field{Key: "key", Value: "title"},
	)

	e := decodeLines(t, &buf)[0]
	assert.Equal(t, "error", e["level"])
	assert.Equal(t, "nil map", e["error"])
	assert.Equal(t, "title", e["key"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "error", entries[1]["level"])
}

func TestLogger_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerWithWriter("debug", &buf).Debug(context.Background(), "site defaults empty")

	assert.Equal(t, "debug", decodeLines(t, &buf)[0]["level"])
}

func TestLogger_WithCascadeDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerWithWriter("info", &buf)
	_ = parent.WithCascade(CascadeMeta{Variant: "view", Site: "default"})

	parent.Info(context.Background(), "plain")
	assert.NotContains(t, decodeLines(t, &buf)[0], "cascade.variant")
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "info", LogLevel(42).String())
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"":      LevelInfo,
		"loud":  LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}
