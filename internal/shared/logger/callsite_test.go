package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
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
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestCallSiteHandler_Threshold(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  slog.Level
		logLevel  slog.Level
		hasSource bool
	}{
		{"warn threshold drops info", slog.LevelWarn, slog.LevelInfo, false},
		{"warn threshold keeps warn", slog.LevelWarn, slog.LevelWarn, true},
		{"warn threshold keeps error", slog.LevelWarn, slog.LevelError, true},
		{"error threshold drops warn", slog.LevelError, slog.LevelWarn, false},
		{"debug threshold keeps debug", slog.LevelDebug, slog.LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			l := slog.New(newCallSiteHandler(base, tt.minLevel))

			l.Log(context.Background(), tt.logLevel, "claim archived", "claim_id", 3)

			entries := decodeLines(t, &buf)
			require.Len(t, entries, 1)
			if tt.hasSource {
				assert.Contains(t, entries[0], slog.SourceKey)
			} else {
				assert.NotContains(t, entries[0], slog.SourceKey)
			}
		})
	}
}

func TestCallSiteHandler_PointsPastWrappers(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	log := NewLoggerWithSlog(slog.New(newCallSiteHandler(base, slog.LevelWarn))).Named("ledger")

	log.Warnw("rank conflict while creating claim, retrying", "property_id", 7)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	src, ok := entries[0][slog.SourceKey].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "callsite_test.go", filepath.Base(src["file"].(string)))
	assert.Contains(t, src["function"], "TestCallSiteHandler_PointsPastWrappers")
}

func TestCallSiteHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	h := newCallSiteHandler(base, slog.LevelError)
	l := slog.New(h).With("component", "gate").WithGroup("dossier")

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	l.Error("dossier closed", "id", 12)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "gate", entries[0]["component"])
	group, ok := entries[0]["dossier"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(12), group["id"])
	assert.Contains(t, group, slog.SourceKey)
}
