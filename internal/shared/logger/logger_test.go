package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofoncier/geofoncier/internal/shared/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInit_JSONFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.log")
	require.NoError(t, Init(&config.LoggerConfig{Level: "warn", Format: "json", OutputPath: path}, "release"))
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })

	log := WithComponent("ledger")
	log.Infow("dropped below level", "claim_id", 1)
	log.Warnw("rank conflict while creating claim, retrying", "property_id", 7, "attempt", 2)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "rank conflict while creating claim, retrying", entry["msg"])
	assert.Equal(t, float64(7), entry["property_id"])
	assert.Equal(t, "ledger", entry["component"])
	require.Contains(t, entry, slog.SourceKey, "warn records carry their call site")
	src := entry[slog.SourceKey].(map[string]any)
	assert.Equal(t, "logger_test.go", filepath.Base(src["file"].(string)))
}

func TestInit_SourceLevelFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.log")
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path, SourceLevel: "error"}, "release"))
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })

	log := WithComponent("gate")
	log.Warnw("closed dossier rejected mutation", "dossier_id", 4)
	log.Errorw("failed to record audit event", "dossier_id", 4)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	var warn, failure map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &warn))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failure))
	assert.NotContains(t, warn, slog.SourceKey)
	assert.Contains(t, failure, slog.SourceKey)
}

func TestNop(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.With("k", "v").Named("x").Errorw("ignored", "error", assert.AnError)
	})
}

func TestNamed_JoinsNestedNames(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithSlog(slog.New(slog.NewJSONHandler(&buf, nil)))

	base.With("dossier_id", 4).Named("ledger").Named("gate").Infow("closed dossier rejected mutation", "operation", "create_claim")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ledger.gate", entry["logger"])
	assert.Equal(t, float64(4), entry["dossier_id"])
	assert.Equal(t, "create_claim", entry["operation"])
}
