package shared

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLoggerTo(&buf, false, true)
	logger.Debug("hidden")
	logger.Info("Round finished", "pot", 15)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Round finished", entry["msg"])
	assert.EqualValues(t, 15, entry["pot"])

	debug := SetupLoggerTo(&buf, true, false)
	assert.Equal(t, log.DebugLevel, debug.GetLevel())
}

func TestParseLevel(t *testing.T) {
	logger := SetupLoggerTo(&bytes.Buffer{}, false, false)
	require.NoError(t, ParseLevel(logger, "warn", false))
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	debug := SetupLoggerTo(&bytes.Buffer{}, true, false)
	require.NoError(t, ParseLevel(debug, "error", true))
	assert.Equal(t, log.DebugLevel, debug.GetLevel(), "--debug wins over the file")

	assert.Error(t, ParseLevel(logger, "loud", false))
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Table.Boot)

	path := filepath.Join(t.TempDir(), "teenpatti.hcl")
	require.NoError(t, os.WriteFile(path, []byte("table {\n  boot = 0\n  seed = 9\n}\n"), 0o644))
	seed := int64(7)
	cfg, err = LoadConfig(path, &seed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed, "flag overrides file")

	require.NoError(t, os.WriteFile(path, []byte("table {\n  boot = -1\n}\n"), 0o644))
	_, err = LoadConfig(path, nil)
	assert.ErrorContains(t, err, "boot")
}
