package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/teenpatti/internal/game"
)

const fullConfig = `
table {
  boot           = 10
  starting_chips = 500
  seed           = 7
}

seat "Alice" {
  kind = "human"
}

seat "Maniac" {
  strategy = "maniac"
}

seat "Steady" {
  kind     = "bot"
  strategy = "call"
}

bots {
  min_delay        = "100ms"
  max_delay        = "250ms"
  view_probability = 0
  show_probability = 0.5
}

server {
  address   = "0.0.0.0:9000"
  log_level = "debug"
}
`

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig), "teenpatti.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.Table.Boot)
	assert.Equal(t, 500, cfg.Table.StartingChips)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, []game.SeatConfig{
		{Name: "Alice", Kind: game.Human},
		{Name: "Maniac", Kind: game.Automated, Strategy: "maniac"},
		{Name: "Steady", Kind: game.Automated, Strategy: "call"},
	}, cfg.Table.Seats)
	assert.Equal(t, 1, cfg.Humans())

	assert.Equal(t, 100*time.Millisecond, cfg.Session.MinDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.Session.MaxDelay)
	assert.Equal(t, 0.0, cfg.Session.Probabilities.View, "explicit zero is kept")
	assert.Equal(t, 0.6, cfg.Session.Probabilities.Raise, "unset keeps the default")
	assert.Equal(t, 0.5, cfg.Session.Probabilities.Show)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestEmptyConfigUsesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""), "empty.hcl")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "teenpatti.hcl")
		require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o600))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Table.Boot)
	})

	t.Run("syntax error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.hcl")
		require.NoError(t, os.WriteFile(path, []byte("table {"), 0o600))
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse HCL file")
	})
}

func TestInvalidConfigs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown attribute", `table { blinds = 3 }`, "failed to decode HCL"},
		{"bad kind", `seat "X" { kind = "robot" }`, "unknown seat kind"},
		{"bad duration", `bots { min_delay = "soon" }`, "bots.min_delay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("table errors are ConfigErrors", func(t *testing.T) {
		cfg, err := Parse([]byte(`table { boot = -5 }`), "t.hcl")
		require.NoError(t, err)

		err = cfg.Validate()
		var cfgErr *game.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "boot", cfgErr.Field)
	})

	t.Run("single seat", func(t *testing.T) {
		cfg, err := Parse([]byte(`seat "Solo" {}`), "t.hcl")
		require.NoError(t, err)
		var cfgErr *game.ConfigError
		assert.True(t, errors.As(cfg.Validate(), &cfgErr))
	})

	t.Run("unknown strategy", func(t *testing.T) {
		cfg := Default()
		cfg.Table.Seats[1].Strategy = "gto"
		assert.ErrorContains(t, cfg.Validate(), "invalid strategy")
	})

	t.Run("probability out of range", func(t *testing.T) {
		cfg, err := Parse([]byte(`bots { fold_probability = 2 }`), "t.hcl")
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "fold_probability")
	})

	t.Run("log level", func(t *testing.T) {
		cfg := Default()
		cfg.Server.LogLevel = "chatty"
		assert.ErrorContains(t, cfg.Validate(), "log level")
	})
}
