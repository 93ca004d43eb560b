package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/teenpatti/internal/fileutil"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/simulator"
)

func TestReportJSON(t *testing.T) {
	config := simulator.DefaultConfig()
	config.Rounds = 10
	config.Tables = 2
	config.Logger = log.New(io.Discard)
	sim, err := simulator.New(config)
	require.NoError(t, err)
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, fileutil.WriteJSON(path, newReport(stats, config)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var report Report
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, 20, report.Rounds)
	assert.Equal(t, "standard", report.Opponents)
	assert.Zero(t, report.ConservationBad)
	assert.Len(t, report.WinningHands, 6)

	total := 0
	for kind, n := range report.Outcomes {
		assert.NotEqual(t, game.OutcomeKind(0), kind)
		total += n
	}
	assert.Equal(t, 20, total)
}
