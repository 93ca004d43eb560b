package simulator

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/teenpatti/internal/evaluator"
	"github.com/lox/teenpatti/internal/game"
)

func testConfig() Config {
	config := DefaultConfig()
	config.Rounds = 20
	config.Tables = 3
	config.Logger = log.New(io.Discard)
	return config
}

func TestNew(t *testing.T) {
	simulator, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if simulator.config.Rounds != 20 {
		t.Errorf("Expected 20 rounds, got %d", simulator.config.Rounds)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no rounds", func(c *Config) { c.Rounds = 0 }, "rounds must be positive"},
		{"no tables", func(c *Config) { c.Tables = 0 }, "tables must be positive"},
		{"one player", func(c *Config) { c.Players = 1 }, "seats"},
		{"unknown opponent", func(c *Config) { c.OpponentType = "shark" }, "unknown bot strategy"},
		{"bad boot", func(c *Config) { c.Boot = 0 }, "boot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.mutate(&config)
			_, err := New(config)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRunSimulation_Convenience(t *testing.T) {
	stats, err := RunSimulation(context.Background(), 10, "call", 12345, log.New(io.Discard))
	if err != nil {
		t.Fatalf("RunSimulation failed: %v", err)
	}
	if stats.Rounds != 10 {
		t.Errorf("Expected 10 rounds, got %d", stats.Rounds)
	}
}

func TestSimulator_Run(t *testing.T) {
	simulator, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	stats, err := simulator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Rounds != 60 {
		t.Errorf("Expected 60 rounds (3 tables x 20), got %d", stats.Rounds)
	}
	if stats.ConservationBad != 0 {
		t.Errorf("Expected chips to be conserved, %d rounds failed", stats.ConservationBad)
	}
	if stats.Actions == 0 {
		t.Error("Expected some betting actions")
	}

	outcomes := 0
	for _, n := range stats.Outcomes {
		outcomes += n
	}
	if outcomes != stats.Rounds {
		t.Errorf("Expected %d outcomes, got %d", stats.Rounds, outcomes)
	}
}

func TestSimulator_Run_Deterministic(t *testing.T) {
	run := func(parallelism int) []float64 {
		config := testConfig()
		config.Parallelism = parallelism
		simulator, err := New(config)
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		stats, err := simulator.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		return stats.Values
	}

	serial := run(1)
	parallel := run(3)
	if len(serial) != len(parallel) {
		t.Fatalf("Expected equal lengths, got %d and %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("Result %d differs: %f vs %f", i, serial[i], parallel[i])
		}
	}
}

func TestSimulator_Run_FoldBots(t *testing.T) {
	config := testConfig()
	config.OpponentType = "fold"
	config.Hero = "fold"
	simulator, err := New(config)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	stats, err := simulator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Outcomes[game.LastStanding] != stats.Rounds {
		t.Errorf("Expected every round to end by folds, got %v", stats.Outcomes)
	}
	if stats.CategoryWins != [evaluator.Trail + 1]int{} {
		t.Errorf("Expected no revealed winners, got %v", stats.CategoryWins)
	}
	if stats.ShowdownWins != 0 {
		t.Errorf("Expected no showdown wins, got %d", stats.ShowdownWins)
	}
}

func TestSimulator_Run_CallBotsReachShowdown(t *testing.T) {
	config := testConfig()
	config.Hero = "call"
	config.OpponentType = "call"
	config.Players = 2
	simulator, err := New(config)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	stats, err := simulator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	revealed := stats.Outcomes[game.Showdown] + stats.Outcomes[game.Split]
	if revealed == 0 {
		t.Errorf("Expected heads-up callers to reach a show, got %v", stats.Outcomes)
	}
	categories := 0
	for _, n := range stats.CategoryWins {
		categories += n
	}
	if categories < stats.Outcomes[game.Showdown] {
		t.Errorf("Expected a winning category per showdown, got %d for %d", categories, stats.Outcomes[game.Showdown])
	}
}

func TestSimulator_Run_MixedOpponents(t *testing.T) {
	config := testConfig()
	config.OpponentType = "mixed"
	config.Players = 6
	if got := config.OpponentInfo(); got != "mixed(standard,random,call,maniac,fold)" {
		t.Errorf("Unexpected opponent info %q", got)
	}

	simulator, err := New(config)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	stats, err := simulator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	for pos := 1; pos <= config.Players; pos++ {
		if stats.PositionResults[pos].Rounds == 0 {
			t.Errorf("Expected the hero to play from position %d", pos)
		}
	}
}

func TestSimulator_Run_Cancelled(t *testing.T) {
	simulator, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = simulator.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSimulator_Run_Timeout(t *testing.T) {
	config := testConfig()
	config.Rounds = 1_000_000
	config.Timeout = time.Millisecond
	simulator, err := New(config)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = simulator.Run(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected a deadline error, got %v", err)
	}
}

func BenchmarkSimulator_Run(b *testing.B) {
	config := testConfig()
	config.Tables = 1
	simulator, err := New(config)
	if err != nil {
		b.Fatalf("New() failed: %v", err)
	}
	for b.Loop() {
		if _, err := simulator.Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
