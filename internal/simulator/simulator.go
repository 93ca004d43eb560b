package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/teenpatti/internal/bot"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/randutil"
	"github.com/lox/teenpatti/internal/statistics"
)

// maxActionsPerRound guards against a policy that never ends a round.
const maxActionsPerRound = 1000

// ErrStuck is returned when a round exceeds maxActionsPerRound.
var ErrStuck = errors.New("round did not finish")

// Config holds configuration for running simulations
type Config struct {
	Rounds        int    // Rounds per table
	Tables        int    // Independent tables, one seed each
	Players       int    // Seats per table
	Hero          string // Strategy of the tracked seat 0
	OpponentType  string // Strategy of the other seats, or "mixed"
	Boot          int
	StartingChips int
	Seed          int64
	Parallelism   int
	Timeout       time.Duration
	Probabilities bot.Probabilities
	Logger        *log.Logger
}

// DefaultConfig returns a three-seat standard-policy simulation.
func DefaultConfig() Config {
	table := game.DefaultTableConfig()
	return Config{
		Rounds:        100,
		Tables:        8,
		Players:       len(table.Seats),
		Hero:          "standard",
		OpponentType:  "standard",
		Boot:          table.Boot,
		StartingChips: table.StartingChips,
		Seed:          1,
		Parallelism:   4,
		Timeout:       time.Minute,
		Probabilities: bot.DefaultProbabilities(),
		Logger:        log.Default(),
	}
}

// Simulator runs all-automated Teen Patti tables
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	if config.Tables <= 0 {
		return nil, fmt.Errorf("tables must be positive, got %d", config.Tables)
	}
	if err := config.Probabilities.Validate(); err != nil {
		return nil, err
	}
	if _, err := game.NewTable(randutil.New(config.Seed), config.tableConfig()); err != nil {
		return nil, err
	}
	for _, name := range config.strategies() {
		if _, err := bot.New(name, randutil.New(0), config.Probabilities, log.New(io.Discard)); err != nil {
			return nil, err
		}
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config, logger: config.Logger.WithPrefix("sim")}, nil
}

// OpponentInfo describes the opponents, spelling out a mixed field.
func (c Config) OpponentInfo() string {
	if c.OpponentType != "mixed" {
		return c.OpponentType
	}
	return fmt.Sprintf("mixed(%s)", strings.Join(c.strategies()[1:], ","))
}

// strategies returns one strategy name per seat, the hero first.
func (c Config) strategies() []string {
	names := make([]string, max(c.Players, 0))
	mix := createMixedOpponentTypes()
	for i := range names {
		switch {
		case i == 0:
			names[i] = c.Hero
		case c.OpponentType == "mixed":
			names[i] = mix[(i-1)%len(mix)]
		default:
			names[i] = c.OpponentType
		}
	}
	return names
}

func (c Config) tableConfig() game.TableConfig {
	seats := make([]game.SeatConfig, max(c.Players, 0))
	for i, name := range c.strategies() {
		seats[i] = game.SeatConfig{
			Name:     fmt.Sprintf("Bot %d", i),
			Kind:     game.Automated,
			Strategy: name,
		}
	}
	if len(seats) > 0 {
		seats[0].Name = "Hero"
	}
	return game.TableConfig{Seats: seats, Boot: c.Boot, StartingChips: c.StartingChips}
}

// createMixedOpponentTypes returns a fixed mix of opponent types for consistent testing
func createMixedOpponentTypes() []string {
	return []string{"standard", "random", "call", "maniac", "fold"}
}

// Run plays every table, in parallel up to Parallelism, and merges the
// results in table order so a seed always reproduces the same report.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	perTable := make([]*statistics.Statistics, s.config.Tables)
	g, ctx := errgroup.WithContext(ctx)
	if s.config.Parallelism > 0 {
		g.SetLimit(s.config.Parallelism)
	}
	for i := range s.config.Tables {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			stats, err := s.playTable(ctx, seed)
			if err != nil {
				return fmt.Errorf("table seed %d: %w", seed, err)
			}
			perTable[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, t := range perTable {
		stats.Merge(t)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	s.logger.Info("Simulation complete",
		"tables", s.config.Tables, "rounds", stats.Rounds, "void", stats.VoidRounds, "mean", stats.Mean())
	return stats, nil
}

// playTable plays the configured number of rounds on one table. Chips carry
// over between rounds; once any seat can no longer post the boot the table
// is reset to starting chips.
func (s *Simulator) playTable(ctx context.Context, seed int64) (*statistics.Statistics, error) {
	rng := randutil.New(seed)
	quiet := log.New(io.Discard)
	table, err := game.NewTable(rng, s.config.tableConfig(), game.WithLogger(quiet))
	if err != nil {
		return nil, err
	}

	bots := make([]bot.Strategy, table.NumSeats())
	for i, name := range s.config.strategies() {
		if bots[i], err = bot.New(name, rng, s.config.Probabilities, quiet); err != nil {
			return nil, err
		}
	}

	stats := &statistics.Statistics{}
	for range s.config.Rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.needsReset(table) {
			table.Reset()
		}
		result, err := s.playRound(table, bots)
		if err != nil {
			return nil, err
		}
		result.Seed = seed
		stats.Add(result)
	}
	return stats, nil
}

func (s *Simulator) needsReset(t *game.Table) bool {
	for _, seat := range t.Seats() {
		if seat.Chips < s.config.Boot {
			return true
		}
	}
	return false
}

// playRound starts a round and lets the bots play it out.
func (s *Simulator) playRound(t *game.Table, bots []bot.Strategy) (statistics.RoundResult, error) {
	const hero = 0
	total := t.TotalChips()
	before, _ := t.Seat(hero)

	if err := t.StartRound(); err != nil {
		return statistics.RoundResult{}, err
	}
	n := t.NumSeats()
	position := (hero-t.DealerSeat()+n-1)%n + 1

	actions := 0
	for t.Phase() == game.Betting {
		if actions >= maxActionsPerRound {
			return statistics.RoundResult{}, fmt.Errorf("round %d after %d actions: %w", t.RoundNumber(), actions, ErrStuck)
		}
		seat := t.ActiveSeat()
		turn, ok := bot.TakeTurn(t, seat, bots[seat])
		if !ok || !turn.Result.Applied {
			return statistics.RoundResult{}, fmt.Errorf("seat %d cannot act: %w", seat, turn.Result.Err)
		}
		actions++
	}
	if err := t.CheckInvariants(); err != nil {
		return statistics.RoundResult{}, err
	}

	after, _ := t.Seat(hero)
	outcome := t.Outcome()
	result := statistics.RoundResult{
		NetChips:  after.Chips - before.Chips,
		Round:     t.RoundNumber(),
		Position:  position,
		Outcome:   outcome.Kind,
		Won:       outcome.IsWinner(hero),
		Pot:       outcome.Pot,
		Actions:   actions,
		Conserved: t.ValidateChipConservation(total) == nil,
	}
	if outcome.Kind == game.Void {
		result.Unclaimed = outcome.Pot
	}
	for _, h := range outcome.Hands {
		if outcome.IsWinner(h.Seat) {
			result.WinningCategory = max(result.WinningCategory, h.Rank.Category)
		}
	}

	s.logger.Debug("Round finished",
		"round", t.RoundID(), "outcome", outcome.Kind, "pot", outcome.Pot, "hero_net", result.NetChips)
	return result, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, rounds int, opponentType string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	config := DefaultConfig()
	config.Rounds = rounds
	config.Tables = 1
	config.OpponentType = opponentType
	config.Seed = seed
	config.Logger = logger

	sim, err := New(config)
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx)
}
