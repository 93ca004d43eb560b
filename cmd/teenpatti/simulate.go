package main

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/lox/teenpatti/cmd/teenpatti/shared"
	"github.com/lox/teenpatti/internal/evaluator"
	"github.com/lox/teenpatti/internal/fileutil"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/randutil"
	"github.com/lox/teenpatti/internal/simulator"
	"github.com/lox/teenpatti/internal/statistics"
)

// SimulateCmd runs bot-only tables
type SimulateCmd struct {
	Rounds      int           `default:"1000" help:"Rounds per table"`
	Tables      int           `default:"8" help:"Independent tables, one seed each"`
	Players     int           `default:"3" help:"Seats per table"`
	Hero        string        `default:"standard" help:"Strategy of the tracked seat"`
	Opponent    string        `default:"standard" help:"Opponent strategy: standard, call, fold, maniac, random or mixed"`
	Parallelism int           `default:"4" help:"Tables played at once"`
	Timeout     time.Duration `default:"5m" help:"Give up after this long"`
	Output      string        `type:"path" help:"Also write the results as JSON to this file"`
}

// Report is the JSON form of a simulation
type Report struct {
	Seed            int64                    `json:"seed"`
	Hero            string                   `json:"hero"`
	Opponents       string                   `json:"opponents"`
	Rounds          int                      `json:"rounds"`
	Mean            float64                  `json:"mean"`
	Median          float64                  `json:"median"`
	StdDev          float64                  `json:"std_dev"`
	CI95            [2]float64               `json:"ci95"`
	ShowdownWins    int                      `json:"showdown_wins"`
	DefaultWins     int                      `json:"default_wins"`
	Outcomes        map[game.OutcomeKind]int `json:"outcomes"`
	WinningHands    map[string]int           `json:"winning_hands"`
	VoidRounds      int                      `json:"void_rounds"`
	UnclaimedChips  int                      `json:"unclaimed_chips"`
	MaxPot          int                      `json:"max_pot"`
	ConservationBad int                      `json:"conservation_failures"`
}

func newReport(stats *statistics.Statistics, config simulator.Config) Report {
	low, high := stats.ConfidenceInterval95()
	hands := make(map[string]int)
	for c := evaluator.HighCard; c <= evaluator.Trail; c++ {
		hands[c.String()] = stats.CategoryWins[c]
	}
	return Report{
		Seed:            config.Seed,
		Hero:            config.Hero,
		Opponents:       config.OpponentInfo(),
		Rounds:          stats.Rounds,
		Mean:            stats.Mean(),
		Median:          stats.Median(),
		StdDev:          stats.StdDev(),
		CI95:            [2]float64{low, high},
		ShowdownWins:    stats.ShowdownWins,
		DefaultWins:     stats.DefaultWins,
		Outcomes:        stats.Outcomes,
		WinningHands:    hands,
		VoidRounds:      stats.VoidRounds,
		UnclaimedChips:  stats.UnclaimedChips,
		MaxPot:          stats.MaxPot,
		ConservationBad: stats.ConservationBad,
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := shared.SetupLogger(g.Debug, g.JSON)

	cfg, err := shared.LoadConfig(g.Config, g.Seed)
	if err != nil {
		return err
	}
	_, seed := randutil.Resolve(cfg.Seed)

	config := simulator.Config{
		Rounds:        c.Rounds,
		Tables:        c.Tables,
		Players:       c.Players,
		Hero:          c.Hero,
		OpponentType:  c.Opponent,
		Boot:          cfg.Table.Boot,
		StartingChips: cfg.Table.StartingChips,
		Seed:          seed,
		Parallelism:   c.Parallelism,
		Timeout:       c.Timeout,
		Probabilities: cfg.Session.Probabilities,
		Logger:        logger,
	}
	sim, err := simulator.New(config)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Simulating %d tables x %d rounds", c.Tables, c.Rounds))
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("Done in %s (seed %d)", time.Since(start).Round(time.Millisecond), seed))

	if err := printSummary(stats, config); err != nil {
		return err
	}
	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, newReport(stats, config)); err != nil {
			return err
		}
		pterm.Info.Printfln("Wrote %s", c.Output)
	}
	return nil
}

// printSummary prints a comprehensive summary of simulation results
func printSummary(stats *statistics.Statistics, config simulator.Config) error {
	pterm.DefaultSection.Printfln("%s vs %s, %d rounds", config.Hero, config.OpponentInfo(), stats.Rounds)

	low, high := stats.ConfidenceInterval95()
	results := pterm.TableData{
		{"Metric", "Value"},
		{"Mean", fmt.Sprintf("%.2f chips/round", stats.Mean())},
		{"Median", fmt.Sprintf("%.2f", stats.Median())},
		{"Std Dev", fmt.Sprintf("%.2f", stats.StdDev())},
		{"95% CI", fmt.Sprintf("[%.2f, %.2f]", low, high)},
		{"Percentiles", fmt.Sprintf("P5=%.0f P25=%.0f P75=%.0f P95=%.0f",
			stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))},
		{"Wins", fmt.Sprintf("%d at a show, %d by default", stats.ShowdownWins, stats.DefaultWins)},
		{"Actions", fmt.Sprintf("%.1f per round", stats.AverageActions())},
		{"Max pot", fmt.Sprintf("%d", stats.MaxPot)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(results).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.WithLevel(2).Println("Outcomes")
	outcomes := pterm.TableData{{"Outcome", "Rounds", "Share"}}
	for _, kind := range []game.OutcomeKind{game.LastStanding, game.Showdown, game.Split, game.Void} {
		outcomes = append(outcomes, []string{
			kind.String(),
			fmt.Sprintf("%d", stats.Outcomes[kind]),
			fmt.Sprintf("%.1f%%", stats.OutcomeShare(kind)*100),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(outcomes).Render(); err != nil {
		return err
	}
	if stats.VoidRounds > 0 {
		pterm.Warning.Printfln("%d void rounds left %d chips unclaimed", stats.VoidRounds, stats.UnclaimedChips)
	}

	pterm.DefaultSection.WithLevel(2).Println("Winning hands at a show")
	var bars pterm.Bars
	for c := evaluator.Trail; c >= evaluator.HighCard; c-- {
		bars = append(bars, pterm.Bar{Label: c.String(), Value: stats.CategoryWins[c]})
	}
	if err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.WithLevel(2).Println("By position")
	positions := pterm.TableData{{"Position", "Rounds", "Mean"}}
	for pos := 1; pos <= config.Players; pos++ {
		ps := stats.PositionResults[pos]
		if ps.Rounds == 0 {
			continue
		}
		positions = append(positions, []string{
			fmt.Sprintf("%d", pos),
			fmt.Sprintf("%d", ps.Rounds),
			fmt.Sprintf("%.2f", stats.PositionMean(pos)),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(positions).Render(); err != nil {
		return err
	}

	if stats.ConservationBad == 0 {
		pterm.Success.Println("Chips conserved in every round")
	} else {
		pterm.Error.Printfln("Chip conservation failed in %d rounds", stats.ConservationBad)
	}
	return nil
}
