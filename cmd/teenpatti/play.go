package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/teenpatti/cmd/teenpatti/shared"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/randutil"
	"github.com/lox/teenpatti/internal/session"
	"github.com/lox/teenpatti/internal/tui"
)

// PlayCmd runs the terminal front-end
type PlayCmd struct {
	LogFile string `type:"path" env:"TEENPATTI_LOG_FILE" help:"Write logs to this file while the TUI owns the terminal"`
	NoColor bool   `env:"NO_COLOR" help:"Disable colours"`
	NoDelay bool   `help:"Let bots act without a thinking delay"`
}

func (c *PlayCmd) Run(g *Globals) error {
	var out io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Error("Failed to close log file", "error", err)
			}
		}()
		out = f
	}
	logger := shared.SetupLoggerTo(out, g.Debug, g.JSON)

	cfg, err := shared.LoadConfig(g.Config, g.Seed)
	if err != nil {
		return err
	}
	if cfg.Humans() == 0 {
		return fmt.Errorf("%s: play needs a human seat", g.Config)
	}
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	rng, seed := randutil.Resolve(cfg.Seed)
	logger.Info("Starting table", "seed", seed, "seats", len(cfg.Table.Seats), "boot", cfg.Table.Boot)

	table, err := game.NewTable(rng, cfg.Table, game.WithLogger(logger))
	if err != nil {
		return err
	}
	sessCfg := cfg.Session
	if c.NoDelay {
		sessCfg.MinDelay, sessCfg.MaxDelay = 0, 0
	}
	sess, err := session.New(table, session.WithConfig(sessCfg), session.WithLogger(logger))
	if err != nil {
		return err
	}
	defer sess.Close()

	model := tui.New(sess, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
