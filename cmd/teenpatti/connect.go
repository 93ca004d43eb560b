package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lox/teenpatti/cmd/teenpatti/shared"
	"github.com/lox/teenpatti/internal/client"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/server"
	"github.com/lox/teenpatti/internal/tui"
)

// ConnectCmd plays a served table from a plain line-oriented prompt
type ConnectCmd struct {
	URL string `default:"http://localhost:8080" env:"TEENPATTI_URL" help:"Server URL"`
}

func (c *ConnectCmd) Run(g *Globals) error {
	logger := shared.SetupLogger(g.Debug, g.JSON)
	ctx := shared.SetupSignalHandler(logger)

	cl := client.NewClient(c.URL, logger)
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := cl.Connect(dialCtx); err != nil {
		return err
	}
	defer func() { _ = cl.Disconnect() }()

	go printUpdates(ctx, os.Stdout, cl)

	fmt.Println(tui.InfoStyle.Render("Commands: start, see, call, raise, show, fold, new_round, reset, quit"))
	lines := bufio.NewScanner(os.Stdin)
	for lines.Scan() {
		cmd := strings.TrimSpace(lines.Text())
		switch cmd {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		if err := cl.Command(cmd); err != nil {
			return err
		}
	}
	return lines.Err()
}

func printUpdates(ctx context.Context, w io.Writer, cl *client.Client) {
	for {
		select {
		case st := <-cl.States():
			fmt.Fprintln(w, describeState(st))
		case e := <-cl.Errors():
			fmt.Fprintln(w, tui.ErrorStyle.Render(e.Message))
		case <-ctx.Done():
			return
		}
	}
}

// describeState renders the lines a player needs after a change: the newest
// log entry, then their own seat and what they may do.
func describeState(st server.StateData) string {
	s := st.Snapshot
	var b strings.Builder
	if len(s.Log) > 0 {
		b.WriteString(s.Log[0])
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "[%s] pot %d, stake %d", s.Phase, s.Pot, s.CurrentStake)
	if me, ok := s.Seat(s.Viewer); ok {
		fmt.Fprintf(&b, ", %d chips", me.Chips)
		if len(me.Cards) > 0 {
			fmt.Fprintf(&b, " %s %s", tui.FormatCards(me.Cards), me.HandName)
		}
	}
	if s.Outcome != nil {
		fmt.Fprintf(&b, "\n%s: %s", tui.SuccessStyle.Render(s.Outcome.Title), s.Outcome.Text)
	}
	if len(s.LegalActions) > 0 {
		names := make([]string, len(s.LegalActions))
		for i, a := range s.LegalActions {
			names[i] = a.String()
		}
		fmt.Fprintf(&b, "\n%s (call %d, raise %d)",
			tui.ActionsStyle.Render("Your move: "+strings.Join(names, ", ")), s.CallAmount, s.RaiseAmount)
	} else if s.Phase == game.Betting {
		if active, ok := s.Active(); ok {
			fmt.Fprintf(&b, "\nWaiting for %s", active.Name)
		}
	}
	return b.String()
}
