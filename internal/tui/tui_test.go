package tui

import (
	"io"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/session"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, opts ...game.TestTableOption) (*Model, *session.Session) {
	t.Helper()
	logger := log.New(io.Discard)
	table := game.NewTestTable(opts...)
	s, err := session.New(table, session.WithClock(quartz.NewMock(t)), session.WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return New(s, logger), s
}

func press(m *Model, k string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return cmd
}

// drain feeds every queued session update to the model.
func drain(m *Model) {
	for {
		select {
		case msg := <-m.updates:
			m.Update(msg)
		default:
			return
		}
	}
}

func TestModelPlaysARound(t *testing.T) {
	m, s := newTestModel(t, game.WithHands("As Ah Ad", "Kc Kd 2h", "3s 4s 9d"))

	view := m.View()
	assert.Contains(t, view, "Round 0")
	assert.Contains(t, view, "s start")
	assert.NotContains(t, view, "c call", "call is not offered before a deal")

	press(m, "s")
	assert.Equal(t, game.Betting, m.Snapshot().Phase)
	view = m.View()
	assert.Contains(t, view, "Pot: 15")
	assert.Contains(t, view, "[?? ?? ??]")
	assert.Contains(t, view, "Boot posted: 5 by each player")

	require.Equal(t, 1, s.RunUntilHuman())
	drain(m)
	require.Equal(t, 0, m.Snapshot().ActiveSeat)
	view = m.View()
	assert.Contains(t, view, "Playing blind")
	assert.Contains(t, view, "c call")

	press(m, "v")
	me := m.Snapshot().Seats[0]
	require.Len(t, me.Cards, 3)
	view = m.View()
	assert.Contains(t, view, "Your hand: Trail")
	assert.Contains(t, view, "A♠")
	assert.Contains(t, view, "You sees cards")
	assert.Contains(t, view, "Call ")
	assert.NotContains(t, view, "v see cards", "cards can only be seen once")
}

func TestModelRejectedAction(t *testing.T) {
	m, _ := newTestModel(t)

	m.act(game.Call)
	assert.Contains(t, m.View(), "Can't call")

	press(m, "n")
	assert.Equal(t, game.Idle, m.Snapshot().Phase, "disabled key does nothing")
}

func TestModelReset(t *testing.T) {
	m, s := newTestModel(t)

	press(m, "s")
	require.Equal(t, game.Betting, m.Snapshot().Phase)
	_, pending := s.Pending()
	require.True(t, pending)

	press(m, "x")
	snap := m.Snapshot()
	assert.Equal(t, game.Idle, snap.Phase)
	assert.Empty(t, snap.Log)
	for _, v := range snap.Seats {
		assert.Equal(t, 1000, v.Chips)
	}
	_, pending = s.Pending()
	assert.False(t, pending, "reset cancels the scheduled bot turn")
	assert.Contains(t, m.View(), "Table reset")
}

func TestModelShowsOutcome(t *testing.T) {
	m, s := newTestModel(t, game.WithPlayers("You", "Bot 1"), game.WithHands("As Ah Ad", "Kc Kd 2h"))

	press(m, "s")
	s.RunUntilHuman()
	drain(m)

	snap := m.Snapshot()
	if snap.Phase == game.Betting {
		require.Equal(t, 0, snap.ActiveSeat)
		press(m, "w")
	}
	s.RunUntilHuman()
	drain(m)

	snap = m.Snapshot()
	require.Equal(t, game.Finished, snap.Phase)
	require.NotNil(t, snap.Outcome)
	view := m.View()
	assert.Contains(t, view, snap.Outcome.Title)
	assert.Contains(t, view, "s play again")
	assert.Contains(t, view, "n new round")

	press(m, "n")
	assert.Equal(t, game.Idle, m.Snapshot().Phase)
}

func TestModelHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "?")
	assert.Contains(t, m.View(), "x reset table")

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestPushDropsOldestWhenFull(t *testing.T) {
	m, _ := newTestModel(t)
	for i := range stateBuffer + 5 {
		m.push(nil, game.Snapshot{RoundNumber: i})
	}
	assert.Len(t, m.updates, stateBuffer)

	var last game.Snapshot
	for len(m.updates) > 0 {
		last = (<-m.updates).Snapshot
	}
	assert.Equal(t, stateBuffer+4, last.RoundNumber)
}
