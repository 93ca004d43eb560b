package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/session"
)

const stateBuffer = 16

// StateMsg carries a table change pushed by the session, usually a bot move.
type StateMsg struct {
	Event    game.Event
	Snapshot game.Snapshot
}

// Model is the Bubble Tea model for a single human seat playing against the
// session's automated seats.
type Model struct {
	session *session.Session
	logger  *log.Logger
	updates chan StateMsg

	snap   game.Snapshot
	status string
	failed bool

	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	width    int
	height   int
	quitting bool
}

// New creates a model bound to s. It subscribes to the session immediately,
// so create it before starting the Bubble Tea program.
func New(s *session.Session, logger *log.Logger) *Model {
	vp := viewport.New(40, game.ActionLogSize)
	m := &Model{
		session:     s,
		logger:      logger.WithPrefix("tui"),
		updates:     make(chan StateMsg, stateBuffer),
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
		status:      "Press s to deal a round",
	}
	s.Subscribe(m.push)
	m.refresh(s.Snapshot())
	return m
}

// push runs under the session lock. It never blocks: when the buffer is
// full the oldest update is dropped, since every update carries a complete
// snapshot.
func (m *Model) push(e game.Event, snap game.Snapshot) {
	msg := StateMsg{Event: e, Snapshot: snap}
	for {
		select {
		case m.updates <- msg:
			return
		default:
		}
		select {
		case <-m.updates:
		default:
		}
	}
}

func waitForState(ch <-chan StateMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Init starts listening for session updates.
func (m *Model) Init() tea.Cmd {
	return waitForState(m.updates)
}

// Update handles key presses, window resizes and session updates.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case StateMsg:
		m.refresh(msg.Snapshot)
		if end, ok := msg.Event.(game.RoundEndEvent); ok {
			m.setStatus(end.Outcome.Title, false)
		}
		cmds = append(cmds, waitForState(m.updates))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logViewport.Width = max(msg.Width-4, 10)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Start):
			m.lifecycle("Round started", m.session.StartRound())
		case key.Matches(msg, m.keys.NewRound):
			m.lifecycle("Ready for a new round", m.session.NewRound())
		case key.Matches(msg, m.keys.Reset):
			m.session.Reset()
			m.lifecycle("Table reset", nil)
		case key.Matches(msg, m.keys.See):
			m.act(game.SeeCards)
		case key.Matches(msg, m.keys.Fold):
			m.act(game.Fold)
		case key.Matches(msg, m.keys.Call):
			m.act(game.Call)
		case key.Matches(msg, m.keys.Raise):
			m.act(game.Raise)
		case key.Matches(msg, m.keys.Show):
			m.act(game.RequestShow)
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) lifecycle(ok string, err error) {
	if err != nil {
		m.logger.Debug("Command rejected", "error", err)
		m.setStatus(err.Error(), true)
	} else {
		m.setStatus(ok, false)
	}
	m.refresh(m.session.Snapshot())
}

func (m *Model) act(action game.Action) {
	res := m.session.Act(action)
	if !res.Applied {
		m.logger.Debug("Action rejected", "action", action, "error", res.Err)
		m.setStatus(fmt.Sprintf("Can't %s: %v", action, res.Err), true)
	} else {
		m.setStatus("", false)
	}
	m.refresh(m.session.Snapshot())
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

func (m *Model) refresh(snap game.Snapshot) {
	m.snap = snap
	m.keys.sync(snap)
	m.logViewport.SetContent(strings.Join(snap.Log, "\n"))
	m.logViewport.GotoTop()
}

// Snapshot returns the state the model last rendered.
func (m *Model) Snapshot() game.Snapshot {
	return m.snap
}

// View renders the table.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(PaneStyle.Render(m.renderSeats()))
	b.WriteString("\n")
	if hand := m.renderHand(); hand != "" {
		b.WriteString(hand)
		b.WriteString("\n")
	}
	if out := m.renderOutcome(); out != "" {
		b.WriteString(out)
		b.WriteString("\n")
	}
	b.WriteString(FocusedPaneStyle.Render(GameLogStyle.Render(m.logViewport.View())))
	b.WriteString("\n")
	if m.status != "" {
		if m.failed {
			b.WriteString(ErrorStyle.Render(m.status))
		} else {
			b.WriteString(InfoStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderHeader() string {
	s := m.snap
	title := HeaderStyle.Render("Teen Patti")
	info := fmt.Sprintf(" Round %d | %s | Pot: %d | Stake: %d", s.RoundNumber, s.Phase, s.Pot, s.CurrentStake)
	if s.Unclaimed > 0 {
		info += fmt.Sprintf(" | Unclaimed: %d", s.Unclaimed)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, WarningStyle.Render(info))
}

func (m *Model) renderSeats() string {
	lines := make([]string, 0, len(m.snap.Seats))
	for _, v := range m.snap.Seats {
		lines = append(lines, m.renderSeat(v))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSeat(v game.SeatView) string {
	marker := "  "
	if v.IsActive {
		marker = "> "
	}
	name := v.Name
	if v.IsDealer {
		name += " (D)"
	}
	if v.ID == m.snap.Viewer {
		name += " *"
	}

	var state string
	switch {
	case v.HasFolded:
		state = "folded"
	case v.IsBlind && v.CardCount > 0:
		state = "blind"
	case v.CardCount > 0:
		state = "seen"
	}

	line := fmt.Sprintf("%s%-14s %6d chips  %-6s %s", marker, name, v.Chips, state, renderCards(v.Cards, v.CardCount))
	if v.HandName != "" {
		line += "  " + v.HandName
	}
	if v.IsWinner {
		line += "  " + SuccessStyle.Render("WINNER")
	}

	switch {
	case v.HasFolded:
		return FoldedPlayerStyle.Render(line)
	case v.IsActive:
		return ActivePlayerStyle.Render(line)
	default:
		return PlayerInfoStyle.Render(line)
	}
}

// renderHand describes the viewer's own position and what their next
// wager would cost.
func (m *Model) renderHand() string {
	me, ok := m.snap.Seat(m.snap.Viewer)
	if !ok || me.CardCount == 0 {
		return ""
	}

	var b strings.Builder
	if me.HandName != "" {
		b.WriteString(HandInfoStyle.Render("Your hand: " + me.HandName))
	} else {
		b.WriteString(HandInfoStyle.Render("Playing blind"))
	}
	if m.snap.Phase == game.Betting && m.snap.ActiveSeat == m.snap.Viewer {
		b.WriteString("  ")
		b.WriteString(ActionsStyle.Render(fmt.Sprintf("Call %d | Raise %d", m.snap.CallAmount, m.snap.RaiseAmount)))
	}
	return b.String()
}

func (m *Model) renderOutcome() string {
	o := m.snap.Outcome
	if o == nil {
		return ""
	}
	return SuccessStyle.Render(o.Title) + " " + InfoStyle.Render(o.Text)
}

func renderCards(cards []deck.Card, count int) string {
	if count == 0 {
		return ""
	}
	if len(cards) == 0 {
		hidden := make([]string, count)
		for i := range hidden {
			hidden[i] = "??"
		}
		return HiddenCardStyle.Render("[" + strings.Join(hidden, " ") + "]")
	}
	return FormatCards(cards)
}

// FormatCards formats cards with colors
func FormatCards(cards []deck.Card) string {
	formatted := make([]string, len(cards))
	for i, card := range cards {
		formatted[i] = CardStyle(card).Render(card.String())
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
