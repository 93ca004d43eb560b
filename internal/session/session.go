// Package session drives a table for one human player: it applies the
// player's commands and plays the automated seats after a thinking delay.
//
// All methods are safe for concurrent use. Commands are serialised under one
// mutex, and automated turns run on a quartz clock so tests can control
// time. Every scheduled turn remembers the table generation it was
// scheduled for; starting or resetting a round bumps the generation, and a
// turn that fires afterwards is dropped without touching the table.
package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/teenpatti/internal/bot"
	"github.com/lox/teenpatti/internal/game"
)

// Config tunes the automated seats.
type Config struct {
	MinDelay      time.Duration
	MaxDelay      time.Duration
	Probabilities bot.Probabilities
}

// DefaultConfig thinks for 0.9 to 1.5 seconds per turn.
func DefaultConfig() Config {
	return Config{
		MinDelay:      900 * time.Millisecond,
		MaxDelay:      1500 * time.Millisecond,
		Probabilities: bot.DefaultProbabilities(),
	}
}

// Validate checks the delays and probabilities.
func (c Config) Validate() error {
	if c.MinDelay < 0 || c.MaxDelay < c.MinDelay {
		return fmt.Errorf("bot delay range [%s, %s] is invalid", c.MinDelay, c.MaxDelay)
	}
	return c.Probabilities.Validate()
}

// Listener receives every table event with the viewer's snapshot taken
// right after it. Listeners run with the session locked and must not call
// back into it.
type Listener func(game.Event, game.Snapshot)

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock automated turns are scheduled on.
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithConfig sets the bot tuning.
func WithConfig(cfg Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

// WithLogger sets the logger; the session logs under the "session" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger.WithPrefix("session") }
}

// pendingTurn is an automated turn waiting on the clock.
type pendingTurn struct {
	generation uint64
	seat       int
	timer      *quartz.Timer
}

// Session wraps a table with its automated players.
type Session struct {
	mu        sync.Mutex
	table     *game.Table
	viewer    int
	bots      []bot.Strategy // nil for human seats
	clock     quartz.Clock
	cfg       Config
	logger    *log.Logger
	pending   *pendingTurn
	listeners []Listener
	closed    bool
}

// New creates a session around table. The first human seat is the viewer;
// automated seats get the strategy named in their seat config, drawing from
// the table's random source.
func New(table *game.Table, opts ...Option) (*Session, error) {
	s := &Session{
		table:  table,
		viewer: -1,
		clock:  quartz.NewReal(),
		cfg:    DefaultConfig(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	seats := table.Seats()
	s.bots = make([]bot.Strategy, len(seats))
	for i, seat := range seats {
		if seat.Kind == game.Human {
			if s.viewer < 0 {
				s.viewer = i
			}
			continue
		}
		strategy, err := bot.New(seat.Strategy, table.Rng(), s.cfg.Probabilities, s.logger)
		if err != nil {
			return nil, fmt.Errorf("seat %q: %w", seat.Name, err)
		}
		s.bots[i] = strategy
	}

	table.EventBus().Subscribe(game.SubscriberFunc(s.onEvent))
	return s, nil
}

func (s *Session) onEvent(e game.Event) {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.table.Snapshot(s.viewer)
	for _, l := range s.listeners {
		l(e, snap)
	}
}

// Subscribe registers l for every subsequent table event.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Viewer returns the human seat, or -1 when every seat is automated.
func (s *Session) Viewer() int {
	return s.viewer
}

// Snapshot returns the table as the viewer sees it.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Snapshot(s.viewer)
}

// StartRound deals a new round and schedules the first automated turn. A
// rejected start leaves any scheduled turn in place.
func (s *Session) StartRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.table.StartRound(); err != nil {
		return err
	}
	s.cancelPending()
	s.schedule()
	return nil
}

// NewRound clears a finished round back to Idle. Nothing is scheduled in
// Finished, so there is no turn to cancel.
func (s *Session) NewRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.NewRound()
}

// Reset restores starting chips and abandons any round in progress.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPending()
	s.table.Reset()
}

func (s *Session) SeeCards() game.Result { return s.Act(game.SeeCards) }
func (s *Session) Fold() game.Result { return s.Act(game.Fold) }
func (s *Session) Call() game.Result { return s.Act(game.Call) }
func (s *Session) Raise() game.Result { return s.Act(game.Raise) }
func (s *Session) RequestShow() game.Result { return s.Act(game.RequestShow) }

// Act applies action for the viewer's seat.
func (s *Session) Act(action game.Action) game.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.table.Apply(s.viewer, action)
	if !res.Applied {
		s.logger.Debug("Command rejected", "action", action, "error", res.Err)
		return res
	}
	s.schedule()
	return res
}

// Pending returns the seat whose automated turn is scheduled, if any.
func (s *Session) Pending() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return -1, false
	}
	return s.pending.seat, true
}

// RunPending plays the scheduled automated turn now instead of waiting for
// the clock. It reports whether there was one.
func (s *Session) RunPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pending
	if p == nil {
		return false
	}
	s.cancelPending()
	s.play(p.seat)
	s.schedule()
	return true
}

// RunUntilHuman plays automated turns until it is the viewer's turn or the
// round ends, returning how many turns were played.
func (s *Session) RunUntilHuman() int {
	n := 0
	for s.RunPending() {
		n++
	}
	return n
}

// Close stops any scheduled turn. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
	s.closed = true
}

// schedule arms a timer when an automated seat is due to act.
func (s *Session) schedule() {
	if s.closed || s.pending != nil || s.table.Phase() != game.Betting {
		return
	}
	seat := s.table.ActiveSeat()
	if s.bots[seat] == nil {
		return
	}

	delay := s.cfg.MinDelay
	if spread := s.cfg.MaxDelay - s.cfg.MinDelay; spread > 0 {
		delay += time.Duration(s.table.Rng().Float64() * float64(spread))
	}

	p := &pendingTurn{generation: s.table.Generation(), seat: seat}
	p.timer = s.clock.AfterFunc(delay, func() { s.fire(p) }, "session", "bot")
	s.pending = p
	s.logger.Debug("Bot turn scheduled", "seat", seat, "delay", delay, "generation", p.generation)
}

// fire runs when a timer expires. A turn that was cancelled, or that
// belongs to an earlier generation, is dropped.
func (s *Session) fire(p *pendingTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != p || p.generation != s.table.Generation() {
		s.logger.Debug("Discarding stale bot turn", "seat", p.seat, "generation", p.generation, "current", s.table.Generation())
		return
	}
	s.pending = nil
	s.play(p.seat)
	s.schedule()
}

func (s *Session) cancelPending() {
	if s.pending == nil {
		return
	}
	if s.pending.timer != nil {
		s.pending.timer.Stop()
	}
	s.pending = nil
}

// play decides and applies one automated turn for seat.
func (s *Session) play(seat int) {
	turn, ok := bot.TakeTurn(s.table, seat, s.bots[seat])
	if ok && turn.Rejected != nil {
		s.logger.Warn("Bot decision rejected, folding", "seat", turn.Name, "action", turn.Decision.Action, "error", turn.Rejected)
	}
}
