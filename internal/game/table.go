package game

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/gameid"
	"github.com/lox/teenpatti/internal/randutil"
)

// SeatConfig describes one seat at the table.
type SeatConfig struct {
	Name     string
	Kind     Kind
	Strategy string
}

// TableConfig holds the fixed parameters of a table
type TableConfig struct {
	Seats         []SeatConfig
	Boot          int
	StartingChips int
}

// DefaultTableConfig is one human against two standard bots.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		Seats: []SeatConfig{
			{Name: "You", Kind: Human},
			{Name: "Bot 1", Kind: Automated, Strategy: "standard"},
			{Name: "Bot 2", Kind: Automated, Strategy: "standard"},
		},
		Boot:          5,
		StartingChips: 1000,
	}
}

// Validate checks the config can be played. Every failure is a *ConfigError.
func (c TableConfig) Validate() error {
	if len(c.Seats) < 2 {
		return &ConfigError{Field: "seats", Reason: fmt.Sprintf("need at least 2 seats, got %d", len(c.Seats))}
	}
	if len(c.Seats)*deck.HandSize > deck.Size {
		return &ConfigError{Field: "seats", Reason: fmt.Sprintf("%d seats need more than %d cards", len(c.Seats), deck.Size)}
	}
	if c.Boot <= 0 {
		return &ConfigError{Field: "boot", Reason: fmt.Sprintf("must be positive, got %d", c.Boot)}
	}
	if c.StartingChips < 0 {
		return &ConfigError{Field: "starting_chips", Reason: fmt.Sprintf("must not be negative, got %d", c.StartingChips)}
	}
	for i, s := range c.Seats {
		if s.Name == "" {
			return &ConfigError{Field: fmt.Sprintf("seats[%d].name", i), Reason: "must not be empty"}
		}
	}
	return nil
}

// DeckStacker supplies the deck for a round instead of shuffling. It is
// given the seat that receives the first card.
type DeckStacker func(firstSeat int) *deck.Deck

// TableOption configures optional table behaviour.
type TableOption func(*Table)

// WithLogger sets the logger; the table logs under the "table" prefix.
func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) { t.logger = logger.WithPrefix("table") }
}

// WithEventBus publishes table events to bus.
func WithEventBus(bus EventBus) TableOption {
	return func(t *Table) { t.eventBus = bus }
}

// WithIDGenerator sets the round ID generator.
func WithIDGenerator(g *gameid.Generator) TableOption {
	return func(t *Table) { t.ids = g }
}

// WithDeckStacker replaces shuffling with a fixed deck per round.
func WithDeckStacker(stacker DeckStacker) TableOption {
	return func(t *Table) { t.stacker = stacker }
}

// WithChips sets individual starting chips, one per seat.
func WithChips(counts ...int) TableOption {
	return func(t *Table) { t.chipCounts = counts }
}

// Result reports whether a command changed the table, and if not, why.
type Result struct {
	Applied bool
	Err     error
}

func rejected(err error) Result { return Result{Err: err} }

var applied = Result{Applied: true}

// Table owns the seats and the current round
type Table struct {
	rng    randutil.Source
	config TableConfig
	seats  []*Seat
	round  Round

	// unclaimed holds pots from void rounds.
	unclaimed int

	logger     *log.Logger
	eventBus   EventBus
	ids        *gameid.Generator
	stacker    DeckStacker
	chipCounts []int
}

// NewTable creates a table with every seat holding its starting chips and
// the round Idle. The rng is required and is the table's only source of
// randomness.
func NewTable(rng randutil.Source, cfg TableConfig, opts ...TableOption) (*Table, error) {
	if rng == nil {
		panic("rng is required for table creation")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Table{
		rng:      rng,
		config:   cfg,
		logger:   log.New(io.Discard),
		eventBus: NewEventBus(),
		ids:      gameid.NewGenerator(nil),
	}
	t.config.Seats = slices.Clone(cfg.Seats)
	for _, opt := range opts {
		opt(t)
	}
	if t.chipCounts != nil && len(t.chipCounts) != len(cfg.Seats) {
		return nil, &ConfigError{Field: "chips", Reason: fmt.Sprintf("got %d counts for %d seats", len(t.chipCounts), len(cfg.Seats))}
	}
	for i, c := range t.chipCounts {
		if c < 0 {
			return nil, &ConfigError{Field: fmt.Sprintf("chips[%d]", i), Reason: "must not be negative"}
		}
	}

	t.seatPlayers()
	t.round = newRound(nil, cfg.Boot)
	return t, nil
}

func (t *Table) seatPlayers() {
	t.seats = make([]*Seat, len(t.config.Seats))
	for i, sc := range t.config.Seats {
		chips := t.config.StartingChips
		if t.chipCounts != nil {
			chips = t.chipCounts[i]
		}
		t.seats[i] = &Seat{
			ID:       i,
			Name:     sc.Name,
			Kind:     sc.Kind,
			Strategy: sc.Strategy,
			Chips:    chips,
			IsBlind:  true,
		}
	}
}

// StartRound posts boots, deals and opens betting. It is legal from Idle
// and Finished.
func (t *Table) StartRound() error {
	if t.round.Phase != Idle && t.round.Phase != Finished {
		return fmt.Errorf("start round in %s: %w", t.round.Phase, ErrWrongPhase)
	}

	n := len(t.seats)
	prev := t.round
	t.round = newRound(&prev, t.config.Boot)
	r := &t.round
	r.Number++
	r.ID = t.ids.Generate()
	r.DealerSeat = (prev.DealerSeat + 1) % n

	for _, s := range t.seats {
		s.resetForRound()
		r.PlaceBet(s, r.Boot)
	}
	r.Log.Addf("Boot posted: %d by each player", r.Boot)

	first := (r.DealerSeat + 1) % n
	d := t.deckFor(first)
	hands, err := deck.Deal(d, n, first)
	if err != nil {
		// Validate rules this out for shuffled decks; only a short stacked
		// deck gets here.
		panic(fmt.Sprintf("deal failed: %v", err))
	}
	for i, s := range t.seats {
		s.Hand = hands[i]
	}
	r.Phase = Dealt

	r.CurrentStake = r.Boot
	r.ActiveSeat = first
	r.Phase = Betting

	t.logger.Debug("Round started",
		"round", r.ID, "number", r.Number, "dealer", t.seats[r.DealerSeat].Name,
		"first", t.seats[first].Name, "pot", r.Pot)
	t.publish(RoundStartEvent{
		RoundID:    r.ID,
		Generation: r.Generation,
		DealerSeat: r.DealerSeat,
		ActiveSeat: r.ActiveSeat,
		Boot:       r.Boot,
		Pot:        r.Pot,
		timestamp:  time.Now(),
	})
	return nil
}

func (t *Table) deckFor(first int) *deck.Deck {
	if t.stacker != nil {
		if d := t.stacker(first); d != nil {
			return d
		}
	}
	d := deck.New()
	d.Shuffle(t.rng)
	return d
}

// NewRound clears a finished round back to Idle, keeping chips and the
// dealer position.
func (t *Table) NewRound() error {
	if t.round.Phase != Finished {
		return fmt.Errorf("new round in %s: %w", t.round.Phase, ErrWrongPhase)
	}
	prev := t.round
	t.round = newRound(&prev, t.config.Boot)
	for _, s := range t.seats {
		s.resetForRound()
	}
	t.publish(ResetEvent{Generation: t.round.Generation, timestamp: time.Now()})
	return nil
}

// Reset is a hard reset: starting chips restored, dealer back to seat 0,
// unclaimed chips and the log cleared. It is legal in any phase and
// abandons a round in progress.
func (t *Table) Reset() {
	gen := t.round.Generation + 1
	t.seatPlayers()
	t.round = newRound(nil, t.config.Boot)
	t.round.Generation = gen
	t.unclaimed = 0
	t.logger.Debug("Table reset", "generation", gen)
	t.publish(ResetEvent{Generation: gen, Hard: true, timestamp: time.Now()})
}

// check returns why seat may not take action now, or nil if it may.
func (t *Table) check(seat int, action Action) error {
	if seat < 0 || seat >= len(t.seats) {
		return ErrUnknownSeat
	}
	r := &t.round
	if r.Phase != Betting {
		return ErrWrongPhase
	}
	s := t.seats[seat]
	if s.HasFolded {
		return ErrSeatFolded
	}
	if seat != r.ActiveSeat {
		return ErrNotYourTurn
	}

	switch action {
	case SeeCards:
		if s.HasViewedHand {
			return ErrAlreadySeen
		}
	case Fold:
	case Call, Raise:
		if s.Chips <= 0 {
			return ErrNoChips
		}
	case RequestShow:
		if len(Contenders(t.seats)) != 2 {
			return ErrShowUnavailable
		}
	default:
		return fmt.Errorf("unknown action %d", action)
	}
	return nil
}

// LegalActions returns the actions seat may take right now, in the order of
// Actions. It is empty when it is not the seat's turn.
func (t *Table) LegalActions(seat int) []Action {
	var out []Action
	for _, a := range Actions {
		if t.check(seat, a) == nil {
			out = append(out, a)
		}
	}
	return out
}

// Apply performs action for seat. An illegal action leaves the table
// untouched, adds nothing to the log and returns the reason.
func (t *Table) Apply(seat int, action Action) Result {
	if err := t.check(seat, action); err != nil {
		return rejected(err)
	}

	r := &t.round
	s := t.seats[seat]
	paid := 0

	switch action {
	case SeeCards:
		s.IsBlind = false
		s.HasViewedHand = true
		r.Log.Addf("%s sees cards", s.Name)

	case Fold:
		s.HasFolded = true
		r.Log.Addf("%s folded", s.Name)
		if len(Contenders(t.seats)) <= 1 {
			t.emitAction(s, action, 0, -1)
			t.finish(resolveLastStanding(t.seats, &r.Ledger))
			return applied
		}
		r.ActiveSeat = NextSeat(t.seats, seat)

	case Call:
		paid = r.PlaceBet(s, s.CallAmount(r.CurrentStake))
		r.Log.Addf("%s calls %d", s.Name, paid)
		r.ActiveSeat = NextSeat(t.seats, seat)

	case Raise:
		paid = r.PlaceBet(s, s.RaiseAmount(r.CurrentStake))
		r.CurrentStake = max(r.CurrentStake, paid)
		r.Log.Addf("%s raises to %d", s.Name, paid)
		r.ActiveSeat = NextSeat(t.seats, seat)

	case RequestShow:
		r.Log.Addf("%s requests show", s.Name)
		r.Phase = Show
		r.ActiveSeat = -1
		t.emitAction(s, action, 0, -1)
		out, err := resolveShowdown(t.seats, &r.Ledger)
		if err != nil {
			// check guarantees two contenders
			panic(err)
		}
		t.finish(out)
		return applied
	}

	t.logger.Debug("Action applied",
		"round", r.ID, "seat", s.Name, "action", action,
		"paid", paid, "stake", r.CurrentStake, "pot", r.Pot)
	t.emitAction(s, action, paid, r.ActiveSeat)
	return applied
}

func (t *Table) emitAction(s *Seat, action Action, paid, next int) {
	r := &t.round
	t.publish(ActionEvent{
		RoundID:   r.ID,
		Seat:      s.ID,
		Name:      s.Name,
		Action:    action,
		Amount:    paid,
		Stake:     r.CurrentStake,
		PotAfter:  r.Pot,
		NextSeat:  next,
		timestamp: time.Now(),
	})
}

// finish records the outcome and closes the round.
func (t *Table) finish(out Outcome) {
	r := &t.round
	r.Outcome = &out
	r.Settled = true
	r.Phase = Finished
	r.ActiveSeat = -1

	switch out.Kind {
	case Void:
		t.unclaimed += r.Pot
		t.logger.Warn("Round void, pot unclaimed", "round", r.ID, "pot", r.Pot, "unclaimed", t.unclaimed)
	case LastStanding:
		r.Log.Addf("%s wins pot by default", out.Payouts[0].Name)
	case Showdown:
		r.Log.Addf("%s wins %d with %s", out.Payouts[0].Name, out.Pot, t.shownRank(out.Winners[0]))
	case Split:
		r.Log.Addf("Pot split between %s and %s", out.Payouts[0].Name, out.Payouts[1].Name)
	}

	t.logger.Info("Round finished",
		"round", r.ID, "outcome", out.Kind, "title", out.Title, "pot", out.Pot)
	t.publish(RoundEndEvent{RoundID: r.ID, Outcome: *out.clone(), timestamp: time.Now()})
}

func (t *Table) shownRank(seat int) string {
	for _, h := range t.round.Outcome.Hands {
		if h.Seat == seat {
			return h.Rank.Name()
		}
	}
	return ""
}

func (t *Table) publish(e Event) {
	if t.eventBus != nil {
		t.eventBus.Publish(e)
	}
}

// Accessors

func (t *Table) Phase() Phase { return t.round.Phase }
func (t *Table) ActiveSeat() int { return t.round.ActiveSeat }
func (t *Table) DealerSeat() int { return t.round.DealerSeat }
func (t *Table) Pot() int { return t.round.Pot }
func (t *Table) CurrentStake() int { return t.round.CurrentStake }
func (t *Table) Generation() uint64 { return t.round.Generation }
func (t *Table) RoundID() string { return t.round.ID }
func (t *Table) RoundNumber() int { return t.round.Number }
func (t *Table) Unclaimed() int { return t.unclaimed }
func (t *Table) NumSeats() int { return len(t.seats) }
func (t *Table) Config() TableConfig { return t.config }
func (t *Table) EventBus() EventBus { return t.eventBus }
func (t *Table) Log() []string { return t.round.Log.Entries() }
func (t *Table) Outcome() *Outcome { return t.round.Outcome.clone() }
func (t *Table) Rng() randutil.Source { return t.rng }
func (t *Table) Logger() *log.Logger { return t.logger }
func (t *Table) Settled() bool { return t.round.Settled }

// Seat returns a copy of seat i.
func (t *Table) Seat(i int) (Seat, bool) {
	if i < 0 || i >= len(t.seats) {
		return Seat{}, false
	}
	return t.seats[i].clone(), true
}

// Seats returns copies of every seat.
func (t *Table) Seats() []Seat {
	out := make([]Seat, len(t.seats))
	for i, s := range t.seats {
		out[i] = s.clone()
	}
	return out
}

// TotalChips returns chips held by seats, plus the pot while it is unsettled,
// plus unclaimed chips.
func (t *Table) TotalChips() int {
	total := t.unclaimed
	for _, s := range t.seats {
		total += s.Chips
	}
	if !t.round.Settled {
		total += t.round.Pot
	}
	return total
}

// ValidateChipConservation ensures that the total chips at the table equals
// the expected amount. Chips are never created or destroyed between hard
// resets.
func (t *Table) ValidateChipConservation(expectedTotal int) error {
	actual := t.TotalChips()
	if actual != expectedTotal {
		return fmt.Errorf("chip conservation violation: expected %d total chips, but found %d (difference: %d)",
			expectedTotal, actual, actual-expectedTotal)
	}
	return nil
}

// CheckInvariants verifies the structural invariants of the current round.
func (t *Table) CheckInvariants() error {
	r := &t.round
	if sum := Contributions(t.seats); r.Pot != sum {
		return fmt.Errorf("pot %d does not match contributions %d", r.Pot, sum)
	}
	for _, s := range t.seats {
		if s.Chips < 0 {
			return fmt.Errorf("seat %s has negative chips %d", s.Name, s.Chips)
		}
		if n := len(s.Hand); n != 0 && n != deck.HandSize {
			return fmt.Errorf("seat %s holds %d cards", s.Name, n)
		}
	}

	if !r.Terminal() {
		if r.ActiveSeat < 0 || r.ActiveSeat >= len(t.seats) {
			return fmt.Errorf("betting with no active seat (%d)", r.ActiveSeat)
		}
		if t.seats[r.ActiveSeat].HasFolded {
			return fmt.Errorf("active seat %s has folded", t.seats[r.ActiveSeat].Name)
		}
		if len(Contenders(t.seats)) < 2 {
			return fmt.Errorf("betting with fewer than two players left")
		}
	} else if r.ActiveSeat != -1 {
		return fmt.Errorf("seat %d active in %s", r.ActiveSeat, r.Phase)
	}

	if r.Phase != Idle {
		if err := gameid.Validate(r.ID); err != nil {
			return fmt.Errorf("round id: %w", err)
		}
		seen := make(map[deck.Card]bool, len(t.seats)*deck.HandSize)
		for _, s := range t.seats {
			for _, c := range s.Hand {
				if seen[c] {
					return fmt.Errorf("card %s dealt twice", c)
				}
				seen[c] = true
			}
		}
	}
	return nil
}
