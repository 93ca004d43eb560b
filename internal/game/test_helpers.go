package game

import (
	"fmt"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/randutil"
)

// TestTableOption configures test table creation
type TestTableOption func(*testTableBuilder)

type testTableBuilder struct {
	seed   int64
	config TableConfig
	opts   []TableOption
}

// Test table options
func WithSeed(seed int64) TestTableOption {
	return func(b *testTableBuilder) { b.seed = seed }
}

func WithBoot(boot int) TestTableOption {
	return func(b *testTableBuilder) { b.config.Boot = boot }
}

func WithStartingChips(chips int) TestTableOption {
	return func(b *testTableBuilder) { b.config.StartingChips = chips }
}

// WithPlayers seats the named players; the first is human, the rest are
// standard bots.
func WithPlayers(names ...string) TestTableOption {
	return func(b *testTableBuilder) {
		b.config.Seats = make([]SeatConfig, len(names))
		for i, name := range names {
			b.config.Seats[i] = SeatConfig{Name: name, Kind: Automated, Strategy: "standard"}
			if i == 0 {
				b.config.Seats[i].Kind = Human
				b.config.Seats[i].Strategy = ""
			}
		}
	}
}

// WithTableOptions passes options straight to NewTable.
func WithTableOptions(opts ...TableOption) TestTableOption {
	return func(b *testTableBuilder) { b.opts = append(b.opts, opts...) }
}

// WithHands stacks the deck so seat i is dealt hands[i] every round. Hands
// use deck.ParseCards notation, e.g. "As Ah Ad".
func WithHands(hands ...string) TestTableOption {
	parsed := make([][]deck.Card, len(hands))
	for i, h := range hands {
		parsed[i] = deck.MustParseCards(h)
	}
	return WithTableOptions(WithDeckStacker(StackHands(parsed...)))
}

// NewTestTable creates a table for testing with sensible defaults: the
// default three seats, boot 5, 1000 chips and seed 42.
func NewTestTable(opts ...TestTableOption) *Table {
	builder := &testTableBuilder{
		seed:   42,
		config: DefaultTableConfig(),
	}
	for _, opt := range opts {
		opt(builder)
	}

	table, err := NewTable(randutil.New(builder.seed), builder.config, builder.opts...)
	if err != nil {
		panic(fmt.Sprintf("test table: %v", err))
	}
	return table
}

// StackHands returns a DeckStacker that deals hands[i] to seat i no matter
// where dealing starts. The rest of the deck follows in standard order.
func StackHands(hands ...[]deck.Card) DeckStacker {
	return func(first int) *deck.Deck {
		n := len(hands)
		used := make(map[deck.Card]bool)
		var cards []deck.Card
		for pass := range deck.HandSize {
			for i := range n {
				c := hands[(first+i)%n][pass]
				used[c] = true
				cards = append(cards, c)
			}
		}
		for _, c := range deck.New().Cards() {
			if !used[c] {
				cards = append(cards, c)
			}
		}
		return deck.FromCards(cards...)
	}
}
