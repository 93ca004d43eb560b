package deck

import (
	"fmt"

	"github.com/lox/teenpatti/internal/randutil"
)

const (
	// Size is the number of cards in a standard deck.
	Size = 52
	// HandSize is the number of cards dealt to every seat.
	HandSize = 3
	// MaxSeats is the largest table a single deck can serve.
	MaxSeats = Size / HandSize
)

// Deck represents an ordered pile of cards, consumed from the front
type Deck struct {
	cards []Card
}

// New creates a new standard 52-card deck in suit-major order
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, Size)}
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// FromCards builds a deck whose top card is cards[0]. Tests use it to stack
// the deal.
func FromCards(cards ...Card) *Deck {
	c := make([]Card, len(cards))
	copy(c, cards)
	return &Deck{cards: c}
}

// Shuffle randomizes the order of cards in the deck using Fisher-Yates
func (d *Deck) Shuffle(rng randutil.Source) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Cards returns a copy of the remaining cards, top first
func (d *Deck) Cards() []Card {
	c := make([]Card, len(d.cards))
	copy(c, d.cards)
	return c
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Deal hands out HandSize cards to each of seats seats, one card per seat per
// pass, starting at first and wrapping around the table. Hands are returned
// indexed by seat; the cards used are removed from d.
func Deal(d *Deck, seats, first int) ([][]Card, error) {
	if seats <= 0 {
		return nil, fmt.Errorf("cannot deal to %d seats", seats)
	}
	if need := seats * HandSize; need > d.Remaining() {
		return nil, fmt.Errorf("need %d cards for %d seats, deck has %d", need, seats, d.Remaining())
	}

	hands := make([][]Card, seats)
	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	for range HandSize {
		for i := range seats {
			seat := (first + i) % seats
			card, _ := d.Draw()
			hands[seat] = append(hands[seat], card)
		}
	}
	return hands, nil
}
