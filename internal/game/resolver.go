package game

import (
	"fmt"
	"slices"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/evaluator"
)

// OutcomeKind says how a round ended
type OutcomeKind int

const (
	LastStanding OutcomeKind = iota + 1
	Showdown
	Split
	Void
)

func (k OutcomeKind) String() string {
	switch k {
	case LastStanding:
		return "last_standing"
	case Showdown:
		return "showdown"
	case Split:
		return "split"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes an outcome kind name.
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for _, candidate := range []OutcomeKind{LastStanding, Showdown, Split, Void} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome kind %q", text)
}

// Payout is what one seat received from the pot.
type Payout struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// ShownHand is a contender's hand at showdown.
type ShownHand struct {
	Seat  int                `json:"seat"`
	Name  string             `json:"name"`
	Cards []deck.Card        `json:"cards"`
	Rank  evaluator.HandRank `json:"rank"`
}

// Outcome describes how the pot was settled.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Winners []int       `json:"winners"`
	Payouts []Payout    `json:"payouts"`
	Pot     int         `json:"pot"`
	Hands   []ShownHand `json:"hands,omitempty"`
	Title   string      `json:"title"`
	Text    string      `json:"text"`
}

// IsWinner reports whether seat took any of the pot.
func (o *Outcome) IsWinner(seat int) bool {
	return slices.Contains(o.Winners, seat)
}

func (o *Outcome) clone() *Outcome {
	if o == nil {
		return nil
	}
	c := *o
	c.Winners = slices.Clone(o.Winners)
	c.Payouts = slices.Clone(o.Payouts)
	c.Hands = make([]ShownHand, len(o.Hands))
	for i, h := range o.Hands {
		h.Cards = slices.Clone(h.Cards)
		h.Rank.Tiebreak = slices.Clone(h.Rank.Tiebreak)
		c.Hands[i] = h
	}
	return &c
}

// resolveLastStanding settles a round ended by folds. With one seat left it
// takes the whole pot. With none left the round is void and nothing is paid;
// the caller decides where the chips go.
func resolveLastStanding(seats []*Seat, ledger *Ledger) Outcome {
	remaining := Contenders(seats)
	if len(remaining) == 0 {
		return Outcome{
			Kind:  Void,
			Pot:   ledger.Pot,
			Title: "All Folded",
			Text:  "No active players. Start a new round.",
		}
	}

	winner := seats[remaining[0]]
	ledger.Award(winner, ledger.Pot)
	return Outcome{
		Kind:    LastStanding,
		Winners: []int{winner.ID},
		Payouts: []Payout{{Seat: winner.ID, Name: winner.Name, Amount: ledger.Pot}},
		Pot:     ledger.Pot,
		Title:   fmt.Sprintf("%s wins", winner.Name),
		Text:    "Everyone else folded.",
	}
}

// resolveShowdown compares the two remaining hands. Contenders are taken in
// seating order; on an exact tie the first gets floor(pot/2) and the second
// the remainder.
func resolveShowdown(seats []*Seat, ledger *Ledger) (Outcome, error) {
	remaining := Contenders(seats)
	if len(remaining) != 2 {
		return Outcome{}, ErrShowUnavailable
	}

	a, b := seats[remaining[0]], seats[remaining[1]]
	rankA, rankB := evaluator.Evaluate(a.Hand), evaluator.Evaluate(b.Hand)
	out := Outcome{
		Pot: ledger.Pot,
		Hands: []ShownHand{
			{Seat: a.ID, Name: a.Name, Cards: slices.Clone(a.Hand), Rank: rankA},
			{Seat: b.ID, Name: b.Name, Cards: slices.Clone(b.Hand), Rank: rankB},
		},
	}

	cmp := evaluator.Compare(rankA, rankB)
	if cmp == 0 {
		half := ledger.Pot / 2
		rest := ledger.Pot - half
		ledger.Award(a, half)
		ledger.Award(b, rest)
		out.Kind = Split
		out.Winners = []int{a.ID, b.ID}
		out.Payouts = []Payout{
			{Seat: a.ID, Name: a.Name, Amount: half},
			{Seat: b.ID, Name: b.Name, Amount: rest},
		}
		out.Title = "Split Pot"
		out.Text = "Both players have equal hands."
		return out, nil
	}

	winner := a
	winRank, loseRank := rankA, rankB
	if cmp < 0 {
		winner = b
		winRank, loseRank = rankB, rankA
	}
	ledger.Award(winner, ledger.Pot)
	out.Kind = Showdown
	out.Winners = []int{winner.ID}
	out.Payouts = []Payout{{Seat: winner.ID, Name: winner.Name, Amount: ledger.Pot}}
	out.Title = fmt.Sprintf("%s wins", winner.Name)
	out.Text = fmt.Sprintf("%s beats %s", winRank.Name(), loseRank.Name())
	return out, nil
}
