package game

import (
	"slices"

	"github.com/lox/teenpatti/internal/deck"
)

// Seat represents a player at the table. Chips carry over between rounds;
// every other field is reset by StartRound.
type Seat struct {
	ID       int
	Name     string
	Kind     Kind
	Strategy string // opponent policy name for automated seats

	Chips             int
	Hand              []deck.Card
	IsBlind           bool
	HasViewedHand     bool
	HasFolded         bool
	TotalContribution int
}

// resetForRound clears the per-round state, keeping chips.
func (s *Seat) resetForRound() {
	s.Hand = nil
	s.IsBlind = true
	s.HasViewedHand = false
	s.HasFolded = false
	s.TotalContribution = 0
}

// StakeMultiplier is 1 for blind seats and 2 once the hand has been seen.
func (s *Seat) StakeMultiplier() int {
	if s.IsBlind {
		return 1
	}
	return 2
}

// CallAmount is what a call costs this seat at the given stake, before
// clamping to chips.
func (s *Seat) CallAmount(stake int) int {
	return stake * s.StakeMultiplier()
}

// RaiseAmount is what a raise costs this seat at the given stake, before
// clamping to chips.
func (s *Seat) RaiseAmount(stake int) int {
	return 2 * stake * s.StakeMultiplier()
}

func (s *Seat) clone() Seat {
	c := *s
	c.Hand = slices.Clone(s.Hand)
	return c
}
