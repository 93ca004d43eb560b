package game

// Round is everything that resets when a new round starts. The table owns
// exactly one and mutates it only from Apply and the round lifecycle
// methods.
type Round struct {
	ID         string
	Number     int
	Generation uint64
	Phase      Phase
	DealerSeat int
	ActiveSeat int // -1 outside Betting
	Ledger
	Boot         int
	CurrentStake int
	Log          ActionLog
	Outcome      *Outcome
	// Settled is set once the pot has been paid out or moved to Unclaimed.
	Settled bool
}

// newRound returns an idle round that keeps the dealer position and bumps
// the generation of prev.
func newRound(prev *Round, boot int) Round {
	r := Round{
		Phase:      Idle,
		ActiveSeat: -1,
		Boot:       boot,
	}
	if prev != nil {
		r.Number = prev.Number
		r.Generation = prev.Generation + 1
		r.DealerSeat = prev.DealerSeat
	}
	return r
}

// Terminal reports whether no further betting actions are possible.
func (r *Round) Terminal() bool {
	return r.Phase != Betting
}
