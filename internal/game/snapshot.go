package game

import (
	"slices"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/evaluator"
)

// SeatView is a seat as seen by one viewer.
type SeatView struct {
	ID                int         `json:"id"`
	Name              string      `json:"name"`
	Kind              Kind        `json:"kind"`
	Chips             int         `json:"chips"`
	Cards             []deck.Card `json:"cards,omitempty"` // nil while hidden from the viewer
	CardCount         int         `json:"card_count"`
	HandName          string      `json:"hand_name,omitempty"`
	IsBlind           bool        `json:"is_blind"`
	HasViewedHand     bool        `json:"has_viewed_hand"`
	HasFolded         bool        `json:"has_folded"`
	TotalContribution int         `json:"total_contribution"`
	IsDealer          bool        `json:"is_dealer"`
	IsActive          bool        `json:"is_active"`
	IsWinner          bool        `json:"is_winner"`
}

// Snapshot is a deep copy of the table from one seat's point of view.
// Mutating it never affects the table.
type Snapshot struct {
	RoundID      string     `json:"round_id"`
	RoundNumber  int        `json:"round_number"`
	Generation   uint64     `json:"generation"`
	Phase        Phase      `json:"phase"`
	Viewer       int        `json:"viewer"`
	Seats        []SeatView `json:"seats"`
	Pot          int        `json:"pot"`
	Boot         int        `json:"boot"`
	CurrentStake int        `json:"current_stake"`
	DealerSeat   int        `json:"dealer_seat"`
	ActiveSeat   int        `json:"active_seat"`
	Log          []string   `json:"log"`
	Outcome      *Outcome   `json:"outcome,omitempty"`
	Unclaimed    int        `json:"unclaimed"`

	// Viewer affordances. Amounts are already clamped to the viewer's chips.
	LegalActions []Action `json:"legal_actions"`
	CallAmount   int      `json:"call_amount"`
	RaiseAmount  int      `json:"raise_amount"`
}

// Snapshot returns the table as viewer sees it. A viewer sees their own hand
// once they have looked at it, and every hand once the round is revealed.
// Pass -1 for a spectator who sees only revealed hands.
func (t *Table) Snapshot(viewer int) Snapshot {
	r := &t.round
	snap := Snapshot{
		RoundID:      r.ID,
		RoundNumber:  r.Number,
		Generation:   r.Generation,
		Phase:        r.Phase,
		Viewer:       viewer,
		Seats:        make([]SeatView, len(t.seats)),
		Pot:          r.Pot,
		Boot:         r.Boot,
		CurrentStake: r.CurrentStake,
		DealerSeat:   r.DealerSeat,
		ActiveSeat:   r.ActiveSeat,
		Log:          r.Log.Entries(),
		Outcome:      r.Outcome.clone(),
		Unclaimed:    t.unclaimed,
		LegalActions: t.LegalActions(viewer),
	}

	for i, s := range t.seats {
		v := SeatView{
			ID:                s.ID,
			Name:              s.Name,
			Kind:              s.Kind,
			Chips:             s.Chips,
			CardCount:         len(s.Hand),
			IsBlind:           s.IsBlind,
			HasViewedHand:     s.HasViewedHand,
			HasFolded:         s.HasFolded,
			TotalContribution: s.TotalContribution,
			IsDealer:          r.Phase != Idle && i == r.DealerSeat,
			IsActive:          i == r.ActiveSeat,
			IsWinner:          r.Outcome != nil && r.Outcome.IsWinner(i),
		}
		visible := r.Phase.Revealed() || (i == viewer && s.HasViewedHand)
		if visible && len(s.Hand) == deck.HandSize {
			v.Cards = slices.Clone(s.Hand)
			v.HandName = evaluator.Evaluate(s.Hand).Name()
		}
		snap.Seats[i] = v
	}

	if viewer >= 0 && viewer < len(t.seats) {
		s := t.seats[viewer]
		snap.CallAmount = min(s.CallAmount(r.CurrentStake), s.Chips)
		snap.RaiseAmount = min(s.RaiseAmount(r.CurrentStake), s.Chips)
	}
	return snap
}

// Seat returns the view of seat i, or false if there is none.
func (s Snapshot) Seat(i int) (SeatView, bool) {
	if i < 0 || i >= len(s.Seats) {
		return SeatView{}, false
	}
	return s.Seats[i], true
}

// Active returns the view of the seat to act, or false outside betting.
func (s Snapshot) Active() (SeatView, bool) {
	return s.Seat(s.ActiveSeat)
}

// Contenders counts seats that have not folded.
func (s Snapshot) Contenders() int {
	n := 0
	for _, v := range s.Seats {
		if !v.HasFolded {
			n++
		}
	}
	return n
}
