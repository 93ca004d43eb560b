// Package bot provides the decision policies for automated seats.
//
// A Strategy looks at a Situation and returns a Decision: optionally look at
// the hand first, then exactly one betting action. Strategies never touch
// the table themselves; the caller applies the decision with Play.
package bot

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/randutil"
)

// Strategy decides what an automated seat does on its turn
type Strategy interface {
	Decide(s Situation) Decision
}

// Situation is everything an automated seat knows when asked to act.
// Legal holds the actions available before any view.
type Situation struct {
	Seat          int
	Name          string
	Hand          []deck.Card
	HasViewedHand bool
	Chips         int
	CurrentStake  int
	Pot           int
	Contenders    int
	Legal         []game.Action
}

// SituationFor builds the situation for seat. It returns false unless the
// seat is the one to act.
func SituationFor(t *game.Table, seat int) (Situation, bool) {
	if t.Phase() != game.Betting || t.ActiveSeat() != seat {
		return Situation{}, false
	}
	s, ok := t.Seat(seat)
	if !ok {
		return Situation{}, false
	}
	contenders := 0
	for _, other := range t.Seats() {
		if !other.HasFolded {
			contenders++
		}
	}
	return Situation{
		Seat:          seat,
		Name:          s.Name,
		Hand:          s.Hand,
		HasViewedHand: s.HasViewedHand,
		Chips:         s.Chips,
		CurrentStake:  t.CurrentStake(),
		Pot:           t.Pot(),
		Contenders:    contenders,
		Legal:         t.LegalActions(seat),
	}, true
}

// CanView reports whether looking at the hand is still possible.
func (s Situation) CanView() bool {
	return slices.Contains(s.Legal, game.SeeCards)
}

// Can reports whether the betting action a is legal.
func (s Situation) Can(a game.Action) bool {
	return slices.Contains(s.Legal, a)
}

// Decision is a view flag plus one betting action
type Decision struct {
	View      bool
	Action    game.Action
	Reasoning string
}

// fallback replaces an illegal bet with a show when one is available, or a
// fold otherwise.
func fallback(s Situation, d Decision, thinking *ThinkingContext) Decision {
	if s.Can(d.Action) {
		return d
	}
	if s.Can(game.RequestShow) {
		thinking.AddThought(fmt.Sprintf("cannot %s, showing instead", d.Action))
		d.Action = game.RequestShow
	} else {
		thinking.AddThought(fmt.Sprintf("cannot %s, folding instead", d.Action))
		d.Action = game.Fold
	}
	return d
}

// Play applies d for seat: the view first when asked for, then the betting
// action. The result is that of the betting action.
func Play(t *game.Table, seat int, d Decision) game.Result {
	if d.View {
		// A seat that has already looked just skips the view.
		t.Apply(seat, game.SeeCards)
	}
	return t.Apply(seat, d.Action)
}

// Turn records one automated turn.
type Turn struct {
	Name     string
	Decision Decision
	Result   game.Result
	// Rejected is why the table refused the decision; the seat folded
	// instead.
	Rejected error
}

// TakeTurn lets strategy decide for seat and plays the decision. A decision
// the table rejects is replaced by a fold. ok is false when seat is not due
// to act.
func TakeTurn(t *game.Table, seat int, strategy Strategy) (turn Turn, ok bool) {
	sit, ok := SituationFor(t, seat)
	if !ok {
		return Turn{}, false
	}
	turn = Turn{Name: sit.Name, Decision: strategy.Decide(sit)}
	turn.Result = Play(t, seat, turn.Decision)
	if !turn.Result.Applied {
		turn.Rejected = turn.Result.Err
		turn.Result = t.Apply(seat, game.Fold)
	}
	return turn, true
}

// ThinkingContext accumulates bot thoughts during decision making
type ThinkingContext struct {
	thoughts []string
}

// AddThought adds a thought to the thinking process
func (tc *ThinkingContext) AddThought(thought string) {
	tc.thoughts = append(tc.thoughts, thought)
}

// GetThoughts returns the complete stream of thoughts
func (tc *ThinkingContext) GetThoughts() string {
	if len(tc.thoughts) == 0 {
		return "No clear reasoning available"
	}
	return strings.Join(tc.thoughts, ". ")
}

// Names lists the strategies New understands.
var Names = []string{"standard", "call", "fold", "maniac", "random"}

// New creates the named strategy. An empty name means "standard"; probs only
// matters for the standard policy.
func New(name string, rng randutil.Source, probs Probabilities, logger *log.Logger) (Strategy, error) {
	logger = logger.WithPrefix("bot")
	switch strings.ToLower(name) {
	case "", "standard":
		return NewStandardBot(rng, probs, logger), nil
	case "call":
		return NewCallBot(logger), nil
	case "fold":
		return NewFoldBot(logger), nil
	case "maniac":
		return NewManiacBot(logger), nil
	case "random":
		return NewRandBot(rng, logger), nil
	}
	return nil, fmt.Errorf("unknown bot strategy %q (want one of %s)", name, strings.Join(Names, ", "))
}
