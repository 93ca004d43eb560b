package bot

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/randutil"
)

// RandBot picks uniformly among legal actions. Drawing a view is followed
// by a second draw among the betting actions.
type RandBot struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng randutil.Source, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(s Situation) Decision {
	if len(s.Legal) == 0 {
		return Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	var d Decision
	choice := s.Legal[r.rng.IntN(len(s.Legal))]
	if choice == game.SeeCards {
		d.View = true
		bets := slices.DeleteFunc(slices.Clone(s.Legal), func(a game.Action) bool { return a == game.SeeCards })
		choice = bets[r.rng.IntN(len(bets))]
	}
	d.Action = choice
	d.Reasoning = "rand-bot random action"
	return d
}
