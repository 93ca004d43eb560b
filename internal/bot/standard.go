package bot

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/teenpatti/internal/evaluator"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/randutil"
)

// Probabilities tunes the standard policy.
type Probabilities struct {
	View  float64 // look at an unseen hand
	Raise float64 // raise holding a sequence or better
	Fold  float64 // fold holding a pair or worse
	Show  float64 // ask for a show when two players remain
}

// DefaultProbabilities returns the stock table's tuning.
func DefaultProbabilities() Probabilities {
	return Probabilities{View: 0.4, Raise: 0.6, Fold: 0.3, Show: 0.2}
}

// Validate checks every probability is within [0, 1].
func (p Probabilities) Validate() error {
	for name, v := range map[string]float64{
		"view_probability": p.View, "raise_probability": p.Raise,
		"fold_probability": p.Fold, "show_probability": p.Show,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", name, v)
		}
	}
	return nil
}

// StandardBot plays on hand category with a few coin flips. It sizes up its
// own hand even before looking.
type StandardBot struct {
	rng    randutil.Source
	probs  Probabilities
	logger *log.Logger
}

// NewStandardBot creates a new StandardBot
func NewStandardBot(rng randutil.Source, probs Probabilities, logger *log.Logger) *StandardBot {
	return &StandardBot{rng: rng, probs: probs, logger: logger}
}

// Decide draws from the rng in a fixed order: view (only while unseen),
// raise (only with a sequence or better), fold (only with a pair or worse)
// and show (only with two players left).
func (b *StandardBot) Decide(s Situation) Decision {
	thinking := &ThinkingContext{}
	d := Decision{Action: game.Call}

	if !s.HasViewedHand && b.rng.Float64() < b.probs.View {
		d.View = true
		thinking.AddThought("taking a look")
	}

	rank := evaluator.Evaluate(s.Hand)
	switch {
	case rank.Category >= evaluator.Sequence:
		if b.rng.Float64() < b.probs.Raise {
			d.Action = game.Raise
			thinking.AddThought(fmt.Sprintf("%s is strong, raising", rank.Name()))
		} else {
			thinking.AddThought(fmt.Sprintf("slow playing %s", rank.Name()))
		}
	case rank.Category <= evaluator.Pair:
		if b.rng.Float64() < b.probs.Fold {
			d.Action = game.Fold
			thinking.AddThought(fmt.Sprintf("%s is weak, folding", rank.Name()))
		} else {
			thinking.AddThought(fmt.Sprintf("calling with %s", rank.Name()))
		}
	default:
		thinking.AddThought(fmt.Sprintf("calling with %s", rank.Name()))
	}

	if s.Contenders == 2 && b.rng.Float64() < b.probs.Show {
		d.Action = game.RequestShow
		thinking.AddThought("heads up, asking for a show")
	}

	d = fallback(s, d, thinking)
	d.Reasoning = thinking.GetThoughts()

	b.logger.Debug("Bot decision made",
		"player", s.Name,
		"hand", rank,
		"view", d.View,
		"decision", d.Action,
		"reasoning", d.Reasoning)
	return d
}
