package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/teenpatti/internal/game"
)

// FoldBot is a simple bot that always folds
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Decide(Situation) Decision {
	return Decision{Action: game.Fold, Reasoning: "fold-bot folding"}
}
