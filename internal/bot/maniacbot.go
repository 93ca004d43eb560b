package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/teenpatti/internal/game"
)

// ManiacBot looks at its cards and raises every turn
type ManiacBot struct {
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(logger *log.Logger) *ManiacBot {
	return &ManiacBot{logger: logger}
}

func (m *ManiacBot) Decide(s Situation) Decision {
	thinking := &ThinkingContext{}
	d := Decision{Action: game.Raise, View: s.CanView()}
	thinking.AddThought("maniac raise")
	d = fallback(s, d, thinking)
	d.Reasoning = thinking.GetThoughts()
	return d
}
