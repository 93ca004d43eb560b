package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/teenpatti/internal/game"
)

// CallBot never looks and always calls, showing or folding once broke
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(s Situation) Decision {
	thinking := &ThinkingContext{}
	thinking.AddThought("call-bot calling")
	d := fallback(s, Decision{Action: game.Call}, thinking)
	d.Reasoning = thinking.GetThoughts()
	return d
}
