package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/lox/teenpatti/internal/game"
)

type keyMap struct {
	Start    key.Binding
	See      key.Binding
	Fold     key.Binding
	Call     key.Binding
	Raise    key.Binding
	Show     key.Binding
	NewRound key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		See:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "see cards")),
		Fold:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fold")),
		Call:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "call")),
		Raise:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "raise")),
		Show:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "show")),
		NewRound: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new round")),
		Reset:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset table")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// sync enables exactly the bindings that make sense for snap, so the help
// line never offers a rejected command.
func (k *keyMap) sync(snap game.Snapshot) {
	legal := make(map[game.Action]bool, len(snap.LegalActions))
	for _, a := range snap.LegalActions {
		legal[a] = true
	}

	k.Start.SetEnabled(snap.Phase == game.Idle || snap.Phase == game.Finished)
	k.NewRound.SetEnabled(snap.Phase == game.Finished)
	k.See.SetEnabled(legal[game.SeeCards])
	k.Fold.SetEnabled(legal[game.Fold])
	k.Call.SetEnabled(legal[game.Call])
	k.Raise.SetEnabled(legal[game.Raise])
	k.Show.SetEnabled(legal[game.RequestShow])

	if snap.Phase == game.Finished {
		k.Start.SetHelp("s", "play again")
	} else {
		k.Start.SetHelp("s", "start")
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.See, k.Call, k.Raise, k.Show, k.Fold, k.NewRound, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.NewRound, k.Reset},
		{k.See, k.Call, k.Raise},
		{k.Show, k.Fold},
		{k.Help, k.Quit},
	}
}
