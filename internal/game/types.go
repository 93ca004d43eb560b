package game

import (
	"fmt"
	"strings"
)

// Phase is the stage of the current round
type Phase int

const (
	Idle Phase = iota
	Dealt
	Betting
	Show
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dealt:
		return "dealt"
	case Betting:
		return "betting"
	case Show:
		return "show"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Revealed reports whether every hand is face up in this phase.
func (p Phase) Revealed() bool {
	return p == Show || p == Finished
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{Idle, Dealt, Betting, Show, Finished} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Action represents a seat action during betting
type Action int

const (
	SeeCards Action = iota
	Fold
	Call
	Raise
	RequestShow
)

// Actions lists every action in display order.
var Actions = []Action{SeeCards, Fold, Call, Raise, RequestShow}

func (a Action) String() string {
	switch a {
	case SeeCards:
		return "see"
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Raise:
		return "raise"
	case RequestShow:
		return "show"
	default:
		return "unknown"
	}
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes anything ParseAction accepts.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction accepts the action names used by the CLI and the websocket
// protocol.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "see", "seecards", "see_cards", "view":
		return SeeCards, nil
	case "fold":
		return Fold, nil
	case "call", "chaal":
		return Call, nil
	case "raise":
		return Raise, nil
	case "show", "requestshow", "request_show":
		return RequestShow, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Kind says who drives a seat
type Kind int

const (
	Human Kind = iota
	Automated
)

func (k Kind) String() string {
	switch k {
	case Human:
		return "human"
	case Automated:
		return "automated"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes anything ParseKind accepts.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses "human" or "automated" ("bot" is accepted too).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return Human, nil
	case "automated", "bot":
		return Automated, nil
	}
	return 0, fmt.Errorf("unknown seat kind %q", s)
}
