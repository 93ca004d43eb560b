package game

import (
	"errors"
	"fmt"
)

// Rejection reasons carried by Result.Err. A rejected command leaves the
// table untouched.
var (
	ErrUnknownSeat     = errors.New("no such seat")
	ErrWrongPhase      = errors.New("action not allowed in this phase")
	ErrNotYourTurn     = errors.New("not this seat's turn")
	ErrSeatFolded      = errors.New("seat has folded")
	ErrAlreadySeen     = errors.New("hand already seen")
	ErrShowUnavailable = errors.New("show needs exactly two players left")
	ErrNoChips         = errors.New("no chips left to wager")
)

// ConfigError reports a table that cannot be built. It is the only fatal
// condition in the engine and surfaces from NewTable, never mid-round.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid table config: %s: %s", e.Field, e.Reason)
}
