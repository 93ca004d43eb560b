package server

import (
	"encoding/json"
	"time"

	"github.com/lox/teenpatti/internal/game"
)

// MessageType identifies a websocket message
type MessageType string

const (
	// Client → Server
	MessageTypeCommand MessageType = "command"

	// Server → Client
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Commands beyond the betting actions accepted by game.ParseAction.
const (
	CommandStart    = "start"
	CommandNewRound = "new_round"
	CommandReset    = "reset"
)

// CommandData asks the session to do something for the player
type CommandData struct {
	Action string `json:"action"`
}

// StateData carries the player's view after a change. Event is empty for
// the snapshot sent on connect.
type StateData struct {
	Event    game.EventType `json:"event,omitempty"`
	Snapshot game.Snapshot  `json:"snapshot"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeUnknownType    = "unknown_message_type"
	ErrCodeUnknownCommand = "unknown_command"
	ErrCodeIllegalAction  = "illegal_action"
)
