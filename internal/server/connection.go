package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/session"
)

// Connection is one browser or client playing its own session
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	session   *session.Session
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps conn and starts pushing the session's state to it
func NewConnection(conn *websocket.Conn, sess *session.Session, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		session: sess,
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
	sess.Subscribe(c.onEvent)
	return c
}

// Start sends the current state and begins handling the connection
func (c *Connection) Start() {
	c.sendState("", c.session.Snapshot())
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection and stops its session
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.session.Close()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client without blocking. A client
// that cannot keep up is disconnected.
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		// Callers may hold the session lock, so only signal the pumps here;
		// readPump finishes the close.
		c.logger.Warn("Connection send buffer full, closing connection")
		c.cancel()
		return ErrConnectionClosed
	}
}

// onEvent runs with the session locked, so it only queues.
func (c *Connection) onEvent(e game.Event, snap game.Snapshot) {
	c.sendState(e.EventType(), snap)
}

func (c *Connection) sendState(event game.EventType, snap game.Snapshot) {
	msg, err := NewMessage(MessageTypeState, StateData{Event: event, Snapshot: snap})
	if err != nil {
		c.logger.Error("Failed to create state message", "error", err)
		return
	}
	_ = c.SendMessage(msg) // Ignore send errors
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var ErrConnectionClosed = errors.New("connection closed")

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeCommand:
		var data CommandData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Failed to parse command data")
			return
		}
		c.handleCommand(data)

	default:
		c.sendError(ErrCodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleCommand(data CommandData) {
	var err error
	switch data.Action {
	case CommandStart:
		err = c.session.StartRound()
	case CommandNewRound:
		err = c.session.NewRound()
	case CommandReset:
		c.session.Reset()
	default:
		action, perr := game.ParseAction(data.Action)
		if perr != nil {
			c.sendError(ErrCodeUnknownCommand, perr.Error())
			return
		}
		err = c.session.Act(action).Err
	}

	if err != nil {
		c.logger.Debug("Command rejected", "action", data.Action, "error", err)
		c.sendError(ErrCodeIllegalAction, err.Error())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}
