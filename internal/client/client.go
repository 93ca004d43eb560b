package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/server" // Reuse message types
)

// Client is a WebSocket client for a teenpatti server table
type Client struct {
	serverURL string
	conn      *websocket.Conn
	send      chan *server.Message
	states    chan server.StateData
	errors    chan server.ErrorData
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	connected bool
	last      game.Snapshot
	closeOnce sync.Once
}

// NewClient creates a new WebSocket client
func NewClient(serverURL string, logger *log.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		serverURL: serverURL,
		send:      make(chan *server.Message, 64),
		states:    make(chan server.StateData, 256),
		errors:    make(chan server.ErrorData, 16),
		logger:    logger.WithPrefix("client"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Connect dials the server's /ws endpoint
func (c *Client) Connect(ctx context.Context) error {
	c.logger.Info("Connecting to server", "url", c.serverURL)

	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readPump()
	go c.writePump()

	c.logger.Info("Connected to server")
	return nil
}

// Disconnect closes the WebSocket connection
func (c *Client) Disconnect() error {
	c.closeOnce.Do(func() {
		c.cancel()

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.conn != nil {
			_ = c.conn.Close() // Ignore close errors during shutdown
			c.connected = false
		}
		c.logger.Info("Disconnected from server")
	})
	return nil
}

// IsConnected returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// States delivers every state the server pushes, in order.
func (c *Client) States() <-chan server.StateData {
	return c.states
}

// Errors delivers rejected commands. Errors are dropped when nobody reads.
func (c *Client) Errors() <-chan server.ErrorData {
	return c.errors
}

// Last returns the most recent snapshot received.
func (c *Client) Last() game.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// SendMessage queues a message for the server
func (c *Client) SendMessage(msg *server.Message) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		return fmt.Errorf("send buffer full")
	}
}

// Command sends a table command: start, new_round, reset or a betting
// action such as call.
func (c *Client) Command(action string) error {
	msg, err := server.NewMessage(server.MessageTypeCommand, server.CommandData{Action: action})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// WaitForState reads states until match accepts one, or ctx ends.
func (c *Client) WaitForState(ctx context.Context, match func(game.Snapshot) bool) (server.StateData, error) {
	for {
		select {
		case st := <-c.states:
			if match(st.Snapshot) {
				return st, nil
			}
		case <-ctx.Done():
			return server.StateData{}, fmt.Errorf("waiting for state: %w", ctx.Err())
		case <-c.ctx.Done():
			return server.StateData{}, c.ctx.Err()
		}
	}
}

// readPump handles incoming messages from the server
func (c *Client) readPump() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}()

	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.logger.Debug("Received message", "type", msg.Type)

		if !c.handleMessage(&msg) {
			return
		}
	}
}

// handleMessage decodes msg and hands it on. It returns false once the
// client is shutting down.
func (c *Client) handleMessage(msg *server.Message) bool {
	switch msg.Type {
	case server.MessageTypeState:
		var st server.StateData
		if err := json.Unmarshal(msg.Data, &st); err != nil {
			c.logger.Error("Bad state message", "error", err)
			return true
		}
		c.mu.Lock()
		c.last = st.Snapshot
		c.mu.Unlock()
		select {
		case c.states <- st:
		case <-c.ctx.Done():
			return false
		}

	case server.MessageTypeError:
		var e server.ErrorData
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			c.logger.Error("Bad error message", "error", err)
			return true
		}
		c.logger.Debug("Command rejected", "code", e.Code, "message", e.Message)
		select {
		case c.errors <- e:
		default:
		}

	default:
		c.logger.Debug("No handler for message type", "type", msg.Type)
	}
	return true
}

// writePump handles outgoing messages to the server
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second) // Ping interval
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
