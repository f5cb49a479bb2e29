package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/server" // Reuse message types
)

// ErrSendBufferFull is returned when outbound messages are not draining
var ErrSendBufferFull = errors.New("send buffer full")

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
)

// Client is a websocket connection to a blackjack server. Frames from the
// server are exposed on Messages; the channel closes when the link drops.
type Client struct {
	serverURL string
	conn      *websocket.Conn
	send      chan server.Inbound
	receive   chan server.Outbound
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	connected bool
	closeOnce sync.Once
}

// NewClient creates a client for serverURL. http(s) URLs are mapped to
// ws(s) and a bare host gets the /ws path.
func NewClient(serverURL string, logger *log.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		serverURL: serverURL,
		send:      make(chan server.Inbound, 256),
		receive:   make(chan server.Outbound, 256),
		logger:    logger.WithPrefix("client"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// WebSocketURL normalises a server address into a websocket URL
func WebSocketURL(serverURL string) (string, error) {
	if !strings.Contains(serverURL, "://") {
		serverURL = "ws://" + serverURL
	}

	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("invalid server URL: unsupported scheme %q", u.Scheme)
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

// Connect dials the server and starts the pumps
func (c *Client) Connect(ctx context.Context) error {
	wsURL, err := WebSocketURL(c.serverURL)
	if err != nil {
		return err
	}
	c.logger.Info("Connecting to server", "url", wsURL)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
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

// Disconnect closes the websocket connection
func (c *Client) Disconnect() error {
	c.closeOnce.Do(func() {
		c.cancel()

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.conn != nil {
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = c.conn.Close()
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

// Messages returns the stream of frames from the server
func (c *Client) Messages() <-chan server.Outbound {
	return c.receive
}

// SendMessage queues a message for the server
func (c *Client) SendMessage(msg server.Inbound) error {
	select {
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Join subscribes to a room and takes a seat in it
func (c *Client) Join(room, playerID, name string) error {
	return c.SendMessage(server.Inbound{Type: server.MessageTypeJoin, RoomName: room, PlayerID: playerID, Name: name})
}

// StartRound deals a new round in the room
func (c *Client) StartRound(room string) error {
	return c.SendMessage(server.Inbound{Type: server.MessageTypeStartRound, RoomName: room})
}

// Bet replaces the player's bet for the active round
func (c *Client) Bet(room, playerID string, amount int) error {
	return c.SendMessage(server.Inbound{Type: server.MessageTypeBet, RoomName: room, PlayerID: playerID, BetAmount: amount})
}

// Hit draws a card
func (c *Client) Hit(room, playerID string) error {
	return c.SendMessage(server.Inbound{Type: server.MessageTypeHit, RoomName: room, PlayerID: playerID})
}

// Stand ends the player's turn
func (c *Client) Stand(room, playerID string) error {
	return c.SendMessage(server.Inbound{Type: server.MessageTypeStand, RoomName: room, PlayerID: playerID})
}

// readPump handles incoming messages from the server
func (c *Client) readPump() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		close(c.receive)
	}()

	for {
		var msg server.Outbound
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.logger.Debug("Received message", "type", msg.Type, "room", msg.RoomName)

		select {
		case c.receive <- msg:
		case <-c.ctx.Done():
			return
		}
	}
}

// writePump handles outgoing messages to the server
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			payload, err := msg.Encode()
			if err != nil {
				c.logger.Error("Failed to encode message", "type", msg.Type, "error", err)
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
