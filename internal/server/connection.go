package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Frames buffered per connection before it is treated as a slow consumer
	sendBufferSize = 256
)

// Connection is one websocket client. It carries no game state: the
// Registry maps its id to a seat.
type Connection struct {
	id        ConnID
	conn      *websocket.Conn
	send      chan []byte
	hub       *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newConnection(conn *websocket.Conn, hub *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	id := NewConnID()

	return &Connection{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		hub:    hub,
		logger: logger.WithPrefix("conn").With("conn", id),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ID returns the connection identity
func (c *Connection) ID() ConnID {
	return c.id
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Send queues a frame without blocking. A full buffer closes the connection.
func (c *Connection) Send(payload []byte) bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
	}

	select {
	case c.send <- payload:
		return true
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return false
	}
}

// readPump forwards incoming frames to the hub
func (c *Connection) readPump() {
	defer func() {
		_ = c.Close()
		c.hub.leave(c)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			c.logger.Warn("Dropping non-text frame", "frameType", messageType)
			continue
		}

		if !c.hub.receive(c.id, data) {
			return
		}
	}
}

// writePump drains queued frames to the client and keeps the link alive
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case payload := <-c.send:
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
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
