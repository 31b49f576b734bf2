package ws

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"sportkalender-service/internal/controller"
	"sportkalender-service/internal/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames.
	maxMessageSize = 512
)

// MessageTypeSnapshot tags a pushed controller snapshot.
const MessageTypeSnapshot = "snapshot"

// Message is the envelope written to clients.
type Message struct {
	Type      string              `json:"type"`
	Data      controller.Snapshot `json:"data"`
	Timestamp time.Time           `json:"timestamp"`
}

type client struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger
	done   chan struct{}
}

func newClient(id string, conn *websocket.Conn, logger *slog.Logger) *client {
	return &client{
		id:     id,
		conn:   conn,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// readPump discards incoming messages and keeps the read deadline fresh on pongs.
// It closes done when the peer goes away.
func (c *client) readPump() {
	defer close(c.done)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn(c.logger, "websocket unexpected close", logging.FieldError, err)
			}
			return
		}
	}
}

// writePump forwards snapshots until the peer leaves, the context ends or updates closes.
func (c *client) writePump(ctx context.Context, updates <-chan controller.Snapshot) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.writeClose()
			return
		case <-c.done:
			return
		case snap, ok := <-updates:
			if !ok {
				c.writeClose()
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			msg := Message{Type: MessageTypeSnapshot, Data: snap, Timestamp: time.Now().UTC()}
			if err := c.conn.WriteJSON(msg); err != nil {
				logging.Warn(c.logger, "websocket write failed", logging.FieldError, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) writeClose() {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}
