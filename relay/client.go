package relay

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client is one persistent websocket connection. Its identity is a
// transient uuid scoped to the connection; the username travels in the
// event payloads.
type Client struct {
	ID   uuid.UUID
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	log  *slog.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, log *slog.Logger) *Client {
	return &Client{
		ID:   uuid.New(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		log:  log,
	}
}

// enqueue hands a frame to the write pump without blocking the hub
// loop. A slow consumer whose buffer is full loses the frame, matching
// the best-effort delivery contract.
func (c *Client) enqueue(payload []byte) {
	select {
	case c.send <- payload:
	default:
		c.log.Warn("Send buffer full, dropping frame", "connection", c.ID)
	}
}

// readPump pulls frames off the websocket and forwards well-formed
// envelopes to the hub. It owns the connection teardown: when the read
// loop exits for any reason the client is unregistered.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.log.Warn("Unexpected websocket error", "connection", c.ID, "error", err)
			}
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			c.log.Debug("Discarding malformed frame", "connection", c.ID, "error", err)
			continue
		}

		c.hub.Dispatch(c, envelope)
	}
}

// writePump drains the send channel onto the websocket and keeps the
// connection alive with periodic pings. It exits when the hub closes
// the send channel.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
