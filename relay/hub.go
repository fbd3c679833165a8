package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"chat-relay/domain"
	"chat-relay/services"

	"github.com/google/uuid"
)

type inbound struct {
	client   *Client
	envelope Envelope
}

// Hub runs the broadcast engine as a single event loop. Registration,
// unregistration, and every client event funnel through one goroutine,
// which is what guarantees per-room delivery order: messages reach the
// members of a room in the order their registry appends completed.
type Hub struct {
	registry   services.IRoomRegistry
	log        *slog.Logger
	register   chan *Client
	unregister chan *Client
	inbound    chan inbound
	clients    map[uuid.UUID]*Client
	connCount  atomic.Int64
	clock      func() time.Time
}

func NewHub(registry services.IRoomRegistry, log *slog.Logger) *Hub {
	return &Hub{
		registry:   registry,
		log:        log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inbound),
		clients:    make(map[uuid.UUID]*Client),
		clock:      time.Now,
	}
}

// Register hands a new connection to the hub loop. It returns once the
// loop has taken ownership, so events read afterwards cannot outrun the
// registration.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Dispatch forwards a decoded client event to the hub loop.
func (h *Hub) Dispatch(c *Client, envelope Envelope) {
	h.inbound <- inbound{client: c, envelope: envelope}
}

// ConnectionCount reports the number of live connections, for the
// heartbeat log.
func (h *Hub) ConnectionCount() int {
	return int(h.connCount.Load())
}

// Run processes hub events until the context is cancelled. It must run
// in exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, c := range h.clients {
				close(c.send)
			}
			h.clients = make(map[uuid.UUID]*Client)
			h.connCount.Store(0)
			h.log.Info("Hub stopped")
			return

		case c := <-h.register:
			h.clients[c.ID] = c
			h.connCount.Store(int64(len(h.clients)))
			h.log.Info("Connection registered", "connection", c.ID, "total", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c.ID]; !ok {
				continue
			}
			delete(h.clients, c.ID)
			h.connCount.Store(int64(len(h.clients)))
			h.registry.DropConnection(c.ID)
			close(c.send)
			h.log.Info("Connection dropped", "connection", c.ID, "total", len(h.clients))

		case in := <-h.inbound:
			h.handle(in)
		}
	}
}

func (h *Hub) handle(in inbound) {
	switch in.envelope.Event {
	case EventJoinRoom:
		h.handleJoin(in.client, in.envelope.Data)
	case EventSendMessage:
		h.handleSend(in.client, in.envelope.Data)
	default:
		h.sendError(in.client, "Unknown event")
	}
}

// handleJoin registers the connection as a room member and replays the
// room's history to this connection only. Joining a room that does not
// exist leaves the connection untouched apart from an error event.
func (h *Hub) handleJoin(c *Client, data json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(c, "Malformed joinRoom payload")
		return
	}

	history, err := h.registry.JoinRoom(payload.RoomName, c.ID)
	if err != nil {
		h.sendError(c, "Room not found")
		return
	}

	frame, err := encode(EventChatHistory, toWireHistory(history))
	if err != nil {
		h.log.Error("Encoding chat history failed", "room", payload.RoomName, "error", err)
		return
	}
	c.enqueue(frame)
	h.log.Debug("Connection joined room", "connection", c.ID, "room", payload.RoomName, "history", len(history))
}

// handleSend stamps the message with the server clock, appends it to
// the room history, and fans it out to every live member, sender
// included. A send to a vanished room is dropped, not errored.
func (h *Hub) handleSend(c *Client, data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(c, "Malformed sendMessage payload")
		return
	}

	if strings.TrimSpace(payload.Text) == "" {
		h.sendError(c, "Empty message")
		return
	}

	msg := domain.Message{
		ID:       uuid.New(),
		Username: payload.Username,
		Text:     payload.Text,
		At:       h.clock(),
	}

	members, err := h.registry.AppendMessage(payload.RoomName, msg)
	if err != nil {
		h.log.Debug("Dropping message to unknown room", "room", payload.RoomName)
		return
	}

	frame, err := encode(EventReceiveMessage, toWire(msg))
	if err != nil {
		h.log.Error("Encoding message failed", "room", payload.RoomName, "error", err)
		return
	}

	for _, id := range members {
		if member, ok := h.clients[id]; ok {
			member.enqueue(frame)
		}
	}
}

func (h *Hub) sendError(c *Client, message string) {
	frame, err := encode(EventError, ErrorPayload{Message: message})
	if err != nil {
		return
	}
	c.enqueue(frame)
}
