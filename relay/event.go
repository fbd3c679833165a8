// Package relay bridges persistent websocket connections to the room
// registry: it routes join/send/disconnect events and fans messages out
// to the live members of a room.
package relay

import (
	"encoding/json"
	"time"

	"chat-relay/domain"

	"github.com/samber/lo"
)

// Event names exchanged with clients. Client to server: joinRoom,
// sendMessage. Server to client: chatHistory (unicast on join),
// receiveMessage (room multicast), error (unicast).
const (
	EventJoinRoom       = "joinRoom"
	EventSendMessage    = "sendMessage"
	EventChatHistory    = "chatHistory"
	EventReceiveMessage = "receiveMessage"
	EventError          = "error"
)

// Envelope is the wire frame for every websocket event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type JoinRoomPayload struct {
	RoomName string `json:"roomName"`
	Username string `json:"username"`
}

type SendMessagePayload struct {
	RoomName string `json:"roomName"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// WireMessage is the client-facing shape of a chat message.
type WireMessage struct {
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func toWire(msg domain.Message) WireMessage {
	return WireMessage{
		Username:  msg.Username,
		Text:      msg.Text,
		Timestamp: msg.At,
	}
}

func toWireHistory(history []domain.Message) []WireMessage {
	return lo.Map(history, func(msg domain.Message, _ int) WireMessage {
		return toWire(msg)
	})
}

func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
