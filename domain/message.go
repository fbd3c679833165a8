// Package domain contains core concepts of the chat relay.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable chat event.
// The timestamp is assigned by the server at receipt, never by clients.
type Message struct {
	ID       uuid.UUID
	Username string
	Text     string
	At       time.Time
}
