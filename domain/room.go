package domain

import "github.com/google/uuid"

// HistoryLimit bounds the number of messages retained per room.
// Older messages are evicted first once the bound is exceeded.
const HistoryLimit = 100

// Room is a named broadcast group with a bounded message history and a
// set of live member connections. Room is not safe for concurrent use;
// the registry owning it serializes all access.
type Room struct {
	Name    string
	history []Message
	members map[uuid.UUID]struct{}
}

func NewRoom(name string) *Room {
	return &Room{
		Name:    name,
		members: make(map[uuid.UUID]struct{}),
	}
}

// Append adds a message to the history, evicting from the front when
// the bound is exceeded. Eviction is strict FIFO.
func (r *Room) Append(msg Message) {
	r.history = append(r.history, msg)
	if len(r.history) > HistoryLimit {
		r.history = r.history[len(r.history)-HistoryLimit:]
	}
}

// History returns a copy of the message history in insertion order.
func (r *Room) History() []Message {
	out := make([]Message, len(r.history))
	copy(out, r.history)
	return out
}

func (r *Room) AddMember(id uuid.UUID) {
	r.members[id] = struct{}{}
}

// RemoveMember is a no-op when the connection is not a member.
func (r *Room) RemoveMember(id uuid.UUID) {
	delete(r.members, id)
}

func (r *Room) IsMember(id uuid.UUID) bool {
	_, ok := r.members[id]
	return ok
}

// Members returns a snapshot of the live member connection IDs.
func (r *Room) Members() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(r.members))
	for id := range r.members {
		out = append(out, id)
	}
	return out
}
