package services

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"chat-relay/domain"
	apperrors "chat-relay/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	// MaxRooms bounds the total number of rooms for the process lifetime.
	// Rooms are never deleted, so creation past this bound always fails.
	MaxRooms = 15

	// CreateInterval is the minimum delay between two successful (or
	// throttle-consuming) room creations by the same identity.
	CreateInterval = 60 * time.Second
)

var roomNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type IRoomRegistry interface {
	CreateRoom(identity, name string) (string, error)
	ListRooms() []string
	JoinRoom(name string, connID uuid.UUID) ([]domain.Message, error)
	AppendMessage(name string, msg domain.Message) ([]uuid.UUID, error)
	RemoveMember(name string, connID uuid.UUID)
	DropConnection(connID uuid.UUID)
	RoomCount() int
}

// RoomRegistry owns the bounded set of chat rooms and the per-identity
// room-creation throttle. All room state lives behind its mutex; the
// broadcast engine never touches rooms directly, it only calls the
// registry's operations.
type RoomRegistry struct {
	mu           sync.RWMutex
	rooms        map[string]*domain.Room
	lastCreation map[string]time.Time
	log          *slog.Logger
	clock        func() time.Time
}

func NewRoomRegistry(log *slog.Logger) *RoomRegistry {
	return &RoomRegistry{
		rooms:        make(map[string]*domain.Room),
		lastCreation: make(map[string]time.Time),
		log:          log,
		clock:        time.Now,
	}
}

// CreateRoom validates and inserts a new empty room.
//
// The throttle timestamp is recorded before the capacity and duplicate
// checks, so a failed creation still consumes the rate-limit window.
// This mirrors the reference behaviour; see DESIGN.md before changing
// the order.
func (r *RoomRegistry) CreateRoom(identity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || !roomNamePattern.MatchString(name) {
		return "", apperrors.ErrInvalidRoomName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if last, ok := r.lastCreation[identity]; ok && r.clock().Sub(last) < CreateInterval {
		return "", apperrors.ErrRateLimited
	}
	r.lastCreation[identity] = r.clock()

	if len(r.rooms) >= MaxRooms {
		return "", apperrors.ErrRegistryFull
	}
	if _, exists := r.rooms[name]; exists {
		return "", apperrors.ErrRoomExists
	}

	r.rooms[name] = domain.NewRoom(name)
	r.log.Info("Room created", "room", name, "identity", identity, "total", len(r.rooms))
	return name, nil
}

// ListRooms returns a sorted snapshot of the current room names.
func (r *RoomRegistry) ListRooms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.rooms)
	sort.Strings(names)
	return names
}

// JoinRoom records the connection as a member and returns the current
// history, atomically, so the join-time replay cannot miss or duplicate
// a concurrently appended message.
func (r *RoomRegistry) JoinRoom(name string, connID uuid.UUID) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[name]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}

	room.AddMember(connID)
	return room.History(), nil
}

// AppendMessage appends to the room's bounded history and returns the
// snapshot of member connections the message must be fanned out to.
// A send to a vanished room returns ErrRoomNotFound; callers drop it
// silently per the best-effort delivery contract.
func (r *RoomRegistry) AppendMessage(name string, msg domain.Message) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[name]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}

	room.Append(msg)
	return room.Members(), nil
}

// RemoveMember detaches a connection from one room. Safe to call for a
// connection that never joined.
func (r *RoomRegistry) RemoveMember(name string, connID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[name]; ok {
		room.RemoveMember(connID)
	}
}

// DropConnection clears the connection from every room's membership set.
// The scan over all rooms guarantees no dangling membership survives a
// disconnect, whatever rooms the connection had joined.
func (r *RoomRegistry) DropConnection(connID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, room := range r.rooms {
		room.RemoveMember(connID)
	}
}

// RoomCount reports the current number of rooms, for the heartbeat log.
func (r *RoomRegistry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
