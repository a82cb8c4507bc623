// Package chat holds the room-presence registry and the broadcast
// coordinator that fans chat traffic out to room members.
package chat

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Outbound event names shared with the transport layer.
const (
	EventMessage   = "message"
	EventRoomUsers = "roomUsers"
)

// Transport is the capability the coordinator needs from the realtime
// connection multiplexer. Sends are fire-and-forget: delivering to a
// connection that has already closed must be a silent drop on the
// transport side, never an error that reaches the coordinator.
type Transport interface {
	// JoinGroup subscribes a connection to a room's multicast group.
	JoinGroup(connID, room string)
	// Emit sends one event to one connection.
	Emit(connID, event string, v any) error
	// BroadcastToRoom sends an event to every connection in a room,
	// skipping exclude when non-empty.
	BroadcastToRoom(room, event string, v any, exclude string)
}

// Config carries coordinator policy knobs.
type Config struct {
	// UniqueNames refuses a join whose display name is already present in
	// the target room. Off by default: duplicate names are allowed, which
	// matches the historical behaviour.
	UniqueNames bool
}

// Coordinator turns transport-level events into registry mutations and
// addressed broadcasts. Events are handled one at a time under mu, so
// every broadcast an event triggers is emitted before the next event is
// processed.
type Coordinator struct {
	mu        sync.Mutex
	reg       *Registry
	transport Transport
	log       *slog.Logger
	cfg       Config
	now       func() time.Time
}

// NewCoordinator wires the coordinator to its registry and transport.
func NewCoordinator(reg *Registry, t Transport, log *slog.Logger, cfg Config) *Coordinator {
	return &Coordinator{reg: reg, transport: t, log: log, cfg: cfg, now: time.Now}
}

// SetClock overrides the wall clock used for message timestamps.
func (c *Coordinator) SetClock(now func() time.Time) { c.now = now }

// HandleJoin processes a join request: records the participant, puts the
// connection in the room's multicast group, welcomes the joiner, tells
// the rest of the room, then broadcasts the refreshed member list to
// everyone including the joiner. Missing username/room arrive as empty
// strings and are accepted as-is.
func (c *Coordinator) HandleJoin(connID, username, room string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg.UniqueNames && c.nameTaken(room, username) {
		_ = c.transport.Emit(connID, EventMessage,
			newMessage(KindSystem, BotName, fmt.Sprintf("The name %q is already taken in this room", username), c.now()))
		return
	}

	p := c.reg.Join(connID, username, room)
	c.transport.JoinGroup(connID, p.Room)

	_ = c.transport.Emit(connID, EventMessage,
		newMessage(KindSystem, BotName, WelcomeText, c.now()))
	c.transport.BroadcastToRoom(p.Room, EventMessage,
		newMessage(KindSystem, BotName, p.Username+" has joined the chat", c.now()), connID)

	// Snapshot goes last so the list already reflects the joiner.
	c.broadcastRoomUsers(p.Room, "")

	c.log.Debug("chat.join", "conn", connID, "user", p.Username, "room", p.Room)
}

// HandleChat echoes a chat message to everyone in the sender's room,
// the sender included. A message from a connection with no participant
// raced with a leave and is dropped without comment.
func (c *Coordinator) HandleChat(connID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.reg.Get(connID)
	if !ok {
		return
	}
	c.transport.BroadcastToRoom(p.Room, EventMessage,
		newMessage(KindUser, p.Username, text, c.now()), "")
}

// HandleDisconnect removes the participant and notifies the remaining
// room members. Idempotent: a connection that never joined, or whose
// leave was already processed, causes no broadcast at all.
func (c *Coordinator) HandleDisconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.reg.Leave(connID)
	if !ok {
		return
	}

	// The departed connection is excluded explicitly; the transport has
	// likely dropped it already, but we do not rely on that.
	c.transport.BroadcastToRoom(p.Room, EventMessage,
		newMessage(KindSystem, BotName, p.Username+" has left the chat", c.now()), connID)
	c.broadcastRoomUsers(p.Room, connID)

	c.log.Debug("chat.leave", "conn", connID, "user", p.Username, "room", p.Room)
}

func (c *Coordinator) broadcastRoomUsers(room, exclude string) {
	c.transport.BroadcastToRoom(room, EventRoomUsers,
		RoomUsers{Room: room, Users: c.reg.ListByRoom(room)}, exclude)
}

func (c *Coordinator) nameTaken(room, username string) bool {
	for _, u := range c.reg.ListByRoom(room) {
		if u.Username == username {
			return true
		}
	}
	return false
}
