// Package ws is the realtime transport: it owns the live websockets and
// the per-room multicast groups, and feeds decoded client events to the
// chat coordinator.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"log/slog"

	"github.com/google/uuid"

	"github.com/YashGangan/chatteroo/internal/chat"
	"github.com/YashGangan/chatteroo/pkg/metrics"
)

// Hub tracks every open connection and the room groups used for
// multicast delivery. It is the chat.Transport implementation handed to
// the coordinator.
type Hub struct {
	log   *slog.Logger
	coord *chat.Coordinator

	mu    sync.RWMutex
	conns map[string]*Conn            // by connection ID
	rooms map[string]map[string]*Conn // room -> connID -> conn
}

// NewHub sets up an empty hub. Bind must be called before ServeWS.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		log:   logger,
		conns: map[string]*Conn{},
		rooms: map[string]map[string]*Conn{},
	}
}

// Bind attaches the coordinator that receives decoded client events.
// Separate from NewHub because the coordinator needs the hub as its
// transport.
func (h *Hub) Bind(c *chat.Coordinator) { h.coord = c }

// JoinGroup subscribes a connection to a room's multicast group. A
// connection belongs to at most one group; any previous membership is
// dropped first.
func (h *Hub) JoinGroup(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := h.conns[connID]
	if c == nil {
		return
	}
	h.leaveGroupsLocked(connID)
	g := h.rooms[room]
	if g == nil {
		g = map[string]*Conn{}
		h.rooms[room] = g
	}
	g[connID] = c
}

// Emit sends one event to one connection. An unknown or already-closed
// connection is a drop, not a fault.
func (h *Hub) Emit(connID, event string, v any) error {
	b, err := encode(event, v)
	if err != nil {
		return err
	}

	h.mu.RLock()
	c := h.conns[connID]
	h.mu.RUnlock()
	if c != nil {
		c.send(b)
	}
	return nil
}

// BroadcastToRoom fans an event out to every member of a room group,
// skipping exclude when non-empty.
func (h *Hub) BroadcastToRoom(room, event string, v any, exclude string) {
	b, err := encode(event, v)
	if err != nil {
		h.log.Error("ws.encode", "event", event, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.rooms[room] {
		if id == exclude {
			continue
		}
		c.send(b)
	}
}

// ServeWS handles a new /ws connection for its whole lifetime: upgrade,
// read loop, and the synthesized disconnect event when the socket dies.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	socket, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	ctx := r.Context()
	c := newConn(uuid.NewString(), socket)

	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()
	metrics.ConnectedClients.Inc()
	h.log.Debug("ws.connect", "conn", c.id)

	// Outbound writer
	go c.WriteLoop(ctx)

	// Inbound reader
	for {
		frame, ok := c.Read(ctx)
		if !ok {
			break
		}
		h.dispatch(c.id, frame)
	}

	// Remove from delivery first so no later broadcast can address the
	// dead socket, then let the coordinator notify the room.
	h.drop(c.id)
	_ = c.Close()
	metrics.ConnectedClients.Dec()
	h.log.Debug("ws.disconnect", "conn", c.id)
	h.coord.HandleDisconnect(c.id)
}

// dispatch decodes one inbound frame and routes it to the coordinator.
// Unknown events and malformed frames are ignored; missing payload
// fields pass through as empty strings.
func (h *Hub) dispatch(connID string, frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		h.log.Debug("ws.badframe", "conn", connID, "err", err)
		return
	}

	switch env.Event {
	case EventJoinRoom:
		var p joinRoomPayload
		_ = json.Unmarshal(env.Data, &p)
		h.coord.HandleJoin(connID, p.Username, p.Room)
	case EventChatMessage:
		var p chatMessagePayload
		_ = json.Unmarshal(env.Data, &p)
		metrics.MessagesTotal.Inc()
		h.coord.HandleChat(connID, p.Text)
	}
}

// drop removes a connection from the conn table and every room group.
func (h *Hub) drop(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connID)
	h.leaveGroupsLocked(connID)
}

func (h *Hub) leaveGroupsLocked(connID string) {
	for room, g := range h.rooms {
		if _, ok := g[connID]; ok {
			delete(g, connID)
			if len(g) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}
