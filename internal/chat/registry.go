package chat

import (
	"sort"
	"sync"
)

// Participant binds one live connection to a display name and room.
type Participant struct {
	ConnID   string
	Username string
	Room     string
}

// RoomInfo summarizes one active room for the directory endpoint.
type RoomInfo struct {
	Room    string `json:"room"`
	Members int    `json:"members"`
}

// Registry is the single source of truth for who is connected, as whom,
// in which room. Absence is reported with ok booleans, never errors:
// presence races (double disconnect, message after leave) are normal
// traffic here, not faults.
//
// Rooms are not allocated anywhere; a room exists exactly while at least
// one participant references it.
type Registry struct {
	mu           sync.RWMutex
	participants map[string]Participant // keyed by connection ID
	order        []string               // join order, keeps room listings stable
}

// NewRegistry returns an empty registry. One per process.
func NewRegistry() *Registry {
	return &Registry{participants: map[string]Participant{}}
}

// Join records a participant for connID. A repeat join for the same
// connection overwrites the previous record (last join wins). Username
// and room are stored as given; empty strings are accepted.
func (r *Registry) Join(connID, username, room string) Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := Participant{ConnID: connID, Username: username, Room: room}
	if _, exists := r.participants[connID]; !exists {
		r.order = append(r.order, connID)
	}
	r.participants[connID] = p
	return p
}

// Get looks up the participant for connID.
func (r *Registry) Get(connID string) (Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.participants[connID]
	return p, ok
}

// Leave removes and returns the participant for connID. The second call
// for the same connection reports not-found.
func (r *Registry) Leave(connID string) (Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[connID]
	if !ok {
		return Participant{}, false
	}
	delete(r.participants, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p, true
}

// ListByRoom returns the display names of everyone in room, in join order.
func (r *Registry) ListByRoom(room string) []RoomUser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []RoomUser
	for _, id := range r.order {
		if p := r.participants[id]; p.Room == room {
			users = append(users, RoomUser{Username: p.Username})
		}
	}
	return users
}

// Rooms lists every room with at least one participant, sorted by name.
func (r *Registry) Rooms() []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int{}
	for _, p := range r.participants {
		counts[p.Room]++
	}
	out := make([]RoomInfo, 0, len(counts))
	for room, n := range counts {
		out = append(out, RoomInfo{Room: room, Members: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Room < out[j].Room })
	return out
}
