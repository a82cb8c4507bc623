package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Join_Then_Get(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	// When a connection joins a room
	p := reg.Join("c1", "alice", "r1")

	// Then the participant is stored under its connection ID
	req.Equal(Participant{ConnID: "c1", Username: "alice", Room: "r1"}, p)
	got, ok := reg.Get("c1")
	req.True(ok)
	req.Equal(p, got)
}

func TestRegistry_Get_Unknown_Connection(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	_, ok := reg.Get("nope")
	req.False(ok)
}

func TestRegistry_Join_Twice_Last_Join_Wins(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	// Given a connection already joined as alice in r1
	reg.Join("c1", "alice", "r1")

	// When the same connection joins again as bob in r2
	reg.Join("c1", "bob", "r2")

	// Then the old record is fully replaced
	got, ok := reg.Get("c1")
	req.True(ok)
	req.Equal("bob", got.Username)
	req.Equal("r2", got.Room)
	req.Empty(reg.ListByRoom("r1"))
	req.Len(reg.ListByRoom("r2"), 1)
}

func TestRegistry_Leave_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Join("c1", "alice", "r1")

	// First leave returns the participant
	p, ok := reg.Leave("c1")
	req.True(ok)
	req.Equal("alice", p.Username)

	// Second leave reports not-found
	_, ok = reg.Leave("c1")
	req.False(ok)
}

func TestRegistry_ListByRoom_Join_Order_And_Filtering(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	reg.Join("c1", "alice", "r1")
	reg.Join("c2", "bob", "r2")
	reg.Join("c3", "carol", "r1")

	// Then listings are filtered per room and keep join order
	req.Equal([]RoomUser{{Username: "alice"}, {Username: "carol"}}, reg.ListByRoom("r1"))
	req.Equal([]RoomUser{{Username: "bob"}}, reg.ListByRoom("r2"))
	req.Empty(reg.ListByRoom("r3"))
}

func TestRegistry_Duplicate_Names_Are_Allowed(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	// Two connections may share a display name in the same room
	reg.Join("c1", "alice", "r1")
	reg.Join("c2", "alice", "r1")

	req.Equal([]RoomUser{{Username: "alice"}, {Username: "alice"}}, reg.ListByRoom("r1"))
}

func TestRegistry_Room_Exists_Only_While_Populated(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	reg.Join("c1", "alice", "r1")
	reg.Join("c2", "bob", "r1")
	reg.Join("c3", "carol", "r2")

	req.Equal([]RoomInfo{{Room: "r1", Members: 2}, {Room: "r2", Members: 1}}, reg.Rooms())

	// When the last member of r2 leaves, the room is gone
	reg.Leave("c3")
	req.Equal([]RoomInfo{{Room: "r1", Members: 2}}, reg.Rooms())
}
