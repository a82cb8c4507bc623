package ws

import (
	"encoding/json"
	"io"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/require"

	"github.com/YashGangan/chatteroo/internal/chat"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// attach registers a conn without a real socket; only the outbound
// queue is exercised by these tests.
func attach(h *Hub, id string) *Conn {
	c := newConn(id, nil)
	h.mu.Lock()
	h.conns[id] = c
	h.mu.Unlock()
	return c
}

func recv(t *testing.T, c *Conn) []byte {
	t.Helper()
	select {
	case b := <-c.out:
		return b
	default:
		t.Fatalf("no frame queued for conn %s", c.id)
		return nil
	}
}

func assertEmpty(t *testing.T, c *Conn) {
	t.Helper()
	select {
	case b := <-c.out:
		t.Fatalf("unexpected frame for conn %s: %s", c.id, b)
	default:
	}
}

func TestHub_Emit_Delivers_To_One_Connection(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	c1 := attach(h, "c1")
	c2 := attach(h, "c2")

	req.NoError(h.Emit("c1", chat.EventMessage, chat.Message{Username: "alice", Text: "hi", Time: "03:04 PM"}))

	var env Envelope
	req.NoError(json.Unmarshal(recv(t, c1), &env))
	req.Equal(chat.EventMessage, env.Event)
	assertEmpty(t, c2)
}

func TestHub_Emit_To_Unknown_Connection_Is_A_Drop(t *testing.T) {
	req := require.New(t)
	h := newTestHub()

	// Sends to closed/unknown connections never surface as errors
	req.NoError(h.Emit("gone", chat.EventMessage, chat.Message{}))
}

func TestHub_BroadcastToRoom_Honors_Groups_And_Exclusion(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	c1 := attach(h, "c1")
	c2 := attach(h, "c2")
	c3 := attach(h, "c3")
	h.JoinGroup("c1", "r1")
	h.JoinGroup("c2", "r1")
	h.JoinGroup("c3", "r2")

	h.BroadcastToRoom("r1", chat.EventMessage, chat.Message{Username: "alice", Text: "hi"}, "c1")

	// Only the non-excluded member of r1 receives the frame
	assertEmpty(t, c1)
	req.NotNil(recv(t, c2))
	assertEmpty(t, c3)
}

func TestHub_JoinGroup_Moves_Connection_Between_Rooms(t *testing.T) {
	req := require.New(t)
	h := newTestHub()
	c1 := attach(h, "c1")

	h.JoinGroup("c1", "r1")
	h.JoinGroup("c1", "r2")

	h.BroadcastToRoom("r1", chat.EventMessage, chat.Message{}, "")
	assertEmpty(t, c1)

	h.BroadcastToRoom("r2", chat.EventMessage, chat.Message{}, "")
	req.NotNil(recv(t, c1))

	// The emptied r1 group is cleaned up
	h.mu.RLock()
	defer h.mu.RUnlock()
	req.NotContains(h.rooms, "r1")
}

func TestHub_Drop_Stops_All_Delivery(t *testing.T) {
	h := newTestHub()
	c1 := attach(h, "c1")
	h.JoinGroup("c1", "r1")

	h.drop("c1")

	_ = h.Emit("c1", chat.EventMessage, chat.Message{})
	h.BroadcastToRoom("r1", chat.EventMessage, chat.Message{}, "")
	assertEmpty(t, c1)
}
