package ws

import "encoding/json"

// Inbound event names on the wire.
const (
	EventJoinRoom    = "joinRoom"
	EventChatMessage = "chatMessage"
)

// Envelope frames every websocket message as {"event":..., "data":...}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type joinRoomPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

type chatMessagePayload struct {
	Text string `json:"text"`
}

// encode wraps an outbound payload in the event envelope.
func encode(event string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
