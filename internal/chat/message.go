package chat

import "time"

// Bot identity for system notices (welcome, joined, left).
const (
	BotName     = "ChatterooBot"
	WelcomeText = "Welcome to Chatteroo"
)

// timeLayout renders message times as "hh:mm AM/PM" for display only.
// Not a sequence number; carries no ordering guarantee.
const timeLayout = "03:04 PM"

// Kind tags a message as a system notice or user chat in the data model.
// The wire payload stays {username,text,time}; legacy clients key off the
// username instead, so Kind is never serialized.
type Kind string

const (
	KindSystem Kind = "system"
	KindUser   Kind = "user"
)

// Message is the transient chat value fanned out to room members.
// Constructed at send time, discarded after delivery.
type Message struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	Time     string `json:"time"`
	Kind     Kind   `json:"-"`
}

func newMessage(kind Kind, username, text string, at time.Time) Message {
	return Message{
		Username: username,
		Text:     text,
		Time:     at.Format(timeLayout),
		Kind:     kind,
	}
}

// RoomUsers is the membership snapshot recomputed on every join/leave.
type RoomUsers struct {
	Room  string     `json:"room"`
	Users []RoomUser `json:"users"`
}

type RoomUser struct {
	Username string `json:"username"`
}
