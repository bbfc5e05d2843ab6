package stream

import "github.com/huddlechat/huddle-server/internal/core"

// EventKind is a notification the hub emits to subscribers.
type EventKind int

const (
	// EventMessage carries a message that was just appended to the room.
	EventMessage EventKind = iota
	// EventRoomClosed tells subscribers the room was evicted; no further
	// events will follow.
	EventRoomClosed
)

// Event is sent to subscribers to describe what happened in their room.
type Event struct {
	Kind    EventKind
	Room    string
	Message core.Message
}
