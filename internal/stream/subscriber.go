package stream

// Subscriber is one streaming consumer of a room's new messages.
type Subscriber struct {
	ID     string
	Room   string
	Events chan Event
}

// NewSubscriber constructs a subscriber for the given canonical room code
// with a buffered event channel.
func NewSubscriber(id, room string) *Subscriber {
	return &Subscriber{
		ID:     id,
		Room:   room,
		Events: make(chan Event, 16),
	}
}
