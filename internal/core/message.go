package core

import "time"

// Message is the domain model for a chat message.
type Message struct {
	ID       string
	RoomCode string
	Author   string
	Body     string
	SentAt   time.Time
}
