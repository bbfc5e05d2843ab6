package http

import (
	"time"

	"github.com/huddlechat/huddle-server/internal/core"
	"github.com/huddlechat/huddle-server/internal/stream"
)

// MessageResponse represents a stored message in API and stream payloads.
type MessageResponse struct {
	ID       string `json:"id"`
	RoomCode string `json:"roomCode"`
	Author   string `json:"author"`
	Body     string `json:"body"`
	SentAt   string `json:"sentAt"`
}

// StreamOutbound is the envelope for events pushed over the websocket
// stream.
type StreamOutbound struct {
	Type string           `json:"type"`
	Data *MessageResponse `json:"data,omitempty"`
}

const (
	streamTypeMessage    = "message"
	streamTypeRoomClosed = "room_closed"
)

func messageResponse(msg core.Message) MessageResponse {
	return MessageResponse{
		ID:       msg.ID,
		RoomCode: msg.RoomCode,
		Author:   msg.Author,
		Body:     msg.Body,
		SentAt:   msg.SentAt.Format(time.RFC3339Nano),
	}
}

func messageResponses(msgs []core.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, messageResponse(msg))
	}
	return out
}

func outboundFromEvent(event stream.Event) StreamOutbound {
	switch event.Kind {
	case stream.EventMessage:
		resp := messageResponse(event.Message)
		return StreamOutbound{Type: streamTypeMessage, Data: &resp}
	case stream.EventRoomClosed:
		return StreamOutbound{Type: streamTypeRoomClosed}
	default:
		return StreamOutbound{Type: streamTypeMessage}
	}
}
