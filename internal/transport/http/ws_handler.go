package http

import (
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/huddlechat/huddle-server/internal/core"
	"github.com/huddlechat/huddle-server/internal/stream"
)

// StreamHandler upgrades HTTP connections to a read-only websocket that
// pushes new room messages as they are appended. Polling the messages
// endpoint remains the baseline contract; this is a fast path only.
type StreamHandler struct {
	registry *core.Registry
	hub      *stream.Hub
	log      *zerolog.Logger
}

// NewStreamHandler builds a new stream handler.
func NewStreamHandler(reg *core.Registry, hub *stream.Hub, logger *zerolog.Logger) *StreamHandler {
	return &StreamHandler{registry: reg, hub: hub, log: logger}
}

// Stream subscribes the connection to one room's new messages.
// GET /api/rooms/:code/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	room, err := h.registry.Get(c.Param("code"))
	if err != nil {
		if errors.Is(err, core.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	sub := stream.NewSubscriber(uuid.NewString(), room.Code)
	h.hub.Subscribe(sub)
	defer h.hub.Unsubscribe(sub)

	// The stream carries no inbound commands; CloseRead watches for the
	// client going away.
	ctx := conn.CloseRead(c.Request.Context())

	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "room closed")
				return
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Debug().Err(err).Str("subscriber_id", sub.ID).Msg("write stream event")
				return
			}
			if event.Kind == stream.EventRoomClosed {
				conn.Close(websocket.StatusNormalClosure, "room closed")
				return
			}
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "closing")
			return
		}
	}
}
