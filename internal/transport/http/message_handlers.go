package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/huddlechat/huddle-server/internal/core"
)

// MessageHandlers provides HTTP handlers for the per-room message log.
type MessageHandlers struct {
	registry *core.Registry
	messages *core.MessageLog
	limiter  *rateLimiter
	log      *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(reg *core.Registry, msgs *core.MessageLog, limiter *rateLimiter, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		registry: reg,
		messages: msgs,
		limiter:  limiter,
		log:      logger,
	}
}

// AppendMessageRequest represents the append message request body.
type AppendMessageRequest struct {
	Author string `json:"author" binding:"required,min=1,max=20"`
	Body   string `json:"body" binding:"required"`
}

// ListMessagesResponse wraps the ordered message snapshot.
type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// ListMessages returns the room's current history, oldest first. This is
// the endpoint clients poll; it takes no locks beyond one room's read
// lock.
// GET /api/rooms/:code/messages
func (h *MessageHandlers) ListMessages(c *gin.Context) {
	rawCode := c.Param("code")
	if _, err := h.registry.Get(rawCode); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	msgs := h.messages.List(rawCode)
	c.JSON(http.StatusOK, ListMessagesResponse{Messages: messageResponses(msgs)})
}

// AppendMessage stores a message and echoes it back with its assigned id
// and timestamp.
// POST /api/rooms/:code/messages
func (h *MessageHandlers) AppendMessage(c *gin.Context) {
	if !h.limiter.allow() {
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many messages, slow down"})
		return
	}

	var req AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid append message request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.messages.Append(c.Param("code"), req.Author, req.Body)
	if err != nil {
		if errors.Is(err, core.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		h.log.Error().Err(err).Str("room_code", c.Param("code")).Msg("failed to append message")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Debug().Str("room_code", msg.RoomCode).Str("message_id", msg.ID).Msg("message appended")
	c.JSON(http.StatusCreated, messageResponse(msg))
}
