package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/huddlechat/huddle-server/internal/core"
)

// RoomHandlers provides HTTP handlers for room management endpoints.
type RoomHandlers struct {
	registry *core.Registry
	log      *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(reg *core.Registry, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		registry: reg,
		log:      logger,
	}
}

// CreateRoomRequest represents the create room request body. Code is
// optional; when absent the registry generates one.
type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=30"`
	CreatorName string `json:"creatorName" binding:"required,min=1,max=20"`
	Code        string `json:"code"`
}

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateRoom handles room creation.
// POST /api/rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid create room request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	room, err := h.registry.Create(req.Name, req.CreatorName, req.Code)
	if err != nil {
		if errors.Is(err, core.ErrCodeCollision) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "room code already exists"})
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		h.log.Error().Err(err).Str("room_name", req.Name).Msg("failed to create room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("room_code", room.Code).Str("room_name", room.Name).Msg("room created")
	c.JSON(http.StatusCreated, RoomResponse{
		Code: room.Code,
		Name: room.Name,
	})
}

// GetRoom handles room lookup, used both for join validation and for the
// room header.
// GET /api/rooms/:code
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	room, err := h.registry.Get(c.Param("code"))
	if err != nil {
		if errors.Is(err, core.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		h.log.Error().Err(err).Str("room_code", c.Param("code")).Msg("failed to get room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, RoomResponse{
		Code: room.Code,
		Name: room.Name,
	})
}
