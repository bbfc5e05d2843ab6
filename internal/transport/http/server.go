package http

import (
	"fmt"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/huddlechat/huddle-server/internal/config"
	"github.com/huddlechat/huddle-server/internal/core"
	"github.com/huddlechat/huddle-server/internal/stream"
)

// NewServer builds the HTTP server exposing the room and message API.
func NewServer(reg *core.Registry, msgs *core.MessageLog, hub *stream.Hub, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	roomHandlers := NewRoomHandlers(reg, logger)
	messageHandlers := NewMessageHandlers(reg, msgs, newRateLimiter(cfg.AppendRateLimit), logger)
	streamHandler := NewStreamHandler(reg, hub, logger)

	api := router.Group("/api")
	api.POST("/rooms", roomHandlers.CreateRoom)
	api.GET("/rooms/:code", roomHandlers.GetRoom)
	api.GET("/rooms/:code/messages", messageHandlers.ListMessages)
	api.POST("/rooms/:code/messages", messageHandlers.AppendMessage)
	api.GET("/rooms/:code/stream", streamHandler.Stream)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	fmt.Fprint(c.Writer, "ok")
}
