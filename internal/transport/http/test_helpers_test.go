package http

import (
	"context"
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/huddlechat/huddle-server/internal/code"
	"github.com/huddlechat/huddle-server/internal/config"
	"github.com/huddlechat/huddle-server/internal/core"
	"github.com/huddlechat/huddle-server/internal/stream"
)

type testEnv struct {
	registry *core.Registry
	messages *core.MessageLog
	hub      *stream.Hub
	server   *stdhttp.Server
}

func newTestEnv(t *testing.T, mutate func(cfg *config.Config)) *testEnv {
	t.Helper()

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.ReadHeaderTimeout = time.Second
	if mutate != nil {
		mutate(&cfg)
	}

	registry := core.NewRegistry(code.NewGenerator(cfg.RoomCodeLength), cfg.RoomTTL)
	messages := core.NewMessageLog(registry, cfg.MessageRetention)
	hub := stream.NewHub()
	messages.SetPublisher(hub)
	registry.SetEvictFunc(func(roomCode string) {
		messages.Drop(roomCode)
		hub.CloseRoom(roomCode)
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	disabledLogger := zerolog.New(nil)
	server := NewServer(registry, messages, hub, &cfg, &disabledLogger)

	return &testEnv{
		registry: registry,
		messages: messages,
		hub:      hub,
		server:   server,
	}
}
