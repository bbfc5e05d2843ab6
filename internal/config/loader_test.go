package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("resolved path %q, want %q", resolved, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}

	def := Default()
	if cfg.Addr != def.Addr || cfg.MessageRetention != def.MessageRetention || cfg.RoomCodeLength != def.RoomCodeLength {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":9090\"\nmessage_retention: 50\nroom_ttl: 10m\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Addr)
	}
	if cfg.MessageRetention != 50 {
		t.Errorf("message_retention = %d, want 50", cfg.MessageRetention)
	}
	if cfg.RoomTTL != 10*time.Minute {
		t.Errorf("room_ttl = %v, want 10m", cfg.RoomTTL)
	}
	// Untouched keys keep their defaults.
	if cfg.RoomCodeLength != Default().RoomCodeLength {
		t.Errorf("room_code_length = %d, want default", cfg.RoomCodeLength)
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HUDDLE_ADDR", ":7070")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("addr = %q, want env override :7070", cfg.Addr)
	}
}

func TestUpdateFromSkipsZeroValues(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":1234", MessageRetention: 10})

	if cfg.Addr != ":1234" {
		t.Errorf("addr = %q, want :1234", cfg.Addr)
	}
	if cfg.MessageRetention != 10 {
		t.Errorf("message_retention = %d, want 10", cfg.MessageRetention)
	}
	if cfg.ShutdownTimeout != Default().ShutdownTimeout {
		t.Errorf("shutdown_timeout changed unexpectedly: %v", cfg.ShutdownTimeout)
	}
}
