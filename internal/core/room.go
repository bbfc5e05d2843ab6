package core

import (
	"strings"
	"time"
)

// Field length bounds, shared by the registry and the message log.
const (
	MaxRoomNameLen    = 30
	MaxDisplayNameLen = 20
)

// Room is the domain model for a chat room. Immutable after creation.
type Room struct {
	Code        string
	Name        string
	CreatorName string
	CreatedAt   time.Time
}

func validateRoomName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidInput("room name is required")
	}
	if len(name) > MaxRoomNameLen {
		return "", invalidInput("room name is too long")
	}
	return name, nil
}

func validateDisplayName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidInput(field + " is required")
	}
	if len(name) > MaxDisplayNameLen {
		return "", invalidInput(field + " is too long")
	}
	return name, nil
}
