package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeRoomNotFound  = "room_not_found"
	ErrCodeCodeCollision = "code_collision"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrRoomNotFound  = errors.New("room not found")
	ErrCodeCollision = errors.New("room code already taken")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

// Unwrap maps the error code onto its sentinel so callers can use errors.Is.
func (e *CoreError) Unwrap() error {
	switch e.Code {
	case ErrCodeInvalidInput:
		return ErrInvalidInput
	case ErrCodeRoomNotFound:
		return ErrRoomNotFound
	case ErrCodeCodeCollision:
		return ErrCodeCollision
	default:
		return nil
	}
}

func invalidInput(msg string) *CoreError {
	return &CoreError{Code: ErrCodeInvalidInput, Message: msg}
}
