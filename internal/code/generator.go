// Package code generates and validates the short human-typeable
// identifiers used to address rooms.
package code

import (
	"crypto/rand"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the canonical room-code alphabet. Codes are always stored
// and compared in this uppercase form.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	DefaultLength = 6
	MaxLength     = 12
)

// Generator produces random room codes of a fixed length.
type Generator struct {
	length int
}

// NewGenerator creates a generator. length must be between 1 and MaxLength;
// anything else falls back to DefaultLength.
func NewGenerator(length int) *Generator {
	if length < 1 || length > MaxLength {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Generate returns a fresh random code. The generator gives no uniqueness
// guarantee; the registry enforces that on insert.
func (g *Generator) Generate() (string, error) {
	id, err := gonanoid.Generate(Alphabet, g.length)
	if err == nil {
		return id, nil
	}

	// Fallback to raw crypto/rand if nanoid is unavailable.
	buf := make([]byte, g.length)
	if _, randErr := rand.Read(buf); randErr != nil {
		return "", fmt.Errorf("generate room code: %w", err)
	}
	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(buf), nil
}

// Length returns the configured code length.
func (g *Generator) Length() int {
	return g.length
}

// Canonicalize maps arbitrary client input onto the canonical code form.
// Total and deterministic: the same input always yields the same output.
func Canonicalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate reports whether a canonical code is well-formed. It does not
// check existence.
func Validate(code string) error {
	if code == "" {
		return fmt.Errorf("room code is required")
	}
	if len(code) > MaxLength {
		return fmt.Errorf("room code is too long")
	}
	for _, r := range code {
		if !strings.ContainsRune(Alphabet, r) {
			return fmt.Errorf("room code must be alphanumeric")
		}
	}
	return nil
}
