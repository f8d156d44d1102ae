package ident

import (
	crand "crypto/rand"
	"math/big"
	mrand "math/rand"

	"github.com/google/uuid"
)

const (
	// SessionCodeLength is the length of generated session codes
	SessionCodeLength = 5

	// SessionCodeChars are the characters used for session codes
	SessionCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/imposterparty/imposterd/internal/common/ident Generator

// Generator produces identifiers for sessions and players
type Generator interface {
	// SessionCode returns a short human-shareable session code
	SessionCode() string

	// PlayerID returns a unique player identifier
	PlayerID() string
}

// DefaultGenerator implements Generator using crypto/rand codes and UUIDs
type DefaultGenerator struct{}

// New creates a new DefaultGenerator
func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// SessionCode returns a random 5-character uppercase alphanumeric code
func (g *DefaultGenerator) SessionCode() string {
	code := make([]byte, SessionCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(SessionCodeChars))))
		if err != nil {
			// fall back to math/rand if crypto fails
			code[i] = SessionCodeChars[mrand.Intn(len(SessionCodeChars))]
			continue
		}
		code[i] = SessionCodeChars[n.Int64()]
	}
	return string(code)
}

// PlayerID returns a new UUID
func (g *DefaultGenerator) PlayerID() string {
	return uuid.New().String()
}
