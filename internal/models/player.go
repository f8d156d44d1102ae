package models

import "time"

// Player represents one (session, player) pair
type Player struct {
	// SessionID is the session this player belongs to
	SessionID string

	// ID is the player's unique identifier
	ID string

	// Name is the display name shown to other players
	Name string

	// IsImposter is recomputed every round by the assignment step
	IsImposter bool

	// IsAlive is false once the player has been voted out or evicted
	IsAlive bool

	// VotesReceived is a display cache recomputed after every vote
	VotesReceived int

	JoinedAt      time.Time
	LastHeartbeat time.Time
}
