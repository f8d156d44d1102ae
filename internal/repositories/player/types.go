package player

import "github.com/imposterparty/imposterd/internal/models"

// CreatePlayerInput contains the player document to insert
type CreatePlayerInput struct {
	Player *models.Player
}

// GetPlayerInput identifies one player within a session
type GetPlayerInput struct {
	SessionID string
	PlayerID  string
}

// ListPlayersInput identifies a session's players
type ListPlayersInput struct {
	SessionID string

	// AliveOnly filters out players who were voted out or evicted
	AliveOnly bool
}

// ListPlayersOutput contains the matching players
type ListPlayersOutput struct {
	Players []*models.Player
}

// PlayerUpdate is a partial player update; nil pointer fields are untouched
type PlayerUpdate struct {
	IsImposter    *bool
	IsAlive       *bool
	VotesReceived *int
}

// SetPlayerFieldsInput contains a partial update for one player
type SetPlayerFieldsInput struct {
	SessionID string
	PlayerID  string
	Update    *PlayerUpdate
}

// ClearImpostersInput identifies the session whose imposter flags to clear
type ClearImpostersInput struct {
	SessionID string
}

// ResetForNewRoundInput identifies the session whose players to reset
type ResetForNewRoundInput struct {
	SessionID string
}

// TouchHeartbeatInput identifies the player whose heartbeat to stamp
type TouchHeartbeatInput struct {
	SessionID string
	PlayerID  string
}

// MarkDeadInput identifies players to mark not alive
type MarkDeadInput struct {
	SessionID string
	PlayerIDs []string
}

// DeletePlayersInput identifies the session whose players to delete
type DeletePlayersInput struct {
	SessionID string
}
