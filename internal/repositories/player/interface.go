package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/imposterparty/imposterd/internal/repositories/player Repository

import (
	"context"

	"github.com/imposterparty/imposterd/internal/models"
)

// Repository defines the interface for player document persistence
type Repository interface {
	// CreatePlayer inserts a player document
	CreatePlayer(ctx context.Context, input *CreatePlayerInput) error

	// GetPlayer retrieves one player by (session, player) pair
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// ListPlayers returns all players in a session, optionally alive only
	ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error)

	// SetPlayerFields applies a partial update; reports whether a player matched
	SetPlayerFields(ctx context.Context, input *SetPlayerFieldsInput) (bool, error)

	// ClearImposters sets is_imposter=false on every player in the session
	ClearImposters(ctx context.Context, input *ClearImpostersInput) error

	// ResetForNewRound revives all players and clears role and vote counters
	ResetForNewRound(ctx context.Context, input *ResetForNewRoundInput) error

	// TouchHeartbeat stamps a player's heartbeat; reports whether a player matched
	TouchHeartbeat(ctx context.Context, input *TouchHeartbeatInput) (bool, error)

	// MarkDead sets is_alive=false on the given players
	MarkDead(ctx context.Context, input *MarkDeadInput) error

	// DeletePlayers removes every player document for a session
	DeletePlayers(ctx context.Context, input *DeletePlayersInput) error
}
