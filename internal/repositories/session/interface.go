package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/imposterparty/imposterd/internal/repositories/session Repository

import (
	"context"

	"github.com/imposterparty/imposterd/internal/models"
)

// Repository defines the interface for session document persistence
type Repository interface {
	// CreateSession inserts a new session; fails with ErrSessionExists on a code collision
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves a session with its player list, votes, and voters
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// UpdateSession applies a partial field update; reports whether a session matched
	UpdateSession(ctx context.Context, input *UpdateSessionInput) (bool, error)

	// AddPlayer adds a player ID to the session's player set (idempotent)
	AddPlayer(ctx context.Context, input *AddPlayerInput) error

	// RecordVote atomically records a vote and returns fresh counters
	RecordVote(ctx context.Context, input *RecordVoteInput) (*RecordVoteOutput, error)

	// CasPhase transitions current_phase only if it still has the expected value
	CasPhase(ctx context.Context, input *CasPhaseInput) (bool, error)

	// PurgePlayers removes player IDs from the player set, the voters set, and the votes map
	PurgePlayers(ctx context.Context, input *PurgePlayersInput) error

	// ListSessions returns sessions, optionally filtered by status
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// DeleteSession removes the session document and its vote structures
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
