package session

import (
	"time"

	"github.com/imposterparty/imposterd/internal/models"
)

// CreateSessionInput contains the session document to insert
type CreateSessionInput struct {
	Session *models.Session
}

// GetSessionInput identifies the session to fetch
type GetSessionInput struct {
	SessionID string
}

// SessionUpdate is a partial session update; nil pointer fields are untouched
type SessionUpdate struct {
	PlayerTopic   *string
	ImposterTopic *string
	TopicsReady   *bool
	Status        *models.SessionStatus
	CurrentPhase  *models.GamePhase
	ImposterID    *string

	GameResult  *models.GameResult
	ClearResult bool

	StartedAt *time.Time
	EndedAt   *time.Time
	RevealAt  *time.Time

	ClearEndedAt  bool
	ClearRevealAt bool

	// ClearVotes empties the votes map and voters set
	ClearVotes bool
}

// UpdateSessionInput contains a partial update for one session
type UpdateSessionInput struct {
	SessionID string
	Update    *SessionUpdate
}

// AddPlayerInput adds one player ID to a session's player set
type AddPlayerInput struct {
	SessionID string
	PlayerID  string
}

// RecordVoteInput contains one vote to record
type RecordVoteInput struct {
	SessionID string
	VoterID   string
	TargetID  string
}

// RecordVoteOutput reports the counters read after the vote committed
type RecordVoteOutput struct {
	// AlreadyVoted is true when the voter had cast a vote before this call;
	// in that case nothing was written
	AlreadyVoted bool

	// VoterCount is the number of voters after the write
	VoterCount int

	// TargetVotes is the number of votes the target holds after the write
	TargetVotes int
}

// CasPhaseInput describes a conditional phase transition
type CasPhaseInput struct {
	SessionID string
	From      models.GamePhase
	To        models.GamePhase
}

// PurgePlayersInput removes players from a session's vote structures and player set
type PurgePlayersInput struct {
	SessionID string
	PlayerIDs []string
}

// ListSessionsInput optionally filters sessions by status
type ListSessionsInput struct {
	Status models.SessionStatus
}

// ListSessionsOutput contains the matching sessions.
// Votes and voters are not loaded for listings.
type ListSessionsOutput struct {
	Sessions []*models.Session
}

// DeleteSessionInput identifies the session to delete
type DeleteSessionInput struct {
	SessionID string
}
