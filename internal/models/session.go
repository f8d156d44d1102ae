package models

import "time"

// SessionStatus represents the coarse lifecycle state of a session
type SessionStatus string

const (
	// SessionStatusWaiting indicates a session is waiting for players to join
	SessionStatusWaiting SessionStatus = "waiting"

	// SessionStatusPlaying indicates a round is in progress
	SessionStatusPlaying SessionStatus = "playing"

	// SessionStatusEnded indicates the round has ended and results are available
	SessionStatusEnded SessionStatus = "ended"
)

// GamePhase represents the fine-grained step within a round
type GamePhase string

const (
	// GamePhaseWaiting indicates the session has not started a round yet
	GamePhaseWaiting GamePhase = "waiting"

	// GamePhaseDiscussion indicates players are describing their topic
	GamePhaseDiscussion GamePhase = "discussion"

	// GamePhaseVoting indicates players are casting votes
	GamePhaseVoting GamePhase = "voting"

	// GamePhaseReveal indicates voting has closed and the tally can run
	GamePhaseReveal GamePhase = "reveal"

	// GamePhaseResult indicates the outcome has been computed and cached
	GamePhaseResult GamePhase = "result"
)

// Session represents one game instance, identified by a short shareable code
type Session struct {
	// ID is the 5-character uppercase alphanumeric session code
	ID string

	// CreatorID is the player who created the session; only they may start it
	CreatorID string

	// Category drives topic generation
	Category string

	// PlayerTopic is shown to ordinary players; placeholder until generation completes
	PlayerTopic string

	// ImposterTopic is shown only to the imposter
	ImposterTopic string

	// TopicsReady gates the waiting -> playing transition
	TopicsReady bool

	// MaxPlayers bounds the player list
	MaxPlayers int

	// PlayerIDs is the set of registered player identifiers
	PlayerIDs []string

	Status       SessionStatus
	CurrentPhase GamePhase

	// ImposterID holds the hidden role for the current round; empty before assignment
	ImposterID string

	// Votes maps voter ID to target ID, at most one entry per voter
	Votes map[string]string

	// Voters is the set of voter IDs that have cast a vote this round
	Voters []string

	// DiscussionTime and VotingTime are phase lengths in seconds
	DiscussionTime int
	VotingTime     int

	// GameResult is the last computed outcome, or nil
	GameResult *GameResult

	CreatedAt time.Time
	UpdatedAt time.Time
	StartedAt *time.Time
	EndedAt   *time.Time
	RevealAt  *time.Time
}

// PlayerCount returns the number of registered players
func (s *Session) PlayerCount() int {
	return len(s.PlayerIDs)
}

// HasPlayer reports whether a player ID is in the session's player list
func (s *Session) HasPlayer(playerID string) bool {
	for _, id := range s.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}
