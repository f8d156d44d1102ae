package game

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/imposterparty/imposterd/internal/common/clock"
	"github.com/imposterparty/imposterd/internal/common/ident"
	"github.com/imposterparty/imposterd/internal/models"
	"github.com/imposterparty/imposterd/internal/pick"
	playerRepo "github.com/imposterparty/imposterd/internal/repositories/player"
	sessionRepo "github.com/imposterparty/imposterd/internal/repositories/session"
	"github.com/imposterparty/imposterd/internal/topics"
)

// Placeholder topics stored until background generation completes
const (
	PlaceholderPlayerTopic   = "Sun"
	PlaceholderImposterTopic = "Moon"
)

// Player count bounds
const (
	// MinPlayersToStart is the minimum number of players required to start a round
	MinPlayersToStart = 2

	// MinMaxPlayers and MaxMaxPlayers bound the configurable session capacity
	MinMaxPlayers = 3
	MaxMaxPlayers = 20

	// DefaultMaxPlayers is used when a creator does not choose a capacity
	DefaultMaxPlayers = 8
)

// Default timings
const (
	DefaultDiscussionTime = 180 * time.Second
	DefaultVotingTime     = 60 * time.Second

	// DefaultHeartbeatTimeout is how long a player may go silent before eviction
	DefaultHeartbeatTimeout = 45 * time.Second

	// DefaultTopicTimeout bounds one background topic-generation attempt
	DefaultTopicTimeout = 20 * time.Second

	// DefaultAvailableWindow is the rolling window for listing joinable games
	DefaultAvailableWindow = 10 * time.Minute

	// DefaultOldGameThreshold is the age past which waiting games are swept
	DefaultOldGameThreshold = 30 * time.Minute
)

// createRetries is how many times a colliding session code is regenerated
const createRetries = 3

// Config holds configuration for the game service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository
	PlayerRepo  playerRepo.Repository

	// TopicProvider generates topic pairs; nil means fallback-only mode
	TopicProvider topics.Provider

	// Fallback supplies curated topics when the provider fails; defaults to the built-in table
	Fallback *topics.Fallback

	// Service dependencies
	Clock       clock.Clock
	IDGenerator ident.Generator
	Picker      pick.Picker
	Logger      *logrus.Logger

	// Timings; zero values pick the defaults above
	DiscussionTime   time.Duration
	VotingTime       time.Duration
	HeartbeatTimeout time.Duration
	TopicTimeout     time.Duration
	AvailableWindow  time.Duration
	OldGameThreshold time.Duration
}

// PlayerInfo is the public view of one player
type PlayerInfo struct {
	PlayerID      string `json:"player_id"`
	PlayerName    string `json:"player_name"`
	IsAlive       bool   `json:"is_alive"`
	VotesReceived int    `json:"votes_received"`
}

// ResultPlayer is the post-round view of one player, roles revealed
type ResultPlayer struct {
	PlayerID      string `json:"player_id"`
	PlayerName    string `json:"player_name"`
	IsImposter    bool   `json:"is_imposter"`
	IsAlive       bool   `json:"is_alive"`
	VotesReceived int    `json:"votes_received"`
}

// CreateGameInput contains parameters for creating a new game session
type CreateGameInput struct {
	CreatorID   string
	CreatorName string
	Category    string

	// MaxPlayers of 0 picks the default capacity
	MaxPlayers int
}

// CreateGameOutput contains the result of creating a game session
type CreateGameOutput struct {
	SessionID  string
	Category   string
	MaxPlayers int
}

// JoinGameInput contains parameters for joining a session
type JoinGameInput struct {
	SessionID  string
	PlayerID   string
	PlayerName string
}

// JoinGameOutput contains the result of joining a session
type JoinGameOutput struct {
	SessionID   string
	Category    string
	PlayerCount int
	MaxPlayers  int
}

// StartGameInput contains parameters for starting a round
type StartGameInput struct {
	SessionID string

	// PlayerID must match the session creator
	PlayerID string
}

// StartGameOutput contains the result of starting a round
type StartGameOutput struct {
	Status           models.SessionStatus
	ImposterAssigned bool
}

// GetGameInfoInput identifies a session and, optionally, the requesting player
type GetGameInfoInput struct {
	SessionID string

	// PlayerID, when set, has its heartbeat touched and sees its role-gated topic
	PlayerID string
}

// GetGameInfoOutput is the per-player view of a session
type GetGameInfoOutput struct {
	SessionID      string
	Category       string
	Status         models.SessionStatus
	CurrentPhase   models.GamePhase
	PlayerCount    int
	MaxPlayers     int
	DiscussionTime int
	VotingTime     int
	TopicsReady    bool
	Voters         []string
	Players        []*PlayerInfo
	RevealAt       *time.Time

	// YourTopic is only set for a playing session when PlayerID was given;
	// imposters see the imposter topic, everyone else the player topic
	YourTopic string
	TopicType string
}

// SubmitVoteInput contains one vote
type SubmitVoteInput struct {
	SessionID string
	VoterID   string
	TargetID  string
}

// SubmitVoteOutput contains the result of submitting a vote
type SubmitVoteOutput struct {
	// VotingEnded is true when this vote was the last one and the phase advanced
	VotingEnded bool
}

// EndVotingInput identifies the session whose voting phase to close
type EndVotingInput struct {
	SessionID string
}

// EndVotingOutput contains the result of closing the voting phase
type EndVotingOutput struct {
	CurrentPhase models.GamePhase
}

// TransitionToVotingInput identifies the session to move into voting
type TransitionToVotingInput struct {
	SessionID string
}

// TransitionToVotingOutput contains the result of opening the voting phase
type TransitionToVotingOutput struct {
	CurrentPhase models.GamePhase
	RevealAt     time.Time
}

// GetGameResultInput identifies the session whose outcome to compute or fetch
type GetGameResultInput struct {
	SessionID string
}

// GetGameResultOutput contains the round outcome and the revealed roster
type GetGameResultOutput struct {
	Result  *models.GameResult
	Players []*ResultPlayer
}

// NewRoundInput identifies the session to re-arm for another round
type NewRoundInput struct {
	SessionID string
}

// NewRoundOutput contains the result of starting a new round
type NewRoundOutput struct {
	Status       models.SessionStatus
	CurrentPhase models.GamePhase
}

// AvailableGame is one joinable session in a listing
type AvailableGame struct {
	SessionID   string    `json:"session_id"`
	Category    string    `json:"game_category"`
	PlayerCount int       `json:"player_count"`
	MaxPlayers  int       `json:"max_players"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListAvailableGamesInput contains parameters for listing joinable games
type ListAvailableGamesInput struct{}

// ListAvailableGamesOutput contains the joinable games, newest first
type ListAvailableGamesOutput struct {
	Games []*AvailableGame
}

// DeleteOldGamesInput contains parameters for the stale-session sweep
type DeleteOldGamesInput struct{}

// DeleteOldGamesOutput reports how many sessions the sweep removed
type DeleteOldGamesOutput struct {
	DeletedCount int
}

// DeleteGameInput identifies the session to delete
type DeleteGameInput struct {
	SessionID string
}

// DeleteGameOutput contains the result of deleting a session
type DeleteGameOutput struct{}

// HeartbeatInput identifies the player whose heartbeat to touch
type HeartbeatInput struct {
	SessionID string
	PlayerID  string
}

// HeartbeatOutput reports whether the player existed
type HeartbeatOutput struct {
	Acknowledged bool
}
