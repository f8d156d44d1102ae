package game

import "context"

// Service defines the interface for game session operations
type Service interface {
	// CreateGame creates a new session and dispatches background topic generation
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// JoinGame adds a player to a waiting session
	JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error)

	// StartGame assigns the imposter and moves the session into discussion
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// GetGameInfo returns the per-player view of a session
	GetGameInfo(ctx context.Context, input *GetGameInfoInput) (*GetGameInfoOutput, error)

	// SubmitVote records a vote; closes the voting phase once everyone alive has voted
	SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error)

	// EndVoting closes the voting phase and readies the reveal
	EndVoting(ctx context.Context, input *EndVotingInput) (*EndVotingOutput, error)

	// TransitionToVoting moves the session from discussion into voting
	TransitionToVoting(ctx context.Context, input *TransitionToVotingInput) (*TransitionToVotingOutput, error)

	// GetGameResult computes the outcome once, then serves the cached result
	GetGameResult(ctx context.Context, input *GetGameResultInput) (*GetGameResultOutput, error)

	// NewRound re-arms the session for another round with fresh topics
	NewRound(ctx context.Context, input *NewRoundInput) (*NewRoundOutput, error)

	// ListAvailableGames returns recently created waiting sessions
	ListAvailableGames(ctx context.Context, input *ListAvailableGamesInput) (*ListAvailableGamesOutput, error)

	// DeleteOldGames sweeps away stale waiting sessions
	DeleteOldGames(ctx context.Context, input *DeleteOldGamesInput) (*DeleteOldGamesOutput, error)

	// DeleteGame removes a session and its players
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)

	// Heartbeat marks a player as still active
	Heartbeat(ctx context.Context, input *HeartbeatInput) (*HeartbeatOutput, error)
}
