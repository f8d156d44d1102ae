package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound    GameError = "game session not found"
	ErrPlayerNotFound     GameError = "player not found"
	ErrGameEnded          GameError = "game has ended"
	ErrGameInProgress     GameError = "game has already started"
	ErrGameFull           GameError = "game is full"
	ErrAlreadyJoined      GameError = "player already in this session"
	ErrNotCreator         GameError = "only the creator can start the game"
	ErrNotEnoughPlayers   GameError = "need at least 2 players to start"
	ErrTopicsPending      GameError = "topics are still being generated, please wait"
	ErrGameAlreadyStarted GameError = "game has already started"
	ErrNotInVotingPhase   GameError = "not in voting phase"
	ErrNotInDiscussion    GameError = "not in discussion phase"
	ErrAlreadyVoted       GameError = "you have already voted"
	ErrInvalidVoteTarget  GameError = "invalid vote target"
	ErrNoVotesRecorded    GameError = "no votes recorded"
	ErrResultsNotReady    GameError = "results are not ready to be revealed"
	ErrInvalidVoteOutcome GameError = "invalid vote outcome"
	ErrInvalidMaxPlayers  GameError = "max players must be between 3 and 20"
	ErrInvalidCategory    GameError = "game category cannot be empty"

	ErrNilConfig      GameError = "config cannot be nil"
	ErrNilSessionRepo GameError = "session repository cannot be nil"
	ErrNilPlayerRepo  GameError = "player repository cannot be nil"
	ErrNilClock       GameError = "clock cannot be nil"
	ErrNilIDGenerator GameError = "ID generator cannot be nil"
	ErrNilPicker      GameError = "picker cannot be nil"
)
