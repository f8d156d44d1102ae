package models

// Winner labels for a round outcome
const (
	WinnersImposter     = "Imposter"
	WinnersOtherPlayers = "All other players"
)

// GameResult is the outcome of one round's vote tally
type GameResult struct {
	// VotedOutIDs holds every player eliminated this round; more than one on a tie
	VotedOutIDs   []string `json:"voted_out_ids"`
	VotedOutNames []string `json:"voted_out_names"`

	// VotedOutID and VotedOutName mirror the first eliminated player for
	// clients that only render a single elimination
	VotedOutID   string `json:"voted_out_id"`
	VotedOutName string `json:"voted_out_name"`

	IsTie            bool   `json:"is_tie"`
	IsImposterCaught bool   `json:"is_imposter_caught"`
	ImposterID       string `json:"imposter_id"`

	Winners string `json:"winners"`
	Message string `json:"message"`
}
