package httpapi

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/imposterparty/imposterd/internal/services/game"
)

type createGameRequest struct {
	PlayerName string `json:"player_name"`
	Category   string `json:"game_category"`
	MaxPlayers int    `json:"max_players"`
}

type joinGameRequest struct {
	PlayerName string `json:"player_name"`
}

type startGameRequest struct {
	PlayerID string `json:"player_id"`
}

type voteRequest struct {
	PlayerID   string `json:"player_id"`
	VotedForID string `json:"voted_for_id"`
}

type heartbeatRequest struct {
	PlayerID string `json:"player_id"`
}

func (h *Handler) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if !validPlayerName(req.PlayerName) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid player name"})
		return
	}
	if req.Category == "" || len(req.Category) > maxCategoryLength {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid game category"})
		return
	}

	playerID := h.idGen.PlayerID()
	out, err := h.games.CreateGame(r.Context(), &game.CreateGameInput{
		CreatorID:   playerID,
		CreatorName: req.PlayerName,
		Category:    req.Category,
		MaxPlayers:  req.MaxPlayers,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"session_id":  out.SessionID,
		"player_name": req.PlayerName,
	}).Info("game created")

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"session_id":    out.SessionID,
		"player_id":     playerID,
		"game_category": out.Category,
		"max_players":   out.MaxPlayers,
	})
}

func (h *Handler) joinGame(w http.ResponseWriter, r *http.Request) {
	var req joinGameRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if !validPlayerName(req.PlayerName) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid player name"})
		return
	}

	playerID := h.idGen.PlayerID()
	out, err := h.games.JoinGame(r.Context(), &game.JoinGameInput{
		SessionID:  r.PathValue("session_id"),
		PlayerID:   playerID,
		PlayerName: req.PlayerName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"session_id":    out.SessionID,
		"player_id":     playerID,
		"game_category": out.Category,
		"player_count":  out.PlayerCount,
		"max_players":   out.MaxPlayers,
	})
}

func (h *Handler) startGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if !validPlayerID(req.PlayerID) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid player ID"})
		return
	}

	out, err := h.games.StartGame(r.Context(), &game.StartGameInput{
		SessionID: r.PathValue("session_id"),
		PlayerID:  req.PlayerID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":  out.Status,
		"started": out.ImposterAssigned,
	})
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID != "" && !validPlayerID(playerID) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid player ID"})
		return
	}

	out, err := h.games.GetGameInfo(r.Context(), &game.GetGameInfoInput{
		SessionID: r.PathValue("session_id"),
		PlayerID:  playerID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body := map[string]any{
		"session_id":      out.SessionID,
		"game_category":   out.Category,
		"status":          out.Status,
		"current_phase":   out.CurrentPhase,
		"player_count":    out.PlayerCount,
		"max_players":     out.MaxPlayers,
		"discussion_time": out.DiscussionTime,
		"voting_time":     out.VotingTime,
		"topics_ready":    out.TopicsReady,
		"voters":          out.Voters,
		"players":         out.Players,
	}
	if out.RevealAt != nil {
		body["reveal_at"] = out.RevealAt
	}
	if out.YourTopic != "" {
		body["your_topic"] = out.YourTopic
		body["topic_type"] = out.TopicType
	}

	h.writeJSON(w, http.StatusOK, body)
}

func (h *Handler) submitVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if !validPlayerID(req.PlayerID) || !validPlayerID(req.VotedForID) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid player ID"})
		return
	}

	out, err := h.games.SubmitVote(r.Context(), &game.SubmitVoteInput{
		SessionID: r.PathValue("session_id"),
		VoterID:   req.PlayerID,
		TargetID:  req.VotedForID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"vote_recorded": true,
		"voting_ended":  out.VotingEnded,
	})
}

func (h *Handler) endVoting(w http.ResponseWriter, r *http.Request) {
	out, err := h.games.EndVoting(r.Context(), &game.EndVotingInput{
		SessionID: r.PathValue("session_id"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"current_phase": out.CurrentPhase,
	})
}

func (h *Handler) transitionToVoting(w http.ResponseWriter, r *http.Request) {
	out, err := h.games.TransitionToVoting(r.Context(), &game.TransitionToVotingInput{
		SessionID: r.PathValue("session_id"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"current_phase": out.CurrentPhase,
		"reveal_at":     out.RevealAt,
	})
}

func (h *Handler) getGameResult(w http.ResponseWriter, r *http.Request) {
	out, err := h.games.GetGameResult(r.Context(), &game.GetGameResultInput{
		SessionID: r.PathValue("session_id"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"result":  out.Result,
		"players": out.Players,
	})
}

func (h *Handler) newRound(w http.ResponseWriter, r *http.Request) {
	out, err := h.games.NewRound(r.Context(), &game.NewRoundInput{
		SessionID: r.PathValue("session_id"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":        out.Status,
		"current_phase": out.CurrentPhase,
	})
}

func (h *Handler) heartbeat(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if !validPlayerID(req.PlayerID) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid player ID"})
		return
	}

	out, err := h.games.Heartbeat(r.Context(), &game.HeartbeatInput{
		SessionID: r.PathValue("session_id"),
		PlayerID:  req.PlayerID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !out.Acknowledged {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"detail": "player not found"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"acknowledged": true})
}

func (h *Handler) listAvailableGames(w http.ResponseWriter, r *http.Request) {
	out, err := h.games.ListAvailableGames(r.Context(), &game.ListAvailableGamesInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"games": out.Games,
	})
}
