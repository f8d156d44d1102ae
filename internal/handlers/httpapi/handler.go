package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/imposterparty/imposterd/internal/common/ident"
	"github.com/imposterparty/imposterd/internal/services/game"
)

var (
	// playerNamePattern matches names the clients may register with
	playerNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 _\-]{1,30}$`)

	// playerIDPattern matches server-issued player UUIDs
	playerIDPattern = regexp.MustCompile(`^[0-9a-f\-]{36}$`)
)

const maxCategoryLength = 50

// Config holds configuration for the HTTP API handler
type Config struct {
	GameService game.Service

	// IDGenerator issues player IDs on create and join
	IDGenerator ident.Generator

	Logger *logrus.Logger
}

// Handler exposes the game service over a JSON HTTP API
type Handler struct {
	games game.Service
	idGen ident.Generator
	log   *logrus.Logger
}

// New creates a new HTTP API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = ident.New()
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}

	return &Handler{
		games: cfg.GameService,
		idGen: idGen,
		log:   log,
	}, nil
}

// Routes returns the API route table
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/game/create", h.createGame)
	mux.HandleFunc("POST /api/game/{session_id}/join", h.joinGame)
	mux.HandleFunc("POST /api/game/{session_id}/start", h.startGame)
	mux.HandleFunc("GET /api/game/{session_id}", h.getGame)
	mux.HandleFunc("POST /api/game/{session_id}/vote", h.submitVote)
	mux.HandleFunc("POST /api/game/{session_id}/end-voting", h.endVoting)
	mux.HandleFunc("POST /api/game/{session_id}/transition-voting", h.transitionToVoting)
	mux.HandleFunc("GET /api/game/{session_id}/result", h.getGameResult)
	mux.HandleFunc("POST /api/game/{session_id}/new-round", h.newRound)
	mux.HandleFunc("POST /api/game/{session_id}/heartbeat", h.heartbeat)
	mux.HandleFunc("GET /api/games/available", h.listAvailableGames)
	mux.HandleFunc("GET /healthz", h.health)

	return mux
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.WithError(err).Error("failed to write response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		// Internal details stay out of the response body
		h.writeJSON(w, status, map[string]string{"detail": "internal server error"})
		return
	}
	h.writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return false
	}
	return true
}

func validPlayerName(name string) bool {
	return playerNamePattern.MatchString(name)
}

func validPlayerID(id string) bool {
	return playerIDPattern.MatchString(id)
}

// statusForError maps service errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound),
		errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound

	case errors.Is(err, game.ErrNotCreator):
		return http.StatusForbidden

	case errors.Is(err, game.ErrGameEnded),
		errors.Is(err, game.ErrGameInProgress),
		errors.Is(err, game.ErrGameFull),
		errors.Is(err, game.ErrAlreadyJoined),
		errors.Is(err, game.ErrGameAlreadyStarted),
		errors.Is(err, game.ErrTopicsPending),
		errors.Is(err, game.ErrNotInVotingPhase),
		errors.Is(err, game.ErrNotInDiscussion),
		errors.Is(err, game.ErrAlreadyVoted),
		errors.Is(err, game.ErrResultsNotReady):
		return http.StatusConflict

	case errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrInvalidVoteTarget),
		errors.Is(err, game.ErrNoVotesRecorded),
		errors.Is(err, game.ErrInvalidMaxPlayers),
		errors.Is(err, game.ErrInvalidCategory):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
