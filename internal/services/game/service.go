package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/imposterparty/imposterd/internal/services/game Service

import (
	"context"
	"errors"
	"sort"
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

type service struct {
	sessionRepo   sessionRepo.Repository
	playerRepo    playerRepo.Repository
	topicProvider topics.Provider
	fallback      *topics.Fallback
	clock         clock.Clock
	idGen         ident.Generator
	picker        pick.Picker
	log           *logrus.Logger

	discussionTime   time.Duration
	votingTime       time.Duration
	heartbeatTimeout time.Duration
	topicTimeout     time.Duration
	availableWindow  time.Duration
	oldGameThreshold time.Duration
}

// New creates a new game service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}

	s := &service{
		sessionRepo:      cfg.SessionRepo,
		playerRepo:       cfg.PlayerRepo,
		topicProvider:    cfg.TopicProvider,
		fallback:         cfg.Fallback,
		clock:            cfg.Clock,
		idGen:            cfg.IDGenerator,
		picker:           cfg.Picker,
		log:              cfg.Logger,
		discussionTime:   cfg.DiscussionTime,
		votingTime:       cfg.VotingTime,
		heartbeatTimeout: cfg.HeartbeatTimeout,
		topicTimeout:     cfg.TopicTimeout,
		availableWindow:  cfg.AvailableWindow,
		oldGameThreshold: cfg.OldGameThreshold,
	}

	if s.fallback == nil {
		s.fallback = topics.NewFallback()
	}
	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.idGen == nil {
		s.idGen = ident.New()
	}
	if s.picker == nil {
		s.picker = pick.New(nil)
	}
	if s.log == nil {
		s.log = logrus.New()
	}

	if s.discussionTime <= 0 {
		s.discussionTime = DefaultDiscussionTime
	}
	if s.votingTime <= 0 {
		s.votingTime = DefaultVotingTime
	}
	if s.heartbeatTimeout <= 0 {
		s.heartbeatTimeout = DefaultHeartbeatTimeout
	}
	if s.topicTimeout <= 0 {
		s.topicTimeout = DefaultTopicTimeout
	}
	if s.availableWindow <= 0 {
		s.availableWindow = DefaultAvailableWindow
	}
	if s.oldGameThreshold <= 0 {
		s.oldGameThreshold = DefaultOldGameThreshold
	}

	return s, nil
}

// CreateGame creates a new session and dispatches background topic generation
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input.Category == "" {
		return nil, ErrInvalidCategory
	}

	maxPlayers := input.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = DefaultMaxPlayers
	}
	if maxPlayers < MinMaxPlayers || maxPlayers > MaxMaxPlayers {
		return nil, ErrInvalidMaxPlayers
	}

	now := s.clock.Now()

	var sess *models.Session
	var err error
	for attempt := 0; attempt < createRetries; attempt++ {
		sess = &models.Session{
			ID:             s.idGen.SessionCode(),
			CreatorID:      input.CreatorID,
			Category:       input.Category,
			PlayerTopic:    PlaceholderPlayerTopic,
			ImposterTopic:  PlaceholderImposterTopic,
			TopicsReady:    false,
			MaxPlayers:     maxPlayers,
			PlayerIDs:      []string{input.CreatorID},
			Status:         models.SessionStatusWaiting,
			CurrentPhase:   models.GamePhaseWaiting,
			DiscussionTime: int(s.discussionTime.Seconds()),
			VotingTime:     int(s.votingTime.Seconds()),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		err = s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{Session: sess})
		if err == nil {
			break
		}
		if !errors.Is(err, sessionRepo.ErrSessionExists) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	err = s.playerRepo.CreatePlayer(ctx, &playerRepo.CreatePlayerInput{
		Player: &models.Player{
			SessionID:     sess.ID,
			ID:            input.CreatorID,
			Name:          input.CreatorName,
			IsAlive:       true,
			JoinedAt:      now,
			LastHeartbeat: now,
		},
	})
	if err != nil {
		return nil, err
	}

	s.dispatchTopicGeneration(sess.ID, sess.Category, nil)

	s.log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"creator_id": input.CreatorID,
		"category":   sess.Category,
	}).Info("game session created")

	return &CreateGameOutput{
		SessionID:  sess.ID,
		Category:   sess.Category,
		MaxPlayers: sess.MaxPlayers,
	}, nil
}

// JoinGame adds a player to a waiting session
func (s *service) JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error) {
	sess, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status == models.SessionStatusEnded {
		return nil, ErrGameEnded
	}
	if sess.Status != models.SessionStatusWaiting {
		return nil, ErrGameInProgress
	}
	if sess.PlayerCount() >= sess.MaxPlayers {
		return nil, ErrGameFull
	}

	if _, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		SessionID: input.SessionID,
		PlayerID:  input.PlayerID,
	}); err == nil {
		return nil, ErrAlreadyJoined
	} else if !errors.Is(err, playerRepo.ErrPlayerNotFound) {
		return nil, err
	}

	if err := s.sessionRepo.AddPlayer(ctx, &sessionRepo.AddPlayerInput{
		SessionID: input.SessionID,
		PlayerID:  input.PlayerID,
	}); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.playerRepo.CreatePlayer(ctx, &playerRepo.CreatePlayerInput{
		Player: &models.Player{
			SessionID:     input.SessionID,
			ID:            input.PlayerID,
			Name:          input.PlayerName,
			IsAlive:       true,
			JoinedAt:      now,
			LastHeartbeat: now,
		},
	}); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"session_id": input.SessionID,
		"player_id":  input.PlayerID,
	}).Info("player joined session")

	return &JoinGameOutput{
		SessionID:   sess.ID,
		Category:    sess.Category,
		PlayerCount: sess.PlayerCount() + 1,
		MaxPlayers:  sess.MaxPlayers,
	}, nil
}

// StartGame assigns the imposter and moves the session into discussion
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	sess, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.CreatorID != input.PlayerID {
		return nil, ErrNotCreator
	}
	if sess.PlayerCount() < MinPlayersToStart {
		return nil, ErrNotEnoughPlayers
	}
	if sess.Status != models.SessionStatusWaiting {
		return nil, ErrGameAlreadyStarted
	}
	if !sess.TopicsReady {
		return nil, ErrTopicsPending
	}

	imposterID := s.pickImposter(sess.PlayerIDs)

	if err := s.assignImposter(ctx, sess.ID, imposterID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	status := models.SessionStatusPlaying
	phase := models.GamePhaseDiscussion
	matched, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		SessionID: sess.ID,
		Update: &sessionRepo.SessionUpdate{
			Status:       &status,
			CurrentPhase: &phase,
			ImposterID:   &imposterID,
			StartedAt:    &now,
		},
	})
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrSessionNotFound
	}

	s.log.WithFields(logrus.Fields{
		"session_id":   sess.ID,
		"player_count": sess.PlayerCount(),
	}).Info("game started")

	return &StartGameOutput{
		Status:           models.SessionStatusPlaying,
		ImposterAssigned: true,
	}, nil
}

// GetGameInfo returns the per-player view of a session. When a player ID is
// given it doubles as a heartbeat, and silent players are swept out first.
func (s *service) GetGameInfo(ctx context.Context, input *GetGameInfoInput) (*GetGameInfoOutput, error) {
	sess, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if input.PlayerID != "" {
		if _, err := s.playerRepo.TouchHeartbeat(ctx, &playerRepo.TouchHeartbeatInput{
			SessionID: input.SessionID,
			PlayerID:  input.PlayerID,
		}); err != nil {
			return nil, err
		}
	}

	if sess.Status == models.SessionStatusWaiting || sess.Status == models.SessionStatusPlaying {
		removed, err := s.sweepInactive(ctx, sess.ID)
		if err != nil {
			return nil, err
		}
		if removed > 0 {
			sess, err = s.getSession(ctx, input.SessionID)
			if err != nil {
				return nil, err
			}
		}
	}

	listed, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{SessionID: sess.ID})
	if err != nil {
		return nil, err
	}

	players := make([]*PlayerInfo, 0, len(listed.Players))
	for _, p := range listed.Players {
		players = append(players, &PlayerInfo{
			PlayerID:      p.ID,
			PlayerName:    p.Name,
			IsAlive:       p.IsAlive,
			VotesReceived: p.VotesReceived,
		})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].PlayerID < players[j].PlayerID })

	out := &GetGameInfoOutput{
		SessionID:      sess.ID,
		Category:       sess.Category,
		Status:         sess.Status,
		CurrentPhase:   sess.CurrentPhase,
		PlayerCount:    sess.PlayerCount(),
		MaxPlayers:     sess.MaxPlayers,
		DiscussionTime: sess.DiscussionTime,
		VotingTime:     sess.VotingTime,
		TopicsReady:    sess.TopicsReady,
		Voters:         sess.Voters,
		Players:        players,
		RevealAt:       sess.RevealAt,
	}

	if input.PlayerID != "" && sess.Status == models.SessionStatusPlaying {
		if input.PlayerID == sess.ImposterID {
			out.YourTopic = sess.ImposterTopic
			out.TopicType = "imposter"
		} else if sess.HasPlayer(input.PlayerID) {
			out.YourTopic = sess.PlayerTopic
			out.TopicType = "player"
		}
	}

	return out, nil
}

// ListAvailableGames returns recently created waiting sessions
func (s *service) ListAvailableGames(ctx context.Context, input *ListAvailableGamesInput) (*ListAvailableGamesOutput, error) {
	listed, err := s.sessionRepo.ListSessions(ctx, &sessionRepo.ListSessionsInput{
		Status: models.SessionStatusWaiting,
	})
	if err != nil {
		return nil, err
	}

	cutoff := s.clock.Now().Add(-s.availableWindow)

	games := make([]*AvailableGame, 0, len(listed.Sessions))
	for _, sess := range listed.Sessions {
		if sess.CreatedAt.Before(cutoff) {
			continue
		}
		games = append(games, &AvailableGame{
			SessionID:   sess.ID,
			Category:    sess.Category,
			PlayerCount: sess.PlayerCount(),
			MaxPlayers:  sess.MaxPlayers,
			CreatedAt:   sess.CreatedAt,
		})
	}

	return &ListAvailableGamesOutput{Games: games}, nil
}

// DeleteOldGames sweeps away waiting sessions older than the threshold
func (s *service) DeleteOldGames(ctx context.Context, input *DeleteOldGamesInput) (*DeleteOldGamesOutput, error) {
	listed, err := s.sessionRepo.ListSessions(ctx, &sessionRepo.ListSessionsInput{
		Status: models.SessionStatusWaiting,
	})
	if err != nil {
		return nil, err
	}

	cutoff := s.clock.Now().Add(-s.oldGameThreshold)

	deleted := 0
	for _, sess := range listed.Sessions {
		if !sess.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.deleteSession(ctx, sess.ID); err != nil {
			s.log.WithError(err).WithField("session_id", sess.ID).Warn("failed to delete stale session")
			continue
		}
		deleted++
	}

	if deleted > 0 {
		s.log.WithField("deleted", deleted).Info("swept stale sessions")
	}

	return &DeleteOldGamesOutput{DeletedCount: deleted}, nil
}

// DeleteGame removes a session and its players
func (s *service) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	if _, err := s.getSession(ctx, input.SessionID); err != nil {
		return nil, err
	}
	if err := s.deleteSession(ctx, input.SessionID); err != nil {
		return nil, err
	}
	return &DeleteGameOutput{}, nil
}

// Heartbeat marks a player as still active. An unknown player is not an
// error; the caller may already have been evicted.
func (s *service) Heartbeat(ctx context.Context, input *HeartbeatInput) (*HeartbeatOutput, error) {
	matched, err := s.playerRepo.TouchHeartbeat(ctx, &playerRepo.TouchHeartbeatInput{
		SessionID: input.SessionID,
		PlayerID:  input.PlayerID,
	})
	if err != nil {
		return nil, err
	}
	if !matched {
		s.log.WithFields(logrus.Fields{
			"session_id": input.SessionID,
			"player_id":  input.PlayerID,
		}).Debug("heartbeat for unknown player")
	}
	return &HeartbeatOutput{Acknowledged: matched}, nil
}

func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *service) deleteSession(ctx context.Context, sessionID string) error {
	if err := s.playerRepo.DeletePlayers(ctx, &playerRepo.DeletePlayersInput{SessionID: sessionID}); err != nil {
		return err
	}
	return s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{SessionID: sessionID})
}

// pickImposter selects one player ID. IDs are sorted first so the pick
// depends only on the picker, not on set iteration order.
func (s *service) pickImposter(playerIDs []string) string {
	ids := make([]string, len(playerIDs))
	copy(ids, playerIDs)
	sort.Strings(ids)
	return ids[s.picker.Pick(len(ids))]
}

func (s *service) assignImposter(ctx context.Context, sessionID, imposterID string) error {
	if err := s.playerRepo.ClearImposters(ctx, &playerRepo.ClearImpostersInput{SessionID: sessionID}); err != nil {
		return err
	}
	isImposter := true
	matched, err := s.playerRepo.SetPlayerFields(ctx, &playerRepo.SetPlayerFieldsInput{
		SessionID: sessionID,
		PlayerID:  imposterID,
		Update:    &playerRepo.PlayerUpdate{IsImposter: &isImposter},
	})
	if err != nil {
		return err
	}
	if !matched {
		return ErrPlayerNotFound
	}
	return nil
}
