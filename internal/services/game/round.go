package game

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/imposterparty/imposterd/internal/models"
	playerRepo "github.com/imposterparty/imposterd/internal/repositories/player"
	sessionRepo "github.com/imposterparty/imposterd/internal/repositories/session"
	"github.com/imposterparty/imposterd/internal/topics"
)

// NewRound re-arms an ended session for another round with the same roster.
// Votes and the previous result are cleared, everyone is revived, a fresh
// imposter is drawn, and new topics are generated in the background.
func (s *service) NewRound(ctx context.Context, input *NewRoundInput) (*NewRoundOutput, error) {
	sess, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.PlayerCount() < MinPlayersToStart {
		return nil, ErrNotEnoughPlayers
	}

	prevPair := &topics.TopicPair{
		PlayerTopic:   sess.PlayerTopic,
		ImposterTopic: sess.ImposterTopic,
	}

	imposterID := s.pickImposter(sess.PlayerIDs)

	if err := s.playerRepo.ResetForNewRound(ctx, &playerRepo.ResetForNewRoundInput{SessionID: sess.ID}); err != nil {
		return nil, err
	}
	if err := s.assignImposter(ctx, sess.ID, imposterID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	status := models.SessionStatusPlaying
	phase := models.GamePhaseDiscussion
	playerTopic := PlaceholderPlayerTopic
	imposterTopic := PlaceholderImposterTopic
	topicsReady := false
	matched, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		SessionID: sess.ID,
		Update: &sessionRepo.SessionUpdate{
			Status:        &status,
			CurrentPhase:  &phase,
			ImposterID:    &imposterID,
			PlayerTopic:   &playerTopic,
			ImposterTopic: &imposterTopic,
			TopicsReady:   &topicsReady,
			ClearResult:   true,
			ClearVotes:    true,
			StartedAt:     &now,
			ClearEndedAt:  true,
			ClearRevealAt: true,
		},
	})
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrSessionNotFound
	}

	s.dispatchTopicGeneration(sess.ID, sess.Category, prevPair)

	s.log.WithFields(logrus.Fields{
		"session_id":   sess.ID,
		"player_count": sess.PlayerCount(),
	}).Info("new round started")

	return &NewRoundOutput{
		Status:       models.SessionStatusPlaying,
		CurrentPhase: models.GamePhaseDiscussion,
	}, nil
}
