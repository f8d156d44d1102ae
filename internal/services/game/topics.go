package game

import (
	"context"

	"github.com/sirupsen/logrus"

	sessionRepo "github.com/imposterparty/imposterd/internal/repositories/session"
	"github.com/imposterparty/imposterd/internal/topics"
)

// dispatchTopicGeneration generates topics for a session in the background.
// The session stays joinable with placeholder topics until the pair lands.
func (s *service) dispatchTopicGeneration(sessionID, category string, previous *topics.TopicPair) {
	go s.generateTopics(sessionID, category, previous)
}

// generateTopics runs one provider attempt and falls back to the curated
// lists on any failure. The write is a partial update of the topic fields
// only, so a status change racing with it is never overwritten.
func (s *service) generateTopics(sessionID, category string, previous *topics.TopicPair) {
	ctx, cancel := context.WithTimeout(context.Background(), s.topicTimeout)
	defer cancel()

	pair := s.resolveTopics(ctx, category, previous)

	topicsReady := true
	matched, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		SessionID: sessionID,
		Update: &sessionRepo.SessionUpdate{
			PlayerTopic:   &pair.PlayerTopic,
			ImposterTopic: &pair.ImposterTopic,
			TopicsReady:   &topicsReady,
		},
	})
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Error("failed to store generated topics")
		return
	}
	if !matched {
		// session was deleted while topics were being generated
		s.log.WithField("session_id", sessionID).Debug("topic write for missing session")
		return
	}

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"category":   category,
	}).Info("topics ready")
}

func (s *service) resolveTopics(ctx context.Context, category string, previous *topics.TopicPair) *topics.TopicPair {
	if s.topicProvider != nil {
		pair, err := s.topicProvider.GenerateTopics(ctx, &topics.GenerateTopicsInput{
			Category:     category,
			PreviousPair: previous,
		})
		if err == nil && pair != nil && pair.PlayerTopic != "" && pair.ImposterTopic != "" {
			return pair
		}
		if err != nil {
			s.log.WithError(err).WithField("category", category).Warn("topic provider failed, using fallback")
		}
	}
	return s.fallback.Topics(category)
}
