package game

import (
	"context"

	"github.com/sirupsen/logrus"

	playerRepo "github.com/imposterparty/imposterd/internal/repositories/player"
	sessionRepo "github.com/imposterparty/imposterd/internal/repositories/session"
)

// sweepInactive evicts alive players whose last heartbeat is older than the
// timeout. Evicted players are marked dead and removed from the session's
// vote structures so a pending vote count cannot wait on them forever.
func (s *service) sweepInactive(ctx context.Context, sessionID string) (int, error) {
	listed, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{
		SessionID: sessionID,
		AliveOnly: true,
	})
	if err != nil {
		return 0, err
	}

	cutoff := s.clock.Now().Add(-s.heartbeatTimeout)

	var stale []string
	for _, p := range listed.Players {
		if p.LastHeartbeat.Before(cutoff) {
			stale = append(stale, p.ID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := s.playerRepo.MarkDead(ctx, &playerRepo.MarkDeadInput{
		SessionID: sessionID,
		PlayerIDs: stale,
	}); err != nil {
		return 0, err
	}
	if err := s.sessionRepo.PurgePlayers(ctx, &sessionRepo.PurgePlayersInput{
		SessionID: sessionID,
		PlayerIDs: stale,
	}); err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"evicted":    stale,
	}).Info("evicted inactive players")

	return len(stale), nil
}
