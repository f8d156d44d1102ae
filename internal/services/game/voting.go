package game

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/imposterparty/imposterd/internal/models"
	playerRepo "github.com/imposterparty/imposterd/internal/repositories/player"
	sessionRepo "github.com/imposterparty/imposterd/internal/repositories/session"
)

// TransitionToVoting moves the session from discussion into voting. The swap
// is conditional on the phase so concurrent callers advance it exactly once.
func (s *service) TransitionToVoting(ctx context.Context, input *TransitionToVotingInput) (*TransitionToVotingOutput, error) {
	if _, err := s.getSession(ctx, input.SessionID); err != nil {
		return nil, err
	}

	swapped, err := s.sessionRepo.CasPhase(ctx, &sessionRepo.CasPhaseInput{
		SessionID: input.SessionID,
		From:      models.GamePhaseDiscussion,
		To:        models.GamePhaseVoting,
	})
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, ErrNotInDiscussion
	}

	revealAt := s.clock.Now().Add(s.votingTime)
	if _, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		SessionID: input.SessionID,
		Update:    &sessionRepo.SessionUpdate{RevealAt: &revealAt},
	}); err != nil {
		return nil, err
	}

	s.log.WithField("session_id", input.SessionID).Info("voting phase opened")

	return &TransitionToVotingOutput{
		CurrentPhase: models.GamePhaseVoting,
		RevealAt:     revealAt,
	}, nil
}

// SubmitVote records one vote. The vote write is atomic in the store, so two
// players voting at the same instant can never drop a vote or double-count a
// voter. When the last alive player votes, the voting phase closes here.
func (s *service) SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error) {
	sess, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.CurrentPhase != models.GamePhaseVoting {
		return nil, ErrNotInVotingPhase
	}

	voter, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		SessionID: input.SessionID,
		PlayerID:  input.VoterID,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if !voter.IsAlive {
		return nil, ErrPlayerNotFound
	}

	target, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		SessionID: input.SessionID,
		PlayerID:  input.TargetID,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrInvalidVoteTarget
		}
		return nil, err
	}
	if !target.IsAlive {
		return nil, ErrInvalidVoteTarget
	}

	recorded, err := s.sessionRepo.RecordVote(ctx, &sessionRepo.RecordVoteInput{
		SessionID: input.SessionID,
		VoterID:   input.VoterID,
		TargetID:  input.TargetID,
	})
	if err != nil {
		return nil, err
	}
	if recorded.AlreadyVoted {
		return nil, ErrAlreadyVoted
	}

	targetVotes := recorded.TargetVotes
	if _, err := s.playerRepo.SetPlayerFields(ctx, &playerRepo.SetPlayerFieldsInput{
		SessionID: input.SessionID,
		PlayerID:  input.TargetID,
		Update:    &playerRepo.PlayerUpdate{VotesReceived: &targetVotes},
	}); err != nil {
		return nil, err
	}

	alive, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{
		SessionID: input.SessionID,
		AliveOnly: true,
	})
	if err != nil {
		return nil, err
	}

	out := &SubmitVoteOutput{}
	if recorded.VoterCount >= len(alive.Players) {
		if _, err := s.EndVoting(ctx, &EndVotingInput{SessionID: input.SessionID}); err != nil {
			// another caller may have closed the phase in the meantime
			if !errors.Is(err, ErrNotInVotingPhase) {
				return nil, err
			}
		}
		out.VotingEnded = true
	}

	s.log.WithFields(logrus.Fields{
		"session_id":   input.SessionID,
		"voter_id":     input.VoterID,
		"voting_ended": out.VotingEnded,
	}).Info("vote recorded")

	return out, nil
}

// EndVoting closes the voting phase and readies the reveal
func (s *service) EndVoting(ctx context.Context, input *EndVotingInput) (*EndVotingOutput, error) {
	if _, err := s.getSession(ctx, input.SessionID); err != nil {
		return nil, err
	}

	swapped, err := s.sessionRepo.CasPhase(ctx, &sessionRepo.CasPhaseInput{
		SessionID: input.SessionID,
		From:      models.GamePhaseVoting,
		To:        models.GamePhaseReveal,
	})
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, ErrNotInVotingPhase
	}

	s.log.WithField("session_id", input.SessionID).Info("voting phase closed")

	return &EndVotingOutput{CurrentPhase: models.GamePhaseReveal}, nil
}

// GetGameResult computes the round outcome once the reveal phase is reached.
// The first successful call computes and persists the result; later calls
// serve the cached copy.
func (s *service) GetGameResult(ctx context.Context, input *GetGameResultInput) (*GetGameResultOutput, error) {
	sess, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.CurrentPhase == models.GamePhaseResult && sess.GameResult != nil {
		players, err := s.resultRoster(ctx, sess.ID)
		if err != nil {
			return nil, err
		}
		return &GetGameResultOutput{Result: sess.GameResult, Players: players}, nil
	}

	if sess.CurrentPhase != models.GamePhaseReveal {
		return nil, ErrResultsNotReady
	}
	if len(sess.Votes) == 0 {
		return nil, ErrNoVotesRecorded
	}

	votedOutIDs := tallyVotes(sess.Votes)
	if len(votedOutIDs) == 0 {
		return nil, ErrInvalidVoteOutcome
	}

	votedOutNames := make([]string, 0, len(votedOutIDs))
	resolvedIDs := make([]string, 0, len(votedOutIDs))
	for _, id := range votedOutIDs {
		p, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
			SessionID: sess.ID,
			PlayerID:  id,
		})
		if err != nil {
			if errors.Is(err, playerRepo.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		resolvedIDs = append(resolvedIDs, p.ID)
		votedOutNames = append(votedOutNames, p.Name)
	}
	if len(resolvedIDs) == 0 {
		return nil, ErrInvalidVoteOutcome
	}

	result := buildResult(resolvedIDs, votedOutNames, sess.ImposterID)

	if err := s.playerRepo.MarkDead(ctx, &playerRepo.MarkDeadInput{
		SessionID: sess.ID,
		PlayerIDs: resolvedIDs,
	}); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	status := models.SessionStatusEnded
	phase := models.GamePhaseResult
	matched, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		SessionID: sess.ID,
		Update: &sessionRepo.SessionUpdate{
			Status:       &status,
			CurrentPhase: &phase,
			GameResult:   result,
			EndedAt:      &now,
		},
	})
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrSessionNotFound
	}

	players, err := s.resultRoster(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"winners":    result.Winners,
		"is_tie":     result.IsTie,
	}).Info("round resolved")

	return &GetGameResultOutput{Result: result, Players: players}, nil
}

func (s *service) resultRoster(ctx context.Context, sessionID string) ([]*ResultPlayer, error) {
	listed, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	players := make([]*ResultPlayer, 0, len(listed.Players))
	for _, p := range listed.Players {
		players = append(players, &ResultPlayer{
			PlayerID:      p.ID,
			PlayerName:    p.Name,
			IsImposter:    p.IsImposter,
			IsAlive:       p.IsAlive,
			VotesReceived: p.VotesReceived,
		})
	}
	return players, nil
}
