package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/imposterparty/imposterd/internal/common/clock/mocks"
	"github.com/imposterparty/imposterd/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr        *miniredis.Miniredis
	client    *redis.Client
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	repo      Repository
	ctx       context.Context
	testNow   time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		Clock:       s.mockClock,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) testSession(id string) *models.Session {
	return &models.Session{
		ID:             id,
		CreatorID:      "creator-id",
		Category:       "animals",
		PlayerTopic:    "Sun",
		ImposterTopic:  "Moon",
		MaxPlayers:     8,
		PlayerIDs:      []string{"creator-id"},
		Status:         models.SessionStatusWaiting,
		CurrentPhase:   models.GamePhaseWaiting,
		DiscussionTime: 180,
		VotingTime:     60,
		CreatedAt:      s.testNow,
		UpdatedAt:      s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetSession() {
	sess := s.testSession("ABC12")

	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: sess})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("ABC12", retrieved.ID)
	s.Equal("creator-id", retrieved.CreatorID)
	s.Equal("animals", retrieved.Category)
	s.Equal("Sun", retrieved.PlayerTopic)
	s.Equal("Moon", retrieved.ImposterTopic)
	s.False(retrieved.TopicsReady)
	s.Equal(8, retrieved.MaxPlayers)
	s.Equal([]string{"creator-id"}, retrieved.PlayerIDs)
	s.Equal(models.SessionStatusWaiting, retrieved.Status)
	s.Equal(models.GamePhaseWaiting, retrieved.CurrentPhase)
	s.Equal(180, retrieved.DiscussionTime)
	s.Equal(60, retrieved.VotingTime)
	s.Empty(retrieved.Votes)
	s.Empty(retrieved.Voters)
	s.Nil(retrieved.StartedAt)
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestCreateSessionCodeCollision() {
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")})
	s.Require().NoError(err)

	err = s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")})
	s.Require().ErrorIs(err, ErrSessionExists)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "NOPE1"})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionTopicsOnly() {
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")})
	s.Require().NoError(err)

	playerTopic := "Bengal Tiger"
	imposterTopic := "Snow Leopard"
	topicsReady := true
	matched, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		SessionID: "ABC12",
		Update: &SessionUpdate{
			PlayerTopic:   &playerTopic,
			ImposterTopic: &imposterTopic,
			TopicsReady:   &topicsReady,
		},
	})
	s.Require().NoError(err)
	s.True(matched)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Equal("Bengal Tiger", retrieved.PlayerTopic)
	s.Equal("Snow Leopard", retrieved.ImposterTopic)
	s.True(retrieved.TopicsReady)

	// Untouched fields keep their values
	s.Equal(models.SessionStatusWaiting, retrieved.Status)
	s.Equal("creator-id", retrieved.CreatorID)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionStatusMovesIndex() {
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")})
	s.Require().NoError(err)

	status := models.SessionStatusPlaying
	phase := models.GamePhaseDiscussion
	matched, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		SessionID: "ABC12",
		Update: &SessionUpdate{
			Status:       &status,
			CurrentPhase: &phase,
		},
	})
	s.Require().NoError(err)
	s.True(matched)

	waiting, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{Status: models.SessionStatusWaiting})
	s.Require().NoError(err)
	s.Empty(waiting.Sessions)

	playing, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{Status: models.SessionStatusPlaying})
	s.Require().NoError(err)
	s.Require().Len(playing.Sessions, 1)
	s.Equal("ABC12", playing.Sessions[0].ID)
	s.Equal(models.GamePhaseDiscussion, playing.Sessions[0].CurrentPhase)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionMissing() {
	topicsReady := true
	matched, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		SessionID: "NOPE1",
		Update:    &SessionUpdate{TopicsReady: &topicsReady},
	})
	s.Require().NoError(err)
	s.False(matched)
}

func (s *RedisRepositoryTestSuite) TestAddPlayer() {
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")})
	s.Require().NoError(err)

	err = s.repo.AddPlayer(s.ctx, &AddPlayerInput{SessionID: "ABC12", PlayerID: "player-2"})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"creator-id", "player-2"}, retrieved.PlayerIDs)
}

func (s *RedisRepositoryTestSuite) TestRecordVote() {
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")})
	s.Require().NoError(err)

	out, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{
		SessionID: "ABC12",
		VoterID:   "voter-1",
		TargetID:  "target-1",
	})
	s.Require().NoError(err)
	s.False(out.AlreadyVoted)
	s.Equal(1, out.VoterCount)
	s.Equal(1, out.TargetVotes)

	out, err = s.repo.RecordVote(s.ctx, &RecordVoteInput{
		SessionID: "ABC12",
		VoterID:   "voter-2",
		TargetID:  "target-1",
	})
	s.Require().NoError(err)
	s.False(out.AlreadyVoted)
	s.Equal(2, out.VoterCount)
	s.Equal(2, out.TargetVotes)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Equal(map[string]string{"voter-1": "target-1", "voter-2": "target-1"}, retrieved.Votes)
	s.ElementsMatch([]string{"voter-1", "voter-2"}, retrieved.Voters)
}

func (s *RedisRepositoryTestSuite) TestRecordVoteDuplicateVoter() {
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")})
	s.Require().NoError(err)

	_, err = s.repo.RecordVote(s.ctx, &RecordVoteInput{
		SessionID: "ABC12",
		VoterID:   "voter-1",
		TargetID:  "target-1",
	})
	s.Require().NoError(err)

	// Second vote from the same voter must not change anything
	out, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{
		SessionID: "ABC12",
		VoterID:   "voter-1",
		TargetID:  "target-2",
	})
	s.Require().NoError(err)
	s.True(out.AlreadyVoted)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Equal(map[string]string{"voter-1": "target-1"}, retrieved.Votes)
	s.Equal([]string{"voter-1"}, retrieved.Voters)
}

func (s *RedisRepositoryTestSuite) TestCasPhase() {
	sess := s.testSession("ABC12")
	sess.CurrentPhase = models.GamePhaseVoting
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: sess})
	s.Require().NoError(err)

	swapped, err := s.repo.CasPhase(s.ctx, &CasPhaseInput{
		SessionID: "ABC12",
		From:      models.GamePhaseVoting,
		To:        models.GamePhaseReveal,
	})
	s.Require().NoError(err)
	s.True(swapped)

	// Phase already moved on; a second swap from voting must fail
	swapped, err = s.repo.CasPhase(s.ctx, &CasPhaseInput{
		SessionID: "ABC12",
		From:      models.GamePhaseVoting,
		To:        models.GamePhaseReveal,
	})
	s.Require().NoError(err)
	s.False(swapped)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Equal(models.GamePhaseReveal, retrieved.CurrentPhase)
}

func (s *RedisRepositoryTestSuite) TestPurgePlayers() {
	sess := s.testSession("ABC12")
	sess.PlayerIDs = []string{"creator-id", "player-2", "player-3"}
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: sess})
	s.Require().NoError(err)

	_, err = s.repo.RecordVote(s.ctx, &RecordVoteInput{
		SessionID: "ABC12", VoterID: "player-2", TargetID: "player-3",
	})
	s.Require().NoError(err)
	_, err = s.repo.RecordVote(s.ctx, &RecordVoteInput{
		SessionID: "ABC12", VoterID: "player-3", TargetID: "player-2",
	})
	s.Require().NoError(err)

	err = s.repo.PurgePlayers(s.ctx, &PurgePlayersInput{
		SessionID: "ABC12",
		PlayerIDs: []string{"player-2"},
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"creator-id", "player-3"}, retrieved.PlayerIDs)
	s.Equal([]string{"player-3"}, retrieved.Voters)
	s.Equal(map[string]string{"player-3": "player-2"}, retrieved.Votes)
}

func (s *RedisRepositoryTestSuite) TestClearVotes() {
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")})
	s.Require().NoError(err)

	_, err = s.repo.RecordVote(s.ctx, &RecordVoteInput{
		SessionID: "ABC12", VoterID: "voter-1", TargetID: "target-1",
	})
	s.Require().NoError(err)

	matched, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		SessionID: "ABC12",
		Update:    &SessionUpdate{ClearVotes: true},
	})
	s.Require().NoError(err)
	s.True(matched)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Empty(retrieved.Votes)
	s.Empty(retrieved.Voters)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionResultRoundTrip() {
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")})
	s.Require().NoError(err)

	endedAt := s.testNow.Add(5 * time.Minute)
	status := models.SessionStatusEnded
	phase := models.GamePhaseResult
	matched, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		SessionID: "ABC12",
		Update: &SessionUpdate{
			Status:       &status,
			CurrentPhase: &phase,
			GameResult: &models.GameResult{
				VotedOutIDs:      []string{"player-2"},
				VotedOutNames:    []string{"Bob"},
				VotedOutID:       "player-2",
				VotedOutName:     "Bob",
				IsImposterCaught: true,
				ImposterID:       "player-2",
				Winners:          models.WinnersOtherPlayers,
				Message:          "Imposter caught!",
			},
			EndedAt: &endedAt,
		},
	})
	s.Require().NoError(err)
	s.True(matched)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.GameResult)
	s.Equal("player-2", retrieved.GameResult.VotedOutID)
	s.True(retrieved.GameResult.IsImposterCaught)
	s.Equal(models.WinnersOtherPlayers, retrieved.GameResult.Winners)
	s.Require().NotNil(retrieved.EndedAt)
	s.Equal(endedAt.Unix(), retrieved.EndedAt.Unix())

	// A new round clears the result and end time again
	clearMatched, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		SessionID: "ABC12",
		Update: &SessionUpdate{
			ClearResult:  true,
			ClearEndedAt: true,
		},
	})
	s.Require().NoError(err)
	s.True(clearMatched)

	retrieved, err = s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Nil(retrieved.GameResult)
	s.Nil(retrieved.EndedAt)
}

func (s *RedisRepositoryTestSuite) TestListSessionsNewestFirst() {
	older := s.testSession("OLDER")
	older.CreatedAt = s.testNow.Add(-1 * time.Hour)
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: older}))

	newer := s.testSession("NEWER")
	newer.CreatedAt = s.testNow
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: newer}))

	listed, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{Status: models.SessionStatusWaiting})
	s.Require().NoError(err)
	s.Require().Len(listed.Sessions, 2)
	s.Equal("NEWER", listed.Sessions[0].ID)
	s.Equal("OLDER", listed.Sessions[1].ID)
}

func (s *RedisRepositoryTestSuite) TestDeleteSession() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.testSession("ABC12")}))

	err := s.repo.DeleteSession(s.ctx, &DeleteSessionInput{SessionID: "ABC12"})
	s.Require().NoError(err)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "ABC12"})
	s.Require().ErrorIs(err, ErrSessionNotFound)

	listed, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{Status: models.SessionStatusWaiting})
	s.Require().NoError(err)
	s.Empty(listed.Sessions)
}
