package player

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

func (s *RedisRepositoryTestSuite) testPlayer(id, name string) *models.Player {
	return &models.Player{
		SessionID:     "ABC12",
		ID:            id,
		Name:          name,
		IsAlive:       true,
		JoinedAt:      s.testNow,
		LastHeartbeat: s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) createPlayer(id, name string) {
	err := s.repo.CreatePlayer(s.ctx, &CreatePlayerInput{Player: s.testPlayer(id, name)})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetPlayer() {
	s.createPlayer("player-1", "Alice")

	retrieved, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{
		SessionID: "ABC12",
		PlayerID:  "player-1",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("ABC12", retrieved.SessionID)
	s.Equal("player-1", retrieved.ID)
	s.Equal("Alice", retrieved.Name)
	s.False(retrieved.IsImposter)
	s.True(retrieved.IsAlive)
	s.Equal(0, retrieved.VotesReceived)
	s.Equal(s.testNow.Unix(), retrieved.JoinedAt.Unix())
	s.Equal(s.testNow.Unix(), retrieved.LastHeartbeat.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetPlayerNotFound() {
	_, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{
		SessionID: "ABC12",
		PlayerID:  "missing",
	})
	s.Require().ErrorIs(err, ErrPlayerNotFound)
}

func (s *RedisRepositoryTestSuite) TestPlayersScopedToSession() {
	s.createPlayer("player-1", "Alice")

	other := s.testPlayer("player-1", "Other Alice")
	other.SessionID = "XYZ99"
	s.Require().NoError(s.repo.CreatePlayer(s.ctx, &CreatePlayerInput{Player: other}))

	retrieved, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{
		SessionID: "XYZ99",
		PlayerID:  "player-1",
	})
	s.Require().NoError(err)
	s.Equal("Other Alice", retrieved.Name)

	listed, err := s.repo.ListPlayers(s.ctx, &ListPlayersInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Require().Len(listed.Players, 1)
	s.Equal("Alice", listed.Players[0].Name)
}

func (s *RedisRepositoryTestSuite) TestListPlayersAliveOnly() {
	s.createPlayer("player-1", "Alice")
	s.createPlayer("player-2", "Bob")

	err := s.repo.MarkDead(s.ctx, &MarkDeadInput{
		SessionID: "ABC12",
		PlayerIDs: []string{"player-2"},
	})
	s.Require().NoError(err)

	all, err := s.repo.ListPlayers(s.ctx, &ListPlayersInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Len(all.Players, 2)

	alive, err := s.repo.ListPlayers(s.ctx, &ListPlayersInput{SessionID: "ABC12", AliveOnly: true})
	s.Require().NoError(err)
	s.Require().Len(alive.Players, 1)
	s.Equal("player-1", alive.Players[0].ID)
}

func (s *RedisRepositoryTestSuite) TestSetPlayerFields() {
	s.createPlayer("player-1", "Alice")

	isImposter := true
	votes := 3
	matched, err := s.repo.SetPlayerFields(s.ctx, &SetPlayerFieldsInput{
		SessionID: "ABC12",
		PlayerID:  "player-1",
		Update: &PlayerUpdate{
			IsImposter:    &isImposter,
			VotesReceived: &votes,
		},
	})
	s.Require().NoError(err)
	s.True(matched)

	retrieved, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{
		SessionID: "ABC12",
		PlayerID:  "player-1",
	})
	s.Require().NoError(err)
	s.True(retrieved.IsImposter)
	s.Equal(3, retrieved.VotesReceived)
	s.True(retrieved.IsAlive)
}

func (s *RedisRepositoryTestSuite) TestSetPlayerFieldsMissing() {
	isImposter := true
	matched, err := s.repo.SetPlayerFields(s.ctx, &SetPlayerFieldsInput{
		SessionID: "ABC12",
		PlayerID:  "missing",
		Update:    &PlayerUpdate{IsImposter: &isImposter},
	})
	s.Require().NoError(err)
	s.False(matched)
}

func (s *RedisRepositoryTestSuite) TestClearImposters() {
	s.createPlayer("player-1", "Alice")
	s.createPlayer("player-2", "Bob")

	isImposter := true
	_, err := s.repo.SetPlayerFields(s.ctx, &SetPlayerFieldsInput{
		SessionID: "ABC12",
		PlayerID:  "player-1",
		Update:    &PlayerUpdate{IsImposter: &isImposter},
	})
	s.Require().NoError(err)

	err = s.repo.ClearImposters(s.ctx, &ClearImpostersInput{SessionID: "ABC12"})
	s.Require().NoError(err)

	listed, err := s.repo.ListPlayers(s.ctx, &ListPlayersInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	for _, p := range listed.Players {
		s.False(p.IsImposter, "player %s should not be imposter", p.ID)
	}
}

func (s *RedisRepositoryTestSuite) TestResetForNewRound() {
	s.createPlayer("player-1", "Alice")
	s.createPlayer("player-2", "Bob")

	isImposter := true
	votes := 2
	_, err := s.repo.SetPlayerFields(s.ctx, &SetPlayerFieldsInput{
		SessionID: "ABC12",
		PlayerID:  "player-1",
		Update:    &PlayerUpdate{IsImposter: &isImposter, VotesReceived: &votes},
	})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.MarkDead(s.ctx, &MarkDeadInput{
		SessionID: "ABC12",
		PlayerIDs: []string{"player-1"},
	}))

	err = s.repo.ResetForNewRound(s.ctx, &ResetForNewRoundInput{SessionID: "ABC12"})
	s.Require().NoError(err)

	listed, err := s.repo.ListPlayers(s.ctx, &ListPlayersInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Require().Len(listed.Players, 2)
	for _, p := range listed.Players {
		s.False(p.IsImposter)
		s.True(p.IsAlive)
		s.Equal(0, p.VotesReceived)
	}
}

func (s *RedisRepositoryTestSuite) TestTouchHeartbeat() {
	joined := s.testPlayer("player-1", "Alice")
	joined.LastHeartbeat = s.testNow.Add(-1 * time.Minute)
	s.Require().NoError(s.repo.CreatePlayer(s.ctx, &CreatePlayerInput{Player: joined}))

	matched, err := s.repo.TouchHeartbeat(s.ctx, &TouchHeartbeatInput{
		SessionID: "ABC12",
		PlayerID:  "player-1",
	})
	s.Require().NoError(err)
	s.True(matched)

	retrieved, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{
		SessionID: "ABC12",
		PlayerID:  "player-1",
	})
	s.Require().NoError(err)
	s.Equal(s.testNow.Unix(), retrieved.LastHeartbeat.Unix())
}

func (s *RedisRepositoryTestSuite) TestTouchHeartbeatMissing() {
	matched, err := s.repo.TouchHeartbeat(s.ctx, &TouchHeartbeatInput{
		SessionID: "ABC12",
		PlayerID:  "missing",
	})
	s.Require().NoError(err)
	s.False(matched)
}

func (s *RedisRepositoryTestSuite) TestDeletePlayers() {
	s.createPlayer("player-1", "Alice")
	s.createPlayer("player-2", "Bob")

	err := s.repo.DeletePlayers(s.ctx, &DeletePlayersInput{SessionID: "ABC12"})
	s.Require().NoError(err)

	listed, err := s.repo.ListPlayers(s.ctx, &ListPlayersInput{SessionID: "ABC12"})
	s.Require().NoError(err)
	s.Empty(listed.Players)

	_, err = s.repo.GetPlayer(s.ctx, &GetPlayerInput{
		SessionID: "ABC12",
		PlayerID:  "player-1",
	})
	s.Require().ErrorIs(err, ErrPlayerNotFound)
}
