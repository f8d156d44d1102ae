package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	identMocks "github.com/imposterparty/imposterd/internal/common/ident/mocks"
	"github.com/imposterparty/imposterd/internal/services/game"
	gameMocks "github.com/imposterparty/imposterd/internal/services/game/mocks"
)

const testPlayerID = "123e4567-e89b-12d3-a456-426614174000"

type HandlerTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockService *gameMocks.MockService
	mockIDGen   *identMocks.MockGenerator
	mux         *http.ServeMux
}

func (s *HandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockService = gameMocks.NewMockService(s.mockCtrl)
	s.mockIDGen = identMocks.NewMockGenerator(s.mockCtrl)

	handler, err := New(&Config{
		GameService: s.mockService,
		IDGenerator: s.mockIDGen,
	})
	s.Require().NoError(err)
	s.mux = handler.Routes()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *HandlerTestSuite) TestCreateGame() {
	s.mockIDGen.EXPECT().PlayerID().Return(testPlayerID)
	s.mockService.EXPECT().
		CreateGame(gomock.Any(), &game.CreateGameInput{
			CreatorID:   testPlayerID,
			CreatorName: "Alice",
			Category:    "animals",
			MaxPlayers:  6,
		}).
		Return(&game.CreateGameOutput{
			SessionID:  "ABC12",
			Category:   "animals",
			MaxPlayers: 6,
		}, nil)

	rec := s.do(http.MethodPost, "/api/game/create",
		`{"player_name":"Alice","game_category":"animals","max_players":6}`)

	s.Equal(http.StatusCreated, rec.Code)
	body := s.decode(rec)
	s.Equal("ABC12", body["session_id"])
	s.Equal(testPlayerID, body["player_id"])
}

func (s *HandlerTestSuite) TestCreateGameInvalidName() {
	rec := s.do(http.MethodPost, "/api/game/create",
		`{"player_name":"<script>","game_category":"animals"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestCreateGameUnknownField() {
	rec := s.do(http.MethodPost, "/api/game/create",
		`{"player_name":"Alice","game_category":"animals","bogus":true}`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestJoinGameSessionNotFound() {
	s.mockIDGen.EXPECT().PlayerID().Return(testPlayerID)
	s.mockService.EXPECT().
		JoinGame(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrSessionNotFound)

	rec := s.do(http.MethodPost, "/api/game/NOPE1/join", `{"player_name":"Bob"}`)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(game.ErrSessionNotFound.Error(), s.decode(rec)["detail"])
}

func (s *HandlerTestSuite) TestJoinGameFull() {
	s.mockIDGen.EXPECT().PlayerID().Return(testPlayerID)
	s.mockService.EXPECT().
		JoinGame(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrGameFull)

	rec := s.do(http.MethodPost, "/api/game/ABC12/join", `{"player_name":"Bob"}`)

	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlerTestSuite) TestStartGameNotCreator() {
	s.mockService.EXPECT().
		StartGame(gomock.Any(), &game.StartGameInput{
			SessionID: "ABC12",
			PlayerID:  testPlayerID,
		}).
		Return(nil, game.ErrNotCreator)

	rec := s.do(http.MethodPost, "/api/game/ABC12/start",
		`{"player_id":"`+testPlayerID+`"}`)

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerTestSuite) TestStartGameInvalidPlayerID() {
	rec := s.do(http.MethodPost, "/api/game/ABC12/start", `{"player_id":"short"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestGetGameWithTopic() {
	s.mockService.EXPECT().
		GetGameInfo(gomock.Any(), &game.GetGameInfoInput{
			SessionID: "ABC12",
			PlayerID:  testPlayerID,
		}).
		Return(&game.GetGameInfoOutput{
			SessionID: "ABC12",
			Category:  "animals",
			YourTopic: "Peacock",
			TopicType: "player",
		}, nil)

	rec := s.do(http.MethodGet, "/api/game/ABC12?player_id="+testPlayerID, "")

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Equal("Peacock", body["your_topic"])
	s.Equal("player", body["topic_type"])
}

func (s *HandlerTestSuite) TestGetGameTopicHiddenWhenAbsent() {
	s.mockService.EXPECT().
		GetGameInfo(gomock.Any(), gomock.Any()).
		Return(&game.GetGameInfoOutput{SessionID: "ABC12"}, nil)

	rec := s.do(http.MethodGet, "/api/game/ABC12", "")

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.NotContains(body, "your_topic")
	s.NotContains(body, "topic_type")
}

func (s *HandlerTestSuite) TestSubmitVoteAlreadyVoted() {
	s.mockService.EXPECT().
		SubmitVote(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrAlreadyVoted)

	rec := s.do(http.MethodPost, "/api/game/ABC12/vote",
		`{"player_id":"`+testPlayerID+`","voted_for_id":"`+testPlayerID+`"}`)

	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlerTestSuite) TestHeartbeatUnknownPlayer() {
	s.mockService.EXPECT().
		Heartbeat(gomock.Any(), gomock.Any()).
		Return(&game.HeartbeatOutput{Acknowledged: false}, nil)

	rec := s.do(http.MethodPost, "/api/game/ABC12/heartbeat",
		`{"player_id":"`+testPlayerID+`"}`)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) TestListAvailableGames() {
	s.mockService.EXPECT().
		ListAvailableGames(gomock.Any(), gomock.Any()).
		Return(&game.ListAvailableGamesOutput{Games: []*game.AvailableGame{}}, nil)

	rec := s.do(http.MethodGet, "/api/games/available", "")

	s.Equal(http.StatusOK, rec.Code)
}
