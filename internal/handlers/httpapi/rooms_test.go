package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KirkDiggler/yachtie/internal/models"
	roomMocks "github.com/KirkDiggler/yachtie/internal/repositories/room/mocks"
	"github.com/KirkDiggler/yachtie/internal/services/feed"
	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	serviceMocks "github.com/KirkDiggler/yachtie/internal/services/room/mocks"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoomsHandlerTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockRoomService *serviceMocks.MockService
	router          http.Handler

	testRoomID string
	testRoom   *models.Room
}

func (s *RoomsHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoomService = serviceMocks.NewMockService(s.mockCtrl)

	// REST routes never touch the feed
	f, err := feed.New(&feed.Config{RoomRepo: roomMocks.NewMockRepository(s.mockCtrl)})
	s.Require().NoError(err)

	h, err := New(&Config{RoomService: s.mockRoomService, Feed: f})
	s.Require().NoError(err)
	s.router = h.Routes()

	s.testRoomID = "test-room-id"
	s.testRoom = &models.Room{
		ID:           s.testRoomID,
		Name:         "friday",
		Status:       models.RoomStatusWaiting,
		CurrentRound: 1,
		MaxRounds:    models.MaxRounds,
		Version:      1,
		Players: []*models.Player{
			{ID: "p1", Name: "alice", ScoreCard: models.ScoreCard{}},
		},
	}
}

func (s *RoomsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RoomsHandlerTestSuite))
}

func (s *RoomsHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			s.Require().NoError(json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RoomsHandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) errorResponse {
	var resp errorResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func (s *RoomsHandlerTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)

	_, err = New(&Config{RoomService: s.mockRoomService})
	s.Error(err)
}

func (s *RoomsHandlerTestSuite) TestCreateRoom() {
	s.mockRoomService.EXPECT().
		CreateRoom(gomock.Any(), &roomService.CreateRoomInput{
			Name:          "friday",
			ExtendedRules: models.ExtendedRules{EnableThreeOfAKind: true},
			CreatorName:   "alice",
		}).
		Return(&roomService.CreateRoomOutput{RoomID: s.testRoomID, PlayerID: "p1", Room: s.testRoom}, nil)

	rec := s.do(http.MethodPost, "/rooms", map[string]any{
		"name":          "friday",
		"creatorName":   "alice",
		"extendedRules": map[string]bool{"enableThreeOfAKind": true},
	})

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	var resp createRoomResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(s.testRoomID, resp.RoomID)
	s.Equal("p1", resp.PlayerID)
	s.Equal("friday", resp.Room.Name)
}

func (s *RoomsHandlerTestSuite) TestCreateRoom_MalformedBody() {
	rec := s.do(http.MethodPost, "/rooms", "{not json")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("invalid", s.decodeError(rec).Kind)
}

func (s *RoomsHandlerTestSuite) TestCreateRoom_UnknownFieldRejected() {
	rec := s.do(http.MethodPost, "/rooms", `{"name":"x","owner":"y"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoomsHandlerTestSuite) TestErrorKindsMapToStatus() {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{roomService.ErrRoomNotFound, http.StatusNotFound, "not_found"},
		{roomService.ErrRoomFull, http.StatusConflict, "conflict"},
		{roomService.ErrConcurrentModification, http.StatusConflict, "conflict"},
		{roomService.ErrInvalidPlayerName, http.StatusBadRequest, "invalid"},
		{roomService.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		s.mockRoomService.EXPECT().
			JoinRoom(gomock.Any(), gomock.Any()).
			Return(nil, tc.err)

		rec := s.do(http.MethodPost, "/rooms/"+s.testRoomID+"/players", map[string]string{"name": "bob"})

		s.Equal(tc.status, rec.Code, tc.err.Error())
		resp := s.decodeError(rec)
		s.Equal(tc.kind, resp.Kind)
		if tc.status == http.StatusInternalServerError {
			s.NotContains(resp.Error, "boom", "internal details stay in the log")
		}
	}
}

func (s *RoomsHandlerTestSuite) TestJoinRoom() {
	s.mockRoomService.EXPECT().
		JoinRoom(gomock.Any(), &roomService.JoinRoomInput{RoomID: s.testRoomID, PlayerName: "bob"}).
		Return(&roomService.JoinRoomOutput{PlayerID: "p2", Room: s.testRoom}, nil)

	rec := s.do(http.MethodPost, "/rooms/"+s.testRoomID+"/players", map[string]string{"name": "bob"})

	s.Equal(http.StatusCreated, rec.Code)
	var resp joinRoomResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("p2", resp.PlayerID)
}

func (s *RoomsHandlerTestSuite) TestGetRoomIncludesLeaderboard() {
	s.mockRoomService.EXPECT().
		GetRankings(gomock.Any(), &roomService.GetRankingsInput{RoomID: s.testRoomID}).
		Return(&roomService.GetRankingsOutput{
			Room: s.testRoom,
			Leaderboard: &models.Leaderboard{
				RoomID:    s.testRoomID,
				Standings: []*models.Standing{{Player: s.testRoom.Players[0], TotalScore: 0, Rank: 1}},
			},
		}, nil)

	rec := s.do(http.MethodGet, "/rooms/"+s.testRoomID, nil)

	s.Equal(http.StatusOK, rec.Code)
	var resp roomDetailResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(s.testRoomID, resp.Room.ID)
	s.Require().Len(resp.Leaderboard.Standings, 1)
	s.Equal(1, resp.Leaderboard.Standings[0].Rank)
}

func (s *RoomsHandlerTestSuite) TestListRooms() {
	s.mockRoomService.EXPECT().
		ListRooms(gomock.Any(), &roomService.ListRoomsInput{}).
		Return(&roomService.ListRoomsOutput{Rooms: []*models.Room{s.testRoom}}, nil)

	rec := s.do(http.MethodGet, "/rooms", nil)

	s.Equal(http.StatusOK, rec.Code)
	var resp listRoomsResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Len(resp.Rooms, 1)
}

func (s *RoomsHandlerTestSuite) TestDeleteRoom() {
	s.mockRoomService.EXPECT().
		DeleteRoom(gomock.Any(), &roomService.DeleteRoomInput{RoomID: s.testRoomID}).
		Return(&roomService.DeleteRoomOutput{}, nil)

	rec := s.do(http.MethodDelete, "/rooms/"+s.testRoomID, nil)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Zero(rec.Body.Len())
}

func (s *RoomsHandlerTestSuite) TestStartAndRestart() {
	s.mockRoomService.EXPECT().
		StartGame(gomock.Any(), &roomService.StartGameInput{RoomID: s.testRoomID}).
		Return(&roomService.StartGameOutput{Room: s.testRoom}, nil)
	s.mockRoomService.EXPECT().
		RestartGame(gomock.Any(), &roomService.RestartGameInput{
			RoomID:        s.testRoomID,
			ExtendedRules: models.ExtendedRules{FullHouseFixedScore: true},
		}).
		Return(&roomService.RestartGameOutput{Room: s.testRoom}, nil)

	rec := s.do(http.MethodPost, "/rooms/"+s.testRoomID+"/start", nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/rooms/"+s.testRoomID+"/restart", map[string]any{
		"extendedRules": map[string]bool{"fullHouseFixedScore": true},
	})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RoomsHandlerTestSuite) TestSubmitScore() {
	s.mockRoomService.EXPECT().
		SubmitScore(gomock.Any(), &roomService.SubmitScoreInput{
			RoomID:   s.testRoomID,
			PlayerID: "p1",
			Category: models.CategoryYacht,
			Score:    0,
		}).
		Return(&roomService.SubmitScoreOutput{Room: s.testRoom, RoundCompleted: true}, nil)

	// an explicit zero is a valid score
	rec := s.do(http.MethodPost, "/rooms/"+s.testRoomID+"/scores", `{"playerId":"p1","category":"yacht","score":0}`)

	s.Equal(http.StatusOK, rec.Code)
	var resp submitScoreResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.True(resp.RoundCompleted)
	s.False(resp.GameFinished)
}

func (s *RoomsHandlerTestSuite) TestSubmitScore_MissingScore() {
	rec := s.do(http.MethodPost, "/rooms/"+s.testRoomID+"/scores", `{"playerId":"p1","category":"yacht"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(errMissingScore.Error(), s.decodeError(rec).Error)
}

func (s *RoomsHandlerTestSuite) TestCorrectScore() {
	s.mockRoomService.EXPECT().
		CorrectScore(gomock.Any(), &roomService.CorrectScoreInput{
			RoomID:   s.testRoomID,
			PlayerID: "p1",
			Category: models.CategoryChance,
			Score:    22,
		}).
		Return(&roomService.CorrectScoreOutput{Room: s.testRoom, PreviousScore: 0, HadScore: true}, nil)
	s.mockRoomService.EXPECT().
		CorrectScore(gomock.Any(), gomock.Any()).
		Return(&roomService.CorrectScoreOutput{Room: s.testRoom}, nil)

	rec := s.do(http.MethodPut, "/rooms/"+s.testRoomID+"/scores", `{"playerId":"p1","category":"chance","score":22}`)
	s.Equal(http.StatusOK, rec.Code)
	var resp map[string]any
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(float64(0), resp["previousScore"])

	rec = s.do(http.MethodPut, "/rooms/"+s.testRoomID+"/scores", `{"playerId":"p1","category":"ace","score":3}`)
	s.Equal(http.StatusOK, rec.Code)
	resp = nil
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.NotContains(resp, "previousScore")
}

func (s *RoomsHandlerTestSuite) TestScoreDice() {
	rec := s.do(http.MethodPost, "/dice/score", map[string]any{"dice": []int{2, 2, 3, 3, 3}})

	s.Equal(http.StatusOK, rec.Code)
	var resp scoreDiceResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(13, resp.Scores[models.CategoryFullHouse])
	s.Equal(9, resp.Scores[models.CategoryTriple])
	s.Equal(13, resp.Scores[models.CategoryChance])
	s.NotContains(resp.Scores, models.CategoryThreeOfAKind)
}

func (s *RoomsHandlerTestSuite) TestScoreDice_InvalidHand() {
	rec := s.do(http.MethodPost, "/dice/score", map[string]any{"dice": []int{1, 2, 7}})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("invalid", s.decodeError(rec).Kind)
}

func (s *RoomsHandlerTestSuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", nil)

	s.Equal(http.StatusOK, rec.Code)
	var resp healthResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("ok", resp.Status)
	s.Zero(resp.Rooms)
}

func (s *RoomsHandlerTestSuite) TestRequestContextIsPassedThrough() {
	s.mockRoomService.EXPECT().
		ListRooms(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *roomService.ListRoomsInput) (*roomService.ListRoomsOutput, error) {
			s.NotEmpty(middleware.GetReqID(ctx))
			return &roomService.ListRoomsOutput{Rooms: []*models.Room{}}, nil
		})

	rec := s.do(http.MethodGet, "/rooms", nil)
	s.Equal(http.StatusOK, rec.Code)
}
