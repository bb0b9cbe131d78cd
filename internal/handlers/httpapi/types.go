package httpapi

import (
	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/KirkDiggler/yachtie/internal/services/session"
)

type createRoomRequest struct {
	Name          string               `json:"name"`
	ExtendedRules models.ExtendedRules `json:"extendedRules"`
	CreatorName   string               `json:"creatorName"`
}

type createRoomResponse struct {
	RoomID   string       `json:"roomId"`
	PlayerID string       `json:"playerId,omitempty"`
	Room     *models.Room `json:"room"`
}

type joinRoomRequest struct {
	Name string `json:"name"`
}

type joinRoomResponse struct {
	PlayerID string       `json:"playerId"`
	Room     *models.Room `json:"room"`
}

type scoreRequest struct {
	PlayerID string          `json:"playerId"`
	Category models.Category `json:"category"`
	Score    *int            `json:"score"`
}

type submitScoreResponse struct {
	Room           *models.Room `json:"room"`
	RoundCompleted bool         `json:"roundCompleted"`
	GameFinished   bool         `json:"gameFinished"`
}

type correctScoreResponse struct {
	Room          *models.Room `json:"room"`
	PreviousScore *int         `json:"previousScore,omitempty"`
}

type restartRequest struct {
	ExtendedRules models.ExtendedRules `json:"extendedRules"`
}

type roomResponse struct {
	Room *models.Room `json:"room"`
}

type roomDetailResponse struct {
	Room        *models.Room        `json:"room"`
	Leaderboard *models.Leaderboard `json:"leaderboard"`
}

type listRoomsResponse struct {
	Rooms []*models.Room `json:"rooms"`
}

type scoreDiceRequest struct {
	Dice          []int                `json:"dice"`
	ExtendedRules models.ExtendedRules `json:"extendedRules"`
}

type scoreDiceResponse struct {
	Scores map[models.Category]int `json:"scores"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Subscribers int    `json:"subscribers"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// streamFrame is one WebSocket message; exactly one of View or Error is set
type streamFrame struct {
	Type  string        `json:"type"`
	View  *session.View `json:"view,omitempty"`
	Error string        `json:"error,omitempty"`
	Kind  string        `json:"kind,omitempty"`
}

const (
	frameTypeRoom  = "room"
	frameTypeError = "error"
)
